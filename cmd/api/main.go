package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/taskhive/taskhive-api/internal/application/subscription"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
	infrapdf "github.com/taskhive/taskhive-api/internal/infrastructure/pdf"
	"github.com/taskhive/taskhive-api/internal/infrastructure/postgres"
	httpRouter "github.com/taskhive/taskhive-api/internal/interfaces/http"
	"github.com/taskhive/taskhive-api/pkg/config"
	"github.com/taskhive/taskhive-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	memberRepo := postgres.NewProjectMemberRepository(pool)
	subProjectRepo := postgres.NewSubProjectRepository(pool)
	trackingRepo := postgres.NewTimeTrackingRepository(pool)
	sopRepo := postgres.NewSopRepository(pool)
	chatRoomRepo := postgres.NewChatRoomRepository(pool)
	chatMessageRepo := postgres.NewChatMessageRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	superadminRepo := postgres.NewSuperAdminRepository(pool)
	planRepo := postgres.NewSubscriptionPlanRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tenantToken := usecase.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}
	superadminToken := usecase.TokenConfig{
		Secret:     cfg.Superadmin.Secret,
		Issuer:     cfg.Superadmin.Issuer,
		ExpMinutes: cfg.Superadmin.Expiration,
	}

	subscriptionSvc := subscription.NewService(companyRepo, nil)
	authUC := usecase.NewAuthUseCase(companyRepo, userRepo, activityRepo, txRunner, tenantToken, nil)
	companyUC := usecase.NewCompanyUseCase(companyRepo, analyticsRepo)
	userUC := usecase.NewUserUseCase(userRepo, notificationRepo)
	departmentUC := usecase.NewDepartmentUseCase(departmentRepo, userRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, memberRepo, subProjectRepo, userRepo, notificationRepo, activityRepo, txRunner)
	subProjectUC := usecase.NewSubProjectUseCase(subProjectRepo, projectRepo, memberRepo, userRepo, notificationRepo)
	trackingUC := usecase.NewTrackingUseCase(trackingRepo, subProjectRepo, projectRepo, memberRepo, activityRepo, txRunner, nil)
	sopUC := usecase.NewSopUseCase(sopRepo, notificationRepo, activityRepo)
	chatUC := usecase.NewChatUseCase(chatRoomRepo, chatMessageRepo, projectRepo, memberRepo, userRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	activityUC := usecase.NewActivityLogUseCase(activityRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo, userRepo)
	superadminUC := usecase.NewSuperadminUseCase(superadminRepo, planRepo, companyRepo, analyticsRepo, superadminToken, nil)

	// PDF: reporte de tiempo por usuario
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := usecase.NewReportUseCase(userRepo, companyRepo, trackingRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TaskHive API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CompanyUC:        companyUC,
		UserUC:           userUC,
		DepartmentUC:     departmentUC,
		ProjectUC:        projectUC,
		SubProjectUC:     subProjectUC,
		TrackingUC:       trackingUC,
		SopUC:            sopUC,
		ChatUC:           chatUC,
		NotificationUC:   notificationUC,
		ActivityUC:       activityUC,
		AnalyticsUC:      analyticsUC,
		ReportUC:         reportUC,
		SuperadminUC:     superadminUC,
		Subscription:     subscriptionSvc,
		JWTSecret:        cfg.JWT.Secret,
		SuperadminSecret: cfg.Superadmin.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
