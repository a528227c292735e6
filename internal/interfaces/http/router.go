package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/subscription"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *usecase.AuthUseCase
	CompanyUC        *usecase.CompanyUseCase
	UserUC           *usecase.UserUseCase
	DepartmentUC     *usecase.DepartmentUseCase
	ProjectUC        *usecase.ProjectUseCase
	SubProjectUC     *usecase.SubProjectUseCase
	TrackingUC       *usecase.TrackingUseCase
	SopUC            *usecase.SopUseCase
	ChatUC           *usecase.ChatUseCase
	NotificationUC   *usecase.NotificationUseCase
	ActivityUC       *usecase.ActivityLogUseCase
	AnalyticsUC      *usecase.AnalyticsUseCase
	ReportUC         *usecase.ReportUseCase
	SuperadminUC     *usecase.SuperadminUseCase
	Subscription     *subscription.Service
	JWTSecret        string
	SuperadminSecret string
}

// Router registra las rutas de la API.
//
// Tres niveles de protección:
//   - público: login y registros (empresa y superadmin).
//   - autenticado sin gate: /auth/me y /auth/subscription-status, para que
//     una empresa vencida pueda ver su estado y renovar.
//   - autenticado + gate de suscripción: todo lo demás del tenant.
//
// La consola superadmin vive en su propio realm JWT y nunca pasa por el gate.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Subscription)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register/company", authHandler.RegisterCompany)
	authGroup.Post("/register/user", authHandler.RegisterUser)

	// Auth (autenticado, exento del gate)
	authed := authGroup.Group("/", AuthMiddleware(deps.JWTSecret))
	authed.Get("/me", authHandler.Me)
	authed.Get("/subscription-status", authHandler.SubscriptionStatus)

	// Rutas del tenant (Bearer + gate de suscripción)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), SubscriptionGate(deps.Subscription))
	adminOnly := RequireRole(entity.RoleCompanyAdmin)
	anyAdmin := RequireRole(entity.RoleCompanyAdmin, entity.RoleQCAdmin)

	// Company (protegido)
	company := protected.Group("/company")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	company.Get("/", companyHandler.Get)
	company.Put("/", adminOnly, companyHandler.Update)
	company.Get("/stats", companyHandler.Stats)

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/role", adminOnly, userHandler.UpdateRole)
	users.Delete("/:id", adminOnly, userHandler.Deactivate)

	// Departments (protegido; mutaciones solo admins)
	departments := protected.Group("/departments")
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC)
	departments.Get("/", departmentHandler.List)
	departments.Get("/:id", departmentHandler.GetByID)
	departments.Post("/", anyAdmin, departmentHandler.Create)
	departments.Put("/:id", anyAdmin, departmentHandler.Update)
	departments.Post("/:id/users", anyAdmin, departmentHandler.AssignUsers)
	departments.Delete("/:id", adminOnly, departmentHandler.Delete)

	// Projects y membresías (protegido)
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)
	projects.Get("/:id/stats", projectHandler.Stats)
	projects.Post("/:id/members", projectHandler.AddMember)
	projects.Get("/:id/members", projectHandler.Members)
	projects.Put("/:id/members/:userId", projectHandler.UpdateMemberRole)
	projects.Delete("/:id/members/:userId", projectHandler.RemoveMember)

	// Sub-projects / tareas (protegido)
	subProjects := protected.Group("/sub-projects")
	subProjectHandler := NewSubProjectHandler(deps.SubProjectUC)
	subProjects.Post("/", subProjectHandler.Create)
	subProjects.Get("/mine", subProjectHandler.ListMine)
	subProjects.Get("/:id", subProjectHandler.GetByID)
	subProjects.Put("/:id", subProjectHandler.Update)
	subProjects.Put("/:id/assign", subProjectHandler.Assign)
	subProjects.Delete("/:id", subProjectHandler.Delete)
	projects.Get("/:projectId/sub-projects", subProjectHandler.ListByProject)

	// Time tracking (protegido)
	trackingGroup := protected.Group("/time-tracking")
	trackingHandler := NewTrackingHandler(deps.TrackingUC)
	trackingGroup.Post("/start", trackingHandler.Start)
	trackingGroup.Post("/stop-active", trackingHandler.StopActive)
	trackingGroup.Post("/:id/stop", trackingHandler.Stop)
	trackingGroup.Get("/active", trackingHandler.Active)
	trackingGroup.Post("/screenshot", trackingHandler.AddScreenshot)
	trackingGroup.Get("/history", trackingHandler.History)
	projects.Get("/:projectId/time-tracking", trackingHandler.ProjectSessions)

	// SOPs (protegido; aprobación/rechazo validan rol en el caso de uso)
	sops := protected.Group("/sops")
	sopHandler := NewSopHandler(deps.SopUC)
	sops.Post("/", sopHandler.Create)
	sops.Get("/", sopHandler.List)
	sops.Get("/stats", sopHandler.Stats)
	sops.Get("/:id", sopHandler.GetByID)
	sops.Put("/:id", sopHandler.Update)
	sops.Post("/:id/approve", sopHandler.Approve)
	sops.Post("/:id/reject", sopHandler.Reject)
	sops.Delete("/:id", sopHandler.Delete)

	// Chat (protegido)
	chat := protected.Group("/chat")
	chatHandler := NewChatHandler(deps.ChatUC)
	chat.Post("/rooms", chatHandler.CreateRoom)
	chat.Post("/rooms/:id/members", chatHandler.AddMember)
	chat.Delete("/rooms/:id/members/:userId", chatHandler.RemoveMember)
	chat.Get("/rooms/:id/messages", chatHandler.Messages)
	chat.Post("/rooms/:id/messages", chatHandler.PostMessage)
	chat.Put("/messages/:id", chatHandler.EditMessage)
	chat.Delete("/messages/:id", chatHandler.DeleteMessage)
	projects.Get("/:projectId/chat/rooms", chatHandler.RoomsByProject)

	// Notifications (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)

	// Activity log (protegido; solo admins ven la actividad ajena)
	activity := protected.Group("/activity")
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activity.Get("/", anyAdmin, activityHandler.List)
	activity.Get("/stats", anyAdmin, activityHandler.Stats)
	activity.Get("/users/:userId", anyAdmin, activityHandler.ListByUser)

	// Analytics (protegido)
	analytics := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics.Get("/dashboard", analyticsHandler.Dashboard)
	analytics.Get("/users/:userId", analyticsHandler.UserAnalytics)
	analytics.Get("/projects/:projectId/time", analyticsHandler.ProjectTime)

	// Reports PDF (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/users/:userId/time", reportHandler.UserTimeReport)

	// Superadmin (realm propio, sin gate)
	superadmin := api.Group("/superadmin")
	superadminHandler := NewSuperadminHandler(deps.SuperadminUC)
	superadmin.Post("/login", superadminHandler.Login)

	saProtected := superadmin.Group("/", SuperadminMiddleware(deps.SuperadminSecret))
	saProtected.Post("/register", superadminHandler.Register)
	saProtected.Get("/profile", superadminHandler.Profile)
	saProtected.Get("/companies", superadminHandler.ListCompanies)
	saProtected.Put("/companies/:id/subscription", superadminHandler.UpdateCompanySubscription)
	saProtected.Put("/companies/:id/activate", superadminHandler.ActivateCompany)
	saProtected.Put("/companies/:id/deactivate", superadminHandler.DeactivateCompany)
	saProtected.Get("/stats", superadminHandler.PlatformStats)
	saProtected.Post("/plans", superadminHandler.CreatePlan)
	saProtected.Get("/plans", superadminHandler.ListPlans)
	saProtected.Put("/plans/:id", superadminHandler.UpdatePlan)
	saProtected.Delete("/plans/:id", superadminHandler.DeletePlan)
}
