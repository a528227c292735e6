package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// AnalyticsHandler maneja las peticiones HTTP de analítica (protegido).
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Dashboard de la empresa
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyDashboardResponse
// @Router       /api/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.CompanyDashboard(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// UserAnalytics godoc
// @Summary      Agregados de tracking y puntos de un usuario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        userId      path   string  true   "ID del usuario"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {object}  dto.UserAnalyticsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analytics/users/{userId} [get]
func (h *AnalyticsHandler) UserAnalytics(c *fiber.Ctx) error {
	var q dto.TrackingHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.UserAnalytics(c.Context(), c.Params("userId"), GetCompanyID(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(out)
}

// ProjectTime godoc
// @Summary      Minutos acumulados por usuario dentro de un proyecto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectTimeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analytics/projects/{projectId}/time [get]
func (h *AnalyticsHandler) ProjectTime(c *fiber.Ctx) error {
	out, err := h.uc.ProjectTime(c.Context(), c.Params("projectId"), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
