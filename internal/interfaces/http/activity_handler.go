package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// ActivityHandler maneja las peticiones HTTP del log de actividad (protegido).
type ActivityHandler struct {
	uc *usecase.ActivityLogUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityLogUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Listar actividad de la empresa con filtros
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        activity_type  query  string  false  "Filtro por tipo"
// @Param        user_id        query  string  false  "Filtro por usuario"
// @Param        start_date     query  string  false  "YYYY-MM-DD"
// @Param        end_date       query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {array}  dto.ActivityLogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var q dto.ActivityLogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListByUser godoc
// @Summary      Listar actividad de un usuario de la empresa
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {array}  dto.ActivityLogResponse
// @Router       /api/activity/users/{userId} [get]
func (h *ActivityHandler) ListByUser(c *fiber.Ctx) error {
	out, err := h.uc.ListByUser(c.Context(), GetCompanyID(c), c.Params("userId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Agregados de actividad de la empresa
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActivityStatsResponse
// @Router       /api/activity/stats [get]
func (h *ActivityHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
