package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// TrackingHandler maneja las peticiones HTTP del tracking de tiempo (protegido).
type TrackingHandler struct {
	uc *usecase.TrackingUseCase
}

// NewTrackingHandler construye el handler.
func NewTrackingHandler(uc *usecase.TrackingUseCase) *TrackingHandler {
	return &TrackingHandler{uc: uc}
}

// Start godoc
// @Summary      Iniciar sesión de tracking sobre una tarea
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartTrackingRequest  true  "Tarea a trackear"
// @Success      201   {object}  dto.TrackingResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ActiveSessionConflict
// @Router       /api/time-tracking/start [post]
func (h *TrackingHandler) Start(c *fiber.Ctx) error {
	var in dto.StartTrackingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SubProjectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sub_project_id es requerido"})
	}
	out, err := h.uc.Start(c.Context(), GetUserID(c), GetCompanyID(c), GetRole(c), in)
	if err != nil {
		var active *usecase.ActiveSessionError
		if errors.As(err, &active) {
			// 409 con la sesión existente: el cliente resincroniza en lugar
			// de perder el timer que ya corre en otro dispositivo.
			return c.Status(fiber.StatusConflict).JSON(dto.ActiveSessionConflict{
				Code:           "ACTIVE_SESSION",
				Message:        "ya existe una sesión activa",
				SessionID:      active.Session.ID,
				SubProjectID:   active.Session.SubProjectID,
				StartTime:      active.Session.StartTime,
				ElapsedMinutes: active.ElapsedMinutes,
			})
		}
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Stop godoc
// @Summary      Cerrar una sesión de tracking (acredita puntos)
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.StopTrackingRequest  false  "Notas opcionales"
// @Success      200   {object}  dto.StopTrackingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/time-tracking/{id}/stop [post]
func (h *TrackingHandler) Stop(c *fiber.Ctx) error {
	var in dto.StopTrackingRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Stop(c.Context(), GetUserID(c), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// StopActive godoc
// @Summary      Cerrar la sesión activa del caller sin conocer su ID
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StopTrackingRequest  false  "Notas opcionales"
// @Success      200   {object}  dto.StopTrackingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/time-tracking/stop-active [post]
func (h *TrackingHandler) StopActive(c *fiber.Ctx) error {
	var in dto.StopTrackingRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.StopActive(c.Context(), GetUserID(c), GetCompanyID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Active godoc
// @Summary      Timer activo del caller (polling entre dispositivos)
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActiveTimerResponse
// @Router       /api/time-tracking/active [get]
func (h *TrackingHandler) Active(c *fiber.Ctx) error {
	out, err := h.uc.Active(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// AddScreenshot godoc
// @Summary      Agregar captura de pantalla a la sesión activa
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddScreenshotRequest  true  "URL de la captura"
// @Success      200   {object}  dto.TrackingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/time-tracking/screenshot [post]
func (h *TrackingHandler) AddScreenshot(c *fiber.Ctx) error {
	var in dto.AddScreenshotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ScreenshotURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "screenshot_url es requerido"})
	}
	out, err := h.uc.AddScreenshot(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de sesiones del caller
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {array}  dto.TrackingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/time-tracking/history [get]
func (h *TrackingHandler) History(c *fiber.Ctx) error {
	var q dto.TrackingHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.History(c.Context(), GetUserID(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ProjectSessions godoc
// @Summary      Sesiones registradas sobre tareas de un proyecto
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.TrackingResponse
// @Router       /api/projects/{projectId}/time-tracking [get]
func (h *TrackingHandler) ProjectSessions(c *fiber.Ctx) error {
	out, err := h.uc.ProjectSessions(c.Context(), c.Params("projectId"), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
