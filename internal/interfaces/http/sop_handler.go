package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// SopHandler maneja las peticiones HTTP para SOPs y su flujo de aprobación
// (protegido).
type SopHandler struct {
	uc *usecase.SopUseCase
}

// NewSopHandler construye el handler.
func NewSopHandler(uc *usecase.SopUseCase) *SopHandler {
	return &SopHandler{uc: uc}
}

// Create godoc
// @Summary      Crear SOP (nace pendiente de aprobación)
// @Tags         sops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSopRequest  true  "Datos del SOP"
// @Success      201   {object}  dto.SopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sops [post]
func (h *SopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" || in.Type == "" || in.FileURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title, type y file_url son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar SOPs de la empresa
// @Tags         sops
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "Filtro por tipo"
// @Param        status  query  string  false  "Filtro por estado"
// @Param        search  query  string  false  "Búsqueda en título"
// @Success      200  {array}  dto.SopResponse
// @Router       /api/sops [get]
func (h *SopHandler) List(c *fiber.Ctx) error {
	var q dto.SopQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener SOP por ID (incrementa el contador de vistas)
// @Tags         sops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del SOP"
// @Success      200  {object}  dto.SopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sops/{id} [get]
func (h *SopHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "SOP no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar SOP (creador o admin; uno aprobado vuelve a pendiente)
// @Tags         sops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del SOP"
// @Param        body  body  dto.UpdateSopRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SopResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sops/{id} [put]
func (h *SopHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "SOP no encontrado"})
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar SOP pendiente (solo admins)
// @Tags         sops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del SOP"
// @Success      200  {object}  dto.SopResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sops/{id}/approve [post]
func (h *SopHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), GetRole(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "SOP no encontrado"})
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar SOP pendiente con motivo (solo admins)
// @Tags         sops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del SOP"
// @Param        body  body  dto.RejectSopRequest  true  "Motivo del rechazo"
// @Success      200   {object}  dto.SopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sops/{id}/reject [post]
func (h *SopHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectSopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RejectionReason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rejection_reason es requerido"})
	}
	out, err := h.uc.Reject(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "SOP no encontrado"})
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Agregados de SOPs de la empresa
// @Tags         sops
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SopStatsResponse
// @Router       /api/sops/stats [get]
func (h *SopHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar SOP (creador o admin)
// @Tags         sops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del SOP"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sops/{id} [delete]
func (h *SopHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), GetRole(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "SOP eliminado"})
}
