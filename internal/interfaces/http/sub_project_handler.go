package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// SubProjectHandler maneja las peticiones HTTP para tareas (protegido).
type SubProjectHandler struct {
	uc *usecase.SubProjectUseCase
}

// NewSubProjectHandler construye el handler.
func NewSubProjectHandler(uc *usecase.SubProjectUseCase) *SubProjectHandler {
	return &SubProjectHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea
// @Tags         sub-projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubProjectRequest  true  "Datos de la tarea"
// @Success      201   {object}  dto.SubProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sub-projects [post]
func (h *SubProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSubProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProjectID == "" || in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "project_id y title son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tarea por ID
// @Tags         sub-projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.SubProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sub-projects/{id} [get]
func (h *SubProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarea no encontrada"})
	}
	return c.JSON(out)
}

// ListByProject godoc
// @Summary      Listar tareas de un proyecto
// @Tags         sub-projects
// @Security     Bearer
// @Produce      json
// @Param        projectId       path   string  true   "ID del proyecto"
// @Param        status          query  string  false  "Filtro por estado"
// @Param        assigned_to_id  query  string  false  "Filtro por asignado"
// @Param        search          query  string  false  "Búsqueda en título"
// @Success      200  {array}  dto.SubProjectResponse
// @Router       /api/projects/{projectId}/sub-projects [get]
func (h *SubProjectHandler) ListByProject(c *fiber.Ctx) error {
	var q dto.SubProjectQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListByProject(c.Context(), c.Params("projectId"), GetCompanyID(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Listar tareas asignadas al caller
// @Tags         sub-projects
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SubProjectResponse
// @Router       /api/sub-projects/mine [get]
func (h *SubProjectHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.Context(), GetUserID(c), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tarea (asignado, o quien puede gestionar el proyecto)
// @Tags         sub-projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.UpdateSubProjectRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SubProjectResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sub-projects/{id} [put]
func (h *SubProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSubProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarea no encontrada"})
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar tarea a un usuario
// @Tags         sub-projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.AssignSubProjectRequest  true  "Usuario asignado"
// @Success      200   {object}  dto.SubProjectResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sub-projects/{id}/assign [put]
func (h *SubProjectHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignSubProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id es requerido"})
	}
	out, err := h.uc.Assign(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tarea (quien puede gestionar el proyecto)
// @Tags         sub-projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sub-projects/{id} [delete]
func (h *SubProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), GetRole(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "tarea eliminada"})
}
