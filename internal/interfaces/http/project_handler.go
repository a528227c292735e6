package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// ProjectHandler maneja las peticiones HTTP para proyectos y sus membresías
// (protegido).
type ProjectHandler struct {
	uc *usecase.ProjectUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "Datos del proyecto"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proyectos de la empresa
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProjectResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proyecto por ID (con miembros)
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proyecto no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proyecto (admin, lead o creador)
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proyecto"
// @Param        body  body  dto.UpdateProjectRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proyecto no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proyecto (solo COMPANY_ADMIN)
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetCompanyID(c), GetRole(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "proyecto eliminado"})
}

// Stats godoc
// @Summary      Agregados de un proyecto
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectStatsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/stats [get]
func (h *ProjectHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), c.Params("id"), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proyecto no encontrado"})
	}
	return c.JSON(out)
}

// ── Membresías ────────────────────────────────────────────────────────────────

// AddMember godoc
// @Summary      Agregar miembro al proyecto (admin, lead o creador)
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proyecto"
// @Param        body  body  dto.AddProjectMemberRequest  true  "Usuario y rol"
// @Success      201   {object}  dto.ProjectMemberResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c *fiber.Ctx) error {
	var in dto.AddProjectMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id es requerido"})
	}
	out, err := h.uc.AddMember(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Members godoc
// @Summary      Listar miembros del proyecto
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.ProjectMemberResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/members [get]
func (h *ProjectHandler) Members(c *fiber.Ctx) error {
	out, err := h.uc.Members(c.Context(), c.Params("id"), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateMemberRole godoc
// @Summary      Cambiar el rol de una membresía (admin, lead o creador)
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID del proyecto"
// @Param        userId  path  string  true  "ID del usuario"
// @Param        body    body  dto.UpdateProjectMemberRoleRequest  true  "Nuevo rol"
// @Success      200     {object}  dto.MessageResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/members/{userId} [put]
func (h *ProjectHandler) UpdateMemberRole(c *fiber.Ctx) error {
	var in dto.UpdateProjectMemberRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role es requerido"})
	}
	err := h.uc.UpdateMemberRole(c.Context(), c.Params("id"), c.Params("userId"), GetCompanyID(c), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "rol de membresía actualizado"})
}

// RemoveMember godoc
// @Summary      Quitar miembro del proyecto (admin, lead o creador)
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del proyecto"
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {object}  dto.MessageResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/members/{userId} [delete]
func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	err := h.uc.RemoveMember(c.Context(), c.Params("id"), c.Params("userId"), GetCompanyID(c), GetUserID(c), GetRole(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "miembro eliminado del proyecto"})
}
