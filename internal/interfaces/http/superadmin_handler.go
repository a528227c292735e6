package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// SuperadminHandler maneja la consola de plataforma: operadores, empresas,
// planes y agregados globales. Sus rutas usan SuperadminMiddleware (realm
// separado), nunca el gate de suscripción.
type SuperadminHandler struct {
	uc *usecase.SuperadminUseCase
}

// NewSuperadminHandler construye el handler.
func NewSuperadminHandler(uc *usecase.SuperadminUseCase) *SuperadminHandler {
	return &SuperadminHandler{uc: uc}
}

// Login godoc
// @Summary      Login de operador de plataforma
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuperadminLoginRequest  true  "email, password"
// @Success      200   {object}  dto.SuperadminLoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/superadmin/login [post]
func (h *SuperadminHandler) Login(c *fiber.Ctx) error {
	var in dto.SuperadminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Alta de operador de plataforma
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuperadminRegisterRequest  true  "Datos del operador"
// @Success      201   {object}  dto.SuperadminResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/superadmin/register [post]
func (h *SuperadminHandler) Register(c *fiber.Ctx) error {
	var in dto.SuperadminRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password, first_name y last_name son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Profile godoc
// @Summary      Perfil del operador autenticado
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuperadminResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/superadmin/profile [get]
func (h *SuperadminHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "operador no encontrado"})
	}
	return c.JSON(out)
}

// ListCompanies godoc
// @Summary      Listar empresas de la plataforma
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.CompanyResponse
// @Router       /api/superadmin/companies [get]
func (h *SuperadminHandler) ListCompanies(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListCompanies(c.Context(), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateCompanySubscription godoc
// @Summary      Cambiar la suscripción de una empresa
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanySubscriptionRequest  true  "Nuevo estado y vencimiento"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id}/subscription [put]
func (h *SuperadminHandler) UpdateCompanySubscription(c *fiber.Ctx) error {
	var in dto.UpdateCompanySubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	out, err := h.uc.UpdateCompanySubscription(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	return c.JSON(out)
}

// ActivateCompany godoc
// @Summary      Reactivar una empresa
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id}/activate [put]
func (h *SuperadminHandler) ActivateCompany(c *fiber.Ctx) error {
	if err := h.uc.SetCompanyActive(c.Context(), c.Params("id"), true); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "empresa activada"})
}

// DeactivateCompany godoc
// @Summary      Desactivar una empresa (bloquea todo acceso de sus usuarios)
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id}/deactivate [put]
func (h *SuperadminHandler) DeactivateCompany(c *fiber.Ctx) error {
	if err := h.uc.SetCompanyActive(c.Context(), c.Params("id"), false); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "empresa desactivada"})
}

// PlatformStats godoc
// @Summary      Agregados globales de la plataforma
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PlatformStatsResponse
// @Router       /api/superadmin/stats [get]
func (h *SuperadminHandler) PlatformStats(c *fiber.Ctx) error {
	out, err := h.uc.PlatformStats(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ── Planes ────────────────────────────────────────────────────────────────────

// CreatePlan godoc
// @Summary      Crear plan de suscripción
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlanRequest  true  "Datos del plan"
// @Success      201   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/superadmin/plans [post]
func (h *SuperadminHandler) CreatePlan(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.UserLimit <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y user_limit son requeridos"})
	}
	out, err := h.uc.CreatePlan(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPlans godoc
// @Summary      Listar planes de suscripción
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PlanResponse
// @Router       /api/superadmin/plans [get]
func (h *SuperadminHandler) ListPlans(c *fiber.Ctx) error {
	out, err := h.uc.ListPlans(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdatePlan godoc
// @Summary      Actualizar plan de suscripción
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plan"
// @Param        body  body  dto.UpdatePlanRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/superadmin/plans/{id} [put]
func (h *SuperadminHandler) UpdatePlan(c *fiber.Ctx) error {
	var in dto.UpdatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdatePlan(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "plan no encontrado"})
	}
	return c.JSON(out)
}

// DeletePlan godoc
// @Summary      Eliminar plan de suscripción
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/superadmin/plans/{id} [delete]
func (h *SuperadminHandler) DeletePlan(c *fiber.Ctx) error {
	if err := h.uc.DeletePlan(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "plan eliminado"})
}
