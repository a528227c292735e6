package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// ChatHandler maneja las peticiones HTTP del chat por proyecto (protegido).
// El transporte es HTTP con polling; no hay canal websocket.
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// CreateRoom godoc
// @Summary      Crear sala de chat en un proyecto
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateChatRoomRequest  true  "Datos de la sala"
// @Success      201   {object}  dto.ChatRoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/chat/rooms [post]
func (h *ChatHandler) CreateRoom(c *fiber.Ctx) error {
	var in dto.CreateChatRoomRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProjectID == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "project_id y name son requeridos"})
	}
	out, err := h.uc.CreateRoom(c.Context(), GetCompanyID(c), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RoomsByProject godoc
// @Summary      Listar salas activas de un proyecto
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.ChatRoomResponse
// @Router       /api/projects/{projectId}/chat/rooms [get]
func (h *ChatHandler) RoomsByProject(c *fiber.Ctx) error {
	out, err := h.uc.RoomsByProject(c.Context(), c.Params("projectId"), GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// AddMember godoc
// @Summary      Agregar usuario a la sala
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sala"
// @Param        body  body  dto.AddChatMemberRequest  true  "Usuario"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/chat/rooms/{id}/members [post]
func (h *ChatHandler) AddMember(c *fiber.Ctx) error {
	var in dto.AddChatMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id es requerido"})
	}
	if err := h.uc.AddMember(c.Context(), c.Params("id"), GetCompanyID(c), in); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "miembro agregado a la sala"})
}

// RemoveMember godoc
// @Summary      Quitar usuario de la sala
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID de la sala"
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {object}  dto.MessageResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/chat/rooms/{id}/members/{userId} [delete]
func (h *ChatHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.uc.RemoveMember(c.Context(), c.Params("id"), GetCompanyID(c), c.Params("userId")); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "miembro eliminado de la sala"})
}

// Messages godoc
// @Summary      Listar mensajes de la sala (solo miembros, paginado)
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la sala"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.ChatMessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/chat/rooms/{id}/messages [get]
func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.Messages(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// PostMessage godoc
// @Summary      Publicar mensaje en la sala (solo miembros)
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sala"
// @Param        body  body  dto.PostMessageRequest  true  "Contenido"
// @Success      201   {object}  dto.ChatMessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/chat/rooms/{id}/messages [post]
func (h *ChatHandler) PostMessage(c *fiber.Ctx) error {
	var in dto.PostMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "content es requerido"})
	}
	out, err := h.uc.PostMessage(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// EditMessage godoc
// @Summary      Editar mensaje propio
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del mensaje"
// @Param        body  body  dto.EditMessageRequest  true  "Nuevo contenido"
// @Success      200   {object}  dto.ChatMessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/chat/messages/{id} [put]
func (h *ChatHandler) EditMessage(c *fiber.Ctx) error {
	var in dto.EditMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "content es requerido"})
	}
	out, err := h.uc.EditMessage(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "mensaje no encontrado"})
	}
	return c.JSON(out)
}

// DeleteMessage godoc
// @Summary      Borrar mensaje propio (borrado lógico)
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del mensaje"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/chat/messages/{id} [delete]
func (h *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	if err := h.uc.DeleteMessage(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "mensaje eliminado"})
}
