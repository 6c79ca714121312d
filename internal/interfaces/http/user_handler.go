package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/terraflow-api/internal/application/auth"
	"github.com/jhoicas/terraflow-api/internal/application/dto"
	"github.com/jhoicas/terraflow-api/internal/application/usecase"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/pkg/logger"
)

// UserHandler administración de cuentas (solo admin).
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        role    query  string  false  "admin | customer | supplier"
// @Param        search  query  string  false  "nombre, email o negocio"
// @Param        limit   query  int     false  "máximo 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.DataResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var in dto.UserListRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	items, page, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Data: items, Page: page})
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid user id")
	}
	u, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(u)
}

// UpdateStatus godoc
// @Summary      Activar o desactivar usuario
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID del usuario"
// @Param        body  body  dto.UpdateUserStatusRequest  true  "is_active"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/status [put]
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid user id")
	}
	var in dto.UpdateUserStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, msgInvalidBody)
	}
	if in.IsActive == nil {
		return badRequest(c, "is_active is required")
	}
	if !*in.IsActive && isSelf(c, id) {
		return badRequest(c, "Cannot disable your own account")
	}
	if err := h.uc.SetStatus(c.UserContext(), id, *in.IsActive); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "User status updated"})
}

// UpdateRole godoc
// @Summary      Cambiar rol de usuario
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRoleRequest  true  "role"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid user id")
	}
	var in dto.UpdateUserRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, msgInvalidBody)
	}
	if entity.ValidRole(in.Role) && in.Role != entity.RoleAdmin && isSelf(c, id) {
		return badRequest(c, "Cannot remove your own admin role")
	}
	if err := h.uc.FixRole(c.UserContext(), id, in.Role); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "User role updated"})
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid user id")
	}
	if isSelf(c, id) {
		return badRequest(c, "Cannot delete your own account")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "User deleted"})
}

// isSelf indica si id es la cuenta del token. El admin fijo no tiene fila propia.
func isSelf(c *fiber.Ctx, id int64) bool {
	return id == GetUserID(c) && GetEmail(c) != auth.LegacyAdminEmail
}
