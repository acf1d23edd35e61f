package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/alegra-reports-api/internal/application/auth"
	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

// UserHandler administración de usuarios.
type UserHandler struct {
	uc *auth.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "default 50, max 200"
// @Param        offset  query  int  false  "offset"
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, domain.Invalid("", "parámetros de paginación inválidos"))
	}
	users, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "users": users, "total": len(users)})
}

// Get godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	u, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": u})
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, password, name, role"
// @Success      201  {object}  dto.UserResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, domain.Invalid("body", "cuerpo inválido"))
	}
	u, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "user": u})
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a cambiar"
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, domain.Invalid("body", "cuerpo inválido"))
	}
	u, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": u})
}

// Delete godoc
// @Summary      Desactivar usuario
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "usuario desactivado"})
}

// ChangePassword godoc
// @Summary      Cambiar contraseña propia
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ChangePasswordRequest  true  "current_password, new_password"
// @Router       /api/users/change-password [post]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, domain.Invalid("body", "cuerpo inválido"))
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "contraseña actualizada"})
}

// ResetPassword godoc
// @Summary      Fijar contraseña de otro usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                    true  "ID"
// @Param        body  body  dto.ResetPasswordRequest  true  "new_password"
// @Router       /api/users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, domain.Invalid("body", "cuerpo inválido"))
	}
	if err := h.uc.ResetPassword(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "contraseña restablecida"})
}
