package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/alegra-reports-api/internal/application/auth"
	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

// AuthHandler maneja login y verificación de token.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, domain.Invalid("body", "cuerpo inválido"))
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar token
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VerifyResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
	out, err := h.uc.Verify(token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
