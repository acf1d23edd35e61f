package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/alegra-reports-api/internal/application/catalog"
	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// KoajHandler catálogo de códigos KOAJ.
type KoajHandler struct {
	uc *catalog.UseCase
}

// NewKoajHandler construye el handler.
func NewKoajHandler(uc *catalog.UseCase) *KoajHandler {
	return &KoajHandler{uc: uc}
}

// List godoc
// @Summary      Listar códigos KOAJ
// @Tags         koaj
// @Security     Bearer
// @Produce      json
// @Param        search            query  string  false  "Código, categoría o descripción"
// @Param        applies_to        query  string  false  "hombre, mujer, niño, niña, todos"
// @Param        include_inactive  query  bool    false  "Solo admin"
// @Success      200  {object}  dto.KoajCodeList
// @Router       /api/koaj-codes [get]
func (h *KoajHandler) List(c *fiber.Ctx) error {
	q := catalog.ListQuery{
		Search:          c.Query("search"),
		AppliesTo:       c.Query("applies_to"),
		IncludeInactive: c.QueryBool("include_inactive") && GetRole(c) == entity.RoleAdmin,
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "codes": out.Codes, "total": out.Total})
}

// Guide godoc
// @Summary      Guía de lectura del código de barras KOAJ
// @Tags         koaj
// @Security     Bearer
// @Produce      json
// @Router       /api/koaj-codes/guide [get]
func (h *KoajHandler) Guide(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "guide": h.uc.Guide()})
}

// Get godoc
// @Summary      Obtener código KOAJ
// @Tags         koaj
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Router       /api/koaj-codes/{id} [get]
func (h *KoajHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "code": out})
}

// Create godoc
// @Summary      Crear código KOAJ
// @Tags         koaj
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.KoajCodeRequest  true  "code, category, description, applies_to"
// @Success      201  {object}  dto.KoajCodeResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/koaj-codes [post]
func (h *KoajHandler) Create(c *fiber.Ctx) error {
	var in dto.KoajCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, domain.Invalid("body", "cuerpo inválido"))
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "code": out})
}

// Update godoc
// @Summary      Actualizar código KOAJ
// @Tags         koaj
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                  true  "ID"
// @Param        body  body  dto.KoajCodeRequest  true  "campos a cambiar"
// @Router       /api/koaj-codes/{id} [put]
func (h *KoajHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.KoajCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, domain.Invalid("body", "cuerpo inválido"))
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "code": out})
}

// Delete godoc
// @Summary      Desactivar código KOAJ
// @Tags         koaj
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Router       /api/koaj-codes/{id} [delete]
func (h *KoajHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "código desactivado"})
}
