package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/alegra-reports-api/internal/application/cashclosing"
	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

// ClosingPDFGenerator lo implementa infrastructure/pdf.MarotoPDFGenerator.
type ClosingPDFGenerator interface {
	GenerateCashClosingPDF(ctx context.Context, closing *dto.CashClosingResponse) ([]byte, error)
}

// CashHandler cierre de caja.
type CashHandler struct {
	uc  *cashclosing.UseCase
	pdf ClosingPDFGenerator
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *cashclosing.UseCase, pdf ClosingPDFGenerator) *CashHandler {
	return &CashHandler{uc: uc, pdf: pdf}
}

func (h *CashHandler) close(c *fiber.Ctx) (*dto.CashClosingResponse, error) {
	var in dto.CashClosingRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, domain.Invalid("body", "JSON inválido en el body del request")
	}
	return h.uc.Close(c.UserContext(), in)
}

// SumPayments godoc
// @Summary      Cierre de caja del día
// @Description  Calcula base y consignación con el conteo físico y cruza con las ventas del día
// @Description  en Alegra. Si Alegra falla responde 502 con el conteo y alegra.error.
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashClosingRequest  true  "date, coins, bills, excedente, gastos_operativos, prestamos"
// @Success      200  {object}  dto.CashClosingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.CashClosingResponse
// @Router       /api/sum_payments [post]
func (h *CashHandler) SumPayments(c *fiber.Ctx) error {
	resp, err := h.close(c)
	switch {
	case err != nil && resp != nil:
		// respuesta parcial: el conteo es válido aunque Alegra no respondió
		return c.Status(fiber.StatusBadGateway).JSON(resp)
	case err != nil:
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// SumPaymentsPDF godoc
// @Summary      Cierre de caja en PDF
// @Description  Mismo cálculo que /api/sum_payments. Si Alegra falla el PDF muestra el error
// @Description  y la cabecera X-Alegra-Status vale "error".
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Router       /api/sum_payments/pdf [post]
func (h *CashHandler) SumPaymentsPDF(c *fiber.Ctx) error {
	resp, err := h.close(c)
	alegraStatus := "ok"
	switch {
	case err != nil && resp != nil:
		alegraStatus = "error"
	case err != nil:
		return writeError(c, err)
	}
	doc, err := h.pdf.GenerateCashClosingPDF(c.UserContext(), resp)
	if err != nil {
		return writeError(c, err)
	}
	c.Set("X-Alegra-Status", alegraStatus)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="cierre-%s.pdf"`, resp.DateRequested))
	return c.Send(doc)
}
