package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/alegra-reports-api/internal/application/sales"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

// SalesHandler totales, documentos y resúmenes de ventas.
type SalesHandler struct {
	uc  *sales.UseCase
	loc *time.Location
	now clock
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase, loc *time.Location) *SalesHandler {
	return &SalesHandler{uc: uc, loc: loc, now: time.Now}
}

// Totals godoc
// @Summary      Totales de venta agrupados (passthrough de /invoices/sales-totals)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from     query  string  true   "Desde (YYYY-MM-DD)"
// @Param        to       query  string  true   "Hasta (YYYY-MM-DD)"
// @Param        groupBy  query  string  false  "day | month"
// @Param        limit    query  int     false  "default 10, max 100"
// @Param        start    query  int     false  "offset"
// @Success      200  {object}  dto.SalesTotalsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/direct/sales/totals [get]
func (h *SalesHandler) Totals(c *fiber.Ctx) error {
	r, err := requiredRange(c, "from", "to", h.loc)
	if err != nil {
		return writeError(c, err)
	}
	req := sales.TotalsRequest{Range: r, GroupBy: c.Query("groupBy")}
	if req.Limit, err = queryInt(c, "limit", 0); err != nil {
		return writeError(c, err)
	}
	if req.Start, err = queryInt(c, "start", 0); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Totals(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": out.Data, "total": out.Total,
		"total_formatted": out.TotalFormatted, "metadata": out.Metadata})
}

// Documents godoc
// @Summary      Facturas normalizadas del rango
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  true  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.DocumentsDTO
// @Router       /api/direct/sales/documents [get]
func (h *SalesHandler) Documents(c *fiber.Ctx) error {
	r, err := requiredRange(c, "from", "to", h.loc)
	if err == nil {
		err = checkSpan("from", r)
	}
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Documents(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": out.Data, "metadata": out.Metadata})
}

// QuickSummary godoc
// @Summary      Total vendido en el rango
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Default: primero del mes"
// @Param        to    query  string  false  "Default: hoy"
// @Router       /api/sales/quick-summary [get]
func (h *SalesHandler) QuickSummary(c *fiber.Ctx) error {
	r, err := optionalRange(c, "from", "to", h.loc, h.now)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.QuickSummary(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

// BillsOpenTotals godoc
// @Summary      Saldo pendiente de facturas de proveedor
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from_date  query  string  false  "Default: primero del mes"
// @Param        to_date    query  string  false  "Default: hoy"
// @Router       /api/bills/open-totals [get]
func (h *SalesHandler) BillsOpenTotals(c *fiber.Ctx) error {
	r, err := optionalRange(c, "from_date", "to_date", h.loc, h.now)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.BillsOpenTotals(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

// MonthlySales godoc
// @Summary      Ventas del mes por medio de pago y por día
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "Default: año en curso"
// @Param        month  query  int  false  "1-12. Default: mes en curso"
// @Success      200  {object}  dto.MonthlySalesDTO
// @Router       /api/monthly_sales [get]
func (h *SalesHandler) MonthlySales(c *fiber.Ctx) error {
	today := h.now().In(h.loc)
	year, err := queryInt(c, "year", today.Year())
	if err != nil {
		return writeError(c, err)
	}
	month, err := queryInt(c, "month", int(today.Month()))
	if err != nil {
		return writeError(c, err)
	}
	if year < 2000 || year > 9999 {
		return writeError(c, domain.Invalid("year", "año inválido"))
	}
	out, err := h.uc.MonthlySales(c.UserContext(), year, time.Month(month))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
