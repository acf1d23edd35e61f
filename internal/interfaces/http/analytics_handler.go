package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/alegra-reports-api/internal/application/analytics"
	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// AnalyticsHandler maneja los reportes de analítica de ventas.
type AnalyticsHandler struct {
	uc  *analytics.AnalyticsUseCase
	loc *time.Location
	now clock
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.AnalyticsUseCase, loc *time.Location) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, loc: loc, now: time.Now}
}

// reportParams lee rango, limit y min_support antes de consultar Alegra.
type reportParams struct {
	r          entity.DateRange
	limit      int // 0 = valor por defecto del reporte
	minSupport int
}

func (h *AnalyticsHandler) params(c *fiber.Ctx) (reportParams, error) {
	r, err := analyticsRange(c, h.loc, h.now)
	if err != nil {
		return reportParams{}, err
	}
	p := reportParams{r: r}
	if c.Query("limit") != "" {
		if p.limit, err = boundedInt(c, "limit", 0, 1, analytics.MaxLimit); err != nil {
			return reportParams{}, err
		}
	}
	if p.minSupport, err = queryInt(c, "min_support", analytics.DefaultMinSupport); err != nil {
		return reportParams{}, err
	}
	if p.minSupport < 1 {
		return reportParams{}, domain.Invalid("min_support", "debe ser mayor o igual a 1")
	}
	return p, nil
}

func report(c *fiber.Ctx, r entity.DateRange, data any) error {
	return c.JSON(dto.ReportResponse{
		Success:   true,
		DateRange: dto.DateRangeDTO{StartDate: r.StartString(), EndDate: r.EndString()},
		Data:      data,
	})
}

// run resuelve parámetros, ejecuta el reporte y responde con el envoltorio estándar.
func (h *AnalyticsHandler) run(c *fiber.Ctx, fn func(p reportParams) (any, error)) error {
	p, err := h.params(c)
	if err != nil {
		return writeError(c, err)
	}
	data, err := fn(p)
	if err != nil {
		return writeError(c, err)
	}
	return report(c, p.r, data)
}

// PeakHours godoc
// @Summary      Horas pico de venta
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        date        query  string  false  "Día único (YYYY-MM-DD)"
// @Param        start_date  query  string  false  "Inicio del período. Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período. Default: hoy."
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/analytics/peak-hours [get]
func (h *AnalyticsHandler) PeakHours(c *fiber.Ctx) error {
	return h.run(c, func(p reportParams) (any, error) {
		return h.uc.PeakHours(c.UserContext(), p.r)
	})
}

// TopCustomers godoc
// @Summary      Mejores clientes por monto comprado
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de clientes (default 10, max 100)"
// @Success      200  {object}  dto.ReportResponse
// @Router       /api/analytics/top-customers [get]
func (h *AnalyticsHandler) TopCustomers(c *fiber.Ctx) error {
	return h.run(c, func(p reportParams) (any, error) {
		return h.uc.TopCustomers(c.UserContext(), p.r, p.limit)
	})
}

// TopSellers godoc
// @Summary      Mejores vendedores
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Router       /api/analytics/top-sellers [get]
func (h *AnalyticsHandler) TopSellers(c *fiber.Ctx) error {
	return h.run(c, func(p reportParams) (any, error) {
		return h.uc.TopSellers(c.UserContext(), p.r, p.limit)
	})
}

// CustomerRetention godoc
// @Summary      Retención y segmentación RFM de clientes
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Router       /api/analytics/customer-retention [get]
func (h *AnalyticsHandler) CustomerRetention(c *fiber.Ctx) error {
	return h.run(c, func(p reportParams) (any, error) {
		return h.uc.CustomerRetention(c.UserContext(), p.r)
	})
}

// SalesTrends godoc
// @Summary      Tendencias diarias y por día de la semana
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Router       /api/analytics/sales-trends [get]
func (h *AnalyticsHandler) SalesTrends(c *fiber.Ctx) error {
	return h.run(c, func(p reportParams) (any, error) {
		return h.uc.SalesTrends(c.UserContext(), p.r)
	})
}

// CrossSelling godoc
// @Summary      Productos que se compran juntos
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        min_support  query  int  false  "Mínimo de facturas con el par (default 2)"
// @Router       /api/analytics/cross-selling [get]
func (h *AnalyticsHandler) CrossSelling(c *fiber.Ctx) error {
	return h.run(c, func(p reportParams) (any, error) {
		return h.uc.CrossSelling(c.UserContext(), p.r, p.minSupport, p.limit)
	})
}

// Dashboard godoc
// @Summary      Los seis reportes y el resumen con una sola consulta a Alegra
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Router       /api/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	return h.run(c, func(p reportParams) (any, error) {
		return h.uc.Dashboard(c.UserContext(), p.r, analytics.DashboardParams{Limit: p.limit, MinSupport: p.minSupport})
	})
}
