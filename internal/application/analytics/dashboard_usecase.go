package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/application/normalizer"
	"github.com/jhoicas/alegra-reports-api/internal/application/ports"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// AnalyticsUseCase trae las facturas del rango desde Alegra, las normaliza y
// calcula los reportes. No guarda estado entre solicitudes.
type AnalyticsUseCase struct {
	source ports.InvoiceSource
	loc    *time.Location
	log    zerolog.Logger
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(source ports.InvoiceSource, loc *time.Location, log zerolog.Logger) *AnalyticsUseCase {
	return &AnalyticsUseCase{source: source, loc: loc, log: log}
}

// fetch una sola consulta consistente del rango; falla completa si falla Alegra.
func (uc *AnalyticsUseCase) fetch(ctx context.Context, op string, r entity.DateRange) (normalizer.InvoiceBatch, error) {
	raws, err := uc.source.ListInvoices(ctx, r)
	if err != nil {
		return normalizer.InvoiceBatch{}, fmt.Errorf("%s: %w", op, err)
	}
	batch := normalizer.Invoices(raws, uc.loc)
	ev := uc.log.Debug()
	if batch.Skipped > 0 {
		ev = uc.log.Warn()
	}
	ev.Str("op", op).
		Str("from", r.StartString()).
		Str("to", r.EndString()).
		Int("invoices", len(batch.Invoices)).
		Int("skipped", batch.Skipped).
		Msg("facturas normalizadas")
	return batch, nil
}

func (uc *AnalyticsUseCase) PeakHours(ctx context.Context, r entity.DateRange) (dto.PeakHoursDTO, error) {
	batch, err := uc.fetch(ctx, "peak_hours", r)
	if err != nil {
		return dto.PeakHoursDTO{}, err
	}
	return PeakHours(batch.Invoices, r), nil
}

func (uc *AnalyticsUseCase) TopCustomers(ctx context.Context, r entity.DateRange, limit int) (dto.TopCustomersDTO, error) {
	batch, err := uc.fetch(ctx, "top_customers", r)
	if err != nil {
		return dto.TopCustomersDTO{}, err
	}
	return TopCustomers(batch.Invoices, r, limit), nil
}

func (uc *AnalyticsUseCase) TopSellers(ctx context.Context, r entity.DateRange, limit int) (dto.TopSellersDTO, error) {
	batch, err := uc.fetch(ctx, "top_sellers", r)
	if err != nil {
		return dto.TopSellersDTO{}, err
	}
	return TopSellers(batch.Invoices, r, limit), nil
}

func (uc *AnalyticsUseCase) CustomerRetention(ctx context.Context, r entity.DateRange) (dto.RetentionDTO, error) {
	batch, err := uc.fetch(ctx, "customer_retention", r)
	if err != nil {
		return dto.RetentionDTO{}, err
	}
	return CustomerRetention(batch.Invoices, r), nil
}

func (uc *AnalyticsUseCase) SalesTrends(ctx context.Context, r entity.DateRange) (dto.TrendsDTO, error) {
	batch, err := uc.fetch(ctx, "sales_trends", r)
	if err != nil {
		return dto.TrendsDTO{}, err
	}
	return SalesTrends(batch.Invoices, r), nil
}

func (uc *AnalyticsUseCase) CrossSelling(ctx context.Context, r entity.DateRange, minSupport, limit int) (dto.CrossSellingDTO, error) {
	batch, err := uc.fetch(ctx, "cross_selling", r)
	if err != nil {
		return dto.CrossSellingDTO{}, err
	}
	return CrossSelling(batch.Invoices, r, minSupport, limit), nil
}

// DashboardParams parámetros compartidos por los reportes del dashboard.
type DashboardParams struct {
	Limit      int
	MinSupport int
}

// Dashboard trae las facturas una sola vez y corre los seis reportes en paralelo
// sobre el mismo slice (solo lectura).
func (uc *AnalyticsUseCase) Dashboard(ctx context.Context, r entity.DateRange, p DashboardParams) (*dto.DashboardDTO, error) {
	batch, err := uc.fetch(ctx, "dashboard", r)
	if err != nil {
		return nil, err
	}
	invoices := batch.Invoices

	// ── Goroutines para los seis reportes ─────────────────────────────────────
	peakCh := make(chan dto.PeakHoursDTO, 1)
	customersCh := make(chan dto.TopCustomersDTO, 1)
	sellersCh := make(chan dto.TopSellersDTO, 1)
	retentionCh := make(chan dto.RetentionDTO, 1)
	trendsCh := make(chan dto.TrendsDTO, 1)
	crossCh := make(chan dto.CrossSellingDTO, 1)

	go func() { peakCh <- PeakHours(invoices, r) }()
	go func() { customersCh <- TopCustomers(invoices, r, p.Limit) }()
	go func() { sellersCh <- TopSellers(invoices, r, p.Limit) }()
	go func() { retentionCh <- CustomerRetention(invoices, r) }()
	go func() { trendsCh <- SalesTrends(invoices, r) }()
	go func() { crossCh <- CrossSelling(invoices, r, p.MinSupport, p.Limit) }()

	return &dto.DashboardDTO{
		Summary:           dashboardSummary(batch, r),
		PeakHours:         <-peakCh,
		TopCustomers:      <-customersCh,
		TopSellers:        <-sellersCh,
		CustomerRetention: <-retentionCh,
		SalesTrends:       <-trendsCh,
		CrossSelling:      <-crossCh,
	}, nil
}

// dashboardSummary las anuladas se cuentan aparte y no suman al ingreso.
func dashboardSummary(batch normalizer.InvoiceBatch, r entity.DateRange) dto.DashboardSummaryDTO {
	s := dto.DashboardSummaryDTO{SkippedRecords: batch.Skipped}
	for _, inv := range batch.Invoices {
		if !r.Contains(inv.DateTime) {
			continue
		}
		s.TotalInvoices++
		if inv.Voided {
			s.VoidedInvoices++
			continue
		}
		s.ActiveInvoices++
		s.TotalRevenue += inv.Total
	}
	return s
}
