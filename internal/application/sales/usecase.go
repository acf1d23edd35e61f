// Package sales expone los reportes de ventas de Alegra: totales agrupados,
// documentos, resumen rápido, cuentas por pagar y ventas por medio de pago.
package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/application/normalizer"
	"github.com/jhoicas/alegra-reports-api/internal/application/ports"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

// Valores por defecto de /invoices/sales-totals.
const (
	DefaultTotalsLimit = 10
	MaxTotalsLimit     = 100
	quickSummaryLimit  = 100
	GroupByDay         = "day"
	GroupByMonth       = "month"
)

// TotalsRequest parámetros de GET /api/direct/sales/totals.
type TotalsRequest struct {
	Range   entity.DateRange
	GroupBy string
	Limit   int
	Start   int
}

// UseCase reportes de ventas. Sin estado entre solicitudes.
type UseCase struct {
	totals     ports.SalesSource
	invoices   ports.InvoiceSource
	loc        *time.Location
	alegraUser string
	now        func() time.Time
	log        zerolog.Logger
}

// NewUseCase construye el caso de uso. alegraUser se informa en los resúmenes de pago.
func NewUseCase(totals ports.SalesSource, invoices ports.InvoiceSource, loc *time.Location, alegraUser string, log zerolog.Logger) *UseCase {
	return &UseCase{
		totals:     totals,
		invoices:   invoices,
		loc:        loc,
		alegraUser: alegraUser,
		now:        time.Now,
		log:        log,
	}
}

func (req *TotalsRequest) normalize() error {
	switch req.GroupBy {
	case "":
		req.GroupBy = GroupByDay
	case GroupByDay, GroupByMonth:
	default:
		return domain.Invalid("groupBy", `debe ser "day" o "month"`)
	}
	switch {
	case req.Limit == 0:
		req.Limit = DefaultTotalsLimit
	case req.Limit < 0 || req.Limit > MaxTotalsLimit:
		return domain.Invalid("limit", "debe estar entre 1 y %d", MaxTotalsLimit)
	}
	if req.Start < 0 {
		return domain.Invalid("start", "no puede ser negativo")
	}
	return nil
}

// Totals totales de venta agrupados por día o mes, tal como los entrega Alegra.
func (uc *UseCase) Totals(ctx context.Context, req TotalsRequest) (*dto.SalesTotalsDTO, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}
	rows, err := uc.totals.SalesTotals(ctx, ports.SalesTotalsQuery{
		From:    req.Range.StartString(),
		To:      req.Range.EndString(),
		GroupBy: req.GroupBy,
		Limit:   req.Limit,
		Start:   req.Start,
	})
	if err != nil {
		return nil, fmt.Errorf("sales_totals: %w", err)
	}
	total := sumTotals(rows)
	out := &dto.SalesTotalsDTO{
		Data:           make([]map[string]any, 0, len(rows)),
		Total:          total,
		TotalFormatted: money.FormatCOP(total),
		Metadata: dto.SalesTotalsMetadata{
			FromDate: req.Range.StartString(),
			ToDate:   req.Range.EndString(),
			GroupBy:  req.GroupBy,
			Limit:    req.Limit,
			Start:    req.Start,
		},
	}
	for _, row := range rows {
		out.Data = append(out.Data, row)
	}
	uc.log.Info().
		Str("op", "sales_totals").
		Str("from", out.Metadata.FromDate).
		Str("to", out.Metadata.ToDate).
		Str("group_by", req.GroupBy).
		Int("rows", len(rows)).
		Msg("totales de venta")
	return out, nil
}

// QuickSummary suma de ventas del rango agrupadas por día (hasta 100 días).
func (uc *UseCase) QuickSummary(ctx context.Context, r entity.DateRange) (*dto.QuickSummaryDTO, error) {
	rows, err := uc.totals.SalesTotals(ctx, ports.SalesTotalsQuery{
		From:    r.StartString(),
		To:      r.EndString(),
		GroupBy: GroupByDay,
		Limit:   quickSummaryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("quick_summary: %w", err)
	}
	total := sumTotals(rows)
	return &dto.QuickSummaryDTO{
		TotalSales:          total,
		TotalSalesFormatted: money.FormatCOP(total),
		DaysCount:           len(rows),
		DateRange:           dto.QuickSummaryRange{From: r.StartString(), To: r.EndString()},
	}, nil
}

// BillsOpenTotals monto pendiente de cuentas por pagar en el rango.
func (uc *UseCase) BillsOpenTotals(ctx context.Context, r entity.DateRange) (*dto.BillsOpenTotalsDTO, error) {
	rec, err := uc.totals.BillsOpenTotals(ctx, r.StartString(), r.EndString())
	if err != nil {
		return nil, fmt.Errorf("bills_open_totals: %w", err)
	}
	missing := money.Pesos(money.FromAny(rec["missingAmount"]))
	return &dto.BillsOpenTotalsDTO{
		MissingAmount:          missing,
		MissingAmountFormatted: money.FormatCOP(missing),
		TotalDocuments:         int(money.FromAny(rec["totalDocuments"]).IntPart()),
		FromDate:               r.StartString(),
		ToDate:                 r.EndString(),
	}, nil
}

// Documents todas las facturas del rango, normalizadas y ordenadas por fecha.
func (uc *UseCase) Documents(ctx context.Context, r entity.DateRange) (*dto.DocumentsDTO, error) {
	batch, err := uc.fetch(ctx, "sales_documents", r)
	if err != nil {
		return nil, err
	}
	invoices := batch.Invoices
	sort.SliceStable(invoices, func(i, j int) bool {
		if !invoices[i].DateTime.Equal(invoices[j].DateTime) {
			return invoices[i].DateTime.Before(invoices[j].DateTime)
		}
		return invoices[i].ID < invoices[j].ID
	})
	out := &dto.DocumentsDTO{
		Data: make([]dto.DocumentDTO, 0, len(invoices)),
		Metadata: dto.DocumentsMetadata{
			FromDate:       r.StartString(),
			ToDate:         r.EndString(),
			TotalInvoices:  len(invoices),
			DaysProcessed:  len(r.Days()),
			SkippedRecords: batch.Skipped,
		},
	}
	for _, inv := range invoices {
		out.Data = append(out.Data, documentDTO(inv))
	}
	return out, nil
}

// PaymentSummary ventas de un día por medio de pago; excluye facturas anuladas.
func (uc *UseCase) PaymentSummary(ctx context.Context, day time.Time) (*dto.PaymentSummaryDTO, error) {
	r := entity.SingleDay(day, uc.loc)
	batch, err := uc.fetch(ctx, "payment_summary", r)
	if err != nil {
		return nil, err
	}
	t := tally(batch.Invoices, r)
	return &dto.PaymentSummaryDTO{
		DateRequested: r.StartString(),
		UsernameUsed:  uc.alegraUser,
		Results:       t.results(),
		TotalSale:     methodTotal("Total venta", t.total),
		InvoiceCount:  t.count,
	}, nil
}

// MonthlySales ventas del mes por medio de pago y por día. El mes en curso llega hasta hoy;
// meses futuros se rechazan.
func (uc *UseCase) MonthlySales(ctx context.Context, year int, month time.Month) (*dto.MonthlySalesDTO, error) {
	if month < time.January || month > time.December {
		return nil, domain.Invalid("month", "debe estar entre 1 y 12")
	}
	today := entity.SingleDay(uc.now(), uc.loc).Start
	r := entity.WholeMonth(year, month, uc.loc)
	if r.Start.After(today) {
		return nil, domain.Invalid("month", "no puede ser un mes futuro")
	}
	if r.End.After(today) {
		r.End = today
	}

	batch, err := uc.fetch(ctx, "monthly_sales", r)
	if err != nil {
		return nil, err
	}
	t := tally(batch.Invoices, r)

	out := &dto.MonthlySalesDTO{
		Year:           year,
		Month:          int(month),
		FromDate:       r.StartString(),
		ToDate:         r.EndString(),
		Results:        t.results(),
		TotalSale:      methodTotal("Total venta", t.total),
		Daily:          make([]dto.DailySalesDTO, 0, len(r.Days())),
		InvoiceCount:   t.count,
		VoidedInvoices: t.voided,
	}
	for _, d := range r.Days() {
		key := d.Format(entity.DateLayout)
		out.Daily = append(out.Daily, dto.DailySalesDTO{
			Date:         key,
			Total:        t.daily[key],
			Formatted:    money.FormatCOP(t.daily[key]),
			InvoiceCount: t.dailyCount[key],
		})
	}
	uc.log.Info().
		Str("op", "monthly_sales").
		Str("from", out.FromDate).
		Str("to", out.ToDate).
		Int("invoices", t.count).
		Int64("total", t.total).
		Msg("ventas del mes")
	return out, nil
}

func (uc *UseCase) fetch(ctx context.Context, op string, r entity.DateRange) (normalizer.InvoiceBatch, error) {
	raws, err := uc.invoices.ListInvoices(ctx, r)
	if err != nil {
		return normalizer.InvoiceBatch{}, fmt.Errorf("%s: %w", op, err)
	}
	batch := normalizer.Invoices(raws, uc.loc)
	if batch.Skipped > 0 {
		uc.log.Warn().
			Str("op", op).
			Str("from", r.StartString()).
			Str("to", r.EndString()).
			Int("skipped", batch.Skipped).
			Msg("facturas descartadas al normalizar")
	}
	return batch, nil
}

func sumTotals(rows []ports.Record) int64 {
	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(money.FromAny(row["total"]))
	}
	return money.Pesos(sum)
}
