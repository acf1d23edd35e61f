package sales

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/alegra-reports-api/internal/application/ports"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

var bogota = time.FixedZone("COT", -5*60*60)

type fakeAlegra struct {
	invoices []ports.Record
	totals   []ports.Record
	bills    ports.Record
	err      error
	ranges   []entity.DateRange
	queries  []ports.SalesTotalsQuery
}

func (f *fakeAlegra) ListInvoices(_ context.Context, r entity.DateRange) ([]ports.Record, error) {
	f.ranges = append(f.ranges, r)
	return f.invoices, f.err
}

func (f *fakeAlegra) SalesTotals(_ context.Context, q ports.SalesTotalsQuery) ([]ports.Record, error) {
	f.queries = append(f.queries, q)
	return f.totals, f.err
}

func (f *fakeAlegra) BillsOpenTotals(_ context.Context, _, _ string) (ports.Record, error) {
	return f.bills, f.err
}

func newUseCase(f *fakeAlegra) *UseCase {
	uc := NewUseCase(f, f, bogota, "caja@tienda.co", zerolog.Nop())
	uc.now = func() time.Time { return time.Date(2025, 12, 10, 18, 0, 0, 0, bogota) }
	return uc
}

func dayRange(t *testing.T, from, to string) entity.DateRange {
	t.Helper()
	s, err := time.ParseInLocation(entity.DateLayout, from, bogota)
	require.NoError(t, err)
	e, err := time.ParseInLocation(entity.DateLayout, to, bogota)
	require.NoError(t, err)
	r, err := entity.NewDateRange(s, e, bogota)
	require.NoError(t, err)
	return r
}

func dayInvoices() []ports.Record {
	return []ports.Record{
		{"id": "10", "datetime": "2025-12-05 09:30:00", "total": 80000.0, "status": "closed",
			"payments": []any{
				map[string]any{"paymentMethod": "cash", "amount": 30000.0},
				map[string]any{"paymentMethod": "credit-card", "amount": 50000.0},
			}},
		{"id": "11", "datetime": "2025-12-05 16:00:00", "total": 20000.0, "status": "closed", "paymentMethod": "transfer"},
		{"id": "12", "datetime": "2025-12-05 17:00:00", "total": 99000.0, "status": "void", "paymentMethod": "cash"},
		{"id": "13", "datetime": "2025-12-07 11:00:00", "total": 15000.0, "status": "closed", "paymentMethod": "debit-card"},
	}
}

func TestTotals_ValidaYReenvia(t *testing.T) {
	f := &fakeAlegra{totals: []ports.Record{{"date": "2025-12-01", "total": 1000.4}, {"date": "2025-12-02", "total": "2000.2"}}}
	uc := newUseCase(f)

	out, err := uc.Totals(context.Background(), TotalsRequest{Range: dayRange(t, "2025-12-01", "2025-12-10")})
	require.NoError(t, err)
	assert.Equal(t, int64(3001), out.Total)
	assert.Equal(t, "$3.001", out.TotalFormatted)
	assert.Len(t, out.Data, 2)
	assert.Equal(t, GroupByDay, out.Metadata.GroupBy)
	assert.Equal(t, DefaultTotalsLimit, out.Metadata.Limit)
	require.Len(t, f.queries, 1)
	assert.Equal(t, "2025-12-10", f.queries[0].To)

	_, err = uc.Totals(context.Background(), TotalsRequest{Range: dayRange(t, "2025-12-01", "2025-12-10"), GroupBy: "week"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Totals(context.Background(), TotalsRequest{Range: dayRange(t, "2025-12-01", "2025-12-10"), Start: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, f.queries, 1)
}

func TestQuickSummary_SumaDias(t *testing.T) {
	f := &fakeAlegra{totals: []ports.Record{{"total": 1234567.0}, {"total": 1.0}}}
	out, err := newUseCase(f).QuickSummary(context.Background(), dayRange(t, "2025-12-13", "2025-12-14"))
	require.NoError(t, err)

	assert.Equal(t, int64(1234568), out.TotalSales)
	assert.Equal(t, "$1.234.568", out.TotalSalesFormatted)
	assert.Equal(t, 2, out.DaysCount)
	assert.Equal(t, "2025-12-13", out.DateRange.From)
	assert.Equal(t, quickSummaryLimit, f.queries[0].Limit)
}

func TestBillsOpenTotals(t *testing.T) {
	f := &fakeAlegra{bills: ports.Record{"missingAmount": 2500000.6, "totalDocuments": 7.0}}
	out, err := newUseCase(f).BillsOpenTotals(context.Background(), dayRange(t, "2025-12-01", "2025-12-31"))
	require.NoError(t, err)

	assert.Equal(t, int64(2500001), out.MissingAmount)
	assert.Equal(t, "$2.500.001", out.MissingAmountFormatted)
	assert.Equal(t, 7, out.TotalDocuments)
}

func TestDocuments_OrdenYMetadatos(t *testing.T) {
	raws := append(dayInvoices(), ports.Record{"total": 5.0})
	out, err := newUseCase(&fakeAlegra{invoices: raws}).Documents(context.Background(), dayRange(t, "2025-12-05", "2025-12-07"))
	require.NoError(t, err)

	require.Len(t, out.Data, 4)
	assert.Equal(t, "10", out.Data[0].ID)
	assert.Equal(t, "13", out.Data[3].ID)
	assert.True(t, out.Data[2].Voided)
	assert.Len(t, out.Data[0].Payments, 2)
	assert.Equal(t, 4, out.Metadata.TotalInvoices)
	assert.Equal(t, 3, out.Metadata.DaysProcessed)
	assert.Equal(t, 1, out.Metadata.SkippedRecords)
}

func TestPaymentSummary_PorMedioDePago(t *testing.T) {
	f := &fakeAlegra{invoices: dayInvoices()}
	out, err := newUseCase(f).PaymentSummary(context.Background(), time.Date(2025, 12, 5, 0, 0, 0, 0, bogota))
	require.NoError(t, err)

	assert.Equal(t, "2025-12-05", out.DateRequested)
	assert.Equal(t, "caja@tienda.co", out.UsernameUsed)
	assert.Equal(t, int64(30000), out.Results[string(entity.PaymentCash)].Total)
	assert.Equal(t, int64(50000), out.Results[string(entity.PaymentCreditCard)].Total)
	assert.Equal(t, int64(20000), out.Results[string(entity.PaymentTransfer)].Total)
	assert.Equal(t, int64(0), out.Results[string(entity.PaymentDebitCard)].Total)
	assert.Len(t, out.Results, len(entity.PaymentMethods))
	assert.Equal(t, int64(100000), out.TotalSale.Total)
	assert.Equal(t, "$100.000", out.TotalSale.Formatted)
	assert.Equal(t, 2, out.InvoiceCount)
	require.Len(t, f.ranges, 1)
	assert.Equal(t, "2025-12-05", f.ranges[0].EndString())
}

func TestMonthlySales_MesEnCurso(t *testing.T) {
	f := &fakeAlegra{invoices: dayInvoices()}
	out, err := newUseCase(f).MonthlySales(context.Background(), 2025, time.December)
	require.NoError(t, err)

	assert.Equal(t, "2025-12-01", out.FromDate)
	assert.Equal(t, "2025-12-10", out.ToDate)
	assert.Len(t, out.Daily, 10)
	assert.Equal(t, int64(100000), out.Daily[4].Total)
	assert.Equal(t, 2, out.Daily[4].InvoiceCount)
	assert.Equal(t, int64(15000), out.Daily[6].Total)
	assert.Equal(t, int64(115000), out.TotalSale.Total)
	assert.Equal(t, 3, out.InvoiceCount)
	assert.Equal(t, 1, out.VoidedInvoices)
}

func TestMonthlySales_Validacion(t *testing.T) {
	f := &fakeAlegra{}
	uc := newUseCase(f)

	_, err := uc.MonthlySales(context.Background(), 2026, time.January)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.MonthlySales(context.Background(), 2025, 13)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.ranges)

	out, err := uc.MonthlySales(context.Background(), 2025, time.November)
	require.NoError(t, err)
	assert.Len(t, out.Daily, 30)
}

func TestSales_FallaAlegra(t *testing.T) {
	f := &fakeAlegra{err: &domain.UpstreamError{Op: "list_invoices", Kind: domain.UpstreamUnavailable, Status: 503}}
	uc := newUseCase(f)

	_, err := uc.Documents(context.Background(), dayRange(t, "2025-12-01", "2025-12-02"))
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	_, err = uc.QuickSummary(context.Background(), dayRange(t, "2025-12-01", "2025-12-02"))
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
