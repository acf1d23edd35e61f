package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/alegra-reports-api/internal/application/ports"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

type fakeInvoiceSource struct {
	records []ports.Record
	err     error
	calls   int
}

func (f *fakeInvoiceSource) ListInvoices(_ context.Context, _ entity.DateRange) ([]ports.Record, error) {
	f.calls++
	return f.records, f.err
}

func rawInvoices() []ports.Record {
	return []ports.Record{
		{"id": "1", "datetime": "2025-12-01 10:00:00", "total": 100000.0, "status": "closed",
			"client": map[string]any{"id": "c1", "name": "Ana"}, "seller": map[string]any{"id": "s1", "name": "Luis"},
			"items": []any{map[string]any{"name": "A", "price": 50000.0, "quantity": 1.0}, map[string]any{"name": "B", "price": 50000.0, "quantity": 1.0}}},
		{"id": "2", "datetime": "2025-12-02 11:00:00", "total": 60000.0, "status": "closed",
			"client": map[string]any{"id": "c1", "name": "Ana"},
			"items": []any{map[string]any{"name": "A", "price": 30000.0, "quantity": 1.0}, map[string]any{"name": "B", "price": 30000.0, "quantity": 1.0}}},
		{"id": "3", "datetime": "2025-12-02 12:00:00", "total": 40000.0, "status": "void"},
		{"total": 1.0},
	}
}

func TestDashboard_UnaConsultaSeisReportes(t *testing.T) {
	src := &fakeInvoiceSource{records: rawInvoices()}
	uc := NewAnalyticsUseCase(src, bogota, zerolog.Nop())

	out, err := uc.Dashboard(context.Background(), week(t), DashboardParams{Limit: 10, MinSupport: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 3, out.Summary.TotalInvoices)
	assert.Equal(t, 2, out.Summary.ActiveInvoices)
	assert.Equal(t, 1, out.Summary.VoidedInvoices)
	assert.Equal(t, int64(160000), out.Summary.TotalRevenue)
	assert.Equal(t, 1, out.Summary.SkippedRecords)

	require.Len(t, out.TopCustomers.Customers, 1)
	assert.Equal(t, int64(160000), out.TopCustomers.Customers[0].TotalSpent)
	require.Len(t, out.CrossSelling.Pairs, 1)
	assert.Equal(t, 2, out.CrossSelling.Pairs[0].CoOccurrence)
	assert.Equal(t, 1, out.CustomerRetention.FrequencySegments.Recurring)
	assert.Len(t, out.SalesTrends.Daily, 7)
	assert.Len(t, out.TopSellers.Sellers, 2)
	assert.Equal(t, 2, out.PeakHours.Summary.TotalInvoices)
}

func TestAnalyticsUseCase_FallaAlegraSinResultadoParcial(t *testing.T) {
	upstream := &domain.UpstreamError{Op: "list_invoices", Kind: domain.UpstreamTimeout}
	uc := NewAnalyticsUseCase(&fakeInvoiceSource{err: upstream}, bogota, zerolog.Nop())

	out, err := uc.Dashboard(context.Background(), week(t), DashboardParams{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)

	_, err = uc.TopCustomers(context.Background(), week(t), 10)
	var ue *domain.UpstreamError
	assert.True(t, errors.As(err, &ue))
}

func TestAnalyticsUseCase_ReportesIndividuales(t *testing.T) {
	uc := NewAnalyticsUseCase(&fakeInvoiceSource{records: rawInvoices()}, bogota, zerolog.Nop())
	ctx := context.Background()
	r := week(t)

	peak, err := uc.PeakHours(ctx, r)
	require.NoError(t, err)
	assert.Len(t, peak.TopHours, 2)

	sellers, err := uc.TopSellers(ctx, r, 1)
	require.NoError(t, err)
	assert.Len(t, sellers.Sellers, 1)

	retention, err := uc.CustomerRetention(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, 1, retention.TotalCustomers)

	trends, err := uc.SalesTrends(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, int64(160000), trends.Summary.TotalRevenue)

	cross, err := uc.CrossSelling(ctx, r, 1, 5)
	require.NoError(t, err)
	assert.Len(t, cross.Pairs, 1)
}
