package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

var bogota = time.FixedZone("COT", -5*60*60)

// semana del lunes 1 al domingo 7 de diciembre de 2025.
func week(t *testing.T) entity.DateRange {
	t.Helper()
	r, err := entity.NewDateRange(at(1, 0), at(7, 0), bogota)
	require.NoError(t, err)
	return r
}

func at(day, hour int) time.Time {
	return time.Date(2025, 12, day, hour, 15, 0, 0, bogota)
}

func invoice(id string, when time.Time, total int64, customer, seller string, products ...string) entity.Invoice {
	inv := entity.Invoice{
		ID:       id,
		DateTime: when,
		Total:    total,
		Customer: entity.Customer{ID: customer, Name: "Cliente " + customer},
		Seller:   entity.Seller{ID: seller, Name: "Vendedor " + seller},
	}
	for _, p := range products {
		inv.Items = append(inv.Items, entity.LineItem{Name: p, Quantity: decimal.NewFromInt(1)})
	}
	return inv
}

func sample() []entity.Invoice {
	voided := invoice("v1", at(2, 10), 999999, "c1", "s1", "A")
	voided.Voided = true
	return []entity.Invoice{
		invoice("1", at(1, 10), 100000, "c1", "s1", "A", "B"),
		invoice("2", at(1, 10), 50000, "c2", "s1", "A", "B", "C"),
		invoice("3", at(3, 15), 200000, "c1", "s2", "C"),
		invoice("4", at(5, 15), 80000, "", "", "A"),
		invoice("5", at(7, 19), 30000, "c3", "s2", "B", "B"),
		invoice("fuera", at(8, 10), 700000, "c9", "s9", "A", "B"),
		voided,
	}
}

func TestPeakHours_OrdenaPorIngreso(t *testing.T) {
	rep := PeakHours(sample(), week(t))

	require.Len(t, rep.Hourly, 24)
	require.Len(t, rep.Weekdays, 7)
	require.Len(t, rep.TopHours, 3)
	assert.Equal(t, 15, rep.TopHours[0].Hour)
	assert.Equal(t, int64(280000), rep.TopHours[0].Revenue)
	assert.Equal(t, 10, rep.TopHours[1].Hour)
	assert.Equal(t, 2, rep.TopHours[1].InvoiceCount)
	assert.Equal(t, "15:00 - 15:59", rep.TopHours[0].Label)
	assert.Equal(t, 5, rep.Summary.TotalInvoices)
	assert.Equal(t, int64(460000), rep.Summary.TotalRevenue)
	require.NotNil(t, rep.Summary.PeakHour)
	assert.Equal(t, 15, *rep.Summary.PeakHour)

	assert.Equal(t, "Miércoles", rep.TopWeekdays[0].Name)
	assert.Equal(t, "Lunes", rep.Weekdays[0].Name)
	assert.Equal(t, int64(150000), rep.Weekdays[0].Revenue)
}

func TestPeakHours_EmpateGanaMasFacturas(t *testing.T) {
	invoices := []entity.Invoice{
		invoice("1", at(1, 9), 100, "c1", "s1"),
		invoice("2", at(1, 11), 50, "c1", "s1"),
		invoice("3", at(1, 11), 50, "c1", "s1"),
	}
	rep := PeakHours(invoices, week(t))
	assert.Equal(t, 11, rep.TopHours[0].Hour)
	assert.Equal(t, 9, rep.TopHours[1].Hour)
}

func TestTopCustomers_OrdenYTicketPromedio(t *testing.T) {
	rep := TopCustomers(sample(), week(t), 10)

	require.Len(t, rep.Customers, 4)
	first := rep.Customers[0]
	assert.Equal(t, "c1", first.CustomerID)
	assert.Equal(t, int64(300000), first.TotalSpent)
	assert.Equal(t, 2, first.PurchaseCount)
	assert.True(t, first.IsRecurring)
	assert.Equal(t, "2025-12-01", first.FirstPurchase)
	assert.Equal(t, "2025-12-03", first.LastPurchase)
	assert.Equal(t, 2, first.DaysAsCustomer)

	assert.Equal(t, entity.FinalConsumerID, rep.Customers[1].CustomerID)
	assert.Equal(t, 4, rep.Summary.TotalCustomers)
	assert.Equal(t, 1, rep.Summary.RecurringCustomers)

	for i, c := range rep.Customers {
		assert.GreaterOrEqual(t, c.PurchaseCount, 1)
		want := decimal.NewFromInt(c.TotalSpent).Div(decimal.NewFromInt(int64(c.PurchaseCount))).Round(2)
		assert.True(t, want.Equal(c.AverageTicket))
		if i > 0 {
			assert.LessOrEqual(t, c.TotalSpent, rep.Customers[i-1].TotalSpent)
		}
	}
}

func TestTopCustomers_TicketPromedioRedondeo(t *testing.T) {
	invoices := []entity.Invoice{
		invoice("1", at(1, 10), 100000, "c1", "s1"),
		invoice("2", at(2, 10), 50000, "c1", "s1"),
		invoice("3", at(3, 10), 1, "c2", "s1"),
		invoice("4", at(4, 10), 1, "c2", "s1"),
		invoice("5", at(5, 10), 0, "c2", "s1"),
	}
	rep := TopCustomers(invoices, week(t), 10)
	require.Len(t, rep.Customers, 2)

	exact := rep.Customers[0]
	assert.Equal(t, "c1", exact.CustomerID)
	assert.Equal(t, "75000", exact.AverageTicket.String())
	assert.True(t, exact.AverageTicket.Mul(decimal.NewFromInt(int64(exact.PurchaseCount))).Equal(decimal.NewFromInt(exact.TotalSpent)))

	// 2/3 = 0.666… se presenta como 0.67
	rounded := rep.Customers[1]
	assert.Equal(t, int64(2), rounded.TotalSpent)
	assert.Equal(t, 3, rounded.PurchaseCount)
	assert.Equal(t, "0.67", rounded.AverageTicket.String())
}

func TestTopCustomers_Limite(t *testing.T) {
	rep := TopCustomers(sample(), week(t), 2)
	assert.Len(t, rep.Customers, 2)
	assert.Equal(t, 4, rep.Summary.TotalCustomers)
}

func TestTopSellers_MetricasPorVendedor(t *testing.T) {
	rep := TopSellers(sample(), week(t), 10)

	require.Len(t, rep.Sellers, 3)
	s2 := rep.Sellers[0]
	assert.Equal(t, "s2", s2.SellerID)
	assert.Equal(t, int64(230000), s2.TotalSales)
	assert.Equal(t, 15, s2.MostProductiveHour)
	assert.Equal(t, 2, s2.UniqueCustomers)

	s1 := rep.Sellers[1]
	assert.Equal(t, "s1", s1.SellerID)
	assert.Equal(t, 2, s1.UniqueCustomers)
	assert.Equal(t, 0, s1.RecurringCustomers)
	assert.True(t, decimal.NewFromInt(75000).Equal(s1.AverageTicket))

	assert.Equal(t, entity.NoSellerID, rep.Sellers[2].SellerID)
	assert.Equal(t, 3, rep.Summary.TotalSellers)
	assert.Equal(t, int64(460000), rep.Summary.TotalSales)
}

func TestTopSellers_TasaRecurrentes(t *testing.T) {
	invoices := []entity.Invoice{
		invoice("1", at(1, 9), 100, "c1", "s1"),
		invoice("2", at(2, 9), 100, "c1", "s1"),
		invoice("3", at(3, 9), 100, "c2", "s1"),
		invoice("4", at(3, 9), 100, "", "s1"),
	}
	rep := TopSellers(invoices, week(t), 0)
	require.Len(t, rep.Sellers, 1)
	assert.Equal(t, 2, rep.Sellers[0].UniqueCustomers)
	assert.Equal(t, 1, rep.Sellers[0].RecurringCustomers)
	assert.True(t, decimal.NewFromInt(50).Equal(rep.Sellers[0].RecurringCustomerRate))
}

func TestCustomerRetention_SegmentosParticionan(t *testing.T) {
	r, err := entity.NewDateRange(time.Date(2025, 1, 1, 0, 0, 0, 0, bogota), time.Date(2025, 12, 31, 0, 0, 0, 0, bogota), bogota)
	require.NoError(t, err)

	var invoices []entity.Invoice
	// leal y activo: 5 compras en diciembre
	for d := 1; d <= 5; d++ {
		invoices = append(invoices, invoice("l"+string(rune('0'+d)), time.Date(2025, 12, d, 10, 0, 0, 0, bogota), 10000, "leal", "s1"))
	}
	// recurrente en riesgo: última compra hace 120 días
	invoices = append(invoices,
		invoice("r1", time.Date(2025, 8, 1, 10, 0, 0, 0, bogota), 20000, "recurrente", "s1"),
		invoice("r2", time.Date(2025, 9, 2, 10, 0, 0, 0, bogota), 20000, "recurrente", "s1"),
	)
	// nuevo e inactivo
	invoices = append(invoices, invoice("n1", time.Date(2025, 2, 1, 10, 0, 0, 0, bogota), 5000, "nuevo", "s1"))
	// sin cliente: no entra en RFM
	invoices = append(invoices, invoice("cf", time.Date(2025, 12, 1, 10, 0, 0, 0, bogota), 5000, "", "s1"))

	rep := CustomerRetention(invoices, r)

	assert.Equal(t, "2025-12-31", rep.ReferenceDate)
	assert.Equal(t, 3, rep.TotalCustomers)
	assert.Equal(t, dto.FrequencySegmentsDTO{New: 1, Recurring: 1, Loyal: 1}, rep.FrequencySegments)
	assert.Equal(t, dto.ActivitySegmentsDTO{Active: 1, AtRisk: 1, Inactive: 1}, rep.ActivitySegments)
	fs, as := rep.FrequencySegments, rep.ActivitySegments
	assert.Equal(t, rep.TotalCustomers, fs.New+fs.Recurring+fs.Loyal)
	assert.Equal(t, rep.TotalCustomers, as.Active+as.AtRisk+as.Inactive)
	assert.True(t, decimal.RequireFromString("66.67").Equal(rep.RetentionRate), rep.RetentionRate.String())
	assert.True(t, decimal.RequireFromString("2.67").Equal(rep.AverageFrequency), rep.AverageFrequency.String())

	require.Len(t, rep.TopCustomers, 3)
	assert.Equal(t, "leal", rep.TopCustomers[0].CustomerID)
	assert.Equal(t, dto.SegmentLoyal, rep.TopCustomers[0].FrequencySegment)
	assert.Equal(t, 26, rep.TopCustomers[0].RecencyDays)
	assert.Equal(t, dto.ActivityAtRisk, rep.TopCustomers[1].ActivitySegment)
}

func TestActivitySegment_Limites(t *testing.T) {
	assert.Equal(t, dto.ActivityActive, activitySegment(90))
	assert.Equal(t, dto.ActivityAtRisk, activitySegment(91))
	assert.Equal(t, dto.ActivityAtRisk, activitySegment(180))
	assert.Equal(t, dto.ActivityInactive, activitySegment(181))
	assert.Equal(t, dto.SegmentNew, frequencySegment(1))
	assert.Equal(t, dto.SegmentRecurring, frequencySegment(4))
	assert.Equal(t, dto.SegmentLoyal, frequencySegment(5))
}

func TestSalesTrends_SerieDiariaCompleta(t *testing.T) {
	rep := SalesTrends(sample(), week(t))

	require.Len(t, rep.Daily, 7)
	assert.Equal(t, "2025-12-01", rep.Daily[0].Date)
	assert.Equal(t, "Lunes", rep.Daily[0].Weekday)
	assert.Equal(t, int64(150000), rep.Daily[0].Revenue)
	assert.Zero(t, rep.Daily[1].Revenue)

	require.NotNil(t, rep.BestDay)
	assert.Equal(t, "2025-12-03", rep.BestDay.Date)
	assert.Equal(t, "2025-12-07", rep.WorstDay.Date)

	require.Len(t, rep.ByWeekday, 7)
	assert.Equal(t, 1, rep.ByWeekday[0].Occurrences)
	assert.True(t, decimal.NewFromInt(150000).Equal(rep.ByWeekday[0].AverageRevenue))
	assert.Equal(t, 7, rep.Summary.Days)
	assert.Equal(t, 5, rep.Summary.TotalInvoices)
}

func TestCrossSelling_ParAB(t *testing.T) {
	invoices := []entity.Invoice{
		invoice("1", at(1, 10), 100, "c1", "s1", "B", "A"),
		invoice("2", at(2, 10), 100, "c2", "s1", "A", "B"),
		invoice("3", at(3, 10), 100, "c3", "s1", "A"),
	}
	rep := CrossSelling(invoices, week(t), 2, 0)

	require.Len(t, rep.Pairs, 1)
	p := rep.Pairs[0]
	assert.Equal(t, "A", p.Product1)
	assert.Equal(t, "B", p.Product2)
	assert.Equal(t, 2, p.CoOccurrence)
	assert.Equal(t, 3, p.Product1Sold)
	assert.Equal(t, 2, p.Product2Sold)
	assert.True(t, decimal.RequireFromString("66.67").Equal(p.Confidence1To2))
	assert.True(t, decimal.NewFromInt(100).Equal(p.Confidence2To1))
	assert.Equal(t, 3, rep.Summary.InvoicesAnalyzed)
	assert.Equal(t, 2, rep.Summary.MultiItemInvoices)
}

func TestCrossSelling_SoporteMinimo(t *testing.T) {
	rep := CrossSelling(sample(), week(t), 2, 20)
	for _, p := range rep.Pairs {
		assert.GreaterOrEqual(t, p.CoOccurrence, 2)
		assert.True(t, p.Confidence1To2.LessThanOrEqual(decimal.NewFromInt(100)))
		assert.True(t, p.Confidence2To1.LessThanOrEqual(decimal.NewFromInt(100)))
		assert.Less(t, p.Product1, p.Product2)
	}
	require.Len(t, rep.Pairs, 1)
	assert.Equal(t, "A", rep.Pairs[0].Product1)

	// producto repetido en la misma factura cuenta una vez
	single := CrossSelling(sample(), week(t), 1, 20)
	assert.Equal(t, 3, single.Summary.PairsFound)
}

func TestReportes_RangoVacio(t *testing.T) {
	r := week(t)
	peak := PeakHours(nil, r)
	customers := TopCustomers(nil, r, 10)
	sellers := TopSellers(nil, r, 10)
	retention := CustomerRetention(nil, r)
	trends := SalesTrends(nil, r)
	cross := CrossSelling(nil, r, 2, 20)

	assert.NotNil(t, peak.TopHours)
	assert.Empty(t, peak.TopHours)
	assert.Nil(t, peak.Summary.PeakHour)
	assert.NotNil(t, customers.Customers)
	assert.Zero(t, customers.Summary.TotalCustomers)
	assert.NotNil(t, sellers.Sellers)
	assert.NotNil(t, retention.TopCustomers)
	assert.True(t, retention.RetentionRate.IsZero())
	assert.Nil(t, trends.BestDay)
	assert.Len(t, trends.Daily, 7)
	assert.NotNil(t, cross.Pairs)

	body, err := json.Marshal(cross)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"pairs":[]`)
}

func TestReportes_Idempotentes(t *testing.T) {
	r := week(t)
	run := func() []byte {
		out, err := json.Marshal([]any{
			PeakHours(sample(), r),
			TopCustomers(sample(), r, 10),
			TopSellers(sample(), r, 10),
			CustomerRetention(sample(), r),
			SalesTrends(sample(), r),
			CrossSelling(sample(), r, 1, 20),
		})
		require.NoError(t, err)
		return out
	}
	first := run()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run())
	}
}
