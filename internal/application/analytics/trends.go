package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// SalesTrends serie diaria (todos los días del rango, con ceros), totales por
// día de la semana y mejor/peor día entre los días con ventas.
func SalesTrends(invoices []entity.Invoice, r entity.DateRange) dto.TrendsDTO {
	loc := r.Start.Location()
	days := r.Days()

	index := make(map[string]int, len(days))
	daily := make([]dto.DailyPointDTO, len(days))
	byWeekday := make([]dto.WeekdayTrendDTO, 7)
	for d := range byWeekday {
		byWeekday[d] = dto.WeekdayTrendDTO{Weekday: d, Name: weekdayNames[d], AverageRevenue: decimal.Zero}
	}
	for i, d := range days {
		key := d.Format(entity.DateLayout)
		index[key] = i
		daily[i] = dto.DailyPointDTO{Date: key, Weekday: weekdayNames[weekdayIndex(d)], AverageTicket: decimal.Zero}
		byWeekday[weekdayIndex(d)].Occurrences++
	}

	var summary dto.TrendsSummary
	for _, inv := range activeInRange(invoices, r) {
		t := inv.DateTime.In(loc)
		i, ok := index[t.Format(entity.DateLayout)]
		if !ok {
			continue
		}
		daily[i].Revenue += inv.Total
		daily[i].InvoiceCount++

		w := &byWeekday[weekdayIndex(t)]
		w.TotalRevenue += inv.Total
		w.InvoiceCount++

		summary.TotalRevenue += inv.Total
		summary.TotalInvoices++
	}

	var best, worst *dto.DailyPointDTO
	for i := range daily {
		p := &daily[i]
		p.AverageTicket = averageTicket(p.Revenue, p.InvoiceCount)
		if p.InvoiceCount == 0 {
			continue
		}
		if best == nil || p.Revenue > best.Revenue {
			best = p
		}
		if worst == nil || p.Revenue < worst.Revenue {
			worst = p
		}
	}
	for d := range byWeekday {
		w := &byWeekday[d]
		w.AverageRevenue = averageTicket(w.TotalRevenue, w.Occurrences)
	}

	summary.Days = len(days)
	summary.AverageDailyRevenue = averageTicket(summary.TotalRevenue, len(days))

	out := dto.TrendsDTO{Daily: daily, ByWeekday: byWeekday, Summary: summary}
	if best != nil {
		b, w := *best, *worst
		out.BestDay, out.WorstDay = &b, &w
	}
	return out
}
