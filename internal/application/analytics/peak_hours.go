package analytics

import (
	"sort"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// PeakHours agrupa las ventas por hora local y por día de la semana.
func PeakHours(invoices []entity.Invoice, r entity.DateRange) dto.PeakHoursDTO {
	loc := r.Start.Location()

	hourly := make([]dto.HourBucketDTO, 24)
	for h := range hourly {
		hourly[h] = dto.HourBucketDTO{Hour: h, Label: hourLabel(h)}
	}
	weekdays := make([]dto.WeekdayBucketDTO, 7)
	for d := range weekdays {
		weekdays[d] = dto.WeekdayBucketDTO{Weekday: d, Name: weekdayNames[d]}
	}

	var summary dto.PeakHoursSummary
	for _, inv := range activeInRange(invoices, r) {
		t := inv.DateTime.In(loc)
		hb := &hourly[t.Hour()]
		hb.InvoiceCount++
		hb.Revenue += inv.Total

		wb := &weekdays[weekdayIndex(t)]
		wb.InvoiceCount++
		wb.Revenue += inv.Total

		summary.TotalInvoices++
		summary.TotalRevenue += inv.Total
	}

	top := make([]dto.HourBucketDTO, 0, topHours)
	for _, b := range hourly {
		if b.InvoiceCount > 0 {
			top = append(top, b)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Revenue != top[j].Revenue {
			return top[i].Revenue > top[j].Revenue
		}
		if top[i].InvoiceCount != top[j].InvoiceCount {
			return top[i].InvoiceCount > top[j].InvoiceCount
		}
		return top[i].Hour < top[j].Hour
	})
	if len(top) > topHours {
		top = top[:topHours]
	}
	if len(top) > 0 {
		h := top[0].Hour
		summary.PeakHour = &h
	}

	topDays := make([]dto.WeekdayBucketDTO, 0, 7)
	for _, b := range weekdays {
		if b.InvoiceCount > 0 {
			topDays = append(topDays, b)
		}
	}
	sort.SliceStable(topDays, func(i, j int) bool {
		if topDays[i].Revenue != topDays[j].Revenue {
			return topDays[i].Revenue > topDays[j].Revenue
		}
		if topDays[i].InvoiceCount != topDays[j].InvoiceCount {
			return topDays[i].InvoiceCount > topDays[j].InvoiceCount
		}
		return topDays[i].Weekday < topDays[j].Weekday
	})

	return dto.PeakHoursDTO{
		TopHours:    top,
		Hourly:      hourly,
		TopWeekdays: topDays,
		Weekdays:    weekdays,
		Summary:     summary,
	}
}
