package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

type customerStats struct {
	id             string
	name           string
	identification string
	total          int64
	count          int
	first, last    time.Time
}

func (s *customerStats) add(inv entity.Invoice) {
	s.total += inv.Total
	s.count++
	if s.count == 1 || inv.DateTime.Before(s.first) {
		s.first = inv.DateTime
	}
	if s.count == 1 || inv.DateTime.After(s.last) {
		s.last = inv.DateTime
	}
}

// groupCustomers agrupa por cliente. Con includeFinal=false se omiten las
// facturas sin cliente identificado.
func groupCustomers(invoices []entity.Invoice, includeFinal bool) []*customerStats {
	byID := make(map[string]*customerStats)
	order := make([]*customerStats, 0)
	for _, inv := range invoices {
		if inv.Customer.ID == "" && !includeFinal {
			continue
		}
		id, name := customerKey(inv.Customer)
		s, ok := byID[id]
		if !ok {
			s = &customerStats{id: id, name: name, identification: inv.Customer.Identification}
			byID[id] = s
			order = append(order, s)
		}
		s.add(inv)
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].total != order[j].total {
			return order[i].total > order[j].total
		}
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].id < order[j].id
	})
	return order
}

// TopCustomers ranking de clientes por gasto. Las facturas sin cliente se
// agrupan como consumidor final.
func TopCustomers(invoices []entity.Invoice, r entity.DateRange, limit int) dto.TopCustomersDTO {
	limit = ClampLimit(limit, DefaultLimit)
	loc := r.Start.Location()
	stats := groupCustomers(activeInRange(invoices, r), true)

	var summary dto.TopCustomersSummary
	for _, s := range stats {
		summary.TotalCustomers++
		summary.TotalRevenue += s.total
		if s.count >= 2 {
			summary.RecurringCustomers++
		}
	}

	n := min(limit, len(stats))
	out := make([]dto.CustomerRankingDTO, 0, n)
	for _, s := range stats[:n] {
		out = append(out, dto.CustomerRankingDTO{
			CustomerID:     s.id,
			Name:           s.name,
			Identification: s.identification,
			TotalSpent:     s.total,
			PurchaseCount:  s.count,
			AverageTicket:  averageTicket(s.total, s.count),
			FirstPurchase:  s.first.In(loc).Format(entity.DateLayout),
			LastPurchase:   s.last.In(loc).Format(entity.DateLayout),
			DaysAsCustomer: wholeDays(s.first, s.last),
			IsRecurring:    s.count >= 2,
		})
	}
	return dto.TopCustomersDTO{Customers: out, Summary: summary}
}

// Umbrales RFM.
const (
	recurringMinPurchases = 2
	loyalMinPurchases     = 5
	activeMaxDays         = 90
	atRiskMaxDays         = 180
)

func frequencySegment(count int) string {
	switch {
	case count >= loyalMinPurchases:
		return dto.SegmentLoyal
	case count >= recurringMinPurchases:
		return dto.SegmentRecurring
	default:
		return dto.SegmentNew
	}
}

func activitySegment(recencyDays int) string {
	switch {
	case recencyDays <= activeMaxDays:
		return dto.ActivityActive
	case recencyDays <= atRiskMaxDays:
		return dto.ActivityAtRisk
	default:
		return dto.ActivityInactive
	}
}

// CustomerRetention segmentación RFM con fecha de referencia al final del rango.
// Solo clientes identificados.
func CustomerRetention(invoices []entity.Invoice, r entity.DateRange) dto.RetentionDTO {
	reference := r.EndOfDay()
	stats := groupCustomers(activeInRange(invoices, r), false)

	out := dto.RetentionDTO{
		ReferenceDate:    r.EndString(),
		TotalCustomers:   len(stats),
		RetentionRate:    decimal.Zero,
		AverageFrequency: decimal.Zero,
		AverageMonetary:  decimal.Zero,
		TopCustomers:     make([]dto.CustomerRFMDTO, 0, min(retentionTopCustomers, len(stats))),
	}

	var purchases int
	var monetary int64
	for i, s := range stats {
		recency := wholeDays(s.last, reference)
		freq := frequencySegment(s.count)
		act := activitySegment(recency)

		switch freq {
		case dto.SegmentNew:
			out.FrequencySegments.New++
		case dto.SegmentRecurring:
			out.FrequencySegments.Recurring++
		case dto.SegmentLoyal:
			out.FrequencySegments.Loyal++
		}
		switch act {
		case dto.ActivityActive:
			out.ActivitySegments.Active++
		case dto.ActivityAtRisk:
			out.ActivitySegments.AtRisk++
		case dto.ActivityInactive:
			out.ActivitySegments.Inactive++
		}
		purchases += s.count
		monetary += s.total

		if i < retentionTopCustomers {
			out.TopCustomers = append(out.TopCustomers, dto.CustomerRFMDTO{
				CustomerID:       s.id,
				Name:             s.name,
				RecencyDays:      recency,
				Frequency:        s.count,
				Monetary:         s.total,
				FrequencySegment: freq,
				ActivitySegment:  act,
			})
		}
	}

	if n := len(stats); n > 0 {
		retained := int64(out.FrequencySegments.Recurring + out.FrequencySegments.Loyal)
		out.RetentionRate = decimal.NewFromInt(retained).Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(n))).Round(2)
		out.AverageFrequency = averageTicket(int64(purchases), n)
		out.AverageMonetary = averageTicket(monetary, n)
	}
	return out
}
