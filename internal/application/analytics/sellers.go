package analytics

import (
	"sort"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

type sellerStats struct {
	id        string
	name      string
	total     int64
	count     int
	customers map[string]int // compras por cliente identificado
	hours     [24]int64
}

// TopSellers desempeño por vendedor. Las facturas sin vendedor se agrupan en sin-vendedor.
func TopSellers(invoices []entity.Invoice, r entity.DateRange, limit int) dto.TopSellersDTO {
	limit = ClampLimit(limit, DefaultLimit)
	loc := r.Start.Location()

	byID := make(map[string]*sellerStats)
	stats := make([]*sellerStats, 0)
	var summary dto.TopSellersSummary
	for _, inv := range activeInRange(invoices, r) {
		id, name := sellerKey(inv.Seller)
		s, ok := byID[id]
		if !ok {
			s = &sellerStats{id: id, name: name, customers: make(map[string]int)}
			byID[id] = s
			stats = append(stats, s)
		}
		s.total += inv.Total
		s.count++
		s.hours[inv.DateTime.In(loc).Hour()] += inv.Total
		if inv.Customer.ID != "" {
			s.customers[inv.Customer.ID]++
		}
		summary.TotalSales += inv.Total
	}
	summary.TotalSellers = len(stats)

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].total != stats[j].total {
			return stats[i].total > stats[j].total
		}
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].id < stats[j].id
	})

	n := min(limit, len(stats))
	out := make([]dto.SellerRankingDTO, 0, n)
	for _, s := range stats[:n] {
		recurring := 0
		for _, c := range s.customers {
			if c >= recurringMinPurchases {
				recurring++
			}
		}
		bestHour := 0
		for h := 1; h < 24; h++ {
			if s.hours[h] > s.hours[bestHour] {
				bestHour = h
			}
		}
		out = append(out, dto.SellerRankingDTO{
			SellerID:              s.id,
			Name:                  s.name,
			TotalSales:            s.total,
			InvoiceCount:          s.count,
			AverageTicket:         averageTicket(s.total, s.count),
			UniqueCustomers:       len(s.customers),
			RecurringCustomers:    recurring,
			RecurringCustomerRate: money.Percent(int64(recurring), int64(len(s.customers))),
			MostProductiveHour:    bestHour,
			MostProductiveRevenue: s.hours[bestHour],
		})
	}
	return dto.TopSellersDTO{Sellers: out, Summary: summary}
}
