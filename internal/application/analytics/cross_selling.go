package analytics

import (
	"sort"
	"strings"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

type productPair struct{ a, b string } // a < b

// CrossSelling análisis de canasta: pares de productos distintos comprados en
// la misma factura, con co-ocurrencia >= minSupport.
func CrossSelling(invoices []entity.Invoice, r entity.DateRange, minSupport, limit int) dto.CrossSellingDTO {
	if minSupport < 1 {
		minSupport = 1
	}
	limit = ClampLimit(limit, DefaultCrossSellingLimit)
	active := activeInRange(invoices, r)

	timesSold := make(map[string]int)
	pairs := make(map[productPair]int)
	multi := 0
	for _, inv := range active {
		products := distinctProducts(inv.Items)
		for _, p := range products {
			timesSold[p]++
		}
		if len(products) < 2 {
			continue
		}
		multi++
		for i := 0; i < len(products); i++ {
			for j := i + 1; j < len(products); j++ {
				pairs[productPair{products[i], products[j]}]++
			}
		}
	}

	out := make([]dto.ProductPairDTO, 0)
	for p, co := range pairs {
		if co < minSupport {
			continue
		}
		soldA, soldB := timesSold[p.a], timesSold[p.b]
		out = append(out, dto.ProductPairDTO{
			Product1:       p.a,
			Product2:       p.b,
			CoOccurrence:   co,
			Product1Sold:   soldA,
			Product2Sold:   soldB,
			Confidence1To2: money.Percent(int64(co), int64(soldA)),
			Confidence2To1: money.Percent(int64(co), int64(soldB)),
			SupportPercent: money.Percent(int64(co), int64(len(active))),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CoOccurrence != out[j].CoOccurrence {
			return out[i].CoOccurrence > out[j].CoOccurrence
		}
		if out[i].Product1 != out[j].Product1 {
			return out[i].Product1 < out[j].Product1
		}
		return out[i].Product2 < out[j].Product2
	})
	found := len(out)
	if len(out) > limit {
		out = out[:limit]
	}

	return dto.CrossSellingDTO{
		Pairs: out,
		Summary: dto.CrossSellingSummary{
			InvoicesAnalyzed:  len(active),
			MultiItemInvoices: multi,
			UniqueProducts:    len(timesSold),
			PairsFound:        found,
			MinSupport:        minSupport,
		},
	}
}

// distinctProducts nombres no vacíos sin repetir, ordenados.
func distinctProducts(items []entity.LineItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
