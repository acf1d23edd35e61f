package inventory

import (
	"sort"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

const (
	lowStockThreshold = 5
	topByValueLimit   = 20
)

// Analyze resumen ejecutivo, departamentos, categorías, tallas, stock y ABC sobre ítems vigentes.
func Analyze(items []entity.InventoryItem) dto.InventoryAnalysisDTO {
	return dto.InventoryAnalysisDTO{
		ExecutiveSummary: executiveSummary(items),
		ByDepartment:     departmentSummaries(items, 0),
		ByCategory:       byCategory(items),
		BySize:           bySize(items),
		OutOfStock:       outOfStock(items),
		LowStock:         lowStock(items),
		TopByValue:       topByValue(items),
		ABC:              abcAnalysis(items),
	}
}

func executiveSummary(items []entity.InventoryItem) dto.ExecutiveSummaryDTO {
	s := dto.ExecutiveSummaryDTO{TotalItems: len(items)}
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		s.ItemsWithStock++
		s.TotalUnits += it.Quantity
		s.InventoryValue += it.TotalValue
		s.PotentialSaleValue += it.SalePrice * it.Quantity
	}
	s.ExpectedMargin = s.PotentialSaleValue - s.InventoryValue
	s.MarginPercent = money.Percent(s.ExpectedMargin, s.PotentialSaleValue)
	s.AverageUnitCost = money.Ratio(s.InventoryValue, s.TotalUnits)
	s.AverageSalePrice = money.Ratio(s.PotentialSaleValue, s.TotalUnits)
	return s
}

func byCategory(items []entity.InventoryItem) []dto.CategorySummaryDTO {
	idx := make(map[string]int)
	out := make([]dto.CategorySummaryDTO, 0)
	var total int64
	for _, it := range items {
		name := categoryName(it.Category)
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, dto.CategorySummaryDTO{Category: name})
		}
		out[i].ItemCount++
		out[i].Units += it.Quantity
		out[i].Value += it.TotalValue
		total += it.TotalValue
	}
	for i := range out {
		out[i].ValuePercent = money.Percent(out[i].Value, total)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func outOfStock(items []entity.InventoryItem) []dto.InventoryItemDTO {
	var sel []entity.InventoryItem
	for _, it := range items {
		if it.Quantity <= 0 {
			sel = append(sel, it)
		}
	}
	sort.SliceStable(sel, func(i, j int) bool { return sel[i].Name < sel[j].Name })
	return itemDTOs(sel)
}

func lowStock(items []entity.InventoryItem) []dto.InventoryItemDTO {
	var sel []entity.InventoryItem
	for _, it := range items {
		if it.Quantity > 0 && it.Quantity <= lowStockThreshold {
			sel = append(sel, it)
		}
	}
	sort.SliceStable(sel, func(i, j int) bool {
		if sel[i].Quantity != sel[j].Quantity {
			return sel[i].Quantity < sel[j].Quantity
		}
		return sel[i].Name < sel[j].Name
	})
	return itemDTOs(sel)
}

func topByValue(items []entity.InventoryItem) []dto.InventoryItemDTO {
	var sel []entity.InventoryItem
	for _, it := range items {
		if it.Quantity > 0 {
			sel = append(sel, it)
		}
	}
	sortByValue(sel)
	if len(sel) > topByValueLimit {
		sel = sel[:topByValueLimit]
	}
	return itemDTOs(sel)
}

func sortByValue(items []entity.InventoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].TotalValue != items[j].TotalValue {
			return items[i].TotalValue > items[j].TotalValue
		}
		return items[i].Name < items[j].Name
	})
}

// abcAnalysis clase según el porcentaje acumulado del valor al incluir el ítem.
func abcAnalysis(items []entity.InventoryItem) dto.ABCAnalysisDTO {
	var sel []entity.InventoryItem
	var total int64
	for _, it := range items {
		if it.TotalValue > 0 {
			sel = append(sel, it)
			total += it.TotalValue
		}
	}
	sortByValue(sel)

	var a, b, c dto.ABCClassDTO
	var acc int64
	for _, it := range sel {
		acc += it.TotalValue
		switch {
		case acc*100 <= 80*total:
			a.ItemCount++
			a.Value += it.TotalValue
		case acc*100 <= 95*total:
			b.ItemCount++
			b.Value += it.TotalValue
		default:
			c.ItemCount++
			c.Value += it.TotalValue
		}
	}
	for _, cl := range []*dto.ABCClassDTO{&a, &b, &c} {
		cl.ItemPercent = money.Percent(int64(cl.ItemCount), int64(len(sel)))
		cl.ValuePercent = money.Percent(cl.Value, total)
	}
	return dto.ABCAnalysisDTO{ClassA: a, ClassB: b, ClassC: c}
}
