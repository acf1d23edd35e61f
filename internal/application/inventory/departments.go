// Package inventory construye los reportes de inventario a partir de Alegra
// (reporte de valor, análisis, total rápido) y de archivos exportados.
package inventory

import (
	"sort"
	"strings"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

// Departamentos de la tienda.
const (
	DeptMen         = "hombre"
	DeptWomen       = "mujer"
	DeptBoys        = "nino"
	DeptGirls       = "nina"
	DeptAccessories = "accesorios"
	DeptOther       = "otros"

	noCategory = "SIN CATEGORÍA"
)

// departmentKeywords se evalúan en este orden; el primero que coincide gana.
var departmentKeywords = []struct {
	dept     string
	keywords []string
}{
	{DeptMen, []string{"HOMBRE", "MASCULINO"}},
	{DeptWomen, []string{"MUJER", "FEMENINO", "FALDA", "BLUSA", "VESTIDO"}},
	{DeptBoys, []string{"NIÑO", "NINO"}},
	{DeptGirls, []string{"NIÑA", "NINA"}},
	{DeptAccessories, []string{
		"TARJETA", "GORRA", "SOMBRERO", "BUFANDA", "CINTURON",
		"BOLSO", "MOCHILA", "CARTERA", "BILLETERA", "GUANTE",
		"MEDIAS", "CALCETINES", "RELOJ", "JOYA", "ACCESORIO",
	}},
}

var departmentOrder = map[string]int{
	DeptMen: 0, DeptWomen: 1, DeptBoys: 2, DeptGirls: 3, DeptAccessories: 4, DeptOther: 5,
}

// Department clasifica por palabras clave en categoría y nombre.
func Department(category, name string) string {
	text := strings.ToUpper(category + " " + name)
	for _, d := range departmentKeywords {
		for _, kw := range d.keywords {
			if strings.Contains(text, kw) {
				return d.dept
			}
		}
	}
	return DeptOther
}

// IsObsolete un nombre es obsoleto si, tras quitar espacios iniciales, empieza con '*'.
// Un asterisco en otra posición no lo marca.
func IsObsolete(name string) bool {
	return strings.HasPrefix(strings.TrimLeft(name, " \t\r\n"), "*")
}

func categoryName(c string) string {
	if strings.TrimSpace(c) == "" {
		return noCategory
	}
	return c
}

// saleValue valor a precio de venta; en exportacion_productos no hay stock.
func saleValue(it entity.InventoryItem) int64 {
	if it.Shape == entity.ShapeProductExport {
		return it.SalePrice
	}
	return it.SalePrice * it.Quantity
}

func itemDTO(it entity.InventoryItem) dto.InventoryItemDTO {
	return dto.InventoryItemDTO{
		ID:         it.ID,
		Name:       it.Name,
		SKU:        it.SKU,
		Category:   categoryName(it.Category),
		Department: Department(it.Category, it.Name),
		Quantity:   it.Quantity,
		UnitCost:   it.UnitCost,
		TotalValue: it.TotalValue,
		SalePrice:  it.SalePrice,
		Status:     it.Status,
	}
}

func itemDTOs(items []entity.InventoryItem) []dto.InventoryItemDTO {
	out := make([]dto.InventoryItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, itemDTO(it))
	}
	return out
}

// departmentSummaries agrupa por departamento; solo aparecen departamentos con ítems.
// samples > 0 incluye los primeros ítems de cada uno como muestra.
func departmentSummaries(items []entity.InventoryItem, samples int) []dto.DepartmentSummaryDTO {
	byDept := make(map[string]*dto.DepartmentSummaryDTO)
	var totalUnits, totalValue int64
	for _, it := range items {
		name := Department(it.Category, it.Name)
		d, ok := byDept[name]
		if !ok {
			d = &dto.DepartmentSummaryDTO{Department: name}
			byDept[name] = d
		}
		d.ItemCount++
		d.Units += it.Quantity
		d.Value += it.TotalValue
		d.SaleValue += saleValue(it)
		if samples > 0 && len(d.SampleItems) < samples {
			d.SampleItems = append(d.SampleItems, itemDTO(it))
		}
		totalUnits += it.Quantity
		totalValue += it.TotalValue
	}

	out := make([]dto.DepartmentSummaryDTO, 0, len(byDept))
	for _, d := range byDept {
		if d.SaleValue > 0 {
			d.Margin = d.SaleValue - d.Value
		}
		d.MarginPercent = money.Percent(d.Margin, d.SaleValue)
		d.UnitsPercent = money.Percent(d.Units, totalUnits)
		d.ValuePercent = money.Percent(d.Value, totalValue)
		d.ItemPercent = money.Percent(int64(d.ItemCount), int64(len(items)))
		switch {
		case d.Units > 0:
			d.AverageCost = money.Ratio(d.Value, d.Units)
		default:
			d.AverageCost = money.Ratio(d.Value, int64(d.ItemCount))
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return departmentOrder[out[i].Department] < departmentOrder[out[j].Department]
	})
	return out
}
