package normalizer

import (
	"strings"

	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

// InventoryRecord normaliza un registro de /reports/inventory-value (o de /items).
// Falla con domain.ErrSchemaMismatch si el registro no corresponde a ninguna estructura conocida.
func InventoryRecord(raw map[string]any) (entity.InventoryItem, error) {
	shape, err := DetectRecordShape(raw)
	if err != nil {
		return entity.InventoryItem{}, err
	}

	item := entity.InventoryItem{
		ID:          str(raw["id"]),
		Name:        str(raw["name"]),
		Type:        str(raw["type"]),
		Quantity:    decimalAt(raw, "quantity", "availableQuantity", "inventory.availableQuantity").IntPart(),
		MinQuantity: decimalAt(raw, "minQuantity", "inventory.minQuantity").IntPart(),
		MaxQuantity: decimalAt(raw, "maxQuantity", "inventory.maxQuantity").IntPart(),
		UnitCost:    pesosAt(raw, "averageCost", "unitCost", "inventory.unitCost", "initialCost"),
		Status:      recordStatus(raw),
		Shape:       shape,
	}
	if v, ok := firstPresent(raw, "reference", "sku", "code"); ok {
		item.SKU = referenceString(v)
	}
	if v, ok := firstPresent(raw, "category.name", "itemCategory.name", "category"); ok {
		item.Category = str(v)
	}
	if prices := list(raw["price"]); len(prices) > 0 {
		item.SalePrice = pesosAt(obj(prices[0]), "price")
	} else if v, ok := firstPresent(raw, "price", "salePrice"); ok {
		item.SalePrice = money.Pesos(money.FromAny(v))
	}

	if _, ok := lookup(raw, "total"); ok {
		item.TotalValue = pesosAt(raw, "total")
	} else {
		item.TotalValue = item.Quantity * item.UnitCost
	}
	if shape == entity.ShapeProductExport {
		item.Quantity = 0
		item.TotalValue = item.UnitCost
	}
	return item, nil
}

// reference puede venir como string o como {"reference": "..."}.
func referenceString(v any) string {
	if m := obj(v); m != nil {
		return str(m["reference"])
	}
	return str(v)
}

func recordStatus(raw map[string]any) string {
	s := strings.ToLower(str(raw["status"]))
	switch s {
	case "", "active", "activo":
		return entity.ItemStatusActive
	}
	return entity.ItemStatusInactive
}
