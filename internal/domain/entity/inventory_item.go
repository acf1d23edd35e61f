package entity

// InventoryShape identifica la estructura de origen de un registro de inventario.
type InventoryShape string

const (
	ShapeInventoryReport InventoryShape = "inventario_alegra"     // con stock, mínimos/máximos y estado
	ShapeProductExport   InventoryShape = "exportacion_productos" // exportación de productos, sin stock
)

// Estados de InventoryItem.
const (
	ItemStatusActive   = "active"
	ItemStatusInactive = "inactive"
)

// InventoryItem ítem de inventario normalizado. Montos en pesos.
type InventoryItem struct {
	ID          string
	Name        string
	SKU         string
	Type        string // producto, variante, servicio (solo exportación)
	Quantity    int64
	MinQuantity int64
	MaxQuantity int64
	UnitCost    int64
	TotalValue  int64
	SalePrice   int64
	Category    string
	Status      string
	Shape       InventoryShape
}

// Active indica si el ítem está habilitado.
func (i InventoryItem) Active() bool {
	return i.Status == ItemStatusActive
}
