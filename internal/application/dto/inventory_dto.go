package dto

import "github.com/shopspring/decimal"

// ── Reporte de valor de inventario ───────────────────────────────────────────

// InventoryItemDTO ítem de inventario (montos en pesos).
type InventoryItemDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SKU        string `json:"sku,omitempty"`
	Category   string `json:"category"`
	Department string `json:"department"`
	Quantity   int64  `json:"quantity"`
	UnitCost   int64  `json:"unit_cost"`
	TotalValue int64  `json:"total_value"`
	SalePrice  int64  `json:"sale_price,omitempty"`
	Status     string `json:"status"`
}

// DepartmentSummaryDTO totales por departamento (hombre, mujer, nino, nina, accesorios, otros).
type DepartmentSummaryDTO struct {
	Department    string             `json:"department"`
	ItemCount     int                `json:"item_count"`
	Units         int64              `json:"units"`
	Value         int64              `json:"value"`
	SaleValue     int64              `json:"sale_value,omitempty"` // solo exportacion_productos
	Margin        int64              `json:"margin,omitempty"`
	MarginPercent decimal.Decimal    `json:"margin_percent"`
	UnitsPercent  decimal.Decimal    `json:"units_percent"`
	ValuePercent  decimal.Decimal    `json:"value_percent"`
	ItemPercent   decimal.Decimal    `json:"item_percent"`
	AverageCost   decimal.Decimal    `json:"average_cost"`
	SampleItems   []InventoryItemDTO `json:"sample_items,omitempty"`
}

// ValueReportMetadata se cumple siempre total_received = total_filtered + total_returned.
type ValueReportMetadata struct {
	Page                  int    `json:"page"`
	Limit                 int    `json:"limit"`
	PageSize              int    `json:"page_size"`
	Query                 string `json:"query"`
	ToDate                string `json:"to_date"`
	TotalReceived         int    `json:"total_received"`
	TotalFilteredObsolete int    `json:"total_filtered_obsolete"`
	TotalFilteredDisabled int    `json:"total_filtered_disabled"`
	TotalFiltered         int    `json:"total_filtered"`
	TotalReturned         int    `json:"total_returned"`
	PagesFetched          int    `json:"pages_fetched"`
}

// ValueReportDTO ítems vigentes, resumen por departamento y metadatos del filtrado.
type ValueReportDTO struct {
	Success     bool                   `json:"success"`
	Data        []InventoryItemDTO     `json:"data"`
	Departments []DepartmentSummaryDTO `json:"departments"`
	TotalUnits  int64                  `json:"total_units"`
	TotalValue  int64                  `json:"total_value"`
	Metadata    ValueReportMetadata    `json:"metadata"`
}

// ── Análisis de inventario ───────────────────────────────────────────────────

// ExecutiveSummaryDTO resumen ejecutivo del inventario.
type ExecutiveSummaryDTO struct {
	TotalItems         int             `json:"total_items"`
	ItemsWithStock     int             `json:"items_with_stock"`
	TotalUnits         int64           `json:"total_units"`
	InventoryValue     int64           `json:"inventory_value"`
	PotentialSaleValue int64           `json:"potential_sale_value"`
	ExpectedMargin     int64           `json:"expected_margin"`
	MarginPercent      decimal.Decimal `json:"margin_percent"`
	AverageUnitCost    decimal.Decimal `json:"average_unit_cost"`
	AverageSalePrice   decimal.Decimal `json:"average_sale_price"`
}

// CategorySummaryDTO valor de inventario por categoría.
type CategorySummaryDTO struct {
	Category     string          `json:"category"`
	ItemCount    int             `json:"item_count"`
	Units        int64           `json:"units"`
	Value        int64           `json:"value"`
	ValuePercent decimal.Decimal `json:"value_percent"`
}

// ABCClassDTO una clase del análisis ABC.
type ABCClassDTO struct {
	ItemCount    int             `json:"item_count"`
	ItemPercent  decimal.Decimal `json:"item_percent"`
	Value        int64           `json:"value"`
	ValuePercent decimal.Decimal `json:"value_percent"`
}

// ABCAnalysisDTO A hasta 80 % del valor acumulado, B hasta 95 %, C el resto.
type ABCAnalysisDTO struct {
	ClassA ABCClassDTO `json:"class_a"`
	ClassB ABCClassDTO `json:"class_b"`
	ClassC ABCClassDTO `json:"class_c"`
}

// SizeSummaryDTO unidades y valor por talla.
type SizeSummaryDTO struct {
	Size      string `json:"size"`
	ItemCount int    `json:"item_count"`
	Units     int64  `json:"units"`
	Value     int64  `json:"value"`
}

// InventoryAnalysisDTO análisis completo a una fecha.
type InventoryAnalysisDTO struct {
	Success          bool                   `json:"success"`
	ToDate           string                 `json:"to_date"`
	ExecutiveSummary ExecutiveSummaryDTO    `json:"executive_summary"`
	ByDepartment     []DepartmentSummaryDTO `json:"by_department"`
	ByCategory       []CategorySummaryDTO   `json:"by_category"`
	BySize           []SizeSummaryDTO       `json:"by_size"`
	OutOfStock       []InventoryItemDTO     `json:"out_of_stock"`
	LowStock         []InventoryItemDTO     `json:"low_stock"`
	TopByValue       []InventoryItemDTO     `json:"top_by_value"`
	ABC              ABCAnalysisDTO         `json:"abc_analysis"`
	Metadata         ValueReportMetadata    `json:"metadata"`
}

// ── Archivo de inventario ────────────────────────────────────────────────────

// FileSummaryDTO totales generales de un archivo.
type FileSummaryDTO struct {
	TotalItems      int             `json:"total_items"`
	TotalUnits      int64           `json:"total_units"`
	ActiveItems     int             `json:"active_items"`
	InactiveItems   int             `json:"inactive_items"`
	TotalValue      int64           `json:"total_value"`
	TotalCost       int64           `json:"total_cost"`
	TotalSaleValue  int64           `json:"total_sale_value"`
	Margin          int64           `json:"margin"`
	MarginPercent   decimal.Decimal `json:"margin_percent"`
	TotalCategories int             `json:"total_categories"`
}

// CategoryCountDTO número de ítems por categoría.
type CategoryCountDTO struct {
	Category  string `json:"category"`
	ItemCount int    `json:"item_count"`
}

// FileAnalysisDTO resultado de analizar un CSV/XLSX exportado de Alegra.
type FileAnalysisDTO struct {
	FileType      string                 `json:"tipo_archivo"`
	Filename      string                 `json:"filename"`
	Summary       FileSummaryDTO         `json:"general_summary"`
	Departments   []DepartmentSummaryDTO `json:"departments"`
	TopCategories []CategoryCountDTO     `json:"top_categories"`
}

// QuickTotalDTO valor total del inventario a una fecha.
type QuickTotalDTO struct {
	TotalValue          int64  `json:"total_value"`
	TotalValueFormatted string `json:"total_value_formatted"`
	ToDate              string `json:"to_date"`
}
