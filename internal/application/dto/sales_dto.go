package dto

import "time"

// ── Totales de venta (/invoices/sales-totals) ───────────────────────────────

// SalesTotalsMetadata parámetros con los que se consultó Alegra.
type SalesTotalsMetadata struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	GroupBy  string `json:"group_by"`
	Limit    int    `json:"limit"`
	Start    int    `json:"start"`
}

// SalesTotalsDTO filas de Alegra sin modificar más el total sumado.
type SalesTotalsDTO struct {
	Data           []map[string]any    `json:"data"`
	Total          int64               `json:"total"`
	TotalFormatted string              `json:"total_formatted"`
	Metadata       SalesTotalsMetadata `json:"metadata"`
}

// QuickSummaryRange rango consultado en el resumen rápido.
type QuickSummaryRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// QuickSummaryDTO total de ventas para el encabezado del panel.
type QuickSummaryDTO struct {
	TotalSales          int64             `json:"total_sales"`
	TotalSalesFormatted string            `json:"total_sales_formatted"`
	DaysCount           int               `json:"days_count"`
	DateRange           QuickSummaryRange `json:"date_range"`
}

// BillsOpenTotalsDTO cuentas por pagar pendientes.
type BillsOpenTotalsDTO struct {
	MissingAmount          int64  `json:"missing_amount"`
	MissingAmountFormatted string `json:"missing_amount_formatted"`
	TotalDocuments         int    `json:"total_documents"`
	FromDate               string `json:"from_date"`
	ToDate                 string `json:"to_date"`
}

// ── Documentos de venta ─────────────────────────────────────────────────────

// DocumentItemDTO línea de factura.
type DocumentItemDTO struct {
	ProductID string `json:"product_id,omitempty"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
}

// DocumentPaymentDTO pago de la factura.
type DocumentPaymentDTO struct {
	Method string `json:"method"`
	Amount int64  `json:"amount"`
}

// DocumentDTO factura normalizada.
type DocumentDTO struct {
	ID             string               `json:"id"`
	Number         string               `json:"number"`
	DateTime       time.Time            `json:"datetime"`
	Date           string               `json:"date"`
	Total          int64                `json:"total"`
	CustomerID     string               `json:"customer_id"`
	CustomerName   string               `json:"customer_name"`
	Identification string               `json:"customer_identification"`
	SellerID       string               `json:"seller_id"`
	SellerName     string               `json:"seller_name"`
	PaymentMethod  string               `json:"payment_method"`
	Payments       []DocumentPaymentDTO `json:"payments"`
	Items          []DocumentItemDTO    `json:"items"`
	Voided         bool                 `json:"voided"`
}

// DocumentsMetadata conteos de la consulta de documentos.
type DocumentsMetadata struct {
	FromDate       string `json:"from_date"`
	ToDate         string `json:"to_date"`
	TotalInvoices  int    `json:"total_invoices"`
	DaysProcessed  int    `json:"days_processed"`
	SkippedRecords int    `json:"skipped_records"`
}

// DocumentsDTO todas las facturas del rango.
type DocumentsDTO struct {
	Data     []DocumentDTO     `json:"data"`
	Metadata DocumentsMetadata `json:"metadata"`
}

// ── Medios de pago ──────────────────────────────────────────────────────────

// PaymentMethodTotalDTO total de un medio de pago.
type PaymentMethodTotalDTO struct {
	Label     string `json:"label"`
	Total     int64  `json:"total"`
	Formatted string `json:"formatted"`
}

// PaymentSummaryDTO ventas de un día por medio de pago (bloque "alegra" del cierre).
type PaymentSummaryDTO struct {
	DateRequested string                           `json:"date_requested"`
	UsernameUsed  string                           `json:"username_used"`
	Results       map[string]PaymentMethodTotalDTO `json:"results"`
	TotalSale     PaymentMethodTotalDTO            `json:"total_sale"`
	InvoiceCount  int                              `json:"invoice_count"`
}

// DailySalesDTO ventas de un día del mes.
type DailySalesDTO struct {
	Date         string `json:"date"`
	Total        int64  `json:"total"`
	Formatted    string `json:"formatted"`
	InvoiceCount int    `json:"invoice_count"`
}

// MonthlySalesDTO ventas del mes por medio de pago y por día.
type MonthlySalesDTO struct {
	Year           int                              `json:"year"`
	Month          int                              `json:"month"`
	FromDate       string                           `json:"from_date"`
	ToDate         string                           `json:"to_date"`
	Results        map[string]PaymentMethodTotalDTO `json:"results"`
	TotalSale      PaymentMethodTotalDTO            `json:"total_sale"`
	Daily          []DailySalesDTO                  `json:"daily"`
	InvoiceCount   int                              `json:"invoice_count"`
	VoidedInvoices int                              `json:"voided_invoices"`
}
