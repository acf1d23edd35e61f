package dto

import "github.com/shopspring/decimal"

// Montos en pesos enteros; porcentajes y promedios con 2 decimales.

// ── Horas pico ────────────────────────────────────────────────────────────────

// HourBucketDTO ventas agrupadas por hora local (0-23).
type HourBucketDTO struct {
	Hour         int    `json:"hour"`
	Label        string `json:"label"` // "14:00 - 14:59"
	InvoiceCount int    `json:"invoice_count"`
	Revenue      int64  `json:"revenue"`
}

// WeekdayBucketDTO ventas agrupadas por día de la semana.
type WeekdayBucketDTO struct {
	Weekday      int    `json:"weekday"` // 0 = lunes ... 6 = domingo
	Name         string `json:"name"`
	InvoiceCount int    `json:"invoice_count"`
	Revenue      int64  `json:"revenue"`
}

// PeakHoursDTO reporte de horas pico.
type PeakHoursDTO struct {
	TopHours    []HourBucketDTO    `json:"top_hours"`    // máx 5, por ingreso desc
	Hourly      []HourBucketDTO    `json:"hourly"`       // 24 horas
	TopWeekdays []WeekdayBucketDTO `json:"top_weekdays"` // días con ventas, por ingreso desc
	Weekdays    []WeekdayBucketDTO `json:"weekdays"`     // lunes a domingo
	Summary     PeakHoursSummary   `json:"summary"`
}

// PeakHoursSummary totales del reporte.
type PeakHoursSummary struct {
	TotalInvoices int   `json:"total_invoices"`
	TotalRevenue  int64 `json:"total_revenue"`
	PeakHour      *int  `json:"peak_hour"`
}

// ── Mejores clientes ─────────────────────────────────────────────────────────

// CustomerRankingDTO métricas de un cliente en el rango.
type CustomerRankingDTO struct {
	CustomerID     string          `json:"customer_id"`
	Name           string          `json:"name"`
	Identification string          `json:"identification"`
	TotalSpent     int64           `json:"total_spent"`
	PurchaseCount  int             `json:"purchase_count"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	FirstPurchase  string          `json:"first_purchase"`
	LastPurchase   string          `json:"last_purchase"`
	DaysAsCustomer int             `json:"days_as_customer"`
	IsRecurring    bool            `json:"is_recurring"`
}

// TopCustomersDTO reporte de mejores clientes.
type TopCustomersDTO struct {
	Customers []CustomerRankingDTO `json:"customers"`
	Summary   TopCustomersSummary  `json:"summary"`
}

// TopCustomersSummary totales sobre todos los clientes del rango (no solo el top).
type TopCustomersSummary struct {
	TotalCustomers     int   `json:"total_customers"`
	RecurringCustomers int   `json:"recurring_customers"`
	TotalRevenue       int64 `json:"total_revenue"`
}

// ── Mejores vendedores ───────────────────────────────────────────────────────

// SellerRankingDTO desempeño de un vendedor.
type SellerRankingDTO struct {
	SellerID              string          `json:"seller_id"`
	Name                  string          `json:"name"`
	TotalSales            int64           `json:"total_sales"`
	InvoiceCount          int             `json:"invoice_count"`
	AverageTicket         decimal.Decimal `json:"average_ticket"`
	UniqueCustomers       int             `json:"unique_customers"`
	RecurringCustomers    int             `json:"recurring_customers"`
	RecurringCustomerRate decimal.Decimal `json:"recurring_customer_rate"` // %
	MostProductiveHour    int             `json:"most_productive_hour"`
	MostProductiveRevenue int64           `json:"most_productive_hour_revenue"`
}

// TopSellersDTO reporte de vendedores.
type TopSellersDTO struct {
	Sellers []SellerRankingDTO `json:"sellers"`
	Summary TopSellersSummary  `json:"summary"`
}

// TopSellersSummary totales.
type TopSellersSummary struct {
	TotalSellers int   `json:"total_sellers"`
	TotalSales   int64 `json:"total_sales"`
}

// ── Retención (RFM) ──────────────────────────────────────────────────────────

// Segmentos RFM.
const (
	SegmentNew       = "New"
	SegmentRecurring = "Recurring"
	SegmentLoyal     = "Loyal"

	ActivityActive   = "Active"
	ActivityAtRisk   = "At risk"
	ActivityInactive = "Inactive"
)

// CustomerRFMDTO recencia, frecuencia y valor de un cliente.
type CustomerRFMDTO struct {
	CustomerID       string `json:"customer_id"`
	Name             string `json:"name"`
	RecencyDays      int    `json:"recency_days"`
	Frequency        int    `json:"frequency"`
	Monetary         int64  `json:"monetary"`
	FrequencySegment string `json:"frequency_segment"`
	ActivitySegment  string `json:"activity_segment"`
}

// FrequencySegmentsDTO conteo por frecuencia.
type FrequencySegmentsDTO struct {
	New       int `json:"new"`
	Recurring int `json:"recurring"`
	Loyal     int `json:"loyal"`
}

// ActivitySegmentsDTO conteo por recencia.
type ActivitySegmentsDTO struct {
	Active   int `json:"active"`
	AtRisk   int `json:"at_risk"`
	Inactive int `json:"inactive"`
}

// RetentionDTO reporte de retención.
type RetentionDTO struct {
	ReferenceDate     string               `json:"reference_date"`
	TotalCustomers    int                  `json:"total_customers"`
	FrequencySegments FrequencySegmentsDTO `json:"frequency_segments"`
	ActivitySegments  ActivitySegmentsDTO  `json:"activity_segments"`
	RetentionRate     decimal.Decimal      `json:"retention_rate"` // %
	AverageFrequency  decimal.Decimal      `json:"average_frequency"`
	AverageMonetary   decimal.Decimal      `json:"average_monetary"`
	TopCustomers      []CustomerRFMDTO     `json:"top_customers"`
}

// ── Tendencias ───────────────────────────────────────────────────────────────

// DailyPointDTO ventas de un día calendario.
type DailyPointDTO struct {
	Date          string          `json:"date"`
	Weekday       string          `json:"weekday"`
	Revenue       int64           `json:"revenue"`
	InvoiceCount  int             `json:"invoice_count"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

// WeekdayTrendDTO promedio por día de la semana sobre sus ocurrencias en el rango.
type WeekdayTrendDTO struct {
	Weekday        int             `json:"weekday"`
	Name           string          `json:"name"`
	TotalRevenue   int64           `json:"total_revenue"`
	InvoiceCount   int             `json:"invoice_count"`
	Occurrences    int             `json:"occurrences"`
	AverageRevenue decimal.Decimal `json:"average_revenue"`
}

// TrendsDTO reporte de tendencias.
type TrendsDTO struct {
	Daily     []DailyPointDTO   `json:"daily"`
	ByWeekday []WeekdayTrendDTO `json:"by_weekday"`
	BestDay   *DailyPointDTO    `json:"best_day"`
	WorstDay  *DailyPointDTO    `json:"worst_day"`
	Summary   TrendsSummary     `json:"summary"`
}

// TrendsSummary totales del rango.
type TrendsSummary struct {
	Days                int             `json:"days"`
	TotalRevenue        int64           `json:"total_revenue"`
	TotalInvoices       int             `json:"total_invoices"`
	AverageDailyRevenue decimal.Decimal `json:"average_daily_revenue"`
}

// ── Venta cruzada ────────────────────────────────────────────────────────────

// ProductPairDTO par de productos comprados juntos; Product1 < Product2.
type ProductPairDTO struct {
	Product1       string          `json:"product_1"`
	Product2       string          `json:"product_2"`
	CoOccurrence   int             `json:"co_occurrence"`
	Product1Sold   int             `json:"product_1_times_sold"`
	Product2Sold   int             `json:"product_2_times_sold"`
	Confidence1To2 decimal.Decimal `json:"confidence_1_to_2"` // %
	Confidence2To1 decimal.Decimal `json:"confidence_2_to_1"` // %
	SupportPercent decimal.Decimal `json:"support"`           // % de facturas analizadas
}

// CrossSellingDTO reporte de venta cruzada.
type CrossSellingDTO struct {
	Pairs   []ProductPairDTO    `json:"pairs"`
	Summary CrossSellingSummary `json:"summary"`
}

// CrossSellingSummary totales.
type CrossSellingSummary struct {
	InvoicesAnalyzed  int `json:"invoices_analyzed"`
	MultiItemInvoices int `json:"multi_item_invoices"`
	UniqueProducts    int `json:"unique_products"`
	PairsFound        int `json:"pairs_found"`
	MinSupport        int `json:"min_support"`
}

// ── Dashboard ────────────────────────────────────────────────────────────────

// DashboardSummaryDTO conteos del conjunto de facturas consultado.
type DashboardSummaryDTO struct {
	TotalInvoices  int   `json:"total_invoices"`
	ActiveInvoices int   `json:"active_invoices"`
	VoidedInvoices int   `json:"voided_invoices"`
	TotalRevenue   int64 `json:"total_revenue"`
	SkippedRecords int   `json:"skipped_records"`
}

// DashboardDTO los seis reportes sobre un mismo conjunto de facturas.
type DashboardDTO struct {
	Summary           DashboardSummaryDTO `json:"summary"`
	PeakHours         PeakHoursDTO        `json:"peak_hours"`
	TopCustomers      TopCustomersDTO     `json:"top_customers"`
	TopSellers        TopSellersDTO       `json:"top_sellers"`
	CustomerRetention RetentionDTO        `json:"customer_retention"`
	SalesTrends       TrendsDTO           `json:"sales_trends"`
	CrossSelling      CrossSellingDTO     `json:"cross_selling"`
}
