package ports

import (
	"context"

	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// Record registro crudo de Alegra tal como llega en el JSON (esquema variable).
type Record = map[string]any

// InvoiceSource define el puerto de salida hacia las facturas de Alegra.
// Siguiendo el principio de inversión de dependencias (DIP), los casos de uso
// solo conocen este contrato, no el cliente HTTP.
type InvoiceSource interface {
	// ListInvoices trae todas las facturas del rango, día por día y página por página.
	// Si cualquier página falla, la consulta completa falla (sin resultados parciales).
	ListInvoices(ctx context.Context, r entity.DateRange) ([]Record, error)
}

// InventoryPageQuery parámetros de una página del reporte de valor de inventario.
type InventoryPageQuery struct {
	ToDate string
	Start  int // desplazamiento absoluto de la primera fila
	Limit  int
	Query  string
}

// InventorySource puerto de salida hacia los reportes de inventario de Alegra.
type InventorySource interface {
	InventoryValuePage(ctx context.Context, q InventoryPageQuery) ([]Record, error)
	InventoryValueTotals(ctx context.Context, toDate string) (Record, error)
}

// SalesTotalsQuery parámetros de /invoices/sales-totals.
type SalesTotalsQuery struct {
	From    string
	To      string
	GroupBy string // day | month
	Limit   int
	Start   int
}

// SalesSource puerto de salida hacia los totales de ventas y cuentas por pagar.
type SalesSource interface {
	SalesTotals(ctx context.Context, q SalesTotalsQuery) ([]Record, error)
	BillsOpenTotals(ctx context.Context, from, to string) (Record, error)
}

// UpstreamHealth verificación de conectividad con Alegra.
type UpstreamHealth interface {
	Ping(ctx context.Context) error
}
