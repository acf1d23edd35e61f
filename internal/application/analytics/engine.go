// Package analytics calcula los reportes de ventas sobre facturas normalizadas:
// horas pico, mejores clientes, vendedores, retención RFM, tendencias y venta cruzada.
//
// Cada reporte es una función pura sobre []entity.Invoice y un entity.DateRange
// explícito; el caso de uso solo trae y normaliza las facturas.
package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// Valores por defecto de los parámetros de los reportes.
const (
	DefaultLimit             = 10
	MaxLimit                 = 100
	DefaultMinSupport        = 2
	DefaultCrossSellingLimit = 20

	topHours              = 5
	retentionTopCustomers = 10
	finalConsumerName     = "Consumidor final"
	noSellerName          = "Sin vendedor"
)

// weekdayNames lunes primero.
var weekdayNames = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// activeInRange descarta facturas anuladas y fuera del rango.
// Todo reporte empieza por aquí.
func activeInRange(invoices []entity.Invoice, r entity.DateRange) []entity.Invoice {
	out := make([]entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Voided || !r.Contains(inv.DateTime) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// weekdayIndex 0 = lunes ... 6 = domingo.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func hourLabel(h int) string {
	return fmt.Sprintf("%02d:00 - %02d:59", h, h)
}

// averageTicket total/count redondeado a 2 decimales (mitad hacia arriba).
// Es exacto cuando count divide a total.
func averageTicket(total int64, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(count))).Round(2)
}

// wholeDays días completos entre a y b (piso).
func wholeDays(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a) / (24 * time.Hour))
}

func customerKey(c entity.Customer) (id, name string) {
	if c.ID == "" {
		return entity.FinalConsumerID, finalConsumerName
	}
	return c.ID, c.Name
}

func sellerKey(s entity.Seller) (id, name string) {
	if s.ID == "" {
		return entity.NoSellerID, noSellerName
	}
	return s.ID, s.Name
}

// ClampLimit aplica el valor por defecto y el máximo permitido.
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
