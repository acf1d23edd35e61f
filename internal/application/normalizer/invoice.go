package normalizer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// InvoiceBatch resultado de normalizar un lote: facturas válidas y cuántas se descartaron.
type InvoiceBatch struct {
	Invoices []entity.Invoice
	Skipped  int
}

// Invoices normaliza un lote. Los registros inválidos se cuentan en Skipped en lugar de abortar.
func Invoices(raws []map[string]any, loc *time.Location) InvoiceBatch {
	out := InvoiceBatch{Invoices: make([]entity.Invoice, 0, len(raws))}
	for _, raw := range raws {
		inv, err := Invoice(raw, loc)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Invoices = append(out.Invoices, inv)
	}
	return out
}

// Invoice convierte una factura cruda de /invoices en entity.Invoice.
// Requiere id y fecha; lo demás se completa con valores vacíos.
func Invoice(raw map[string]any, loc *time.Location) (entity.Invoice, error) {
	if raw == nil {
		return entity.Invoice{}, errors.New("factura vacía")
	}
	id := str(raw["id"])
	if id == "" {
		return entity.Invoice{}, errors.New("factura sin id")
	}
	when, err := invoiceTime(raw, loc)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("factura %s: %w", id, err)
	}

	inv := entity.Invoice{
		ID:       id,
		Number:   invoiceNumber(raw),
		DateTime: when,
		Total:    pesosAt(raw, "total"),
		Customer: customer(obj(raw["client"])),
		Seller:   seller(obj(raw["seller"])),
		Voided:   isVoided(str(raw["status"])),
	}
	for _, it := range list(raw["items"]) {
		if m := obj(it); m != nil {
			inv.Items = append(inv.Items, lineItem(m))
		}
	}

	for _, p := range list(raw["payments"]) {
		m := obj(p)
		if m == nil {
			continue
		}
		inv.Payments = append(inv.Payments, entity.Payment{
			Method: PaymentMethod(str(m["paymentMethod"])),
			Amount: pesosAt(m, "amount"),
		})
	}
	switch {
	case len(inv.Payments) > 0:
		inv.PaymentMethod = inv.Payments[0].Method
	default:
		inv.PaymentMethod = PaymentMethod(str(raw["paymentMethod"]))
		inv.Payments = []entity.Payment{{Method: inv.PaymentMethod, Amount: inv.Total}}
	}
	return inv, nil
}

func invoiceTime(raw map[string]any, loc *time.Location) (time.Time, error) {
	for _, key := range []string{"datetime", "date"} {
		s := str(raw[key])
		if s == "" {
			continue
		}
		for _, layout := range dateTimeLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t.In(loc), nil
			}
		}
	}
	return time.Time{}, errors.New("fecha ausente o inválida")
}

func invoiceNumber(raw map[string]any) string {
	if v, ok := lookup(raw, "numberTemplate.fullNumber"); ok {
		return str(v)
	}
	return str(raw["number"])
}

func lineItem(m map[string]any) entity.LineItem {
	qty := decimalAt(m, "quantity")
	price := decimalAt(m, "price")
	li := entity.LineItem{
		ProductID: str(m["id"]),
		Name:      strings.TrimSpace(str(m["name"])),
		Quantity:  qty,
		UnitPrice: money.Pesos(price),
	}
	if _, ok := lookup(m, "total"); ok {
		li.Total = pesosAt(m, "total")
	} else {
		li.Total = money.Pesos(price.Mul(qty))
	}
	if li.Quantity.IsZero() && li.Total != 0 {
		li.Quantity = decimal.NewFromInt(1)
	}
	return li
}

func customer(m map[string]any) entity.Customer {
	if m == nil {
		return entity.Customer{}
	}
	c := entity.Customer{
		ID:             str(m["id"]),
		Name:           str(m["name"]),
		Identification: str(m["identification"]),
		Email:          str(m["email"]),
	}
	if v, ok := firstPresent(m, "phonePrimary", "mobile", "phone"); ok {
		c.Phone = str(v)
	}
	if c.Identification == "" {
		if v, ok := lookup(m, "identificationObject.number"); ok {
			c.Identification = str(v)
		}
	}
	return c
}

func seller(m map[string]any) entity.Seller {
	if m == nil {
		return entity.Seller{}
	}
	return entity.Seller{
		ID:             str(m["id"]),
		Name:           str(m["name"]),
		Identification: str(m["identification"]),
	}
}

func isVoided(status string) bool {
	s := strings.ToLower(status)
	return s == "void" || s == "annulled" || s == "anulada"
}

// PaymentMethod normaliza el medio de pago de Alegra ("Tarjeta de crédito", "cash", ...).
func PaymentMethod(pm string) entity.PaymentMethod {
	low := strings.ToLower(strings.TrimSpace(pm))
	switch {
	case low == "":
		return entity.PaymentOther
	case strings.Contains(low, "credit") || strings.Contains(low, "crédito") || strings.Contains(low, "credito"):
		return entity.PaymentCreditCard
	case strings.Contains(low, "debit") || strings.Contains(low, "débito") || strings.Contains(low, "debito"):
		return entity.PaymentDebitCard
	case strings.Contains(low, "transfer"):
		return entity.PaymentTransfer
	case strings.Contains(low, "cash") || strings.Contains(low, "efectivo"):
		return entity.PaymentCash
	}
	return entity.PaymentOther
}
