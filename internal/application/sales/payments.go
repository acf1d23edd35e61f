package sales

import (
	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

// paymentTally acumulados por medio de pago y por día de las facturas vigentes.
type paymentTally struct {
	byMethod   map[entity.PaymentMethod]int64
	daily      map[string]int64
	dailyCount map[string]int
	total      int64
	count      int
	voided     int
}

// tally suma los pagos de cada factura en su medio; anuladas y fuera de rango no cuentan.
func tally(invoices []entity.Invoice, r entity.DateRange) paymentTally {
	t := paymentTally{
		byMethod:   make(map[entity.PaymentMethod]int64, len(entity.PaymentMethods)),
		daily:      make(map[string]int64),
		dailyCount: make(map[string]int),
	}
	for _, inv := range invoices {
		if !r.Contains(inv.DateTime) {
			continue
		}
		if inv.Voided {
			t.voided++
			continue
		}
		t.count++
		var paid int64
		for _, p := range inv.Payments {
			t.byMethod[p.Method] += p.Amount
			paid += p.Amount
		}
		day := inv.DateTime.In(r.Start.Location()).Format(entity.DateLayout)
		t.daily[day] += paid
		t.dailyCount[day]++
		t.total += paid
	}
	return t
}

// results todos los medios de pago, incluso en cero.
func (t paymentTally) results() map[string]dto.PaymentMethodTotalDTO {
	out := make(map[string]dto.PaymentMethodTotalDTO, len(entity.PaymentMethods))
	for _, m := range entity.PaymentMethods {
		out[string(m)] = methodTotal(m.Label(), t.byMethod[m])
	}
	return out
}

func methodTotal(label string, total int64) dto.PaymentMethodTotalDTO {
	return dto.PaymentMethodTotalDTO{Label: label, Total: total, Formatted: money.FormatCOP(total)}
}

func documentDTO(inv entity.Invoice) dto.DocumentDTO {
	d := dto.DocumentDTO{
		ID:             inv.ID,
		Number:         inv.Number,
		DateTime:       inv.DateTime,
		Date:           inv.DateTime.Format(entity.DateLayout),
		Total:          inv.Total,
		CustomerID:     inv.Customer.ID,
		CustomerName:   inv.Customer.Name,
		Identification: inv.Customer.Identification,
		SellerID:       inv.Seller.ID,
		SellerName:     inv.Seller.Name,
		PaymentMethod:  string(inv.PaymentMethod),
		Payments:       make([]dto.DocumentPaymentDTO, 0, len(inv.Payments)),
		Items:          make([]dto.DocumentItemDTO, 0, len(inv.Items)),
		Voided:         inv.Voided,
	}
	for _, p := range inv.Payments {
		d.Payments = append(d.Payments, dto.DocumentPaymentDTO{Method: string(p.Method), Amount: p.Amount})
	}
	for _, it := range inv.Items {
		d.Items = append(d.Items, dto.DocumentItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity.String(),
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	return d
}
