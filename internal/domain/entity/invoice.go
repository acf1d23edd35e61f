package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod medio de pago normalizado.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit-card"
	PaymentDebitCard  PaymentMethod = "debit-card"
	PaymentTransfer   PaymentMethod = "transfer"
	PaymentOther      PaymentMethod = "other"
)

// PaymentMethods orden estable para reportes.
var PaymentMethods = []PaymentMethod{PaymentCreditCard, PaymentDebitCard, PaymentTransfer, PaymentCash, PaymentOther}

// Label etiqueta en español para mostrar en el cierre.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentCreditCard:
		return "Tarjeta crédito"
	case PaymentDebitCard:
		return "Tarjeta débito"
	case PaymentTransfer:
		return "Transferencia"
	case PaymentCash:
		return "Efectivo"
	default:
		return "Otro"
	}
}

// Invoice factura de venta normalizada desde Alegra. Inmutable después de normalizar.
// Los montos están en pesos (COP, sin decimales).
type Invoice struct {
	ID            string
	Number        string
	DateTime      time.Time // en la zona horaria de la tienda
	Total         int64
	Items         []LineItem
	Customer      Customer // ID vacío = consumidor final
	Seller        Seller   // ID vacío = sin vendedor
	PaymentMethod PaymentMethod
	Payments      []Payment
	Voided        bool
}

// LineItem línea de factura; pertenece a su Invoice.
type LineItem struct {
	ProductID string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice int64
	Total     int64
}

// Payment pago asociado a la factura.
type Payment struct {
	Method PaymentMethod
	Amount int64
}
