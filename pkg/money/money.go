// Package money concentra la conversión de montos de Alegra a pesos enteros
// y el formato de presentación en COP ("$1.234.567").
package money

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FromAny convierte un valor JSON decodificado (float64, string, json.Number, int) a decimal.
// Valores vacíos o no numéricos devuelven cero.
func FromAny(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(t)
	case float32:
		return decimal.NewFromFloat32(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	case bool:
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// Pesos redondea a la unidad (mitad hacia arriba) y devuelve el entero.
func Pesos(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Percent devuelve part/whole*100 redondeado a 2 decimales; cero si whole es cero.
func Percent(part, whole int64) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(whole)).Round(2)
}

// Ratio devuelve num/den redondeado a 2 decimales; cero si den es cero.
func Ratio(num, den int64) decimal.Decimal {
	if den == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den)).Round(2)
}

// FormatCOP formatea pesos con punto como separador de miles: 1234567 -> "$1.234.567".
func FormatCOP(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3 + 2)
	b.WriteString(sign)
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDecimalCOP redondea y formatea un decimal.
func FormatDecimalCOP(d decimal.Decimal) string {
	return FormatCOP(Pesos(d))
}
