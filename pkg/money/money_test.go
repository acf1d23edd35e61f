package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCOP(t *testing.T) {
	cases := map[int64]string{
		0:          "$0",
		999:        "$999",
		1000:       "$1.000",
		450000:     "$450.000",
		1234567:    "$1.234.567",
		-13500:     "-$13.500",
		1000000000: "$1.000.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCOP(in), "monto %d", in)
	}
}

func TestFromAny(t *testing.T) {
	assert.True(t, decimal.NewFromFloat(145967454.87).Equal(FromAny(145967454.87)))
	assert.True(t, decimal.NewFromInt(39900).Equal(FromAny("39900")))
	assert.True(t, decimal.NewFromInt(1234567).Equal(FromAny("1,234,567")))
	assert.True(t, decimal.NewFromInt(12).Equal(FromAny(json.Number("12"))))
	assert.True(t, FromAny(nil).IsZero())
	assert.True(t, FromAny("n/a").IsZero())
	assert.True(t, FromAny(map[string]any{}).IsZero())
}

func TestPesos_RedondeaMitadArriba(t *testing.T) {
	assert.Equal(t, int64(1001), Pesos(decimal.RequireFromString("1000.5")))
	assert.Equal(t, int64(1000), Pesos(decimal.RequireFromString("1000.49")))
}

func TestPercentRatio(t *testing.T) {
	assert.Equal(t, "33.33", Percent(1, 3).StringFixed(2))
	assert.True(t, Percent(5, 0).IsZero())
	assert.Equal(t, "2.50", Ratio(5, 2).StringFixed(2))
	assert.True(t, Ratio(5, 0).IsZero())
}
