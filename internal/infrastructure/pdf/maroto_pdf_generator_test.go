package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
)

func closing() *dto.CashClosingResponse {
	return &dto.CashClosingResponse{
		RequestDate:   "2025-11-06",
		RequestTime:   "20:15:00",
		RequestTZ:     "America/Bogota",
		DateRequested: "2025-11-06",
		UsernameUsed:  "caja@tienda.co",
		CashCount: dto.CashCountDTO{
			InputCoins: map[int64]int64{200: 40, 500: 1},
			InputBills: map[int64]int64{50000: 10},
			Totals:     dto.CashTotalsDTO{TotalMonedas: 8500, TotalBilletes: 500000, TotalGeneral: 508500, TotalGeneralFormatted: "$508.500"},
			Base: dto.CashBaseDTO{
				BaseMonedas:        map[int64]int64{200: 40, 500: 0},
				BaseBilletes:       map[int64]int64{50000: 8},
				TotalBase:          408000,
				TotalBaseFormatted: "$408.000",
				RestanteParaBase:   42000,
			},
		},
	}
}

func TestGenerateCashClosingPDF_ConAlegra(t *testing.T) {
	c := closing()
	c.Alegra = dto.AlegraBlockDTO{PaymentSummaryDTO: &dto.PaymentSummaryDTO{
		Results: map[string]dto.PaymentMethodTotalDTO{
			"cash": {Label: "Efectivo", Total: 100000, Formatted: "$100.000"},
		},
		TotalSale: dto.PaymentMethodTotalDTO{Label: "Total venta", Total: 100000, Formatted: "$100.000"},
	}}

	out, err := NewMarotoPDFGenerator("KOAJ Centro").GenerateCashClosingPDF(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateCashClosingPDF_SinAlegra(t *testing.T) {
	c := closing()
	c.Alegra = dto.AlegraBlockDTO{Error: "tiempo de espera agotado"}

	out, err := NewMarotoPDFGenerator("").GenerateCashClosingPDF(context.Background(), c)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = NewMarotoPDFGenerator("").GenerateCashClosingPDF(context.Background(), nil)
	assert.Error(t, err)
}
