// Package cashclosing calcula el cierre de caja diario: totales del conteo físico,
// base que queda en caja, efectivo a consignar y la venta en efectivo esperada en Alegra.
package cashclosing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

// Settings parámetros del cierre (CASH_* en la configuración).
type Settings struct {
	BaseTarget           int64
	SmallChangeThreshold int64
	CoinDenominations    []int64
	BillDenominations    []int64
}

// Calculator aplica las reglas del cierre sobre un conteo. Sin estado.
type Calculator struct {
	s Settings
}

func NewCalculator(s Settings) *Calculator {
	return &Calculator{s: s}
}

// Adjustments montos declarados por el cajero, ya en pesos.
type Adjustments struct {
	Excedente        int64
	GastosOperativos int64
	Prestamos        int64
}

// NormalizeCounts lleva las claves a denominaciones válidas; las desconocidas se ignoran
// y las faltantes quedan en cero. Cantidades negativas o claves no numéricas son inválidas.
func NormalizeCounts(field string, in map[string]int64, valid []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(valid))
	for _, d := range valid {
		out[d] = 0
	}
	for key, qty := range in {
		d, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			return nil, domain.Invalid(field, "denominación inválida %q", key)
		}
		if qty < 0 {
			return nil, domain.Invalid(field, "la cantidad para %d no puede ser negativa: %d", d, qty)
		}
		if _, ok := out[d]; ok {
			out[d] = qty
		}
	}
	return out, nil
}

// AdjustmentPesos valida que el ajuste no sea negativo y lo redondea a pesos.
func AdjustmentPesos(field string, v decimal.Decimal) (int64, error) {
	if v.IsNegative() {
		return 0, domain.Invalid(field, "no puede ser negativo")
	}
	return money.Pesos(v), nil
}

// Close calcula el cierre completo.
//
//	consignar final = consignar sin ajustes − gastos − préstamos
//	venta efectivo Alegra = total contado − excedente − base
func (c *Calculator) Close(coins, bills map[int64]int64, adj Adjustments) dto.CashCountDTO {
	totalCoins := sumPieces(coins)
	totalBills := sumPieces(bills)
	total := totalCoins + totalBills

	all := make(map[int64]int64, len(coins)+len(bills))
	for d, n := range coins {
		all[d] += n
	}
	for d, n := range bills {
		all[d] += n
	}
	res := BuildBase(all, c.s.BaseTarget, c.s.SmallChangeThreshold)

	baseCoins := pick(res.Base, c.s.CoinDenominations)
	baseBills := pick(res.Base, c.s.BillDenominations)
	depositCoins := pick(res.Deposit, c.s.CoinDenominations)
	depositBills := pick(res.Deposit, c.s.BillDenominations)
	deposit := sumPieces(depositCoins) + sumPieces(depositBills)
	finalDeposit := deposit - adj.GastosOperativos - adj.Prestamos
	cashSale := total - adj.Excedente - res.BaseTotal

	return dto.CashCountDTO{
		InputCoins: coins,
		InputBills: bills,
		Totals: dto.CashTotalsDTO{
			TotalMonedas:          totalCoins,
			TotalBilletes:         totalBills,
			TotalGeneral:          total,
			TotalGeneralFormatted: money.FormatCOP(total),
		},
		Base: dto.CashBaseDTO{
			BaseMonedas:        baseCoins,
			BaseBilletes:       baseBills,
			TotalBaseMonedas:   sumPieces(baseCoins),
			TotalBaseBilletes:  sumPieces(baseBills),
			TotalBase:          res.BaseTotal,
			TotalBaseFormatted: money.FormatCOP(res.BaseTotal),
			ExactBaseObtained:  res.Exact,
			RestanteParaBase:   res.Remaining,
		},
		Consignar: dto.CashDepositDTO{
			ConsignarMonedas:                    depositCoins,
			ConsignarBilletes:                   depositBills,
			TotalConsignarSinAjustes:            deposit,
			TotalConsignarSinAjustesFormatted:   money.FormatCOP(deposit),
			EfectivoParaConsignarFinal:          finalDeposit,
			EfectivoParaConsignarFinalFormatted: money.FormatCOP(finalDeposit),
		},
		Adjustments: dto.CashAdjustmentsDTO{
			Excedente:                          adj.Excedente,
			ExcedenteFormatted:                 money.FormatCOP(adj.Excedente),
			GastosOperativos:                   adj.GastosOperativos,
			GastosOperativosFormatted:          money.FormatCOP(adj.GastosOperativos),
			Prestamos:                          adj.Prestamos,
			PrestamosFormatted:                 money.FormatCOP(adj.Prestamos),
			VentaEfectivoDiariaAlegra:          cashSale,
			VentaEfectivoDiariaAlegraFormatted: money.FormatCOP(cashSale),
		},
	}
}

func pick(pieces map[int64]int64, denoms []int64) map[int64]int64 {
	out := make(map[int64]int64, len(denoms))
	for _, d := range denoms {
		out[d] = pieces[d]
	}
	return out
}
