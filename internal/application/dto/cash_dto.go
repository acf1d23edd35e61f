package dto

import "github.com/shopspring/decimal"

// ── Cierre de caja (POST /api/sum_payments) ─────────────────────────────────

// CashClosingRequest conteo físico de la caja. Las claves de coins y bills son
// denominaciones ("50", "2000"); las desconocidas se ignoran.
type CashClosingRequest struct {
	Date             string           `json:"date"`
	Coins            map[string]int64 `json:"coins"`
	Bills            map[string]int64 `json:"bills"`
	Excedente        decimal.Decimal  `json:"excedente"`
	GastosOperativos decimal.Decimal  `json:"gastos_operativos"`
	Prestamos        decimal.Decimal  `json:"prestamos"`
}

// CashTotalsDTO efectivo contado.
type CashTotalsDTO struct {
	TotalMonedas          int64  `json:"total_monedas"`
	TotalBilletes         int64  `json:"total_billetes"`
	TotalGeneral          int64  `json:"total_general"`
	TotalGeneralFormatted string `json:"total_general_formatted"`
}

// CashBaseDTO piezas que quedan en la caja como base del día siguiente.
type CashBaseDTO struct {
	BaseMonedas        map[int64]int64 `json:"base_monedas"`
	BaseBilletes       map[int64]int64 `json:"base_billetes"`
	TotalBaseMonedas   int64           `json:"total_base_monedas"`
	TotalBaseBilletes  int64           `json:"total_base_billetes"`
	TotalBase          int64           `json:"total_base"`
	TotalBaseFormatted string          `json:"total_base_formatted"`
	ExactBaseObtained  bool            `json:"exact_base_obtained"`
	RestanteParaBase   int64           `json:"restante_para_base"`
}

// CashDepositDTO efectivo a consignar.
type CashDepositDTO struct {
	ConsignarMonedas                    map[int64]int64 `json:"consignar_monedas"`
	ConsignarBilletes                   map[int64]int64 `json:"consignar_billetes"`
	TotalConsignarSinAjustes            int64           `json:"total_consignar_sin_ajustes"`
	TotalConsignarSinAjustesFormatted   string          `json:"total_consignar_sin_ajustes_formatted"`
	EfectivoParaConsignarFinal          int64           `json:"efectivo_para_consignar_final"`
	EfectivoParaConsignarFinalFormatted string          `json:"efectivo_para_consignar_final_formatted"`
}

// CashAdjustmentsDTO ajustes declarados por el cajero.
type CashAdjustmentsDTO struct {
	Excedente                          int64  `json:"excedente"`
	ExcedenteFormatted                 string `json:"excedente_formatted"`
	GastosOperativos                   int64  `json:"gastos_operativos"`
	GastosOperativosFormatted          string `json:"gastos_operativos_formatted"`
	Prestamos                          int64  `json:"prestamos"`
	PrestamosFormatted                 string `json:"prestamos_formatted"`
	VentaEfectivoDiariaAlegra          int64  `json:"venta_efectivo_diaria_alegra"`
	VentaEfectivoDiariaAlegraFormatted string `json:"venta_efectivo_diaria_alegra_formatted"`
}

// CashCountDTO resultado completo del conteo.
type CashCountDTO struct {
	InputCoins  map[int64]int64    `json:"input_coins"`
	InputBills  map[int64]int64    `json:"input_bills"`
	Totals      CashTotalsDTO      `json:"totals"`
	Base        CashBaseDTO        `json:"base"`
	Consignar   CashDepositDTO     `json:"consignar"`
	Adjustments CashAdjustmentsDTO `json:"adjustments"`
}

// AlegraBlockDTO ventas del día según Alegra, o solo Error si la consulta falló.
type AlegraBlockDTO struct {
	*PaymentSummaryDTO
	Error string `json:"error,omitempty"`
}

// CashClosingResponse respuesta del cierre. Con Alegra caído se devuelve igual,
// con el conteo y el error en el bloque alegra.
type CashClosingResponse struct {
	RequestDatetime string         `json:"request_datetime"`
	RequestDate     string         `json:"request_date"`
	RequestTime     string         `json:"request_time"`
	RequestTZ       string         `json:"request_tz"`
	DateRequested   string         `json:"date_requested"`
	UsernameUsed    string         `json:"username_used"`
	CashCount       CashCountDTO   `json:"cash_count"`
	Alegra          AlegraBlockDTO `json:"alegra"`
}
