package cashclosing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// PaymentSummarizer ventas del día por medio de pago (implementado por sales.UseCase).
type PaymentSummarizer interface {
	PaymentSummary(ctx context.Context, day time.Time) (*dto.PaymentSummaryDTO, error)
}

// UseCase cierre de caja: conteo local más las ventas del día en Alegra.
type UseCase struct {
	calc       *Calculator
	settings   Settings
	sales      PaymentSummarizer
	loc        *time.Location
	alegraUser string
	now        func() time.Time
	log        zerolog.Logger
}

func NewUseCase(s Settings, sales PaymentSummarizer, loc *time.Location, alegraUser string, log zerolog.Logger) *UseCase {
	return &UseCase{
		calc:       NewCalculator(s),
		settings:   s,
		sales:      sales,
		loc:        loc,
		alegraUser: alegraUser,
		now:        time.Now,
		log:        log,
	}
}

// Close procesa el cierre. Si Alegra falla devuelve la respuesta con el conteo y el
// error en el bloque alegra, junto con el error; el llamador responde 502 con ese cuerpo.
// Los errores de validación devuelven respuesta nil.
func (uc *UseCase) Close(ctx context.Context, req dto.CashClosingRequest) (*dto.CashClosingResponse, error) {
	now := uc.now().In(uc.loc)
	day, err := time.ParseInLocation(entity.DateLayout, req.Date, uc.loc)
	if err != nil {
		return nil, domain.Invalid("date", "formato de fecha inválido, use YYYY-MM-DD")
	}
	if day.After(entity.SingleDay(now, uc.loc).Start) {
		return nil, domain.Invalid("date", "la fecha no puede ser futura: %s", req.Date)
	}

	coins, err := NormalizeCounts("coins", req.Coins, uc.settings.CoinDenominations)
	if err != nil {
		return nil, err
	}
	bills, err := NormalizeCounts("bills", req.Bills, uc.settings.BillDenominations)
	if err != nil {
		return nil, err
	}
	var adj Adjustments
	if adj.Excedente, err = AdjustmentPesos("excedente", req.Excedente); err != nil {
		return nil, err
	}
	if adj.GastosOperativos, err = AdjustmentPesos("gastos_operativos", req.GastosOperativos); err != nil {
		return nil, err
	}
	if adj.Prestamos, err = AdjustmentPesos("prestamos", req.Prestamos); err != nil {
		return nil, err
	}

	count := uc.calc.Close(coins, bills, adj)
	resp := &dto.CashClosingResponse{
		RequestDatetime: now.Format(time.RFC3339),
		RequestDate:     now.Format(entity.DateLayout),
		RequestTime:     now.Format(time.TimeOnly),
		RequestTZ:       uc.loc.String(),
		DateRequested:   req.Date,
		UsernameUsed:    uc.alegraUser,
		CashCount:       count,
	}

	summary, err := uc.sales.PaymentSummary(ctx, day)
	if err != nil {
		resp.Alegra = dto.AlegraBlockDTO{Error: err.Error()}
		uc.log.Warn().
			Err(err).
			Str("op", "cash_closing").
			Str("date", req.Date).
			Msg("cierre sin datos de Alegra")
		return resp, fmt.Errorf("cash_closing: %w", err)
	}
	resp.Alegra = dto.AlegraBlockDTO{PaymentSummaryDTO: summary}

	uc.log.Info().
		Str("op", "cash_closing").
		Str("date", req.Date).
		Int64("total", count.Totals.TotalGeneral).
		Int64("base", count.Base.TotalBase).
		Bool("exact_base", count.Base.ExactBaseObtained).
		Int64("deposit", count.Consignar.EfectivoParaConsignarFinal).
		Int64("alegra_total", summary.TotalSale.Total).
		Msg("cierre de caja")
	return resp, nil
}
