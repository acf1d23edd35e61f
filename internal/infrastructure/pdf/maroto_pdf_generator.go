// Package pdf genera el comprobante imprimible del cierre de caja.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: CIERRE DE CAJA + fecha  │  Generado + zona horaria │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Monedas / Billetes / Total contado                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Denominación | Contado | Base | Consignar           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BASE + CONSIGNACIÓN + AJUSTES                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALEGRA: ventas por medio de pago, o error de consulta       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera el PDF del cierre con Maroto v2.
type MarotoPDFGenerator struct {
	storeName string
}

// NewMarotoPDFGenerator construye el generador; storeName va en el encabezado.
func NewMarotoPDFGenerator(storeName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{storeName: storeName}
}

// GenerateCashClosingPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCashClosingPDF(_ context.Context, closing *dto.CashClosingResponse) ([]byte, error) {
	if closing == nil {
		return nil, fmt.Errorf("pdf: cierre vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre de caja "+closing.DateRequested, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)
	cc := closing.CashCount

	m.AddRows(headerRow(g.storeName, closing))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(cc.Totals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow("Denominación", "Contado", "Base", "Consignar"))
	m.AddRows(denominationRows(cc)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRows(cc)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(alegraRows(closing.Alegra)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(store string, c *dto.CashClosingResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(store, "Tienda"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cajero Alegra: "+nonEmpty(c.UsernameUsed, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CIERRE DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(c.DateRequested, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Generado: %s %s (%s)", c.RequestDate, c.RequestTime, c.RequestTZ), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func totalsRow(t dto.CashTotalsDTO) core.Row {
	return row.New(14).Add(
		amountCol(4, "Monedas", money.FormatCOP(t.TotalMonedas)),
		amountCol(4, "Billetes", money.FormatCOP(t.TotalBilletes)),
		amountCol(4, "Total contado", t.TotalGeneralFormatted),
	)
}

func amountCol(size int, label, value string) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
	)
}

func tableHeaderRow(labels ...string) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(12/len(labels)).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

// denominationRows una fila por denominación con piezas contadas, de menor a mayor.
func denominationRows(cc dto.CashCountDTO) []core.Row {
	type denomLine struct {
		denom              int64
		count, base, depos int64
	}
	var lines []denomLine
	for d, n := range cc.InputCoins {
		lines = append(lines, denomLine{d, n, cc.Base.BaseMonedas[d], cc.Consignar.ConsignarMonedas[d]})
	}
	for d, n := range cc.InputBills {
		lines = append(lines, denomLine{d, n, cc.Base.BaseBilletes[d], cc.Consignar.ConsignarBilletes[d]})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].denom < lines[j].denom })

	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		if l.count == 0 {
			continue
		}
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(money.FormatCOP(l.denom), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(fmt.Sprint(l.count), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(fmt.Sprint(l.base), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(fmt.Sprint(l.depos), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func summaryRows(cc dto.CashCountDTO) []core.Row {
	base := cc.Base.TotalBaseFormatted
	if !cc.Base.ExactBaseObtained {
		base += " (faltan " + money.FormatCOP(cc.Base.RestanteParaBase) + ")"
	}
	return []core.Row{
		keyValueRow("Base para mañana", base, false),
		keyValueRow("Consignar sin ajustes", cc.Consignar.TotalConsignarSinAjustesFormatted, false),
		keyValueRow("Excedente", cc.Adjustments.ExcedenteFormatted, false),
		keyValueRow("Gastos operativos", cc.Adjustments.GastosOperativosFormatted, false),
		keyValueRow("Préstamos", cc.Adjustments.PrestamosFormatted, false),
		keyValueRow("EFECTIVO A CONSIGNAR", cc.Consignar.EfectivoParaConsignarFinalFormatted, true),
		keyValueRow("Venta en efectivo esperada en Alegra", cc.Adjustments.VentaEfectivoDiariaAlegraFormatted, true),
	}
}

func alegraRows(a dto.AlegraBlockDTO) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("VENTAS DEL DÍA EN ALEGRA", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	if a.PaymentSummaryDTO == nil {
		return append(rows, row.New(8).Add(col.New(12).Add(text.New(
			"No fue posible consultar Alegra: "+nonEmpty(a.Error, "sin detalle"),
			props.Text{Size: 8, Color: colorAlert, Top: 1},
		))))
	}
	for _, m := range entity.PaymentMethods {
		r, ok := a.Results[string(m)]
		if !ok {
			continue
		}
		rows = append(rows, keyValueRow(r.Label, r.Formatted, false))
	}
	rows = append(rows, keyValueRow(nonEmpty(a.TotalSale.Label, "Total venta"), a.TotalSale.Formatted, true))
	return rows
}

func keyValueRow(label, value string, strong bool) core.Row {
	style, c := fontstyle.Normal, &props.Color{}
	if strong {
		style, c = fontstyle.Bold, colorPrimary
	}
	return row.New(6).Add(
		col.New(3),
		col.New(5).Add(text.New(label+":", props.Text{Style: style, Size: 9, Align: align.Right, Color: c, Right: 2, Top: 1})),
		col.New(4).Add(text.New(value, props.Text{Style: style, Size: 9, Align: align.Right, Color: c, Right: 1, Top: 1})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
