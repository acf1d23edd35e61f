package alegra

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jhoicas/alegra-reports-api/internal/application/ports"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

// InventoryValuePage una página de /reports/inventory-value.
// Alegra responde 503 con páginas grandes; el llamador controla Limit.
func (c *Client) InventoryValuePage(ctx context.Context, q ports.InventoryPageQuery) ([]ports.Record, error) {
	start := max(q.Start, 0)
	page := 1
	if q.Limit > 0 {
		page = start/q.Limit + 1
	}
	params := url.Values{}
	params.Set("toDate", q.ToDate)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("start", strconv.Itoa(start))
	params.Set("query", q.Query)

	raw, err := c.GetPage(ctx, "/reports/inventory-value", params, RequestOptions{RetryOnTimeout: c.cfg.TimeoutRetries})
	if err != nil {
		return nil, domain.WithRange(err, "", q.ToDate)
	}
	return decodeRecords("/reports/inventory-value", raw)
}

// InventoryValueTotals total valorizado del inventario a la fecha ({"total": 145967454.87}).
func (c *Client) InventoryValueTotals(ctx context.Context, toDate string) (ports.Record, error) {
	params := url.Values{}
	params.Set("toDate", toDate)
	params.Set("query", "")

	raw, err := c.GetPage(ctx, "/reports/inventory-value-totals", params, RequestOptions{RetryOnTimeout: c.cfg.TimeoutRetries})
	if err != nil {
		return nil, domain.WithRange(err, "", toDate)
	}
	return decodeObject("/reports/inventory-value-totals", raw)
}

// SalesTotals totales de venta agrupados por día o mes.
func (c *Client) SalesTotals(ctx context.Context, q ports.SalesTotalsQuery) ([]ports.Record, error) {
	params := url.Values{}
	params.Set("from", q.From)
	params.Set("to", q.To)
	params.Set("groupBy", q.GroupBy)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("start", strconv.Itoa(q.Start))

	raw, err := c.GetPage(ctx, "/invoices/sales-totals", params, RequestOptions{RetryOnTimeout: c.cfg.TimeoutRetries})
	if err != nil {
		return nil, domain.WithRange(err, q.From, q.To)
	}
	return decodeRecords("/invoices/sales-totals", raw)
}

// BillsOpenTotals cuentas por pagar pendientes ({"missingAmount": ..., "totalDocuments": ...}).
func (c *Client) BillsOpenTotals(ctx context.Context, from, to string) (ports.Record, error) {
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)

	raw, err := c.GetPage(ctx, "/reports/bills-open-totals", params, RequestOptions{RetryOnTimeout: c.cfg.TimeoutRetries})
	if err != nil {
		return nil, domain.WithRange(err, from, to)
	}
	return decodeObject("/reports/bills-open-totals", raw)
}
