package alegra

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jhoicas/alegra-reports-api/internal/application/ports"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// ListInvoices recorre el rango día por día; por cada día pide /invoices?date=D&start=S&limit=L
// hasta recibir una página incompleta. Alegra no devuelve más de 30 facturas por página.
func (c *Client) ListInvoices(ctx context.Context, r entity.DateRange) ([]ports.Record, error) {
	from, to := r.StartString(), r.EndString()
	limit := c.cfg.InvoicePageSize
	all := make([]ports.Record, 0, 64)

	for _, day := range r.Days() {
		date := day.Format(entity.DateLayout)
		dayCount := 0
		for start := 0; ; start += limit {
			q := url.Values{}
			q.Set("date", date)
			q.Set("start", strconv.Itoa(start))
			q.Set("limit", strconv.Itoa(limit))

			raw, err := c.GetPage(ctx, "/invoices", q, RequestOptions{RetryOnTimeout: c.cfg.TimeoutRetries})
			if err != nil {
				return nil, domain.WithRange(err, from, to)
			}
			batch, err := decodeRecords("/invoices", raw)
			if err != nil {
				return nil, domain.WithRange(err, from, to)
			}
			all = append(all, batch...)
			dayCount += len(batch)
			if len(batch) < limit {
				break
			}
		}
		c.log.Debug().Str("date", date).Int("invoices", dayCount).Msg("facturas del día obtenidas")
	}

	c.log.Info().Str("from", from).Str("to", to).Int("invoices", len(all)).Msg("facturas obtenidas de Alegra")
	return all, nil
}
