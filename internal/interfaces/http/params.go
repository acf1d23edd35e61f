package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// clock permite fijar "hoy" en tests.
type clock func() time.Time

// maxInvoiceRangeDays Alegra lista facturas día por día; rangos mayores se rechazan.
const maxInvoiceRangeDays = 366

func parseDay(field, s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(entity.DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "formato de fecha inválido, use YYYY-MM-DD")
	}
	return d, nil
}

// analyticsRange resuelve date | start_date+end_date. Sin parámetros: del
// primero del mes a hoy en la zona de la tienda.
func analyticsRange(c *fiber.Ctx, loc *time.Location, now clock) (entity.DateRange, error) {
	if d := c.Query("date"); d != "" {
		day, err := parseDay("date", d, loc)
		if err != nil {
			return entity.DateRange{}, err
		}
		return entity.SingleDay(day, loc), nil
	}
	start, end := c.Query("start_date"), c.Query("end_date")
	switch {
	case start == "" && end == "":
		return entity.MonthToDate(now(), loc), nil
	case start == "" || end == "":
		return entity.DateRange{}, domain.Invalid("start_date", "start_date y end_date deben enviarse juntos")
	}
	r, err := explicitRange("start_date", start, "end_date", end, loc)
	if err != nil {
		return entity.DateRange{}, err
	}
	if err := checkSpan("start_date", r); err != nil {
		return entity.DateRange{}, err
	}
	return r, nil
}

// checkSpan limita rangos que se resuelven con una consulta por día.
func checkSpan(field string, r entity.DateRange) error {
	if n := r.DayCount(); n > maxInvoiceRangeDays {
		return domain.Invalid(field, "el rango tiene %d días; el máximo es %d", n, maxInvoiceRangeDays)
	}
	return nil
}

// requiredRange exige ambos extremos (p. ej. from/to).
func requiredRange(c *fiber.Ctx, fromKey, toKey string, loc *time.Location) (entity.DateRange, error) {
	from, to := c.Query(fromKey), c.Query(toKey)
	if from == "" || to == "" {
		return entity.DateRange{}, domain.Invalid("", "los parámetros %s y %s son requeridos (YYYY-MM-DD)", fromKey, toKey)
	}
	return explicitRange(fromKey, from, toKey, to, loc)
}

// optionalRange como requiredRange pero sin parámetros usa el mes en curso.
func optionalRange(c *fiber.Ctx, fromKey, toKey string, loc *time.Location, now clock) (entity.DateRange, error) {
	if c.Query(fromKey) == "" && c.Query(toKey) == "" {
		return entity.MonthToDate(now(), loc), nil
	}
	return requiredRange(c, fromKey, toKey, loc)
}

func explicitRange(fromKey, from, toKey, to string, loc *time.Location) (entity.DateRange, error) {
	s, err := parseDay(fromKey, from, loc)
	if err != nil {
		return entity.DateRange{}, err
	}
	e, err := parseDay(toKey, to, loc)
	if err != nil {
		return entity.DateRange{}, err
	}
	r, err := entity.NewDateRange(s, e, loc)
	if err != nil {
		return entity.DateRange{}, domain.Invalid(fromKey, "%s", err.Error())
	}
	return r, nil
}

// queryInt lee un entero opcional; def si falta.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.Invalid(key, "debe ser un número entero")
	}
	return n, nil
}

// boundedInt como queryInt pero valida [lo, hi].
func boundedInt(c *fiber.Ctx, key string, def, lo, hi int) (int, error) {
	n, err := queryInt(c, key, def)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, domain.Invalid(key, "debe estar entre %d y %d", lo, hi)
	}
	return n, nil
}

// pathID lee un parámetro de ruta numérico.
func pathID(c *fiber.Ctx, key string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(key), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(key, "identificador inválido")
	}
	return id, nil
}

// todayString fecha de hoy en la zona de la tienda.
func todayString(now clock, loc *time.Location) string {
	return now().In(loc).Format(entity.DateLayout)
}
