package entity

import (
	"errors"
	"time"
)

// DateLayout formato de fecha usado en parámetros y en Alegra.
const DateLayout = "2006-01-02"

// DateRange rango inclusivo de días calendario en la zona horaria de la tienda.
type DateRange struct {
	Start time.Time // medianoche del primer día
	End   time.Time // medianoche del último día
}

// NewDateRange normaliza ambos extremos a medianoche en loc y valida start <= end.
func NewDateRange(start, end time.Time, loc *time.Location) (DateRange, error) {
	s := startOfDay(start, loc)
	e := startOfDay(end, loc)
	if e.Before(s) {
		return DateRange{}, errors.New("la fecha inicial no puede ser posterior a la final")
	}
	return DateRange{Start: s, End: e}, nil
}

// SingleDay rango de un solo día.
func SingleDay(day time.Time, loc *time.Location) DateRange {
	d := startOfDay(day, loc)
	return DateRange{Start: d, End: d}
}

// MonthToDate primer día del mes de now hasta now.
func MonthToDate(now time.Time, loc *time.Location) DateRange {
	n := now.In(loc)
	first := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, loc)
	return DateRange{Start: first, End: startOfDay(n, loc)}
}

// WholeMonth rango del mes completo.
func WholeMonth(year int, month time.Month, loc *time.Location) DateRange {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return DateRange{Start: first, End: first.AddDate(0, 1, -1)}
}

// Contains indica si t cae en algún día del rango.
func (r DateRange) Contains(t time.Time) bool {
	t = t.In(r.Start.Location())
	return !t.Before(r.Start) && t.Before(r.EndExclusive())
}

// EndExclusive medianoche del día siguiente al último.
func (r DateRange) EndExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// EndOfDay último instante del rango.
func (r DateRange) EndOfDay() time.Time {
	return r.EndExclusive().Add(-time.Nanosecond)
}

// DayCount número de días del rango, extremos incluidos.
func (r DateRange) DayCount() int {
	const day = 24 * time.Hour
	span := r.EndExclusive().Sub(r.Start).Round(day)
	return int(span / day)
}

// Days devuelve cada día del rango en orden.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// StartString y EndString en formato YYYY-MM-DD.
func (r DateRange) StartString() string { return r.Start.Format(DateLayout) }
func (r DateRange) EndString() string   { return r.End.Format(DateLayout) }

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
