package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bogota = time.FixedZone("COT", -5*60*60)

func TestNewDateRange_Invertido(t *testing.T) {
	_, err := NewDateRange(time.Date(2025, 12, 10, 0, 0, 0, 0, bogota), time.Date(2025, 12, 1, 0, 0, 0, 0, bogota), bogota)
	assert.Error(t, err)
}

func TestDateRange_ContainsInclusivo(t *testing.T) {
	r, err := NewDateRange(time.Date(2025, 12, 1, 15, 0, 0, 0, bogota), time.Date(2025, 12, 3, 0, 0, 0, 0, bogota), bogota)
	require.NoError(t, err)

	assert.True(t, r.Contains(time.Date(2025, 12, 1, 0, 0, 0, 0, bogota)))
	assert.True(t, r.Contains(time.Date(2025, 12, 3, 23, 59, 59, 0, bogota)))
	assert.False(t, r.Contains(time.Date(2025, 12, 4, 0, 0, 0, 0, bogota)))
	assert.False(t, r.Contains(time.Date(2025, 11, 30, 23, 59, 0, 0, bogota)))
	// 2025-12-04 03:00 UTC es 2025-12-03 22:00 en Bogotá
	assert.True(t, r.Contains(time.Date(2025, 12, 4, 3, 0, 0, 0, time.UTC)))
	assert.Len(t, r.Days(), 3)
	assert.Equal(t, "2025-12-01", r.StartString())
}

func TestMonthToDate(t *testing.T) {
	r := MonthToDate(time.Date(2025, 12, 17, 10, 0, 0, 0, bogota), bogota)
	assert.Equal(t, "2025-12-01", r.StartString())
	assert.Equal(t, "2025-12-17", r.EndString())
}

func TestWholeMonth(t *testing.T) {
	r := WholeMonth(2024, time.February, bogota)
	assert.Equal(t, "2024-02-29", r.EndString())
}

func TestDateRange_DayCount(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, bogota) }

	assert.Equal(t, 1, SingleDay(d(2025, 12, 5), bogota).DayCount())
	r, err := NewDateRange(d(2024, 1, 1), d(2024, 12, 31), bogota)
	require.NoError(t, err)
	assert.Equal(t, 366, r.DayCount())
	assert.Equal(t, len(r.Days()), r.DayCount())
}
