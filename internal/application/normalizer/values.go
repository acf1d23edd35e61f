// Package normalizer convierte los registros crudos de Alegra (JSON de esquema
// variable y archivos CSV/XLSX) en entidades canónicas. La detección de la
// estructura de inventario vive solo aquí.
package normalizer

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

// str convierte ids y textos que Alegra envía como string o número.
func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func obj(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func list(v any) []any {
	l, _ := v.([]any)
	return l
}

// lookup recorre una ruta "a.b.c" en mapas anidados.
func lookup(m map[string]any, path string) (any, bool) {
	cur := any(m)
	for _, key := range strings.Split(path, ".") {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = mm[key]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// firstPresent devuelve el primer valor no nulo entre las rutas.
func firstPresent(m map[string]any, paths ...string) (any, bool) {
	for _, p := range paths {
		if v, ok := lookup(m, p); ok {
			return v, true
		}
	}
	return nil, false
}

func decimalAt(m map[string]any, paths ...string) decimal.Decimal {
	v, ok := firstPresent(m, paths...)
	if !ok {
		return decimal.Zero
	}
	return money.FromAny(v)
}

func pesosAt(m map[string]any, paths ...string) int64 {
	return money.Pesos(decimalAt(m, paths...))
}
