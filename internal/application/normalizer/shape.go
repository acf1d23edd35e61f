package normalizer

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// Columnas conocidas de cada estructura, ya normalizadas con columnKey.
var (
	inventoryNameCols  = []string{"item", "nombre"}
	inventoryQtyCols   = []string{"cantidad"}
	inventoryValueCols = []string{"costo promedio", "total"}
	inventoryAllCols   = []string{"item", "cantidad", "estado", "costo promedio", "total", "categoria", "cantidad minima", "cantidad maxima"}

	exportNameCols  = []string{"nombre"}
	exportTypeCols  = []string{"tipo"}
	exportPriceCols = []string{"precio base", "costo inicial"}
	exportAllCols   = []string{"tipo", "nombre", "precio base", "costo inicial", "categoria", "referencia"}
)

// columnKey normaliza un encabezado: sin tildes, minúsculas, "_" como espacio.
// "Ítem" -> "item", "Categoría" -> "categoria", "precio_base" -> "precio base".
func columnKey(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, h)
	if err != nil {
		s = h
	}
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

type columnSet map[string]bool

func newColumnSet(headers []string) columnSet {
	set := make(columnSet, len(headers))
	for _, h := range headers {
		set[columnKey(h)] = true
	}
	return set
}

func (s columnSet) any(cols []string) bool {
	for _, c := range cols {
		if s[c] {
			return true
		}
	}
	return false
}

func (s columnSet) count(cols []string) int {
	n := 0
	for _, c := range cols {
		if s[c] {
			n++
		}
	}
	return n
}

// DetectShape decide la estructura de un archivo por sus encabezados.
// Si ambas estructuras son posibles gana la de más columnas coincidentes; en empate, inventario.
func DetectShape(headers []string) (entity.InventoryShape, error) {
	set := newColumnSet(headers)
	isInventory := set.any(inventoryNameCols) && set.any(inventoryQtyCols) && set.any(inventoryValueCols)
	isExport := set.any(exportNameCols) && set.any(exportTypeCols) && set.any(exportPriceCols)

	switch {
	case isInventory && isExport:
		if set.count(exportAllCols) > set.count(inventoryAllCols) {
			return entity.ShapeProductExport, nil
		}
		return entity.ShapeInventoryReport, nil
	case isInventory:
		return entity.ShapeInventoryReport, nil
	case isExport:
		return entity.ShapeProductExport, nil
	}
	return "", fmt.Errorf("%w: encabezados %q", domain.ErrSchemaMismatch, headers)
}

// DetectRecordShape decide la estructura de un registro JSON de Alegra por los campos presentes.
func DetectRecordShape(raw map[string]any) (entity.InventoryShape, error) {
	if str(raw["name"]) == "" {
		return "", fmt.Errorf("%w: registro sin nombre", domain.ErrSchemaMismatch)
	}
	_, hasStock := firstPresent(raw, "quantity", "availableQuantity", "inventory.availableQuantity")
	_, hasValue := firstPresent(raw, "total", "averageCost", "unitCost", "inventory.unitCost")
	if hasStock || hasValue {
		return entity.ShapeInventoryReport, nil
	}
	_, hasType := raw["type"]
	_, hasPrice := firstPresent(raw, "price", "initialCost")
	if hasType && hasPrice {
		return entity.ShapeProductExport, nil
	}
	return "", fmt.Errorf("%w: registro %q sin campos de inventario ni de producto", domain.ErrSchemaMismatch, str(raw["id"]))
}
