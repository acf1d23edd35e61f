package normalizer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

// Table encabezados y filas de un archivo tabular.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadFile elige el lector por extensión (.csv, .xlsx).
func ReadFile(filename string, content []byte) (Table, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return ReadCSV(content)
	case strings.HasSuffix(name, ".xlsx"):
		return ReadXLSX(content)
	}
	return Table{}, domain.Invalid("file", "formato de archivo no soportado, use CSV o Excel (.xlsx)")
}

// ReadCSV lee un CSV exportado por Alegra: Latin-1 (o UTF-8 si ya es válido),
// separador indicado por "sep=" en la primera línea o detectado entre ';' y ','.
func ReadCSV(content []byte) (Table, error) {
	text, err := decodeText(content)
	if err != nil {
		return Table{}, fmt.Errorf("decodificar CSV: %w", err)
	}
	lines := strings.Split(text, "\n")
	sep, skipFirst := detectSeparator(lines)
	if skipFirst {
		text = strings.Join(lines[1:], "\n")
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sep
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return Table{}, domain.Invalid("file", "CSV inválido: %v", err)
	}
	return toTable(records)
}

func decodeText(content []byte) (string, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if utf8.Valid(content) {
		return string(content), nil
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func detectSeparator(lines []string) (rune, bool) {
	if len(lines) > 0 {
		first := strings.TrimSpace(lines[0])
		if idx := strings.Index(first, "sep="); idx == 0 || (idx > 0 && first[idx-1] == '?') {
			if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(first[idx+4:])); r != utf8.RuneError {
				return r, true
			}
		}
	}
	head := lines
	if len(head) > 5 {
		head = head[:5]
	}
	semicolons, commas := 0, 0
	for _, l := range head {
		semicolons += strings.Count(l, ";")
		commas += strings.Count(l, ",")
	}
	if semicolons > commas {
		return ';', false
	}
	return ',', false
}

// ReadXLSX lee la hoja activa de un libro Excel.
func ReadXLSX(content []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return Table{}, domain.Invalid("file", "Excel inválido: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	return toTable(rows)
}

func toTable(records [][]string) (Table, error) {
	var t Table
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		if t.Headers == nil {
			t.Headers = make([]string, len(rec))
			for i, h := range rec {
				t.Headers[i] = strings.TrimSpace(h)
			}
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	if t.Headers == nil {
		return Table{}, domain.Invalid("file", "archivo vacío")
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ParseNumber interpreta montos de archivos: "1.234,56", "1234,5", "=\"100\"".
// Con coma y punto se asume punto de miles; valores ilegibles son cero.
func ParseNumber(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(`"`, "", "=", "", "$", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero
	}
	hasComma, hasDot := strings.Contains(s, ","), strings.Contains(s, ".")
	switch {
	case hasComma && !hasDot:
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// row acceso por nombre de columna normalizado.
type row struct {
	index  map[string]int
	values []string
}

func (r row) get(cols ...string) string {
	for _, c := range cols {
		if i, ok := r.index[c]; ok && i < len(r.values) {
			if v := strings.TrimSpace(r.values[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

// FileRows convierte las filas del archivo según la estructura detectada.
// En exportacion_productos solo cuentan productos y variantes; no hay stock y el valor es el costo.
func FileRows(shape entity.InventoryShape, t Table) []entity.InventoryItem {
	index := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		key := columnKey(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	items := make([]entity.InventoryItem, 0, len(t.Rows))
	for _, values := range t.Rows {
		r := row{index: index, values: values}
		switch shape {
		case entity.ShapeInventoryReport:
			qty := ParseNumber(r.get("cantidad")).IntPart()
			cost := money.Pesos(ParseNumber(r.get("costo promedio", "costo")))
			item := entity.InventoryItem{
				Name:        r.get("item", "nombre"),
				SKU:         r.get("referencia", "codigo"),
				Category:    r.get("categoria"),
				Quantity:    qty,
				MinQuantity: ParseNumber(r.get("cantidad minima")).IntPart(),
				MaxQuantity: ParseNumber(r.get("cantidad maxima")).IntPart(),
				UnitCost:    cost,
				TotalValue:  money.Pesos(ParseNumber(r.get("total"))),
				Status:      fileStatus(r.get("estado")),
				Shape:       shape,
			}
			if r.get("total") == "" {
				item.TotalValue = qty * cost
			}
			items = append(items, item)
		case entity.ShapeProductExport:
			tipo := strings.ToLower(r.get("tipo"))
			if tipo != "producto" && tipo != "variante" {
				continue
			}
			cost := money.Pesos(ParseNumber(r.get("costo inicial", "costo")))
			items = append(items, entity.InventoryItem{
				Name:       r.get("nombre"),
				SKU:        r.get("referencia", "codigo"),
				Type:       tipo,
				Category:   r.get("categoria"),
				UnitCost:   cost,
				TotalValue: cost,
				SalePrice:  money.Pesos(ParseNumber(r.get("precio base", "precio"))),
				Status:     entity.ItemStatusActive,
				Shape:      shape,
			})
		}
	}
	return items
}

func fileStatus(estado string) string {
	if strings.EqualFold(strings.TrimSpace(estado), "activo") {
		return entity.ItemStatusActive
	}
	return entity.ItemStatusInactive
}
