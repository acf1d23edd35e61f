package inventory

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// Tallas especiales.
const (
	SizeUnique  = "ÚNICA"
	SizeUnknown = "DESCONOCIDA"
)

var (
	alphaSizes = map[string]string{"1": "XS", "2": "S", "3": "M", "4": "L", "5": "XL"}
	kidsSizes  = map[string]string{
		"0204": "2-4", "0406": "4-6", "0608": "6-8", "0810": "8-10", "1012": "10-12", "1214": "12-14",
	}
	// prendas de talla única: vestidos, faldas, blusas y suéteres
	uniqueGarments = map[string]bool{"62": true, "63": true, "64": true, "65": true}

	digitsRe = regexp.MustCompile(`\d+`)
)

// numericSize tallas pares 2..38, con o sin ceros a la izquierda ("010" o "10").
func numericSize(code string) (string, bool) {
	trimmed := strings.TrimLeft(code, "0")
	if trimmed == "" || len(code) > 3 {
		return "", false
	}
	n := 0
	for _, r := range trimmed {
		n = n*10 + int(r-'0')
	}
	if n < 2 || n > 38 || n%2 != 0 {
		return "", false
	}
	return trimmed, true
}

// SizeFromName extrae la talla de un nombre "CAMISETA MUJER 39900 / 1052399004".
// El SKU es 10 + género + prenda + precio + talla; el precio del nombre
// delimita dónde empieza la talla.
func SizeFromName(name string) string {
	parts := strings.Split(name, "/")
	if len(parts) != 2 {
		return SizeUnknown
	}
	sku := strings.TrimSpace(parts[1])
	if len(sku) < 8 || !strings.HasPrefix(sku, "10") || strings.Trim(sku, "0123456789") != "" {
		return SizeUnknown
	}
	rest := sku[4:]
	if uniqueGarments[rest[:2]] {
		return SizeUnique
	}

	if nums := digitsRe.FindAllString(parts[0], -1); len(nums) > 0 {
		price := nums[len(nums)-1]
		if i := strings.LastIndex(rest, price); i >= 0 && i+len(price) < len(rest) {
			if size, ok := sizeCode(rest[i+len(price):]); ok {
				return size
			}
		}
	}

	// sin precio en el nombre: sufijos de 3, 4, 1 y 2 dígitos, en ese orden
	for _, n := range []int{3, 4, 1, 2} {
		if len(rest) <= n {
			continue
		}
		if size, ok := sizeCode(rest[len(rest)-n:]); ok {
			return size
		}
	}
	return SizeUnknown
}

func sizeCode(code string) (string, bool) {
	switch len(code) {
	case 1:
		if s, ok := alphaSizes[code]; ok {
			return s, true
		}
	case 4:
		if s, ok := kidsSizes[code]; ok {
			return s, true
		}
	}
	return numericSize(code)
}

// bySize agrupa unidades y valor por talla, mayor cantidad de unidades primero.
func bySize(items []entity.InventoryItem) []dto.SizeSummaryDTO {
	idx := make(map[string]int)
	out := make([]dto.SizeSummaryDTO, 0)
	for _, it := range items {
		size := SizeFromName(it.Name)
		i, ok := idx[size]
		if !ok {
			i = len(out)
			idx[size] = i
			out = append(out, dto.SizeSummaryDTO{Size: size})
		}
		out[i].ItemCount++
		out[i].Units += it.Quantity
		out[i].Value += it.TotalValue
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].Size < out[j].Size
	})
	return out
}
