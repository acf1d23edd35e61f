package inventory

import (
	"sort"
	"strings"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

const topCategoriesLimit = 20

// topCategories categorías con más ítems; las vacías no cuentan.
func topCategories(items []entity.InventoryItem) []dto.CategoryCountDTO {
	counts := make(map[string]int)
	for _, it := range items {
		if c := strings.TrimSpace(it.Category); c != "" {
			counts[c]++
		}
	}
	out := make([]dto.CategoryCountDTO, 0, len(counts))
	for c, n := range counts {
		out = append(out, dto.CategoryCountDTO{Category: c, ItemCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemCount != out[j].ItemCount {
			return out[i].ItemCount > out[j].ItemCount
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > topCategoriesLimit {
		out = out[:topCategoriesLimit]
	}
	return out
}
