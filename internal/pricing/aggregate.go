package pricing

import (
	"strings"

	"github.com/google/uuid"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// CatalogIndex resolves catalog item ids to their definitions for a
// single engine run.
type CatalogIndex map[uuid.UUID]domain.CatalogItem

// NewCatalogIndex builds an index over the given catalog items.
func NewCatalogIndex(items []domain.CatalogItem) CatalogIndex {
	idx := make(CatalogIndex, len(items))
	for _, it := range items {
		idx[it.ID] = it
	}
	return idx
}

// FindMealByName resolves a meal catalog item by case-insensitive name
// match. Returns false when no meal item with that name exists.
func (idx CatalogIndex) FindMealByName(name string) (domain.CatalogItem, bool) {
	for _, it := range idx {
		if it.Type == domain.CatalogTypeMeal && equalFold(it.Name, name) {
			return it, true
		}
	}
	return domain.CatalogItem{}, false
}

// SumByTypes aggregates the monthly cost of the enabled quote cost
// items whose catalog entry matches one of the given types. Items
// pointing at ids missing from the index contribute nothing. The unit
// price is the item override when set, otherwise the catalog base
// price, monthlized by the catalog unit. Quantity defaults to 1, and
// per-guard items scale with the total guard headcount.
func SumByTypes(items []domain.QuoteCostItem, idx CatalogIndex, types []domain.CatalogItemType, totalGuards int) float64 {
	wanted := make(map[domain.CatalogItemType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	var total float64
	for _, item := range items {
		if !item.IsEnabled {
			continue
		}
		cat, ok := idx[item.CatalogItemID]
		if !ok || !wanted[cat.Type] {
			continue
		}

		price := cat.BasePrice
		if item.UnitPriceOverride != nil {
			price = *item.UnitPriceOverride
		}
		monthly := NormalizeMonthly(price, cat.Unit)

		qty := 1.0
		if item.Quantity != nil {
			qty = *item.Quantity
		}

		line := monthly * qty
		if item.CalcMode == domain.CalcModePerGuard {
			line *= float64(totalGuards)
		}
		total += line
	}
	return total
}
