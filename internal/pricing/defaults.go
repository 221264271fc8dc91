package pricing

import (
	"github.com/google/uuid"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

// ApplyCatalogDefaults returns the cost items that should be seeded
// for a quote so every active default catalog entry is represented.
// Existing selections are left untouched; only missing defaults are
// appended. The caller invokes this once at quote creation. Uniform,
// exam and meal catalog types have their own selection tables and are
// not seeded here.
func ApplyCatalogDefaults(existing []domain.QuoteCostItem, catalog []domain.CatalogItem, quoteID uuid.UUID) []domain.QuoteCostItem {
	present := make(map[uuid.UUID]bool, len(existing))
	for _, item := range existing {
		present[item.CatalogItemID] = true
	}

	items := make([]domain.QuoteCostItem, 0, len(existing))
	items = append(items, existing...)
	for _, cat := range catalog {
		if !cat.IsDefault || !cat.IsActive || present[cat.ID] {
			continue
		}
		switch cat.Type {
		case domain.CatalogTypeUniform, domain.CatalogTypeExam, domain.CatalogTypeMeal:
			continue
		}
		visibility := cat.DefaultVisibility
		if visibility == "" {
			visibility = domain.VisibilityVisible
		}
		items = append(items, domain.QuoteCostItem{
			QuoteID:       quoteID,
			CatalogItemID: cat.ID,
			CalcMode:      domain.CalcModePerMonth,
			IsEnabled:     true,
			Visibility:    visibility,
		})
	}
	return items
}
