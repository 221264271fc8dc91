package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

func fptr(v float64) *float64 {
	return &v
}

func catalogItem(t domain.CatalogItemType, name, unit string, price float64) domain.CatalogItem {
	return domain.CatalogItem{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Type:      t,
		Name:      name,
		Unit:      unit,
		BasePrice: price,
		IsActive:  true,
	}
}

func TestSumByTypesPerGuard(t *testing.T) {
	radio := catalogItem(domain.CatalogTypeRadio, "Radio portátil", "mes", 5000)
	idx := NewCatalogIndex([]domain.CatalogItem{radio})

	items := []domain.QuoteCostItem{
		{CatalogItemID: radio.ID, CalcMode: domain.CalcModePerGuard, Quantity: fptr(1), IsEnabled: true},
	}

	total := SumByTypes(items, idx, []domain.CatalogItemType{domain.CatalogTypeRadio}, 8)
	assert.InDelta(t, 40000, total, 1e-9)
}

func TestSumByTypesPerMonthIgnoresGuards(t *testing.T) {
	sys := catalogItem(domain.CatalogTypeSystem, "Central de monitoreo", "mes", 120000)
	idx := NewCatalogIndex([]domain.CatalogItem{sys})

	items := []domain.QuoteCostItem{
		{CatalogItemID: sys.ID, CalcMode: domain.CalcModePerMonth, Quantity: fptr(2), IsEnabled: true},
	}

	total := SumByTypes(items, idx, []domain.CatalogItemType{domain.CatalogTypeSystem}, 50)
	assert.InDelta(t, 240000, total, 1e-9)
}

func TestSumByTypesQuantityDefaultsToOne(t *testing.T) {
	phone := catalogItem(domain.CatalogTypePhone, "Celular", "mes", 15000)
	idx := NewCatalogIndex([]domain.CatalogItem{phone})

	items := []domain.QuoteCostItem{
		{CatalogItemID: phone.ID, CalcMode: domain.CalcModePerMonth, IsEnabled: true},
	}

	total := SumByTypes(items, idx, []domain.CatalogItemType{domain.CatalogTypePhone}, 0)
	assert.InDelta(t, 15000, total, 1e-9)
}

func TestSumByTypesOverrideWinsAndIsNormalized(t *testing.T) {
	gps := catalogItem(domain.CatalogTypeSystem, "GPS anual", "año", 240000)
	idx := NewCatalogIndex([]domain.CatalogItem{gps})

	items := []domain.QuoteCostItem{
		{CatalogItemID: gps.ID, CalcMode: domain.CalcModePerMonth, Quantity: fptr(1), UnitPriceOverride: fptr(120000), IsEnabled: true},
	}

	// override replaces the annual base price and is still divided by 12
	total := SumByTypes(items, idx, []domain.CatalogItemType{domain.CatalogTypeSystem}, 0)
	assert.InDelta(t, 10000, total, 1e-9)
}

func TestSumByTypesSkipsDisabledAndUnresolvable(t *testing.T) {
	radio := catalogItem(domain.CatalogTypeRadio, "Radio", "mes", 5000)
	idx := NewCatalogIndex([]domain.CatalogItem{radio})

	items := []domain.QuoteCostItem{
		{CatalogItemID: radio.ID, CalcMode: domain.CalcModePerMonth, Quantity: fptr(1), IsEnabled: false},
		{CatalogItemID: uuid.New(), CalcMode: domain.CalcModePerMonth, Quantity: fptr(1), IsEnabled: true},
	}

	total := SumByTypes(items, idx, []domain.CatalogItemType{domain.CatalogTypeRadio}, 4)
	assert.Zero(t, total)
}

func TestSumByTypesFiltersByType(t *testing.T) {
	radio := catalogItem(domain.CatalogTypeRadio, "Radio", "mes", 5000)
	bus := catalogItem(domain.CatalogTypeTransport, "Bus de acercamiento", "mes", 80000)
	idx := NewCatalogIndex([]domain.CatalogItem{radio, bus})

	items := []domain.QuoteCostItem{
		{CatalogItemID: radio.ID, CalcMode: domain.CalcModePerMonth, Quantity: fptr(1), IsEnabled: true},
		{CatalogItemID: bus.ID, CalcMode: domain.CalcModePerMonth, Quantity: fptr(1), IsEnabled: true},
	}

	assert.InDelta(t, 80000, SumByTypes(items, idx, []domain.CatalogItemType{domain.CatalogTypeTransport}, 0), 1e-9)
	assert.InDelta(t, 5000, SumByTypes(items, idx, []domain.CatalogItemType{domain.CatalogTypeRadio}, 0), 1e-9)
}
