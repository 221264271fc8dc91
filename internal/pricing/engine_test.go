package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

func TestTotalGuards(t *testing.T) {
	positions := []domain.Position{
		{NumGuards: 2, NumPuestos: 3},
		{NumGuards: 1, NumPuestos: 0}, // posts floored at 1
		{NumGuards: 4, NumPuestos: 1},
	}
	assert.Equal(t, 11, TotalGuards(positions))
}

func TestComputeCostSummaryEndToEnd(t *testing.T) {
	radio := catalogItem(domain.CatalogTypeRadio, "Radio", "mes", 5000)
	bus := catalogItem(domain.CatalogTypeTransport, "Bus", "mes", 120000)
	uniform := catalogItem(domain.CatalogTypeUniform, "Uniforme completo", "mes", 35000)
	exam := catalogItem(domain.CatalogTypeExam, "Batería de exámenes", "mes", 30000)
	lunch := catalogItem(domain.CatalogTypeMeal, "Almuerzo", "mes", 4000)

	p1 := position(600000, 2)
	p2 := position(300000, 1)

	in := Input{
		Parameters: domain.QuoteParameters{
			MonthlyHoursStandard:     180,
			AvgStayMonths:            12,
			UniformChangesPerYear:    2,
			MonthlyHolidayAdjustment: 50000,
			MarginPct:                10,
		},
		Catalog: []domain.CatalogItem{radio, bus, uniform, exam, lunch},
		CostItems: []domain.QuoteCostItem{
			{CatalogItemID: radio.ID, CalcMode: domain.CalcModePerGuard, Quantity: fptr(1), IsEnabled: true},
			{CatalogItemID: bus.ID, CalcMode: domain.CalcModePerMonth, Quantity: fptr(1), IsEnabled: true},
		},
		Uniforms: []domain.QuoteUniformItem{{CatalogItemID: uniform.ID, Active: true}},
		Exams:    []domain.QuoteExamItem{{CatalogItemID: exam.ID, Active: true}},
		Meals:    []domain.QuoteMeal{{MealType: "almuerzo", MealsPerDay: 1, DaysOfService: 30, IsEnabled: true}},
		Vehicles: []domain.QuoteVehicle{
			{IsEnabled: true, VehiclesCount: 1, RentMonthly: 350000, MaintenanceMonthly: 40000, KmPerDay: 40, DaysPerMonth: 30, KmPerLiter: 12, FuelPrice: 1300},
		},
		Infrastructure: []domain.QuoteInfrastructure{
			{IsEnabled: true, Quantity: 1, RentMonthly: 90000},
		},
		Positions: []domain.Position{p1, p2},
	}

	s := ComputeCostSummary(in)

	assert.Equal(t, 3, s.TotalGuards)
	assert.InDelta(t, 900000, s.MonthlyPositions, 1e-6)
	assert.InDelta(t, 50000, s.MonthlyHolidayAdjustment, 1e-6)
	assert.InDelta(t, 35000*2.0/12*3, s.MonthlyUniforms, 1e-6)
	assert.InDelta(t, 30000*2.0/12*3, s.MonthlyExams, 1e-6) // freq = max(12/12, 2)
	assert.InDelta(t, 4000*30, s.MonthlyMeals, 1e-6)
	assert.InDelta(t, 5000*3, s.MonthlyEquipment, 1e-6)
	assert.InDelta(t, 120000, s.MonthlyTransport, 1e-6)
	assert.InDelta(t, 350000+40000+40*30.0/12*1300, s.MonthlyVehicles, 1e-6)
	assert.InDelta(t, 90000, s.MonthlyInfrastructure, 1e-6)
	assert.InDelta(t, s.MonthlyEquipment+s.MonthlyTransport+s.MonthlySystem, s.MonthlyExtras, 1e-9)

	expectedTotal := s.MonthlyPositions + s.MonthlyHolidayAdjustment + s.MonthlyUniforms +
		s.MonthlyExams + s.MonthlyMeals + s.MonthlyVehicles + s.MonthlyInfrastructure + s.MonthlyExtras
	assert.InDelta(t, expectedTotal, s.MonthlyTotal, 1e-6)
	assert.InDelta(t, s.MonthlyTotal/0.9, s.SalePriceMonthly, 1e-6)

	require.Len(t, s.Allocations, 2)
	var allocated float64
	for _, a := range s.Allocations {
		allocated += a.AllocatedSalePrice
	}
	assert.InDelta(t, s.SalePriceMonthly, allocated, 1e-9)

	// first position carries 2/3 of the weight
	assert.Equal(t, p1.ID, s.Allocations[0].PositionID)
	assert.InDelta(t, s.SalePriceMonthly*2/3, s.Allocations[0].AllocatedSalePrice, 1e-6)
	assert.InDelta(t, s.Allocations[0].AllocatedSalePrice/(2*180), s.Allocations[0].HourlyRate, 1e-9)
}

func TestComputeCostSummaryEmptyInput(t *testing.T) {
	s := ComputeCostSummary(Input{})

	assert.Zero(t, s.TotalGuards)
	assert.Zero(t, s.MonthlyTotal)
	assert.Zero(t, s.SalePriceMonthly)
	assert.Empty(t, s.Allocations)
}

func TestComputeCostSummaryZeroGuardsZeroesPerGuardCategories(t *testing.T) {
	uniform := catalogItem(domain.CatalogTypeUniform, "Uniforme", "mes", 35000)
	exam := catalogItem(domain.CatalogTypeExam, "Examen", "mes", 30000)

	in := Input{
		Parameters: domain.QuoteParameters{AvgStayMonths: 6, UniformChangesPerYear: 3},
		Catalog:    []domain.CatalogItem{uniform, exam},
		Uniforms:   []domain.QuoteUniformItem{{CatalogItemID: uniform.ID, Active: true}},
		Exams:      []domain.QuoteExamItem{{CatalogItemID: exam.ID, Active: true}},
	}

	s := ComputeCostSummary(in)
	assert.Zero(t, s.MonthlyUniforms)
	assert.Zero(t, s.MonthlyExams)
}

func TestComputeCostSummaryFinancialAndPolicyItems(t *testing.T) {
	fin := catalogItem(domain.CatalogTypeFinancial, "Costo financiero fijo", "mes", 25000)
	pol := catalogItem(domain.CatalogTypePolicy, "Póliza adicional", "año", 120000)

	in := Input{
		Parameters: domain.QuoteParameters{
			MarginPct:        0,
			SalePriceBase:    1000000,
			FinancialEnabled: true,
			FinancialRatePct: 2,
		},
		Catalog: []domain.CatalogItem{fin, pol},
		CostItems: []domain.QuoteCostItem{
			{CatalogItemID: fin.ID, CalcMode: domain.CalcModePerMonth, Quantity: fptr(1), IsEnabled: true},
			{CatalogItemID: pol.ID, CalcMode: domain.CalcModePerMonth, Quantity: fptr(1), IsEnabled: true},
		},
		Positions: []domain.Position{position(500000, 1)},
	}

	s := ComputeCostSummary(in)

	// flat financial/policy line items ride on top of the rate-derived surcharges
	assert.InDelta(t, 1000000*0.02+25000, s.MonthlyFinancial, 1e-6)
	assert.InDelta(t, 120000.0/12, s.MonthlyPolicy, 1e-6)
	assert.InDelta(t, s.BaseWithMargin+s.MonthlyFinancial+s.MonthlyPolicy, s.SalePriceMonthly, 1e-9)
}

func TestComputeCostSummaryDisablingItemOnlyAffectsItsCategory(t *testing.T) {
	radio := catalogItem(domain.CatalogTypeRadio, "Radio", "mes", 5000)
	bus := catalogItem(domain.CatalogTypeTransport, "Bus", "mes", 120000)

	base := Input{
		Catalog: []domain.CatalogItem{radio, bus},
		CostItems: []domain.QuoteCostItem{
			{CatalogItemID: radio.ID, CalcMode: domain.CalcModePerMonth, Quantity: fptr(1), IsEnabled: true},
			{CatalogItemID: bus.ID, CalcMode: domain.CalcModePerMonth, Quantity: fptr(1), IsEnabled: true},
		},
		Positions: []domain.Position{position(100000, 1)},
	}
	before := ComputeCostSummary(base)

	base.CostItems[1].IsEnabled = false
	after := ComputeCostSummary(base)

	assert.Equal(t, before.MonthlyEquipment, after.MonthlyEquipment)
	assert.Zero(t, after.MonthlyTransport)
	assert.InDelta(t, before.MonthlyTotal-120000, after.MonthlyTotal, 1e-9)
}

func TestApplyCatalogDefaults(t *testing.T) {
	quoteID := uuid.New()
	radio := catalogItem(domain.CatalogTypeRadio, "Radio", "mes", 5000)
	radio.IsDefault = true
	radio.DefaultVisibility = domain.VisibilityHidden
	bus := catalogItem(domain.CatalogTypeTransport, "Bus", "mes", 120000)
	bus.IsDefault = true
	inactive := catalogItem(domain.CatalogTypeSystem, "Sistema retirado", "mes", 9000)
	inactive.IsDefault = true
	inactive.IsActive = false
	uniform := catalogItem(domain.CatalogTypeUniform, "Uniforme", "mes", 35000)
	uniform.IsDefault = true
	optional := catalogItem(domain.CatalogTypePhone, "Celular", "mes", 15000)

	existing := []domain.QuoteCostItem{
		{QuoteID: quoteID, CatalogItemID: bus.ID, CalcMode: domain.CalcModePerMonth, IsEnabled: false},
	}

	items := ApplyCatalogDefaults(existing, []domain.CatalogItem{radio, bus, inactive, uniform, optional}, quoteID)

	// bus kept as-is (still disabled), radio seeded, inactive/uniform/non-default skipped
	require.Len(t, items, 2)
	assert.Equal(t, bus.ID, items[0].CatalogItemID)
	assert.False(t, items[0].IsEnabled)
	assert.Equal(t, radio.ID, items[1].CatalogItemID)
	assert.True(t, items[1].IsEnabled)
	assert.Equal(t, domain.VisibilityHidden, items[1].Visibility)
	assert.Equal(t, quoteID, items[1].QuoteID)
}
