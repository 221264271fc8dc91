package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

func TestSumUniformsScenario(t *testing.T) {
	// two active uniform items at 20,000 and 15,000 per month, three
	// changes per year, ten guards
	pants := catalogItem(domain.CatalogTypeUniform, "Pantalón táctico", "mes", 20000)
	shirt := catalogItem(domain.CatalogTypeUniform, "Camisa institucional", "mes", 15000)
	idx := NewCatalogIndex([]domain.CatalogItem{pants, shirt})

	items := []domain.QuoteUniformItem{
		{CatalogItemID: pants.ID, Active: true},
		{CatalogItemID: shirt.ID, Active: true},
	}

	total := SumUniforms(items, idx, 3, 10)
	assert.InDelta(t, 87500, total, 1e-9)
}

func TestSumUniformsZeroGuards(t *testing.T) {
	pants := catalogItem(domain.CatalogTypeUniform, "Pantalón", "mes", 20000)
	idx := NewCatalogIndex([]domain.CatalogItem{pants})
	items := []domain.QuoteUniformItem{{CatalogItemID: pants.ID, Active: true}}

	assert.Zero(t, SumUniforms(items, idx, 3, 0))
}

func TestSumUniformsInactiveExcluded(t *testing.T) {
	pants := catalogItem(domain.CatalogTypeUniform, "Pantalón", "mes", 20000)
	shirt := catalogItem(domain.CatalogTypeUniform, "Camisa", "mes", 15000)
	idx := NewCatalogIndex([]domain.CatalogItem{pants, shirt})

	items := []domain.QuoteUniformItem{
		{CatalogItemID: pants.ID, Active: true},
		{CatalogItemID: shirt.ID, Active: false},
	}

	total := SumUniforms(items, idx, 3, 10)
	assert.InDelta(t, 50000, total, 1e-9)
}

func TestSumUniformsOverride(t *testing.T) {
	pants := catalogItem(domain.CatalogTypeUniform, "Pantalón", "mes", 20000)
	idx := NewCatalogIndex([]domain.CatalogItem{pants})

	items := []domain.QuoteUniformItem{
		{CatalogItemID: pants.ID, UnitPriceOverride: fptr(24000), Active: true},
	}

	total := SumUniforms(items, idx, 2, 5)
	assert.InDelta(t, 24000*2.0/12*5, total, 1e-9)
}

func TestExamFrequencyPerYear(t *testing.T) {
	tests := []struct {
		name           string
		avgStay        float64
		uniformChanges float64
		expected       float64
	}{
		{"turnover dominates", 6, 1, 2},
		{"uniform changes dominate", 12, 3, 3},
		{"zero stay falls back to uniform changes", 0, 2, 2},
		{"both zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ExamFrequencyPerYear(tt.avgStay, tt.uniformChanges), 1e-9)
		})
	}
}

func TestSumExams(t *testing.T) {
	psico := catalogItem(domain.CatalogTypeExam, "Examen psicológico", "mes", 30000)
	idx := NewCatalogIndex([]domain.CatalogItem{psico})
	items := []domain.QuoteExamItem{{CatalogItemID: psico.ID, Active: true}}

	// avg stay 6 months: staff rotates twice a year
	total := SumExams(items, idx, 6, 1, 4)
	assert.InDelta(t, 30000*2.0/12*4, total, 1e-9)
}

func TestSumExamsZeroGuards(t *testing.T) {
	psico := catalogItem(domain.CatalogTypeExam, "Examen", "mes", 30000)
	idx := NewCatalogIndex([]domain.CatalogItem{psico})
	items := []domain.QuoteExamItem{{CatalogItemID: psico.ID, Active: true}}

	assert.Zero(t, SumExams(items, idx, 6, 3, 0))
}

func TestSumMeals(t *testing.T) {
	lunch := catalogItem(domain.CatalogTypeMeal, "Almuerzo", "mes", 4500)
	idx := NewCatalogIndex([]domain.CatalogItem{lunch})

	meals := []domain.QuoteMeal{
		{MealType: "almuerzo", MealsPerDay: 2, DaysOfService: 30, IsEnabled: true},
	}

	total := SumMeals(meals, idx)
	assert.InDelta(t, 4500*2*30, total, 1e-9)
}

func TestSumMealsOverrideAndUnmatched(t *testing.T) {
	lunch := catalogItem(domain.CatalogTypeMeal, "Almuerzo", "mes", 4500)
	idx := NewCatalogIndex([]domain.CatalogItem{lunch})

	meals := []domain.QuoteMeal{
		{MealType: "Almuerzo", MealsPerDay: 1, DaysOfService: 20, PriceOverride: fptr(5000), IsEnabled: true},
		{MealType: "cena", MealsPerDay: 1, DaysOfService: 20, IsEnabled: true},
		{MealType: "Almuerzo", MealsPerDay: 1, DaysOfService: 20, IsEnabled: false},
	}

	total := SumMeals(meals, idx)
	assert.InDelta(t, 5000*1*20, total, 1e-9)
}

func TestSumVehicles(t *testing.T) {
	vehicles := []domain.QuoteVehicle{
		{
			IsEnabled:          true,
			VehiclesCount:      2,
			RentMonthly:        400000,
			MaintenanceMonthly: 50000,
			KmPerDay:           60,
			DaysPerMonth:       30,
			KmPerLiter:         10,
			FuelPrice:          1300,
		},
	}

	// fuel per vehicle: 60*30/10 = 180 liters at 1,300
	total := SumVehicles(vehicles)
	assert.InDelta(t, (400000+50000+180*1300)*2, total, 1e-9)
}

func TestSumVehiclesZeroKmPerLiter(t *testing.T) {
	vehicles := []domain.QuoteVehicle{
		{IsEnabled: true, VehiclesCount: 1, RentMonthly: 300000, KmPerDay: 50, DaysPerMonth: 30, KmPerLiter: 0, FuelPrice: 1300},
	}
	assert.InDelta(t, 300000, SumVehicles(vehicles), 1e-9)
}

func TestSumVehiclesDisabled(t *testing.T) {
	vehicles := []domain.QuoteVehicle{
		{IsEnabled: false, VehiclesCount: 1, RentMonthly: 300000},
	}
	assert.Zero(t, SumVehicles(vehicles))
}

func TestSumInfrastructure(t *testing.T) {
	entries := []domain.QuoteInfrastructure{
		{
			IsEnabled:         true,
			Quantity:          2,
			RentMonthly:       150000,
			HasFuel:           true,
			FuelLitersPerHour: 1.5,
			FuelHoursPerDay:   12,
			FuelDaysPerMonth:  30,
			FuelPrice:         1000,
		},
		{IsEnabled: true, Quantity: 1, RentMonthly: 80000, HasFuel: false, FuelLitersPerHour: 5, FuelPrice: 1000},
	}

	total := SumInfrastructure(entries)
	assert.InDelta(t, (150000+1.5*12*30*1000)*2+80000, total, 1e-9)
}
