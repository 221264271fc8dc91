package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/service"
)

func TestQuoteCostService_UpsertCostItem(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias bodega")
	env.addPosition(t, quote.ID, "Portería", 2, 1, 1000000)
	radio := env.createCatalogItem(t, domain.CatalogTypeRadio, "Radio portátil", "mes", 15000)

	created, err := env.costs.UpsertCostItem(context.Background(), quote.ID, &domain.UpsertQuoteCostItemRequest{
		CatalogItemID: radio.ID,
		CalcMode:      domain.CalcModePerGuard,
	})
	require.NoError(t, err)
	assert.True(t, created.IsEnabled)
	assert.Equal(t, domain.CalcModePerGuard, created.CalcMode)

	// 15,000 per guard, 2 guards
	summary, err := env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, summary.MonthlyExtras)

	// second upsert adjusts the same row instead of duplicating it
	updated, err := env.costs.UpsertCostItem(context.Background(), quote.ID, &domain.UpsertQuoteCostItemRequest{
		CatalogItemID:     radio.ID,
		CalcMode:          domain.CalcModePerGuard,
		UnitPriceOverride: fptr(12000),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	items, err := env.costs.ListCostItems(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	summary, err = env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 24000.0, summary.MonthlyExtras)
}

func TestQuoteCostService_ToggleCostItem(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias bodega")
	env.addPosition(t, quote.ID, "Portería", 1, 1, 1000000)
	phone := env.createCatalogItem(t, domain.CatalogTypePhone, "Celular", "mes", 12000)

	item, err := env.costs.UpsertCostItem(context.Background(), quote.ID, &domain.UpsertQuoteCostItemRequest{
		CatalogItemID: phone.ID,
		CalcMode:      domain.CalcModePerMonth,
	})
	require.NoError(t, err)

	toggled, err := env.costs.ToggleCostItem(context.Background(), quote.ID, item.ID, false)
	require.NoError(t, err)
	assert.False(t, toggled.IsEnabled)

	// the row survives the toggle, only the contribution drops
	items, err := env.costs.ListCostItems(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	summary, err := env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.MonthlyExtras)
}

func TestQuoteCostService_ClosedQuoteRejectsMutations(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias bodega")
	phone := env.createCatalogItem(t, domain.CatalogTypePhone, "Celular", "mes", 12000)

	_, err := env.quotes.Send(context.Background(), quote.ID)
	require.NoError(t, err)
	_, err = env.quotes.Win(context.Background(), quote.ID)
	require.NoError(t, err)

	_, err = env.costs.UpsertCostItem(context.Background(), quote.ID, &domain.UpsertQuoteCostItemRequest{
		CatalogItemID: phone.ID,
		CalcMode:      domain.CalcModePerMonth,
	})
	assert.ErrorIs(t, err, service.ErrQuoteNotEditable)

	_, err = env.costs.AddMeal(context.Background(), quote.ID, &domain.UpsertQuoteMealRequest{
		MealType:      "Almuerzo",
		MealsPerDay:   1,
		DaysOfService: 30,
	})
	assert.ErrorIs(t, err, service.ErrQuoteNotEditable)
}

func TestQuoteCostService_Uniforms(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias bodega")
	env.addPosition(t, quote.ID, "Portería", 10, 1, 0)
	parka := env.createCatalogItem(t, domain.CatalogTypeUniform, "Parka", "año", 240000)

	sel, err := env.costs.AddUniform(context.Background(), quote.ID, &domain.UpsertQuoteSelectionItemRequest{
		CatalogItemID: parka.ID,
	})
	require.NoError(t, err)
	assert.True(t, sel.Active)

	// default 2 changes/year over an annual price of 240,000:
	// 20,000 monthly x 2/12 x 10 guards
	summary, err := env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.InDelta(t, 33333.33, summary.MonthlyUniforms, 0.01)

	// a non-uniform catalog item is rejected
	radio := env.createCatalogItem(t, domain.CatalogTypeRadio, "Radio", "mes", 15000)
	_, err = env.costs.AddUniform(context.Background(), quote.ID, &domain.UpsertQuoteSelectionItemRequest{
		CatalogItemID: radio.ID,
	})
	assert.ErrorIs(t, err, service.ErrInvalidCatalogType)

	// deactivating removes the contribution
	_, err = env.costs.UpdateUniform(context.Background(), quote.ID, sel.ID, &domain.UpsertQuoteSelectionItemRequest{
		CatalogItemID: parka.ID,
		Active:        bptr(false),
	})
	require.NoError(t, err)

	summary, err = env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.MonthlyUniforms)
}

func TestQuoteCostService_Exams(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias bodega")
	env.addPosition(t, quote.ID, "Portería", 5, 1, 0)
	exam := env.createCatalogItem(t, domain.CatalogTypeExam, "Examen preocupacional", "mes", 24000)

	_, err := env.costs.AddExam(context.Background(), quote.ID, &domain.UpsertQuoteSelectionItemRequest{
		CatalogItemID: exam.ID,
	})
	require.NoError(t, err)

	// avg stay 12 months, 2 uniform changes/year: frequency max(1, 2) = 2
	// 24,000 x 2/12 x 5 guards
	summary, err := env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.InDelta(t, 20000.0, summary.MonthlyExams, 0.01)
}

func TestQuoteCostService_Meals(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias bodega")
	env.createCatalogItem(t, domain.CatalogTypeMeal, "Almuerzo", "mes", 4500)

	meal, err := env.costs.AddMeal(context.Background(), quote.ID, &domain.UpsertQuoteMealRequest{
		MealType:      "almuerzo",
		MealsPerDay:   1,
		DaysOfService: 30,
	})
	require.NoError(t, err)

	// meal type matches the catalog entry case-insensitively
	summary, err := env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 135000.0, summary.MonthlyMeals)

	// an unmatched meal type contributes nothing
	_, err = env.costs.UpdateMeal(context.Background(), quote.ID, meal.ID, &domain.UpsertQuoteMealRequest{
		MealType:      "cena",
		MealsPerDay:   1,
		DaysOfService: 30,
	})
	require.NoError(t, err)

	summary, err = env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.MonthlyMeals)
}

func TestQuoteCostService_Vehicles(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias bodega")

	vehicle, err := env.costs.AddVehicle(context.Background(), quote.ID, &domain.UpsertQuoteVehicleRequest{
		Description:   "Camioneta ronda",
		VehiclesCount: 2,
		RentMonthly:   400000,
		KmPerDay:      50,
		DaysPerMonth:  30,
		KmPerLiter:    10,
		FuelPrice:     1300,
	})
	require.NoError(t, err)

	// per vehicle: 400,000 rent + (50*30/10)*1,300 fuel = 595,000
	assert.Equal(t, 1190000.0, vehicle.MonthlyCost)

	summary, err := env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 1190000.0, summary.MonthlyVehicles)

	require.NoError(t, env.costs.DeleteVehicle(context.Background(), quote.ID, vehicle.ID))

	summary, err = env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.MonthlyVehicles)
}

func TestQuoteCostService_Infrastructure(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias bodega")

	entry, err := env.costs.AddInfrastructure(context.Background(), quote.ID, &domain.UpsertQuoteInfrastructureRequest{
		Description:       "Torre de iluminación",
		Quantity:          2,
		RentMonthly:       300000,
		HasFuel:           true,
		FuelLitersPerHour: 2,
		FuelHoursPerDay:   12,
		FuelDaysPerMonth:  30,
		FuelPrice:         1000,
	})
	require.NoError(t, err)

	// per unit: 300,000 rent + 2*12*30*1,000 fuel = 1,020,000
	assert.Equal(t, 2040000.0, entry.MonthlyCost)

	summary, err := env.quotes.GetSummary(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 2040000.0, summary.MonthlyInfrastructure)
}

func TestQuoteCostService_UpdateParameters(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias bodega")
	env.addPosition(t, quote.ID, "Portería", 2, 1, 1000000)

	params, err := env.costs.UpdateParameters(context.Background(), quote.ID, &domain.UpdateQuoteParametersRequest{
		MonthlyHoursStandard:  168,
		AvgStayMonths:         6,
		UniformChangesPerYear: 3,
		MarginPct:             20,
		FinancialEnabled:      true,
		FinancialRatePct:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, 168.0, params.MonthlyHoursStandard)
	assert.Equal(t, 20.0, params.MarginPct)

	// engine wrote the recomputed sale price back onto the row:
	// base 1,000,000 / 0.8 = 1,250,000, suggested sale-price base
	// rounds up to 1,300,000 and the 2% surcharge applies to it
	assert.InDelta(t, 1276000.0, params.SalePriceMonthly, 0.01)
}
