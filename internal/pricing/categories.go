package pricing

import "github.com/centinela-seguridad/cpq-api/internal/domain"

// SumUniforms computes the monthly uniform cost. Each active selection
// contributes its monthlized unit price (override over catalog base),
// the set total is incurred changesPerYear times per guard per year.
func SumUniforms(items []domain.QuoteUniformItem, idx CatalogIndex, changesPerYear float64, totalGuards int) float64 {
	if totalGuards <= 0 {
		return 0
	}
	var perItemTotal float64
	for _, item := range items {
		if !item.Active {
			continue
		}
		cat, ok := idx[item.CatalogItemID]
		if !ok {
			continue
		}
		price := cat.BasePrice
		if item.UnitPriceOverride != nil {
			price = *item.UnitPriceOverride
		}
		perItemTotal += NormalizeMonthly(price, cat.Unit)
	}
	return perItemTotal * changesPerYear / 12 * float64(totalGuards)
}

// ExamFrequencyPerYear is how many times per year each guard incurs
// the exam battery: the guard turnover frequency (12 over the average
// stay in months) or the uniform replacement frequency, whichever is
// more frequent.
func ExamFrequencyPerYear(avgStayMonths, uniformChangesPerYear float64) float64 {
	entriesPerYear := 0.0
	if avgStayMonths > 0 {
		entriesPerYear = 12 / avgStayMonths
	}
	if uniformChangesPerYear > entriesPerYear {
		return uniformChangesPerYear
	}
	return entriesPerYear
}

// SumExams computes the monthly exam cost from the active exam
// selections, spread by the turnover-driven frequency and scaled by
// the guard headcount.
func SumExams(items []domain.QuoteExamItem, idx CatalogIndex, avgStayMonths, uniformChangesPerYear float64, totalGuards int) float64 {
	if totalGuards <= 0 {
		return 0
	}
	var perItemTotal float64
	for _, item := range items {
		if !item.Active {
			continue
		}
		cat, ok := idx[item.CatalogItemID]
		if !ok {
			continue
		}
		price := cat.BasePrice
		if item.UnitPriceOverride != nil {
			price = *item.UnitPriceOverride
		}
		perItemTotal += NormalizeMonthly(price, cat.Unit)
	}
	freq := ExamFrequencyPerYear(avgStayMonths, uniformChangesPerYear)
	return perItemTotal * freq / 12 * float64(totalGuards)
}

// SumMeals computes the monthly meal cost. Each enabled entry is
// matched case-insensitively against catalog meal items by name;
// entries without a match are skipped. Meal counts are absolute daily
// counts, so there is no guard multiplier.
func SumMeals(meals []domain.QuoteMeal, idx CatalogIndex) float64 {
	var total float64
	for _, m := range meals {
		if !m.IsEnabled {
			continue
		}
		cat, ok := idx.FindMealByName(m.MealType)
		if !ok {
			continue
		}
		price := cat.BasePrice
		if m.PriceOverride != nil {
			price = *m.PriceOverride
		}
		total += NormalizeMonthly(price, cat.Unit) * m.MealsPerDay * m.DaysOfService
	}
	return total
}

// SumVehicles computes the monthly cost of the dedicated vehicle
// entries: rent plus maintenance plus a km-based fuel estimate, per
// vehicle. Fuel is zero when the consumption ratio is not usable.
// Additive with the catalog-driven vehicle cost-item types.
func SumVehicles(vehicles []domain.QuoteVehicle) float64 {
	var total float64
	for _, v := range vehicles {
		if !v.IsEnabled {
			continue
		}
		liters := 0.0
		if v.KmPerLiter > 0 {
			liters = v.KmPerDay * v.DaysPerMonth / v.KmPerLiter
		}
		perVehicle := v.RentMonthly + v.MaintenanceMonthly + liters*v.FuelPrice
		total += perVehicle * v.VehiclesCount
	}
	return total
}

// SumInfrastructure computes the monthly cost of the dedicated
// infrastructure entries: rent plus an hours-based fuel estimate when
// the unit burns fuel, per installed unit. Additive with the
// catalog-driven infrastructure/fuel cost-item types.
func SumInfrastructure(entries []domain.QuoteInfrastructure) float64 {
	var total float64
	for _, e := range entries {
		if !e.IsEnabled {
			continue
		}
		fuel := 0.0
		if e.HasFuel {
			fuel = e.FuelLitersPerHour * e.FuelHoursPerDay * e.FuelDaysPerMonth * e.FuelPrice
		}
		total += (e.RentMonthly + fuel) * e.Quantity
	}
	return total
}
