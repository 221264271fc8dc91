package pricing

import (
	"github.com/google/uuid"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

// Input is the full in-memory snapshot of a quote the engine computes
// over. The engine never mutates it.
type Input struct {
	Parameters     domain.QuoteParameters
	Catalog        []domain.CatalogItem
	CostItems      []domain.QuoteCostItem
	Uniforms       []domain.QuoteUniformItem
	Exams          []domain.QuoteExamItem
	Meals          []domain.QuoteMeal
	Vehicles       []domain.QuoteVehicle
	Infrastructure []domain.QuoteInfrastructure
	Positions      []domain.Position
}

// PositionAllocation is the per-position share of the sale price.
type PositionAllocation struct {
	PositionID         uuid.UUID
	AllocatedSalePrice float64
	HourlyRate         float64
}

// Summary is the computed monthly cost breakdown of a quote. It is
// recomputed from the persisted inputs on every change and is never
// itself the source of truth.
type Summary struct {
	TotalGuards              int
	MonthlyPositions         float64
	MonthlyHolidayAdjustment float64
	MonthlyUniforms          float64
	MonthlyExams             float64
	MonthlyMeals             float64
	MonthlyVehicles          float64
	MonthlyInfrastructure    float64
	MonthlyEquipment         float64
	MonthlyTransport         float64
	MonthlySystem            float64
	MonthlyExtras            float64
	MonthlyTotal             float64
	MonthlyFinancial         float64
	MonthlyPolicy            float64
	BaseWithMargin           float64
	SalePriceBase            float64
	SalePriceMonthly         float64
	Allocations              []PositionAllocation
}

// TotalGuards is the quote-wide guard headcount: each position staffs
// NumGuards guards per post, across at least one post.
func TotalGuards(positions []domain.Position) int {
	total := 0
	for _, p := range positions {
		posts := p.NumPuestos
		if posts < 1 {
			posts = 1
		}
		total += p.NumGuards * posts
	}
	return total
}

// ComputeCostSummary runs the whole pricing pipeline over one input
// snapshot: monthlize and aggregate the catalog-driven cost items per
// category, add the dedicated category calculators, derive the sale
// price from the margin and surcharges, and allocate it across the
// positions. Pure and stateless; safe to rerun on every input change.
func ComputeCostSummary(in Input) Summary {
	idx := NewCatalogIndex(in.Catalog)
	guards := TotalGuards(in.Positions)
	params := in.Parameters

	var monthlyPositions float64
	for _, p := range in.Positions {
		if p.MonthlyPositionCost > 0 {
			monthlyPositions += p.MonthlyPositionCost
		}
	}

	s := Summary{
		TotalGuards:              guards,
		MonthlyPositions:         monthlyPositions,
		MonthlyHolidayAdjustment: params.MonthlyHolidayAdjustment,
		MonthlyUniforms:          SumUniforms(in.Uniforms, idx, params.UniformChangesPerYear, guards),
		MonthlyExams:             SumExams(in.Exams, idx, params.AvgStayMonths, params.UniformChangesPerYear, guards),
		MonthlyMeals:             SumMeals(in.Meals, idx),
		MonthlyEquipment: SumByTypes(in.CostItems, idx, []domain.CatalogItemType{
			domain.CatalogTypePhone, domain.CatalogTypeRadio, domain.CatalogTypeFlashlight,
		}, guards),
		MonthlyTransport: SumByTypes(in.CostItems, idx, []domain.CatalogItemType{
			domain.CatalogTypeTransport,
		}, guards),
		MonthlySystem: SumByTypes(in.CostItems, idx, []domain.CatalogItemType{
			domain.CatalogTypeSystem,
		}, guards),
	}

	s.MonthlyVehicles = SumVehicles(in.Vehicles) + SumByTypes(in.CostItems, idx, []domain.CatalogItemType{
		domain.CatalogTypeVehicleRent, domain.CatalogTypeVehicleFuel, domain.CatalogTypeVehicleTag,
	}, guards)
	s.MonthlyInfrastructure = SumInfrastructure(in.Infrastructure) + SumByTypes(in.CostItems, idx, []domain.CatalogItemType{
		domain.CatalogTypeInfrastructure, domain.CatalogTypeFuel,
	}, guards)

	s.MonthlyExtras = s.MonthlyEquipment + s.MonthlyTransport + s.MonthlySystem
	s.MonthlyTotal = s.MonthlyPositions + s.MonthlyHolidayAdjustment +
		s.MonthlyUniforms + s.MonthlyExams + s.MonthlyMeals +
		s.MonthlyVehicles + s.MonthlyInfrastructure + s.MonthlyExtras

	sale := ComputeSalePrice(s.MonthlyTotal, SalePriceParams{
		MarginPct:            params.MarginPct,
		SalePriceBase:        params.SalePriceBase,
		FinancialEnabled:     params.FinancialEnabled,
		FinancialRatePct:     params.FinancialRatePct,
		PolicyEnabled:        params.PolicyEnabled,
		PolicyRatePct:        params.PolicyRatePct,
		PolicyContractMonths: params.PolicyContractMonths,
		PolicyContractPct:    params.PolicyContractPct,
	})

	financialItems := SumByTypes(in.CostItems, idx, []domain.CatalogItemType{domain.CatalogTypeFinancial}, guards)
	policyItems := SumByTypes(in.CostItems, idx, []domain.CatalogItemType{domain.CatalogTypePolicy}, guards)

	s.BaseWithMargin = sale.BaseWithMargin
	s.SalePriceBase = sale.SalePriceBase
	s.MonthlyFinancial = sale.MonthlyFinancial + financialItems
	s.MonthlyPolicy = sale.MonthlyPolicy + policyItems
	s.SalePriceMonthly = sale.BaseWithMargin + s.MonthlyFinancial + s.MonthlyPolicy

	if len(in.Positions) > 0 {
		allocated := Allocate(in.Positions, s.SalePriceMonthly)
		s.Allocations = make([]PositionAllocation, 0, len(in.Positions))
		for _, p := range in.Positions {
			amount := allocated[p.ID]
			s.Allocations = append(s.Allocations, PositionAllocation{
				PositionID:         p.ID,
				AllocatedSalePrice: amount,
				HourlyRate:         HourlyRate(amount, p.NumGuards, params.MonthlyHoursStandard),
			})
		}
	}
	return s
}
