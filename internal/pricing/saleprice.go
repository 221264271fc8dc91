package pricing

import "math"

// SalePriceParams carries the margin and surcharge configuration for
// the sale-price derivation.
type SalePriceParams struct {
	MarginPct            float64
	SalePriceBase        float64
	FinancialEnabled     bool
	FinancialRatePct     float64
	PolicyEnabled        bool
	PolicyRatePct        float64
	PolicyContractMonths float64
	PolicyContractPct    float64
}

// SalePriceResult breaks the derived sale price into its components.
type SalePriceResult struct {
	BaseWithMargin   float64
	SalePriceBase    float64
	MonthlyFinancial float64
	MonthlyPolicy    float64
	SalePriceMonthly float64
}

// ComputeSalePrice derives the monthly sale price from the aggregated
// monthly cost. The margin is applied multiplicatively
// (costs / (1 - margin)); at 100% or more the markup is undefined and
// the raw cost is carried through unchanged. The financial and policy
// surcharges are percentages of the sale-price base, which is the
// user-entered value when present and otherwise a round suggestion
// derived from the marked-up cost.
func ComputeSalePrice(costsBase float64, p SalePriceParams) SalePriceResult {
	margin := p.MarginPct / 100
	baseWithMargin := costsBase
	if margin < 1 {
		baseWithMargin = costsBase / (1 - margin)
	}

	salePriceBase := p.SalePriceBase
	if salePriceBase <= 0 {
		salePriceBase = RoundUpToNice(baseWithMargin)
	}

	financial := 0.0
	if p.FinancialEnabled {
		financial = salePriceBase * p.FinancialRatePct / 100
	}

	policy := 0.0
	if p.PolicyEnabled {
		policy = salePriceBase * p.PolicyContractMonths * (p.PolicyContractPct / 100) * (p.PolicyRatePct / 100) / 12
	}

	return SalePriceResult{
		BaseWithMargin:   baseWithMargin,
		SalePriceBase:    salePriceBase,
		MonthlyFinancial: financial,
		MonthlyPolicy:    policy,
		SalePriceMonthly: baseWithMargin + financial + policy,
	}
}

// RoundUpToNice rounds a value up to the next 100,000 boundary. Used
// only for the default sale-price-base suggestion, never for the
// authoritative total.
func RoundUpToNice(value float64) float64 {
	if value <= 0 {
		return 0
	}
	return math.Ceil(value/100000) * 100000
}
