package pricing

import "strings"

// NormalizeMonthly converts an amount expressed in a billing unit to
// its monthly equivalent. Annual units divide by 12, semester units by
// 6 and anything else (including empty or unknown units) is treated as
// already monthly.
func NormalizeMonthly(amount float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "año", "ano", "anual", "year", "yearly", "annual":
		return amount / 12
	case "semestre", "semestral", "semester":
		return amount / 6
	default:
		return amount
	}
}
