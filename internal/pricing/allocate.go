package pricing

import (
	"github.com/google/uuid"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

// Allocate distributes a total sale price across positions
// proportionally to each position's monthly cost, clamped at zero.
// Positions are processed in input order and the last one absorbs the
// floating-point remainder so the allocation always sums exactly to
// the total. Empty input or a non-positive total yields an empty map.
func Allocate(positions []domain.Position, totalSalePrice float64) map[uuid.UUID]float64 {
	result := make(map[uuid.UUID]float64)
	if len(positions) == 0 || totalSalePrice <= 0 {
		return result
	}

	weights := make([]float64, len(positions))
	var weightsTotal float64
	for i, p := range positions {
		w := p.MonthlyPositionCost
		if w < 0 {
			w = 0
		}
		weights[i] = w
		weightsTotal += w
	}
	fallback := 1 / float64(len(positions))

	remaining := totalSalePrice
	for i, p := range positions {
		if i == len(positions)-1 {
			if remaining < 0 {
				remaining = 0
			}
			result[p.ID] = remaining
			break
		}
		proportion := fallback
		if weightsTotal > 0 {
			proportion = weights[i] / weightsTotal
		}
		allocated := totalSalePrice * proportion
		if allocated < 0 {
			allocated = 0
		}
		result[p.ID] = allocated
		remaining -= allocated
	}
	return result
}

// HourlyRate derives the client-facing hourly rate for an allocated
// position amount. Denominators are floored at 1 so misconfigured
// positions degrade to the allocated amount rather than dividing by
// zero.
func HourlyRate(allocated float64, numGuards int, monthlyHoursStandard float64) float64 {
	guards := float64(numGuards)
	if guards < 1 {
		guards = 1
	}
	hours := monthlyHoursStandard
	if hours < 1 {
		hours = 1
	}
	return allocated / (guards * hours)
}
