package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

func position(cost float64, guards int) domain.Position {
	return domain.Position{
		BaseModel:           domain.BaseModel{ID: uuid.New()},
		NumGuards:           guards,
		NumPuestos:          1,
		MonthlyPositionCost: cost,
	}
}

func TestAllocateProportionalScenario(t *testing.T) {
	positions := []domain.Position{
		position(300000, 2),
		position(200000, 1),
		position(100000, 1),
	}

	result := Allocate(positions, 720000)
	require.Len(t, result, 3)

	assert.InDelta(t, 360000, result[positions[0].ID], 1e-6)
	assert.InDelta(t, 240000, result[positions[1].ID], 1e-6)
	assert.InDelta(t, 120000, result[positions[2].ID], 1e-6)
}

func TestAllocateSumsExactly(t *testing.T) {
	positions := []domain.Position{
		position(333333, 1),
		position(123456, 1),
		position(99999, 1),
		position(7, 1),
	}
	total := 1234567.89

	result := Allocate(positions, total)
	require.Len(t, result, 4)

	var sum float64
	for _, v := range result {
		sum += v
	}
	assert.Equal(t, total, sum)
}

func TestAllocateEmptyInputs(t *testing.T) {
	assert.Empty(t, Allocate(nil, 500000))
	assert.Empty(t, Allocate([]domain.Position{position(100, 1)}, 0))
	assert.Empty(t, Allocate([]domain.Position{position(100, 1)}, -50))
}

func TestAllocateZeroWeightsSplitsEvenly(t *testing.T) {
	positions := []domain.Position{
		position(0, 1),
		position(0, 1),
	}

	result := Allocate(positions, 500000)
	require.Len(t, result, 2)
	assert.InDelta(t, 250000, result[positions[0].ID], 1e-6)
	assert.InDelta(t, 250000, result[positions[1].ID], 1e-6)
}

func TestAllocateNegativeCostTreatedAsZeroWeight(t *testing.T) {
	positions := []domain.Position{
		position(-5000, 1),
		position(100000, 1),
	}

	result := Allocate(positions, 300000)
	assert.Zero(t, result[positions[0].ID])
	assert.InDelta(t, 300000, result[positions[1].ID], 1e-6)
}

func TestAllocateSinglePositionTakesAll(t *testing.T) {
	p := position(100000, 3)
	result := Allocate([]domain.Position{p}, 450000)
	assert.Equal(t, 450000.0, result[p.ID])
}

func TestHourlyRate(t *testing.T) {
	assert.InDelta(t, 1000, HourlyRate(360000, 2, 180), 1e-9)
}

func TestHourlyRateFloorsDenominators(t *testing.T) {
	// zero guards and zero hours degrade to the allocated amount
	assert.InDelta(t, 360000, HourlyRate(360000, 0, 0), 1e-9)
	assert.InDelta(t, 2000, HourlyRate(360000, 0, 180), 1e-9)
}
