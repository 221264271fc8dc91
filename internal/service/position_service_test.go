package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/service"
)

func TestPositionService_Create(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias faena norte")

	position := env.addPosition(t, quote.ID, "Portería día", 4, 1, 3000000)
	assert.Equal(t, "Portería día", position.Name)
	assert.Equal(t, 4, position.NumGuards)

	// the allocation lands on the only position
	assert.Greater(t, position.AllocatedSalePrice, 0.0)
	assert.Greater(t, position.HourlyRate, 0.0)
}

func TestPositionService_Update_RebalancesAllocation(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias faena norte")
	first := env.addPosition(t, quote.ID, "Portería", 2, 1, 1000000)
	second := env.addPosition(t, quote.ID, "Ronda", 2, 1, 1000000)

	updated, err := env.positions.Update(context.Background(), quote.ID, second.ID, &domain.UpsertPositionRequest{
		Name:                "Ronda",
		NumGuards:           2,
		NumPuestos:          1,
		MonthlyPositionCost: 3000000,
	})
	require.NoError(t, err)

	// 3M of 4M total cost: three quarters of the sale price
	positions, err := env.positions.ListByQuote(context.Background(), quote.ID)
	require.NoError(t, err)
	require.Len(t, positions, 2)

	var firstAlloc, secondAlloc float64
	for _, p := range positions {
		switch p.ID {
		case first.ID:
			firstAlloc = p.AllocatedSalePrice
		case second.ID:
			secondAlloc = p.AllocatedSalePrice
		}
	}
	assert.InDelta(t, 3*firstAlloc, secondAlloc, 1.0)
	assert.Greater(t, updated.AllocatedSalePrice, 0.0)
}

func TestPositionService_Delete(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias faena norte")
	position := env.addPosition(t, quote.ID, "Portería", 2, 1, 1000000)

	require.NoError(t, env.positions.Delete(context.Background(), quote.ID, position.ID))

	positions, err := env.positions.ListByQuote(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Empty(t, positions)

	// totals followed the deletion
	fetched, err := env.quotes.GetByID(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fetched.MonthlyTotal)
}

func TestPositionService_WrongQuote(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias faena norte")
	other, err := env.quotes.Create(context.Background(), &domain.CreateQuoteRequest{
		Title:    "Guardias bodega",
		ClientID: quote.ClientID,
	})
	require.NoError(t, err)
	position := env.addPosition(t, quote.ID, "Portería", 2, 1, 1000000)

	_, err = env.positions.Update(context.Background(), other.ID, position.ID, &domain.UpsertPositionRequest{
		Name:      "Portería",
		NumGuards: 2,
	})
	assert.ErrorIs(t, err, service.ErrPositionNotFound)

	err = env.positions.Delete(context.Background(), other.ID, position.ID)
	assert.ErrorIs(t, err, service.ErrPositionNotFound)
}

func TestPositionService_ClosedQuote(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias faena norte")

	_, err := env.quotes.Send(context.Background(), quote.ID)
	require.NoError(t, err)
	_, err = env.quotes.Win(context.Background(), quote.ID)
	require.NoError(t, err)

	_, err = env.positions.Create(context.Background(), quote.ID, &domain.UpsertPositionRequest{
		Name:      "Portería",
		NumGuards: 2,
	})
	assert.ErrorIs(t, err, service.ErrQuoteNotEditable)
}

func TestPositionService_QuoteNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.positions.ListByQuote(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrQuoteNotFound)
}
