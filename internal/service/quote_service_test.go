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

func TestQuoteService_Create(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, "Minera Andina", "76.123.456-7")

	defaultItem := env.createCatalogItem(t, domain.CatalogTypePhone, "Celular", "mes", 12000)
	defaultItem.IsDefault = true
	require.NoError(t, env.catalogRepo.Update(context.Background(), defaultItem))
	// default uniform types get their own selection table, never cost items
	uniform := env.createCatalogItem(t, domain.CatalogTypeUniform, "Parka", "año", 48000)
	uniform.IsDefault = true
	require.NoError(t, env.catalogRepo.Update(context.Background(), uniform))

	quote, err := env.quotes.Create(context.Background(), &domain.CreateQuoteRequest{
		Title:    "Guardias faena norte",
		ClientID: client.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusDraft, quote.Status)
	assert.Equal(t, "CLP", quote.Currency)
	assert.Equal(t, "Minera Andina", quote.ClientName)

	params, err := env.costs.GetParameters(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 180.0, params.MonthlyHoursStandard)
	assert.Equal(t, 12.0, params.AvgStayMonths)
	assert.Equal(t, 2.0, params.UniformChangesPerYear)
	assert.Equal(t, 10.0, params.MarginPct)

	items, err := env.costs.ListCostItems(context.Background(), quote.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, defaultItem.ID, items[0].CatalogItemID)
	assert.True(t, items[0].IsEnabled)
}

func TestQuoteService_Create_ClientNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.quotes.Create(context.Background(), &domain.CreateQuoteRequest{
		Title:    "Guardias faena norte",
		ClientID: uuid.New(),
	})
	assert.ErrorIs(t, err, service.ErrClientNotFound)
}

func TestQuoteService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias faena norte")

	t.Run("draft cannot be won", func(t *testing.T) {
		_, err := env.quotes.Win(context.Background(), quote.ID)
		assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
	})

	t.Run("send stamps sentAt", func(t *testing.T) {
		sent, err := env.quotes.Send(context.Background(), quote.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.QuoteStatusSent, sent.Status)
		assert.NotNil(t, sent.SentAt)
	})

	t.Run("send twice fails", func(t *testing.T) {
		_, err := env.quotes.Send(context.Background(), quote.ID)
		assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
	})

	t.Run("win stamps closedAt", func(t *testing.T) {
		won, err := env.quotes.Win(context.Background(), quote.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.QuoteStatusWon, won.Status)
		assert.NotNil(t, won.ClosedAt)
	})

	t.Run("won quote cannot be lost", func(t *testing.T) {
		_, err := env.quotes.Lose(context.Background(), quote.ID, "precio")
		assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
	})

	t.Run("reopen clears stamps", func(t *testing.T) {
		reopened, err := env.quotes.Reopen(context.Background(), quote.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.QuoteStatusDraft, reopened.Status)
		assert.Nil(t, reopened.SentAt)
		assert.Nil(t, reopened.ClosedAt)
	})

	t.Run("lose records reason", func(t *testing.T) {
		lost, err := env.quotes.Lose(context.Background(), quote.ID, "cliente eligió otro proveedor")
		require.NoError(t, err)
		assert.Equal(t, domain.QuoteStatusLost, lost.Status)
		assert.Equal(t, "cliente eligió otro proveedor", lost.LostReason)
		assert.NotNil(t, lost.ClosedAt)
	})
}

func TestQuoteService_Recalculate(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias faena norte")

	_, err := env.positions.Create(context.Background(), quote.ID, &domain.UpsertPositionRequest{
		Name:                "Portería día",
		NumGuards:           4,
		NumPuestos:          1,
		MonthlyPositionCost: 3000000,
	})
	require.NoError(t, err)
	_, err = env.positions.Create(context.Background(), quote.ID, &domain.UpsertPositionRequest{
		Name:                "Ronda nocturna",
		NumGuards:           2,
		NumPuestos:          2,
		MonthlyPositionCost: 1000000,
	})
	require.NoError(t, err)

	summary, err := env.quotes.Recalculate(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, summary.TotalGuards)
	assert.Equal(t, 4000000.0, summary.MonthlyPositions)
	assert.Equal(t, 4000000.0, summary.MonthlyTotal)

	// margin 10% from global settings: 4,000,000 / 0.9
	assert.InDelta(t, 4444444.44, summary.SalePriceMonthly, 0.01)

	// allocation shares follow position cost weights and sum exactly
	require.Len(t, summary.Allocations, 2)
	var allocated float64
	for _, a := range summary.Allocations {
		allocated += a.AllocatedSalePrice
	}
	assert.InDelta(t, summary.SalePriceMonthly, allocated, 0.0001)

	// cached totals are persisted on the quote row
	fetched, err := env.quotes.GetByID(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, summary.MonthlyTotal, fetched.MonthlyTotal)
	assert.InDelta(t, summary.SalePriceMonthly, fetched.SalePriceMonthly, 0.0001)

	// and on each position
	positions, err := env.positions.ListByQuote(context.Background(), quote.ID)
	require.NoError(t, err)
	for _, p := range positions {
		assert.Greater(t, p.AllocatedSalePrice, 0.0)
		assert.Greater(t, p.HourlyRate, 0.0)
	}
}

func TestQuoteService_GetDetail(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias faena norte")

	_, err := env.positions.Create(context.Background(), quote.ID, &domain.UpsertPositionRequest{
		Name:                "Portería",
		NumGuards:           2,
		NumPuestos:          1,
		MonthlyPositionCost: 1500000,
	})
	require.NoError(t, err)

	_, err = env.costs.AddVehicle(context.Background(), quote.ID, &domain.UpsertQuoteVehicleRequest{
		Description:   "Camioneta ronda",
		VehiclesCount: 1,
		RentMonthly:   450000,
	})
	require.NoError(t, err)

	detail, err := env.quotes.GetDetail(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, quote.ID, detail.Quote.ID)
	assert.Len(t, detail.Positions, 1)
	assert.Len(t, detail.Vehicles, 1)
	assert.Equal(t, 450000.0, detail.Summary.MonthlyVehicles)
	assert.Equal(t, 1950000.0, detail.Summary.MonthlyTotal)
	assert.Equal(t, 2, detail.Summary.TotalGuards)
}

func TestQuoteService_Update(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias faena norte")

	updated, err := env.quotes.Update(context.Background(), quote.ID, &domain.UpdateQuoteRequest{
		Title: "Guardias faena norte 2026",
		Notes: "renovación anual",
	})
	require.NoError(t, err)
	assert.Equal(t, "Guardias faena norte 2026", updated.Title)
	assert.Equal(t, "renovación anual", updated.Notes)
}

func TestQuoteService_List(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, "Minera Andina", "76.123.456-7")

	for _, title := range []string{"Faena norte", "Faena sur", "Bodega central"} {
		_, err := env.quotes.Create(context.Background(), &domain.CreateQuoteRequest{
			Title:    title,
			ClientID: client.ID,
		})
		require.NoError(t, err)
	}

	t.Run("all", func(t *testing.T) {
		page, err := env.quotes.List(context.Background(), 1, 50, "", "", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
	})

	t.Run("search", func(t *testing.T) {
		page, err := env.quotes.List(context.Background(), 1, 50, "faena", "", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("status filter", func(t *testing.T) {
		page, err := env.quotes.List(context.Background(), 1, 50, "", domain.QuoteStatusWon, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
	})

	t.Run("client filter", func(t *testing.T) {
		page, err := env.quotes.List(context.Background(), 1, 50, "", "", &client.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
	})
}

func TestQuoteService_Delete(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createQuote(t, "Guardias faena norte")

	require.NoError(t, env.quotes.Delete(context.Background(), quote.ID))

	_, err := env.quotes.GetByID(context.Background(), quote.ID)
	assert.ErrorIs(t, err, service.ErrQuoteNotFound)
}
