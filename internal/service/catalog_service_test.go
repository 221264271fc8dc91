package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/service"
)

func newCatalogService(env *testEnv) *service.CatalogService {
	return service.NewCatalogService(env.catalogRepo, nil, zap.NewNop())
}

func TestCatalogService_Create(t *testing.T) {
	env := newTestEnv(t)
	svc := newCatalogService(env)

	item, err := svc.Create(context.Background(), &domain.CreateCatalogItemRequest{
		Type:      domain.CatalogTypeRadio,
		Name:      "Radio portátil",
		BasePrice: 15000,
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "mes", item.Unit)
	assert.True(t, item.IsActive)
	assert.Equal(t, domain.VisibilityVisible, item.DefaultVisibility)
}

func TestCatalogService_Create_InvalidType(t *testing.T) {
	env := newTestEnv(t)
	svc := newCatalogService(env)

	_, err := svc.Create(context.Background(), &domain.CreateCatalogItemRequest{
		Type: "drone",
		Name: "Dron de vigilancia",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCatalogType)
}

func TestCatalogService_Update(t *testing.T) {
	env := newTestEnv(t)
	svc := newCatalogService(env)
	item := env.createCatalogItem(t, domain.CatalogTypeUniform, "Parka invierno", "año", 48000)

	updated, err := svc.Update(context.Background(), item.ID, &domain.UpdateCatalogItemRequest{
		Name:      "Parka invierno reforzada",
		Unit:      "año",
		BasePrice: 52000,
		IsActive:  bptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Parka invierno reforzada", updated.Name)
	assert.Equal(t, 52000.0, updated.BasePrice)
	assert.False(t, updated.IsActive)
}

func TestCatalogService_Delete(t *testing.T) {
	env := newTestEnv(t)
	svc := newCatalogService(env)

	t.Run("unreferenced item is removed", func(t *testing.T) {
		item := env.createCatalogItem(t, domain.CatalogTypePhone, "Celular", "mes", 12000)
		require.NoError(t, svc.Delete(context.Background(), item.ID))

		_, err := svc.GetByID(context.Background(), item.ID)
		assert.ErrorIs(t, err, service.ErrCatalogItemNotFound)
	})

	t.Run("referenced item is deactivated", func(t *testing.T) {
		item := env.createCatalogItem(t, domain.CatalogTypeRadio, "Radio base", "mes", 30000)
		quote := env.createQuote(t, "Guardias bodega")

		_, err := env.costs.UpsertCostItem(context.Background(), quote.ID, &domain.UpsertQuoteCostItemRequest{
			CatalogItemID: item.ID,
			CalcMode:      domain.CalcModePerMonth,
		})
		require.NoError(t, err)

		err = svc.Delete(context.Background(), item.ID)
		assert.ErrorIs(t, err, service.ErrCatalogItemInUse)

		kept, err := svc.GetByID(context.Background(), item.ID)
		require.NoError(t, err)
		assert.False(t, kept.IsActive)
	})

	t.Run("missing item", func(t *testing.T) {
		err := svc.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, service.ErrCatalogItemNotFound)
	})
}

func TestCatalogService_List(t *testing.T) {
	env := newTestEnv(t)
	svc := newCatalogService(env)
	env.createCatalogItem(t, domain.CatalogTypePhone, "Celular", "mes", 12000)
	env.createCatalogItem(t, domain.CatalogTypeRadio, "Radio portátil", "mes", 15000)
	inactive := env.createCatalogItem(t, domain.CatalogTypeRadio, "Radio antigua", "mes", 8000)
	inactive.IsActive = false
	require.NoError(t, env.catalogRepo.Update(context.Background(), inactive))

	t.Run("active only by default", func(t *testing.T) {
		items, err := svc.List(context.Background(), "", "", false)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("filter by type including inactive", func(t *testing.T) {
		items, err := svc.List(context.Background(), domain.CatalogTypeRadio, "", true)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("invalid type filter", func(t *testing.T) {
		_, err := svc.List(context.Background(), "drone", "", false)
		assert.ErrorIs(t, err, service.ErrInvalidCatalogType)
	})
}

func TestCatalogService_SyncPrices_Disabled(t *testing.T) {
	env := newTestEnv(t)
	svc := newCatalogService(env)

	_, err := svc.SyncPrices(context.Background())
	assert.ErrorIs(t, err, service.ErrERPUnavailable)
}
