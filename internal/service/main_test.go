package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/repository"
	"github.com/centinela-seguridad/cpq-api/internal/service"
)

// setupTestDB opens an isolated in-memory sqlite database and migrates
// the full schema. One connection keeps the database alive for the
// whole test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&domain.Client{},
		&domain.CatalogItem{},
		&domain.Quote{},
		&domain.QuoteCostItem{},
		&domain.QuoteUniformItem{},
		&domain.QuoteExamItem{},
		&domain.QuoteMeal{},
		&domain.QuoteVehicle{},
		&domain.QuoteInfrastructure{},
		&domain.QuoteParameters{},
		&domain.Position{},
		&domain.GlobalSettings{},
		&domain.Activity{},
		&domain.File{},
	)
	require.NoError(t, err)

	return db
}

// testEnv bundles the repositories and services most tests need
type testEnv struct {
	db           *gorm.DB
	clientRepo   *repository.ClientRepository
	catalogRepo  *repository.CatalogRepository
	quoteRepo    *repository.QuoteRepository
	costRepo     *repository.QuoteCostRepository
	positionRepo *repository.PositionRepository
	settingsRepo *repository.SettingsRepository
	activityRepo *repository.ActivityRepository

	clients   *service.ClientService
	quotes    *service.QuoteService
	costs     *service.QuoteCostService
	positions *service.PositionService
	settings  *service.SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	log := zap.NewNop()

	env := &testEnv{
		db:           db,
		clientRepo:   repository.NewClientRepository(db),
		catalogRepo:  repository.NewCatalogRepository(db),
		quoteRepo:    repository.NewQuoteRepository(db),
		costRepo:     repository.NewQuoteCostRepository(db),
		positionRepo: repository.NewPositionRepository(db),
		settingsRepo: repository.NewSettingsRepository(db),
		activityRepo: repository.NewActivityRepository(db),
	}

	recalc := service.NewRecalculator(env.quoteRepo, env.costRepo, env.positionRepo, env.catalogRepo, log)
	env.clients = service.NewClientService(env.clientRepo, env.activityRepo, log)
	env.quotes = service.NewQuoteService(env.quoteRepo, env.clientRepo, env.costRepo, env.positionRepo,
		env.catalogRepo, env.settingsRepo, env.activityRepo, recalc, log)
	env.costs = service.NewQuoteCostService(env.quoteRepo, env.costRepo, env.catalogRepo, recalc, log)
	env.positions = service.NewPositionService(env.quoteRepo, env.positionRepo, recalc, log)
	env.settings = service.NewSettingsService(env.settingsRepo, log)

	return env
}

func (e *testEnv) createClient(t *testing.T, name, rut string) *domain.ClientDTO {
	t.Helper()
	client, err := e.clients.Create(context.Background(), &domain.CreateClientRequest{
		Name: name,
		RUT:  rut,
	})
	require.NoError(t, err)
	return client
}

func (e *testEnv) createQuote(t *testing.T, title string) *domain.QuoteDTO {
	t.Helper()
	client := e.createClient(t, "Minera Andina", "76.123.456-7")
	quote, err := e.quotes.Create(context.Background(), &domain.CreateQuoteRequest{
		Title:    title,
		ClientID: client.ID,
	})
	require.NoError(t, err)
	return quote
}

func (e *testEnv) createCatalogItem(t *testing.T, itemType domain.CatalogItemType, name, unit string, price float64) *domain.CatalogItem {
	t.Helper()
	item := &domain.CatalogItem{
		Type:              itemType,
		Name:              name,
		Unit:              unit,
		BasePrice:         price,
		DefaultVisibility: domain.VisibilityVisible,
		IsActive:          true,
	}
	require.NoError(t, e.catalogRepo.Create(context.Background(), item))
	return item
}

func (e *testEnv) addPosition(t *testing.T, quoteID uuid.UUID, name string, guards, puestos int, monthlyCost float64) *domain.PositionDTO {
	t.Helper()
	position, err := e.positions.Create(context.Background(), quoteID, &domain.UpsertPositionRequest{
		Name:                name,
		NumGuards:           guards,
		NumPuestos:          puestos,
		MonthlyPositionCost: monthlyCost,
	})
	require.NoError(t, err)
	return position
}

func fptr(v float64) *float64 { return &v }

func bptr(v bool) *bool { return &v }
