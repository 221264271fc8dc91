package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/pricing"
	"github.com/centinela-seguridad/cpq-api/internal/repository"
)

// Recalculator loads a quote's full input snapshot, runs the pricing
// engine and writes the cached results back. Every service that
// mutates a cost input goes through it, so the stored totals never
// drift from the persisted inputs.
type Recalculator struct {
	quoteRepo    *repository.QuoteRepository
	costRepo     *repository.QuoteCostRepository
	positionRepo *repository.PositionRepository
	catalogRepo  *repository.CatalogRepository
	logger       *zap.Logger
}

func NewRecalculator(
	quoteRepo *repository.QuoteRepository,
	costRepo *repository.QuoteCostRepository,
	positionRepo *repository.PositionRepository,
	catalogRepo *repository.CatalogRepository,
	logger *zap.Logger,
) *Recalculator {
	return &Recalculator{
		quoteRepo:    quoteRepo,
		costRepo:     costRepo,
		positionRepo: positionRepo,
		catalogRepo:  catalogRepo,
		logger:       logger,
	}
}

// LoadInput assembles the engine input snapshot for a quote
func (r *Recalculator) LoadInput(ctx context.Context, quoteID uuid.UUID) (*pricing.Input, error) {
	params, err := r.costRepo.GetParameters(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	catalog, err := r.catalogRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	costItems, err := r.costRepo.ListCostItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	uniforms, err := r.costRepo.ListUniforms(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	exams, err := r.costRepo.ListExams(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	meals, err := r.costRepo.ListMeals(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	vehicles, err := r.costRepo.ListVehicles(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	infrastructure, err := r.costRepo.ListInfrastructure(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	positions, err := r.positionRepo.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	return &pricing.Input{
		Parameters:     *params,
		Catalog:        catalog,
		CostItems:      costItems,
		Uniforms:       uniforms,
		Exams:          exams,
		Meals:          meals,
		Vehicles:       vehicles,
		Infrastructure: infrastructure,
		Positions:      positions,
	}, nil
}

// Recalculate runs the engine for a quote and persists the cached
// totals on the quote row, the parameters row and each position.
func (r *Recalculator) Recalculate(ctx context.Context, quoteID uuid.UUID) (*pricing.Summary, error) {
	input, err := r.LoadInput(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	summary := pricing.ComputeCostSummary(*input)

	if err := r.quoteRepo.UpdateCachedTotals(ctx, quoteID, summary.MonthlyTotal, summary.SalePriceMonthly); err != nil {
		return nil, err
	}

	if input.Parameters.SalePriceMonthly != summary.SalePriceMonthly {
		params := input.Parameters
		params.SalePriceMonthly = summary.SalePriceMonthly
		if err := r.costRepo.UpdateParameters(ctx, &params); err != nil {
			return nil, err
		}
	}

	for _, alloc := range summary.Allocations {
		if err := r.positionRepo.UpdateAllocation(ctx, alloc.PositionID, alloc.AllocatedSalePrice, alloc.HourlyRate); err != nil {
			return nil, err
		}
	}

	r.logger.Debug("Quote recalculated",
		zap.String("quoteId", quoteID.String()),
		zap.Float64("monthlyTotal", summary.MonthlyTotal),
		zap.Float64("salePriceMonthly", summary.SalePriceMonthly),
		zap.Int("totalGuards", summary.TotalGuards))

	return &summary, nil
}
