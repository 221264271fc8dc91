package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetWithInputs loads a quote with the full engine input snapshot:
// parameters, cost items, positions.
func (r *QuoteRepository) GetWithInputs(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Preload("Parameters").
		Preload("CostItems").
		Preload("CostItems.CatalogItem").
		Preload("Positions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order, created_at")
		}).
		Where("id = ?", id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Quote{}, "id = ?", id).Error
}

func (r *QuoteRepository) List(ctx context.Context, page, pageSize int, search string, status domain.QuoteStatus, clientID *uuid.UUID) ([]domain.Quote, int64, error) {
	var quotes []domain.Quote
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Quote{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(client_name) LIKE ?", searchPattern, searchPattern)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&quotes).Error

	return quotes, total, err
}

// UpdateCachedTotals persists the engine's cached totals on the quote
// row after a recompute.
func (r *QuoteRepository) UpdateCachedTotals(ctx context.Context, id uuid.UUID, monthlyTotal, salePriceMonthly float64) error {
	return r.db.WithContext(ctx).Model(&domain.Quote{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"monthly_total":      monthlyTotal,
			"sale_price_monthly": salePriceMonthly,
		}).Error
}
