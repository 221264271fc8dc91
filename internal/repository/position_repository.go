package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

type PositionRepository struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) Create(ctx context.Context, position *domain.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

func (r *PositionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	var position domain.Position
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&position).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *PositionRepository) Update(ctx context.Context, position *domain.Position) error {
	return r.db.WithContext(ctx).Save(position).Error
}

func (r *PositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Position{}, "id = ?", id).Error
}

func (r *PositionRepository) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.Position, error) {
	var positions []domain.Position
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("display_order, created_at").
		Find(&positions).Error
	return positions, err
}

// UpdateAllocation persists the cached allocation result for a position
func (r *PositionRepository) UpdateAllocation(ctx context.Context, id uuid.UUID, allocated, hourlyRate float64) error {
	return r.db.WithContext(ctx).Model(&domain.Position{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"allocated_sale_price": allocated,
			"hourly_rate":          hourlyRate,
		}).Error
}
