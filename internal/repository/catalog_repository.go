package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Create(ctx context.Context, item *domain.CatalogItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *CatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository) Update(ctx context.Context, item *domain.CatalogItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *CatalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CatalogItem{}, "id = ?", id).Error
}

func (r *CatalogRepository) List(ctx context.Context, itemType domain.CatalogItemType, search string, includeInactive bool) ([]domain.CatalogItem, error) {
	var items []domain.CatalogItem

	query := r.db.WithContext(ctx).Model(&domain.CatalogItem{})
	if itemType != "" {
		query = query.Where("type = ?", itemType)
	}
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	err := query.Order("type, name").Find(&items).Error
	return items, err
}

// ListActive returns every active catalog item, the reference set for
// an engine run.
func (r *CatalogRepository) ListActive(ctx context.Context) ([]domain.CatalogItem, error) {
	var items []domain.CatalogItem
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("type, name").Find(&items).Error
	return items, err
}

// GetByERPReference resolves a catalog item by its ERP reference code
func (r *CatalogRepository) GetByERPReference(ctx context.Context, reference string) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := r.db.WithContext(ctx).Where("erp_reference = ?", reference).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdatePriceFromERP stamps a synced price onto a catalog item
func (r *CatalogRepository) UpdatePriceFromERP(ctx context.Context, id uuid.UUID, price float64, syncedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.CatalogItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"base_price":    price,
			"erp_synced_at": syncedAt,
		}).Error
}

// CountCostItemReferences reports how many quote line items reference
// a catalog entry across all selection tables.
func (r *CatalogRepository) CountCostItemReferences(ctx context.Context, catalogItemID uuid.UUID) (int64, error) {
	var total int64
	for _, model := range []interface{}{
		&domain.QuoteCostItem{},
		&domain.QuoteUniformItem{},
		&domain.QuoteExamItem{},
	} {
		var count int64
		if err := r.db.WithContext(ctx).Model(model).
			Where("catalog_item_id = ?", catalogItemID).Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}
