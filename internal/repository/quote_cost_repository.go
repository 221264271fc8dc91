package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

// QuoteCostRepository persists the per-quote cost input tables: cost
// items, uniform/exam selections, meals, vehicles, infrastructure and
// the parameters row.
type QuoteCostRepository struct {
	db *gorm.DB
}

func NewQuoteCostRepository(db *gorm.DB) *QuoteCostRepository {
	return &QuoteCostRepository{db: db}
}

// Cost items

func (r *QuoteCostRepository) CreateCostItem(ctx context.Context, item *domain.QuoteCostItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *QuoteCostRepository) CreateCostItems(ctx context.Context, items []domain.QuoteCostItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *QuoteCostRepository) GetCostItem(ctx context.Context, id uuid.UUID) (*domain.QuoteCostItem, error) {
	var item domain.QuoteCostItem
	err := r.db.WithContext(ctx).Preload("CatalogItem").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetCostItemByCatalog finds the quote's cost item for a catalog
// entry. Cost items are unique per (quote, catalogItem).
func (r *QuoteCostRepository) GetCostItemByCatalog(ctx context.Context, quoteID, catalogItemID uuid.UUID) (*domain.QuoteCostItem, error) {
	var item domain.QuoteCostItem
	err := r.db.WithContext(ctx).
		Where("quote_id = ? AND catalog_item_id = ?", quoteID, catalogItemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *QuoteCostRepository) UpdateCostItem(ctx context.Context, item *domain.QuoteCostItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *QuoteCostRepository) DeleteCostItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.QuoteCostItem{}, "id = ?", id).Error
}

func (r *QuoteCostRepository) ListCostItems(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteCostItem, error) {
	var items []domain.QuoteCostItem
	err := r.db.WithContext(ctx).Preload("CatalogItem").
		Where("quote_id = ?", quoteID).Order("created_at").Find(&items).Error
	return items, err
}

// Uniform selections

func (r *QuoteCostRepository) CreateUniform(ctx context.Context, item *domain.QuoteUniformItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *QuoteCostRepository) GetUniform(ctx context.Context, id uuid.UUID) (*domain.QuoteUniformItem, error) {
	var item domain.QuoteUniformItem
	err := r.db.WithContext(ctx).Preload("CatalogItem").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *QuoteCostRepository) UpdateUniform(ctx context.Context, item *domain.QuoteUniformItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *QuoteCostRepository) DeleteUniform(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.QuoteUniformItem{}, "id = ?", id).Error
}

func (r *QuoteCostRepository) ListUniforms(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteUniformItem, error) {
	var items []domain.QuoteUniformItem
	err := r.db.WithContext(ctx).Preload("CatalogItem").
		Where("quote_id = ?", quoteID).Order("created_at").Find(&items).Error
	return items, err
}

// Exam selections

func (r *QuoteCostRepository) CreateExam(ctx context.Context, item *domain.QuoteExamItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *QuoteCostRepository) GetExam(ctx context.Context, id uuid.UUID) (*domain.QuoteExamItem, error) {
	var item domain.QuoteExamItem
	err := r.db.WithContext(ctx).Preload("CatalogItem").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *QuoteCostRepository) UpdateExam(ctx context.Context, item *domain.QuoteExamItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *QuoteCostRepository) DeleteExam(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.QuoteExamItem{}, "id = ?", id).Error
}

func (r *QuoteCostRepository) ListExams(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteExamItem, error) {
	var items []domain.QuoteExamItem
	err := r.db.WithContext(ctx).Preload("CatalogItem").
		Where("quote_id = ?", quoteID).Order("created_at").Find(&items).Error
	return items, err
}

// Meals

func (r *QuoteCostRepository) CreateMeal(ctx context.Context, meal *domain.QuoteMeal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *QuoteCostRepository) GetMeal(ctx context.Context, id uuid.UUID) (*domain.QuoteMeal, error) {
	var meal domain.QuoteMeal
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&meal).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *QuoteCostRepository) UpdateMeal(ctx context.Context, meal *domain.QuoteMeal) error {
	return r.db.WithContext(ctx).Save(meal).Error
}

func (r *QuoteCostRepository) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.QuoteMeal{}, "id = ?", id).Error
}

func (r *QuoteCostRepository) ListMeals(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteMeal, error) {
	var meals []domain.QuoteMeal
	err := r.db.WithContext(ctx).Where("quote_id = ?", quoteID).Order("created_at").Find(&meals).Error
	return meals, err
}

// Vehicles

func (r *QuoteCostRepository) CreateVehicle(ctx context.Context, vehicle *domain.QuoteVehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *QuoteCostRepository) GetVehicle(ctx context.Context, id uuid.UUID) (*domain.QuoteVehicle, error) {
	var vehicle domain.QuoteVehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *QuoteCostRepository) UpdateVehicle(ctx context.Context, vehicle *domain.QuoteVehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *QuoteCostRepository) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.QuoteVehicle{}, "id = ?", id).Error
}

func (r *QuoteCostRepository) ListVehicles(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteVehicle, error) {
	var vehicles []domain.QuoteVehicle
	err := r.db.WithContext(ctx).Where("quote_id = ?", quoteID).Order("created_at").Find(&vehicles).Error
	return vehicles, err
}

// Infrastructure

func (r *QuoteCostRepository) CreateInfrastructure(ctx context.Context, entry *domain.QuoteInfrastructure) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *QuoteCostRepository) GetInfrastructure(ctx context.Context, id uuid.UUID) (*domain.QuoteInfrastructure, error) {
	var entry domain.QuoteInfrastructure
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *QuoteCostRepository) UpdateInfrastructure(ctx context.Context, entry *domain.QuoteInfrastructure) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *QuoteCostRepository) DeleteInfrastructure(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.QuoteInfrastructure{}, "id = ?", id).Error
}

func (r *QuoteCostRepository) ListInfrastructure(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteInfrastructure, error) {
	var entries []domain.QuoteInfrastructure
	err := r.db.WithContext(ctx).Where("quote_id = ?", quoteID).Order("created_at").Find(&entries).Error
	return entries, err
}

// Parameters

func (r *QuoteCostRepository) CreateParameters(ctx context.Context, params *domain.QuoteParameters) error {
	return r.db.WithContext(ctx).Create(params).Error
}

func (r *QuoteCostRepository) GetParameters(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteParameters, error) {
	var params domain.QuoteParameters
	err := r.db.WithContext(ctx).Where("quote_id = ?", quoteID).First(&params).Error
	if err != nil {
		return nil, err
	}
	return &params, nil
}

func (r *QuoteCostRepository) UpdateParameters(ctx context.Context, params *domain.QuoteParameters) error {
	return r.db.WithContext(ctx).Save(params).Error
}
