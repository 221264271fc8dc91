package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/erp"
	"github.com/centinela-seguridad/cpq-api/internal/mapper"
	"github.com/centinela-seguridad/cpq-api/internal/repository"
)

// CatalogSyncResult summarizes one ERP price sync run
type CatalogSyncResult struct {
	Fetched   int    `json:"fetched"`
	Updated   int    `json:"updated"`
	Unmatched int    `json:"unmatched"`
	SyncedAt  string `json:"syncedAt"`
}

// CatalogService handles catalog item business logic, including the
// ERP price sync.
type CatalogService struct {
	catalogRepo *repository.CatalogRepository
	erpClient   *erp.Client
	logger      *zap.Logger
}

func NewCatalogService(
	catalogRepo *repository.CatalogRepository,
	erpClient *erp.Client,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		erpClient:   erpClient,
		logger:      logger,
	}
}

func (s *CatalogService) Create(ctx context.Context, req *domain.CreateCatalogItemRequest) (*domain.CatalogItemDTO, error) {
	if !req.Type.IsValid() {
		return nil, ErrInvalidCatalogType
	}

	unit := req.Unit
	if unit == "" {
		unit = "mes"
	}
	visibility := req.DefaultVisibility
	if visibility == "" {
		visibility = domain.VisibilityVisible
	}

	item := &domain.CatalogItem{
		Type:              req.Type,
		Name:              req.Name,
		Unit:              unit,
		BasePrice:         req.BasePrice,
		IsDefault:         req.IsDefault,
		DefaultVisibility: visibility,
		IsActive:          true,
		ERPReference:      req.ERPReference,
	}

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating catalog item: %w", err)
	}

	s.logger.Info("Catalog item created",
		zap.String("itemId", item.ID.String()),
		zap.String("type", string(item.Type)),
		zap.String("name", item.Name))

	dto := mapper.ToCatalogItemDTO(item)
	return &dto, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItemDTO, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, fmt.Errorf("fetching catalog item: %w", err)
	}

	dto := mapper.ToCatalogItemDTO(item)
	return &dto, nil
}

// Update modifies a catalog item. The type is immutable after
// creation; quotes aggregate by type and a change would silently move
// historic line items between categories.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCatalogItemRequest) (*domain.CatalogItemDTO, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, fmt.Errorf("fetching catalog item: %w", err)
	}

	item.Name = req.Name
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	item.BasePrice = req.BasePrice
	item.IsDefault = req.IsDefault
	if req.DefaultVisibility != "" {
		item.DefaultVisibility = req.DefaultVisibility
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.ERPReference = req.ERPReference

	if err := s.catalogRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("updating catalog item: %w", err)
	}

	dto := mapper.ToCatalogItemDTO(item)
	return &dto, nil
}

// Delete removes a catalog item. Items still referenced by quote line
// items are deactivated instead so historic quotes keep resolving.
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCatalogItemNotFound
		}
		return fmt.Errorf("fetching catalog item: %w", err)
	}

	references, err := s.catalogRepo.CountCostItemReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("counting references: %w", err)
	}
	if references > 0 {
		item.IsActive = false
		if err := s.catalogRepo.Update(ctx, item); err != nil {
			return fmt.Errorf("deactivating catalog item: %w", err)
		}
		s.logger.Info("Catalog item deactivated instead of deleted",
			zap.String("itemId", id.String()),
			zap.Int64("references", references))
		return ErrCatalogItemInUse
	}

	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting catalog item: %w", err)
	}

	s.logger.Info("Catalog item deleted",
		zap.String("itemId", id.String()),
		zap.String("name", item.Name))
	return nil
}

func (s *CatalogService) List(ctx context.Context, itemType domain.CatalogItemType, search string, includeInactive bool) ([]domain.CatalogItemDTO, error) {
	if itemType != "" && !itemType.IsValid() {
		return nil, ErrInvalidCatalogType
	}

	items, err := s.catalogRepo.List(ctx, itemType, search, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("listing catalog items: %w", err)
	}

	dtos := make([]domain.CatalogItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, mapper.ToCatalogItemDTO(&items[i]))
	}
	return dtos, nil
}

// SyncPrices pulls current prices from the ERP price view and stamps
// them onto the catalog items matched by ERP reference. Rows without a
// matching catalog item are counted but not created; the catalog stays
// curated by hand.
func (s *CatalogService) SyncPrices(ctx context.Context) (*CatalogSyncResult, error) {
	if s.erpClient == nil {
		return nil, ErrERPUnavailable
	}

	prices, err := s.erpClient.FetchCatalogPrices(ctx)
	if err != nil {
		s.logger.Error("ERP price fetch failed", zap.Error(err))
		return nil, fmt.Errorf("fetching ERP prices: %w", err)
	}

	syncedAt := time.Now().UTC()
	result := &CatalogSyncResult{
		Fetched:  len(prices),
		SyncedAt: syncedAt.Format(time.RFC3339),
	}

	for _, price := range prices {
		item, err := s.catalogRepo.GetByERPReference(ctx, price.Reference)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Unmatched++
				continue
			}
			return nil, fmt.Errorf("resolving ERP reference %q: %w", price.Reference, err)
		}

		if err := s.catalogRepo.UpdatePriceFromERP(ctx, item.ID, price.Price, syncedAt); err != nil {
			return nil, fmt.Errorf("updating price for %q: %w", price.Reference, err)
		}
		result.Updated++
	}

	s.logger.Info("Catalog prices synced from ERP",
		zap.Int("fetched", result.Fetched),
		zap.Int("updated", result.Updated),
		zap.Int("unmatched", result.Unmatched))

	return result, nil
}

// ExchangeRateDTO is a display-level currency rate from the ERP
type ExchangeRateDTO struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
	Date string  `json:"date"`
}

// GetExchangeRate returns the most recent rate for a currency code
// ("UF", "USD"). Quotes are priced in CLP; the rate is for display.
func (s *CatalogService) GetExchangeRate(ctx context.Context, code string) (*ExchangeRateDTO, error) {
	if s.erpClient == nil {
		return nil, ErrERPUnavailable
	}

	rate, err := s.erpClient.GetExchangeRate(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error("ERP exchange rate lookup failed", zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("fetching exchange rate: %w", err)
	}

	return &ExchangeRateDTO{
		Code: rate.Code,
		Rate: rate.Rate,
		Date: rate.Date.UTC().Format(time.RFC3339),
	}, nil
}
