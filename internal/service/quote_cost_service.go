package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/mapper"
	"github.com/centinela-seguridad/cpq-api/internal/repository"
)

// QuoteCostService handles the per-quote cost input tables. Every
// mutation checks the quote is still editable and triggers a recompute
// of the cached totals.
type QuoteCostService struct {
	quoteRepo   *repository.QuoteRepository
	costRepo    *repository.QuoteCostRepository
	catalogRepo *repository.CatalogRepository
	recalc      *Recalculator
	logger      *zap.Logger
}

func NewQuoteCostService(
	quoteRepo *repository.QuoteRepository,
	costRepo *repository.QuoteCostRepository,
	catalogRepo *repository.CatalogRepository,
	recalc *Recalculator,
	logger *zap.Logger,
) *QuoteCostService {
	return &QuoteCostService{
		quoteRepo:   quoteRepo,
		costRepo:    costRepo,
		catalogRepo: catalogRepo,
		recalc:      recalc,
		logger:      logger,
	}
}

// ensureEditable loads the quote and rejects mutations on closed ones
func (s *QuoteCostService) ensureEditable(ctx context.Context, quoteID uuid.UUID) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}
	if !quoteEditable(quote.Status) {
		return nil, ErrQuoteNotEditable
	}
	return quote, nil
}

// Cost items

// UpsertCostItem creates or updates the quote's line item for a
// catalog entry. Line items are unique per (quote, catalogItem);
// repeated upserts adjust the existing row.
func (s *QuoteCostService) UpsertCostItem(ctx context.Context, quoteID uuid.UUID, req *domain.UpsertQuoteCostItemRequest) (*domain.QuoteCostItemDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	catalogItem, err := s.catalogRepo.GetByID(ctx, req.CatalogItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, fmt.Errorf("fetching catalog item: %w", err)
	}

	item, err := s.costRepo.GetCostItemByCatalog(ctx, quoteID, req.CatalogItemID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fetching cost item: %w", err)
	}

	if item == nil {
		visibility := req.Visibility
		if visibility == "" {
			visibility = catalogItem.DefaultVisibility
		}
		item = &domain.QuoteCostItem{
			QuoteID:       quoteID,
			CatalogItemID: req.CatalogItemID,
			CalcMode:      req.CalcMode,
			IsEnabled:     true,
			Visibility:    visibility,
		}
	}

	item.CalcMode = req.CalcMode
	item.Quantity = req.Quantity
	item.UnitPriceOverride = req.UnitPriceOverride
	if req.IsEnabled != nil {
		item.IsEnabled = *req.IsEnabled
	}
	if req.Visibility != "" {
		item.Visibility = req.Visibility
	}
	item.Notes = req.Notes

	if item.ID == uuid.Nil {
		err = s.costRepo.CreateCostItem(ctx, item)
	} else {
		err = s.costRepo.UpdateCostItem(ctx, item)
	}
	if err != nil {
		return nil, fmt.Errorf("saving cost item: %w", err)
	}

	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	item.CatalogItem = catalogItem
	dto := mapper.ToQuoteCostItemDTO(item)
	return &dto, nil
}

// ToggleCostItem flips a line item's enabled flag without losing its
// overrides. Toggling never deletes the row.
func (s *QuoteCostService) ToggleCostItem(ctx context.Context, quoteID, itemID uuid.UUID, enabled bool) (*domain.QuoteCostItemDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	item, err := s.costRepo.GetCostItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostItemNotFound
		}
		return nil, fmt.Errorf("fetching cost item: %w", err)
	}
	if item.QuoteID != quoteID {
		return nil, ErrCostItemNotFound
	}

	item.IsEnabled = enabled
	if err := s.costRepo.UpdateCostItem(ctx, item); err != nil {
		return nil, fmt.Errorf("updating cost item: %w", err)
	}

	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	dto := mapper.ToQuoteCostItemDTO(item)
	return &dto, nil
}

func (s *QuoteCostService) DeleteCostItem(ctx context.Context, quoteID, itemID uuid.UUID) error {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return err
	}

	item, err := s.costRepo.GetCostItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCostItemNotFound
		}
		return fmt.Errorf("fetching cost item: %w", err)
	}
	if item.QuoteID != quoteID {
		return ErrCostItemNotFound
	}

	if err := s.costRepo.DeleteCostItem(ctx, itemID); err != nil {
		return fmt.Errorf("deleting cost item: %w", err)
	}

	_, err = s.recalc.Recalculate(ctx, quoteID)
	return err
}

func (s *QuoteCostService) ListCostItems(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteCostItemDTO, error) {
	items, err := s.costRepo.ListCostItems(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("listing cost items: %w", err)
	}
	dtos := make([]domain.QuoteCostItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, mapper.ToQuoteCostItemDTO(&items[i]))
	}
	return dtos, nil
}

// Uniform selections

func (s *QuoteCostService) AddUniform(ctx context.Context, quoteID uuid.UUID, req *domain.UpsertQuoteSelectionItemRequest) (*domain.QuoteSelectionItemDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}
	catalogItem, err := s.resolveCatalogItem(ctx, req.CatalogItemID, domain.CatalogTypeUniform)
	if err != nil {
		return nil, err
	}

	item := &domain.QuoteUniformItem{
		QuoteID:           quoteID,
		CatalogItemID:     req.CatalogItemID,
		UnitPriceOverride: req.UnitPriceOverride,
		Active:            true,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := s.costRepo.CreateUniform(ctx, item); err != nil {
		return nil, fmt.Errorf("creating uniform selection: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	item.CatalogItem = catalogItem
	dto := mapper.ToUniformDTO(item)
	return &dto, nil
}

func (s *QuoteCostService) UpdateUniform(ctx context.Context, quoteID, itemID uuid.UUID, req *domain.UpsertQuoteSelectionItemRequest) (*domain.QuoteSelectionItemDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	item, err := s.costRepo.GetUniform(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostItemNotFound
		}
		return nil, fmt.Errorf("fetching uniform selection: %w", err)
	}
	if item.QuoteID != quoteID {
		return nil, ErrCostItemNotFound
	}

	item.UnitPriceOverride = req.UnitPriceOverride
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := s.costRepo.UpdateUniform(ctx, item); err != nil {
		return nil, fmt.Errorf("updating uniform selection: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	dto := mapper.ToUniformDTO(item)
	return &dto, nil
}

func (s *QuoteCostService) DeleteUniform(ctx context.Context, quoteID, itemID uuid.UUID) error {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return err
	}
	item, err := s.costRepo.GetUniform(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCostItemNotFound
		}
		return fmt.Errorf("fetching uniform selection: %w", err)
	}
	if item.QuoteID != quoteID {
		return ErrCostItemNotFound
	}
	if err := s.costRepo.DeleteUniform(ctx, itemID); err != nil {
		return fmt.Errorf("deleting uniform selection: %w", err)
	}
	_, err = s.recalc.Recalculate(ctx, quoteID)
	return err
}

func (s *QuoteCostService) ListUniforms(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteSelectionItemDTO, error) {
	items, err := s.costRepo.ListUniforms(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("listing uniform selections: %w", err)
	}
	dtos := make([]domain.QuoteSelectionItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, mapper.ToUniformDTO(&items[i]))
	}
	return dtos, nil
}

// Exam selections

func (s *QuoteCostService) AddExam(ctx context.Context, quoteID uuid.UUID, req *domain.UpsertQuoteSelectionItemRequest) (*domain.QuoteSelectionItemDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}
	catalogItem, err := s.resolveCatalogItem(ctx, req.CatalogItemID, domain.CatalogTypeExam)
	if err != nil {
		return nil, err
	}

	item := &domain.QuoteExamItem{
		QuoteID:           quoteID,
		CatalogItemID:     req.CatalogItemID,
		UnitPriceOverride: req.UnitPriceOverride,
		Active:            true,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := s.costRepo.CreateExam(ctx, item); err != nil {
		return nil, fmt.Errorf("creating exam selection: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	item.CatalogItem = catalogItem
	dto := mapper.ToExamDTO(item)
	return &dto, nil
}

func (s *QuoteCostService) UpdateExam(ctx context.Context, quoteID, itemID uuid.UUID, req *domain.UpsertQuoteSelectionItemRequest) (*domain.QuoteSelectionItemDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	item, err := s.costRepo.GetExam(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostItemNotFound
		}
		return nil, fmt.Errorf("fetching exam selection: %w", err)
	}
	if item.QuoteID != quoteID {
		return nil, ErrCostItemNotFound
	}

	item.UnitPriceOverride = req.UnitPriceOverride
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := s.costRepo.UpdateExam(ctx, item); err != nil {
		return nil, fmt.Errorf("updating exam selection: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	dto := mapper.ToExamDTO(item)
	return &dto, nil
}

func (s *QuoteCostService) DeleteExam(ctx context.Context, quoteID, itemID uuid.UUID) error {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return err
	}
	item, err := s.costRepo.GetExam(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCostItemNotFound
		}
		return fmt.Errorf("fetching exam selection: %w", err)
	}
	if item.QuoteID != quoteID {
		return ErrCostItemNotFound
	}
	if err := s.costRepo.DeleteExam(ctx, itemID); err != nil {
		return fmt.Errorf("deleting exam selection: %w", err)
	}
	_, err = s.recalc.Recalculate(ctx, quoteID)
	return err
}

func (s *QuoteCostService) ListExams(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteSelectionItemDTO, error) {
	items, err := s.costRepo.ListExams(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("listing exam selections: %w", err)
	}
	dtos := make([]domain.QuoteSelectionItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, mapper.ToExamDTO(&items[i]))
	}
	return dtos, nil
}

// Meals

func (s *QuoteCostService) AddMeal(ctx context.Context, quoteID uuid.UUID, req *domain.UpsertQuoteMealRequest) (*domain.QuoteMealDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	meal := &domain.QuoteMeal{
		QuoteID:       quoteID,
		MealType:      req.MealType,
		MealsPerDay:   req.MealsPerDay,
		DaysOfService: req.DaysOfService,
		PriceOverride: req.PriceOverride,
		IsEnabled:     true,
	}
	if req.IsEnabled != nil {
		meal.IsEnabled = *req.IsEnabled
	}
	if err := s.costRepo.CreateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("creating meal entry: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	dto := mapper.ToQuoteMealDTO(meal)
	return &dto, nil
}

func (s *QuoteCostService) UpdateMeal(ctx context.Context, quoteID, mealID uuid.UUID, req *domain.UpsertQuoteMealRequest) (*domain.QuoteMealDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	meal, err := s.costRepo.GetMeal(ctx, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostItemNotFound
		}
		return nil, fmt.Errorf("fetching meal entry: %w", err)
	}
	if meal.QuoteID != quoteID {
		return nil, ErrCostItemNotFound
	}

	meal.MealType = req.MealType
	meal.MealsPerDay = req.MealsPerDay
	meal.DaysOfService = req.DaysOfService
	meal.PriceOverride = req.PriceOverride
	if req.IsEnabled != nil {
		meal.IsEnabled = *req.IsEnabled
	}
	if err := s.costRepo.UpdateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("updating meal entry: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	dto := mapper.ToQuoteMealDTO(meal)
	return &dto, nil
}

func (s *QuoteCostService) DeleteMeal(ctx context.Context, quoteID, mealID uuid.UUID) error {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return err
	}
	meal, err := s.costRepo.GetMeal(ctx, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCostItemNotFound
		}
		return fmt.Errorf("fetching meal entry: %w", err)
	}
	if meal.QuoteID != quoteID {
		return ErrCostItemNotFound
	}
	if err := s.costRepo.DeleteMeal(ctx, mealID); err != nil {
		return fmt.Errorf("deleting meal entry: %w", err)
	}
	_, err = s.recalc.Recalculate(ctx, quoteID)
	return err
}

func (s *QuoteCostService) ListMeals(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteMealDTO, error) {
	meals, err := s.costRepo.ListMeals(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("listing meal entries: %w", err)
	}
	dtos := make([]domain.QuoteMealDTO, 0, len(meals))
	for i := range meals {
		dtos = append(dtos, mapper.ToQuoteMealDTO(&meals[i]))
	}
	return dtos, nil
}

// Vehicles

func (s *QuoteCostService) AddVehicle(ctx context.Context, quoteID uuid.UUID, req *domain.UpsertQuoteVehicleRequest) (*domain.QuoteVehicleDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	vehicle := &domain.QuoteVehicle{
		QuoteID:            quoteID,
		Description:        req.Description,
		IsEnabled:          true,
		VehiclesCount:      req.VehiclesCount,
		RentMonthly:        req.RentMonthly,
		MaintenanceMonthly: req.MaintenanceMonthly,
		KmPerDay:           req.KmPerDay,
		DaysPerMonth:       req.DaysPerMonth,
		KmPerLiter:         req.KmPerLiter,
		FuelPrice:          req.FuelPrice,
	}
	if req.IsEnabled != nil {
		vehicle.IsEnabled = *req.IsEnabled
	}
	if err := s.costRepo.CreateVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("creating vehicle entry: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	dto := mapper.ToQuoteVehicleDTO(vehicle)
	return &dto, nil
}

func (s *QuoteCostService) UpdateVehicle(ctx context.Context, quoteID, vehicleID uuid.UUID, req *domain.UpsertQuoteVehicleRequest) (*domain.QuoteVehicleDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	vehicle, err := s.costRepo.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostItemNotFound
		}
		return nil, fmt.Errorf("fetching vehicle entry: %w", err)
	}
	if vehicle.QuoteID != quoteID {
		return nil, ErrCostItemNotFound
	}

	vehicle.Description = req.Description
	vehicle.VehiclesCount = req.VehiclesCount
	vehicle.RentMonthly = req.RentMonthly
	vehicle.MaintenanceMonthly = req.MaintenanceMonthly
	vehicle.KmPerDay = req.KmPerDay
	vehicle.DaysPerMonth = req.DaysPerMonth
	vehicle.KmPerLiter = req.KmPerLiter
	vehicle.FuelPrice = req.FuelPrice
	if req.IsEnabled != nil {
		vehicle.IsEnabled = *req.IsEnabled
	}
	if err := s.costRepo.UpdateVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("updating vehicle entry: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	dto := mapper.ToQuoteVehicleDTO(vehicle)
	return &dto, nil
}

func (s *QuoteCostService) DeleteVehicle(ctx context.Context, quoteID, vehicleID uuid.UUID) error {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return err
	}
	vehicle, err := s.costRepo.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCostItemNotFound
		}
		return fmt.Errorf("fetching vehicle entry: %w", err)
	}
	if vehicle.QuoteID != quoteID {
		return ErrCostItemNotFound
	}
	if err := s.costRepo.DeleteVehicle(ctx, vehicleID); err != nil {
		return fmt.Errorf("deleting vehicle entry: %w", err)
	}
	_, err = s.recalc.Recalculate(ctx, quoteID)
	return err
}

func (s *QuoteCostService) ListVehicles(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteVehicleDTO, error) {
	vehicles, err := s.costRepo.ListVehicles(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("listing vehicle entries: %w", err)
	}
	dtos := make([]domain.QuoteVehicleDTO, 0, len(vehicles))
	for i := range vehicles {
		dtos = append(dtos, mapper.ToQuoteVehicleDTO(&vehicles[i]))
	}
	return dtos, nil
}

// Infrastructure

func (s *QuoteCostService) AddInfrastructure(ctx context.Context, quoteID uuid.UUID, req *domain.UpsertQuoteInfrastructureRequest) (*domain.QuoteInfrastructureDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	entry := &domain.QuoteInfrastructure{
		QuoteID:           quoteID,
		Description:       req.Description,
		IsEnabled:         true,
		Quantity:          req.Quantity,
		RentMonthly:       req.RentMonthly,
		HasFuel:           req.HasFuel,
		FuelLitersPerHour: req.FuelLitersPerHour,
		FuelHoursPerDay:   req.FuelHoursPerDay,
		FuelDaysPerMonth:  req.FuelDaysPerMonth,
		FuelPrice:         req.FuelPrice,
	}
	if req.IsEnabled != nil {
		entry.IsEnabled = *req.IsEnabled
	}
	if err := s.costRepo.CreateInfrastructure(ctx, entry); err != nil {
		return nil, fmt.Errorf("creating infrastructure entry: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	dto := mapper.ToQuoteInfrastructureDTO(entry)
	return &dto, nil
}

func (s *QuoteCostService) UpdateInfrastructure(ctx context.Context, quoteID, entryID uuid.UUID, req *domain.UpsertQuoteInfrastructureRequest) (*domain.QuoteInfrastructureDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	entry, err := s.costRepo.GetInfrastructure(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostItemNotFound
		}
		return nil, fmt.Errorf("fetching infrastructure entry: %w", err)
	}
	if entry.QuoteID != quoteID {
		return nil, ErrCostItemNotFound
	}

	entry.Description = req.Description
	entry.Quantity = req.Quantity
	entry.RentMonthly = req.RentMonthly
	entry.HasFuel = req.HasFuel
	entry.FuelLitersPerHour = req.FuelLitersPerHour
	entry.FuelHoursPerDay = req.FuelHoursPerDay
	entry.FuelDaysPerMonth = req.FuelDaysPerMonth
	entry.FuelPrice = req.FuelPrice
	if req.IsEnabled != nil {
		entry.IsEnabled = *req.IsEnabled
	}
	if err := s.costRepo.UpdateInfrastructure(ctx, entry); err != nil {
		return nil, fmt.Errorf("updating infrastructure entry: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	dto := mapper.ToQuoteInfrastructureDTO(entry)
	return &dto, nil
}

func (s *QuoteCostService) DeleteInfrastructure(ctx context.Context, quoteID, entryID uuid.UUID) error {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return err
	}
	entry, err := s.costRepo.GetInfrastructure(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCostItemNotFound
		}
		return fmt.Errorf("fetching infrastructure entry: %w", err)
	}
	if entry.QuoteID != quoteID {
		return ErrCostItemNotFound
	}
	if err := s.costRepo.DeleteInfrastructure(ctx, entryID); err != nil {
		return fmt.Errorf("deleting infrastructure entry: %w", err)
	}
	_, err = s.recalc.Recalculate(ctx, quoteID)
	return err
}

func (s *QuoteCostService) ListInfrastructure(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteInfrastructureDTO, error) {
	entries, err := s.costRepo.ListInfrastructure(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("listing infrastructure entries: %w", err)
	}
	dtos := make([]domain.QuoteInfrastructureDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, mapper.ToQuoteInfrastructureDTO(&entries[i]))
	}
	return dtos, nil
}

// Parameters

func (s *QuoteCostService) GetParameters(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteParametersDTO, error) {
	params, err := s.costRepo.GetParameters(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote parameters: %w", err)
	}
	dto := mapper.ToQuoteParametersDTO(params)
	return &dto, nil
}

// UpdateParameters replaces the quote's pricing parameters and
// recomputes. SalePriceMonthly is engine-owned and not settable here.
func (s *QuoteCostService) UpdateParameters(ctx context.Context, quoteID uuid.UUID, req *domain.UpdateQuoteParametersRequest) (*domain.QuoteParametersDTO, error) {
	if _, err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	params, err := s.costRepo.GetParameters(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote parameters: %w", err)
	}

	params.MonthlyHoursStandard = req.MonthlyHoursStandard
	params.AvgStayMonths = req.AvgStayMonths
	params.UniformChangesPerYear = req.UniformChangesPerYear
	params.MonthlyHolidayAdjustment = req.MonthlyHolidayAdjustment
	params.MarginPct = req.MarginPct
	params.FinancialEnabled = req.FinancialEnabled
	params.FinancialRatePct = req.FinancialRatePct
	params.SalePriceBase = req.SalePriceBase
	params.PolicyEnabled = req.PolicyEnabled
	params.PolicyRatePct = req.PolicyRatePct
	params.PolicyAdminRatePct = req.PolicyAdminRatePct
	params.PolicyContractMonths = req.PolicyContractMonths
	params.PolicyContractPct = req.PolicyContractPct
	params.ContractMonths = req.ContractMonths
	params.ContractAmount = req.ContractAmount

	if err := s.costRepo.UpdateParameters(ctx, params); err != nil {
		return nil, fmt.Errorf("updating quote parameters: %w", err)
	}
	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	updated, err := s.costRepo.GetParameters(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("reloading quote parameters: %w", err)
	}
	dto := mapper.ToQuoteParametersDTO(updated)
	return &dto, nil
}

// resolveCatalogItem fetches a catalog item and checks its type
func (s *QuoteCostService) resolveCatalogItem(ctx context.Context, id uuid.UUID, wantType domain.CatalogItemType) (*domain.CatalogItem, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, fmt.Errorf("fetching catalog item: %w", err)
	}
	if item.Type != wantType {
		return nil, ErrInvalidCatalogType
	}
	return item, nil
}
