// Package mapper converts persistence models to API DTOs.
package mapper

import (
	"time"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/pricing"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// ToClientDTO converts a client model to its DTO
func ToClientDTO(client *domain.Client, activeQuotes int) domain.ClientDTO {
	return domain.ClientDTO{
		ID:            client.ID,
		Name:          client.Name,
		RUT:           client.RUT,
		Email:         client.Email,
		Phone:         client.Phone,
		Address:       client.Address,
		City:          client.City,
		ContactPerson: client.ContactPerson,
		ContactEmail:  client.ContactEmail,
		Status:        client.Status,
		Industries:    client.Industries,
		Notes:         client.Notes,
		ActiveQuotes:  activeQuotes,
		CreatedAt:     formatTime(client.CreatedAt),
		UpdatedAt:     formatTime(client.UpdatedAt),
	}
}

// ToCatalogItemDTO converts a catalog item model to its DTO
func ToCatalogItemDTO(item *domain.CatalogItem) domain.CatalogItemDTO {
	return domain.CatalogItemDTO{
		ID:                item.ID,
		Type:              item.Type,
		Name:              item.Name,
		Unit:              item.Unit,
		BasePrice:         item.BasePrice,
		IsDefault:         item.IsDefault,
		DefaultVisibility: item.DefaultVisibility,
		IsActive:          item.IsActive,
		ERPReference:      item.ERPReference,
		ERPSyncedAt:       formatTimePtr(item.ERPSyncedAt),
		CreatedAt:         formatTime(item.CreatedAt),
		UpdatedAt:         formatTime(item.UpdatedAt),
	}
}

// ToQuoteDTO converts a quote model to its DTO
func ToQuoteDTO(quote *domain.Quote) domain.QuoteDTO {
	return domain.QuoteDTO{
		ID:               quote.ID,
		Title:            quote.Title,
		ClientID:         quote.ClientID,
		ClientName:       quote.ClientName,
		Status:           quote.Status,
		Currency:         quote.Currency,
		OwnerID:          quote.OwnerID,
		OwnerName:        quote.OwnerName,
		Notes:            quote.Notes,
		LostReason:       quote.LostReason,
		MonthlyTotal:     quote.MonthlyTotal,
		SalePriceMonthly: quote.SalePriceMonthly,
		SentAt:           formatTimePtr(quote.SentAt),
		ClosedAt:         formatTimePtr(quote.ClosedAt),
		CreatedAt:        formatTime(quote.CreatedAt),
		UpdatedAt:        formatTime(quote.UpdatedAt),
	}
}

// ToQuoteCostItemDTO converts a cost item with its preloaded catalog entry
func ToQuoteCostItemDTO(item *domain.QuoteCostItem) domain.QuoteCostItemDTO {
	dto := domain.QuoteCostItemDTO{
		ID:                item.ID,
		QuoteID:           item.QuoteID,
		CatalogItemID:     item.CatalogItemID,
		CalcMode:          item.CalcMode,
		Quantity:          item.Quantity,
		UnitPriceOverride: item.UnitPriceOverride,
		IsEnabled:         item.IsEnabled,
		Visibility:        item.Visibility,
		Notes:             item.Notes,
	}
	if item.CatalogItem != nil {
		dto.CatalogItemName = item.CatalogItem.Name
		dto.CatalogItemType = item.CatalogItem.Type
		dto.EffectiveUnit = item.CatalogItem.Unit
	}
	return dto
}

// ToUniformDTO converts a uniform selection to the shared selection DTO
func ToUniformDTO(item *domain.QuoteUniformItem) domain.QuoteSelectionItemDTO {
	dto := domain.QuoteSelectionItemDTO{
		ID:                item.ID,
		QuoteID:           item.QuoteID,
		CatalogItemID:     item.CatalogItemID,
		UnitPriceOverride: item.UnitPriceOverride,
		Active:            item.Active,
	}
	if item.CatalogItem != nil {
		dto.CatalogItemName = item.CatalogItem.Name
		dto.BasePrice = item.CatalogItem.BasePrice
	}
	return dto
}

// ToExamDTO converts an exam selection to the shared selection DTO
func ToExamDTO(item *domain.QuoteExamItem) domain.QuoteSelectionItemDTO {
	dto := domain.QuoteSelectionItemDTO{
		ID:                item.ID,
		QuoteID:           item.QuoteID,
		CatalogItemID:     item.CatalogItemID,
		UnitPriceOverride: item.UnitPriceOverride,
		Active:            item.Active,
	}
	if item.CatalogItem != nil {
		dto.CatalogItemName = item.CatalogItem.Name
		dto.BasePrice = item.CatalogItem.BasePrice
	}
	return dto
}

// ToQuoteMealDTO converts a meal entry to its DTO
func ToQuoteMealDTO(meal *domain.QuoteMeal) domain.QuoteMealDTO {
	return domain.QuoteMealDTO{
		ID:            meal.ID,
		QuoteID:       meal.QuoteID,
		MealType:      meal.MealType,
		MealsPerDay:   meal.MealsPerDay,
		DaysOfService: meal.DaysOfService,
		PriceOverride: meal.PriceOverride,
		IsEnabled:     meal.IsEnabled,
	}
}

// ToQuoteVehicleDTO converts a vehicle entry, including its computed
// monthly cost for display.
func ToQuoteVehicleDTO(vehicle *domain.QuoteVehicle) domain.QuoteVehicleDTO {
	return domain.QuoteVehicleDTO{
		ID:                 vehicle.ID,
		QuoteID:            vehicle.QuoteID,
		Description:        vehicle.Description,
		IsEnabled:          vehicle.IsEnabled,
		VehiclesCount:      vehicle.VehiclesCount,
		RentMonthly:        vehicle.RentMonthly,
		MaintenanceMonthly: vehicle.MaintenanceMonthly,
		KmPerDay:           vehicle.KmPerDay,
		DaysPerMonth:       vehicle.DaysPerMonth,
		KmPerLiter:         vehicle.KmPerLiter,
		FuelPrice:          vehicle.FuelPrice,
		MonthlyCost:        pricing.SumVehicles([]domain.QuoteVehicle{*vehicle}),
	}
}

// ToQuoteInfrastructureDTO converts an infrastructure entry, including
// its computed monthly cost for display.
func ToQuoteInfrastructureDTO(entry *domain.QuoteInfrastructure) domain.QuoteInfrastructureDTO {
	return domain.QuoteInfrastructureDTO{
		ID:                entry.ID,
		QuoteID:           entry.QuoteID,
		Description:       entry.Description,
		IsEnabled:         entry.IsEnabled,
		Quantity:          entry.Quantity,
		RentMonthly:       entry.RentMonthly,
		HasFuel:           entry.HasFuel,
		FuelLitersPerHour: entry.FuelLitersPerHour,
		FuelHoursPerDay:   entry.FuelHoursPerDay,
		FuelDaysPerMonth:  entry.FuelDaysPerMonth,
		FuelPrice:         entry.FuelPrice,
		MonthlyCost:       pricing.SumInfrastructure([]domain.QuoteInfrastructure{*entry}),
	}
}

// ToQuoteParametersDTO converts a parameters row to its DTO
func ToQuoteParametersDTO(params *domain.QuoteParameters) domain.QuoteParametersDTO {
	return domain.QuoteParametersDTO{
		QuoteID:                  params.QuoteID,
		MonthlyHoursStandard:     params.MonthlyHoursStandard,
		AvgStayMonths:            params.AvgStayMonths,
		UniformChangesPerYear:    params.UniformChangesPerYear,
		MonthlyHolidayAdjustment: params.MonthlyHolidayAdjustment,
		MarginPct:                params.MarginPct,
		FinancialEnabled:         params.FinancialEnabled,
		FinancialRatePct:         params.FinancialRatePct,
		SalePriceBase:            params.SalePriceBase,
		SalePriceMonthly:         params.SalePriceMonthly,
		PolicyEnabled:            params.PolicyEnabled,
		PolicyRatePct:            params.PolicyRatePct,
		PolicyAdminRatePct:       params.PolicyAdminRatePct,
		PolicyContractMonths:     params.PolicyContractMonths,
		PolicyContractPct:        params.PolicyContractPct,
		ContractMonths:           params.ContractMonths,
		ContractAmount:           params.ContractAmount,
	}
}

// ToPositionDTO converts a position model to its DTO
func ToPositionDTO(position *domain.Position) domain.PositionDTO {
	return domain.PositionDTO{
		ID:                  position.ID,
		QuoteID:             position.QuoteID,
		Name:                position.Name,
		NumGuards:           position.NumGuards,
		NumPuestos:          position.NumPuestos,
		MonthlyPositionCost: position.MonthlyPositionCost,
		AllocatedSalePrice:  position.AllocatedSalePrice,
		HourlyRate:          position.HourlyRate,
		DisplayOrder:        position.DisplayOrder,
	}
}

// ToCostSummaryDTO converts an engine summary to its DTO
func ToCostSummaryDTO(s *pricing.Summary) domain.CostSummaryDTO {
	dto := domain.CostSummaryDTO{
		TotalGuards:              s.TotalGuards,
		MonthlyPositions:         s.MonthlyPositions,
		MonthlyHolidayAdjustment: s.MonthlyHolidayAdjustment,
		MonthlyUniforms:          s.MonthlyUniforms,
		MonthlyExams:             s.MonthlyExams,
		MonthlyMeals:             s.MonthlyMeals,
		MonthlyVehicles:          s.MonthlyVehicles,
		MonthlyInfrastructure:    s.MonthlyInfrastructure,
		MonthlyEquipment:         s.MonthlyEquipment,
		MonthlyTransport:         s.MonthlyTransport,
		MonthlySystem:            s.MonthlySystem,
		MonthlyExtras:            s.MonthlyExtras,
		MonthlyTotal:             s.MonthlyTotal,
		MonthlyFinancial:         s.MonthlyFinancial,
		MonthlyPolicy:            s.MonthlyPolicy,
		SalePriceBase:            s.SalePriceBase,
		SalePriceMonthly:         s.SalePriceMonthly,
	}
	for _, a := range s.Allocations {
		dto.Allocations = append(dto.Allocations, domain.PositionAllocationDTO{
			PositionID:         a.PositionID,
			AllocatedSalePrice: a.AllocatedSalePrice,
			HourlyRate:         a.HourlyRate,
		})
	}
	return dto
}

// ToGlobalSettingsDTO converts the settings row to its DTO
func ToGlobalSettingsDTO(settings *domain.GlobalSettings) domain.GlobalSettingsDTO {
	return domain.GlobalSettingsDTO{
		MonthlyHoursStandard:  settings.MonthlyHoursStandard,
		AvgStayMonths:         settings.AvgStayMonths,
		UniformChangesPerYear: settings.UniformChangesPerYear,
		MarginPct:             settings.MarginPct,
		FinancialRatePct:      settings.FinancialRatePct,
		PolicyRatePct:         settings.PolicyRatePct,
		PolicyAdminRatePct:    settings.PolicyAdminRatePct,
		PolicyContractPct:     settings.PolicyContractPct,
		UpdatedAt:             formatTime(settings.UpdatedAt),
	}
}

// ToActivityDTO converts an activity model to its DTO
func ToActivityDTO(activity *domain.Activity) domain.ActivityDTO {
	return domain.ActivityDTO{
		ID:          activity.ID,
		TargetType:  activity.TargetType,
		TargetID:    activity.TargetID,
		Title:       activity.Title,
		Body:        activity.Body,
		OccurredAt:  formatTime(activity.OccurredAt),
		CreatorID:   activity.CreatorID,
		CreatorName: activity.CreatorName,
	}
}

// ToFileDTO converts a file model to its DTO
func ToFileDTO(file *domain.File) domain.FileDTO {
	return domain.FileDTO{
		ID:          file.ID,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
		QuoteID:     file.QuoteID,
		CreatedAt:   formatTime(file.CreatedAt),
	}
}
