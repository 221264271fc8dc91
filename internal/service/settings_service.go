package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/mapper"
	"github.com/centinela-seguridad/cpq-api/internal/repository"
)

// SettingsService handles the global default quote parameters.
// Changes only affect quotes created afterwards; existing quotes keep
// their own parameters row.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo *repository.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

func (s *SettingsService) Get(ctx context.Context) (*domain.GlobalSettingsDTO, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching global settings: %w", err)
	}
	dto := mapper.ToGlobalSettingsDTO(settings)
	return &dto, nil
}

func (s *SettingsService) Update(ctx context.Context, req *domain.UpdateGlobalSettingsRequest) (*domain.GlobalSettingsDTO, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching global settings: %w", err)
	}

	settings.MonthlyHoursStandard = req.MonthlyHoursStandard
	settings.AvgStayMonths = req.AvgStayMonths
	settings.UniformChangesPerYear = req.UniformChangesPerYear
	settings.MarginPct = req.MarginPct
	settings.FinancialRatePct = req.FinancialRatePct
	settings.PolicyRatePct = req.PolicyRatePct
	settings.PolicyAdminRatePct = req.PolicyAdminRatePct
	settings.PolicyContractPct = req.PolicyContractPct

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("updating global settings: %w", err)
	}

	s.logger.Info("Global settings updated",
		zap.Float64("monthlyHoursStandard", settings.MonthlyHoursStandard),
		zap.Float64("marginPct", settings.MarginPct))

	dto := mapper.ToGlobalSettingsDTO(settings)
	return &dto, nil
}
