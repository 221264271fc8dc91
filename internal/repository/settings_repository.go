package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

const settingsRowID = 1

// SettingsRepository persists the single global settings row
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the global settings, creating the default row on first use
func (r *SettingsRepository) Get(ctx context.Context) (*domain.GlobalSettings, error) {
	var settings domain.GlobalSettings
	err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = domain.GlobalSettings{
			ID:                    settingsRowID,
			MonthlyHoursStandard:  180,
			AvgStayMonths:         12,
			UniformChangesPerYear: 2,
			MarginPct:             10,
		}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) Update(ctx context.Context, settings *domain.GlobalSettings) error {
	settings.ID = settingsRowID
	return r.db.WithContext(ctx).Save(settings).Error
}
