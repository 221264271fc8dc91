package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// Get godoc
// @Summary Get global settings
// @Description Get the company-wide defaults seeded into new quotes
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.GlobalSettingsDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load settings", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// Update godoc
// @Summary Update global settings
// @Description Update the company-wide defaults (admin only). Existing quotes keep their own parameters.
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body domain.UpdateGlobalSettingsRequest true "Settings"
// @Success 200 {object} domain.GlobalSettingsDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /settings [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateGlobalSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	settings, err := h.settingsService.Update(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to update settings", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}
