package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/service"
)

type PositionHandler struct {
	positionService *service.PositionService
	logger          *zap.Logger
}

func NewPositionHandler(positionService *service.PositionService, logger *zap.Logger) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
		logger:          logger,
	}
}

// List godoc
// @Summary List quote positions
// @Description Get the guard positions of a quote with their cached sale price allocations
// @Tags Positions
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {array} domain.PositionDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/positions [get]
func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	positions, err := h.positionService.ListByQuote(r.Context(), quoteID)
	if err != nil {
		h.handlePositionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, positions)
}

// Create godoc
// @Summary Create position
// @Description Add a guard position to a quote. Triggers a recompute and reallocation.
// @Tags Positions
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param position body domain.UpsertPositionRequest true "Position data"
// @Success 201 {object} domain.PositionDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/positions [post]
func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.UpsertPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	position, err := h.positionService.Create(r.Context(), quoteID, &req)
	if err != nil {
		h.handlePositionError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, position)
}

// Update godoc
// @Summary Update position
// @Description Update a guard position. Triggers a recompute and reallocation.
// @Tags Positions
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param positionId path string true "Position ID"
// @Param position body domain.UpsertPositionRequest true "Position data"
// @Success 200 {object} domain.PositionDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/positions/{positionId} [put]
func (h *PositionHandler) Update(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}
	positionID, err := parseUUIDParam(r, "positionId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid position ID")
		return
	}

	var req domain.UpsertPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	position, err := h.positionService.Update(r.Context(), quoteID, positionID, &req)
	if err != nil {
		h.handlePositionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, position)
}

// Delete godoc
// @Summary Delete position
// @Description Remove a guard position from a quote. Triggers a recompute and reallocation.
// @Tags Positions
// @Param id path string true "Quote ID"
// @Param positionId path string true "Position ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/positions/{positionId} [delete]
func (h *PositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}
	positionID, err := parseUUIDParam(r, "positionId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid position ID")
		return
	}

	if err := h.positionService.Delete(r.Context(), quoteID, positionID); err != nil {
		h.handlePositionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handlePositionError maps service errors to HTTP status codes
func (h *PositionHandler) handlePositionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrQuoteNotFound):
		respondWithError(w, http.StatusNotFound, "Quote not found")
	case errors.Is(err, service.ErrPositionNotFound):
		respondWithError(w, http.StatusNotFound, "Position not found")
	case errors.Is(err, service.ErrQuoteNotEditable):
		respondWithError(w, http.StatusConflict, "Quote is not editable in its current status")
	default:
		h.logger.Error("position operation failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
