package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// List godoc
// @Summary List catalog items
// @Description Get catalog items with optional filters
// @Tags Catalog
// @Produce json
// @Param type query string false "Filter by item type"
// @Param search query string false "Search by name"
// @Param includeInactive query bool false "Include deactivated items"
// @Success 200 {array} domain.CatalogItemDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog [get]
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	itemType := domain.CatalogItemType(r.URL.Query().Get("type"))
	search := r.URL.Query().Get("search")
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	items, err := h.catalogService.List(r.Context(), itemType, search, includeInactive)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Get godoc
// @Summary Get catalog item
// @Tags Catalog
// @Produce json
// @Param id path string true "Catalog item ID"
// @Success 200 {object} domain.CatalogItemDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/{id} [get]
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid catalog item ID")
		return
	}

	item, err := h.catalogService.GetByID(r.Context(), id)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Create godoc
// @Summary Create catalog item
// @Description Create a new catalog item (admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Param item body domain.CreateCatalogItemRequest true "Catalog item data"
// @Success 201 {object} domain.CatalogItemDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog [post]
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCatalogItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.catalogService.Create(r.Context(), &req)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Update godoc
// @Summary Update catalog item
// @Description Update a catalog item (admin only). The type is immutable.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Catalog item ID"
// @Param item body domain.UpdateCatalogItemRequest true "Catalog item data"
// @Success 200 {object} domain.CatalogItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/{id} [put]
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid catalog item ID")
		return
	}

	var req domain.UpdateCatalogItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.catalogService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete catalog item
// @Description Delete a catalog item (admin only). Items referenced by quotes are deactivated instead.
// @Tags Catalog
// @Param id path string true "Catalog item ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/{id} [delete]
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid catalog item ID")
		return
	}

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		h.handleCatalogError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SyncPrices godoc
// @Summary Sync catalog prices from ERP
// @Description Pull current reference prices from the ERP warehouse and update matched catalog items (admin only)
// @Tags Catalog
// @Produce json
// @Success 200 {object} service.CatalogSyncResult
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/sync [post]
func (h *CatalogHandler) SyncPrices(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalogService.SyncPrices(r.Context())
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetExchangeRate godoc
// @Summary Get currency exchange rate
// @Description Get the most recent exchange rate for a currency code (UF, USD). Informational; quotes are always priced in CLP.
// @Tags Catalog
// @Produce json
// @Param code path string true "Currency code"
// @Success 200 {object} service.ExchangeRateDTO
// @Failure 404 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/exchange-rates/{code} [get]
func (h *CatalogHandler) GetExchangeRate(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Currency code is required")
		return
	}

	rate, err := h.catalogService.GetExchangeRate(r.Context(), code)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rate)
}

// handleCatalogError maps service errors to HTTP status codes
func (h *CatalogHandler) handleCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogItemNotFound):
		respondWithError(w, http.StatusNotFound, "Catalog item not found")
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Exchange rate not found")
	case errors.Is(err, service.ErrInvalidCatalogType):
		respondWithError(w, http.StatusBadRequest, "Invalid catalog item type")
	case errors.Is(err, service.ErrCatalogItemInUse):
		respondWithError(w, http.StatusConflict, "Catalog item is referenced by quotes and was deactivated instead")
	case errors.Is(err, service.ErrERPUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, "ERP connection not available")
	default:
		h.logger.Error("catalog operation failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
