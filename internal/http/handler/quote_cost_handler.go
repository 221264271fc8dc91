package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/service"
)

// ToggleCostItemRequest flips a cost item's enabled flag
type ToggleCostItemRequest struct {
	IsEnabled bool `json:"isEnabled"`
}

// QuoteCostHandler exposes the per-quote cost input tables: catalog
// line items, uniform/exam selections, meals, vehicles, infrastructure
// and the pricing parameters.
type QuoteCostHandler struct {
	costService *service.QuoteCostService
	logger      *zap.Logger
}

func NewQuoteCostHandler(costService *service.QuoteCostService, logger *zap.Logger) *QuoteCostHandler {
	return &QuoteCostHandler{
		costService: costService,
		logger:      logger,
	}
}

func (h *QuoteCostHandler) quoteAndItemIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return uuid.Nil, uuid.Nil, false
	}
	itemID, err := parseUUIDParam(r, "itemId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item ID")
		return uuid.Nil, uuid.Nil, false
	}
	return quoteID, itemID, true
}

// Cost items

// ListCostItems godoc
// @Summary List quote cost items
// @Tags Quote costs
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {array} domain.QuoteCostItemDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/cost-items [get]
func (h *QuoteCostHandler) ListCostItems(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	items, err := h.costService.ListCostItems(r.Context(), quoteID)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// UpsertCostItem godoc
// @Summary Upsert quote cost item
// @Description Create or update the quote's line item for a catalog entry. Line items are unique per catalog entry; repeated calls adjust the existing one. Triggers a recompute.
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param item body domain.UpsertQuoteCostItemRequest true "Cost item data"
// @Success 200 {object} domain.QuoteCostItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/cost-items [post]
func (h *QuoteCostHandler) UpsertCostItem(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.UpsertQuoteCostItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.costService.UpsertCostItem(r.Context(), quoteID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// ToggleCostItem godoc
// @Summary Toggle quote cost item
// @Description Enable or disable a line item without losing its overrides. Triggers a recompute.
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param itemId path string true "Cost item ID"
// @Param body body ToggleCostItemRequest true "Enabled flag"
// @Success 200 {object} domain.QuoteCostItemDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/cost-items/{itemId}/toggle [post]
func (h *QuoteCostHandler) ToggleCostItem(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	var req ToggleCostItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.costService.ToggleCostItem(r.Context(), quoteID, itemID, req.IsEnabled)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// DeleteCostItem godoc
// @Summary Delete quote cost item
// @Tags Quote costs
// @Param id path string true "Quote ID"
// @Param itemId path string true "Cost item ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/cost-items/{itemId} [delete]
func (h *QuoteCostHandler) DeleteCostItem(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	if err := h.costService.DeleteCostItem(r.Context(), quoteID, itemID); err != nil {
		h.handleCostError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Uniform selections

// ListUniforms godoc
// @Summary List uniform selections
// @Tags Quote costs
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {array} domain.QuoteSelectionItemDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/uniforms [get]
func (h *QuoteCostHandler) ListUniforms(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	items, err := h.costService.ListUniforms(r.Context(), quoteID)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// AddUniform godoc
// @Summary Add uniform selection
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param item body domain.UpsertQuoteSelectionItemRequest true "Selection data"
// @Success 201 {object} domain.QuoteSelectionItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/uniforms [post]
func (h *QuoteCostHandler) AddUniform(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.UpsertQuoteSelectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.costService.AddUniform(r.Context(), quoteID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// UpdateUniform godoc
// @Summary Update uniform selection
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param itemId path string true "Selection ID"
// @Param item body domain.UpsertQuoteSelectionItemRequest true "Selection data"
// @Success 200 {object} domain.QuoteSelectionItemDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/uniforms/{itemId} [put]
func (h *QuoteCostHandler) UpdateUniform(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	var req domain.UpsertQuoteSelectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.costService.UpdateUniform(r.Context(), quoteID, itemID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// DeleteUniform godoc
// @Summary Delete uniform selection
// @Tags Quote costs
// @Param id path string true "Quote ID"
// @Param itemId path string true "Selection ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/uniforms/{itemId} [delete]
func (h *QuoteCostHandler) DeleteUniform(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	if err := h.costService.DeleteUniform(r.Context(), quoteID, itemID); err != nil {
		h.handleCostError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Exam selections

// ListExams godoc
// @Summary List exam selections
// @Tags Quote costs
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {array} domain.QuoteSelectionItemDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/exams [get]
func (h *QuoteCostHandler) ListExams(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	items, err := h.costService.ListExams(r.Context(), quoteID)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// AddExam godoc
// @Summary Add exam selection
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param item body domain.UpsertQuoteSelectionItemRequest true "Selection data"
// @Success 201 {object} domain.QuoteSelectionItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/exams [post]
func (h *QuoteCostHandler) AddExam(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.UpsertQuoteSelectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.costService.AddExam(r.Context(), quoteID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// UpdateExam godoc
// @Summary Update exam selection
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param itemId path string true "Selection ID"
// @Param item body domain.UpsertQuoteSelectionItemRequest true "Selection data"
// @Success 200 {object} domain.QuoteSelectionItemDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/exams/{itemId} [put]
func (h *QuoteCostHandler) UpdateExam(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	var req domain.UpsertQuoteSelectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.costService.UpdateExam(r.Context(), quoteID, itemID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// DeleteExam godoc
// @Summary Delete exam selection
// @Tags Quote costs
// @Param id path string true "Quote ID"
// @Param itemId path string true "Selection ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/exams/{itemId} [delete]
func (h *QuoteCostHandler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	if err := h.costService.DeleteExam(r.Context(), quoteID, itemID); err != nil {
		h.handleCostError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Meals

// ListMeals godoc
// @Summary List meal entries
// @Tags Quote costs
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {array} domain.QuoteMealDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/meals [get]
func (h *QuoteCostHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	meals, err := h.costService.ListMeals(r.Context(), quoteID)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, meals)
}

// AddMeal godoc
// @Summary Add meal entry
// @Description Add a meal plan entry. The meal type is matched case-insensitively against catalog meal items at computation time.
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param meal body domain.UpsertQuoteMealRequest true "Meal data"
// @Success 201 {object} domain.QuoteMealDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/meals [post]
func (h *QuoteCostHandler) AddMeal(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.UpsertQuoteMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	meal, err := h.costService.AddMeal(r.Context(), quoteID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, meal)
}

// UpdateMeal godoc
// @Summary Update meal entry
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param itemId path string true "Meal ID"
// @Param meal body domain.UpsertQuoteMealRequest true "Meal data"
// @Success 200 {object} domain.QuoteMealDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/meals/{itemId} [put]
func (h *QuoteCostHandler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	var req domain.UpsertQuoteMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	meal, err := h.costService.UpdateMeal(r.Context(), quoteID, itemID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, meal)
}

// DeleteMeal godoc
// @Summary Delete meal entry
// @Tags Quote costs
// @Param id path string true "Quote ID"
// @Param itemId path string true "Meal ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/meals/{itemId} [delete]
func (h *QuoteCostHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	if err := h.costService.DeleteMeal(r.Context(), quoteID, itemID); err != nil {
		h.handleCostError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Vehicles

// ListVehicles godoc
// @Summary List vehicle entries
// @Tags Quote costs
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {array} domain.QuoteVehicleDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/vehicles [get]
func (h *QuoteCostHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	vehicles, err := h.costService.ListVehicles(r.Context(), quoteID)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicles)
}

// AddVehicle godoc
// @Summary Add vehicle entry
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param vehicle body domain.UpsertQuoteVehicleRequest true "Vehicle data"
// @Success 201 {object} domain.QuoteVehicleDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/vehicles [post]
func (h *QuoteCostHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.UpsertQuoteVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	vehicle, err := h.costService.AddVehicle(r.Context(), quoteID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, vehicle)
}

// UpdateVehicle godoc
// @Summary Update vehicle entry
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param itemId path string true "Vehicle ID"
// @Param vehicle body domain.UpsertQuoteVehicleRequest true "Vehicle data"
// @Success 200 {object} domain.QuoteVehicleDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/vehicles/{itemId} [put]
func (h *QuoteCostHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	var req domain.UpsertQuoteVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	vehicle, err := h.costService.UpdateVehicle(r.Context(), quoteID, itemID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

// DeleteVehicle godoc
// @Summary Delete vehicle entry
// @Tags Quote costs
// @Param id path string true "Quote ID"
// @Param itemId path string true "Vehicle ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/vehicles/{itemId} [delete]
func (h *QuoteCostHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	if err := h.costService.DeleteVehicle(r.Context(), quoteID, itemID); err != nil {
		h.handleCostError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Infrastructure

// ListInfrastructure godoc
// @Summary List infrastructure entries
// @Tags Quote costs
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {array} domain.QuoteInfrastructureDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/infrastructure [get]
func (h *QuoteCostHandler) ListInfrastructure(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	entries, err := h.costService.ListInfrastructure(r.Context(), quoteID)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// AddInfrastructure godoc
// @Summary Add infrastructure entry
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param entry body domain.UpsertQuoteInfrastructureRequest true "Infrastructure data"
// @Success 201 {object} domain.QuoteInfrastructureDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/infrastructure [post]
func (h *QuoteCostHandler) AddInfrastructure(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.UpsertQuoteInfrastructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	entry, err := h.costService.AddInfrastructure(r.Context(), quoteID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// UpdateInfrastructure godoc
// @Summary Update infrastructure entry
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param itemId path string true "Infrastructure ID"
// @Param entry body domain.UpsertQuoteInfrastructureRequest true "Infrastructure data"
// @Success 200 {object} domain.QuoteInfrastructureDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/infrastructure/{itemId} [put]
func (h *QuoteCostHandler) UpdateInfrastructure(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	var req domain.UpsertQuoteInfrastructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	entry, err := h.costService.UpdateInfrastructure(r.Context(), quoteID, itemID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// DeleteInfrastructure godoc
// @Summary Delete infrastructure entry
// @Tags Quote costs
// @Param id path string true "Quote ID"
// @Param itemId path string true "Infrastructure ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/infrastructure/{itemId} [delete]
func (h *QuoteCostHandler) DeleteInfrastructure(w http.ResponseWriter, r *http.Request) {
	quoteID, itemID, ok := h.quoteAndItemIDs(w, r)
	if !ok {
		return
	}

	if err := h.costService.DeleteInfrastructure(r.Context(), quoteID, itemID); err != nil {
		h.handleCostError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Parameters

// GetParameters godoc
// @Summary Get quote parameters
// @Tags Quote costs
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.QuoteParametersDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/parameters [get]
func (h *QuoteCostHandler) GetParameters(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	params, err := h.costService.GetParameters(r.Context(), quoteID)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, params)
}

// UpdateParameters godoc
// @Summary Update quote parameters
// @Description Replace the quote's pricing parameters and recompute. The monthly sale price is engine-owned and cannot be set directly.
// @Tags Quote costs
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param parameters body domain.UpdateQuoteParametersRequest true "Parameters"
// @Success 200 {object} domain.QuoteParametersDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/parameters [put]
func (h *QuoteCostHandler) UpdateParameters(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.UpdateQuoteParametersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	params, err := h.costService.UpdateParameters(r.Context(), quoteID, &req)
	if err != nil {
		h.handleCostError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, params)
}

// handleCostError maps service errors to HTTP status codes
func (h *QuoteCostHandler) handleCostError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrQuoteNotFound):
		respondWithError(w, http.StatusNotFound, "Quote not found")
	case errors.Is(err, service.ErrCostItemNotFound):
		respondWithError(w, http.StatusNotFound, "Cost entry not found")
	case errors.Is(err, service.ErrCatalogItemNotFound):
		respondWithError(w, http.StatusNotFound, "Catalog item not found")
	case errors.Is(err, service.ErrInvalidCatalogType):
		respondWithError(w, http.StatusBadRequest, "Catalog item type does not match this selection")
	case errors.Is(err, service.ErrQuoteNotEditable):
		respondWithError(w, http.StatusConflict, "Quote is not editable in its current status")
	default:
		h.logger.Error("quote cost operation failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
