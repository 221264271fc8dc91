package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/service"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// List godoc
// @Summary List quotes
// @Description Get paginated list of quotes with optional filters
// @Tags Quotes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param search query string false "Search by title or client name"
// @Param status query string false "Filter by status" Enums(draft, sent, won, lost)
// @Param clientId query string false "Filter by client ID"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.QuoteDTO}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	search := r.URL.Query().Get("search")
	status := domain.QuoteStatus(r.URL.Query().Get("status"))

	var clientID *uuid.UUID
	if raw := r.URL.Query().Get("clientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid client ID filter")
			return
		}
		clientID = &id
	}

	result, err := h.quoteService.List(r.Context(), page, pageSize, search, status, clientID)
	if err != nil {
		h.logger.Error("failed to list quotes", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list quotes")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Get godoc
// @Summary Get quote
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetByID(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// GetDetail godoc
// @Summary Get quote detail
// @Description Get a quote with its full cost input snapshot and a freshly computed summary
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.QuoteDetailDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/detail [get]
func (h *QuoteHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	detail, err := h.quoteService.GetDetail(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// Create godoc
// @Summary Create quote
// @Description Create a draft quote with parameters seeded from global settings and default catalog items pre-selected
// @Tags Quotes
// @Accept json
// @Produce json
// @Param quote body domain.CreateQuoteRequest true "Quote data"
// @Success 201 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes [post]
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.quoteService.Create(r.Context(), &req)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, quote)
}

// Update godoc
// @Summary Update quote
// @Description Update a quote's title and notes
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param quote body domain.UpdateQuoteRequest true "Quote data"
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.UpdateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.quoteService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Delete godoc
// @Summary Delete quote
// @Tags Quotes
// @Param id path string true "Quote ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	if err := h.quoteService.Delete(r.Context(), id); err != nil {
		h.handleQuoteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Send godoc
// @Summary Send quote
// @Description Recompute totals and mark a draft quote as sent
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/send [post]
func (h *QuoteHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.Send(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Win godoc
// @Summary Mark quote as won
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/win [post]
func (h *QuoteHandler) Win(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.Win(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Lose godoc
// @Summary Mark quote as lost
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param body body domain.LoseQuoteRequest false "Loss reason"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/lose [post]
func (h *QuoteHandler) Lose(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req domain.LoseQuoteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			respondValidationError(w, err)
			return
		}
	}

	quote, err := h.quoteService.Lose(r.Context(), id, req.Reason)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Reopen godoc
// @Summary Reopen quote
// @Description Return a sent or closed quote to draft
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/reopen [post]
func (h *QuoteHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.Reopen(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// GetSummary godoc
// @Summary Get cost summary
// @Description Compute the quote's monthly cost breakdown and sale price without persisting anything
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.CostSummaryDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/summary [get]
func (h *QuoteHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	summary, err := h.quoteService.GetSummary(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetAllocation godoc
// @Summary Get sale price allocation
// @Description Get the per-position sale price split and hourly rates for a quote
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {array} domain.PositionAllocationDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/allocation [get]
func (h *QuoteHandler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	allocations, err := h.quoteService.GetAllocation(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, allocations)
}

// Recalculate godoc
// @Summary Recalculate quote
// @Description Rerun the pricing engine and persist the cached totals
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.CostSummaryDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/recalculate [post]
func (h *QuoteHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	summary, err := h.quoteService.Recalculate(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// ListActivities godoc
// @Summary List quote activities
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Param limit query int false "Max entries" default(50)
// @Success 200 {array} domain.ActivityDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/activities [get]
func (h *QuoteHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	activities, err := h.quoteService.ListActivities(r.Context(), id, limit)
	if err != nil {
		h.handleQuoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, activities)
}

// handleQuoteError maps service errors to HTTP status codes
func (h *QuoteHandler) handleQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrQuoteNotFound):
		respondWithError(w, http.StatusNotFound, "Quote not found")
	case errors.Is(err, service.ErrClientNotFound):
		respondWithError(w, http.StatusNotFound, "Client not found")
	case errors.Is(err, service.ErrInvalidStatusTransition):
		respondWithError(w, http.StatusConflict, "Invalid quote status transition")
	case errors.Is(err, service.ErrQuoteNotEditable):
		respondWithError(w, http.StatusConflict, "Quote is not editable in its current status")
	default:
		h.logger.Error("quote operation failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
