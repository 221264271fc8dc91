package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/auth"
	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/mapper"
	"github.com/centinela-seguridad/cpq-api/internal/pricing"
	"github.com/centinela-seguridad/cpq-api/internal/repository"
)

// quoteEditable reports whether a quote's cost inputs may still be
// mutated. Closed quotes (won or lost) are frozen.
func quoteEditable(status domain.QuoteStatus) bool {
	return status == domain.QuoteStatusDraft || status == domain.QuoteStatusSent
}

// QuoteService handles quote lifecycle and orchestrates the pricing
// engine over the persisted cost inputs.
type QuoteService struct {
	quoteRepo    *repository.QuoteRepository
	clientRepo   *repository.ClientRepository
	costRepo     *repository.QuoteCostRepository
	positionRepo *repository.PositionRepository
	catalogRepo  *repository.CatalogRepository
	settingsRepo *repository.SettingsRepository
	activityRepo *repository.ActivityRepository
	recalc       *Recalculator
	logger       *zap.Logger
}

func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	clientRepo *repository.ClientRepository,
	costRepo *repository.QuoteCostRepository,
	positionRepo *repository.PositionRepository,
	catalogRepo *repository.CatalogRepository,
	settingsRepo *repository.SettingsRepository,
	activityRepo *repository.ActivityRepository,
	recalc *Recalculator,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		clientRepo:   clientRepo,
		costRepo:     costRepo,
		positionRepo: positionRepo,
		catalogRepo:  catalogRepo,
		settingsRepo: settingsRepo,
		activityRepo: activityRepo,
		recalc:       recalc,
		logger:       logger,
	}
}

// Create creates a draft quote for a client, seeds its parameters from
// the global settings and pre-populates the default catalog cost items.
func (s *QuoteService) Create(ctx context.Context, req *domain.CreateQuoteRequest) (*domain.QuoteDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("fetching client: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "CLP"
	}

	quote := &domain.Quote{
		Title:      req.Title,
		ClientID:   client.ID,
		ClientName: client.Name,
		Status:     domain.QuoteStatusDraft,
		Currency:   currency,
		Notes:      req.Notes,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		quote.OwnerID = userCtx.UserID
		quote.OwnerName = userCtx.DisplayName
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global settings: %w", err)
	}
	params := &domain.QuoteParameters{
		QuoteID:               quote.ID,
		MonthlyHoursStandard:  settings.MonthlyHoursStandard,
		AvgStayMonths:         settings.AvgStayMonths,
		UniformChangesPerYear: settings.UniformChangesPerYear,
		MarginPct:             settings.MarginPct,
		FinancialRatePct:      settings.FinancialRatePct,
		PolicyRatePct:         settings.PolicyRatePct,
		PolicyAdminRatePct:    settings.PolicyAdminRatePct,
		PolicyContractPct:     settings.PolicyContractPct,
	}
	if err := s.costRepo.CreateParameters(ctx, params); err != nil {
		return nil, fmt.Errorf("creating quote parameters: %w", err)
	}

	catalog, err := s.catalogRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	defaults := pricing.ApplyCatalogDefaults(nil, catalog, quote.ID)
	if err := s.costRepo.CreateCostItems(ctx, defaults); err != nil {
		return nil, fmt.Errorf("seeding default cost items: %w", err)
	}

	s.recordActivity(ctx, quote.ID, "Cotización creada", quote.Title)
	s.logger.Info("Quote created",
		zap.String("quoteId", quote.ID.String()),
		zap.String("clientId", client.ID.String()),
		zap.Int("seededItems", len(defaults)))

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// GetDetail returns the quote with its full input snapshot and a
// freshly computed cost summary.
func (s *QuoteService) GetDetail(ctx context.Context, id uuid.UUID) (*domain.QuoteDetailDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}

	input, err := s.recalc.LoadInput(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := pricing.ComputeCostSummary(*input)

	detail := &domain.QuoteDetailDTO{
		Quote:      mapper.ToQuoteDTO(quote),
		Parameters: mapper.ToQuoteParametersDTO(&input.Parameters),
		Summary:    mapper.ToCostSummaryDTO(&summary),
	}
	for i := range input.CostItems {
		detail.CostItems = append(detail.CostItems, mapper.ToQuoteCostItemDTO(&input.CostItems[i]))
	}
	for i := range input.Uniforms {
		detail.Uniforms = append(detail.Uniforms, mapper.ToUniformDTO(&input.Uniforms[i]))
	}
	for i := range input.Exams {
		detail.Exams = append(detail.Exams, mapper.ToExamDTO(&input.Exams[i]))
	}
	for i := range input.Meals {
		detail.Meals = append(detail.Meals, mapper.ToQuoteMealDTO(&input.Meals[i]))
	}
	for i := range input.Vehicles {
		detail.Vehicles = append(detail.Vehicles, mapper.ToQuoteVehicleDTO(&input.Vehicles[i]))
	}
	for i := range input.Infrastructure {
		detail.Infrastructure = append(detail.Infrastructure, mapper.ToQuoteInfrastructureDTO(&input.Infrastructure[i]))
	}
	for i := range input.Positions {
		detail.Positions = append(detail.Positions, mapper.ToPositionDTO(&input.Positions[i]))
	}
	return detail, nil
}

func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateQuoteRequest) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}

	quote.Title = req.Title
	quote.Notes = req.Notes

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("updating quote: %w", err)
	}

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("fetching quote: %w", err)
	}

	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	s.logger.Info("Quote deleted",
		zap.String("quoteId", id.String()),
		zap.String("title", quote.Title))
	return nil
}

func (s *QuoteService) List(ctx context.Context, page, pageSize int, search string, status domain.QuoteStatus, clientID *uuid.UUID) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePaging(page, pageSize)

	quotes, total, err := s.quoteRepo.List(ctx, page, pageSize, search, status, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	dtos := make([]domain.QuoteDTO, 0, len(quotes))
	for i := range quotes {
		dtos = append(dtos, mapper.ToQuoteDTO(&quotes[i]))
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// Send marks a draft quote as sent to the client. The totals are
// recomputed first so the sent quote carries current numbers.
func (s *QuoteService) Send(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}
	if quote.Status != domain.QuoteStatusDraft {
		return nil, ErrInvalidStatusTransition
	}

	if _, err := s.recalc.Recalculate(ctx, id); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote, err = s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reloading quote: %w", err)
	}
	quote.Status = domain.QuoteStatusSent
	quote.SentAt = &now
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("updating quote status: %w", err)
	}

	s.recordActivity(ctx, id, "Cotización enviada", quote.Title)
	s.logger.Info("Quote sent", zap.String("quoteId", id.String()))

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// Win marks a sent quote as won
func (s *QuoteService) Win(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}
	if quote.Status != domain.QuoteStatusSent {
		return nil, ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	quote.Status = domain.QuoteStatusWon
	quote.ClosedAt = &now
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("updating quote status: %w", err)
	}

	s.recordActivity(ctx, id, "Cotización ganada", quote.Title)
	s.logger.Info("Quote won", zap.String("quoteId", id.String()))

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// Lose marks a draft or sent quote as lost with an optional reason
func (s *QuoteService) Lose(ctx context.Context, id uuid.UUID, reason string) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}
	if !quoteEditable(quote.Status) {
		return nil, ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	quote.Status = domain.QuoteStatusLost
	quote.ClosedAt = &now
	quote.LostReason = reason
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("updating quote status: %w", err)
	}

	s.recordActivity(ctx, id, "Cotización perdida", reason)
	s.logger.Info("Quote lost",
		zap.String("quoteId", id.String()),
		zap.String("reason", reason))

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// Reopen returns a sent or closed quote to draft so its inputs can be
// edited again. The sent/closed stamps and lost reason are cleared.
func (s *QuoteService) Reopen(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}
	if quote.Status == domain.QuoteStatusDraft {
		return nil, ErrInvalidStatusTransition
	}

	quote.Status = domain.QuoteStatusDraft
	quote.SentAt = nil
	quote.ClosedAt = nil
	quote.LostReason = ""
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("updating quote status: %w", err)
	}

	s.recordActivity(ctx, id, "Cotización reabierta", quote.Title)
	s.logger.Info("Quote reopened", zap.String("quoteId", id.String()))

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// GetSummary computes the current cost summary without persisting
// anything.
func (s *QuoteService) GetSummary(ctx context.Context, id uuid.UUID) (*domain.CostSummaryDTO, error) {
	input, err := s.recalc.LoadInput(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := pricing.ComputeCostSummary(*input)
	dto := mapper.ToCostSummaryDTO(&summary)
	return &dto, nil
}

// GetAllocation returns the per-position sale price split for a quote
func (s *QuoteService) GetAllocation(ctx context.Context, id uuid.UUID) ([]domain.PositionAllocationDTO, error) {
	summary, err := s.GetSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	if summary.Allocations == nil {
		return []domain.PositionAllocationDTO{}, nil
	}
	return summary.Allocations, nil
}

// Recalculate reruns the engine and persists the cached totals
func (s *QuoteService) Recalculate(ctx context.Context, id uuid.UUID) (*domain.CostSummaryDTO, error) {
	summary, err := s.recalc.Recalculate(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToCostSummaryDTO(summary)
	return &dto, nil
}

// ListActivities returns the recent activity log for a quote
func (s *QuoteService) ListActivities(ctx context.Context, quoteID uuid.UUID, limit int) ([]domain.ActivityDTO, error) {
	if _, err := s.quoteRepo.GetByID(ctx, quoteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}

	activities, err := s.activityRepo.ListByTarget(ctx, domain.ActivityTargetQuote, quoteID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	dtos := make([]domain.ActivityDTO, 0, len(activities))
	for i := range activities {
		dtos = append(dtos, mapper.ToActivityDTO(&activities[i]))
	}
	return dtos, nil
}

func (s *QuoteService) recordActivity(ctx context.Context, quoteID uuid.UUID, title, body string) {
	activity := &domain.Activity{
		TargetType: domain.ActivityTargetQuote,
		TargetID:   quoteID,
		Title:      title,
		Body:       body,
		OccurredAt: time.Now().UTC(),
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		activity.CreatorID = userCtx.UserID
		activity.CreatorName = userCtx.DisplayName
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Warn("Failed to record activity",
			zap.String("quoteId", quoteID.String()),
			zap.Error(err))
	}
}
