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

// PositionService handles quote staffing lines. Position mutations
// change the allocation weights, so every write recomputes the quote.
type PositionService struct {
	quoteRepo    *repository.QuoteRepository
	positionRepo *repository.PositionRepository
	recalc       *Recalculator
	logger       *zap.Logger
}

func NewPositionService(
	quoteRepo *repository.QuoteRepository,
	positionRepo *repository.PositionRepository,
	recalc *Recalculator,
	logger *zap.Logger,
) *PositionService {
	return &PositionService{
		quoteRepo:    quoteRepo,
		positionRepo: positionRepo,
		recalc:       recalc,
		logger:       logger,
	}
}

func (s *PositionService) ensureEditable(ctx context.Context, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("fetching quote: %w", err)
	}
	if !quoteEditable(quote.Status) {
		return ErrQuoteNotEditable
	}
	return nil
}

func (s *PositionService) Create(ctx context.Context, quoteID uuid.UUID, req *domain.UpsertPositionRequest) (*domain.PositionDTO, error) {
	if err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	position := &domain.Position{
		QuoteID:             quoteID,
		Name:                req.Name,
		NumGuards:           req.NumGuards,
		NumPuestos:          req.NumPuestos,
		MonthlyPositionCost: req.MonthlyPositionCost,
		DisplayOrder:        req.DisplayOrder,
	}
	if err := s.positionRepo.Create(ctx, position); err != nil {
		return nil, fmt.Errorf("creating position: %w", err)
	}

	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	position, err := s.positionRepo.GetByID(ctx, position.ID)
	if err != nil {
		return nil, fmt.Errorf("reloading position: %w", err)
	}

	dto := mapper.ToPositionDTO(position)
	return &dto, nil
}

func (s *PositionService) Update(ctx context.Context, quoteID, positionID uuid.UUID, req *domain.UpsertPositionRequest) (*domain.PositionDTO, error) {
	if err := s.ensureEditable(ctx, quoteID); err != nil {
		return nil, err
	}

	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, fmt.Errorf("fetching position: %w", err)
	}
	if position.QuoteID != quoteID {
		return nil, ErrPositionNotFound
	}

	position.Name = req.Name
	position.NumGuards = req.NumGuards
	position.NumPuestos = req.NumPuestos
	position.MonthlyPositionCost = req.MonthlyPositionCost
	position.DisplayOrder = req.DisplayOrder

	if err := s.positionRepo.Update(ctx, position); err != nil {
		return nil, fmt.Errorf("updating position: %w", err)
	}

	if _, err := s.recalc.Recalculate(ctx, quoteID); err != nil {
		return nil, err
	}

	position, err = s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("reloading position: %w", err)
	}

	dto := mapper.ToPositionDTO(position)
	return &dto, nil
}

func (s *PositionService) Delete(ctx context.Context, quoteID, positionID uuid.UUID) error {
	if err := s.ensureEditable(ctx, quoteID); err != nil {
		return err
	}

	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPositionNotFound
		}
		return fmt.Errorf("fetching position: %w", err)
	}
	if position.QuoteID != quoteID {
		return ErrPositionNotFound
	}

	if err := s.positionRepo.Delete(ctx, positionID); err != nil {
		return fmt.Errorf("deleting position: %w", err)
	}

	_, err = s.recalc.Recalculate(ctx, quoteID)
	return err
}

func (s *PositionService) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.PositionDTO, error) {
	if _, err := s.quoteRepo.GetByID(ctx, quoteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}

	positions, err := s.positionRepo.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("listing positions: %w", err)
	}

	dtos := make([]domain.PositionDTO, 0, len(positions))
	for i := range positions {
		dtos = append(dtos, mapper.ToPositionDTO(&positions[i]))
	}
	return dtos, nil
}
