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
	"github.com/centinela-seguridad/cpq-api/internal/repository"
)

// ClientService handles client business logic
type ClientService struct {
	clientRepo   *repository.ClientRepository
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.ClientDTO, error) {
	existing, err := s.clientRepo.GetByRUT(ctx, req.RUT)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking RUT uniqueness: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateRUT
	}

	status := req.Status
	if status == "" {
		status = domain.ClientStatusActive
	}

	client := &domain.Client{
		Name:          req.Name,
		RUT:           req.RUT,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		Status:        status,
		Industries:    req.Industries,
		Notes:         req.Notes,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	s.recordActivity(ctx, client.ID, "Cliente creado", client.Name)
	s.logger.Info("Client created",
		zap.String("clientId", client.ID.String()),
		zap.String("rut", client.RUT))

	dto := mapper.ToClientDTO(client, 0)
	return &dto, nil
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClientDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("fetching client: %w", err)
	}

	activeQuotes, err := s.clientRepo.GetActiveQuotesCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("counting active quotes: %w", err)
	}

	dto := mapper.ToClientDTO(client, activeQuotes)
	return &dto, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.ClientDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("fetching client: %w", err)
	}

	if req.RUT != client.RUT {
		existing, err := s.clientRepo.GetByRUT(ctx, req.RUT)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("checking RUT uniqueness: %w", err)
		}
		if existing != nil {
			return nil, ErrDuplicateRUT
		}
	}

	client.Name = req.Name
	client.RUT = req.RUT
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address
	client.City = req.City
	client.ContactPerson = req.ContactPerson
	client.ContactEmail = req.ContactEmail
	if req.Status != "" {
		client.Status = req.Status
	}
	client.Industries = req.Industries
	client.Notes = req.Notes

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	s.recordActivity(ctx, client.ID, "Cliente actualizado", client.Name)

	activeQuotes, err := s.clientRepo.GetActiveQuotesCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("counting active quotes: %w", err)
	}

	dto := mapper.ToClientDTO(client, activeQuotes)
	return &dto, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("fetching client: %w", err)
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	s.logger.Info("Client deleted",
		zap.String("clientId", id.String()),
		zap.String("name", client.Name))
	return nil
}

func (s *ClientService) List(ctx context.Context, page, pageSize int, search string, status domain.ClientStatus) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePaging(page, pageSize)

	clients, total, err := s.clientRepo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	dtos := make([]domain.ClientDTO, 0, len(clients))
	for i := range clients {
		dtos = append(dtos, mapper.ToClientDTO(&clients[i], 0))
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// ListActivities returns the recent activity log for a client
func (s *ClientService) ListActivities(ctx context.Context, clientID uuid.UUID, limit int) ([]domain.ActivityDTO, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("fetching client: %w", err)
	}

	activities, err := s.activityRepo.ListByTarget(ctx, domain.ActivityTargetClient, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	dtos := make([]domain.ActivityDTO, 0, len(activities))
	for i := range activities {
		dtos = append(dtos, mapper.ToActivityDTO(&activities[i]))
	}
	return dtos, nil
}

func (s *ClientService) recordActivity(ctx context.Context, clientID uuid.UUID, title, body string) {
	activity := &domain.Activity{
		TargetType: domain.ActivityTargetClient,
		TargetID:   clientID,
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
			zap.String("clientId", clientID.String()),
			zap.Error(err))
	}
}
