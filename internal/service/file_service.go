package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/mapper"
	"github.com/centinela-seguridad/cpq-api/internal/repository"
	"github.com/centinela-seguridad/cpq-api/internal/storage"
)

// FileService handles quote attachment uploads and downloads
type FileService struct {
	fileRepo      *repository.FileRepository
	quoteRepo     *repository.QuoteRepository
	storage       storage.Storage
	maxUploadSize int64
	logger        *zap.Logger
}

func NewFileService(
	fileRepo *repository.FileRepository,
	quoteRepo *repository.QuoteRepository,
	store storage.Storage,
	maxUploadSizeMB int64,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		fileRepo:      fileRepo,
		quoteRepo:     quoteRepo,
		storage:       store,
		maxUploadSize: maxUploadSizeMB * 1024 * 1024,
		logger:        logger,
	}
}

// MaxUploadSize returns the upload limit in bytes
func (s *FileService) MaxUploadSize() int64 {
	return s.maxUploadSize
}

// Upload stores an attachment for a quote. The reader is capped at the
// configured limit; oversized uploads are removed again.
func (s *FileService) Upload(ctx context.Context, quoteID uuid.UUID, filename, contentType string, data io.Reader) (*domain.FileDTO, error) {
	if _, err := s.quoteRepo.GetByID(ctx, quoteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}

	limited := io.LimitReader(data, s.maxUploadSize+1)
	storagePath, size, err := s.storage.Upload(ctx, quoteID.String(), filename, contentType, limited)
	if err != nil {
		return nil, fmt.Errorf("storing file: %w", err)
	}
	if size > s.maxUploadSize {
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("Failed to remove oversized upload",
				zap.String("storagePath", storagePath),
				zap.Error(delErr))
		}
		return nil, ErrFileTooLarge
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file := &domain.File{
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		StoragePath: storagePath,
		QuoteID:     &quoteID,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("Failed to remove orphaned upload",
				zap.String("storagePath", storagePath),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("saving file record: %w", err)
	}

	s.logger.Info("File uploaded",
		zap.String("fileId", file.ID.String()),
		zap.String("quoteId", quoteID.String()),
		zap.String("filename", filename),
		zap.Int64("size", size))

	dto := mapper.ToFileDTO(file)
	return &dto, nil
}

// Download returns the file metadata and a reader over its content.
// The caller closes the reader.
func (s *FileService) Download(ctx context.Context, id uuid.UUID) (*domain.FileDTO, io.ReadCloser, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("fetching file: %w", err)
	}

	reader, err := s.storage.Download(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}

	dto := mapper.ToFileDTO(file)
	return &dto, reader, nil
}

func (s *FileService) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("fetching file: %w", err)
	}

	if err := s.storage.Delete(ctx, file.StoragePath); err != nil {
		return fmt.Errorf("deleting stored file: %w", err)
	}
	if err := s.fileRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting file record: %w", err)
	}

	s.logger.Info("File deleted",
		zap.String("fileId", id.String()),
		zap.String("filename", file.Filename))
	return nil
}

func (s *FileService) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.FileDTO, error) {
	if _, err := s.quoteRepo.GetByID(ctx, quoteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("fetching quote: %w", err)
	}

	files, err := s.fileRepo.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	dtos := make([]domain.FileDTO, 0, len(files))
	for i := range files {
		dtos = append(dtos, mapper.ToFileDTO(&files[i]))
	}
	return dtos, nil
}
