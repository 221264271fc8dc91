package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/service"
)

type FileHandler struct {
	fileService *service.FileService
	logger      *zap.Logger
}

func NewFileHandler(fileService *service.FileService, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// List godoc
// @Summary List quote attachments
// @Tags Files
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {array} domain.FileDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/files [get]
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	files, err := h.fileService.ListByQuote(r.Context(), quoteID)
	if err != nil {
		h.handleFileError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, files)
}

// Upload godoc
// @Summary Upload quote attachment
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Quote ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} domain.FileDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/files [post]
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	maxSize := h.fileService.MaxUploadSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large: maximum size is %dMB", maxSize/(1024*1024)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	fileDTO, err := h.fileService.Upload(r.Context(), quoteID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.handleFileError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, fileDTO)
}

// Download godoc
// @Summary Download quote attachment
// @Tags Files
// @Produce application/octet-stream
// @Param id path string true "Quote ID"
// @Param fileId path string true "File ID"
// @Success 200
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/files/{fileId}/download [get]
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileID, err := parseUUIDParam(r, "fileId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID")
		return
	}

	fileDTO, reader, err := h.fileService.Download(r.Context(), fileID)
	if err != nil {
		h.handleFileError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Disposition", "attachment; filename=\""+fileDTO.Filename+"\"")
	contentType := fileDTO.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)

	_, _ = io.Copy(w, reader)
}

// Delete godoc
// @Summary Delete quote attachment
// @Tags Files
// @Param id path string true "Quote ID"
// @Param fileId path string true "File ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/files/{fileId} [delete]
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fileID, err := parseUUIDParam(r, "fileId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID")
		return
	}

	if err := h.fileService.Delete(r.Context(), fileID); err != nil {
		h.handleFileError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleFileError maps service errors to HTTP status codes
func (h *FileHandler) handleFileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrQuoteNotFound):
		respondWithError(w, http.StatusNotFound, "Quote not found")
	case errors.Is(err, service.ErrFileNotFound):
		respondWithError(w, http.StatusNotFound, "File not found")
	case errors.Is(err, service.ErrFileTooLarge):
		respondWithError(w, http.StatusRequestEntityTooLarge, "File exceeds the maximum upload size")
	default:
		h.logger.Error("file operation failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
