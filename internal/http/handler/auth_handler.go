package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/auth"
)

// AuthUserResponse describes the authenticated caller
type AuthUserResponse struct {
	UserID      string   `json:"userId"`
	DisplayName string   `json:"displayName"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles"`
	CanEdit     bool     `json:"canEdit"`
	IsAdmin     bool     `json:"isAdmin"`
}

type AuthHandler struct {
	logger *zap.Logger
}

func NewAuthHandler(logger *zap.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// Me godoc
// @Summary Get current authenticated user
// @Description Returns the caller's identity, roles and effective capabilities
// @Tags Auth
// @Produce json
// @Success 200 {object} handler.AuthUserResponse
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No authenticated user")
		return
	}

	respondJSON(w, http.StatusOK, AuthUserResponse{
		UserID:      userCtx.UserID,
		DisplayName: userCtx.DisplayName,
		Email:       userCtx.Email,
		Roles:       userCtx.RolesAsStrings(),
		CanEdit:     userCtx.CanEditQuotes(),
		IsAdmin:     userCtx.IsAdmin(),
	})
}
