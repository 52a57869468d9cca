package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avolkov/minibank/internal/adapter/http/dto"
	"github.com/avolkov/minibank/internal/domain"
	"github.com/avolkov/minibank/internal/infrastructure/auth"
	"github.com/avolkov/minibank/internal/infrastructure/metrics"
	"github.com/avolkov/minibank/internal/usecase"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
}

var _ AuthService = (*usecase.AuthUseCase)(nil)

// AuthHandler handles registration and login.
type AuthHandler struct {
	authUC     AuthService
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUC AuthService, jwtManager *auth.JWTManager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		authUC:     authUC,
		jwtManager: jwtManager,
		metrics:    m,
	}
}

// Register creates a new user and issues a session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.authUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "registration failed", err.Error())
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", "")
		return
	}

	if h.metrics != nil {
		h.metrics.UsersRegistered.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{AccessToken: token})
}

// Login verifies credentials and issues a session token. Failures are
// reported uniformly so the response does not reveal whether the email
// or the password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.authUC.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		if h.metrics != nil {
			h.metrics.AuthAttempts.WithLabelValues("failure").Inc()
		}
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", "")
		return
	}

	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues("success").Inc()
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{AccessToken: token})
}
