package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

// Authenticator is the part of the authentication service the handlers use.
type Authenticator interface {
	Login(ctx context.Context, username, plaintext string, now time.Time) (*auth.LoginResult, error)
	Register(ctx context.Context, username, plaintext string, now time.Time) (*domain.User, error)
}

var _ Authenticator = (*auth.Service)(nil)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService Authenticator
	clock       func() time.Time
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// A nil clock defaults to time.Now.
func NewAuthHandler(authService Authenticator, clock func() time.Time, logger *slog.Logger) *AuthHandler {
	if authService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("authService cannot be nil for AuthHandler")
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		authService: authService,
		clock:       clock,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	if _, err := h.authService.Register(r.Context(), req.Username, req.Password, h.clock()); err != nil {
		HandleAPIError(w, r, err, "Failed to register user")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusCreated, "User registered successfully")
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	result, err := h.authService.Login(r.Context(), req.Username, req.Password, h.clock())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:     result.Token,
		Type:      "Bearer",
		ID:        result.User.ID,
		Username:  result.User.Username,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
