package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.UserSummary
}

// Service orchestrates login and registration.
type Service struct {
	users    store.UserStore
	hasher   PasswordHasher
	verifier *CredentialVerifier
	tokens   TokenCodec
	logger   *slog.Logger
}

// NewService creates a new authentication Service.
// It returns an error if any of the required dependencies are nil.
func NewService(
	users store.UserStore,
	hasher PasswordHasher,
	verifier *CredentialVerifier,
	tokens TokenCodec,
	logger *slog.Logger,
) (*Service, error) {
	if users == nil {
		return nil, errors.New("users cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("hasher cannot be nil")
	}
	if verifier == nil {
		return nil, errors.New("verifier cannot be nil")
	}
	if tokens == nil {
		return nil, errors.New("tokens cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Login verifies credentials and issues a token for the user.
func (s *Service) Login(
	ctx context.Context,
	username, plaintext string,
	now time.Time,
) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.verifier.Verify(ctx, username, plaintext)
	if err != nil {
		authAttempts.WithLabelValues("login", outcomeLabel(err)).Inc()
		return nil, err
	}

	issued, err := s.tokens.Issue(ctx, user.Username, now)
	if err != nil {
		authAttempts.WithLabelValues("login", "error").Inc()
		log.Error("failed to issue token", slog.Any("error", err), slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	authAttempts.WithLabelValues("login", "success").Inc()
	log.Info("user logged in", slog.Int64("user_id", user.ID))

	return &LoginResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      user.Summary(),
	}, nil
}

// Register creates a new account. It does not issue a token; the client logs
// in separately.
func (s *Service) Register(
	ctx context.Context,
	username, plaintext string,
	now time.Time,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePassword(plaintext); err != nil {
		authAttempts.WithLabelValues("register", "invalid").Inc()
		return nil, err
	}

	// Check for an existing account
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		authAttempts.WithLabelValues("register", "error").Inc()
		log.Error("failed to check username availability", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if exists {
		authAttempts.WithLabelValues("register", "username_taken").Inc()
		return nil, ErrUsernameTaken
	}

	// Hash password
	hashed, err := s.hasher.Hash(plaintext)
	if err != nil {
		authAttempts.WithLabelValues("register", "error").Inc()
		log.Error("failed to hash password", slog.Any("error", err))
		return nil, err
	}

	// Create user
	user, err := domain.NewUser(username, hashed, now)
	if err != nil {
		authAttempts.WithLabelValues("register", "invalid").Inc()
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Another request may have claimed the name since the existence check
		if store.IsDuplicateError(err) {
			authAttempts.WithLabelValues("register", "username_taken").Inc()
			return nil, ErrUsernameTaken
		}
		authAttempts.WithLabelValues("register", "error").Inc()
		log.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	authAttempts.WithLabelValues("register", "success").Inc()
	log.Info("user registered", slog.Int64("user_id", user.ID))

	return user, nil
}

func outcomeLabel(err error) string {
	if errors.Is(err, ErrInvalidCredentials) {
		return "invalid_credentials"
	}
	return "error"
}
