package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// dummyPassword is hashed once at construction. Comparing against its hash
// when a username is unknown keeps both login failure paths equally slow.
const dummyPassword = "taskmanager-timing-equalizer"

// CredentialVerifier checks a username/password pair against the identity store.
// It never writes to the store.
type CredentialVerifier struct {
	users     store.UserStore
	hasher    PasswordHasher
	dummyHash string
	logger    *slog.Logger
}

// NewCredentialVerifier creates a new CredentialVerifier.
// It returns an error if any of the required dependencies are nil.
func NewCredentialVerifier(
	users store.UserStore,
	hasher PasswordHasher,
	logger *slog.Logger,
) (*CredentialVerifier, error) {
	if users == nil {
		return nil, errors.New("users cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare credential verifier: %w", err)
	}

	return &CredentialVerifier{
		users:     users,
		hasher:    hasher,
		dummyHash: dummyHash,
		logger:    logger.With(slog.String("component", "credential_verifier")),
	}, nil
}

// Verify returns the user identified by username if plaintext is their password.
//
// An unknown username and a wrong password both yield ErrInvalidCredentials.
// Any other store failure is returned wrapped and must be treated as a server
// error, never as a successful authentication.
func (v *CredentialVerifier) Verify(
	ctx context.Context,
	username, plaintext string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	user, err := v.users.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			v.hasher.Verify(plaintext, v.dummyHash)
			log.Debug("credential check failed", slog.String("reason", "unknown_user"))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for credential check", slog.Any("error", err))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !v.hasher.Verify(plaintext, user.HashedPassword) {
		log.Debug("credential check failed",
			slog.String("reason", "password_mismatch"),
			slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
