package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// unauthorizedMessage is the only body a rejected request ever sees, so
// clients cannot tell an expired token from a forged one.
const unauthorizedMessage = "Unauthorized"

// AuthMiddleware turns a bearer token into an authenticated user bound to the
// request context. Requests move from unauthenticated to either authenticated
// or rejected; nothing downstream runs for a rejected request.
type AuthMiddleware struct {
	tokens auth.TokenCodec
	users  store.UserStore
	clock  func() time.Time
	logger *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
// A nil clock defaults to time.Now.
func NewAuthMiddleware(
	tokens auth.TokenCodec,
	users store.UserStore,
	clock func() time.Time,
	logger *slog.Logger,
) *AuthMiddleware {
	if tokens == nil {
		panic("tokens cannot be nil") // ALLOW-PANIC
	}
	if users == nil {
		panic("users cannot be nil") // ALLOW-PANIC
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		clock:  clock,
		logger: logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate verifies the bearer token, re-resolves its subject against the
// user store and binds the user to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContextOrDefault(ctx, m.logger)

		// Extract token from Authorization header
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			m.reject(w, r, auth.ErrAuthenticationRequired)
			return
		}

		// Validate token
		claims, err := m.tokens.Verify(ctx, token, m.clock())
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) {
				log.Error("unexpected token verification failure", slog.Any("error", err))
			}
			m.reject(w, r, err)
			return
		}

		// Resolve the subject on every request so deleted users lose access at once
		user, err := m.users.GetByUsername(ctx, claims.Subject)
		if err != nil {
			if store.IsNotFoundError(err) {
				m.reject(w, r, auth.ErrUnknownSubject)
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to authenticate request", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(ctx, user)))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, err error) {
	reason := auth.RejectionReason(err)
	auth.RecordTokenRejection(err)

	logger.FromContextOrDefault(r.Context(), m.logger).Debug("request rejected",
		slog.String("reason", reason),
		slog.String("path", r.URL.Path))

	w.Header().Set("WWW-Authenticate", `Bearer realm="taskmanager"`)
	shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}

	return token, true
}
