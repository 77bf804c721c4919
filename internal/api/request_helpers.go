package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// requireUser returns the authenticated user placed in the context by the
// auth middleware. It writes a 401 and returns false if there is none.
func requireUser(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*domain.User, bool) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		log.Warn("authenticated user not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return nil, false
	}
	return user, true
}

// requireUserAndPathID is a composite helper that extracts both the user from
// context and an ID from the path parameters. It writes an error response if
// either extraction fails.
func requireUserAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (*domain.User, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	user, ok := requireUser(w, r, log)
	if !ok {
		return nil, 0, false
	}

	id, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return nil, 0, false
	}

	return user, id, true
}

// decodeAndValidate parses the JSON body into v and runs struct validation,
// writing a 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any, log *slog.Logger) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		log.Debug("invalid request body", slog.Any("error", err))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}

	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}

	return true
}
