package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger/logtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestWithLogger returns a request whose context carries a trace ID and a
// capturing logger bound to it, as the trace middleware sets them up.
func requestWithLogger(t *testing.T, traceID string) (*http.Request, *logtest.Buffer) {
	t.Helper()
	log, buf := logtest.New(t)
	if traceID != "" {
		log = log.With(slog.String("trace_id", traceID))
	}
	ctx := logger.WithLogger(WithTraceID(context.Background(), traceID), log)
	req := httptest.NewRequest(http.MethodGet, "/api/tasks/1", nil).WithContext(ctx)
	return req, buf
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req, _ := requestWithLogger(t, "")
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	t.Parallel()

	req, buf := requestWithLogger(t, "")
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, req, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, rec.Code)
	logtest.AssertContains(t, buf, "failed to encode JSON response")
}

func TestRespondWithMessage(t *testing.T) {
	t.Parallel()

	req, _ := requestWithLogger(t, "")
	rec := httptest.NewRecorder()

	RespondWithMessage(rec, req, http.StatusCreated, "User registered successfully")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"User registered successfully"}`, rec.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req, _ := requestWithLogger(t, "trace-123")
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Task not found", body.Error)
	assert.Equal(t, "trace-123", body.TraceID)
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	t.Parallel()

	req, _ := requestWithLogger(t, "")
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusBadRequest, "Invalid request format")

	assert.JSONEq(t, `{"error":"Invalid request format"}`, rec.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		err       error
		wantLevel string
	}{
		{
			name:      "server error logs at error and redacts",
			status:    http.StatusInternalServerError,
			err:       errors.New("dial postgres://app:s3cret@db:5432/tasks: refused"),
			wantLevel: "ERROR",
		},
		{
			name:      "client error logs at debug",
			status:    http.StatusUnauthorized,
			err:       errors.New("Bearer eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJib2IifQ.c2ln rejected"),
			wantLevel: "DEBUG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, buf := requestWithLogger(t, "trace-xyz")
			rec := httptest.NewRecorder()

			RespondWithErrorAndLog(rec, req, tt.status, "Something went wrong", tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotContains(t, rec.Body.String(), tt.err.Error())
			assert.JSONEq(t, `{"error":"Something went wrong","trace_id":"trace-xyz"}`, rec.Body.String())

			entries, err := buf.Entries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0]["level"])
			assert.Equal(t, "trace-xyz", entries[0]["trace_id"])
			assert.Equal(t, 1, strings.Count(buf.String(), `"trace_id"`))

			logtest.AssertNotContains(t, buf, "s3cret")
			logtest.AssertNotContains(t, buf, "eyJhbGci")
		})
	}
}
