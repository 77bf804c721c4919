package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskmanager-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewPedanticRegistry()
	for _, c := range middleware.Collectors() {
		require.NoError(t, registry.Register(c))
	}

	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Get("/metrics-test/{taskID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	for _, id := range []string{"1", "2", "3"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics-test/"+id, nil))
		require.Equal(t, http.StatusAccepted, rr.Code)
	}

	count, err := testutil.GatherAndCount(registry, "taskmanager_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one series regardless of path parameter")

	families, err := registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "taskmanager_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == "/metrics-test/{taskID}" && labels["status"] == "202" {
				found = true
				assert.Equal(t, float64(3), m.GetCounter().GetValue())
			}
		}
	}
	assert.True(t, found)
}
