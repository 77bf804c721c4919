package auth

import "github.com/prometheus/client_golang/prometheus"

var (
	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskmanager",
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Login and registration attempts by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	tokenRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskmanager",
			Subsystem: "auth",
			Name:      "token_rejections_total",
			Help:      "Protected requests rejected by the authorization filter, by reason.",
		},
		[]string{"reason"},
	)
)

// Collectors returns the package's metrics for registration with a registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{authAttempts, tokenRejections}
}

// RecordTokenRejection counts a rejected protected request.
func RecordTokenRejection(err error) {
	tokenRejections.WithLabelValues(RejectionReason(err)).Inc()
}
