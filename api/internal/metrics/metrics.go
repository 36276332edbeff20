package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classroom_diag",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"route", "code"})

	stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "classroom_diag",
		Name:      "pipeline_stage_seconds",
		Help:      "Duration of analyze pipeline stages.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
	}, []string{"stage", "outcome"})
)

func init() {
	prometheus.MustRegister(httpRequests, stageDuration)
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

func ObserveRequest(route string, code int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// ObserveStage records one pipeline stage; outcome is "ok" or an apperr kind.
func ObserveStage(stage, outcome string, d time.Duration) {
	stageDuration.WithLabelValues(stage, outcome).Observe(d.Seconds())
}
