package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// UnmatchedRoute labels requests that hit no registered route.
const UnmatchedRoute = "unmatched"

// apiBuckets cover a CRUD call on SQLite (a few ms) up to a DynamoDB scan
// behind the report (seconds).
var apiBuckets = []float64{0.002, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// opsRoutes are polled by health checks and scrapers and are left out of the API series.
var opsRoutes = map[string]struct{}{
	"/metrics":      {},
	"/health":       {},
	"/health/live":  {},
	"/health/ready": {},
}

type httpCollectors struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func newHTTPCollectors(reg *prometheus.Registry) httpCollectors {
	hc := httpCollectors{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planejao_http_requests_total",
			Help: "API requests by method, route template and status class.",
		}, []string{"method", "route", "class"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planejao_http_request_duration_seconds",
			Help:    "API request latency by method and route template.",
			Buckets: apiBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planejao_http_requests_in_flight",
			Help: "API requests being served.",
		}),
	}
	reg.MustRegister(hc.requests, hc.latency, hc.inFlight)
	return hc
}

// HTTPMetricsMiddleware records the API traffic on reg, labelled by the gin route
// template. Health and scrape routes are not recorded. A nil reg disables it.
func HTTPMetricsMiddleware(reg *prometheus.Registry) gin.HandlerFunc {
	if reg == nil {
		return func(c *gin.Context) { c.Next() }
	}
	hc := newHTTPCollectors(reg)

	return func(c *gin.Context) {
		if _, ops := opsRoutes[c.FullPath()]; ops {
			c.Next()
			return
		}

		hc.inFlight.Inc()
		defer hc.inFlight.Dec()
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		hc.requests.WithLabelValues(c.Request.Method, route, statusClass(c.Writer.Status())).Inc()
		hc.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
