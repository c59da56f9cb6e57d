package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	cdsRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cds_requests_total",
		Help: "Total HTTP requests by method, path, and response status.",
	}, []string{"method", "path", "status"})

	cdsRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cds_request_duration_seconds",
		Help:    "Request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	cdsTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cds_domain_status_total",
		Help: "Lifecycle operation outcomes by resulting domain status.",
	}, []string{"status"})
)

// PrometheusMiddleware returns a Gin middleware that records per-request metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		cdsRequestsTotal.WithLabelValues(method, path, status).Inc()
		cdsRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// MetricsHandler returns a Gin handler that serves Prometheus metrics.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordTransition records the resulting status of a successful lifecycle
// operation.
func RecordTransition(status string) {
	cdsTransitionsTotal.WithLabelValues(status).Inc()
}
