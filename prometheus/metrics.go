package prometheus

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"salarypay-service/pkg/config"
)

var (
	// Session metrics
	LoginCounter          *prometheus.CounterVec
	ImpersonationCounter  *prometheus.CounterVec
	ReadOnlyDeniedCounter prometheus.Counter

	// Commitment lifecycle metrics
	CommitmentCreatedCounter   prometheus.Counter
	CommitmentAmendedCounter   prometheus.Counter
	CommitmentCancelledCounter prometheus.Counter
	LimitRejectionCounter      prometheus.Counter

	// Payroll metrics
	EmployeeAddedCounter prometheus.Counter

	// Request metrics
	RequestDurationHistogram *prometheus.HistogramVec
	APIRequestCounter        *prometheus.CounterVec
	APIErrorCounter          *prometheus.CounterVec

	// Namespace prefix for metrics
	namespace string
)

// InitMetrics initializes all Prometheus metrics
func InitMetrics(cfg *config.Config) {
	namespace = cfg.Metrics.Prefix

	// Session metrics
	LoginCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of logins",
		},
		[]string{"role"},
	)

	ImpersonationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "impersonations_total",
			Help:      "Total number of impersonation overlay changes",
		},
		[]string{"action"},
	)

	ReadOnlyDeniedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "read_only_denied_total",
		Help:      "Mutating requests rejected because the session is impersonating",
	})

	// Commitment lifecycle metrics
	CommitmentCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commitments_created_total",
		Help:      "Total number of commitments created",
	})

	CommitmentAmendedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commitments_amended_total",
		Help:      "Total number of commitment amount amendments",
	})

	CommitmentCancelledCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commitments_cancelled_total",
		Help:      "Total number of commitments cancelled",
	})

	LimitRejectionCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "limit_rejections_total",
		Help:      "Commitment changes rejected by deduction-limit enforcement",
	})

	// Payroll metrics
	EmployeeAddedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_added_total",
		Help:      "Total number of payroll records added",
	})

	// Request metrics
	RequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	APIRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path"},
	)

	APIErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors",
		},
		[]string{"method", "path", "status"},
	)
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Track API request count
			APIRequestCounter.With(prometheus.Labels{
				"method": c.Request().Method,
				"path":   c.Path(),
			}).Inc()

			// Process the request
			err := next(c)

			// Track request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			RequestDurationHistogram.With(prometheus.Labels{
				"method": c.Request().Method,
				"path":   c.Path(),
				"status": status,
			}).Observe(duration)

			// Track errors
			if c.Response().Status >= 400 {
				APIErrorCounter.With(prometheus.Labels{
					"method": c.Request().Method,
					"path":   c.Path(),
					"status": status,
				}).Inc()
			}

			return err
		}
	}
}

// HandlerFunc returns a HTTP handler for metrics endpoint
func HandlerFunc() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
