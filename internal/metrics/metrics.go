package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of the service. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	TestSubmissions  prometheus.Counter
	TestScorePercent prometheus.Histogram
	CatalogCacheHits *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		TestSubmissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "test_submissions_total",
			Help: "Number of saved test attempts",
		}),
		TestScorePercent: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "test_score_percentage",
			Help:    "Overall percentage of saved test attempts",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		CatalogCacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "question_catalog_cache_total",
				Help: "Question catalog lookups by cache outcome",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.RequestCounter, m.RequestDuration, m.TestSubmissions, m.TestScorePercent, m.CatalogCacheHits)
	return m
}

// ObserveSubmission records one saved attempt.
func (m *Metrics) ObserveSubmission(percentage float64) {
	if m == nil {
		return
	}
	m.TestSubmissions.Inc()
	m.TestScorePercent.Observe(percentage)
}

// ObserveCatalogLookup records a catalog read as "hit" or "miss".
func (m *Metrics) ObserveCatalogLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CatalogCacheHits.WithLabelValues("hit").Inc()
		return
	}
	m.CatalogCacheHits.WithLabelValues("miss").Inc()
}

// Middleware counts requests by route pattern, not raw path, so IDs do not
// blow up label cardinality.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}
		}

		endpoint := c.Route().Path
		m.RequestCounter.WithLabelValues(c.Method(), endpoint, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(c.Method(), endpoint).Observe(time.Since(start).Seconds())
		return err
	}
}
