package server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"noteful/internal/database"
)

type metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
	noteOperations  *prometheus.CounterVec
}

func newMetrics(db database.Service) *metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if db != nil && db.DB() != nil {
		registry.MustRegister(collectors.NewDBStatsCollector(db.DB(), "noteful"))
	}

	factory := promauto.With(registry)
	return &metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "noteful_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "noteful_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		activeRequests: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "noteful_http_active_requests",
				Help: "Current number of active HTTP requests",
			},
		),
		noteOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "noteful_note_operations_total",
				Help: "Total number of successful note writes",
			},
			[]string{"operation"}, // create, update, delete
		),
	}
}

// middleware records every request. Errors are rendered here so the
// recorded status is the one the client sees.
func (m *metrics) middleware(c *fiber.Ctx) error {
	start := time.Now()
	m.activeRequests.Inc()
	defer m.activeRequests.Dec()

	if err := c.Next(); err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	method := utils.CopyString(c.Method())
	route := c.Route().Path
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().StatusCode())).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	return nil
}

func (m *metrics) handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
