package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service collectors
type Metrics struct {
	RequestCounter     *prometheus.CounterVec
	RequestLatency     *prometheus.HistogramVec
	StockMovements     *prometheus.CounterVec
	RequestTransitions *prometheus.CounterVec
	LowStockItems      prometheus.Gauge
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supply_service_requests_total",
				Help: "Total number of HTTP requests to the supply service",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "supply_service_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		StockMovements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supply_stock_movements_total",
				Help: "Units moved in or out of stock",
			},
			[]string{"type"},
		),
		RequestTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supply_stock_request_transitions_total",
				Help: "Stock request status transitions",
			},
			[]string{"status"},
		),
		LowStockItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "supply_low_stock_items",
				Help: "Number of items at or below their minimum quantity",
			},
		),
	}

	reg.MustRegister(
		m.RequestCounter,
		m.RequestLatency,
		m.StockMovements,
		m.RequestTransitions,
		m.LowStockItems,
	)
	return m
}

// ObserveMovement counts units of an IN/OUT movement. Safe on nil.
func (m *Metrics) ObserveMovement(txType string, quantity int) {
	if m == nil {
		return
	}
	m.StockMovements.WithLabelValues(txType).Add(float64(quantity))
}

// ObserveTransition counts a request entering status. Safe on nil.
func (m *Metrics) ObserveTransition(status string) {
	if m == nil {
		return
	}
	m.RequestTransitions.WithLabelValues(status).Inc()
}

// SetLowStock updates the low stock gauge. Safe on nil.
func (m *Metrics) SetLowStock(n int) {
	if m == nil {
		return
	}
	m.LowStockItems.Set(float64(n))
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency per route template
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		m.RequestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
		m.RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	})
}
