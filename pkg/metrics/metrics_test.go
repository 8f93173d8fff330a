package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	m := New(prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/api/supplies/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods("GET")

	for _, path := range []string{"/api/supplies/1", "/api/supplies/2"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	got := testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/supplies/{id}", "404"))
	if got != 2 {
		t.Fatalf("expected 2 requests on the route template, got %v", got)
	}
}

func TestDomainCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveMovement("OUT", 5)
	m.ObserveMovement("OUT", 2)
	m.ObserveTransition("approved")
	m.SetLowStock(3)

	if v := testutil.ToFloat64(m.StockMovements.WithLabelValues("OUT")); v != 7 {
		t.Fatalf("expected 7 units out, got %v", v)
	}
	if v := testutil.ToFloat64(m.RequestTransitions.WithLabelValues("approved")); v != 1 {
		t.Fatalf("expected 1 approval, got %v", v)
	}
	if v := testutil.ToFloat64(m.LowStockItems); v != 3 {
		t.Fatalf("expected gauge 3, got %v", v)
	}

	var nilMetrics *Metrics
	nilMetrics.ObserveMovement("IN", 1)
}
