// Package app assembles the supply service from its domain packages.
package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/supply-manager/internal/health"
	invhttp "github.com/tair/supply-manager/internal/inventory/delivery/http"
	"github.com/tair/supply-manager/internal/inventory/listener"
	rechttp "github.com/tair/supply-manager/internal/reconciliation/delivery/http"
	rephttp "github.com/tair/supply-manager/internal/report/delivery/http"
	reqhttp "github.com/tair/supply-manager/internal/request/delivery/http"
	userhttp "github.com/tair/supply-manager/internal/user/delivery/http"
	usercommand "github.com/tair/supply-manager/internal/user/usecase/command"
	userquery "github.com/tair/supply-manager/internal/user/usecase/query"
	"github.com/tair/supply-manager/pkg/httpx"
)

// Server holds every delivery component of the service
type Server struct {
	Users           *userhttp.UserHandler
	Supplies        *invhttp.SupplyHandler
	Reports         *rephttp.ReportHandler
	Reconciliations *rechttp.ReconciliationHandler
	Requests        *reqhttp.RequestHandler
	Health          *health.Checker
	Deliveries      *listener.DeliveryListener
	SeedAdmin       *usercommand.SeedAdminHandler
	Sessions        *userquery.VerifySessionHandler
}

// NewServer creates a new server
func NewServer(
	users *userhttp.UserHandler,
	supplies *invhttp.SupplyHandler,
	reports *rephttp.ReportHandler,
	reconciliations *rechttp.ReconciliationHandler,
	requests *reqhttp.RequestHandler,
	checker *health.Checker,
	deliveries *listener.DeliveryListener,
	seedAdmin *usercommand.SeedAdminHandler,
	sessions *userquery.VerifySessionHandler,
) *Server {
	return &Server{
		Users:           users,
		Supplies:        supplies,
		Reports:         reports,
		Reconciliations: reconciliations,
		Requests:        requests,
		Health:          checker,
		Deliveries:      deliveries,
		SeedAdmin:       seedAdmin,
		Sessions:        sessions,
	}
}

// RouterOptions are the optional endpoints mounted next to the API
type RouterOptions struct {
	Middleware *httpx.MiddlewareConfig
	Metrics    http.Handler
	Swagger    http.Handler
}

// Router builds the HTTP router with every route registered. Tokens are
// checked against the user table on every authenticated request.
func (s *Server) Router(opts RouterOptions) *mux.Router {
	if s.Sessions != nil {
		httpx.SetSessionVerifier(s.Sessions.Handle)
	}

	router := mux.NewRouter()
	if opts.Middleware != nil {
		httpx.RegisterMiddlewares(router, opts.Middleware)
	}

	s.Users.RegisterRoutes(router)
	s.Supplies.RegisterRoutes(router)
	s.Reports.RegisterRoutes(router)
	s.Reconciliations.RegisterRoutes(router)
	s.Requests.RegisterRoutes(router)
	s.Health.RegisterRoutes(router)

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics).Methods("GET")
	}
	if opts.Swagger != nil {
		router.PathPrefix("/swagger/").Handler(opts.Swagger)
	}
	return router
}
