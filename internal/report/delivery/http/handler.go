package http

import (
	"net/http"

	"github.com/gorilla/mux"

	invquery "github.com/tair/supply-manager/internal/inventory/usecase/query"
	"github.com/tair/supply-manager/internal/report/usecase/command"
	"github.com/tair/supply-manager/internal/report/usecase/query"
	"github.com/tair/supply-manager/pkg/httpx"
)

// ReportHandler serves monthly reports and the dashboard summary
type ReportHandler struct {
	generateHandler *command.GenerateReportHandler
	getHandler      *query.GetReportHandler
	summaryHandler  *invquery.GetSummaryHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	generateHandler *command.GenerateReportHandler,
	getHandler *query.GetReportHandler,
	summaryHandler *invquery.GetSummaryHandler,
) *ReportHandler {
	return &ReportHandler{
		generateHandler: generateHandler,
		getHandler:      getHandler,
		summaryHandler:  summaryHandler,
	}
}

// GenerateReport handles POST /api/reports/{month}/generate
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	m, err := httpx.PathMonth(r, "month")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	rows, err := h.generateHandler.Handle(r.Context(), command.GenerateReportCommand{
		Month: m,
		Actor: httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "Report generated", rows)
}

// GetReport handles GET /api/reports/{month}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	m, err := httpx.PathMonth(r, "month")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	lines, err := h.getHandler.Handle(r.Context(), query.GetReportQuery{Month: m})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", lines)
}

// GetSummary handles GET /api/reports/{month}/summary
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	m, err := httpx.PathMonth(r, "month")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	summary, err := h.summaryHandler.Handle(r.Context(), invquery.GetSummaryQuery{Month: m})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", summary)
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/reports/{month}/generate", httpx.AdminMiddleware(h.GenerateReport)).Methods("POST")
	router.HandleFunc("/api/reports/{month}/summary", httpx.AuthMiddleware(h.GetSummary)).Methods("GET")
	router.HandleFunc("/api/reports/{month}", httpx.AuthMiddleware(h.GetReport)).Methods("GET")
}
