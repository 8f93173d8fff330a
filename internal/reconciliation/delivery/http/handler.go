package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/supply-manager/internal/reconciliation/domain"
	"github.com/tair/supply-manager/internal/reconciliation/usecase/command"
	"github.com/tair/supply-manager/internal/reconciliation/usecase/query"
	"github.com/tair/supply-manager/pkg/httpx"
)

// ReconciliationHandler serves physical count worksheets and records
type ReconciliationHandler struct {
	reconcileHandler *command.ReconcileHandler
	worksheetHandler *query.WorksheetHandler
	recordsHandler   *query.ListRecordsHandler
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(
	reconcileHandler *command.ReconcileHandler,
	worksheetHandler *query.WorksheetHandler,
	recordsHandler *query.ListRecordsHandler,
) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconcileHandler: reconcileHandler,
		worksheetHandler: worksheetHandler,
		recordsHandler:   recordsHandler,
	}
}

// Worksheet handles GET /api/reconciliations/{month}/worksheet
func (h *ReconciliationHandler) Worksheet(w http.ResponseWriter, r *http.Request) {
	m, err := httpx.PathMonth(r, "month")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	lines, err := h.worksheetHandler.Handle(r.Context(), query.WorksheetQuery{Month: m})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", lines)
}

// ListRecords handles GET /api/reconciliations/{month}
func (h *ReconciliationHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	m, err := httpx.PathMonth(r, "month")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	records, err := h.recordsHandler.Handle(r.Context(), query.ListRecordsQuery{Month: m})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", records)
}

// Reconcile handles POST /api/reconciliations/{month}
func (h *ReconciliationHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	m, err := httpx.PathMonth(r, "month")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req struct {
		Entries []domain.Entry `json:"entries"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	records, err := h.reconcileHandler.Handle(r.Context(), command.ReconcileCommand{
		Month:   m,
		Entries: req.Entries,
		Actor:   httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "Reconciliation saved", records)
}

// RegisterRoutes registers all reconciliation routes (admin only)
func (h *ReconciliationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/reconciliations/{month}/worksheet", httpx.AdminMiddleware(h.Worksheet)).Methods("GET")
	router.HandleFunc("/api/reconciliations/{month}", httpx.AdminMiddleware(h.ListRecords)).Methods("GET")
	router.HandleFunc("/api/reconciliations/{month}", httpx.AdminMiddleware(h.Reconcile)).Methods("POST")
}
