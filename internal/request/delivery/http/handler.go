package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/supply-manager/internal/request/usecase/command"
	"github.com/tair/supply-manager/internal/request/usecase/query"
	"github.com/tair/supply-manager/pkg/httpx"
)

// RequestHandler serves the stock request workflow
type RequestHandler struct {
	submitHandler  *command.SubmitRequestHandler
	approveHandler *command.ApproveRequestHandler
	rejectHandler  *command.RejectRequestHandler
	receiveHandler *command.ReceiveRequestHandler

	listHandler *query.ListRequestsHandler
	getHandler  *query.GetRequestHandler
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(
	submitHandler *command.SubmitRequestHandler,
	approveHandler *command.ApproveRequestHandler,
	rejectHandler *command.RejectRequestHandler,
	receiveHandler *command.ReceiveRequestHandler,
	listHandler *query.ListRequestsHandler,
	getHandler *query.GetRequestHandler,
) *RequestHandler {
	return &RequestHandler{
		submitHandler:  submitHandler,
		approveHandler: approveHandler,
		rejectHandler:  rejectHandler,
		receiveHandler: receiveHandler,
		listHandler:    listHandler,
		getHandler:     getHandler,
	}
}

// SubmitRequest handles POST /api/requests
func (h *RequestHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID   uint   `json:"item_id"`
		Quantity int    `json:"quantity"`
		Reason   string `json:"reason"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	created, err := h.submitHandler.Handle(r.Context(), command.SubmitRequestCommand{
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
		Reason:   req.Reason,
		Actor:    httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondCreated(w, "Request submitted", created)
}

// ListRequests handles GET /api/requests
func (h *RequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	page, err := h.listHandler.Handle(r.Context(), query.ListRequestsQuery{
		Actor:  httpx.Session(r),
		Status: r.URL.Query().Get("status"),
		Limit:  httpx.QueryInt(r, "limit", 0),
		Offset: httpx.QueryInt(r, "offset", 0),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", page)
}

// GetRequest handles GET /api/requests/{id}
func (h *RequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	req, err := h.getHandler.Handle(r.Context(), query.GetRequestQuery{ID: id, Actor: httpx.Session(r)})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", req)
}

// ApproveRequest handles POST /api/requests/{id}/approve
func (h *RequestHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	approval, err := h.approveHandler.Handle(r.Context(), command.ApproveRequestCommand{
		RequestID: id,
		Actor:     httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "Request approved", map[string]interface{}{
		"request":     approval.Request,
		"transaction": approval.Movement,
		"item":        approval.After,
	})
}

// RejectRequest handles POST /api/requests/{id}/reject
func (h *RequestHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// The reason is optional, so an empty body is accepted
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.RespondError(w, r, err)
			return
		}
	}

	rejected, err := h.rejectHandler.Handle(r.Context(), command.RejectRequestCommand{
		RequestID: id,
		Reason:    req.Reason,
		Actor:     httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "Request rejected", rejected)
}

// ReceiveRequest handles POST /api/requests/{id}/receive
func (h *RequestHandler) ReceiveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	received, err := h.receiveHandler.Handle(r.Context(), command.ReceiveRequestCommand{
		RequestID: id,
		Actor:     httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "Request received", received)
}

// RegisterRoutes registers all request routes. Role checks live in the
// use cases since they depend on the request owner.
func (h *RequestHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/requests", httpx.AuthMiddleware(h.SubmitRequest)).Methods("POST")
	router.HandleFunc("/api/requests", httpx.AuthMiddleware(h.ListRequests)).Methods("GET")
	router.HandleFunc("/api/requests/{id:[0-9]+}", httpx.AuthMiddleware(h.GetRequest)).Methods("GET")
	router.HandleFunc("/api/requests/{id:[0-9]+}/approve", httpx.AuthMiddleware(h.ApproveRequest)).Methods("POST")
	router.HandleFunc("/api/requests/{id:[0-9]+}/reject", httpx.AuthMiddleware(h.RejectRequest)).Methods("POST")
	router.HandleFunc("/api/requests/{id:[0-9]+}/receive", httpx.AuthMiddleware(h.ReceiveRequest)).Methods("POST")
}
