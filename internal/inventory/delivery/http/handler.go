package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/supply-manager/internal/inventory/usecase/command"
	"github.com/tair/supply-manager/internal/inventory/usecase/query"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/httpx"
)

// SupplyHandler handles HTTP requests for supplies and their movements
type SupplyHandler struct {
	addHandler     *command.AddSupplyHandler
	updateHandler  *command.UpdateSupplyHandler
	deleteHandler  *command.DeleteSupplyHandler
	restockHandler *command.RestockHandler
	recordHandler  *command.RecordTransactionHandler

	getHandler          *query.GetSupplyHandler
	lookupHandler       *query.GetSupplyByNameHandler
	listHandler         *query.ListSuppliesHandler
	shoppingListHandler *query.ShoppingListHandler
	transactionsHandler *query.ListTransactionsHandler
}

// NewSupplyHandler creates a new supply handler
func NewSupplyHandler(
	addHandler *command.AddSupplyHandler,
	updateHandler *command.UpdateSupplyHandler,
	deleteHandler *command.DeleteSupplyHandler,
	restockHandler *command.RestockHandler,
	recordHandler *command.RecordTransactionHandler,
	getHandler *query.GetSupplyHandler,
	lookupHandler *query.GetSupplyByNameHandler,
	listHandler *query.ListSuppliesHandler,
	shoppingListHandler *query.ShoppingListHandler,
	transactionsHandler *query.ListTransactionsHandler,
) *SupplyHandler {
	return &SupplyHandler{
		addHandler:          addHandler,
		updateHandler:       updateHandler,
		deleteHandler:       deleteHandler,
		restockHandler:      restockHandler,
		recordHandler:       recordHandler,
		getHandler:          getHandler,
		lookupHandler:       lookupHandler,
		listHandler:         listHandler,
		shoppingListHandler: shoppingListHandler,
		transactionsHandler: transactionsHandler,
	}
}

type supplyRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Supplier    string          `json:"supplier"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	MinQuantity *int            `json:"min_quantity"`
}

// CreateSupply handles POST /api/supplies
func (h *SupplyHandler) CreateSupply(w http.ResponseWriter, r *http.Request) {
	var req supplyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	item, err := h.addHandler.Handle(r.Context(), command.AddSupplyCommand{
		Name:        req.Name,
		Category:    req.Category,
		Supplier:    req.Supplier,
		SKU:         req.SKU,
		Quantity:    req.Quantity,
		Price:       req.Price,
		MinQuantity: req.MinQuantity,
		Actor:       httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondCreated(w, "Supply added successfully", item)
}

// Restock handles POST /api/supplies/restock
func (h *SupplyHandler) Restock(w http.ResponseWriter, r *http.Request) {
	var req supplyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.restockHandler.Handle(r.Context(), command.RestockCommand{
		Name:        req.Name,
		Category:    req.Category,
		Supplier:    req.Supplier,
		SKU:         req.SKU,
		Quantity:    req.Quantity,
		Price:       req.Price,
		MinQuantity: req.MinQuantity,
		Actor:       httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if result.Created {
		httpx.RespondCreated(w, "Supply added successfully", result)
		return
	}
	httpx.RespondOK(w, "Supply restocked successfully", result)
}

// GetSupply handles GET /api/supplies/{id}
func (h *SupplyHandler) GetSupply(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	item, err := h.getHandler.Handle(r.Context(), query.GetSupplyQuery{ID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", item)
}

// LookupSupply handles GET /api/supplies/lookup?name=
func (h *SupplyHandler) LookupSupply(w http.ResponseWriter, r *http.Request) {
	item, err := h.lookupHandler.Handle(r.Context(), query.GetSupplyByNameQuery{Name: r.URL.Query().Get("name")})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", item)
}

// ListSupplies handles GET /api/supplies
func (h *SupplyHandler) ListSupplies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.listHandler.Handle(r.Context(), query.ListSuppliesQuery{
		Search:       q.Get("q"),
		Category:     q.Get("category"),
		LowStockOnly: q.Get("low_stock") == "true",
		Limit:        httpx.QueryInt(r, "limit", 0),
		Offset:       httpx.QueryInt(r, "offset", 0),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", page)
}

// ShoppingList handles GET /api/supplies/shopping-list
func (h *SupplyHandler) ShoppingList(w http.ResponseWriter, r *http.Request) {
	lines, err := h.shoppingListHandler.Handle(r.Context(), query.ShoppingListQuery{})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", lines)
}

// UpdateSupply handles PUT /api/supplies/{id}
func (h *SupplyHandler) UpdateSupply(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req struct {
		Quantity    int             `json:"quantity"`
		Price       decimal.Decimal `json:"price"`
		MinQuantity *int            `json:"min_quantity"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	item, err := h.updateHandler.Handle(r.Context(), command.UpdateSupplyCommand{
		ID:          id,
		Quantity:    req.Quantity,
		Price:       req.Price,
		MinQuantity: req.MinQuantity,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "Supply updated successfully", item)
}

// DeleteSupply handles DELETE /api/supplies/{id}
func (h *SupplyHandler) DeleteSupply(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteSupplyCommand{ID: id}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "Supply deleted successfully", nil)
}

// RecordTransaction handles POST /api/supplies/{id}/transactions
func (h *SupplyHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req struct {
		Type      string `json:"type"`
		Quantity  int    `json:"quantity"`
		Reference string `json:"reference"`
		Note      string `json:"note"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	tx, item, err := h.recordHandler.Handle(r.Context(), command.RecordTransactionCommand{
		ItemID:    id,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Reference: req.Reference,
		Note:      req.Note,
		Actor:     httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondCreated(w, "Transaction recorded", map[string]interface{}{
		"transaction": tx,
		"item":        item,
	})
}

// ListTransactions handles GET /api/transactions
func (h *SupplyHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	m, err := httpx.QueryMonth(r, "month")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	page, err := h.transactionsHandler.Handle(r.Context(), query.ListTransactionsQuery{
		ItemID: httpx.QueryUint(r, "item_id"),
		Month:  m,
		Limit:  httpx.QueryInt(r, "limit", 0),
		Offset: httpx.QueryInt(r, "offset", 0),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", page)
}

// RegisterRoutes registers all supply routes
func (h *SupplyHandler) RegisterRoutes(router *mux.Router) {
	manage := func(next http.HandlerFunc) http.HandlerFunc {
		return httpx.RequireRole(next, auth.RoleAdmin, auth.RoleStaff)
	}

	// Static paths before {id}
	router.HandleFunc("/api/supplies/lookup", httpx.AuthMiddleware(h.LookupSupply)).Methods("GET")
	router.HandleFunc("/api/supplies/shopping-list", httpx.AuthMiddleware(h.ShoppingList)).Methods("GET")
	router.HandleFunc("/api/supplies/restock", manage(h.Restock)).Methods("POST")

	router.HandleFunc("/api/supplies", httpx.AuthMiddleware(h.ListSupplies)).Methods("GET")
	router.HandleFunc("/api/supplies", manage(h.CreateSupply)).Methods("POST")
	router.HandleFunc("/api/supplies/{id:[0-9]+}", httpx.AuthMiddleware(h.GetSupply)).Methods("GET")
	router.HandleFunc("/api/supplies/{id:[0-9]+}", manage(h.UpdateSupply)).Methods("PUT")
	router.HandleFunc("/api/supplies/{id:[0-9]+}", manage(h.DeleteSupply)).Methods("DELETE")
	router.HandleFunc("/api/supplies/{id:[0-9]+}/transactions", manage(h.RecordTransaction)).Methods("POST")

	router.HandleFunc("/api/transactions", httpx.AuthMiddleware(h.ListTransactions)).Methods("GET")
}
