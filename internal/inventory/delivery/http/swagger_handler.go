package http

// ListSupplies godoc
// @Summary List supplies
// @Description Search and page through supplies
// @Tags Supplies
// @Security BearerAuth
// @Produce json
// @Param q query string false "Matches SKU, name or supplier"
// @Param category query string false "Category"
// @Param low_stock query bool false "Only items at or below their minimum"
// @Param limit query int false "Limit (default 10, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{items=array,total=int,limit=int,offset=int}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/supplies [get]
func (h *SupplyHandler) ListSuppliesDoc() {}

// CreateSupply godoc
// @Summary Add a supply
// @Description Add a new item. The SKU is derived from the name when omitted. (Admin, staff)
// @Tags Supplies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,category=string,supplier=string,sku=string,quantity=int,price=number,min_quantity=int} true "Supply data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/supplies [post]
func (h *SupplyHandler) CreateSupplyDoc() {}

// Restock godoc
// @Summary Restock by name
// @Description Adds stock to the item with this name, or creates it (Admin, staff)
// @Tags Supplies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,category=string,supplier=string,quantity=int,price=number,min_quantity=int} true "Restock data"
// @Success 200 {object} object{success=bool,message=string,data=object{item=object,created=bool}}
// @Success 201 {object} object{success=bool,message=string,data=object{item=object,created=bool}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/supplies/restock [post]
func (h *SupplyHandler) RestockDoc() {}

// GetSupply godoc
// @Summary Get supply by ID
// @Tags Supplies
// @Security BearerAuth
// @Produce json
// @Param id path int true "Supply ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/supplies/{id} [get]
func (h *SupplyHandler) GetSupplyDoc() {}

// LookupSupply godoc
// @Summary Find supply by name
// @Description Case-insensitive exact name match
// @Tags Supplies
// @Security BearerAuth
// @Produce json
// @Param name query string true "Item name"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/supplies/lookup [get]
func (h *SupplyHandler) LookupSupplyDoc() {}

// ShoppingList godoc
// @Summary Shopping list
// @Description Low-stock items with the units needed to reach their minimum
// @Tags Supplies
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/supplies/shopping-list [get]
func (h *SupplyHandler) ShoppingListDoc() {}

// UpdateSupply godoc
// @Summary Update quantity, price and minimum
// @Tags Supplies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Supply ID"
// @Param request body object{quantity=int,price=number,min_quantity=int} true "New values"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/supplies/{id} [put]
func (h *SupplyHandler) UpdateSupplyDoc() {}

// DeleteSupply godoc
// @Summary Delete supply
// @Tags Supplies
// @Security BearerAuth
// @Produce json
// @Param id path int true "Supply ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/supplies/{id} [delete]
func (h *SupplyHandler) DeleteSupplyDoc() {}

// RecordTransaction godoc
// @Summary Record a stock movement
// @Description IN adds stock, OUT removes it and fails when stock is short
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Supply ID"
// @Param request body object{type=string,quantity=int,reference=string,note=string} true "Movement"
// @Success 201 {object} object{success=bool,message=string,data=object{transaction=object,item=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/supplies/{id}/transactions [post]
func (h *SupplyHandler) RecordTransactionDoc() {}

// ListTransactions godoc
// @Summary List stock movements
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param item_id query int false "Supply ID"
// @Param month query string false "YYYY-MM"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{transactions=array,total=int,limit=int,offset=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/transactions [get]
func (h *SupplyHandler) ListTransactionsDoc() {}
