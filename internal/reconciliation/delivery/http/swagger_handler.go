package http

// Worksheet godoc
// @Summary Count worksheet
// @Description Items active in the month with the system quantity and any saved count
// @Tags Reconciliation
// @Security BearerAuth
// @Produce json
// @Param month path string true "YYYY-MM"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/reconciliations/{month}/worksheet [get]
func (h *ReconciliationHandler) WorksheetDoc() {}

// ListRecords godoc
// @Summary Saved counts for a month
// @Tags Reconciliation
// @Security BearerAuth
// @Produce json
// @Param month path string true "YYYY-MM"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/reconciliations/{month} [get]
func (h *ReconciliationHandler) ListRecordsDoc() {}

// Reconcile godoc
// @Summary Save physical counts
// @Description Replaces earlier counts for the same items. Stock quantities are not changed.
// @Tags Reconciliation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param month path string true "YYYY-MM"
// @Param request body object{entries=[]object{item_id=int,actual_qty=int,notes=string}} true "Counts"
// @Success 200 {object} object{success=bool,message=string,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/reconciliations/{month} [post]
func (h *ReconciliationHandler) ReconcileDoc() {}
