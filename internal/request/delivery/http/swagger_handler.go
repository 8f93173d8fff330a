package http

// SubmitRequest godoc
// @Summary Submit a stock request
// @Description Staff and students ask for 1 to 1000 units of an item
// @Tags Requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{item_id=int,quantity=int,reason=string} true "Request"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/requests [post]
func (h *RequestHandler) SubmitRequestDoc() {}

// ListRequests godoc
// @Summary List stock requests
// @Description Admins see every request, others only their own
// @Tags Requests
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, approved, rejected or received"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{requests=array,total=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/requests [get]
func (h *RequestHandler) ListRequestsDoc() {}

// GetRequest godoc
// @Summary Get a stock request
// @Tags Requests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/requests/{id} [get]
func (h *RequestHandler) GetRequestDoc() {}

// ApproveRequest godoc
// @Summary Approve a pending request
// @Description Approves and takes the units out of stock in one step (Admin only)
// @Tags Requests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} object{success=bool,message=string,data=object{request=object,transaction=object,item=object}}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/requests/{id}/approve [post]
func (h *RequestHandler) ApproveRequestDoc() {}

// RejectRequest godoc
// @Summary Reject a pending request
// @Tags Requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body object{reason=string} false "Rejection reason"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/requests/{id}/reject [post]
func (h *RequestHandler) RejectRequestDoc() {}

// ReceiveRequest godoc
// @Summary Confirm receipt of an approved request
// @Description Only the requester can confirm
// @Tags Requests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/requests/{id}/receive [post]
func (h *RequestHandler) ReceiveRequestDoc() {}
