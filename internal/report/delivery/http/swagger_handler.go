package http

// GenerateReport godoc
// @Summary Generate a monthly report
// @Description Recomputes totals for every item active in the month (Admin only)
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param month path string true "YYYY-MM"
// @Success 200 {object} object{success=bool,message=string,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 429 {object} object{success=bool,error=string}
// @Router /api/reports/{month}/generate [post]
func (h *ReportHandler) GenerateReportDoc() {}

// GetReport godoc
// @Summary Get a monthly report
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param month path string true "YYYY-MM"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/reports/{month} [get]
func (h *ReportHandler) GetReportDoc() {}

// GetSummary godoc
// @Summary Dashboard summary
// @Description Item counts, stock value and the month's movement totals
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param month path string true "YYYY-MM"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/reports/{month}/summary [get]
func (h *ReportHandler) GetSummaryDoc() {}
