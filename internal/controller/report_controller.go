package controller

import (
	"arrurru_training_backend/internal/service"
	"arrurru_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// AccessRequest godoc
// @Summary Request portal access
// @Description Forwards an access request to the managers' Telegram chat
// @Tags report
// @Accept  json
// @Produce  json
// @Param   body body service.AccessRequest true "Access request"
// @Success 200 {object} util.Response
// @Failure 502 {object} util.Response "Notification delivery failed"
// @Router /api/access-request [post]
func (c *ReportController) AccessRequest(ctx *gin.Context) {
	var req service.AccessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ReportService.SendAccessRequest(req); err != nil {
		util.BadGateway(ctx, "failed to deliver notification")
		return
	}
	util.Success(ctx, nil)
}

// ErrorReport godoc
// @Summary Report a problem
// @Description Forwards a client error report to the managers' Telegram chat
// @Tags report
// @Accept  json
// @Produce  json
// @Param   body body service.ErrorReport true "Error report"
// @Success 200 {object} util.Response
// @Failure 502 {object} util.Response "Notification delivery failed"
// @Security BearerAuth
// @Router /api/error-report [post]
func (c *ReportController) ErrorReport(ctx *gin.Context) {
	var req service.ErrorReport
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ReportService.SendErrorReport(req); err != nil {
		util.BadGateway(ctx, "failed to deliver notification")
		return
	}
	util.Success(ctx, nil)
}
