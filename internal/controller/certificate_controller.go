package controller

import (
	"errors"
	"strconv"

	"arrurru_training_backend/internal/service"
	"arrurru_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

type approveRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// Eligibility godoc
// @Summary Check certificate eligibility
// @Description Per-page breakdown of which exams still block the certificate
// @Tags certificate
// @Produce  json
// @Success 200 {object} util.Response{data=service.Eligibility}
// @Security BearerAuth
// @Router /api/certificates/eligibility [get]
func (c *CertificateController) Eligibility(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	eligibility, err := c.CertificateService.Eligibility(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, eligibility)
}

// Request godoc
// @Summary Request a certificate
// @Tags certificate
// @Produce  json
// @Success 201 {object} util.Response{data=model.CertificateRequest}
// @Failure 403 {object} util.Response "Not all exams completed with a sufficient score"
// @Failure 409 {object} util.Response "Already requested"
// @Security BearerAuth
// @Router /api/certificates/request [post]
func (c *CertificateController) Request(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	req, err := c.CertificateService.Request(claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCertNotEligible):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrCertAlreadyExists):
			util.Conflict(ctx, "certificate already requested")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, req)
}

// Status godoc
// @Summary Get own certificate request status
// @Tags certificate
// @Produce  json
// @Success 200 {object} util.Response{data=model.CertificateRequest}
// @Security BearerAuth
// @Router /api/certificates/status [get]
func (c *CertificateController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	req, err := c.CertificateService.Status(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, req)
}

// List godoc
// @Summary List certificate requests
// @Tags certificate
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.CertificateRequest}
// @Security BearerAuth
// @Router /api/admin/certificates [get]
func (c *CertificateController) List(ctx *gin.Context) {
	reqs, err := c.CertificateService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reqs)
}

// Approve godoc
// @Summary Approve or reject a certificate request
// @Tags certificate
// @Accept  json
// @Produce  json
// @Param   userId path int true "User ID"
// @Param   body body approveRequest true "Approval flag"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "No request for this user"
// @Security BearerAuth
// @Router /api/admin/certificates/{userId} [patch]
func (c *CertificateController) Approve(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	var req approveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.CertificateService.Approve(uint(userID), *req.Approved); err != nil {
		if errors.Is(err, util.ErrCertRequestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary Delete a certificate request
// @Tags certificate
// @Produce  json
// @Param   userId path int true "User ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "No request for this user"
// @Security BearerAuth
// @Router /api/admin/certificates/{userId} [delete]
func (c *CertificateController) Delete(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	if err := c.CertificateService.Delete(uint(userID)); err != nil {
		if errors.Is(err, util.ErrCertRequestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
