package controller

import (
	"errors"
	"strconv"

	"arrurru_training_backend/internal/service"
	"arrurru_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and issue a JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.LoginResponse}
// @Failure 400 {object} util.Response "Invalid request body"
// @Failure 401 {object} util.Response "Wrong email or password"
// @Failure 403 {object} util.Response "Account disabled"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Unauthorized(ctx)
		case errors.Is(err, util.ErrAccountDisabled):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// Register godoc
// @Summary Redeem an invitation
// @Description Create an account from an invitation token and log in
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterRequest true "Registration data"
// @Success 201 {object} util.Response{data=service.LoginResponse}
// @Failure 400 {object} util.Response "Invalid or expired invitation"
// @Failure 409 {object} util.Response "Email already registered"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvitationInvalid):
			util.BadRequest(ctx, "invitation invalid or expired")
		case errors.Is(err, util.ErrEmailRegistered):
			util.Conflict(ctx, "email already registered")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, resp)
}

// Invite godoc
// @Summary Issue an invitation
// @Description Create or refresh a one-time registration token for an email
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.InviteRequest true "Invitee email"
// @Success 201 {object} util.Response{data=model.Invitation}
// @Failure 409 {object} util.Response "Email already registered"
// @Security BearerAuth
// @Router /api/admin/invitations [post]
func (c *AuthController) Invite(ctx *gin.Context) {
	var req service.InviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	inv, err := c.AuthService.Invite(req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, "email already registered")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, inv)
}

// ListInvitations godoc
// @Summary List outstanding invitations
// @Tags auth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Invitation}
// @Security BearerAuth
// @Router /api/admin/invitations [get]
func (c *AuthController) ListInvitations(ctx *gin.Context) {
	invs, err := c.AuthService.ListInvitations()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, invs)
}

// RevokeInvitation godoc
// @Summary Revoke an invitation
// @Tags auth
// @Produce  json
// @Param   id path int true "Invitation ID"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/invitations/{id} [delete]
func (c *AuthController) RevokeInvitation(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid invitation id")
		return
	}
	if err := c.AuthService.RevokeInvitation(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
