package controller

import (
	"errors"
	"strconv"

	"arrurru_training_backend/internal/service"
	"arrurru_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// Me godoc
// @Summary Get own profile
// @Tags user
// @Produce  json
// @Success 200 {object} util.Response{data=model.User}
// @Security BearerAuth
// @Router /api/users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.ByID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags user
// @Accept  json
// @Produce  json
// @Param   body body service.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Security BearerAuth
// @Router /api/users/me [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags user
// @Accept  json
// @Produce  json
// @Param   body body service.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "Old password wrong"
// @Security BearerAuth
// @Router /api/users/me/password [post]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req service.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.UserService.ChangePassword(claims.UserID, req); err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary List accounts
// @Tags user
// @Produce  json
// @Param   role query string false "Filter by role" Enums(staff, manager, super_admin)
// @Param   search query string false "Match against name or email"
// @Success 200 {object} util.Response{data=[]model.User}
// @Security BearerAuth
// @Router /api/admin/users [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.UserService.List(ctx.Query("role"), ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// Update godoc
// @Summary Update an account
// @Tags user
// @Accept  json
// @Produce  json
// @Param   id path int true "User ID"
// @Param   body body service.UpdateUserRequest true "Account fields"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "User not found"
// @Security BearerAuth
// @Router /api/admin/users/{id} [patch]
func (c *UserController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	var req service.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user, err := c.UserService.UpdateUser(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// Delete godoc
// @Summary Delete an account
// @Tags user
// @Produce  json
// @Param   id path int true "User ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "User not found"
// @Security BearerAuth
// @Router /api/admin/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	if err := c.UserService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
