package controller

import (
	"errors"
	"strconv"

	"arrurru_training_backend/internal/service"
	"arrurru_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// Submit godoc
// @Summary Submit a free-form test
// @Description Answers are logged for manager review, nothing is auto-graded
// @Tags test
// @Accept  json
// @Produce  json
// @Param   contentId path string true "Content page ID"
// @Param   body body service.TestSubmissionRequest true "Answers keyed by question id"
// @Success 201 {object} util.Response{data=model.TestResult}
// @Failure 400 {object} util.Response "A question is unanswered"
// @Failure 404 {object} util.Response "No test on this page"
// @Security BearerAuth
// @Router /api/tests/{contentId}/submit [post]
func (c *TestController) Submit(ctx *gin.Context) {
	var req service.TestSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	result, err := c.TestService.Submit(claims.UserID, ctx.Param("contentId"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrContentNotFound), errors.Is(err, util.ErrNoTestForContent):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTestIncomplete):
			util.BadRequest(ctx, "every question must be answered")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, result)
}

// List godoc
// @Summary List test submissions for review
// @Tags test
// @Produce  json
// @Param   contentId query string false "Filter by content page"
// @Param   unreviewed query bool false "Only unreviewed submissions"
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Security BearerAuth
// @Router /api/admin/test-results [get]
func (c *TestController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	onlyUnreviewed := ctx.Query("unreviewed") == "true"

	results, total, err := c.TestService.List(ctx.Query("contentId"), onlyUnreviewed, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: results, Total: total, Page: page, Limit: limit})
}

// MarkReviewed godoc
// @Summary Mark a test submission as reviewed
// @Tags test
// @Produce  json
// @Param   id path int true "Submission ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Submission not found"
// @Security BearerAuth
// @Router /api/admin/test-results/{id}/review [post]
func (c *TestController) MarkReviewed(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}
	if err := c.TestService.MarkReviewed(uint(id)); err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
