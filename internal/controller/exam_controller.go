package controller

import (
	"errors"

	"arrurru_training_backend/internal/service"
	"arrurru_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

type examAnswerRequest struct {
	Answer *int `json:"answer" binding:"required"`
}

func (c *ExamController) handleExamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrContentNotFound), errors.Is(err, util.ErrNoExamForContent):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrExamSessionNotFound):
		util.BadRequest(ctx, "no active exam session")
	case errors.Is(err, util.ErrExamFinished):
		util.BadRequest(ctx, "exam already finished")
	case errors.Is(err, util.ErrExamUnanswered):
		util.BadRequest(ctx, "current question not answered")
	case errors.Is(err, util.ErrExamAlreadyPassed):
		util.Conflict(ctx, "exam already passed")
	case errors.Is(err, util.ErrAnswerOutOfRange):
		util.BadRequest(ctx, "answer index out of range")
	default:
		util.LogInternalError(ctx, err)
	}
}

// Start godoc
// @Summary Start or resume an exam
// @Tags exam
// @Produce  json
// @Param   contentId path string true "Content page ID"
// @Success 200 {object} util.Response{data=service.ExamStateView}
// @Failure 404 {object} util.Response "No exam on this page"
// @Failure 409 {object} util.Response "Exam already passed"
// @Security BearerAuth
// @Router /api/exams/{contentId}/start [post]
func (c *ExamController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	state, err := c.ExamService.Start(ctx.Request.Context(), claims.UserID, ctx.Param("contentId"))
	if err != nil {
		c.handleExamError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Answer godoc
// @Summary Answer the current question
// @Tags exam
// @Accept  json
// @Produce  json
// @Param   contentId path string true "Content page ID"
// @Param   body body examAnswerRequest true "Option index"
// @Success 200 {object} util.Response{data=service.ExamStateView}
// @Failure 400 {object} util.Response "Answer out of range or no session"
// @Security BearerAuth
// @Router /api/exams/{contentId}/answer [post]
func (c *ExamController) Answer(ctx *gin.Context) {
	var req examAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	state, err := c.ExamService.Answer(ctx.Request.Context(), claims.UserID, ctx.Param("contentId"), *req.Answer)
	if err != nil {
		c.handleExamError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Next godoc
// @Summary Advance to the next question
// @Description On the last question this finishes and scores the exam
// @Tags exam
// @Produce  json
// @Param   contentId path string true "Content page ID"
// @Success 200 {object} util.Response{data=service.ExamStateView}
// @Failure 400 {object} util.Response "Current question not answered"
// @Security BearerAuth
// @Router /api/exams/{contentId}/next [post]
func (c *ExamController) Next(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	state, err := c.ExamService.Next(ctx.Request.Context(), claims.UserID, ctx.Param("contentId"))
	if err != nil {
		c.handleExamError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Previous godoc
// @Summary Go back to the previous question
// @Tags exam
// @Produce  json
// @Param   contentId path string true "Content page ID"
// @Success 200 {object} util.Response{data=service.ExamStateView}
// @Security BearerAuth
// @Router /api/exams/{contentId}/previous [post]
func (c *ExamController) Previous(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	state, err := c.ExamService.Previous(ctx.Request.Context(), claims.UserID, ctx.Param("contentId"))
	if err != nil {
		c.handleExamError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// State godoc
// @Summary Get the current exam state
// @Tags exam
// @Produce  json
// @Param   contentId path string true "Content page ID"
// @Success 200 {object} util.Response{data=service.ExamStateView}
// @Failure 400 {object} util.Response "No session"
// @Security BearerAuth
// @Router /api/exams/{contentId} [get]
func (c *ExamController) State(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	state, err := c.ExamService.State(ctx.Request.Context(), claims.UserID, ctx.Param("contentId"))
	if err != nil {
		c.handleExamError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Restart godoc
// @Summary Retake a failed exam
// @Tags exam
// @Produce  json
// @Param   contentId path string true "Content page ID"
// @Success 200 {object} util.Response{data=service.ExamStateView}
// @Failure 409 {object} util.Response "Exam already passed"
// @Security BearerAuth
// @Router /api/exams/{contentId}/restart [post]
func (c *ExamController) Restart(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	state, err := c.ExamService.Restart(ctx.Request.Context(), claims.UserID, ctx.Param("contentId"))
	if err != nil {
		c.handleExamError(ctx, err)
		return
	}
	util.Success(ctx, state)
}
