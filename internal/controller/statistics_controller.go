package controller

import (
	"fmt"
	"strconv"
	"time"

	"arrurru_training_backend/internal/service"
	"arrurru_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatisticsController struct {
	StatisticsService *service.StatisticsService
}

func NewStatisticsController(statisticsService *service.StatisticsService) *StatisticsController {
	return &StatisticsController{StatisticsService: statisticsService}
}

// MyProgress godoc
// @Summary Get own progress
// @Tags progress
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.UserProgress}
// @Security BearerAuth
// @Router /api/progress [get]
func (c *StatisticsController) MyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.StatisticsService.MyProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// MyExamResults godoc
// @Summary Get own exam attempt history
// @Tags progress
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.ExamResult}
// @Security BearerAuth
// @Router /api/progress/exam-results [get]
func (c *StatisticsController) MyExamResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	results, err := c.StatisticsService.MyExamResults(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// PerUser godoc
// @Summary Per-user statistics table
// @Tags statistics
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.UserStats}
// @Security BearerAuth
// @Router /api/admin/statistics/users [get]
func (c *StatisticsController) PerUser(ctx *gin.Context) {
	stats, err := c.StatisticsService.PerUser()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// PerTopic godoc
// @Summary Per-topic statistics with difficulty buckets
// @Tags statistics
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.TopicStats}
// @Security BearerAuth
// @Router /api/admin/statistics/topics [get]
func (c *StatisticsController) PerTopic(ctx *gin.Context) {
	stats, err := c.StatisticsService.PerTopic()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// RecentActivity godoc
// @Summary Recent exam activity feed
// @Tags statistics
// @Produce  json
// @Param   limit query int false "Max entries" default(10)
// @Success 200 {object} util.Response{data=[]service.ActivityEntry}
// @Security BearerAuth
// @Router /api/admin/statistics/activity [get]
func (c *StatisticsController) RecentActivity(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	entries, err := c.StatisticsService.RecentActivity(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Leaderboard godoc
// @Summary Staff leaderboard
// @Tags statistics
// @Produce  json
// @Param   limit query int false "Max entries" default(10)
// @Success 200 {object} util.Response{data=[]service.UserStats}
// @Security BearerAuth
// @Router /api/admin/statistics/leaderboard [get]
func (c *StatisticsController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	stats, err := c.StatisticsService.Leaderboard(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// ExportCSV godoc
// @Summary Download the statistics table as CSV
// @Tags statistics
// @Produce  text/csv
// @Success 200 {string} string "CSV file"
// @Security BearerAuth
// @Router /api/admin/statistics/export [get]
func (c *StatisticsController) ExportCSV(ctx *gin.Context) {
	data, err := c.StatisticsService.ExportCSV()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	filename := service.ExportFilename(time.Now())
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(200, "text/csv; charset=utf-8", data)
}
