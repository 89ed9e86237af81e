package controller

import (
	"errors"

	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/service"
	"arrurru_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

func isManager(ctx *gin.Context) bool {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return false
	}
	return claims.Role == model.Manager || claims.Role == model.SuperAdmin
}

// pageResponse renders a page for the caller's role: managers get the full
// record, staff get the view with exam answers stripped.
func (c *ContentController) pageResponse(ctx *gin.Context, page *model.ContentPage) interface{} {
	if isManager(ctx) {
		return page
	}
	return c.ContentService.StaffView(page)
}

// List godoc
// @Summary List all content pages
// @Tags content
// @Produce  json
// @Param   section query string false "Filter by section" Enums(codice, training-hall, trainings, standards)
// @Success 200 {object} util.Response{data=[]model.ContentPage}
// @Security BearerAuth
// @Router /api/content [get]
func (c *ContentController) List(ctx *gin.Context) {
	section := model.ContentSection(ctx.Query("section"))

	var pages []model.ContentPage
	var err error
	if section != "" {
		if !model.ValidSection(section) {
			util.BadRequest(ctx, "unknown section")
			return
		}
		pages, err = c.ContentService.BySection(section)
	} else {
		pages, err = c.ContentService.List()
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if isManager(ctx) {
		util.Success(ctx, pages)
		return
	}
	views := make([]*service.StaffPageView, len(pages))
	for i := range pages {
		views[i] = c.ContentService.StaffView(&pages[i])
	}
	util.Success(ctx, views)
}

// BySlug godoc
// @Summary Get a page by slug
// @Tags content
// @Produce  json
// @Param   slug path string true "Page slug"
// @Success 200 {object} util.Response{data=model.ContentPage}
// @Failure 404 {object} util.Response "Page not found"
// @Security BearerAuth
// @Router /api/content/slug/{slug} [get]
func (c *ContentController) BySlug(ctx *gin.Context) {
	page, err := c.ContentService.BySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, c.pageResponse(ctx, page))
}

// Get godoc
// @Summary Get a page by id
// @Tags content
// @Produce  json
// @Param   id path string true "Page ID"
// @Success 200 {object} util.Response{data=model.ContentPage}
// @Failure 404 {object} util.Response "Page not found"
// @Security BearerAuth
// @Router /api/content/{id} [get]
func (c *ContentController) Get(ctx *gin.Context) {
	page, err := c.ContentService.ByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, c.pageResponse(ctx, page))
}

// Save godoc
// @Summary Create or update a page
// @Description Without an id a new page is created; with one the page is replaced
// @Tags content
// @Accept  json
// @Produce  json
// @Param   body body service.ContentPageRequest true "Page data"
// @Success 200 {object} util.Response{data=model.ContentPage}
// @Failure 404 {object} util.Response "Unknown id or section"
// @Failure 409 {object} util.Response "Slug already in use"
// @Security BearerAuth
// @Router /api/admin/content [post]
func (c *ContentController) Save(ctx *gin.Context) {
	var req service.ContentPageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	page, err := c.ContentService.Save(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSlugTaken):
			util.Conflict(ctx, "slug already in use")
		case errors.Is(err, util.ErrContentNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, page)
}

// Delete godoc
// @Summary Delete a page
// @Tags content
// @Produce  json
// @Param   id path string true "Page ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Page not found"
// @Security BearerAuth
// @Router /api/admin/content/{id} [delete]
func (c *ContentController) Delete(ctx *gin.Context) {
	if err := c.ContentService.Delete(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
