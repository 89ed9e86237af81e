package controller

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"arrurru_training_backend/internal/service"
	"arrurru_training_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadSize = 200 << 20 // 200 MB

var allowedExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".mp4": true, ".mov": true, ".webm": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true,
}

// Office formats sniff as zip or the generic octet-stream.
var allowedMimeTypes = []string{
	"image/", "video/", "application/pdf",
	"application/zip", "application/octet-stream", "application/msword",
}

type UploadController struct {
	StorageService *service.StorageService
	Logger         *zap.Logger
}

func NewUploadController(storageService *service.StorageService, logger *zap.Logger) *UploadController {
	return &UploadController{StorageService: storageService, Logger: logger}
}

type uploadResponse struct {
	URL             string  `json:"url"`
	Name            string  `json:"name"`
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
}

// Upload godoc
// @Summary Upload an attachment
// @Description Stores a page attachment; videos are probed for duration
// @Tags upload
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "File to upload"
// @Success 201 {object} util.Response{data=uploadResponse}
// @Failure 400 {object} util.Response "Missing file or unsupported type"
// @Security BearerAuth
// @Router /api/admin/upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if header.Size > maxUploadSize {
		util.BadRequest(ctx, "file too large")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		util.BadRequest(ctx, "unsupported file type")
		return
	}

	// Spool to a temp file first so videos can be probed before upload.
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	src, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()
	if _, err := io.Copy(tmp, src); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if _, err := util.ValidateMimeType(tmp, allowedMimeTypes); err != nil {
		util.BadRequest(ctx, "file content does not match an allowed type")
		return
	}

	resp := uploadResponse{Name: header.Filename}
	if videoExtensions[ext] {
		info, err := util.GetVideoInfo(tmp.Name())
		if err != nil {
			c.Logger.Warn("video probe failed", zap.String("file", header.Filename), zap.Error(err))
		} else {
			resp.DurationSeconds = info.Duration
		}
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	filename := fmt.Sprintf("%s/%s%s", time.Now().Format("2006/01"), uuid.New().String(), ext)
	contentType := header.Header.Get("Content-Type")
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, tmp, header.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	resp.URL = url
	util.Created(ctx, resp)
}
