package controller

import (
	"sat_tutor_backend/internal/service"
	"sat_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VideoController struct {
	VideoService *service.VideoService
}

func NewVideoController(videoService *service.VideoService) *VideoController {
	return &VideoController{VideoService: videoService}
}

// @Summary List video lessons
// @Tags videos
// @Produce json
// @Security ApiKeyAuth
// @Param conceptTag query string false "filter by concept tag"
// @Success 200 {object} util.Response
// @Router /videos [get]
func (c *VideoController) ListVideos(ctx *gin.Context) {
	videos, err := c.VideoService.List(ctx.Query("conceptTag"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}

// @Summary Get a video lesson
// @Tags videos
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "video id"
// @Success 200 {object} util.Response
// @Router /videos/{id} [get]
func (c *VideoController) GetVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	video, err := c.VideoService.Get(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	c.VideoService.RecordWatch(ctx.Request.Context(), claims.UserID, video.ID)
	util.Success(ctx, video)
}

// @Summary List the caller's recently watched videos
// @Tags videos
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /videos/recent [get]
func (c *VideoController) RecentVideos(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	videos, err := c.VideoService.RecentlyWatched(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}
