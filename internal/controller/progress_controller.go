package controller

import (
	"sat_tutor_backend/internal/service"
	"sat_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary Get the caller's progress summary
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /progress [get]
func (c *ProgressController) GetSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.ProgressService.Summary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary Get the caller's per-concept mastery breakdown
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /progress/skills [get]
func (c *ProgressController) GetSkillBreakdown(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	skills, err := c.ProgressService.SkillBreakdown(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// @Summary Get a student's progress (tutors only)
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "student user id"
// @Success 200 {object} util.Response
// @Router /tutor/students/{id}/progress [get]
func (c *ProgressController) GetStudentProgress(ctx *gin.Context) {
	studentID := util.MustParseUint(ctx.Param("id"))
	if studentID == 0 {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	summary, err := c.ProgressService.Summary(studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	skills, err := c.ProgressService.SkillBreakdown(studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"summary": summary, "skills": skills})
}
