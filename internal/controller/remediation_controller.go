package controller

import (
	"net/http"
	"sat_tutor_backend/internal/service"
	"sat_tutor_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type RemediationController struct {
	RemediationService *service.RemediationService
}

func NewRemediationController(remediationService *service.RemediationService) *RemediationController {
	return &RemediationController{RemediationService: remediationService}
}

// @Summary Get remediation content for missed questions
// @Tags remediation
// @Produce json
// @Security ApiKeyAuth
// @Param questionIds query string true "comma-separated canonical question ids"
// @Success 200 {object} util.Response
// @Router /remediation [get]
func (c *RemediationController) GetRemediation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	idsParam := ctx.Query("questionIds")
	if idsParam == "" {
		util.BadRequest(ctx, "missing questionIds query parameter")
		return
	}

	var ids []string
	for _, id := range strings.Split(idsParam, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		util.BadRequest(ctx, "no valid questionIds provided")
		return
	}

	items, err := c.RemediationService.Resolve(ctx.Request.Context(), ids)
	if err == util.ErrQuestionsNotFound {
		util.Error(ctx, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

type followUpSubmissionRequest struct {
	MissedQuestionID string            `json:"missedQuestionId" binding:"required"`
	Answers          map[string]string `json:"answers" binding:"required"`
}

// @Summary Submit follow-up practice answers
// @Tags remediation
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body followUpSubmissionRequest true "follow-up answers"
// @Success 200 {object} util.Response
// @Router /remediation/submit [post]
func (c *RemediationController) SubmitFollowUp(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req followUpSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(req.Answers) == 0 {
		util.BadRequest(ctx, "no answers submitted")
		return
	}

	result, err := c.RemediationService.GradeFollowUp(claims.UserID, req.MissedQuestionID, req.Answers)
	if err == util.ErrUnverifiedQuestions {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
