package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sat_tutor_backend/internal/service"
	"sat_tutor_backend/internal/util"
	"sat_tutor_backend/pkg/logger"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HomeworkController struct {
	MistakeService *service.MistakeService
	QuizService    *service.QuizService
	StorageService *service.StorageService
}

func NewHomeworkController(mistakeService *service.MistakeService, quizService *service.QuizService, storageService *service.StorageService) *HomeworkController {
	return &HomeworkController{
		MistakeService: mistakeService,
		QuizService:    quizService,
		StorageService: storageService,
	}
}

// @Summary List the caller's homework quizzes
// @Tags homework
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /homework [get]
func (c *HomeworkController) ListHomework(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	items, err := c.QuizService.ListHomework(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// @Summary List official tests selectable on the mistake form
// @Tags homework
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /tests [get]
func (c *HomeworkController) ListTests(ctx *gin.Context) {
	tests, err := c.MistakeService.ListTests()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// @Summary Get a quiz with its ordered questions
// @Tags homework
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Success 200 {object} util.Response
// @Router /homework/quiz/{quizId} [get]
func (c *HomeworkController) GetQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := ctx.Param("quizId")
	if quizID == "" {
		util.BadRequest(ctx, "quiz id is required")
		return
	}

	view, err := c.QuizService.GetQuizForUser(quizID, claims.UserID)
	if err == util.ErrQuizNotFound {
		util.Error(ctx, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Submit quiz answers for grading
// @Tags homework
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Param body body object true "map of quiz question id to selected option id"
// @Success 200 {object} util.Response
// @Router /homework/quiz/{quizId}/submit [post]
func (c *HomeworkController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := ctx.Param("quizId")
	if quizID == "" {
		util.BadRequest(ctx, "quiz id is required")
		return
	}

	var answers map[string]string
	if err := ctx.ShouldBindJSON(&answers); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}
	if len(answers) == 0 {
		util.BadRequest(ctx, "no answers submitted")
		return
	}

	result, err := c.QuizService.Grade(quizID, claims.UserID, answers)
	switch err {
	case nil:
		util.Success(ctx, result)
	case util.ErrQuizNotFound:
		util.Error(ctx, http.StatusNotFound, err.Error())
	case util.ErrQuizAlreadyGraded:
		util.Conflict(ctx, err.Error())
	case util.ErrIncompleteSubmission:
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

type submitMistakesRequest struct {
	TestID          string                        `json:"testId" binding:"required"`
	MissedQuestions []service.MissedQuestionEntry `json:"missedQuestions" binding:"required,min=1,dive"`
}

// @Summary Submit missed questions from an official test
// @Description Accepts JSON or multipart form data. An attached mistake-sheet file is
// @Description archived but never parsed; a file-only submission returns 501.
// @Tags homework
// @Accept json
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param body body submitMistakesRequest true "missed questions"
// @Success 201 {object} util.Response
// @Router /homework/submit-mistakes [post]
func (c *HomeworkController) SubmitMistakes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitMistakesRequest
	contentType := ctx.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if !c.bindMultipart(ctx, claims.UserID, &req) {
			return
		}
	} else {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	result, err := c.MistakeService.SubmitMistakes(claims.UserID, req.TestID, req.MissedQuestions)
	if err == util.ErrNoQuestionsMapped {
		ctx.JSON(http.StatusBadRequest, util.Response{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Data:    gin.H{"unmappedDetails": result.UnmappedDetails},
		})
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// bindMultipart extracts the mistake form fields, archiving any attached file. It
// reports whether handling should continue; on false, a response has been written.
func (c *HomeworkController) bindMultipart(ctx *gin.Context, userID uint, req *submitMistakesRequest) bool {
	req.TestID = ctx.PostForm("testId")
	if req.TestID == "" {
		util.BadRequest(ctx, "testId is required")
		return false
	}

	missedJSON := ctx.PostForm("missedQuestions")
	if missedJSON != "" {
		if err := json.Unmarshal([]byte(missedJSON), &req.MissedQuestions); err != nil {
			util.BadRequest(ctx, "invalid format for manually entered questions")
			return false
		}
		for _, entry := range req.MissedQuestions {
			if entry.Section == "" || entry.QuestionNumber < 1 {
				util.BadRequest(ctx, "invalid format for manually entered questions")
				return false
			}
		}
	}

	file, err := ctx.FormFile("file")
	if err == nil && file != nil {
		// archive the sheet for later; parsing is not implemented
		src, openErr := file.Open()
		if openErr == nil {
			objectName := fmt.Sprintf("mistake-sheets/%d/%d-%s", userID, time.Now().Unix(), file.Filename)
			contentType := file.Header.Get("Content-Type")
			if contentType == "" {
				contentType = util.MimeOctetStream
			}
			if _, upErr := c.StorageService.Upload(ctx.Request.Context(), objectName, src, file.Size, contentType); upErr != nil {
				logger.Log.Error("failed to archive mistake sheet", zap.String("filename", file.Filename), zap.Error(upErr))
			} else {
				logger.Log.Info("archived mistake sheet, parsing not implemented",
					zap.String("filename", file.Filename), zap.Int64("size", file.Size))
			}
			src.Close()
		}

		if len(req.MissedQuestions) == 0 {
			util.NotImplemented(ctx, util.ErrFileParsingNotReady.Error())
			return false
		}
	}

	if len(req.MissedQuestions) == 0 {
		util.BadRequest(ctx, "either a file upload or manual question entry is required")
		return false
	}
	return true
}
