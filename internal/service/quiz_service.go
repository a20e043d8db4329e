package service

import (
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/internal/repository"
	"sat_tutor_backend/internal/util"
	"sat_tutor_backend/pkg/logger"
	"sat_tutor_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo   *repository.QuizRepository
	AnswerRepo *repository.AnswerResultRepository
	db         *gorm.DB
}

func NewQuizService(quizRepo *repository.QuizRepository, answerRepo *repository.AnswerResultRepository, db *gorm.DB) *QuizService {
	return &QuizService{
		QuizRepo:   quizRepo,
		AnswerRepo: answerRepo,
		db:         db,
	}
}

type QuizQuestionView struct {
	ID                  string                 `json:"id"`
	Order               int                    `json:"order"`
	CanonicalQuestionID string                 `json:"canonicalQuestionId"`
	Text                string                 `json:"text"`
	Options             []model.QuestionOption `json:"options"`
}

type QuizView struct {
	ID           string             `json:"id"`
	Status       model.QuizStatus   `json:"status"`
	SourceTestID string             `json:"sourceTestId,omitempty"`
	CreatedAt    string             `json:"createdAt"`
	Questions    []QuizQuestionView `json:"questions"`
}

type GradingResult struct {
	Score                      float64  `json:"score"`
	CorrectCount               int      `json:"correctCount"`
	TotalQuestions             int      `json:"totalQuestions"`
	MissedCanonicalQuestionIDs []string `json:"missedCanonicalQuestionIds"`
}

// GetQuizForUser returns the quiz and its ordered questions without the correct
// option ids. Questions whose canonical join failed are filtered out.
func (s *QuizService) GetQuizForUser(quizID string, userID uint) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindByIDForUser(quizID, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	questions, err := s.QuizRepo.FindQuestions(quizID)
	if err != nil {
		return nil, err
	}

	view := &QuizView{
		ID:           quiz.ID,
		Status:       quiz.Status,
		SourceTestID: quiz.SourceTestID,
		CreatedAt:    quiz.CreatedAt.Format(util.TimeFormat),
	}
	for _, q := range questions {
		if q.Canonical == nil {
			logger.Log.Warn("quiz question missing canonical question",
				zap.String("quizQuestionId", q.ID),
				zap.String("canonicalQuestionId", q.CanonicalQuestionID))
			continue
		}
		view.Questions = append(view.Questions, QuizQuestionView{
			ID:                  q.ID,
			Order:               q.Order,
			CanonicalQuestionID: q.CanonicalQuestionID,
			Text:                q.Canonical.Text,
			Options:             q.Canonical.Options,
		})
	}

	return view, nil
}

// Grade scores a pending quiz against the submitted answers. The status transition
// and the answer-result insert happen in one transaction with a conditional update,
// so two racing submissions cannot both grade the same quiz.
func (s *QuizService) Grade(quizID string, userID uint, answers map[string]string) (*GradingResult, error) {
	quiz, err := s.QuizRepo.FindByIDForUser(quizID, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	if quiz.Status != model.QuizPending {
		return nil, util.ErrQuizAlreadyGraded
	}

	questions, err := s.QuizRepo.FindQuestions(quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrQuizNotFound
	}

	// The submission must cover exactly the quiz's question set.
	if len(answers) != len(questions) {
		return nil, util.ErrIncompleteSubmission
	}
	for _, q := range questions {
		if _, ok := answers[q.ID]; !ok {
			return nil, util.ErrIncompleteSubmission
		}
	}

	correctCount := 0
	var missed []string
	results := make([]model.AnswerResult, 0, len(questions))
	for _, q := range questions {
		if q.Canonical == nil {
			// data integrity issue: skip grading this question rather than auto-failing it
			logger.Log.Warn("skipping quiz question with missing canonical question",
				zap.String("quizQuestionId", q.ID),
				zap.String("canonicalQuestionId", q.CanonicalQuestionID))
			continue
		}

		selected := answers[q.ID]
		isCorrect := selected == q.Canonical.CorrectOptionID
		if isCorrect {
			correctCount++
		} else {
			missed = append(missed, q.CanonicalQuestionID)
		}

		results = append(results, model.AnswerResult{
			UserID:           userID,
			QuizID:           quizID,
			QuizQuestionID:   q.ID,
			SelectedOptionID: selected,
			IsCorrect:        isCorrect,
		})
	}

	totalQuestions := len(questions)
	score := util.Round1(float64(correctCount) / float64(totalQuestions) * 100)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := s.QuizRepo.WithTx(tx).CompleteIfPending(quizID, score)
		if err != nil {
			return err
		}
		if affected == 0 {
			// a concurrent submission won the race
			return util.ErrQuizAlreadyGraded
		}
		return s.AnswerRepo.WithTx(tx).BulkCreate(results)
	})
	if err != nil {
		return nil, err
	}

	monitoring.QuizzesGraded.Inc()

	return &GradingResult{
		Score:                      score,
		CorrectCount:               correctCount,
		TotalQuestions:             totalQuestions,
		MissedCanonicalQuestionIDs: missed,
	}, nil
}

type HomeworkItem struct {
	QuizID        string           `json:"quizId"`
	Status        model.QuizStatus `json:"status"`
	SourceTestID  string           `json:"sourceTestId,omitempty"`
	Score         float64          `json:"score"`
	QuestionCount int64            `json:"questionCount"`
	CreatedAt     string           `json:"createdAt"`
}

// ListHomework returns the caller's quizzes, newest first, with score summaries.
func (s *QuizService) ListHomework(userID uint) ([]HomeworkItem, error) {
	quizzes, err := s.QuizRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]HomeworkItem, 0, len(quizzes))
	for _, quiz := range quizzes {
		count, err := s.QuizRepo.CountQuestions(quiz.ID)
		if err != nil {
			logger.Log.Error("failed to count quiz questions", zap.String("quizId", quiz.ID), zap.Error(err))
		}
		items = append(items, HomeworkItem{
			QuizID:        quiz.ID,
			Status:        quiz.Status,
			SourceTestID:  quiz.SourceTestID,
			Score:         quiz.Score,
			QuestionCount: count,
			CreatedAt:     quiz.CreatedAt.Format(util.TimeFormat),
		})
	}
	return items, nil
}
