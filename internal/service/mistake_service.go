package service

import (
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/internal/repository"
	"sat_tutor_backend/internal/util"
	"sat_tutor_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MistakeService maps a student's missed official questions to canonical questions
// and assembles a personalized quiz from them.
type MistakeService struct {
	QuestionRepo *repository.QuestionRepository
	QuizRepo     *repository.QuizRepository
	TestRepo     *repository.OfficialTestRepository
}

func NewMistakeService(questionRepo *repository.QuestionRepository, quizRepo *repository.QuizRepository, testRepo *repository.OfficialTestRepository) *MistakeService {
	return &MistakeService{
		QuestionRepo: questionRepo,
		QuizRepo:     quizRepo,
		TestRepo:     testRepo,
	}
}

type MissedQuestionEntry struct {
	Section        string `json:"section" binding:"required"`
	QuestionNumber int    `json:"questionNumber" binding:"required,min=1"`
}

type UnmappedDetail struct {
	Section        string `json:"section"`
	QuestionNumber int    `json:"questionNumber"`
	Reason         string `json:"reason"`
}

type MistakeSubmissionResult struct {
	QuizID          string           `json:"quizId"`
	MappedCount     int              `json:"mappedCount"`
	SubmittedCount  int              `json:"submittedCount"`
	UnmappedCount   int              `json:"unmappedCount"`
	UnmappedDetails []UnmappedDetail `json:"unmappedDetails"`
}

const (
	reasonNoMapping    = "no corresponding question found"
	reasonLookupFailed = "lookup failed"
)

// SubmitMistakes resolves each missed entry to a canonical question and assembles a
// pending quiz from the subset that maps. Unmapped entries are reported, not fatal;
// only a fully unmapped batch is an error.
func (s *MistakeService) SubmitMistakes(userID uint, testID string, entries []MissedQuestionEntry) (*MistakeSubmissionResult, error) {
	var mapped []string
	var unmapped []UnmappedDetail

	for _, entry := range entries {
		canonicalID, err := s.QuestionRepo.ResolveMapping(testID, entry.Section, entry.QuestionNumber)
		if err == gorm.ErrRecordNotFound {
			logger.Log.Warn("no mapping for missed question",
				zap.String("testId", testID),
				zap.String("section", entry.Section),
				zap.Int("questionNumber", entry.QuestionNumber))
			unmapped = append(unmapped, UnmappedDetail{entry.Section, entry.QuestionNumber, reasonNoMapping})
			continue
		}
		if err != nil {
			logger.Log.Error("mapping lookup failed",
				zap.String("testId", testID),
				zap.String("section", entry.Section),
				zap.Int("questionNumber", entry.QuestionNumber),
				zap.Error(err))
			unmapped = append(unmapped, UnmappedDetail{entry.Section, entry.QuestionNumber, reasonLookupFailed})
			continue
		}
		mapped = append(mapped, canonicalID)
	}

	if len(mapped) == 0 {
		return &MistakeSubmissionResult{
			SubmittedCount:  len(entries),
			UnmappedCount:   len(unmapped),
			UnmappedDetails: unmapped,
		}, util.ErrNoQuestionsMapped
	}

	unique := dedupePreservingOrder(mapped)

	quiz := &model.Quiz{
		UserID:       userID,
		Status:       model.QuizPending,
		SourceTestID: testID,
	}
	questions := make([]model.QuizQuestion, 0, len(unique))
	for i, canonicalID := range unique {
		questions = append(questions, model.QuizQuestion{
			CanonicalQuestionID: canonicalID,
			Order:               i + 1,
		})
	}

	if err := s.QuizRepo.CreateWithQuestions(quiz, questions); err != nil {
		return nil, err
	}

	return &MistakeSubmissionResult{
		QuizID:          quiz.ID,
		MappedCount:     len(unique),
		SubmittedCount:  len(entries),
		UnmappedCount:   len(unmapped),
		UnmappedDetails: unmapped,
	}, nil
}

func (s *MistakeService) ListTests() ([]model.OfficialTest, error) {
	return s.TestRepo.ListEnabled()
}

func dedupePreservingOrder(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}
