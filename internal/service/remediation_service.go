package service

import (
	"context"
	"encoding/json"
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/internal/repository"
	"sat_tutor_backend/internal/util"
	"sat_tutor_backend/pkg/logger"
	"sat_tutor_backend/pkg/monitoring"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MasteryThreshold is the minimum correct count in a follow-up set required to mark
// a concept mastered ("at least 2 of however many asked", not a fraction).
const MasteryThreshold = 2

// FollowUpLimit is the default cap on practice questions served per missed
// question, used when the configured limit is absent.
const FollowUpLimit = 3

const remediationCacheTTL = 10 * time.Minute

// RemediationService finds follow-up practice for missed questions and closes the
// loop by grading follow-up sets and recording concept mastery.
type RemediationService struct {
	QuestionRepo  *repository.QuestionRepository
	MasteryRepo   *repository.MasteryRepository
	rdb           *redis.Client
	followUpLimit int
}

func NewRemediationService(questionRepo *repository.QuestionRepository, masteryRepo *repository.MasteryRepository, rdb *redis.Client, followUpLimit int) *RemediationService {
	if followUpLimit <= 0 {
		followUpLimit = FollowUpLimit
	}
	return &RemediationService{
		QuestionRepo:  questionRepo,
		MasteryRepo:   masteryRepo,
		rdb:           rdb,
		followUpLimit: followUpLimit,
	}
}

type FollowUpQuestion struct {
	ID      string                 `json:"id"`
	Text    string                 `json:"text"`
	Options []model.QuestionOption `json:"options"`
}

type RemediationItem struct {
	MissedQuestionID  string             `json:"missedQuestionId"`
	ConceptTag        string             `json:"conceptTag,omitempty"`
	VideoURL          string             `json:"videoUrl,omitempty"`
	PDFURL            string             `json:"pdfUrl,omitempty"`
	FollowUpQuestions []FollowUpQuestion `json:"followUpQuestions"`
}

// Resolve builds one remediation item per missed canonical question: linked
// video/PDF resources plus up to FollowUpLimit practice questions sharing the
// concept tag. One item's lookup failure never aborts the batch.
func (s *RemediationService) Resolve(ctx context.Context, missedIDs []string) ([]RemediationItem, error) {
	cacheKey := "remediation:" + strings.Join(missedIDs, ",")
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var items []RemediationItem
			if json.Unmarshal([]byte(cached), &items) == nil {
				return items, nil
			}
		}
	}

	missedQuestions, err := s.QuestionRepo.FindByIDs(missedIDs)
	if err != nil {
		return nil, err
	}
	if len(missedQuestions) == 0 {
		return nil, util.ErrQuestionsNotFound
	}

	items := make([]RemediationItem, 0, len(missedQuestions))
	for _, missed := range missedQuestions {
		item := RemediationItem{
			MissedQuestionID:  missed.ID,
			ConceptTag:        missed.ConceptTag,
			VideoURL:          missed.VideoURL,
			PDFURL:            missed.PDFURL,
			FollowUpQuestions: []FollowUpQuestion{},
		}

		if missed.ConceptTag == "" {
			logger.Log.Warn("missed question has no concept tag, cannot fetch follow-ups",
				zap.String("questionId", missed.ID))
			items = append(items, item)
			continue
		}

		followUps, err := s.QuestionRepo.FindFollowUps(missed.ConceptTag, missed.ID, s.followUpLimit)
		if err != nil {
			logger.Log.Error("follow-up lookup failed",
				zap.String("questionId", missed.ID),
				zap.String("conceptTag", missed.ConceptTag),
				zap.Error(err))
			items = append(items, item)
			continue
		}

		for _, fq := range followUps {
			item.FollowUpQuestions = append(item.FollowUpQuestions, FollowUpQuestion{
				ID:      fq.ID,
				Text:    fq.Text,
				Options: fq.Options,
			})
		}
		items = append(items, item)
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(items); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, remediationCacheTTL).Err(); err != nil {
				logger.Log.Debug("failed to cache remediation items", zap.Error(err))
			}
		}
	}

	return items, nil
}

type FollowUpResult struct {
	CorrectCount   int  `json:"correctCount"`
	TotalQuestions int  `json:"totalQuestions"`
	Mastered       bool `json:"mastered"`
}

// GradeFollowUp grades a follow-up practice set and, at or above the mastery
// threshold, upserts the concept's mastery record. The mastery write is best-effort:
// its failure never invalidates the grading result.
func (s *RemediationService) GradeFollowUp(userID uint, missedQuestionID string, answers map[string]string) (*FollowUpResult, error) {
	submittedIDs := make([]string, 0, len(answers))
	for id := range answers {
		submittedIDs = append(submittedIDs, id)
	}

	correct, err := s.QuestionRepo.FindCorrectOptions(submittedIDs)
	if err != nil {
		return nil, err
	}
	if len(correct) != len(submittedIDs) {
		return nil, util.ErrUnverifiedQuestions
	}

	correctCount := 0
	for id, selected := range answers {
		if correctOption, ok := correct[id]; ok && correctOption != "" && selected == correctOption {
			correctCount++
		}
	}

	mastered := correctCount >= MasteryThreshold
	if mastered {
		s.recordMastery(userID, missedQuestionID)
	}

	return &FollowUpResult{
		CorrectCount:   correctCount,
		TotalQuestions: len(submittedIDs),
		Mastered:       mastered,
	}, nil
}

func (s *RemediationService) recordMastery(userID uint, missedQuestionID string) {
	missed, err := s.QuestionRepo.FindByID(missedQuestionID)
	if err != nil {
		logger.Log.Warn("could not load mastered question to record mastery",
			zap.String("questionId", missedQuestionID), zap.Error(err))
		return
	}
	if missed.ConceptTag == "" {
		logger.Log.Warn("mastered question has no concept tag, skipping mastery upsert",
			zap.String("questionId", missedQuestionID))
		return
	}

	if err := s.MasteryRepo.UpsertMastered(userID, missed.ConceptTag); err != nil {
		logger.Log.Error("mastery upsert failed",
			zap.Uint("userId", userID),
			zap.String("conceptTag", missed.ConceptTag),
			zap.Error(err))
		return
	}

	monitoring.ConceptsMastered.Inc()
	logger.Log.Info("concept mastered",
		zap.Uint("userId", userID),
		zap.String("conceptTag", missed.ConceptTag))
}
