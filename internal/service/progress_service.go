package service

import (
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/internal/repository"
)

type ProgressService struct {
	MasteryRepo *repository.MasteryRepository
	QuizRepo    *repository.QuizRepository
}

func NewProgressService(masteryRepo *repository.MasteryRepository, quizRepo *repository.QuizRepository) *ProgressService {
	return &ProgressService{MasteryRepo: masteryRepo, QuizRepo: quizRepo}
}

// SkillBreakdown returns the caller's per-concept mastery rows.
func (s *ProgressService) SkillBreakdown(userID uint) ([]model.UserSkillMastery, error) {
	return s.MasteryRepo.ListByUser(userID)
}

type ProgressSummary struct {
	TotalQuizzes     int     `json:"totalQuizzes"`
	CompletedQuizzes int     `json:"completedQuizzes"`
	AverageScore     float64 `json:"averageScore"`
	ConceptsMastered int     `json:"conceptsMastered"`
	ConceptsTracked  int     `json:"conceptsTracked"`
}

func (s *ProgressService) Summary(userID uint) (*ProgressSummary, error) {
	quizzes, err := s.QuizRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	skills, err := s.MasteryRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{
		TotalQuizzes:    len(quizzes),
		ConceptsTracked: len(skills),
	}

	var scoreSum float64
	for _, quiz := range quizzes {
		if quiz.Status == model.QuizCompleted {
			summary.CompletedQuizzes++
			scoreSum += quiz.Score
		}
	}
	if summary.CompletedQuizzes > 0 {
		summary.AverageScore = scoreSum / float64(summary.CompletedQuizzes)
	}

	for _, skill := range skills {
		if skill.Status == model.MasteryMastered {
			summary.ConceptsMastered++
		}
	}

	return summary, nil
}
