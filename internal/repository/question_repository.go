package repository

import (
	"sat_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// ResolveMapping looks up the canonical question behind an official (test, section,
// question number) triple. Returns gorm.ErrRecordNotFound when no mapping exists.
func (r *QuestionRepository) ResolveMapping(testID, section string, questionNumber int) (string, error) {
	var mapping model.OfficialQuestionMapping
	err := r.DB.
		Where("official_test_id = ? AND section = ? AND question_number = ?", testID, section, questionNumber).
		First(&mapping).Error
	if err != nil {
		return "", err
	}
	return mapping.CanonicalQuestionID, nil
}

func (r *QuestionRepository) FindByID(id string) (*model.CanonicalQuestion, error) {
	var q model.CanonicalQuestion
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.`order` ASC")
	}).First(&q, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindByIDs(ids []string) ([]model.CanonicalQuestion, error) {
	var qs []model.CanonicalQuestion
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.`order` ASC")
	}).Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

// FindCorrectOptions returns the correct option per canonical question id. Questions
// that do not exist are simply absent from the map.
func (r *QuestionRepository) FindCorrectOptions(ids []string) (map[string]string, error) {
	var rows []model.CanonicalQuestion
	if err := r.DB.Select("id", "correct_option_id").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	correct := make(map[string]string, len(rows))
	for _, row := range rows {
		correct[row.ID] = row.CorrectOptionID
	}
	return correct, nil
}

// FindFollowUps returns up to limit other questions sharing a concept tag, ordered by
// id so selection is deterministic.
func (r *QuestionRepository) FindFollowUps(conceptTag, excludeID string, limit int) ([]model.CanonicalQuestion, error) {
	var qs []model.CanonicalQuestion
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.`order` ASC")
	}).
		Where("concept_tag = ? AND id <> ?", conceptTag, excludeID).
		Order("id ASC").
		Limit(limit).
		Find(&qs).Error
	return qs, err
}
