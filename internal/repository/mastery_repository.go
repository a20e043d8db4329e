package repository

import (
	"sat_tutor_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MasteryRepository struct {
	DB *gorm.DB
}

func NewMasteryRepository(db *gorm.DB) *MasteryRepository {
	return &MasteryRepository{DB: db}
}

// UpsertMastered marks a concept mastered for a user, keyed on (user_id, concept_tag).
func (r *MasteryRepository) UpsertMastered(userID uint, conceptTag string) error {
	row := model.UserSkillMastery{
		UserID:      userID,
		ConceptTag:  conceptTag,
		Status:      model.MasteryMastered,
		LastUpdated: time.Now(),
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "concept_tag"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "last_updated", "updated_at"}),
	}).Create(&row).Error
}

func (r *MasteryRepository) ListByUser(userID uint) ([]model.UserSkillMastery, error) {
	var rows []model.UserSkillMastery
	err := r.DB.Where("user_id = ?", userID).Order("concept_tag ASC").Find(&rows).Error
	return rows, err
}
