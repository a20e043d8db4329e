package repository

import (
	"sat_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerResultRepository struct {
	DB *gorm.DB
}

func NewAnswerResultRepository(db *gorm.DB) *AnswerResultRepository {
	return &AnswerResultRepository{DB: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *AnswerResultRepository) WithTx(tx *gorm.DB) *AnswerResultRepository {
	return &AnswerResultRepository{DB: tx}
}

func (r *AnswerResultRepository) BulkCreate(results []model.AnswerResult) error {
	if len(results) == 0 {
		return nil
	}
	return r.DB.Create(&results).Error
}
