package repository

import (
	"sat_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type OfficialTestRepository struct {
	DB *gorm.DB
}

func NewOfficialTestRepository(db *gorm.DB) *OfficialTestRepository {
	return &OfficialTestRepository{DB: db}
}

func (r *OfficialTestRepository) ListEnabled() ([]model.OfficialTest, error) {
	var tests []model.OfficialTest
	err := r.DB.Where("enabled = ?", true).Order("id ASC").Find(&tests).Error
	return tests, err
}

func (r *OfficialTestRepository) FindByID(id string) (*model.OfficialTest, error) {
	var test model.OfficialTest
	if err := r.DB.First(&test, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}
