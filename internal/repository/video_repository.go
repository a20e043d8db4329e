package repository

import (
	"sat_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	DB *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

func (r *VideoRepository) List(conceptTag string) ([]model.VideoLesson, error) {
	var videos []model.VideoLesson
	query := r.DB.Order("created_at DESC")
	if conceptTag != "" {
		query = query.Where("concept_tag = ?", conceptTag)
	}
	err := query.Find(&videos).Error
	return videos, err
}

func (r *VideoRepository) FindByID(id string) (*model.VideoLesson, error) {
	var video model.VideoLesson
	if err := r.DB.First(&video, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}
