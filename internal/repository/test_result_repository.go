package repository

import (
	"arrurru_training_backend/internal/model"

	"gorm.io/gorm"
)

type TestResultRepository struct {
	DB *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) *TestResultRepository {
	return &TestResultRepository{DB: db}
}

func (r *TestResultRepository) Append(result *model.TestResult) error {
	return r.DB.Create(result).Error
}

func (r *TestResultRepository) ByID(id uint) (*model.TestResult, error) {
	var result model.TestResult
	err := r.DB.First(&result, id).Error
	return &result, err
}

func (r *TestResultRepository) List(contentID string, onlyUnreviewed bool, page, limit int) ([]model.TestResult, int64, error) {
	var results []model.TestResult
	var total int64

	query := r.DB.Model(&model.TestResult{})
	if contentID != "" {
		query = query.Where("content_id = ?", contentID)
	}
	if onlyUnreviewed {
		query = query.Where("reviewed = ?", false)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("completed_at desc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}

func (r *TestResultRepository) MarkReviewed(id uint) error {
	return r.DB.Model(&model.TestResult{}).Where("id = ?", id).Update("reviewed", true).Error
}
