package repository

import (
	"arrurru_training_backend/internal/model"

	"gorm.io/gorm"
)

// ExamResultRepository is append-only: attempts are never updated or
// deleted, the log is the audit trail behind the statistics views.
type ExamResultRepository struct {
	DB *gorm.DB
}

func NewExamResultRepository(db *gorm.DB) *ExamResultRepository {
	return &ExamResultRepository{DB: db}
}

func (r *ExamResultRepository) Append(result *model.ExamResult) error {
	return r.DB.Create(result).Error
}

func (r *ExamResultRepository) ByUser(userID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Where("user_id = ?", userID).Order("completed_at desc").Find(&results).Error
	return results, err
}

func (r *ExamResultRepository) ByContent(contentID string) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Where("content_id = ?", contentID).Order("completed_at desc").Find(&results).Error
	return results, err
}

func (r *ExamResultRepository) All() ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Order("completed_at desc").Find(&results).Error
	return results, err
}
