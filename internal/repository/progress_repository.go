package repository

import (
	"arrurru_training_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) ByUser(userID uint) ([]model.UserProgress, error) {
	var progress []model.UserProgress
	err := r.DB.Where("user_id = ?", userID).Order("content_id asc").Find(&progress).Error
	return progress, err
}

func (r *ProgressRepository) ByUserAndContent(userID uint, contentID string) (*model.UserProgress, error) {
	var p model.UserProgress
	err := r.DB.Where("user_id = ? AND content_id = ?", userID, contentID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) All() ([]model.UserProgress, error) {
	var progress []model.UserProgress
	err := r.DB.Find(&progress).Error
	return progress, err
}

// Upsert is the single write path for progress. The row matching
// (user_id, content_id) is replaced wholesale; callers pass the complete
// updated record, attempt counter included. A new pair inserts exactly one
// row.
func (r *ProgressRepository) Upsert(p *model.UserProgress) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.UserProgress
		err := tx.Where("user_id = ? AND content_id = ?", p.UserID, p.ContentID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(p).Error
		}
		if err != nil {
			return err
		}
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		return tx.Save(p).Error
	})
}
