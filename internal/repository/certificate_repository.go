package repository

import (
	"arrurru_training_backend/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) ByUser(userID uint) (*model.CertificateRequest, error) {
	var req model.CertificateRequest
	err := r.DB.Where("user_id = ?", userID).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *CertificateRepository) Create(req *model.CertificateRequest) error {
	return r.DB.Create(req).Error
}

func (r *CertificateRepository) List() ([]model.CertificateRequest, error) {
	var reqs []model.CertificateRequest
	err := r.DB.Order("requested_at desc").Find(&reqs).Error
	return reqs, err
}

func (r *CertificateRepository) SetApproved(userID uint, approved bool) error {
	res := r.DB.Model(&model.CertificateRequest{}).
		Where("user_id = ?", userID).
		Update("approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the row for real: the unique index on user_id must not be
// blocked by a soft-deleted request when the user re-applies.
func (r *CertificateRepository) Delete(userID uint) error {
	res := r.DB.Unscoped().Where("user_id = ?", userID).Delete(&model.CertificateRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
