package repository

import (
	"arrurru_training_backend/internal/model"

	"gorm.io/gorm"
)

type InvitationRepository struct {
	DB *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{DB: db}
}

// Upsert keeps at most one invitation per email: re-issuing replaces the
// token and pushes the expiry forward.
func (r *InvitationRepository) Upsert(inv *model.Invitation) error {
	var existing model.Invitation
	err := r.DB.Where("email = ?", inv.Email).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(inv).Error
	}
	if err != nil {
		return err
	}
	existing.Token = inv.Token
	existing.ExpiresAt = inv.ExpiresAt
	if err := r.DB.Save(&existing).Error; err != nil {
		return err
	}
	inv.ID = existing.ID
	return nil
}

func (r *InvitationRepository) FindByToken(token string) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.DB.Where("token = ?", token).First(&inv).Error
	return &inv, err
}

func (r *InvitationRepository) List() ([]model.Invitation, error) {
	var invs []model.Invitation
	err := r.DB.Order("created_at desc").Find(&invs).Error
	return invs, err
}

// Delete is unscoped so a revoked email can be re-invited without tripping
// the unique index.
func (r *InvitationRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Invitation{}, id).Error
}
