package repository

import (
	"arrurru_training_backend/internal/model"

	"gorm.io/gorm"
)

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

// Get returns the stored value, or "" when the key has never been written.
func (r *SettingRepository) Get(key string) (string, error) {
	var s model.Setting
	err := r.DB.Where("`key` = ?", key).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.Value, nil
}

func (r *SettingRepository) Set(key, value string) error {
	var s model.Setting
	err := r.DB.Where("`key` = ?", key).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(&model.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	s.Value = value
	return r.DB.Save(&s).Error
}
