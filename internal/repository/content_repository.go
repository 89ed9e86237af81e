package repository

import (
	"arrurru_training_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) List() ([]model.ContentPage, error) {
	var pages []model.ContentPage
	err := r.DB.Order("section asc, order_index asc").Find(&pages).Error
	return pages, err
}

func (r *ContentRepository) BySection(section model.ContentSection) ([]model.ContentPage, error) {
	var pages []model.ContentPage
	err := r.DB.Where("section = ?", section).Order("order_index asc").Find(&pages).Error
	return pages, err
}

func (r *ContentRepository) ByID(id string) (*model.ContentPage, error) {
	var page model.ContentPage
	err := r.DB.First(&page, "id = ?", id).Error
	return &page, err
}

func (r *ContentRepository) BySlug(slug string) (*model.ContentPage, error) {
	var page model.ContentPage
	err := r.DB.Where("slug = ?", slug).First(&page).Error
	return &page, err
}

// CountInSection feeds the default order index for new pages.
func (r *ContentRepository) CountInSection(section model.ContentSection) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ContentPage{}).Where("section = ?", section).Count(&count).Error
	return count, err
}

func (r *ContentRepository) ExamPages() ([]model.ContentPage, error) {
	var pages []model.ContentPage
	err := r.DB.Where("has_exam = ?", true).Find(&pages).Error
	return pages, err
}

func (r *ContentRepository) Create(page *model.ContentPage) error {
	return r.DB.Create(page).Error
}

func (r *ContentRepository) Update(page *model.ContentPage) error {
	return r.DB.Save(page).Error
}

// Delete reports whether a row was actually removed. Hard delete: a
// soft-deleted row would keep holding the page's unique slug.
func (r *ContentRepository) Delete(id string) (bool, error) {
	res := r.DB.Unscoped().Delete(&model.ContentPage{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
