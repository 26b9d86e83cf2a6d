package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// FindAll lists categories in creation order.
func (r *CategoryRepository) FindAll() ([]model.QuizCategory, error) {
	var categories []model.QuizCategory
	err := r.DB.Order("created_at ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByID(id uint) (*model.QuizCategory, error) {
	var category model.QuizCategory
	err := r.DB.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(name string) (*model.QuizCategory, error) {
	var category model.QuizCategory
	err := r.DB.Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Create(category *model.QuizCategory) error {
	return r.DB.Create(category).Error
}
