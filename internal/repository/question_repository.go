package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// FindByCategoryID returns the first count questions in storage order.
func (r *QuestionRepository) FindByCategoryID(categoryID uint, count int) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("category_id = ?", categoryID).Limit(count).Find(&questions).Error
	return questions, err
}

// SampleByCategoryID returns a uniform random sample without replacement
// of size min(count, available).
func (r *QuestionRepository) SampleByCategoryID(categoryID uint, count int) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("category_id = ?", categoryID).
		Order("RAND()").
		Limit(count).
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByCategoryIDAndText(categoryID uint, text string) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	err := r.DB.Where("category_id = ? AND question = ?", categoryID, text).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Create(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}
