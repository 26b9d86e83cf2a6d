package service

import (
	"strconv"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
)

const (
	minQuestionCount     = 1
	maxQuestionCount     = 100
	defaultQuestionCount = 10
)

// QuizService exposes the category/question store contract: category
// listing in creation order, and bounded question sampling.
type QuizService struct {
	CategoryRepo *repository.CategoryRepository
	QuestionRepo *repository.QuestionRepository
}

func NewQuizService(categoryRepo *repository.CategoryRepository, questionRepo *repository.QuestionRepository) *QuizService {
	return &QuizService{
		CategoryRepo: categoryRepo,
		QuestionRepo: questionRepo,
	}
}

func (s *QuizService) ListCategories() ([]model.QuizCategory, error) {
	return s.CategoryRepo.FindAll()
}

func (s *QuizService) FindCategory(id uint) (*model.QuizCategory, error) {
	return s.CategoryRepo.FindByID(id)
}

// ClampCount bounds a requested question count to [1,100], falling back
// to the default when the raw value does not parse.
func ClampCount(raw string) int {
	count, err := strconv.Atoi(raw)
	if err != nil {
		count = defaultQuestionCount
	}
	if count < minQuestionCount {
		count = minQuestionCount
	}
	if count > maxQuestionCount {
		count = maxQuestionCount
	}
	return count
}

// GetQuestions resolves questions for a category. A missing, invalid, or
// literal "undefined" category id yields an empty slice, never an error.
// With random=true the result is a uniform sample without replacement.
func (s *QuizService) GetQuestions(categoryID string, count int, random bool) ([]model.QuizQuestion, error) {
	if categoryID == "" || categoryID == "undefined" {
		return []model.QuizQuestion{}, nil
	}

	id, err := strconv.ParseUint(categoryID, 10, 64)
	if err != nil {
		return []model.QuizQuestion{}, nil
	}

	if random {
		return s.QuestionRepo.SampleByCategoryID(uint(id), count)
	}
	return s.QuestionRepo.FindByCategoryID(uint(id), count)
}
