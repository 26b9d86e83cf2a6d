package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type AnalysisRepository struct {
	DB *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{DB: db}
}

func (r *AnalysisRepository) Create(analysis *model.AIAnalysisResult) error {
	return r.DB.Create(analysis).Error
}

// FindLatestByAttempt returns the most recently created analysis for an
// attempt, or gorm.ErrRecordNotFound. Uniqueness per attempt is not
// enforced; most recent wins.
func (r *AnalysisRepository) FindLatestByAttempt(userID, attemptID uint) (*model.AIAnalysisResult, error) {
	var analysis model.AIAnalysisResult
	err := r.DB.Where("user_id = ? AND quiz_attempt_id = ?", userID, attemptID).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}
