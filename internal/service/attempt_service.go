package service

import (
	"math"
	"time"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/session"
)

// AttemptView is the wire shape of one history entry: the attempt joined
// with its category's name/color and the latest analysis, if any.
type AttemptView struct {
	ID             uint          `json:"id"`
	Score          int           `json:"score"`
	TotalQuestions int           `json:"total_questions"`
	CompletedAt    time.Time     `json:"completed_at"`
	TimeTaken      int           `json:"time_taken"`
	Category       CategoryView  `json:"category"`
	Analysis       *AnalysisView `json:"analysis"`
}

type CategoryView struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type AnalysisView struct {
	OverallFeedback      string   `json:"overall_feedback"`
	WeakAreas            []string `json:"weak_areas"`
	StudyRecommendations []string `json:"study_recommendations"`
	NextSteps            []string `json:"next_steps"`
}

// Stats aggregates a user's attempt history. The average is weighted
// across attempts (sum of scores over sum of totals), not a mean of
// per-attempt percentages.
type Stats struct {
	TotalAttempts  int `json:"total_attempts"`
	AverageScore   int `json:"average_score"`
	BestScore      int `json:"best_score"`
	TotalTimeSpent int `json:"total_time_spent"`
}

type AttemptService struct {
	AttemptRepo  *repository.AttemptRepository
	CategoryRepo *repository.CategoryRepository
	AnalysisRepo *repository.AnalysisRepository
}

func NewAttemptService(attemptRepo *repository.AttemptRepository, categoryRepo *repository.CategoryRepository, analysisRepo *repository.AnalysisRepository) *AttemptService {
	return &AttemptService{
		AttemptRepo:  attemptRepo,
		CategoryRepo: categoryRepo,
		AnalysisRepo: analysisRepo,
	}
}

// Record persists an attempt directly, as submitted by a client-driven
// quiz flow.
func (s *AttemptService) Record(attempt *model.QuizAttempt) error {
	if attempt.CompletedAt.IsZero() {
		attempt.CompletedAt = time.Now()
	}
	return s.AttemptRepo.Create(attempt)
}

// RecordCompletion persists the outcome of a server-driven session.
// AI-sourced sessions carry no category and must not reach this path.
func (s *AttemptService) RecordCompletion(userID uint, ev *session.CompletionEvent) (*model.QuizAttempt, error) {
	attempt := &model.QuizAttempt{
		UserID:         userID,
		CategoryID:     ev.CategoryID,
		Score:          ev.Score,
		TotalQuestions: ev.TotalQuestions,
		Answers:        ev.Answers,
		TimeTaken:      ev.TimeTaken,
		CompletedAt:    time.Now(),
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// List returns the user's attempts, most recent first, each joined
// with category info and the most recently created analysis.
func (s *AttemptService) List(userID uint) ([]AttemptView, error) {
	attempts, err := s.AttemptRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	views := make([]AttemptView, 0, len(attempts))
	for _, attempt := range attempts {
		view := AttemptView{
			ID:             attempt.ID,
			Score:          attempt.Score,
			TotalQuestions: attempt.TotalQuestions,
			CompletedAt:    attempt.CompletedAt,
			TimeTaken:      attempt.TimeTaken,
			Category:       CategoryView{Name: "Unknown Category", Color: "#6b7280"},
		}

		if category, err := s.CategoryRepo.FindByID(attempt.CategoryID); err == nil {
			view.Category = CategoryView{Name: category.Name, Color: category.Color}
		}

		if analysis, err := s.AnalysisRepo.FindLatestByAttempt(userID, attempt.ID); err == nil {
			view.Analysis = &AnalysisView{
				OverallFeedback:      analysis.OverallFeedback,
				WeakAreas:            analysis.WeakAreas,
				StudyRecommendations: analysis.StudyRecommendations,
				NextSteps:            analysis.NextSteps,
			}
		}

		views = append(views, view)
	}

	return views, nil
}

func (s *AttemptService) Stats(userID uint) (Stats, error) {
	attempts, err := s.AttemptRepo.FindByUserID(userID)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(attempts), nil
}

// ComputeStats derives aggregate statistics from an attempt history.
// All fields are zero when no attempts exist.
func ComputeStats(attempts []model.QuizAttempt) Stats {
	if len(attempts) == 0 {
		return Stats{}
	}

	totalScore := 0
	totalQuestions := 0
	totalTime := 0
	best := 0.0

	for _, attempt := range attempts {
		totalScore += attempt.Score
		totalQuestions += attempt.TotalQuestions
		totalTime += attempt.TimeTaken
		if pct := attempt.Percentage(); pct > best {
			best = pct
		}
	}

	average := 0.0
	if totalQuestions > 0 {
		average = float64(totalScore) / float64(totalQuestions) * 100
	}

	return Stats{
		TotalAttempts:  len(attempts),
		AverageScore:   int(math.Round(average)),
		BestScore:      int(math.Round(best)),
		TotalTimeSpent: totalTime,
	}
}
