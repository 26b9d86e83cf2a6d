package service

import (
	"fmt"
	"math"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/pkg/logger"

	"go.uber.org/zap"
)

// AnalysisThreshold is the score fraction below which a completed
// attempt gets a weak-area analysis.
const AnalysisThreshold = 0.80

const maxWeakAreas = 3

const genericWeakAreaDescription = "Review this concept and try a few practice questions."

// WeakArea describes one missed topic, ranked by priority.
type WeakArea struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // high, medium, low
}

// StudyRecommendation binds fixed study tips to a category.
type StudyRecommendation struct {
	Topic     string   `json:"topic"`
	Tips      []string `json:"tips"`
	Resources []string `json:"resources"`
}

// Analysis is the rich, display-oriented result. The persisted record is
// a lossy projection of this (topic strings only, no priority or
// per-topic description); the asymmetry is intentional.
type Analysis struct {
	OverallFeedback      string                `json:"overallFeedback"`
	WeakAreas            []WeakArea            `json:"weakAreas"`
	StudyRecommendations []StudyRecommendation `json:"studyRecommendations"`
	NextSteps            []string              `json:"nextSteps"`
}

var weakAreaPriorities = [maxWeakAreas]string{"high", "medium", "low"}

type AnalysisService struct {
	AnalysisRepo *repository.AnalysisRepository
}

func NewAnalysisService(analysisRepo *repository.AnalysisRepository) *AnalysisService {
	return &AnalysisService{AnalysisRepo: analysisRepo}
}

// ShouldAnalyze reports whether an attempt's score is below the
// analysis threshold.
func ShouldAnalyze(score, total int) bool {
	if total <= 0 {
		return false
	}
	return float64(score)/float64(total) < AnalysisThreshold
}

// Generate builds the deterministic weak-area analysis from the first
// three incorrectly answered questions, in original order.
func Generate(questions []model.QuizQuestion, answers []int, score int, categoryName string) *Analysis {
	total := len(questions)
	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}

	weakAreas := make([]WeakArea, 0, maxWeakAreas)
	for i, q := range questions {
		if len(weakAreas) == maxWeakAreas {
			break
		}
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			continue
		}
		description := q.Explanation
		if description == "" {
			description = genericWeakAreaDescription
		}
		weakAreas = append(weakAreas, WeakArea{
			Topic:       q.Question,
			Description: description,
			Priority:    weakAreaPriorities[len(weakAreas)],
		})
	}

	if categoryName == "" {
		categoryName = "This category"
	}

	return &Analysis{
		OverallFeedback: fmt.Sprintf("You scored %d/%d (%d%%). Focus on the missed topics below.",
			score, total, int(math.Round(percentage))),
		WeakAreas: weakAreas,
		StudyRecommendations: []StudyRecommendation{
			{
				Topic: categoryName,
				Tips: []string{
					"Re-read each explanation for your incorrect answers",
					"Summarize the core concept in your own words",
					"Do 5-10 spaced-repetition practice questions",
				},
				Resources: []string{},
			},
		},
		NextSteps: []string{
			"Retake the quiz after review",
			"Aim for at least 80% on the next attempt",
		},
	}
}

// Save persists an analysis from client-supplied fields.
func (s *AnalysisService) Save(analysis *model.AIAnalysisResult) error {
	return s.AnalysisRepo.Create(analysis)
}

// GenerateAndPersist runs the generator and stores the lossy persisted
// shape. A failed save is logged and swallowed; the rich in-memory
// object is still returned for immediate display.
func (s *AnalysisService) GenerateAndPersist(userID, attemptID uint, questions []model.QuizQuestion, answers []int, score int, categoryName string) *Analysis {
	analysis := Generate(questions, answers, score, categoryName)

	topics := make([]string, len(analysis.WeakAreas))
	for i, area := range analysis.WeakAreas {
		topics[i] = area.Topic
	}

	record := &model.AIAnalysisResult{
		UserID:          userID,
		QuizAttemptID:   attemptID,
		OverallFeedback: analysis.OverallFeedback,
		WeakAreas:       topics,
		StudyRecommendations: []string{
			"Review explanations for incorrect answers",
			"Revisit notes for this category",
			"Practice 5-10 more questions in this topic",
		},
		NextSteps: analysis.NextSteps,
	}

	if err := s.AnalysisRepo.Create(record); err != nil {
		logger.Log.Error("failed to persist analysis",
			zap.Uint("attemptId", attemptID),
			zap.Error(err))
	}

	return analysis
}
