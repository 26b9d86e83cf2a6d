package model

// AIAnalysisResult is the persisted weak-area summary for one attempt.
// The persisted shape is intentionally lossy: weak areas are topic strings
// only, without the priority/description the display shape carries.
// Multiple results may exist for one attempt; readers take the most recent.
// swagger:model AIAnalysisResult
type AIAnalysisResult struct {
	BaseModel
	UserID               uint     `gorm:"index;not null" json:"userId"`
	QuizAttemptID        uint     `gorm:"index;not null" json:"quizAttemptId"`
	OverallFeedback      string   `gorm:"type:text" json:"overallFeedback"`
	WeakAreas            []string `gorm:"serializer:json;type:json" json:"weakAreas"`
	StudyRecommendations []string `gorm:"serializer:json;type:json" json:"studyRecommendations"`
	NextSteps            []string `gorm:"serializer:json;type:json" json:"nextSteps"`
}

func (AIAnalysisResult) TableName() string {
	return "ai_analysis_results"
}
