package model

import "time"

// UnansweredSentinel marks a question position the user never answered.
// It can never match a correct-answer index, which is always >= 0.
const UnansweredSentinel = -1

// AttemptAnswer records the outcome at one question position.
type AttemptAnswer struct {
	QuestionID     uint `json:"questionId"`
	SelectedAnswer int  `json:"selectedAnswer"`
	IsCorrect      bool `json:"isCorrect"`
}

// QuizAttempt is the persisted outcome of one completed quiz session.
// Appended once on completion; never mutated afterwards.
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	UserID         uint            `gorm:"index;not null" json:"userId"`
	CategoryID     uint            `gorm:"index;not null" json:"categoryId"`
	Score          int             `gorm:"not null" json:"score"`
	TotalQuestions int             `gorm:"not null" json:"totalQuestions"`
	Answers        []AttemptAnswer `gorm:"serializer:json;type:json" json:"answers"`
	TimeTaken      int             `json:"timeTaken"` // seconds
	CompletedAt    time.Time       `json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// Percentage returns the attempt's score as a 0-100 float.
func (a *QuizAttempt) Percentage() float64 {
	if a.TotalQuestions <= 0 {
		return 0
	}
	return float64(a.Score) / float64(a.TotalQuestions) * 100
}
