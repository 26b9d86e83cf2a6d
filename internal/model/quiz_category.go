package model

// QuizCategory groups questions into a topic shown on the home screen.
// Created by the seed routine; never deleted by normal flow.
// swagger:model QuizCategory
type QuizCategory struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Color       string `gorm:"size:20" json:"color"`
	Icon        string `gorm:"size:50" json:"icon"`
}

func (QuizCategory) TableName() string {
	return "quiz_categories"
}
