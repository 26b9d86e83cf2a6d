package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuizQuestion is a single-select question with exactly four options.
// Questions are immutable once created.
// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	CategoryID    uint       `gorm:"index;not null" json:"categoryId"`
	Question      string     `gorm:"type:text;not null" json:"question"`
	Options       []string   `gorm:"serializer:json;type:json;not null" json:"options"`
	CorrectAnswer int        `gorm:"not null" json:"correctAnswer"`
	Explanation   string     `gorm:"type:text" json:"explanation"`
	Difficulty    Difficulty `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// Valid reports whether the question satisfies the schema invariants:
// exactly 4 options and a correct-answer index in [0,3].
func (q *QuizQuestion) Valid() bool {
	return q.Question != "" && len(q.Options) == 4 && q.CorrectAnswer >= 0 && q.CorrectAnswer <= 3
}
