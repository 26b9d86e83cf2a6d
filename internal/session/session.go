package session

import (
	"errors"
	"time"

	"quizhub_backend/internal/model"
)

var (
	ErrEmptyQuestionSet = errors.New("empty question set")
	ErrInvalidOption    = errors.New("option index out of range")
	ErrNoSelection      = errors.New("no answer selected for current question")
	ErrCompleted        = errors.New("session already completed")
	ErrAtFirstQuestion  = errors.New("already at first question")
)

// CountdownDisabled turns off the per-session timer.
const CountdownDisabled = -1

// CompletionEvent is emitted exactly once when a session completes.
// CategoryID is zero for AI-sourced sessions, which are never persisted.
type CompletionEvent struct {
	CategoryID     uint
	Score          int
	TotalQuestions int
	TimeTaken      int // whole seconds
	Answers        []model.AttemptAnswer
}

// Session drives one quiz instance end-to-end: question sequencing,
// answer capture, countdown, and score computation. It owns no I/O and
// no clock; callers drive Tick and supply "now" on completion paths.
// All fields are exported so the state round-trips through JSON.
type Session struct {
	ID            string               `json:"id"`
	UserID        uint                 `json:"userId"`
	CategoryID    uint                 `json:"categoryId"` // 0 => AI-sourced
	CategoryName  string               `json:"categoryName"`
	Questions     []model.QuizQuestion `json:"questions"`
	Index         int                  `json:"index"`
	Answers       []int                `json:"answers"`
	Pending       int                  `json:"pending"`
	Countdown     int                  `json:"countdown"` // initial seconds, or CountdownDisabled
	TimeRemaining int                  `json:"timeRemaining"`
	Completed     bool                 `json:"completed"`
	StartedAt     time.Time            `json:"startedAt"`
}

// New starts a session over the given question set. countdown is the
// number of seconds allowed, or CountdownDisabled.
func New(id string, categoryID uint, categoryName string, questions []model.QuizQuestion, countdown int, now time.Time) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = model.UnansweredSentinel
	}

	return &Session{
		ID:            id,
		CategoryID:    categoryID,
		CategoryName:  categoryName,
		Questions:     questions,
		Answers:       answers,
		Pending:       model.UnansweredSentinel,
		Countdown:     countdown,
		TimeRemaining: countdown,
		StartedAt:     now,
	}, nil
}

// AISourced reports whether the session runs over an ephemeral
// AI-generated set rather than a stored category.
func (s *Session) AISourced() bool {
	return s.CategoryID == 0
}

// SelectAnswer records the pending answer for the current position.
// Re-selecting overwrites; nothing is committed until Advance.
func (s *Session) SelectAnswer(option int) error {
	if s.Completed {
		return ErrCompleted
	}
	if option < 0 || option > 3 {
		return ErrInvalidOption
	}
	s.Pending = option
	return nil
}

// Advance commits the pending answer at the current position and moves
// forward, restoring any previously recorded answer at the new position.
// On the last question it completes the session and returns the event.
func (s *Session) Advance(now time.Time) (*CompletionEvent, error) {
	if s.Completed {
		return nil, ErrCompleted
	}
	if s.Pending == model.UnansweredSentinel {
		return nil, ErrNoSelection
	}

	s.Answers[s.Index] = s.Pending

	if s.Index < len(s.Questions)-1 {
		s.Index++
		s.Pending = s.Answers[s.Index]
		return nil, nil
	}

	return s.complete(now), nil
}

// Retreat moves back one position. The pending selection at the current
// position is discarded unless it was committed by a prior Advance.
func (s *Session) Retreat() error {
	if s.Completed {
		return ErrCompleted
	}
	if s.Index == 0 {
		return ErrAtFirstQuestion
	}
	s.Index--
	s.Pending = s.Answers[s.Index]
	return nil
}

// Tick consumes one elapsed second of the countdown. When the countdown
// reaches zero while still in progress the session completes as if the
// final question had been answered; unanswered positions keep the
// sentinel. A tick on a completed session is a no-op.
func (s *Session) Tick(now time.Time) (*CompletionEvent, bool) {
	if s.Completed || s.TimeRemaining == CountdownDisabled {
		return nil, false
	}
	if s.TimeRemaining > 0 {
		s.TimeRemaining--
	}
	if s.TimeRemaining == 0 {
		return s.complete(now), true
	}
	return nil, false
}

// ElapseSeconds applies n seconds of wall time, used when session state
// is reloaded from storage rather than ticked live.
func (s *Session) ElapseSeconds(n int, now time.Time) (*CompletionEvent, bool) {
	for i := 0; i < n; i++ {
		if ev, done := s.Tick(now); done {
			return ev, true
		}
		if s.Completed || s.TimeRemaining == CountdownDisabled {
			break
		}
	}
	return nil, false
}

// complete finalizes the session. The terminal-state guard makes a
// second trigger (late timer fire after a manual finish) a no-op, so
// the CompletionEvent is produced exactly once.
func (s *Session) complete(now time.Time) *CompletionEvent {
	if s.Completed {
		return nil
	}

	// Carry the pending selection at the current position, matching a
	// timeout mid-question; every other unset position stays unanswered.
	if s.Pending != model.UnansweredSentinel {
		s.Answers[s.Index] = s.Pending
	}

	s.Completed = true

	score := 0
	answers := make([]model.AttemptAnswer, len(s.Questions))
	for i, q := range s.Questions {
		correct := s.Answers[i] == q.CorrectAnswer
		if correct {
			score++
		}
		answers[i] = model.AttemptAnswer{
			QuestionID:     q.ID,
			SelectedAnswer: s.Answers[i],
			IsCorrect:      correct,
		}
	}

	timeTaken := int(now.Sub(s.StartedAt).Seconds())
	if timeTaken < 0 {
		timeTaken = 0
	}

	return &CompletionEvent{
		CategoryID:     s.CategoryID,
		Score:          score,
		TotalQuestions: len(s.Questions),
		TimeTaken:      timeTaken,
		Answers:        answers,
	}
}

// Score recomputes the committed score; valid once completed.
func (s *Session) Score() int {
	score := 0
	for i, q := range s.Questions {
		if s.Answers[i] == q.CorrectAnswer {
			score++
		}
	}
	return score
}
