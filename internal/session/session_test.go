package session

import (
	"errors"
	"testing"
	"time"

	"quizhub_backend/internal/model"
)

func fourOptions() []string {
	return []string{"a", "b", "c", "d"}
}

func testQuestions(n int) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, n)
	for i := range questions {
		questions[i] = model.QuizQuestion{
			BaseModel:     model.BaseModel{ID: uint(i + 1)},
			CategoryID:    7,
			Question:      "q",
			Options:       fourOptions(),
			CorrectAnswer: i % 4,
		}
	}
	return questions
}

func startSession(t *testing.T, n, countdown int) *Session {
	t.Helper()
	s, err := New("sess-1", 7, "JavaScript", testQuestions(n), countdown, time.Unix(1000, 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewEmptyQuestionSet(t *testing.T) {
	if _, err := New("sess-1", 7, "JavaScript", nil, 300, time.Unix(1000, 0)); !errors.Is(err, ErrEmptyQuestionSet) {
		t.Fatalf("got %v, want ErrEmptyQuestionSet", err)
	}
}

func TestNewInitializesSentinels(t *testing.T) {
	s := startSession(t, 3, 300)

	if s.Pending != model.UnansweredSentinel {
		t.Errorf("pending = %d, want sentinel", s.Pending)
	}
	for i, a := range s.Answers {
		if a != model.UnansweredSentinel {
			t.Errorf("answers[%d] = %d, want sentinel", i, a)
		}
	}
	if s.TimeRemaining != 300 || s.Countdown != 300 {
		t.Errorf("countdown = %d/%d, want 300/300", s.TimeRemaining, s.Countdown)
	}
}

func TestSelectAnswerValidation(t *testing.T) {
	s := startSession(t, 2, 300)

	if err := s.SelectAnswer(4); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("option 4: got %v, want ErrInvalidOption", err)
	}
	if err := s.SelectAnswer(-1); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("option -1: got %v, want ErrInvalidOption", err)
	}
	if err := s.SelectAnswer(2); err != nil {
		t.Errorf("option 2: %v", err)
	}
	// Re-selecting overwrites the pending choice.
	if err := s.SelectAnswer(3); err != nil {
		t.Errorf("reselect: %v", err)
	}
	if s.Pending != 3 {
		t.Errorf("pending = %d, want 3", s.Pending)
	}
	if s.Answers[0] != model.UnansweredSentinel {
		t.Errorf("selection committed before Advance")
	}
}

func TestAdvanceRequiresSelection(t *testing.T) {
	s := startSession(t, 2, 300)

	if _, err := s.Advance(time.Unix(1001, 0)); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("got %v, want ErrNoSelection", err)
	}
}

func TestAdvanceCommitsAndRestores(t *testing.T) {
	s := startSession(t, 3, 300)

	if err := s.SelectAnswer(1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Advance(time.Unix(1001, 0)); err != nil {
		t.Fatal(err)
	}
	if s.Index != 1 || s.Answers[0] != 1 {
		t.Fatalf("index=%d answers[0]=%d, want 1/1", s.Index, s.Answers[0])
	}
	// Fresh position starts unanswered.
	if s.Pending != model.UnansweredSentinel {
		t.Fatalf("pending = %d, want sentinel", s.Pending)
	}

	if err := s.SelectAnswer(2); err != nil {
		t.Fatal(err)
	}
	if err := s.Retreat(); err != nil {
		t.Fatal(err)
	}
	// Retreat discards the uncommitted selection and restores position 0.
	if s.Index != 0 || s.Pending != 1 {
		t.Fatalf("index=%d pending=%d, want 0/1", s.Index, s.Pending)
	}
	if s.Answers[1] != model.UnansweredSentinel {
		t.Fatalf("discarded selection was committed")
	}

	// Moving forward again restores the committed answer, not the sentinel.
	if _, err := s.Advance(time.Unix(1002, 0)); err != nil {
		t.Fatal(err)
	}
	if s.Index != 1 || s.Pending != model.UnansweredSentinel {
		t.Fatalf("index=%d pending=%d after re-advance", s.Index, s.Pending)
	}
}

func TestRetreatAtFirstQuestion(t *testing.T) {
	s := startSession(t, 2, 300)

	if err := s.Retreat(); !errors.Is(err, ErrAtFirstQuestion) {
		t.Fatalf("got %v, want ErrAtFirstQuestion", err)
	}
}

func TestAdvanceThroughCompletion(t *testing.T) {
	s := startSession(t, 3, 300)
	// Correct answers are 0, 1, 2; answer the first two right and the
	// last one wrong.
	picks := []int{0, 1, 3}

	var ev *CompletionEvent
	for i, pick := range picks {
		if err := s.SelectAnswer(pick); err != nil {
			t.Fatal(err)
		}
		var err error
		ev, err = s.Advance(time.Unix(int64(1000+10*(i+1)), 0))
		if err != nil {
			t.Fatal(err)
		}
	}

	if ev == nil {
		t.Fatal("no completion event after last advance")
	}
	if !s.Completed {
		t.Fatal("session not marked completed")
	}
	if ev.Score != 2 || ev.TotalQuestions != 3 {
		t.Errorf("score = %d/%d, want 2/3", ev.Score, ev.TotalQuestions)
	}
	if ev.CategoryID != 7 {
		t.Errorf("categoryID = %d, want 7", ev.CategoryID)
	}
	if ev.TimeTaken != 30 {
		t.Errorf("timeTaken = %d, want 30", ev.TimeTaken)
	}
	if len(ev.Answers) != 3 {
		t.Fatalf("answers len = %d", len(ev.Answers))
	}
	if !ev.Answers[0].IsCorrect || !ev.Answers[1].IsCorrect || ev.Answers[2].IsCorrect {
		t.Errorf("per-question correctness wrong: %+v", ev.Answers)
	}
	if ev.Answers[2].SelectedAnswer != 3 {
		t.Errorf("answers[2].selected = %d, want 3", ev.Answers[2].SelectedAnswer)
	}

	// All further operations fail on the terminal state.
	if err := s.SelectAnswer(0); !errors.Is(err, ErrCompleted) {
		t.Errorf("select after completion: %v", err)
	}
	if _, err := s.Advance(time.Unix(2000, 0)); !errors.Is(err, ErrCompleted) {
		t.Errorf("advance after completion: %v", err)
	}
	if err := s.Retreat(); !errors.Is(err, ErrCompleted) {
		t.Errorf("retreat after completion: %v", err)
	}
}

func TestTimeoutFillsSentinels(t *testing.T) {
	s := startSession(t, 3, 5)

	// Answer the first question, select (but never commit) on the second.
	if err := s.SelectAnswer(0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Advance(time.Unix(1001, 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectAnswer(1); err != nil {
		t.Fatal(err)
	}

	var ev *CompletionEvent
	for i := 0; i < 5; i++ {
		var done bool
		ev, done = s.Tick(time.Unix(int64(1001+i), 0))
		if done {
			break
		}
	}

	if ev == nil || !s.Completed {
		t.Fatal("timeout did not complete the session")
	}
	// Pending selection at the current position is carried.
	if ev.Answers[1].SelectedAnswer != 1 || !ev.Answers[1].IsCorrect {
		t.Errorf("pending answer not carried: %+v", ev.Answers[1])
	}
	// The untouched position keeps the sentinel and counts as incorrect.
	if ev.Answers[2].SelectedAnswer != model.UnansweredSentinel || ev.Answers[2].IsCorrect {
		t.Errorf("unanswered position: %+v", ev.Answers[2])
	}
	if ev.Score != 2 {
		t.Errorf("score = %d, want 2", ev.Score)
	}
}

func TestTickOnCompletedSessionIsNoop(t *testing.T) {
	s := startSession(t, 1, 300)

	if err := s.SelectAnswer(0); err != nil {
		t.Fatal(err)
	}
	ev, err := s.Advance(time.Unix(1005, 0))
	if err != nil || ev == nil {
		t.Fatalf("advance: ev=%v err=%v", ev, err)
	}

	// Late timer fire after manual completion must not emit again.
	if ev2, done := s.Tick(time.Unix(1006, 0)); done || ev2 != nil {
		t.Fatalf("tick on completed session emitted: %v", ev2)
	}
}

func TestCountdownDisabledNeverTimesOut(t *testing.T) {
	s := startSession(t, 2, CountdownDisabled)

	if ev, done := s.ElapseSeconds(10000, time.Unix(2000, 0)); done || ev != nil {
		t.Fatalf("disabled countdown completed: %v", ev)
	}
	if s.Completed {
		t.Fatal("session completed without a timer")
	}
}

func TestElapseSecondsStopsAtCompletion(t *testing.T) {
	s := startSession(t, 2, 3)

	ev, done := s.ElapseSeconds(50, time.Unix(1003, 0))
	if !done || ev == nil {
		t.Fatal("elapse did not complete the session")
	}
	if s.TimeRemaining != 0 {
		t.Errorf("timeRemaining = %d, want 0", s.TimeRemaining)
	}
	if ev.Score != 0 {
		t.Errorf("score = %d, want 0 for all-unanswered", ev.Score)
	}
}

func TestAISourced(t *testing.T) {
	ai, err := New("sess-ai", 0, "AI: Goroutines", testQuestions(1), 300, time.Unix(1000, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !ai.AISourced() {
		t.Error("category 0 should be AI-sourced")
	}
	if startSession(t, 1, 300).AISourced() {
		t.Error("stored category should not be AI-sourced")
	}
}
