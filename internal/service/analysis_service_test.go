package service

import (
	"testing"

	"quizhub_backend/internal/model"
)

func analysisQuestions() []model.QuizQuestion {
	return []model.QuizQuestion{
		{Question: "What is a closure?", CorrectAnswer: 0, Explanation: "Closures capture outer scope."},
		{Question: "What is the event loop?", CorrectAnswer: 1, Explanation: "It schedules async work."},
		{Question: "What is a promise?", CorrectAnswer: 2, Explanation: ""},
		{Question: "What is hoisting?", CorrectAnswer: 3, Explanation: "Declarations move to scope top."},
		{Question: "What is strict mode?", CorrectAnswer: 0, Explanation: "Opts into stricter semantics."},
	}
}

func TestShouldAnalyze(t *testing.T) {
	tests := []struct {
		name  string
		score int
		total int
		want  bool
	}{
		{"below threshold", 7, 10, true},
		{"exactly at threshold", 8, 10, false},
		{"perfect score", 10, 10, false},
		{"zero score", 0, 10, true},
		{"zero total", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldAnalyze(tt.score, tt.total); got != tt.want {
				t.Errorf("ShouldAnalyze(%d, %d) = %v, want %v", tt.score, tt.total, got, tt.want)
			}
		})
	}
}

func TestGenerateWeakAreas(t *testing.T) {
	questions := analysisQuestions()
	// Wrong on questions 0, 2, 3 and 4; only the first three become
	// weak areas, in original order.
	answers := []int{1, 1, 0, 0, 1}

	analysis := Generate(questions, answers, 1, "JavaScript")

	if len(analysis.WeakAreas) != 3 {
		t.Fatalf("weak areas = %d, want 3", len(analysis.WeakAreas))
	}

	wantTopics := []string{"What is a closure?", "What is a promise?", "What is hoisting?"}
	wantPriorities := []string{"high", "medium", "low"}
	for i, area := range analysis.WeakAreas {
		if area.Topic != wantTopics[i] {
			t.Errorf("weakAreas[%d].Topic = %q, want %q", i, area.Topic, wantTopics[i])
		}
		if area.Priority != wantPriorities[i] {
			t.Errorf("weakAreas[%d].Priority = %q, want %q", i, area.Priority, wantPriorities[i])
		}
	}

	// Question 2 has no explanation, so the generic description is used.
	if analysis.WeakAreas[1].Description != "Review this concept and try a few practice questions." {
		t.Errorf("generic description not applied: %q", analysis.WeakAreas[1].Description)
	}
	if analysis.WeakAreas[0].Description != "Closures capture outer scope." {
		t.Errorf("explanation not used as description: %q", analysis.WeakAreas[0].Description)
	}
}

func TestGenerateOverallFeedback(t *testing.T) {
	analysis := Generate(analysisQuestions(), []int{0, 1, 2, 0, 1}, 3, "JavaScript")

	// 3/5 = 60%
	want := "You scored 3/5 (60%). Focus on the missed topics below."
	if analysis.OverallFeedback != want {
		t.Errorf("feedback = %q, want %q", analysis.OverallFeedback, want)
	}

	if len(analysis.StudyRecommendations) != 1 {
		t.Fatalf("study recommendations = %d, want 1", len(analysis.StudyRecommendations))
	}
	if analysis.StudyRecommendations[0].Topic != "JavaScript" {
		t.Errorf("recommendation topic = %q", analysis.StudyRecommendations[0].Topic)
	}
	if got := analysis.NextSteps; len(got) != 2 || got[1] != "Aim for at least 80% on the next attempt" {
		t.Errorf("next steps = %v", got)
	}
}

func TestGenerateEmptyCategoryName(t *testing.T) {
	analysis := Generate(analysisQuestions(), []int{1, 0, 0, 0, 1}, 0, "")

	if analysis.StudyRecommendations[0].Topic != "This category" {
		t.Errorf("empty category fallback: %q", analysis.StudyRecommendations[0].Topic)
	}
}

func TestGenerateShortAnswerSlice(t *testing.T) {
	// Fewer answers than questions: missing positions count as wrong.
	analysis := Generate(analysisQuestions(), []int{0}, 1, "JavaScript")

	if len(analysis.WeakAreas) != 3 {
		t.Fatalf("weak areas = %d, want 3", len(analysis.WeakAreas))
	}
	if analysis.WeakAreas[0].Topic != "What is the event loop?" {
		t.Errorf("first weak area = %q", analysis.WeakAreas[0].Topic)
	}
}
