package service

import (
	"testing"

	"quizhub_backend/internal/model"
)

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats != (Stats{}) {
		t.Errorf("empty history should be all zeros, got %+v", stats)
	}
}

func TestComputeStatsWeightedAverage(t *testing.T) {
	attempts := []model.QuizAttempt{
		{Score: 8, TotalQuestions: 10, TimeTaken: 120},
		{Score: 6, TotalQuestions: 10, TimeTaken: 180},
	}

	stats := ComputeStats(attempts)

	if stats.TotalAttempts != 2 {
		t.Errorf("totalAttempts = %d", stats.TotalAttempts)
	}
	// Weighted: (8+6)/(10+10) = 70%, not the mean of percentages.
	if stats.AverageScore != 70 {
		t.Errorf("averageScore = %d, want 70", stats.AverageScore)
	}
	if stats.BestScore != 80 {
		t.Errorf("bestScore = %d, want 80", stats.BestScore)
	}
	if stats.TotalTimeSpent != 300 {
		t.Errorf("totalTimeSpent = %d, want 300", stats.TotalTimeSpent)
	}
}

func TestComputeStatsUnevenTotals(t *testing.T) {
	attempts := []model.QuizAttempt{
		{Score: 2, TotalQuestions: 3, TimeTaken: 30},
		{Score: 9, TotalQuestions: 20, TimeTaken: 200},
	}

	stats := ComputeStats(attempts)

	// (2+9)/(3+20) = 47.8% -> 48; best is 2/3 = 66.7% -> 67.
	if stats.AverageScore != 48 {
		t.Errorf("averageScore = %d, want 48", stats.AverageScore)
	}
	if stats.BestScore != 67 {
		t.Errorf("bestScore = %d, want 67", stats.BestScore)
	}
}

func TestComputeStatsZeroTotalAttempt(t *testing.T) {
	attempts := []model.QuizAttempt{
		{Score: 0, TotalQuestions: 0, TimeTaken: 10},
	}

	stats := ComputeStats(attempts)
	if stats.AverageScore != 0 || stats.BestScore != 0 {
		t.Errorf("zero-total attempt should score 0, got %+v", stats)
	}
	if stats.TotalAttempts != 1 || stats.TotalTimeSpent != 10 {
		t.Errorf("counts wrong: %+v", stats)
	}
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"10", 10},
		{"1", 1},
		{"0", 1},
		{"-5", 1},
		{"100", 100},
		{"250", 100},
		{"abc", 10},
		{"", 10},
	}

	for _, tt := range tests {
		if got := ClampCount(tt.raw); got != tt.want {
			t.Errorf("ClampCount(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
