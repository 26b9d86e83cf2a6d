package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quizhub_backend/internal/config"
)

func generatorFor(t *testing.T, handler http.HandlerFunc) (*GeneratorService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc := NewGeneratorService(config.AIConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash-latest",
	})
	svc.Client = srv.Client()
	return svc, srv
}

func geminiEnvelope(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(body)
}

func isFallback(quiz *GeneratedQuiz) bool {
	return len(quiz.Questions) == 3 &&
		quiz.Questions[0].Question == "What is the time complexity of binary search?" &&
		quiz.Questions[1].Question == "Which data structure uses LIFO (Last In, First Out)?" &&
		quiz.Questions[2].Question == "What is the primary purpose of a hash table?"
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	for _, key := range []string{"", "your-gemini-api-key-here"} {
		svc := NewGeneratorService(config.AIConfig{APIKey: key})

		quiz := svc.Generate(GenerateRequest{Topic: "Goroutines"})
		if !isFallback(quiz) {
			t.Errorf("key %q: expected canned fallback set", key)
		}
		if quiz.Topic != "Goroutines" {
			t.Errorf("topic = %q, want request topic", quiz.Topic)
		}
		if quiz.Difficulty != "medium" {
			t.Errorf("difficulty = %q, want default medium", quiz.Difficulty)
		}
	}
}

func TestGenerateSuccess(t *testing.T) {
	payload := `{"questions":[{"question":"What is a channel?","options":["a","b","c","d"],"correctAnswer":2,"explanation":"e"}],"topic":"Go","difficulty":"hard"}`

	var gotPath string
	svc, _ := generatorFor(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Write([]byte(geminiEnvelope(payload)))
	})

	quiz := svc.Generate(GenerateRequest{Topic: "Go", Difficulty: "hard", QuestionCount: 1})
	if isFallback(quiz) {
		t.Fatal("fell back despite valid response")
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].CorrectAnswer != 2 {
		t.Errorf("unexpected quiz: %+v", quiz)
	}
	if !strings.Contains(gotPath, "/models/gemini-1.5-flash-latest:generateContent") || !strings.Contains(gotPath, "key=test-key") {
		t.Errorf("unexpected provider path %q", gotPath)
	}
}

func TestGenerateFencedResponse(t *testing.T) {
	payload := "```json\n{\"questions\":[{\"question\":\"q\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correctAnswer\":0,\"explanation\":\"e\"}]}\n```"

	svc, _ := generatorFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiEnvelope(payload)))
	})

	quiz := svc.Generate(GenerateRequest{Topic: "Go"})
	if isFallback(quiz) {
		t.Fatal("fell back on fenced but valid response")
	}
	// Topic and difficulty missing from the payload are backfilled from
	// the request.
	if quiz.Topic != "Go" || quiz.Difficulty != "medium" {
		t.Errorf("backfill failed: topic=%q difficulty=%q", quiz.Topic, quiz.Difficulty)
	}
}

func TestGenerateFallbackPaths(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"provider error status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"no candidates", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}},
		{"unparseable quiz text", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(geminiEnvelope("Sure! Here's your quiz...")))
		}},
		{"all questions invalid", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(geminiEnvelope(`{"questions":[{"question":"q","options":["a","b"],"correctAnswer":0}]}`)))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := generatorFor(t, tt.handler)
			quiz := svc.Generate(GenerateRequest{Topic: "Go"})
			if !isFallback(quiz) {
				t.Errorf("expected fallback, got %+v", quiz)
			}
		})
	}
}

func TestParseGeneratedQuizRepairsSchema(t *testing.T) {
	text := `{"questions":[
		{"question":"ok","options":["a","b","c","d"],"correctAnswer":3,"explanation":"e"},
		{"question":"bad options","options":["a"],"correctAnswer":0},
		{"question":"bad index","options":["a","b","c","d"],"correctAnswer":4},
		{"question":"","options":["a","b","c","d"],"correctAnswer":0}
	]}`

	quiz, err := ParseGeneratedQuiz(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].Question != "ok" {
		t.Errorf("repair kept wrong questions: %+v", quiz.Questions)
	}
}

func TestParseGeneratedQuizAllInvalid(t *testing.T) {
	if _, err := ParseGeneratedQuiz(`{"questions":[]}`); err == nil {
		t.Error("expected error for empty question list")
	}
}
