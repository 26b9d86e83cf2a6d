package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quizhub_backend/internal/config"
	"quizhub_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash-latest"

	// Placeholder shipped in example configs; treated the same as no key.
	placeholderAPIKey = "your-gemini-api-key-here"

	DefaultDifficulty    = "medium"
	DefaultGeneratedSize = 5
)

// GenerateRequest describes one quiz generation call.
type GenerateRequest struct {
	Topic         string `json:"topic" binding:"required"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
}

type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type GeneratedQuiz struct {
	Questions  []GeneratedQuestion `json:"questions"`
	Topic      string              `json:"topic"`
	Difficulty string              `json:"difficulty"`
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeneratorService builds quiz generation requests against the Gemini
// API and repairs the response into the question schema. Every failure
// path degrades to the canned fallback set; callers never see an error.
type GeneratorService struct {
	Config config.AIConfig
	Client *http.Client
}

func NewGeneratorService(cfg config.AIConfig) *GeneratorService {
	return &GeneratorService{
		Config: cfg,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate issues exactly one provider attempt. With no usable API key
// it returns the canned set immediately, without a network call.
func (s *GeneratorService) Generate(req GenerateRequest) *GeneratedQuiz {
	if req.Difficulty == "" {
		req.Difficulty = DefaultDifficulty
	}
	if req.QuestionCount <= 0 {
		req.QuestionCount = DefaultGeneratedSize
	}

	if s.Config.APIKey == "" || s.Config.APIKey == placeholderAPIKey {
		return FallbackQuiz(req.Topic, req.Difficulty)
	}

	quiz, err := s.callProvider(req)
	if err != nil {
		logger.Log.Warn("quiz generation failed, using fallback",
			zap.String("topic", req.Topic),
			zap.Error(err))
		return FallbackQuiz(req.Topic, req.Difficulty)
	}
	return quiz
}

func (s *GeneratorService) callProvider(req GenerateRequest) (*GeneratedQuiz, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: buildPrompt(req)}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.8,
			TopK:            64,
			TopP:            0.95,
			MaxOutputTokens: 4000,
		},
	})
	if err != nil {
		return nil, err
	}

	baseURL := s.Config.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	model := s.Config.Model
	if model == "" {
		model = defaultGeminiModel
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", baseURL, model, s.Config.APIKey)

	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("provider status %d: %s", resp.StatusCode, string(detail))
	}

	var envelope geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("provider returned no candidates")
	}

	quiz, err := ParseGeneratedQuiz(envelope.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}

	if quiz.Topic == "" {
		quiz.Topic = req.Topic
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = req.Difficulty
	}
	return quiz, nil
}

// ParseGeneratedQuiz extracts the quiz JSON from the generated text,
// stripping markdown code fences if present, and repairs the payload by
// dropping questions that violate the schema. Zero surviving questions
// is an error, which callers turn into the canned fallback.
func ParseGeneratedQuiz(text string) (*GeneratedQuiz, error) {
	jsonText := strings.TrimSpace(text)
	if strings.HasPrefix(jsonText, "```json") {
		jsonText = strings.TrimPrefix(jsonText, "```json")
	} else if strings.HasPrefix(jsonText, "```") {
		jsonText = strings.TrimPrefix(jsonText, "```")
	}
	jsonText = strings.TrimSuffix(strings.TrimSpace(jsonText), "```")
	jsonText = strings.TrimSpace(jsonText)

	var quiz GeneratedQuiz
	if err := json.Unmarshal([]byte(jsonText), &quiz); err != nil {
		return nil, err
	}

	valid := quiz.Questions[:0]
	for _, q := range quiz.Questions {
		if q.Question == "" || len(q.Options) != 4 || q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			continue
		}
		valid = append(valid, q)
	}
	quiz.Questions = valid

	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("no valid questions in generated payload")
	}
	return &quiz, nil
}

func buildPrompt(req GenerateRequest) string {
	return fmt.Sprintf(`
You are an expert Computer Science educator creating quiz questions.

Topic: %[1]s
Difficulty: %[2]s
Number of Questions: %[3]d

Create %[3]d multiple-choice questions about "%[1]s" at %[2]s level.

Requirements:
- Each question should test understanding of key concepts
- Provide exactly 4 options (A, B, C, D) for each question
- Only one option should be correct
- Include a brief explanation for why the correct answer is right
- Make questions practical and relevant to real-world applications
- Ensure questions are at %[2]s difficulty level

Provide a JSON response with this exact structure:
{
  "questions": [
    {
      "question": "the question text",
      "options": ["option A", "option B", "option C", "option D"],
      "correctAnswer": 0,
      "explanation": "brief explanation of why this answer is correct"
    }
  ],
  "topic": "%[1]s",
  "difficulty": "%[2]s"
}

Make sure:
- correctAnswer is the index (0-3) of the correct option
- Questions are clear and unambiguous
- Options are plausible and not obviously wrong
- Explanations are educational and concise

Provide ONLY the JSON response, no additional text.
`, req.Topic, req.Difficulty, req.QuestionCount)
}

// FallbackQuiz is the fixed question set returned whenever generation
// is unavailable or fails. It is always 3 questions, regardless of the
// requested count.
func FallbackQuiz(topic, difficulty string) *GeneratedQuiz {
	return &GeneratedQuiz{
		Questions: []GeneratedQuestion{
			{
				Question:      "What is the time complexity of binary search?",
				Options:       []string{"O(1)", "O(log n)", "O(n)", "O(n²)"},
				CorrectAnswer: 1,
				Explanation:   "Binary search has a time complexity of O(log n) because it divides the search space in half with each iteration.",
			},
			{
				Question:      "Which data structure uses LIFO (Last In, First Out)?",
				Options:       []string{"Queue", "Stack", "Tree", "Graph"},
				CorrectAnswer: 1,
				Explanation:   "A stack uses LIFO principle where the last element added is the first one to be removed.",
			},
			{
				Question:      "What is the primary purpose of a hash table?",
				Options:       []string{"Sorting data", "Fast lookups", "Memory management", "Data compression"},
				CorrectAnswer: 1,
				Explanation:   "Hash tables provide average O(1) time complexity for insertions and lookups, making them ideal for fast data retrieval.",
			},
		},
		Topic:      topic,
		Difficulty: difficulty,
	}
}
