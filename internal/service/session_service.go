package service

import (
	"context"
	"errors"
	"time"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/session"
	"quizhub_backend/internal/util"
	"quizhub_backend/pkg/logger"
	"quizhub_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionQuestionView hides the correct answer and explanation while a
// session is in progress.
type SessionQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// ReviewItem is one fully-revealed question after completion.
type ReviewItem struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswer  int      `json:"correctAnswer"`
	Explanation    string   `json:"explanation"`
	SelectedAnswer int      `json:"selectedAnswer"`
	IsCorrect      bool     `json:"isCorrect"`
}

// SessionResult is attached to the view once the session completes.
// Analysis is only populated on the response that triggered completion;
// later reads reconstruct the review but not the analysis.
type SessionResult struct {
	Score          int          `json:"score"`
	TotalQuestions int          `json:"totalQuestions"`
	TimeTaken      int          `json:"timeTaken"`
	Review         []ReviewItem `json:"review"`
	Analysis       *Analysis    `json:"analysis,omitempty"`
}

type SessionView struct {
	ID             string               `json:"id"`
	Category       CategoryView         `json:"category"`
	Index          int                  `json:"index"`
	TotalQuestions int                  `json:"totalQuestions"`
	TimeRemaining  int                  `json:"timeRemaining"`
	Selected       int                  `json:"selected"`
	Completed      bool                 `json:"completed"`
	Question       *SessionQuestionView `json:"question,omitempty"`
	Result         *SessionResult       `json:"result,omitempty"`
}

// SessionService runs quiz sessions server-side: it samples questions,
// drives the state machine, snapshots state to Redis between requests,
// and records the attempt plus analysis when a session completes.
type SessionService struct {
	SessionRepo  *repository.SessionRepository
	QuestionRepo *repository.QuestionRepository
	CategoryRepo *repository.CategoryRepository
	Attempts     *AttemptService
	Analysis     *AnalysisService
	Cfg          config.SessionConfig

	now func() time.Time
}

func NewSessionService(
	sessionRepo *repository.SessionRepository,
	questionRepo *repository.QuestionRepository,
	categoryRepo *repository.CategoryRepository,
	attempts *AttemptService,
	analysis *AnalysisService,
	cfg config.SessionConfig,
) *SessionService {
	return &SessionService{
		SessionRepo:  sessionRepo,
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
		Attempts:     attempts,
		Analysis:     analysis,
		Cfg:          cfg,
		now:          time.Now,
	}
}

// StartFromCategory samples questions for the category and opens a new
// countdown session. An empty category yields util.ErrEmptyQuestionSet.
func (s *SessionService) StartFromCategory(ctx context.Context, userID, categoryID uint) (*SessionView, error) {
	category, err := s.CategoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEmptyQuestionSet
		}
		return nil, err
	}

	questions, err := s.QuestionRepo.SampleByCategoryID(categoryID, s.Cfg.QuestionCount)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrEmptyQuestionSet
	}

	sess, err := session.New(uuid.NewString(), categoryID, category.Name, questions, s.Cfg.CountdownSeconds, s.now())
	if err != nil {
		return nil, err
	}
	sess.UserID = userID

	if err := s.SessionRepo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.view(sess, nil), nil
}

// StartFromAIQuiz opens a session over an ephemeral AI-generated set.
// The session carries category ID zero, so completion never records an
// attempt or analysis.
func (s *SessionService) StartFromAIQuiz(ctx context.Context, userID uint, quiz *GeneratedQuiz) (*SessionView, error) {
	questions := make([]model.QuizQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		mq := model.QuizQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    model.Difficulty(quiz.Difficulty),
		}
		if mq.Valid() {
			questions = append(questions, mq)
		}
	}
	if len(questions) == 0 {
		return nil, util.ErrEmptyQuestionSet
	}

	sess, err := session.New(uuid.NewString(), 0, "AI: "+quiz.Topic, questions, s.Cfg.CountdownSeconds, s.now())
	if err != nil {
		return nil, err
	}
	sess.UserID = userID

	if err := s.SessionRepo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.view(sess, nil), nil
}

// Get loads a session and applies the wall-clock time that passed since
// the last request, which may complete it by timeout.
func (s *SessionService) Get(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.SessionRepo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.catchUp(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := s.SessionRepo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.view(sess, result), nil
}

// Answer records a pending selection for the current question.
func (s *SessionService) Answer(ctx context.Context, id string, option int) (*SessionView, error) {
	return s.apply(ctx, id, func(sess *session.Session) (*session.CompletionEvent, error) {
		return nil, sess.SelectAnswer(option)
	}, "")
}

// Advance commits the pending answer and moves forward, completing the
// session on the last question.
func (s *SessionService) Advance(ctx context.Context, id string) (*SessionView, error) {
	return s.apply(ctx, id, func(sess *session.Session) (*session.CompletionEvent, error) {
		return sess.Advance(s.now())
	}, "answer")
}

// Previous discards the pending selection and steps back one question.
func (s *SessionService) Previous(ctx context.Context, id string) (*SessionView, error) {
	return s.apply(ctx, id, func(sess *session.Session) (*session.CompletionEvent, error) {
		return nil, sess.Retreat()
	}, "")
}

// apply is the shared load / catch-up / mutate / save cycle. A session
// completed by the catch-up short-circuits the operation: the client
// acted on stale state, so it gets the completed view instead of an
// error.
func (s *SessionService) apply(ctx context.Context, id string, op func(*session.Session) (*session.CompletionEvent, error), trigger string) (*SessionView, error) {
	sess, err := s.SessionRepo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.catchUp(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !sess.Completed {
		ev, opErr := op(sess)
		if opErr != nil {
			return nil, opErr
		}
		if ev != nil {
			if result, err = s.finalize(ctx, sess, ev, trigger); err != nil {
				return nil, err
			}
		}
	}

	if err := s.SessionRepo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.view(sess, result), nil
}

// catchUp feeds the seconds elapsed since the snapshot into the
// countdown, completing the session if the timer ran out while no
// request was in flight.
func (s *SessionService) catchUp(ctx context.Context, sess *session.Session) (*SessionResult, error) {
	if sess.Completed || sess.Countdown == session.CountdownDisabled {
		return nil, nil
	}

	now := s.now()
	elapsed := int(now.Sub(sess.StartedAt).Seconds())
	applied := sess.Countdown - sess.TimeRemaining
	pending := elapsed - applied
	if pending <= 0 {
		return nil, nil
	}

	ev, completed := sess.ElapseSeconds(pending, now)
	if !completed {
		return nil, nil
	}
	return s.finalize(ctx, sess, ev, "timeout")
}

// finalize handles the one-shot completion side effects: attempt
// persistence, below-threshold analysis, and the completion metric.
// AI-sourced sessions produce a result but no stored records.
func (s *SessionService) finalize(ctx context.Context, sess *session.Session, ev *session.CompletionEvent, trigger string) (*SessionResult, error) {
	monitoring.CompletedQuizzes.WithLabelValues(trigger).Inc()

	result := &SessionResult{
		Score:          ev.Score,
		TotalQuestions: ev.TotalQuestions,
		TimeTaken:      ev.TimeTaken,
		Review:         buildReview(sess.Questions, ev.Answers),
	}

	if sess.AISourced() {
		return result, nil
	}

	attempt, err := s.Attempts.RecordCompletion(sess.UserID, ev)
	if err != nil {
		logger.Log.Error("持久化答题记录失败",
			zap.String("sessionId", sess.ID),
			zap.Error(err))
		return nil, err
	}

	if ShouldAnalyze(ev.Score, ev.TotalQuestions) {
		result.Analysis = s.Analysis.GenerateAndPersist(
			sess.UserID, attempt.ID, sess.Questions, sess.Answers, ev.Score, sess.CategoryName)
	}
	return result, nil
}

func buildReview(questions []model.QuizQuestion, answers []model.AttemptAnswer) []ReviewItem {
	review := make([]ReviewItem, 0, len(questions))
	for i, q := range questions {
		item := ReviewItem{
			Question:       q.Question,
			Options:        q.Options,
			CorrectAnswer:  q.CorrectAnswer,
			Explanation:    q.Explanation,
			SelectedAnswer: model.UnansweredSentinel,
		}
		if i < len(answers) {
			item.SelectedAnswer = answers[i].SelectedAnswer
			item.IsCorrect = answers[i].IsCorrect
		}
		review = append(review, item)
	}
	return review
}

func (s *SessionService) view(sess *session.Session, result *SessionResult) *SessionView {
	v := &SessionView{
		ID:             sess.ID,
		Category:       CategoryView{Name: sess.CategoryName},
		Index:          sess.Index,
		TotalQuestions: len(sess.Questions),
		TimeRemaining:  sess.TimeRemaining,
		Selected:       sess.Pending,
		Completed:      sess.Completed,
	}

	if sess.Completed {
		if result == nil {
			// Re-read after completion: rebuild the review from the
			// committed answers without the analysis.
			result = completedResult(sess)
		}
		v.Result = result
		return v
	}

	q := sess.Questions[sess.Index]
	v.Question = &SessionQuestionView{Question: q.Question, Options: q.Options}
	return v
}

func completedResult(sess *session.Session) *SessionResult {
	answers := make([]model.AttemptAnswer, len(sess.Questions))
	for i, q := range sess.Questions {
		selected := model.UnansweredSentinel
		if i < len(sess.Answers) {
			selected = sess.Answers[i]
		}
		answers[i] = model.AttemptAnswer{
			QuestionID:     q.ID,
			SelectedAnswer: selected,
			IsCorrect:      selected == q.CorrectAnswer,
		}
	}
	return &SessionResult{
		Score:          sess.Score(),
		TotalQuestions: len(sess.Questions),
		TimeTaken:      sess.Countdown - sess.TimeRemaining,
		Review:         buildReview(sess.Questions, answers),
	}
}
