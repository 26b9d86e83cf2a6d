package controller

import (
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService  *service.AttemptService
	AnalysisService *service.AnalysisService
}

func NewAttemptController(attemptService *service.AttemptService, analysisService *service.AnalysisService) *AttemptController {
	return &AttemptController{
		AttemptService:  attemptService,
		AnalysisService: analysisService,
	}
}

// CreateAttemptRequest is the client-driven completion payload.
type CreateAttemptRequest struct {
	CategoryID     uint                  `json:"categoryId" binding:"required"`
	Score          int                   `json:"score"`
	TotalQuestions int                   `json:"totalQuestions" binding:"required"`
	Answers        []model.AttemptAnswer `json:"answers"`
	TimeTaken      int                   `json:"timeTaken"`
}

type CreateAnalysisRequest struct {
	QuizAttemptID        uint     `json:"quizAttemptId" binding:"required"`
	OverallFeedback      string   `json:"overallFeedback"`
	WeakAreas            []string `json:"weakAreas"`
	StudyRecommendations []string `json:"studyRecommendations"`
	NextSteps            []string `json:"nextSteps"`
}

// CreateAttempt godoc
// @Summary 提交答题记录
// @Description 持久化一次完成的测验，记录只增不改
// @Tags 答题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAttemptRequest true "答题结果"
// @Success 201 {object} model.QuizAttempt
// @Failure 400 {object} util.ErrorBody
// @Failure 401 {object} util.ErrorBody
// @Failure 500 {object} util.ErrorBody
// @Router /api/quiz-attempts [post]
func (c *AttemptController) CreateAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Access token required")
		return
	}

	var req CreateAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt := &model.QuizAttempt{
		UserID:         claims.UserID,
		CategoryID:     req.CategoryID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Answers:        req.Answers,
		TimeTaken:      req.TimeTaken,
	}
	if err := c.AttemptService.Record(attempt); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}

// ListAttempts godoc
// @Summary 获取答题历史
// @Description 按完成时间倒序返回当前用户的答题记录，附带分类与最新分析
// @Tags 答题
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.AttemptView
// @Failure 401 {object} util.ErrorBody
// @Failure 500 {object} util.ErrorBody
// @Router /api/quiz-attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Access token required")
		return
	}

	attempts, err := c.AttemptService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.JSON(ctx, attempts)
}

// GetStats godoc
// @Summary 获取答题统计
// @Description 聚合当前用户的答题数据；无记录时各项为 0
// @Tags 答题
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Failure 401 {object} util.ErrorBody
// @Failure 500 {object} util.ErrorBody
// @Router /api/quiz-stats [get]
func (c *AttemptController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Access token required")
		return
	}

	stats, err := c.AttemptService.Stats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.JSON(ctx, stats)
}

// CreateAnalysis godoc
// @Summary 保存 AI 分析结果
// @Description 为一次答题保存弱项分析；同一记录可多次保存，读取时取最新
// @Tags 答题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAnalysisRequest true "分析内容"
// @Success 201 {object} model.AIAnalysisResult
// @Failure 400 {object} util.ErrorBody
// @Failure 401 {object} util.ErrorBody
// @Failure 500 {object} util.ErrorBody
// @Router /api/ai-analysis [post]
func (c *AttemptController) CreateAnalysis(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Access token required")
		return
	}

	var req CreateAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	analysis := &model.AIAnalysisResult{
		UserID:               claims.UserID,
		QuizAttemptID:        req.QuizAttemptID,
		OverallFeedback:      req.OverallFeedback,
		WeakAreas:            req.WeakAreas,
		StudyRecommendations: req.StudyRecommendations,
		NextSteps:            req.NextSteps,
	}
	if err := c.AnalysisService.Save(analysis); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, analysis)
}
