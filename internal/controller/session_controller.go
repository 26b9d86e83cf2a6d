package controller

import (
	"errors"

	"quizhub_backend/internal/service"
	"quizhub_backend/internal/session"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService   *service.SessionService
	GeneratorService *service.GeneratorService
}

func NewSessionController(sessionService *service.SessionService, generatorService *service.GeneratorService) *SessionController {
	return &SessionController{
		SessionService:   sessionService,
		GeneratorService: generatorService,
	}
}

// StartSessionRequest opens a session either over a stored category or,
// when topic is set, over a freshly generated AI question set.
type StartSessionRequest struct {
	CategoryID    uint   `json:"categoryId"`
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
}

type AnswerRequest struct {
	Option *int `json:"option" binding:"required"`
}

// StartSession godoc
// @Summary 开始测验会话
// @Description 基于分类抽题或基于 AI 生成题组开启服务端会话
// @Tags 会话
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StartSessionRequest true "会话参数"
// @Success 201 {object} service.SessionView
// @Failure 400 {object} util.ErrorBody
// @Failure 401 {object} util.ErrorBody
// @Failure 404 {object} util.ErrorBody
// @Router /api/quiz-sessions [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Access token required")
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var (
		view *service.SessionView
		err  error
	)
	switch {
	case req.CategoryID != 0:
		view, err = c.SessionService.StartFromCategory(ctx.Request.Context(), claims.UserID, req.CategoryID)
	case req.Topic != "":
		quiz := c.GeneratorService.Generate(service.GenerateRequest{
			Topic:         req.Topic,
			Difficulty:    req.Difficulty,
			QuestionCount: req.QuestionCount,
		})
		view, err = c.SessionService.StartFromAIQuiz(ctx.Request.Context(), claims.UserID, quiz)
	default:
		util.BadRequest(ctx, "categoryId or topic required")
		return
	}

	if err != nil {
		if errors.Is(err, util.ErrEmptyQuestionSet) {
			util.BadRequest(ctx, "No questions available")
			return
		}
		c.fail(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// GetSession godoc
// @Summary 查询会话状态
// @Description 返回会话当前状态；倒计时按真实流逝时间推进，可能触发超时完成
// @Tags 会话
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} service.SessionView
// @Failure 401 {object} util.ErrorBody
// @Failure 404 {object} util.ErrorBody
// @Router /api/quiz-sessions/{id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	view, err := c.SessionService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.fail(ctx, err)
		return
	}
	util.JSON(ctx, view)
}

// Answer godoc
// @Summary 选择答案
// @Description 记录当前题目的待提交选项，不推进题序
// @Tags 会话
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Param body body AnswerRequest true "选项下标 (0-3)"
// @Success 200 {object} service.SessionView
// @Failure 400 {object} util.ErrorBody
// @Failure 404 {object} util.ErrorBody
// @Router /api/quiz-sessions/{id}/answer [post]
func (c *SessionController) Answer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.SessionService.Answer(ctx.Request.Context(), ctx.Param("id"), *req.Option)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	util.JSON(ctx, view)
}

// Advance godoc
// @Summary 提交并前进
// @Description 提交当前选项并进入下一题；最后一题提交即完成会话
// @Tags 会话
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} service.SessionView
// @Failure 400 {object} util.ErrorBody
// @Failure 404 {object} util.ErrorBody
// @Router /api/quiz-sessions/{id}/advance [post]
func (c *SessionController) Advance(ctx *gin.Context) {
	view, err := c.SessionService.Advance(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.fail(ctx, err)
		return
	}
	util.JSON(ctx, view)
}

// Previous godoc
// @Summary 返回上一题
// @Description 丢弃当前待提交选项并回到上一题
// @Tags 会话
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} service.SessionView
// @Failure 400 {object} util.ErrorBody
// @Failure 404 {object} util.ErrorBody
// @Router /api/quiz-sessions/{id}/previous [post]
func (c *SessionController) Previous(ctx *gin.Context) {
	view, err := c.SessionService.Previous(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.fail(ctx, err)
		return
	}
	util.JSON(ctx, view)
}

// fail maps domain errors onto the public contract.
func (c *SessionController) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx, "Session not found")
	case errors.Is(err, session.ErrInvalidOption),
		errors.Is(err, session.ErrNoSelection),
		errors.Is(err, session.ErrAtFirstQuestion),
		errors.Is(err, session.ErrCompleted):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
