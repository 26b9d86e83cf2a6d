package controller

import (
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"
	"quizhub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuizController struct {
	QuizService *service.QuizService
	SeedService *service.SeedService
}

func NewQuizController(quizService *service.QuizService, seedService *service.SeedService) *QuizController {
	return &QuizController{
		QuizService: quizService,
		SeedService: seedService,
	}
}

// ListCategories godoc
// @Summary 获取测验分类
// @Description 按创建时间升序返回全部分类
// @Tags 测验
// @Produce json
// @Success 200 {array} model.QuizCategory
// @Failure 500 {object} util.ErrorBody
// @Router /api/quiz-categories [get]
func (c *QuizController) ListCategories(ctx *gin.Context) {
	categories, err := c.QuizService.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.JSON(ctx, categories)
}

// GetQuestions godoc
// @Summary 获取分类题目
// @Description 返回分类下的题目，可随机抽样；缺失或非法的分类 id 返回空数组
// @Tags 测验
// @Produce json
// @Param categoryId path string true "分类 ID"
// @Param count query int false "题目数量 (1-100，默认 10)"
// @Param random query bool false "随机抽样"
// @Success 200 {array} model.QuizQuestion
// @Failure 500 {object} util.ErrorBody
// @Router /api/quiz-questions/{categoryId} [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	categoryID := ctx.Param("categoryId")
	count := service.ClampCount(ctx.DefaultQuery("count", "10"))
	random := ctx.DefaultQuery("random", "false") == "true"

	questions, err := c.QuizService.GetQuestions(categoryID, count, random)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.JSON(ctx, questions)
}

// SeedData godoc
// @Summary 导入种子数据
// @Description 幂等地写入内置分类与题目
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} util.ErrorBody
// @Router /api/seed-data [post]
func (c *QuizController) SeedData(ctx *gin.Context) {
	categories, questions, err := c.SeedService.Seed()
	if err != nil {
		logger.Log.Error("种子数据写入失败", zap.Error(err))
		util.Error(ctx, 500, "Failed to seed data")
		return
	}

	logger.Log.Info("种子数据写入完成",
		zap.Int("categoriesCreated", categories),
		zap.Int("questionsCreated", questions))
	util.JSON(ctx, gin.H{"message": "Data seeded successfully"})
}
