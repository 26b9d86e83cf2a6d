package controller

import (
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GeneratorController struct {
	GeneratorService *service.GeneratorService
}

func NewGeneratorController(generatorService *service.GeneratorService) *GeneratorController {
	return &GeneratorController{GeneratorService: generatorService}
}

// GenerateQuiz godoc
// @Summary 生成 AI 测验
// @Description 调用 Gemini 生成题目；无 API key 或调用失败时返回内置备用题组
// @Tags 测验
// @Accept json
// @Produce json
// @Param body body service.GenerateRequest true "生成参数"
// @Success 200 {object} service.GeneratedQuiz
// @Failure 400 {object} util.ErrorBody
// @Router /api/generate-quiz [post]
func (c *GeneratorController) GenerateQuiz(ctx *gin.Context) {
	var req service.GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.JSON(ctx, c.GeneratorService.Generate(req))
}
