package controller

import (
	"net/http"
	"os"

	"quizhub_backend/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewHealthController(db *gorm.DB, cfg *config.Config) *HealthController {
	return &HealthController{DB: db, Cfg: cfg}
}

// HealthCheck godoc
// @Summary 健康检查
// @Description 报告服务状态与数据库连接目标
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}

	connected := sqlDB.Ping() == nil
	_, viaEnv := os.LookupEnv("DATABASE_HOST")

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"db": gin.H{
			"connected": connected,
			"host":      c.Cfg.Database.Host,
			"name":      c.Cfg.Database.DBName,
			"viaEnv":    viaEnv,
		},
	})
}
