package handler

import (
	"fmt"
	"net/http"

	"orbittrack/internal/api/response"
	"orbittrack/internal/config"
	"orbittrack/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Health 健康检查接口
// @Summary 健康检查
// @Description 存活探针，固定返回 ok
// @Tags 系统
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /healthz [get]
func Health(c *gin.Context) {
	logger.Debug("Health check requested", zap.String("ip", c.ClientIP()))
	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}

// Root 根路径处理器
func Root(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.OK(c, fmt.Sprintf("Welcome to %s API", cfg.Name), gin.H{
			"project": cfg.Name,
			"version": cfg.Version,
			"mode":    cfg.Mode,
			"graphql": "/graphql",
			"docs":    "/swagger/index.html",
		})
	}
}
