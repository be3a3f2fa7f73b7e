package router

import (
	"orbittrack/internal/api/handler"
	"orbittrack/internal/api/middleware"
	"orbittrack/internal/api/response"
	"orbittrack/internal/config"
	"orbittrack/internal/observability/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// New 创建 Gin 引擎并注册全部路由
func New(appCfg *config.AppConfig, graphqlHandler *handler.GraphQLHandler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.Recovery())
	r.Use(middleware.CallerIdentity())
	r.Use(middleware.Logger())

	// --- 系统 ---
	r.GET("/", handler.Root(appCfg))
	r.GET("/health", handler.Health)
	r.GET("/healthz", handler.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- GraphQL ---
	r.POST("/graphql", graphqlHandler.Query)
	r.GET("/graphql", graphqlHandler.QueryGet)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "接口不存在")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c, "请求方法不被允许")
	})

	return r
}
