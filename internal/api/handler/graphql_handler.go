package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"orbittrack/internal/api/dto"
	"orbittrack/internal/api/graph"
	"orbittrack/internal/api/middleware"
	"orbittrack/internal/api/response"
	"orbittrack/internal/observability/metrics"
	"orbittrack/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

type GraphQLHandler struct {
	schema graphql.Schema
	store  graph.Store
}

func NewGraphQLHandler(schema graphql.Schema, store graph.Store) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, store: store}
}

// Query 执行 GraphQL 请求
// @Summary 执行 GraphQL 请求
// @Description 查询热门池子、收藏列表，或增删收藏。x-public-key 为调用方钱包公钥，缺省为匿名
// @Tags GraphQL
// @Accept json
// @Produce json
// @Param x-public-key header string false "钱包公钥"
// @Param request body dto.GraphQLRequest true "GraphQL 请求"
// @Success 200 {object} object "GraphQL 结果（data / errors）"
// @Failure 400 {object} response.ErrorResponse "请求体无效"
// @Router /graphql [post]
func (h *GraphQLHandler) Query(c *gin.Context) {
	var req dto.GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}
	h.execute(c, &req)
}

// QueryGet 通过 URL 参数执行只读 GraphQL 请求
// @Summary 执行只读 GraphQL 请求
// @Description 仅支持 query 操作，mutation 需使用 POST
// @Tags GraphQL
// @Produce json
// @Param x-public-key header string false "钱包公钥"
// @Param query query string true "GraphQL 文档"
// @Param operationName query string false "操作名"
// @Param variables query string false "JSON 编码的变量"
// @Success 200 {object} object "GraphQL 结果（data / errors）"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 405 {object} response.ErrorResponse "GET 不支持 mutation"
// @Router /graphql [get]
func (h *GraphQLHandler) QueryGet(c *gin.Context) {
	req := dto.GraphQLRequest{
		Query:         c.Query("query"),
		OperationName: c.Query("operationName"),
	}
	if strings.TrimSpace(req.Query) == "" {
		response.BadRequest(c, "缺少 query 参数")
		return
	}
	if raw := c.Query("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			response.BadRequest(c, "variables 不是合法的 JSON 对象")
			return
		}
	}
	if graph.IsMutation(req.Query, req.OperationName) {
		response.MethodNotAllowed(c, "mutation 只能通过 POST 请求执行")
		return
	}
	h.execute(c, &req)
}

func (h *GraphQLHandler) execute(c *gin.Context, req *dto.GraphQLRequest) {
	rc := &graph.RequestContext{
		CallerKey: middleware.GetCallerKey(c),
		Store:     h.store,
	}

	start := time.Now()
	result := graph.Execute(c.Request.Context(), h.schema, rc, req)

	operation := graph.OperationName(req.Query, req.OperationName)
	if operation == "" {
		operation = "anonymous"
	}
	outcome := metrics.Success
	if result.HasErrors() {
		outcome = metrics.Error
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Message)
		}
		logger.Warn("GraphQL operation returned errors",
			zap.String("operation", operation),
			zap.Strings("errors", msgs),
		)
	}
	metrics.RecordGraphQLOperation(operation, outcome, time.Since(start))

	c.JSON(http.StatusOK, result)
}
