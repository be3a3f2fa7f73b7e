package dto

// GraphQLRequest GraphQL HTTP 请求体
type GraphQLRequest struct {
	Query         string                 `json:"query" form:"query" binding:"required"`
	OperationName string                 `json:"operationName" form:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}
