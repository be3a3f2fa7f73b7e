package graph

import (
	"context"

	"orbittrack/internal/api/dto"

	"github.com/graphql-go/graphql"
)

// Execute 在带有请求上下文的 ctx 上执行一次 GraphQL 请求
func Execute(ctx context.Context, schema graphql.Schema, rc *RequestContext, req *dto.GraphQLRequest) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        WithRequestContext(ctx, rc),
	})
}
