package graph

import (
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// selectOperation 按 operationName 选出将被执行的操作；解析失败或找不到时返回 nil
func selectOperation(query, operationName string) *ast.OperationDefinition {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return nil
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName != "" && (op.Name == nil || op.Name.Value != operationName) {
			continue
		}
		return op
	}
	return nil
}

// IsMutation 判断文档中将被执行的操作是否为 mutation；解析失败返回 false，由执行阶段报错
func IsMutation(query, operationName string) bool {
	op := selectOperation(query, operationName)
	return op != nil && op.Operation == ast.OperationTypeMutation
}

// OperationName 返回将被执行的操作名；请求未指定时取文档中第一个操作的名字，匿名操作返回空串
func OperationName(query, operationName string) string {
	if operationName != "" {
		return operationName
	}
	op := selectOperation(query, "")
	if op == nil || op.Name == nil {
		return ""
	}
	return op.Name.Value
}
