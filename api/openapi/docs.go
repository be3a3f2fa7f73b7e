// Package openapi 手工维护的 swag 文档，与 handler 上的注解保持一致
package openapi

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/graphql": {
            "get": {
                "description": "仅支持 query 操作，mutation 需使用 POST",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "GraphQL"
                ],
                "summary": "执行只读 GraphQL 请求",
                "parameters": [
                    {
                        "type": "string",
                        "description": "钱包公钥",
                        "name": "x-public-key",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "GraphQL 文档",
                        "name": "query",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "操作名",
                        "name": "operationName",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "JSON 编码的变量",
                        "name": "variables",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "GraphQL 结果（data / errors）",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "请求参数无效",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "405": {
                        "description": "GET 不支持 mutation",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "查询热门池子、收藏列表，或增删收藏。x-public-key 为调用方钱包公钥，缺省为匿名",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "GraphQL"
                ],
                "summary": "执行 GraphQL 请求",
                "parameters": [
                    {
                        "type": "string",
                        "description": "钱包公钥",
                        "name": "x-public-key",
                        "in": "header"
                    },
                    {
                        "description": "GraphQL 请求",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.GraphQLRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "GraphQL 结果（data / errors）",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "请求体无效",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "存活探针，固定返回 ok",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "系统"
                ],
                "summary": "健康检查",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.GraphQLRequest": {
            "type": "object",
            "required": [
                "query"
            ],
            "properties": {
                "operationName": {
                    "type": "string"
                },
                "query": {
                    "type": "string"
                },
                "variables": {
                    "type": "object",
                    "additionalProperties": true
                }
            }
        },
        "response.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                }
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "$ref": "#/definitions/response.ErrorInfo"
                }
            }
        },
        "response.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "127.0.0.1:4000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "OrbitTrack API",
	Description:      "Solana 热门池子与钱包收藏 GraphQL 服务",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
