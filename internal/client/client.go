// Package client OrbitTrack GraphQL 客户端：类型化的查询、分页缓存合并与收藏的乐观更新。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"orbittrack/internal/api/dto"
)

// HeaderPublicKey 调用方公钥请求头
const HeaderPublicKey = "x-public-key"

// GraphQLError 服务端返回的 GraphQL 错误
type GraphQLError struct {
	Message string `json:"message"`
}

// ResponseError 响应中包含 errors 字段
type ResponseError struct {
	Errors []GraphQLError
}

func (e *ResponseError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// HasMessage 判断是否包含指定错误信息
func (e *ResponseError) HasMessage(msg string) bool {
	for _, ge := range e.Errors {
		if ge.Message == msg {
			return true
		}
	}
	return false
}

type Client struct {
	endpoint   string
	publicKey  string
	httpClient *http.Client
}

// New 创建客户端；publicKey 为空表示匿名调用
func New(endpoint, publicKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{endpoint: endpoint, publicKey: publicKey, httpClient: httpClient}
}

// PublicKey 当前钱包公钥
func (c *Client) PublicKey() string {
	return c.publicKey
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Do 发送 GraphQL 请求并把 data 解码到 out；operationName 可为空
func (c *Client) Do(ctx context.Context, operationName, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: query, OperationName: operationName, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.publicKey != "" {
		req.Header.Set(HeaderPublicKey, c.publicKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("graphql request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var gr graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return fmt.Errorf("failed to decode graphql response: %w", err)
	}
	if len(gr.Errors) > 0 {
		return &ResponseError{Errors: gr.Errors}
	}
	if out == nil || len(gr.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("failed to decode graphql data: %w", err)
	}
	return nil
}

// TrendingPools 查询热门池子
func (c *Client) TrendingPools(ctx context.Context, page int) (*dto.PaginatedTrendingPools, error) {
	var out struct {
		TrendingPools dto.PaginatedTrendingPools `json:"trendingPools"`
	}
	if err := c.Do(ctx, OpTrendingPools, TrendingPoolsQuery, map[string]interface{}{"page": page}, &out); err != nil {
		return nil, err
	}
	return &out.TrendingPools, nil
}

// FavoritesByUser 查询收藏列表
func (c *Client) FavoritesByUser(ctx context.Context, publicKey string) ([]dto.FavoriteToken, error) {
	var out struct {
		FavoritesByUser []dto.FavoriteToken `json:"favoritesByUser"`
	}
	if err := c.Do(ctx, OpFavoritesByUser, FavoritesByUserQuery, map[string]interface{}{"publicKey": publicKey}, &out); err != nil {
		return nil, err
	}
	return out.FavoritesByUser, nil
}

// GetMultipleTokens 批量查询代币行情；地址为空时不发请求
func (c *Client) GetMultipleTokens(ctx context.Context, addresses []string) ([]dto.TrendingPool, error) {
	if len(addresses) == 0 {
		return []dto.TrendingPool{}, nil
	}
	var out struct {
		GetMultipleTokens []dto.TrendingPool `json:"getMultipleTokens"`
	}
	if err := c.Do(ctx, OpGetMultipleTokens, GetMultipleTokensQuery, map[string]interface{}{"tokenAddresses": addresses}, &out); err != nil {
		return nil, err
	}
	return out.GetMultipleTokens, nil
}

// CreateUser 创建（或获取）当前钱包对应的用户
func (c *Client) CreateUser(ctx context.Context, publicKey string) (*dto.User, error) {
	var out struct {
		CreateUserWithPublicKey *dto.User `json:"createUserWithPublicKey"`
	}
	if err := c.Do(ctx, OpCreateUser, CreateUserMutation, map[string]interface{}{"publicKey": publicKey}, &out); err != nil {
		return nil, err
	}
	if out.CreateUserWithPublicKey == nil {
		return nil, errors.New("createUserWithPublicKey returned no user")
	}
	return out.CreateUserWithPublicKey, nil
}

// AddFavoriteToken 收藏代币
func (c *Client) AddFavoriteToken(ctx context.Context, publicKey, tokenAddress string) (*dto.FavoriteToken, error) {
	var out struct {
		AddFavoriteToken *dto.FavoriteToken `json:"addFavoriteToken"`
	}
	vars := map[string]interface{}{"publicKey": publicKey, "tokenAddress": tokenAddress}
	if err := c.Do(ctx, OpAddFavoriteToken, AddFavoriteTokenMutation, vars, &out); err != nil {
		return nil, err
	}
	return out.AddFavoriteToken, nil
}

// RemoveFavoriteToken 取消收藏，返回是否删除了记录
func (c *Client) RemoveFavoriteToken(ctx context.Context, publicKey, tokenAddress string) (bool, error) {
	var out struct {
		RemoveFavoriteToken bool `json:"removeFavoriteToken"`
	}
	vars := map[string]interface{}{"publicKey": publicKey, "tokenAddress": tokenAddress}
	if err := c.Do(ctx, OpRemoveFavoriteToken, RemoveFavoriteTokenMutation, vars, &out); err != nil {
		return false, err
	}
	return out.RemoveFavoriteToken, nil
}
