package graph

import (
	"context"

	"orbittrack/internal/model"
)

// Store 请求上下文中携带的收藏存储句柄
type Store interface {
	CreateUser(ctx context.Context, publicKey string) (*model.User, error)
	AddFavorite(ctx context.Context, publicKey, tokenAddress string) (*model.FavoriteToken, error)
	RemoveFavorite(ctx context.Context, publicKey, tokenAddress string) (bool, error)
	ListFavorites(ctx context.Context, publicKey string) ([]model.FavoriteToken, error)
	IsFavorited(ctx context.Context, publicKey *string, tokenAddress string) (bool, error)
}

// RequestContext 每个 GraphQL 请求显式携带的调用方信息
type RequestContext struct {
	// CallerKey 来自 x-public-key 请求头，匿名请求为 nil
	CallerKey *string
	Store     Store
}

type requestContextKey struct{}

// WithRequestContext 将请求上下文挂到 ctx 上
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// FromContext 取出请求上下文
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc, ok && rc != nil && rc.Store != nil
}
