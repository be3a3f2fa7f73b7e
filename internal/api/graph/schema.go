package graph

import (
	"context"
	"errors"
	"fmt"

	"orbittrack/internal/api/dto"

	"github.com/graphql-go/graphql"
)

var errMissingRequestContext = errors.New("request context is not available")

// MarketData 行情查询，由 service.MarketService 实现
type MarketData interface {
	TrendingPools(ctx context.Context, page int) (*dto.PaginatedTrendingPools, error)
	MultipleTokens(ctx context.Context, addresses []string) ([]dto.TrendingPool, error)
}

// poolItem TrendingPool 的解析源；只有 trendingPools 返回的条目才会查询收藏状态
type poolItem struct {
	pool            dto.TrendingPool
	resolveFavorite bool
}

func wrapPools(pools []dto.TrendingPool, resolveFavorite bool) []*poolItem {
	items := make([]*poolItem, 0, len(pools))
	for i := range pools {
		items = append(items, &poolItem{pool: pools[i], resolveFavorite: resolveFavorite})
	}
	return items
}

func poolField(typ graphql.Output, get func(*dto.TrendingPool) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			item, ok := p.Source.(*poolItem)
			if !ok {
				return nil, nil
			}
			return get(&item.pool), nil
		},
	}
}

// NewSchema 构建 GraphQL schema
func NewSchema(market MarketData) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"publicKey": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	favoriteTokenType := graphql.NewObject(graphql.ObjectConfig{
		Name: "FavoriteToken",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"publicKey":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"tokenAddress": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	trendingPoolType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TrendingPool",
		Fields: graphql.Fields{
			"symbol": poolField(graphql.NewNonNull(graphql.String), func(t *dto.TrendingPool) interface{} { return t.Symbol }),
			"icon": poolField(graphql.String, func(t *dto.TrendingPool) interface{} {
				if t.Icon == nil {
					return nil
				}
				return *t.Icon
			}),
			"price":       poolField(graphql.Float, func(t *dto.TrendingPool) interface{} { return t.Price }),
			"priceChange": poolField(graphql.Float, func(t *dto.TrendingPool) interface{} { return t.PriceChange }),
			"marketCap":   poolField(graphql.Float, func(t *dto.TrendingPool) interface{} { return t.MarketCap }),
			"volume":      poolField(graphql.Float, func(t *dto.TrendingPool) interface{} { return t.Volume }),
			"address":     poolField(graphql.NewNonNull(graphql.String), func(t *dto.TrendingPool) interface{} { return t.Address }),
			"isFavorited": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Resolve: resolveIsFavorited,
			},
		},
	})

	paginatedType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PaginatedTrendingPools",
		Fields: graphql.Fields{
			"pools": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(trendingPoolType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, ok := p.Source.(*dto.PaginatedTrendingPools)
					if !ok {
						return []*poolItem{}, nil
					}
					return wrapPools(page.Pools, true), nil
				},
			},
			"hasNextPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"currentPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"trendingPools": &graphql.Field{
				Type: graphql.NewNonNull(paginatedType),
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Args["page"].(int)
					return market.TrendingPools(p.Context, page)
				},
			},
			"favoritesByUser": &graphql.Field{
				Type: graphql.NewList(favoriteTokenType),
				Args: graphql.FieldConfigArgument{
					"publicKey": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rc, ok := FromContext(p.Context)
					if !ok {
						return nil, errMissingRequestContext
					}
					publicKey, _ := p.Args["publicKey"].(string)
					favorites, err := rc.Store.ListFavorites(p.Context, publicKey)
					if err != nil {
						return nil, err
					}
					return dto.NewFavoriteTokenList(favorites), nil
				},
			},
			"getMultipleTokens": &graphql.Field{
				Type: graphql.NewList(trendingPoolType),
				Args: graphql.FieldConfigArgument{
					"tokenAddresses": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					addresses, err := stringList(p.Args["tokenAddresses"])
					if err != nil {
						return nil, err
					}
					tokens, err := market.MultipleTokens(p.Context, addresses)
					if err != nil {
						return nil, err
					}
					return wrapPools(tokens, false), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUserWithPublicKey": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"publicKey": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rc, ok := FromContext(p.Context)
					if !ok {
						return nil, errMissingRequestContext
					}
					publicKey, _ := p.Args["publicKey"].(string)
					user, err := rc.Store.CreateUser(p.Context, publicKey)
					if err != nil {
						return nil, err
					}
					return dto.NewUser(user), nil
				},
			},
			"addFavoriteToken": &graphql.Field{
				Type: favoriteTokenType,
				Args: favoriteArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rc, ok := FromContext(p.Context)
					if !ok {
						return nil, errMissingRequestContext
					}
					publicKey, _ := p.Args["publicKey"].(string)
					tokenAddress, _ := p.Args["tokenAddress"].(string)
					fav, err := rc.Store.AddFavorite(p.Context, publicKey, tokenAddress)
					if err != nil {
						return nil, err
					}
					return dto.NewFavoriteToken(fav), nil
				},
			},
			"removeFavoriteToken": &graphql.Field{
				Type: graphql.Boolean,
				Args: favoriteArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rc, ok := FromContext(p.Context)
					if !ok {
						return nil, errMissingRequestContext
					}
					publicKey, _ := p.Args["publicKey"].(string)
					tokenAddress, _ := p.Args["tokenAddress"].(string)
					return rc.Store.RemoveFavorite(p.Context, publicKey, tokenAddress)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// resolveIsFavorited 按调用方公钥逐条查询收藏状态；getMultipleTokens 的结果恒为 false
func resolveIsFavorited(p graphql.ResolveParams) (interface{}, error) {
	item, ok := p.Source.(*poolItem)
	if !ok || !item.resolveFavorite {
		return false, nil
	}
	rc, ok := FromContext(p.Context)
	if !ok {
		return false, nil
	}
	return rc.Store.IsFavorited(p.Context, rc.CallerKey, item.pool.Address)
}

func favoriteArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"publicKey":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		"tokenAddress": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}
}

func stringList(v interface{}) ([]string, error) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}
