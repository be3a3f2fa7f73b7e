package service

import (
	"context"
	"errors"

	"orbittrack/internal/api/dto"
	"orbittrack/internal/infra/geckoterminal"
	"orbittrack/pkg/logger"

	"go.uber.org/zap"
)

// MaxTrendingPages 热门池子固定最多 10 页，与实际数据量无关
const MaxTrendingPages = 10

var (
	ErrInvalidPage      = errors.New("page must be a positive integer")
	ErrNoTokenAddresses = errors.New("at least one token address is required")
)

// MarketDataSource 行情数据源，由 geckoterminal.Client 实现
type MarketDataSource interface {
	TrendingPools(ctx context.Context, page int) (*geckoterminal.TrendingPoolsResponse, error)
	MultipleTokens(ctx context.Context, addresses []string) (*geckoterminal.MultiTokenResponse, error)
}

type MarketService struct {
	source MarketDataSource
}

func NewMarketService(source MarketDataSource) *MarketService {
	return &MarketService{source: source}
}

// TrendingPools 获取热门池子并按 base token 去重，每个代币只保留 24h 成交量最高的池子
//
// 上游失败不返回错误，而是返回空页；只有非法页码才返回错误。
// 结果中的 IsFavorited 不在这里设置，由 GraphQL 字段解析单独处理。
func (s *MarketService) TrendingPools(ctx context.Context, page int) (*dto.PaginatedTrendingPools, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	resp, err := s.source.TrendingPools(ctx, page)
	if err != nil {
		logger.Warn("Fetch trending pools failed, returning empty page",
			zap.Int("page", page),
			zap.Error(err),
		)
		return &dto.PaginatedTrendingPools{
			Pools:       []dto.TrendingPool{},
			HasNextPage: false,
			CurrentPage: page,
		}, nil
	}

	return &dto.PaginatedTrendingPools{
		Pools:       dedupeByBaseToken(resp),
		HasNextPage: page < MaxTrendingPages,
		CurrentPage: page,
	}, nil
}

// MultipleTokens 批量查询代币行情；与 TrendingPools 不同，上游失败会直接返回错误
func (s *MarketService) MultipleTokens(ctx context.Context, addresses []string) ([]dto.TrendingPool, error) {
	if len(addresses) == 0 {
		return nil, ErrNoTokenAddresses
	}

	resp, err := s.source.MultipleTokens(ctx, addresses)
	if err != nil {
		return nil, err
	}

	tokens := make([]dto.TrendingPool, 0, len(resp.Data))
	for i := range resp.Data {
		token := &resp.Data[i]

		var priceChange float64
		if pool, ok := resp.FindTopPool(token.ID); ok {
			priceChange = pool.Attributes.PriceChangePercentage.H24.Float64()
		}

		tokens = append(tokens, dto.TrendingPool{
			Symbol:      token.Attributes.Symbol,
			Icon:        token.Attributes.ImageURL,
			Price:       token.Attributes.PriceUSD.Float64(),
			PriceChange: priceChange,
			MarketCap:   token.Attributes.MarketCapUSD.Float64(),
			Volume:      token.Attributes.VolumeUSD.H24.Float64(),
			Address:     token.Attributes.Address,
			IsFavorited: false,
		})
	}
	return tokens, nil
}

// dedupeByBaseToken 按 base token id 分组取成交量最大的池子，保持 id 首次出现的顺序
func dedupeByBaseToken(resp *geckoterminal.TrendingPoolsResponse) []dto.TrendingPool {
	index := make(map[string]int, len(resp.Data))
	pools := make([]dto.TrendingPool, 0, len(resp.Data))

	for i := range resp.Data {
		pool := &resp.Data[i]

		baseTokenID := pool.BaseTokenID()
		if baseTokenID == "" {
			continue
		}
		baseToken, ok := resp.FindIncludedToken(baseTokenID)
		if !ok {
			continue
		}

		view := toTrendingPool(pool, baseToken)
		if pos, seen := index[baseTokenID]; seen {
			if view.Volume > pools[pos].Volume {
				pools[pos] = view
			}
			continue
		}
		index[baseTokenID] = len(pools)
		pools = append(pools, view)
	}
	return pools
}

func toTrendingPool(pool *geckoterminal.Pool, baseToken *geckoterminal.Token) dto.TrendingPool {
	symbol := baseToken.Attributes.Symbol
	if symbol == "" {
		symbol = "Unknown"
	}

	var icon *string
	if url := baseToken.Attributes.ImageURL; url != nil && *url != "" {
		icon = url
	}

	return dto.TrendingPool{
		Symbol:      symbol,
		Icon:        icon,
		Price:       pool.Attributes.BaseTokenPriceUSD.Float64(),
		PriceChange: pool.Attributes.PriceChangePercentage.H24.Float64(),
		MarketCap:   pool.Attributes.MarketCapUSD.Float64(),
		Volume:      pool.Attributes.VolumeUSD.H24.Float64(),
		Address:     baseToken.Attributes.Address,
	}
}
