package client

import (
	"context"

	"orbittrack/internal/api/dto"
)

// MaxPages 无限滚动最多加载的页数
const MaxPages = 10

// TrendingPoolsFetcher 按页获取热门池子，*Client 实现
type TrendingPoolsFetcher interface {
	TrendingPools(ctx context.Context, page int) (*dto.PaginatedTrendingPools, error)
}

// Pager 驱动热门池子的逐页加载，结果合并进 PoolCache
type Pager struct {
	fetcher TrendingPoolsFetcher
	cache   *PoolCache
}

func NewPager(fetcher TrendingPoolsFetcher, cache *PoolCache) *Pager {
	if cache == nil {
		cache = NewPoolCache()
	}
	return &Pager{fetcher: fetcher, cache: cache}
}

func (p *Pager) Cache() *PoolCache {
	return p.cache
}

// HasMore 是否还能继续加载
func (p *Pager) HasMore() bool {
	snap := p.cache.Snapshot()
	if snap == nil {
		return true
	}
	return snap.HasNextPage && snap.CurrentPage < MaxPages
}

// LoadMore 加载下一页并合并；没有更多数据时返回 false 且不发请求
func (p *Pager) LoadMore(ctx context.Context) (bool, error) {
	if !p.HasMore() {
		return false, nil
	}

	next := 1
	if snap := p.cache.Snapshot(); snap != nil {
		next = snap.CurrentPage + 1
	}

	page, err := p.fetcher.TrendingPools(ctx, next)
	if err != nil {
		return false, err
	}
	p.cache.Merge(page)
	return true, nil
}
