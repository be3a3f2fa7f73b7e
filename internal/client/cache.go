package client

import (
	"sync"

	"orbittrack/internal/api/dto"
)

// PoolCache 热门池子的本地缓存，不区分页码参数，新页追加在已有数据之后
type PoolCache struct {
	mu     sync.RWMutex
	merged *dto.PaginatedTrendingPools
}

func NewPoolCache() *PoolCache {
	return &PoolCache{}
}

// Merge 合并新到达的一页：按地址去重，地址冲突时保留已有条目；
// hasNextPage 与 currentPage 取新页的值。
func (c *PoolCache) Merge(incoming *dto.PaginatedTrendingPools) *dto.PaginatedTrendingPools {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.merged = MergeTrendingPools(c.merged, incoming)
	return c.snapshotLocked()
}

// Snapshot 返回当前合并结果的副本；尚无数据时返回 nil
func (c *PoolCache) Snapshot() *dto.PaginatedTrendingPools {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// SetFavorited 更新缓存中某个地址的收藏状态，返回该地址是否存在
func (c *PoolCache) SetFavorited(address string, favorited bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.merged == nil {
		return false
	}
	for i := range c.merged.Pools {
		if c.merged.Pools[i].Address == address {
			c.merged.Pools[i].IsFavorited = favorited
			return true
		}
	}
	return false
}

// Reset 清空缓存
func (c *PoolCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.merged = nil
}

func (c *PoolCache) snapshotLocked() *dto.PaginatedTrendingPools {
	if c.merged == nil {
		return nil
	}
	out := *c.merged
	out.Pools = append([]dto.TrendingPool(nil), c.merged.Pools...)
	return &out
}

// MergeTrendingPools 合并两页结果，existing 可以为 nil
func MergeTrendingPools(existing, incoming *dto.PaginatedTrendingPools) *dto.PaginatedTrendingPools {
	if incoming == nil {
		return existing
	}

	var existingPools []dto.TrendingPool
	if existing != nil {
		existingPools = existing.Pools
	}

	seen := make(map[string]struct{}, len(existingPools)+len(incoming.Pools))
	pools := make([]dto.TrendingPool, 0, len(existingPools)+len(incoming.Pools))
	for _, p := range existingPools {
		seen[p.Address] = struct{}{}
		pools = append(pools, p)
	}
	for _, p := range incoming.Pools {
		if _, dup := seen[p.Address]; dup {
			continue
		}
		seen[p.Address] = struct{}{}
		pools = append(pools, p)
	}

	return &dto.PaginatedTrendingPools{
		Pools:       pools,
		HasNextPage: incoming.HasNextPage,
		CurrentPage: incoming.CurrentPage,
	}
}
