package client

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"orbittrack/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	requested []int
	lastPage  int
	err       error
}

func (f *fakeFetcher) TrendingPools(ctx context.Context, n int) (*dto.PaginatedTrendingPools, error) {
	f.requested = append(f.requested, n)
	if f.err != nil {
		return nil, f.err
	}
	return page(n, n < f.lastPage, fmt.Sprintf("addr-%d", n)), nil
}

func TestPager_StopsAtMaxPages(t *testing.T) {
	fetcher := &fakeFetcher{lastPage: 50}
	pager := NewPager(fetcher, nil)

	for i := 0; i < MaxPages+3; i++ {
		_, err := pager.LoadMore(context.Background())
		require.NoError(t, err)
	}

	assert.Len(t, fetcher.requested, MaxPages)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, fetcher.requested)
	assert.False(t, pager.HasMore())
	assert.Len(t, pager.Cache().Snapshot().Pools, MaxPages)
}

func TestPager_StopsWhenNoNextPage(t *testing.T) {
	fetcher := &fakeFetcher{lastPage: 2}
	pager := NewPager(fetcher, NewPoolCache())

	loaded, err := pager.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)

	loaded, err = pager.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)

	loaded, err = pager.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, []int{1, 2}, fetcher.requested)
}

func TestPager_ErrorKeepsCache(t *testing.T) {
	fetcher := &fakeFetcher{lastPage: 10}
	pager := NewPager(fetcher, nil)

	_, err := pager.LoadMore(context.Background())
	require.NoError(t, err)

	fetcher.err = errors.New("network down")
	loaded, err := pager.LoadMore(context.Background())
	assert.Error(t, err)
	assert.False(t, loaded)
	assert.Equal(t, 1, pager.Cache().Snapshot().CurrentPage)

	// 失败后可以重试同一页
	fetcher.err = nil
	_, err = pager.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2}, fetcher.requested)
}
