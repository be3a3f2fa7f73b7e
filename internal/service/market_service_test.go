package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"orbittrack/internal/config"
	"orbittrack/internal/infra/geckoterminal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	trending *geckoterminal.TrendingPoolsResponse
	multi    *geckoterminal.MultiTokenResponse
	err      error
	pages    []int
}

func (s *stubSource) TrendingPools(ctx context.Context, page int) (*geckoterminal.TrendingPoolsResponse, error) {
	s.pages = append(s.pages, page)
	if s.err != nil {
		return nil, s.err
	}
	return s.trending, nil
}

func (s *stubSource) MultipleTokens(ctx context.Context, addresses []string) (*geckoterminal.MultiTokenResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.multi, nil
}

func decodeFixture[T any](t *testing.T, raw string) *T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return &out
}

const dedupeFixture = `{
  "data": [
    {"id": "p1", "type": "pool", "attributes": {"base_token_price_usd": "1.0", "volume_usd": {"h24": "100"}, "price_change_percentage": {"h24": "1.5"}, "market_cap_usd": "5000"},
     "relationships": {"base_token": {"data": {"id": "solana_A", "type": "token"}}}},
    {"id": "p2", "type": "pool", "attributes": {"base_token_price_usd": "2.0", "volume_usd": {"h24": "300"}, "price_change_percentage": {"h24": "2.5"}},
     "relationships": {"base_token": {"data": {"id": "solana_B", "type": "token"}}}},
    {"id": "p3", "type": "pool", "attributes": {"base_token_price_usd": "1.1", "volume_usd": {"h24": "900"}, "price_change_percentage": {"h24": "-4"}},
     "relationships": {"base_token": {"data": {"id": "solana_A", "type": "token"}}}},
    {"id": "p4", "type": "pool", "attributes": {"base_token_price_usd": "1.2", "volume_usd": {"h24": "900"}},
     "relationships": {"base_token": {"data": {"id": "solana_A", "type": "token"}}}},
    {"id": "p5", "type": "pool", "attributes": {"volume_usd": {"h24": "50"}},
     "relationships": {"base_token": {"data": {"id": "solana_missing", "type": "token"}}}},
    {"id": "p6", "type": "pool", "attributes": {"volume_usd": {"h24": "50"}}, "relationships": {}}
  ],
  "included": [
    {"id": "solana_A", "type": "token", "attributes": {"address": "addrA", "symbol": "AAA", "image_url": "https://img/a.png"}},
    {"id": "solana_B", "type": "token", "attributes": {"address": "addrB", "symbol": "", "image_url": ""}}
  ]
}`

func TestMarketService_TrendingPoolsDedupesByBaseToken(t *testing.T) {
	source := &stubSource{trending: decodeFixture[geckoterminal.TrendingPoolsResponse](t, dedupeFixture)}
	svc := NewMarketService(source)

	page, err := svc.TrendingPools(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Pools, 2)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, 1, page.CurrentPage)

	// 同一 base token 保留成交量最高的池子，成交量相同保留先出现的
	a := page.Pools[0]
	assert.Equal(t, "addrA", a.Address)
	assert.Equal(t, "AAA", a.Symbol)
	assert.Equal(t, 1.1, a.Price)
	assert.Equal(t, float64(900), a.Volume)
	assert.Equal(t, float64(-4), a.PriceChange)
	assert.Equal(t, float64(0), a.MarketCap)
	require.NotNil(t, a.Icon)
	assert.Equal(t, "https://img/a.png", *a.Icon)
	assert.False(t, a.IsFavorited)

	b := page.Pools[1]
	assert.Equal(t, "addrB", b.Address)
	assert.Equal(t, "Unknown", b.Symbol)
	assert.Nil(t, b.Icon)
	assert.Equal(t, 2.0, b.Price)
}

func TestMarketService_TrendingPoolsHasNextPage(t *testing.T) {
	source := &stubSource{trending: &geckoterminal.TrendingPoolsResponse{}}
	svc := NewMarketService(source)

	for page, want := range map[int]bool{1: true, 9: true, 10: false, 11: false} {
		result, err := svc.TrendingPools(context.Background(), page)
		require.NoError(t, err)
		assert.Equal(t, want, result.HasNextPage, "page %d", page)
		assert.Equal(t, page, result.CurrentPage)
		assert.NotNil(t, result.Pools)
	}
}

func TestMarketService_TrendingPoolsInvalidPage(t *testing.T) {
	source := &stubSource{}
	svc := NewMarketService(source)

	_, err := svc.TrendingPools(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
	assert.Empty(t, source.pages)
}

func TestMarketService_TrendingPoolsUpstreamFailureReturnsEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := geckoterminal.NewClientWithHTTP(&config.MarketConfig{BaseURL: srv.URL, Network: "solana"}, srv.Client())
	svc := NewMarketService(client)

	page, err := svc.TrendingPools(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, page.Pools)
	assert.NotNil(t, page.Pools)
	assert.False(t, page.HasNextPage)
	assert.Equal(t, 2, page.CurrentPage)
}

const multiFixture = `{
  "data": [
    {"id": "solana_A", "type": "token", "attributes": {"address": "addrA", "symbol": "AAA", "image_url": "https://img/a.png",
      "price_usd": "0.5", "market_cap_usd": 1200, "volume_usd": {"h24": "77"}}},
    {"id": "solana_B", "type": "token", "attributes": {"address": "addrB", "symbol": "BBB", "image_url": null,
      "price_usd": null, "volume_usd": {"h24": null}}}
  ],
  "included": [
    {"id": "pool_A", "type": "pool", "attributes": {"price_change_percentage": {"h24": "12.5"}},
     "relationships": {"base_token": {"data": {"id": "solana_A", "type": "token"}}}}
  ]
}`

func TestMarketService_MultipleTokens(t *testing.T) {
	source := &stubSource{multi: decodeFixture[geckoterminal.MultiTokenResponse](t, multiFixture)}
	svc := NewMarketService(source)

	tokens, err := svc.MultipleTokens(context.Background(), []string{"addrA", "addrB"})
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, "AAA", tokens[0].Symbol)
	assert.Equal(t, 0.5, tokens[0].Price)
	assert.Equal(t, float64(1200), tokens[0].MarketCap)
	assert.Equal(t, float64(77), tokens[0].Volume)
	assert.Equal(t, 12.5, tokens[0].PriceChange)
	assert.False(t, tokens[0].IsFavorited)

	assert.Equal(t, "addrB", tokens[1].Address)
	assert.Nil(t, tokens[1].Icon)
	assert.Equal(t, float64(0), tokens[1].Price)
	assert.Equal(t, float64(0), tokens[1].PriceChange)
}

func TestMarketService_MultipleTokensErrors(t *testing.T) {
	svc := NewMarketService(&stubSource{err: errors.New("upstream down")})

	_, err := svc.MultipleTokens(context.Background(), []string{"addrA"})
	assert.EqualError(t, err, "upstream down")

	_, err = svc.MultipleTokens(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoTokenAddresses)
}

func TestMarketService_MultipleTokensUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := geckoterminal.NewClientWithHTTP(&config.MarketConfig{BaseURL: srv.URL, Network: "solana"}, srv.Client())
	svc := NewMarketService(client)

	_, err := svc.MultipleTokens(context.Background(), []string{"addrA"})
	var statusErr *geckoterminal.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}
