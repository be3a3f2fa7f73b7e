package geckoterminal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orbittrack/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trendingFixture = `{
  "data": [
    {
      "id": "solana_pool1",
      "type": "pool",
      "attributes": {
        "address": "pool1",
        "base_token_price_usd": "1.25",
        "market_cap_usd": null,
        "volume_usd": {"h24": "1000.5"},
        "price_change_percentage": {"h24": "-3.2"}
      },
      "relationships": {"base_token": {"data": {"id": "solana_tokenA", "type": "token"}}}
    }
  ],
  "included": [
    {"id": "solana_tokenA", "type": "token", "attributes": {"address": "tokenA", "symbol": "AAA", "image_url": "https://img/a.png"}}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(&config.MarketConfig{BaseURL: srv.URL + "/", Network: "solana"}, srv.Client())
}

func TestClient_TrendingPools(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/networks/solana/trending_pools", r.URL.Path)
		assert.Equal(t, "base_token", r.URL.Query().Get("include"))
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(trendingFixture))
	})

	resp, err := c.TrendingPools(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)

	pool := resp.Data[0]
	assert.Equal(t, "solana_tokenA", pool.BaseTokenID())
	assert.Equal(t, 1.25, pool.Attributes.BaseTokenPriceUSD.Float64())
	assert.Equal(t, 1000.5, pool.Attributes.VolumeUSD.H24.Float64())
	assert.Equal(t, -3.2, pool.Attributes.PriceChangePercentage.H24.Float64())
	assert.False(t, pool.Attributes.MarketCapUSD.Valid)
	assert.Equal(t, float64(0), pool.Attributes.MarketCapUSD.Float64())

	token, ok := resp.FindIncludedToken("solana_tokenA")
	require.True(t, ok)
	assert.Equal(t, "AAA", token.Attributes.Symbol)

	_, ok = resp.FindIncludedToken("missing")
	assert.False(t, ok)
}

func TestClient_MultipleTokens(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/networks/solana/tokens/multi/tokenA,tokenB", r.URL.Path)
		assert.Equal(t, "top_pools", r.URL.Query().Get("include"))
		_, _ = w.Write([]byte(`{"data": [], "included": []}`))
	})

	resp, err := c.MultipleTokens(context.Background(), []string{"tokenA", "tokenB"})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
}

func TestClient_MultipleTokensNoAddresses(t *testing.T) {
	c := NewClient(&config.MarketConfig{BaseURL: "http://127.0.0.1:0", Network: "solana"})
	_, err := c.MultipleTokens(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoAddresses)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.TrendingPools(context.Background(), 1)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "trending_pools", statusErr.Endpoint)
}

func TestClient_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [`))
	})

	_, err := c.TrendingPools(context.Background(), 1)
	assert.Error(t, err)
}

func TestNumber_Lenient(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
		want  float64
	}{
		{`12.5`, true, 12.5},
		{`"12.5"`, true, 12.5},
		{`null`, false, 0},
		{`""`, false, 0},
		{`"abc"`, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &n))
			assert.Equal(t, tt.valid, n.Valid)
			assert.Equal(t, tt.want, n.Float64())
		})
	}
}

func TestMultiTokenResponse_FindTopPool(t *testing.T) {
	resp := &MultiTokenResponse{
		Included: []Pool{
			{ID: "x", Type: "dex", Relationships: PoolRelationships{BaseToken: &Relationship{Data: &ResourceIdentifier{ID: "solana_tokenA"}}}},
			{ID: "p1", Type: "pool", Relationships: PoolRelationships{BaseToken: &Relationship{Data: &ResourceIdentifier{ID: "solana_tokenA"}}}},
			{ID: "p2", Type: "pool", Relationships: PoolRelationships{BaseToken: &Relationship{Data: &ResourceIdentifier{ID: "solana_tokenA"}}}},
		},
	}

	pool, ok := resp.FindTopPool("solana_tokenA")
	require.True(t, ok)
	assert.Equal(t, "p1", pool.ID)

	_, ok = resp.FindTopPool("solana_tokenB")
	assert.False(t, ok)
}
