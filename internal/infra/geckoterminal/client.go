package geckoterminal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"orbittrack/internal/config"
	"orbittrack/internal/observability/metrics"
	"orbittrack/pkg/logger"

	"go.uber.org/zap"
)

const (
	endpointTrendingPools = "trending_pools"
	endpointMultiTokens   = "tokens_multi"
)

var ErrNoAddresses = errors.New("geckoterminal: at least one token address is required")

// StatusError 上游返回非 2xx 状态码
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geckoterminal: %s request failed with status %d", e.Endpoint, e.StatusCode)
}

// Client GeckoTerminal REST 客户端
//
// 不做重试，也不设置超时，超时只依赖调用方的 ctx 和 transport 默认值。
type Client struct {
	httpClient *http.Client
	baseURL    string
	network    string
}

func NewClient(cfg *config.MarketConfig) *Client {
	return NewClientWithHTTP(cfg, &http.Client{})
}

func NewClientWithHTTP(cfg *config.MarketConfig, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		network:    cfg.Network,
	}
}

// TrendingPools 获取指定页的热门池子，附带 base token
func (c *Client) TrendingPools(ctx context.Context, page int) (*TrendingPoolsResponse, error) {
	path := fmt.Sprintf("/networks/%s/trending_pools", url.PathEscape(c.network))
	query := url.Values{}
	query.Set("include", "base_token")
	query.Set("page", strconv.Itoa(page))

	var resp TrendingPoolsResponse
	if err := c.get(ctx, endpointTrendingPools, path, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MultipleTokens 批量查询代币信息，附带 top pools
func (c *Client) MultipleTokens(ctx context.Context, addresses []string) (*MultiTokenResponse, error) {
	if len(addresses) == 0 {
		return nil, ErrNoAddresses
	}

	escaped := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		escaped = append(escaped, url.PathEscape(addr))
	}
	path := fmt.Sprintf("/networks/%s/tokens/multi/%s", url.PathEscape(c.network), strings.Join(escaped, ","))
	query := url.Values{}
	query.Set("include", "top_pools")

	var resp MultiTokenResponse
	if err := c.get(ctx, endpointMultiTokens, path, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.Success
		if err != nil {
			outcome = metrics.Error
		}
		metrics.RecordUpstreamRequest(endpoint, outcome, time.Since(start))
	}()

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("geckoterminal: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("Market data request", zap.String("endpoint", endpoint), zap.String("url", reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geckoterminal: %s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("geckoterminal: failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
