package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"orbittrack/internal/api/dto"
	"orbittrack/internal/api/graph"
	"orbittrack/internal/api/handler"
	"orbittrack/internal/api/middleware"
	"orbittrack/internal/config"
	"orbittrack/internal/repository"
	"orbittrack/internal/service"
	"orbittrack/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type stubMarket struct{}

func (stubMarket) TrendingPools(ctx context.Context, page int) (*dto.PaginatedTrendingPools, error) {
	return &dto.PaginatedTrendingPools{
		Pools: []dto.TrendingPool{
			{Symbol: "AAA", Address: "addrA", Volume: 10},
			{Symbol: "BBB", Address: "addrB", Volume: 20},
		},
		HasNextPage: page < service.MaxTrendingPages,
		CurrentPage: page,
	}, nil
}

func (stubMarket) MultipleTokens(ctx context.Context, addresses []string) ([]dto.TrendingPool, error) {
	out := make([]dto.TrendingPool, 0, len(addresses))
	for _, addr := range addresses {
		out = append(out, dto.TrendingPool{Symbol: "TKN", Address: addr})
	}
	return out, nil
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type RouterTestSuite struct {
	suite.Suite
	engine *gin.Engine
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(s.T())
	store := service.NewStore(
		service.NewUserService(repository.NewUserRepository(db)),
		service.NewFavoriteService(repository.NewFavoriteRepository(db), nil),
	)
	schema, err := graph.NewSchema(stubMarket{})
	s.Require().NoError(err)

	s.engine = New(&config.AppConfig{Name: "orbittrack", Version: "test", Mode: gin.TestMode}, handler.NewGraphQLHandler(schema, store))
}

func (s *RouterTestSuite) post(query string, vars map[string]interface{}, publicKey string) (*httptest.ResponseRecorder, graphQLResponse) {
	body, err := json.Marshal(dto.GraphQLRequest{Query: query, Variables: vars})
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if publicKey != "" {
		req.Header.Set(middleware.HeaderPublicKey, publicKey)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp graphQLResponse
	if w.Code == http.StatusOK {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (s *RouterTestSuite) TestHealth() {
	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		s.Equal(http.StatusOK, w.Code)
		s.JSONEq(`{"status":"ok"}`, w.Body.String())
	}
}

func (s *RouterTestSuite) TestMetrics() {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterTestSuite) TestNotFound() {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestPostInvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{"variables": {}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestFavoriteFlow() {
	const wallet = "wallet-1"

	_, resp := s.post(`mutation($pk: String!) { createUserWithPublicKey(publicKey: $pk) { id publicKey } }`,
		map[string]interface{}{"pk": wallet}, "")
	s.Empty(resp.Errors)

	addDoc := `mutation($pk: String!, $addr: String!) { addFavoriteToken(publicKey: $pk, tokenAddress: $addr) { id tokenAddress } }`
	vars := map[string]interface{}{"pk": wallet, "addr": "addrB"}

	w, resp := s.post(addDoc, vars, "")
	s.Equal(http.StatusOK, w.Code)
	s.Empty(resp.Errors)

	// 重复收藏返回领域错误，HTTP 状态仍为 200
	w, resp = s.post(addDoc, vars, "")
	s.Equal(http.StatusOK, w.Code)
	s.Require().Len(resp.Errors, 1)
	s.Equal("token is already favorited", resp.Errors[0].Message)

	trendingDoc := `{ trendingPools(page: 1) { pools { address isFavorited } hasNextPage currentPage } }`

	_, resp = s.post(trendingDoc, nil, wallet)
	s.Require().Empty(resp.Errors)
	var data struct {
		TrendingPools dto.PaginatedTrendingPools `json:"trendingPools"`
	}
	s.Require().NoError(json.Unmarshal(resp.Data, &data))
	s.Require().Len(data.TrendingPools.Pools, 2)
	s.False(data.TrendingPools.Pools[0].IsFavorited)
	s.True(data.TrendingPools.Pools[1].IsFavorited)
	s.True(data.TrendingPools.HasNextPage)

	// 不带 x-public-key 视为匿名
	_, resp = s.post(trendingDoc, nil, "")
	s.Require().NoError(json.Unmarshal(resp.Data, &data))
	for _, p := range data.TrendingPools.Pools {
		s.False(p.IsFavorited)
	}

	var favs struct {
		FavoritesByUser []dto.FavoriteToken `json:"favoritesByUser"`
	}
	_, resp = s.post(`{ favoritesByUser(publicKey: "wallet-1") { tokenAddress createdAt } }`, nil, "")
	s.Require().NoError(json.Unmarshal(resp.Data, &favs))
	s.Require().Len(favs.FavoritesByUser, 1)
	s.Equal("addrB", favs.FavoritesByUser[0].TokenAddress)
	s.Regexp(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, favs.FavoritesByUser[0].CreatedAt)

	removeDoc := `mutation($pk: String!, $addr: String!) { removeFavoriteToken(publicKey: $pk, tokenAddress: $addr) }`
	_, resp = s.post(removeDoc, vars, "")
	s.JSONEq(`{"removeFavoriteToken": true}`, string(resp.Data))
	_, resp = s.post(removeDoc, vars, "")
	s.JSONEq(`{"removeFavoriteToken": false}`, string(resp.Data))
}

func (s *RouterTestSuite) TestGetQuery() {
	params := url.Values{}
	params.Set("query", `query($addrs: [String!]!) { getMultipleTokens(tokenAddresses: $addrs) { address isFavorited } }`)
	params.Set("variables", `{"addrs": ["addrA"]}`)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?"+params.Encode(), nil))
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"data": {"getMultipleTokens": [{"address": "addrA", "isFavorited": false}]}}`, w.Body.String())
}

func (s *RouterTestSuite) TestGetRejectsMutation() {
	params := url.Values{}
	params.Set("query", `mutation { createUserWithPublicKey(publicKey: "wallet-1") { id } }`)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?"+params.Encode(), nil))
	s.Equal(http.StatusMethodNotAllowed, w.Code)
}

func (s *RouterTestSuite) TestGetInvalidVariables() {
	params := url.Values{}
	params.Set("query", `{ trendingPools(page: 1) { currentPage } }`)
	params.Set("variables", `not-json`)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?"+params.Encode(), nil))
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
