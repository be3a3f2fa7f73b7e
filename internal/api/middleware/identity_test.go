package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callerKeyFor(t *testing.T, header *string) *string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got *string
	r := gin.New()
	r.Use(CallerIdentity())
	r.GET("/", func(c *gin.Context) {
		got = GetCallerKey(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != nil {
		req.Header.Set(HeaderPublicKey, *header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	return got
}

func TestCallerIdentity(t *testing.T) {
	key := "wallet-1"
	got := callerKeyFor(t, &key)
	require.NotNil(t, got)
	assert.Equal(t, "wallet-1", *got)

	assert.Nil(t, callerKeyFor(t, nil))

	empty := ""
	assert.Nil(t, callerKeyFor(t, &empty))

	blank := "   "
	assert.Nil(t, callerKeyFor(t, &blank))
}

func TestRecoveryReturnsInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
