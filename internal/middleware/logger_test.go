package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"invex/internal/middleware"
)

func requestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) {
		id, _ := c.Get("request_id")
		c.String(http.StatusOK, "%s", id)
	})
	return r
}

func TestRequestID_MintedWhenAbsent(t *testing.T) {
	r := requestIDRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, id)
	// context value and response header agree
	assert.Equal(t, id, w.Body.String())
}

func TestRequestID_InboundHeaderWins(t *testing.T) {
	r := requestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "caller-supplied-id", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "caller-supplied-id", w.Body.String())
}
