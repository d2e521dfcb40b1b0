//go:build unit

package middleware_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"lessonbook/internal/handler/middleware"
	"lessonbook/internal/pkg/config"
	"lessonbook/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := config.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	router := gin.New()
	router.Use(middleware.NewCORSMiddleware(cfg))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestCORSMiddleware(t *testing.T) {
	router := newCORSRouter()

	t.Run("preflight from an allowed origin", func(t *testing.T) {
		rec := nethttptest.NewRecorder()
		req := nethttptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		httptest.AssertHeaders(t, rec, map[string]string{
			"Access-Control-Allow-Origin":      "http://localhost:3000",
			"Access-Control-Allow-Credentials": "true",
		})
	})

	t.Run("simple request echoes the allowed origin", func(t *testing.T) {
		rec := nethttptest.NewRecorder()
		req := nethttptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		httptest.AssertHeaders(t, rec, map[string]string{
			"Access-Control-Allow-Origin": "http://localhost:3000",
		})
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		rec := nethttptest.NewRecorder()
		req := nethttptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		router.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
