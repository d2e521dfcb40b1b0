//go:build unit

package middleware_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"lessonbook/internal/domain/user"
	"lessonbook/internal/handler/middleware"
	"lessonbook/internal/pkg/config"
	"lessonbook/internal/pkg/cookie"
	"lessonbook/internal/pkg/jwt"
	"lessonbook/internal/usecase"
	"lessonbook/tests/common/authtest"
	"lessonbook/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jwtCfg = config.JWTConfig{Secret: "test-secret", Duration: "24h"}

func newAuthRouter(t *testing.T) (*gin.Engine, *middleware.AuthMiddleware) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	duration, err := time.ParseDuration(jwtCfg.Duration)
	require.NoError(t, err)
	validator := usecase.NewTokenValidator(jwt.NewService(jwtCfg.Secret, duration))
	authMiddleware := middleware.NewAuthMiddleware(validator)

	router := gin.New()
	router.GET("/me", authMiddleware.RequireAuth(), func(c *gin.Context) {
		userID, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "role": role.String()})
	})
	router.GET("/teacher-only", authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router, authMiddleware
}

func TestRequireAuth(t *testing.T) {
	router, _ := newAuthRouter(t)
	helper := authtest.NewJWTHelper(jwtCfg)
	userID := uuid.New()

	t.Run("bearer header is accepted", func(t *testing.T) {
		token := helper.GenerateToken(t, userID, user.RoleStudent)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, "student", body["role"])
	})

	t.Run("access token cookie is accepted", func(t *testing.T) {
		token := helper.GenerateToken(t, userID, user.RoleTeacher)
		cookies := []*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: token}}
		rec := httptest.PerformRequestWithCookies(t, router, http.MethodGet, "/me", nil, cookies, "")

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, "teacher", body["role"])
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		cookieToken := helper.GenerateToken(t, userID, user.RoleTeacher)
		headerToken := helper.GenerateToken(t, uuid.New(), user.RoleStudent)
		cookies := []*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: cookieToken}}
		rec := httptest.PerformRequestWithCookies(t, router, http.MethodGet, "/me", nil, cookies, headerToken)

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["user_id"])
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := helper.CreateExpiredToken(t, userID, user.RoleStudent)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := authtest.NewJWTHelper(config.JWTConfig{Secret: "other-secret", Duration: "24h"})
		token := other.GenerateToken(t, userID, user.RoleStudent)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	router, _ := newAuthRouter(t)
	helper := authtest.NewJWTHelper(jwtCfg)

	t.Run("matching role passes", func(t *testing.T) {
		token := helper.GenerateToken(t, uuid.New(), user.RoleTeacher)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/teacher-only", nil, token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("other role is rejected", func(t *testing.T) {
		token := helper.GenerateToken(t, uuid.New(), user.RoleStudent)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/teacher-only", nil, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, authMiddleware := newAuthRouter(t)

	// RequireRole without RequireAuth in front is a wiring bug; it must not
	// silently grant access.
	router := gin.New()
	router.GET("/broken", authMiddleware.RequireRole(user.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := nethttptest.NewRecorder()
	req := nethttptest.NewRequest(http.MethodGet, "/broken", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
