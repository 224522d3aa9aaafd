//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"icms/internal/domain/user"
	"icms/internal/handler/middleware"
	"icms/internal/pkg/config"
	"icms/internal/pkg/cookie"
	"icms/internal/pkg/jwt"
	"icms/internal/usecase"
	"icms/tests/common/authtest"
	"icms/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newAuthRouter(t *testing.T) (*gin.Engine, *authtest.JWTHelper) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.JWTConfig{Secret: testSecret, Duration: "1h"}
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(testSecret, 0)))

	echoIdentity := func(c *gin.Context) {
		id, ok := middleware.GetUserID(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user_id": ""})
			return
		}
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "role": string(role)})
	}

	r := gin.New()
	r.GET("/required", auth.RequireAuth(), echoIdentity)
	r.GET("/optional", auth.OptionalAuth(), echoIdentity)
	r.GET("/technician", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleTechnician), echoIdentity)
	return r, authtest.NewJWTHelper(cfg)
}

func TestRequireAuth(t *testing.T) {
	router, tokens := newAuthRouter(t)
	userID := uuid.New()

	t.Run("valid bearer token sets identity", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/required", nil,
			tokens.GenerateToken(t, userID, user.RoleAccountant))

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, "accountant", body["role"])
	})

	t.Run("access token cookie", func(t *testing.T) {
		token := tokens.GenerateToken(t, userID, user.RoleTechnician)
		rec := httptest.PerformRequestWithCookies(t, router, http.MethodGet, "/required", nil,
			[]*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: token}})

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, "technician", body["role"])
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/required", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("expired token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/required", nil,
			tokens.CreateExpiredToken(t, userID, user.RoleAdmin))
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := jwt.NewService("another-secret", 0).GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/required", nil, other)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func TestOptionalAuth(t *testing.T) {
	router, tokens := newAuthRouter(t)

	t.Run("anonymous request passes", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/optional", nil, "")

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Empty(t, body["user_id"])
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/optional", nil, "not-a-jwt")

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Empty(t, body["user_id"])
	})

	t.Run("valid token identifies caller", func(t *testing.T) {
		userID := uuid.New()
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/optional", nil,
			tokens.GenerateToken(t, userID, user.RoleClient))

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["user_id"])
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	router, tokens := newAuthRouter(t)

	tests := []struct {
		role       user.Role
		expectCode int
	}{
		{role: user.RoleClient, expectCode: http.StatusForbidden},
		{role: user.RoleTechnician, expectCode: http.StatusOK},
		{role: user.RoleAccountant, expectCode: http.StatusOK},
		{role: user.RoleAdmin, expectCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			rec := httptest.PerformRequest(t, router, http.MethodGet, "/technician", nil,
				tokens.GenerateToken(t, uuid.New(), tt.role))
			if tt.expectCode == http.StatusOK {
				httptest.AssertSuccessResponse(t, rec, tt.expectCode, nil)
				return
			}
			httptest.AssertErrorResponse(t, rec, tt.expectCode, "Insufficient permissions")
		})
	}
}
