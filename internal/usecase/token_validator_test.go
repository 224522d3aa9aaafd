//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"icms/internal/domain/user"
	"icms/internal/pkg/errs"
	"icms/internal/pkg/jwt"
	"icms/internal/usecase"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "validator-secret"

func signClaims(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenValidator_ValidateToken(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)
	validator := usecase.NewTokenValidator(svc)

	t.Run("valid token", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.GenerateToken(userID, user.RoleTechnician)
		require.NoError(t, err)

		gotID, gotRole, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, user.RoleTechnician, gotRole)
	})

	t.Run("unknown role", func(t *testing.T) {
		token := signClaims(t, jwt.Claims{
			UserID: uuid.New(),
			Role:   "viewer",
			RegisteredClaims: jwtlib.RegisteredClaims{
				ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, _, err := validator.ValidateToken(token)
		assert.True(t, errs.Is(err, user.ErrInvalidRole))
	})

	t.Run("no user id", func(t *testing.T) {
		token := signClaims(t, jwt.Claims{
			Role: string(user.RoleAdmin),
			RegisteredClaims: jwtlib.RegisteredClaims{
				ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, _, err := validator.ValidateToken(token)
		assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})
}
