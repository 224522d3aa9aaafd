package usecase

import (
	"icms/internal/domain/user"
	"icms/internal/pkg/errs"
	"icms/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator checks access tokens issued by the identity provider. This
// service never issues tokens itself.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, "", errs.Mark(errs.New("token carries no user id"), jwt.ErrInvalidToken)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Wrap(err, "token role")
	}

	return claims.UserID, role, nil
}
