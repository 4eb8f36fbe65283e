package usecase

import (
	"time"

	"loyalty-console/internal/pkg/errs"
	"loyalty-console/internal/pkg/jwt"
)

var ErrTokenValidation = errs.Kind(errs.ErrAuth, "token validation failed")

// Employee is the signed-in business user, as asserted by the identity provider.
type Employee struct {
	ID        string
	SessionID string
	Name      string
	Email     string
	ExpiresAt time.Time
}

func (e *Employee) DisplayName() string {
	switch {
	case e.Name != "":
		return e.Name
	case e.Email != "":
		return e.Email
	default:
		return e.ID
	}
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (*Employee, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (*Employee, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, errs.Classify(err, ErrTokenValidation)
	}

	employee := &Employee{
		ID:        claims.Subject,
		SessionID: claims.SessionID,
		Name:      claims.Name,
		Email:     claims.Email,
	}
	if claims.ExpiresAt != nil {
		employee.ExpiresAt = claims.ExpiresAt.Time
	}
	return employee, nil
}
