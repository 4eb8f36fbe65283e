package usecase

import (
	"context"

	"loyalty-console/internal/pkg/errs"
)

var ErrNotAuthenticated = errs.Kind(errs.ErrAuth, "not authenticated")

// StaticToken provides a token already resolved for the request.
type StaticToken string

func (t StaticToken) Token(_ context.Context) (string, error) {
	if t == "" {
		return "", ErrNotAuthenticated
	}
	return string(t), nil
}

type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// ResolveToken fetches a token, classifying every failure as an auth error.
func ResolveToken(ctx context.Context, tokens TokenProvider) (string, error) {
	if tokens == nil {
		return "", ErrNotAuthenticated
	}
	token, err := tokens.Token(ctx)
	if err != nil {
		return "", errs.Classify(err, ErrNotAuthenticated)
	}
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}
