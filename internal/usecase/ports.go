package usecase

import (
	"context"

	"loyalty-console/internal/domain/pass"
)

//go:generate mockgen -source=ports.go -destination=../../tests/mock/usecase/mock_ports.go -package=usecasemock

// PassAPI is the loyalty backend as seen by the console. The token is passed
// on every call.
type PassAPI interface {
	FetchPass(ctx context.Context, serialNumber, token string) (*pass.LoyaltyPass, error)
	AddPoints(ctx context.Context, serialNumber string, points pass.Points, token string) error
	RedeemBonus(ctx context.Context, serialNumber, token string) error
	CreatePass(ctx context.Context, token string) (*pass.WalletPass, error)
}

// TokenProvider hands out the bearer token for the current employee.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
