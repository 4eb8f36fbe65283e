package usecase

import (
	"context"
	"log/slog"

	"loyalty-console/internal/domain/pass"
	"loyalty-console/internal/pkg/errs"
)

// PassIssuer asks the backend for a brand new wallet pass.
type PassIssuer struct {
	api    PassAPI
	logger *slog.Logger
}

func NewPassIssuer(api PassAPI, logger *slog.Logger) *PassIssuer {
	return &PassIssuer{api: api, logger: logger}
}

func (i *PassIssuer) Issue(ctx context.Context, tokens TokenProvider) (*pass.WalletPass, error) {
	token, err := ResolveToken(ctx, tokens)
	if err != nil {
		return nil, err
	}

	wp, err := i.api.CreatePass(ctx, token)
	if err != nil {
		i.logger.Warn("Error creating pass", "error", err.Error())
		return nil, errs.Wrap(err, "issue pass")
	}

	// the download name is fixed regardless of what the backend announces
	wp.Filename = pass.WalletPassFilename
	return wp, nil
}
