//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"loyalty-console/internal/domain/pass"
	"loyalty-console/internal/infra"
	"loyalty-console/internal/pkg/clock"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/pkg/errs"
	"loyalty-console/internal/pkg/jwt"
	"loyalty-console/internal/usecase"
	"loyalty-console/tests/common/authtest"
	usecasemock "loyalty-console/tests/mock/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestResolveToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success: static token", func(t *testing.T) {
		token, err := usecase.ResolveToken(ctx, usecase.StaticToken("tok"))
		require.NoError(t, err)
		assert.Equal(t, "tok", token)
	})

	t.Run("success: token func", func(t *testing.T) {
		token, err := usecase.ResolveToken(ctx, usecase.TokenFunc(func(context.Context) (string, error) {
			return "from-func", nil
		}))
		require.NoError(t, err)
		assert.Equal(t, "from-func", token)
	})

	failures := []struct {
		name   string
		tokens usecase.TokenProvider
	}{
		{name: "nil provider", tokens: nil},
		{name: "empty static token", tokens: usecase.StaticToken("")},
		{name: "provider returns empty", tokens: usecase.TokenFunc(func(context.Context) (string, error) { return "", nil })},
		{name: "provider fails", tokens: usecase.TokenFunc(func(context.Context) (string, error) {
			return "", errors.New("refresh failed")
		})},
	}
	for _, tc := range failures {
		t.Run("error: "+tc.name, func(t *testing.T) {
			_, err := usecase.ResolveToken(ctx, tc.tokens)
			assert.ErrorIs(t, err, usecase.ErrNotAuthenticated)
			assert.ErrorIs(t, err, errs.ErrAuth)
		})
	}
}

func TestPassIssuer_Issue(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success: download name is fixed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := usecasemock.NewMockPassAPI(ctrl)
		api.EXPECT().CreatePass(gomock.Any(), "tok").
			Return(&pass.WalletPass{Filename: "whatever.bin", ContentType: pass.WalletPassContentType, Data: []byte{1, 2}}, nil).Times(1)

		wp, err := usecase.NewPassIssuer(api, logger).Issue(ctx, usecase.StaticToken("tok"))
		require.NoError(t, err)
		assert.Equal(t, "pass.pkpass", wp.Filename)
		assert.Equal(t, []byte{1, 2}, wp.Data)
	})

	t.Run("error: backend failure keeps its kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := usecasemock.NewMockPassAPI(ctrl)
		api.EXPECT().CreatePass(gomock.Any(), "tok").
			Return(nil, infra.ClientError{Kind: infra.KindNetwork, Status: 500}).Times(1)

		_, err := usecase.NewPassIssuer(api, logger).Issue(ctx, usecase.StaticToken("tok"))
		assert.ErrorIs(t, err, errs.ErrNetwork)
	})

	t.Run("error: no token, no call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := usecasemock.NewMockPassAPI(ctrl)

		_, err := usecase.NewPassIssuer(api, logger).Issue(ctx, usecase.StaticToken(""))
		assert.ErrorIs(t, err, errs.ErrAuth)
	})
}

func TestTokenValidator(t *testing.T) {
	cfg := config.NewTestConfig().Auth
	helper := authtest.NewJWTHelper(cfg)
	validator := usecase.NewTokenValidator(jwt.NewService(cfg.TokenSecret, cfg.Issuer, cfg.Leeway, clock.NewRealClock()))

	t.Run("success: maps claims to the employee", func(t *testing.T) {
		token := helper.GenerateToken(t, "user_2abc", authtest.WithSessionID("sess_9"), authtest.WithName("Ada"))

		employee, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user_2abc", employee.ID)
		assert.Equal(t, "sess_9", employee.SessionID)
		assert.Equal(t, "Ada", employee.DisplayName())
		assert.False(t, employee.ExpiresAt.IsZero())
	})

	t.Run("error: expired token is an auth error", func(t *testing.T) {
		_, err := validator.ValidateToken(helper.CreateExpiredToken(t, "user_2abc"))
		assert.ErrorIs(t, err, usecase.ErrTokenValidation)
		assert.ErrorIs(t, err, errs.ErrAuth)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}

func TestEmployee_DisplayName(t *testing.T) {
	assert.Equal(t, "Ada", (&usecase.Employee{ID: "u", Name: "Ada", Email: "a@example.com"}).DisplayName())
	assert.Equal(t, "a@example.com", (&usecase.Employee{ID: "u", Email: "a@example.com"}).DisplayName())
	assert.Equal(t, "u", (&usecase.Employee{ID: "u"}).DisplayName())
}
