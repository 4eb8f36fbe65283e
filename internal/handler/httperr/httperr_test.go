//go:build unit

package httperr_test

import (
	"errors"
	"net/http"
	"testing"

	"loyalty-console/internal/handler/httperr"
	"loyalty-console/internal/infra"
	"loyalty-console/internal/pkg/errs"
	"loyalty-console/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "nil", err: nil, status: http.StatusOK},
		{name: "missing token", err: usecase.ErrNotAuthenticated, status: http.StatusUnauthorized},
		{name: "backend 401", err: infra.ClientError{Kind: infra.KindAuth}, status: http.StatusUnauthorized},
		{name: "not found", err: errs.Wrap(infra.ClientError{Kind: infra.KindNotFound}, "fetch pass"), status: http.StatusNotFound},
		{name: "local validation", err: errs.Kind(errs.ErrValidation, "bad points"), status: http.StatusUnprocessableEntity},
		{name: "backend rejection", err: infra.ClientError{Kind: infra.KindRejected}, status: http.StatusBadRequest},
		{name: "network", err: infra.ClientError{Kind: infra.KindNetwork}, status: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := httperr.StatusFor(tc.err)
			assert.Equal(t, tc.status, status)
		})
	}
}
