package httperr

import (
	"errors"
	"net/http"

	"loyalty-console/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, msg string) Response {
	resp := Response{Status: status}
	resp.Error.Message = msg
	return resp
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, msg)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusFor maps an error kind to the HTTP status and public message.
func StatusFor(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, errs.ErrAuth):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, errs.ErrPassNotFound):
		return http.StatusNotFound, "Pass not found"
	case errors.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity, "Invalid input"
	case errors.Is(err, errs.ErrRejected):
		return http.StatusBadRequest, "Request rejected"
	case errors.Is(err, errs.ErrNetwork):
		return http.StatusBadGateway, "Backend unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// AbortWithKind aborts with the status and message derived from err.
func AbortWithKind(c *gin.Context, err error) {
	status, msg := StatusFor(err)
	AbortWithError(c, status, err, msg, nil)
}
