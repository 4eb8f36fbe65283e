package infra

import (
	"errors"
	"log/slog"

	"loyalty-console/internal/pkg/errs"
)

type ClientErrorKind string

// ClientError is a failed call to the loyalty backend. It matches the shared
// sentinel for its kind under errors.Is.
type ClientError struct {
	Kind    ClientErrorKind
	Status  int    // 0 when no response was received
	Message string // message reported by the backend, if any
	msg     string
	err     error // wrapped low-level error
}

func (e ClientError) Error() string {
	s := string(e.Kind) + ": " + e.msg
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.err != nil {
		s += ": " + e.err.Error()
	}
	return s
}

// Detail is the message the backend attached to the failure.
func (e ClientError) Detail() string {
	return e.Message
}

func (e ClientError) Unwrap() error {
	return e.err
}

func (e ClientError) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

func WrapClientErr(slogger *slog.Logger, kind ClientErrorKind, status int, msg, message string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
		slog.Int("status", status),
	}
	if message != "" {
		logArgs = append(logArgs, slog.String("backend_message", message))
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	slogger.Warn("Backend error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return ClientError{Kind: kind, Status: status, Message: message, msg: msg, err: err}
}

func IsKind(err error, kind ClientErrorKind) bool {
	var e ClientError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Backend error kinds
const (
	KindAuth     ClientErrorKind = "AUTH"
	KindNotFound ClientErrorKind = "NOT_FOUND"
	KindRejected ClientErrorKind = "REJECTED"
	KindNetwork  ClientErrorKind = "NETWORK"
)

func (k ClientErrorKind) sentinel() error {
	switch k {
	case KindAuth:
		return errs.ErrAuth
	case KindNotFound:
		return errs.ErrPassNotFound
	case KindRejected:
		return errs.ErrRejected
	case KindNetwork:
		return errs.ErrNetwork
	default:
		return nil
	}
}
