package pass

import (
	"strconv"
	"strings"

	"loyalty-console/internal/pkg/errs"
)

var (
	ErrPointsNotNumeric = errs.Kind(errs.ErrValidation, "points must be a whole number")
	ErrNegativePoints   = errs.Kind(errs.ErrValidation, "points must not be negative")
	ErrEmptySerial      = errs.Kind(errs.ErrValidation, "serial number is required")
)

// Points is an amount to add to a pass. Zero is allowed; the upper bound is
// the backend's call.
type Points struct {
	value int
}

func NewPoints(n int) (Points, error) {
	if n < 0 {
		return Points{}, ErrNegativePoints
	}
	return Points{value: n}, nil
}

func ParsePoints(s string) (Points, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Points{}, ErrPointsNotNumeric
	}
	return NewPoints(n)
}

func (p Points) Value() int {
	return p.value
}

// SerialNumber is taken verbatim; only emptiness is rejected.
type SerialNumber string

func NewSerialNumber(s string) (SerialNumber, error) {
	if s == "" {
		return "", ErrEmptySerial
	}
	return SerialNumber(s), nil
}

func (s SerialNumber) String() string {
	return string(s)
}
