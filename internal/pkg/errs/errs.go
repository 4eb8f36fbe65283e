package errs

import (
	"errors"
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

// Kind declares a sentinel that also matches parent under errors.Is.
func Kind(parent error, msg string) error {
	return &kindError{msg: msg, parent: parent}
}

// Classify tags err with kind. errors.Is matches kind (and its parents) as well
// as anything in err's own chain.
func Classify(err error, kind error) error {
	if err == nil {
		return kind
	}
	return &classified{kind: kind, err: err}
}

type kindError struct {
	msg    string
	parent error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool {
	return e.parent != nil && (target == e.parent || errors.Is(e.parent, target))
}

type classified struct {
	kind error
	err  error
}

func (c *classified) Error() string { return c.kind.Error() + ": " + c.err.Error() }

func (c *classified) Unwrap() error { return c.err }

func (c *classified) Is(target error) bool {
	return target == c.kind || errors.Is(c.kind, target)
}

// Detail returns the first message attached by a Detail() string error in
// err's chain, or "".
func Detail(err error) string {
	var d interface{ Detail() string }
	if errors.As(err, &d) {
		return d.Detail()
	}
	return ""
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
