// Package scan turns the first decoded QR payload of a scanner session into a
// single navigation to that pass.
package scan

import (
	"log/slog"
	"net/url"
	"sync"

	"loyalty-console/internal/domain/pass"
	"loyalty-console/internal/pkg/errs"
)

var (
	ErrAlreadyHandedOff = errs.New("scan already handed off")
	ErrEmptyDecode      = errs.Kind(pass.ErrEmptySerial, "decoded text is empty")
)

// Scanner is the decoding capability owned by one scan session (the camera).
type Scanner interface {
	Release() error
}

type Navigator interface {
	Navigate(path string) error
}

// PassPath returns the pass screen route for serialNumber. The text is used
// verbatim apart from path escaping.
func PassPath(serialNumber string) string {
	return "/pass/" + url.PathEscape(serialNumber)
}

// Handoff must not be copied after first use.
type Handoff struct {
	scanner   Scanner
	navigator Navigator
	logger    *slog.Logger

	releaseOnce sync.Once
	releaseErr  error

	mu        sync.Mutex
	handedOff bool
}

func NewHandoff(scanner Scanner, navigator Navigator, logger *slog.Logger) *Handoff {
	return &Handoff{
		scanner:   scanner,
		navigator: navigator,
		logger:    logger,
	}
}

// Decoded handles one decode event. Only the first non-empty text navigates;
// the scanner is released before the navigation is issued.
func (h *Handoff) Decoded(text string) error {
	serial, err := pass.NewSerialNumber(text)
	if err != nil {
		h.logger.Debug("Ignoring empty decode")
		return ErrEmptyDecode
	}

	h.mu.Lock()
	if h.handedOff {
		h.mu.Unlock()
		return ErrAlreadyHandedOff
	}
	h.handedOff = true
	h.mu.Unlock()

	if err := h.release(); err != nil {
		// the camera is gone either way; keep going to the pass
		h.logger.Warn("Failed to release scanner", "error", err.Error())
	}

	path := PassPath(serial.String())
	if err := h.navigator.Navigate(path); err != nil {
		return errs.Wrapf(err, "navigate to %s", path)
	}
	h.logger.Info("Scan handed off", "serial_number", serial.String())
	return nil
}

func (h *Handoff) HandedOff() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.handedOff
}

// Close tears the session down. The scanner is released at most once across
// Close and Decoded.
func (h *Handoff) Close() error {
	return h.release()
}

func (h *Handoff) release() error {
	h.releaseOnce.Do(func() {
		h.releaseErr = h.scanner.Release()
	})
	return h.releaseErr
}
