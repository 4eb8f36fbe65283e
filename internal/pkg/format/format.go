// Package format renders pass values for display.
package format

import (
	"fmt"
	"time"

	"loyalty-console/internal/pkg/config"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable stands in for a missing value.
const NotAvailable = "N/A"

type Formatter struct {
	printer  *message.Printer
	location *time.Location
	layout   string
}

func NewFormatter(cfg config.DisplayConfig) (*Formatter, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_LOCALE %q: %w", cfg.Locale, err)
	}
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", cfg.TimeZone, err)
	}
	layout := cfg.TimeFormat
	if layout == "" {
		layout = time.RFC3339
	}
	return &Formatter{
		printer:  message.NewPrinter(tag),
		location: loc,
		layout:   layout,
	}, nil
}

// Number groups digits the way the locale does, e.g. 1,234 in English.
func (f *Formatter) Number(n int) string {
	return f.printer.Sprintf("%d", n)
}

func (f *Formatter) Time(t time.Time) string {
	return t.In(f.location).Format(f.layout)
}

// LastUsed renders an optional timestamp, NotAvailable when absent.
func (f *Formatter) LastUsed(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}
	return f.Time(*t)
}
