//go:build unit || e2e

package builder

import (
	"time"

	"loyalty-console/internal/domain/pass"
)

type PassBuilder struct {
	SerialNumber    string
	AlreadyRedeemed int
	TotalPoints     int
	CurrentPoints   int
	PassHolderName  string
	LastUsedAt      *time.Time
}

func NewPassBuilder() *PassBuilder {
	return &PassBuilder{
		SerialNumber:    "XYZ",
		AlreadyRedeemed: 2,
		TotalPoints:     100,
		CurrentPoints:   40,
		PassHolderName:  "A. Customer",
	}
}

func (b *PassBuilder) With(mutate func(*PassBuilder)) *PassBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *PassBuilder) WithSerialNumber(serial string) *PassBuilder {
	b.SerialNumber = serial
	return b
}

func (b *PassBuilder) WithCurrentPoints(points int) *PassBuilder {
	b.CurrentPoints = points
	return b
}

func (b *PassBuilder) WithLastUsedAt(t time.Time) *PassBuilder {
	b.LastUsedAt = &t
	return b
}

func (b *PassBuilder) BuildDomain() *pass.LoyaltyPass {
	return &pass.LoyaltyPass{
		SerialNumber:    b.SerialNumber,
		AlreadyRedeemed: b.AlreadyRedeemed,
		TotalPoints:     b.TotalPoints,
		CurrentPoints:   b.CurrentPoints,
		PassHolderName:  b.PassHolderName,
		LastUsedAt:      b.LastUsedAt,
	}
}

// BuildJSON returns the backend wire representation.
func (b *PassBuilder) BuildJSON() map[string]any {
	m := map[string]any{
		"serialNumber":    b.SerialNumber,
		"alreadyRedeemed": b.AlreadyRedeemed,
		"totalPoints":     b.TotalPoints,
		"currentPoints":   b.CurrentPoints,
		"passHolderName":  b.PassHolderName,
	}
	if b.LastUsedAt != nil {
		m["lastUsedAt"] = b.LastUsedAt.Format(time.RFC3339)
	}
	return m
}
