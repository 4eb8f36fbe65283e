package pass

import "time"

// LoyaltyPass is the backend's view of one issued loyalty pass. The console
// only displays it; currentPoints <= totalPoints and alreadyRedeemed >= 0 are
// the backend's invariants and are not checked here.
type LoyaltyPass struct {
	SerialNumber    string
	AlreadyRedeemed int
	TotalPoints     int
	CurrentPoints   int
	PassHolderName  string
	LastUsedAt      *time.Time
}

const (
	WalletPassFilename    = "pass.pkpass"
	WalletPassContentType = "application/vnd.apple.pkpass"
)

// WalletPass is an installable mobile pass produced by the backend. Data is
// passed through unmodified.
type WalletPass struct {
	Filename    string
	ContentType string
	Data        []byte
}

func NewWalletPass(contentType string, data []byte) *WalletPass {
	if contentType == "" {
		contentType = WalletPassContentType
	}
	return &WalletPass{
		Filename:    WalletPassFilename,
		ContentType: contentType,
		Data:        data,
	}
}
