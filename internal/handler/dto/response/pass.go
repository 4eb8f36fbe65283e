package response

import (
	"time"

	"loyalty-console/internal/domain/pass"
	"loyalty-console/internal/usecase/passview"

	"github.com/jinzhu/copier"
)

type PassResponse struct {
	SerialNumber    string     `json:"serialNumber"`
	PassHolderName  string     `json:"passHolderName"`
	TotalPoints     int        `json:"totalPoints"`
	CurrentPoints   int        `json:"currentPoints"`
	AlreadyRedeemed int        `json:"alreadyRedeemed"`
	LastUsedAt      *time.Time `json:"lastUsedAt"`
}

func FromPass(p *pass.LoyaltyPass) *PassResponse {
	if p == nil {
		return nil
	}
	var res PassResponse
	if err := copier.CopyWithOption(&res, p, copier.Option{DeepCopy: true}); err != nil {
		// both sides are plain structs with matching fields
		panic("response: copy pass: " + err.Error())
	}
	return &res
}

type NoticeResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// PassScreenResponse is the JSON form of the pass screen.
type PassScreenResponse struct {
	ScreenID     string          `json:"screenId"`
	State        string          `json:"state"`
	SerialNumber string          `json:"serialNumber"`
	Pass         *PassResponse   `json:"pass,omitempty"`
	Message      string          `json:"message,omitempty"`
	Notice       *NoticeResponse `json:"notice,omitempty"`
}

func FromSnapshot(screenID string, snap passview.Snapshot) *PassScreenResponse {
	res := &PassScreenResponse{
		ScreenID:     screenID,
		State:        snap.State.String(),
		SerialNumber: snap.SerialNumber,
		Pass:         FromPass(snap.Pass),
		Message:      snap.Message,
	}
	if snap.Notice != nil {
		res.Notice = &NoticeResponse{Kind: string(snap.Notice.Kind), Message: snap.Notice.Message}
	}
	return res
}

// PassPage is the template data of the pass screen.
type PassPage struct {
	ScreenID     string
	Pass         *PassResponse
	ErrorMessage string
	PointsPath   string
	BonusPath    string
}
