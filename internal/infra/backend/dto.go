package backend

import "time"

type loyaltyPassResponse struct {
	SerialNumber    string     `json:"serialNumber"`
	AlreadyRedeemed int        `json:"alreadyRedeemed"`
	TotalPoints     int        `json:"totalPoints"`
	CurrentPoints   int        `json:"currentPoints"`
	PassHolderName  string     `json:"passHolderName"`
	LastUsedAt      *time.Time `json:"lastUsedAt,omitempty"`
}

type addPointsRequest struct {
	AddPoints int `json:"addPoints"`
}

type redeemBonusRequest struct{}

type errorResponse struct {
	Message string `json:"message"`
}
