package request

import "encoding/json"

// AddPointsRequest keeps the amount as typed; it is validated by the pass
// screen so malformed input raises the same failure notice as a rejection.
type AddPointsRequest struct {
	Screen string      `form:"screen" json:"screen"`
	Points json.Number `form:"points" json:"points"`
}

// RedeemBonusRequest names the pass screen the bonus was requested from.
type RedeemBonusRequest struct {
	Screen string `form:"screen" json:"screen"`
}
