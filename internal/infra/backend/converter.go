package backend

import (
	"loyalty-console/internal/domain/pass"

	"github.com/jinzhu/copier"
)

func toDomainPass(res loyaltyPassResponse) (*pass.LoyaltyPass, error) {
	var p pass.LoyaltyPass
	if err := copier.CopyWithOption(&p, &res, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return &p, nil
}
