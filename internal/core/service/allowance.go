package service

import (
	"math/big"

	"github.com/regalium/regalium-core/pkg/units"
)

// NeedsApproval decides whether a stake of amount must be preceded by an
// approve transaction. It errs towards requiring approval: an absent
// allowance or an unparseable amount both report true.
func NeedsApproval(amount string, allowance *big.Int, decimals uint8) bool {
	if allowance == nil {
		return true
	}
	want, err := units.ParseUnits(amount, int32(decimals))
	if err != nil {
		return true
	}
	return allowance.Cmp(want) < 0
}
