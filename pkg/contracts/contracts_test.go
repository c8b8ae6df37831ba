package contracts

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseERC20_Selectors(t *testing.T) {
	parsed, err := ParseERC20()
	require.NoError(t, err)

	tests := map[string]string{
		MethodBalanceOf: "70a08231",
		MethodDecimals:  "313ce567",
		MethodSymbol:    "95d89b41",
		MethodApprove:   "095ea7b3",
		MethodAllowance: "dd62ed3e",
	}

	for name, selector := range tests {
		t.Run(name, func(t *testing.T) {
			m, ok := parsed.Methods[name]
			require.True(t, ok)
			assert.Equal(t, selector, hex.EncodeToString(m.ID))
		})
	}
}

func TestParseStaking(t *testing.T) {
	parsed, err := ParseStaking()
	require.NoError(t, err)

	for _, name := range []string{
		MethodStakedBalances, MethodStakeTimestamps, MethodCalculateReward,
		MethodRewardRatePerSecond, MethodToken, MethodStake, MethodUnstake, MethodClaimReward,
	} {
		_, ok := parsed.Methods[name]
		assert.True(t, ok, "missing method %s", name)
	}

	_, ok := parsed.Errors["SafeERC20FailedOperation"]
	assert.True(t, ok)
	assert.True(t, parsed.Methods[MethodRewardRatePerSecond].IsConstant())
	assert.False(t, parsed.Methods[MethodClaimReward].IsConstant())
}
