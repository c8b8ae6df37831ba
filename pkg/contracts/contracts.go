package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ERC-20 methods consumed by the client
const (
	MethodBalanceOf = "balanceOf"
	MethodDecimals  = "decimals"
	MethodSymbol    = "symbol"
	MethodApprove   = "approve"
	MethodAllowance = "allowance"
)

// Staking vault methods
const (
	MethodStakedBalances      = "stakedBalances"
	MethodStakeTimestamps     = "stakeTimestamps"
	MethodCalculateReward     = "calculateReward"
	MethodRewardRatePerSecond = "rewardRatePerSecond"
	MethodToken               = "token"
	MethodStake               = "stake"
	MethodUnstake             = "unstake"
	MethodClaimReward         = "claimReward"
)

// ERC20ABIJSON is the subset of EIP-20 used here.
const ERC20ABIJSON = `[
	{"name":"balanceOf","type":"function","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],
	 "outputs":[{"name":"balance","type":"uint256"}]},
	{"name":"decimals","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"name":"symbol","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"name":"approve","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"name":"allowance","type":"function","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]}
]`

// StakingABIJSON is the deployed vault ABI.
const StakingABIJSON = `[
	{"type":"constructor","stateMutability":"nonpayable",
	 "inputs":[{"name":"_token","type":"address","internalType":"address"}]},
	{"name":"stakedBalances","type":"function","stateMutability":"view",
	 "inputs":[{"name":"","type":"address","internalType":"address"}],
	 "outputs":[{"name":"","type":"uint256","internalType":"uint256"}]},
	{"name":"stakeTimestamps","type":"function","stateMutability":"view",
	 "inputs":[{"name":"","type":"address","internalType":"address"}],
	 "outputs":[{"name":"","type":"uint256","internalType":"uint256"}]},
	{"name":"calculateReward","type":"function","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address","internalType":"address"}],
	 "outputs":[{"name":"","type":"uint256","internalType":"uint256"}]},
	{"name":"rewardRatePerSecond","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint256","internalType":"uint256"}]},
	{"name":"token","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"address","internalType":"contract IERC20"}]},
	{"name":"stake","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"amount","type":"uint256","internalType":"uint256"}],"outputs":[]},
	{"name":"unstake","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"amount","type":"uint256","internalType":"uint256"}],"outputs":[]},
	{"name":"claimReward","type":"function","stateMutability":"nonpayable",
	 "inputs":[],"outputs":[]},
	{"type":"error","name":"SafeERC20FailedOperation",
	 "inputs":[{"name":"token","type":"address","internalType":"address"}]}
]`

// ParseERC20 returns the token ABI.
func ParseERC20() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(ERC20ABIJSON))
}

// ParseStaking returns the staking vault ABI.
func ParseStaking() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(StakingABIJSON))
}

// MustParse panics if the embedded ABI is malformed. Only for package-level vars.
func MustParse(parse func() (abi.ABI, error)) abi.ABI {
	parsed, err := parse()
	if err != nil {
		panic(err)
	}
	return parsed
}
