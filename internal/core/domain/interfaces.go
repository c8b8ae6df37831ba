package domain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/wallet"
)

// ContractClient defines the reads and writes against the token and the
// staking vault on a given chain.
type ContractClient interface {
	// ResolveToken returns the project token address on the chain, false when
	// the chain is unsupported or the token is not deployed there.
	ResolveToken(chainID chains.ID) (common.Address, bool)
	// ResolveStaking does the same for the staking vault.
	ResolveStaking(chainID chains.ID) (common.Address, bool)

	BalanceOf(ctx context.Context, chainID chains.ID, token, account common.Address) (*big.Int, error)
	Decimals(ctx context.Context, chainID chains.ID, token common.Address) (uint8, error)
	Symbol(ctx context.Context, chainID chains.ID, token common.Address) (string, error)
	Allowance(ctx context.Context, chainID chains.ID, token, owner, spender common.Address) (*big.Int, error)

	StakedBalance(ctx context.Context, chainID chains.ID, vault, account common.Address) (*big.Int, error)
	StakeTimestamp(ctx context.Context, chainID chains.ID, vault, account common.Address) (*big.Int, error)
	CalculateReward(ctx context.Context, chainID chains.ID, vault, account common.Address) (*big.Int, error)
	RewardRatePerSecond(ctx context.Context, chainID chains.ID, vault common.Address) (*big.Int, error)
	StakingToken(ctx context.Context, chainID chains.ID, vault common.Address) (common.Address, error)

	Approve(ctx context.Context, w wallet.Wallet, token, spender common.Address, amount *big.Int) (*PendingTx, error)
	Stake(ctx context.Context, w wallet.Wallet, vault common.Address, amount *big.Int) (*PendingTx, error)
	Unstake(ctx context.Context, w wallet.Wallet, vault common.Address, amount *big.Int) (*PendingTx, error)
	ClaimReward(ctx context.Context, w wallet.Wallet, vault common.Address) (*PendingTx, error)
}

// PlaceholderSource supplies dashboard values that are not read from chain.
type PlaceholderSource interface {
	Demo(ctx context.Context, chainID chains.ID, realBalance BalanceView) *DemoData
}
