package domain

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/regalium/regalium-core/pkg/chains"
)

var (
	// ErrUnsupportedChain is returned for chain IDs outside the enumerated set.
	ErrUnsupportedChain = errors.New("unsupported chain")
	// ErrNotDeployed marks a feature as unavailable on the active chain.
	// It is a displayable state, not a failure.
	ErrNotDeployed = errors.New("contract not deployed on this chain")
	// ErrNoWallet is returned by writes when no wallet is connected.
	ErrNoWallet = errors.New("no wallet connected")
	// ErrNoBackend means no RPC endpoint is configured for the chain.
	ErrNoBackend = errors.New("no RPC backend configured for chain")
	// ErrWrongChain is returned when the wallet signs for a different chain
	// than the one the operation targets.
	ErrWrongChain = errors.New("wallet is connected to a different chain")
	// ErrMissingWalletAddress is returned by on-ramp URL builders, which
	// always deliver to a wallet.
	ErrMissingWalletAddress = errors.New("wallet address is required")
	// ErrUnknownToken is returned for a symbol missing from the token list.
	ErrUnknownToken = errors.New("unknown token")
	// ErrNativeToken is returned when an ERC-20 read targets a native coin.
	ErrNativeToken = errors.New("native coin has no token contract")
)

// ChainContext is the wallet state injected into every operation. It is owned
// by the wallet-connection layer and only read here.
type ChainContext struct {
	ChainID chains.ID
	// Account is nil when no wallet is connected.
	Account *common.Address
}

// Connected reports whether a wallet address is available.
func (c ChainContext) Connected() bool {
	return c.Account != nil && *c.Account != (common.Address{})
}

// BalanceView is the project token balance for the connected account.
type BalanceView struct {
	Raw              *big.Int        `json:"raw,omitempty"`
	RawBalance       decimal.Decimal `json:"raw_balance"`
	FormattedBalance string          `json:"formatted_balance"`
	Symbol           string          `json:"symbol"`
	Decimals         uint8           `json:"decimals"`
	TokenAddress     *common.Address `json:"token_address,omitempty"`
	IsValidToken     bool            `json:"is_valid_token"`
}

// StakePosition is derived from vault state on every read and never stored.
// PendingReward grows between claims and drops back after a claim.
type StakePosition struct {
	Staked         *big.Int `json:"staked"`
	StakeTimestamp uint64   `json:"stake_timestamp"`
	PendingReward  *big.Int `json:"pending_reward"`
}

// StakingView is the vault state for the active chain and account.
type StakingView struct {
	StakedBalance       string          `json:"staked_balance"`
	RawStakedBalance    decimal.Decimal `json:"raw_staked_balance"`
	EarnedRewards       string          `json:"earned_rewards"`
	RawEarnedRewards    decimal.Decimal `json:"raw_earned_rewards"`
	StakeTimestamp      uint64          `json:"stake_timestamp"`
	RewardRatePerSecond *big.Int        `json:"reward_rate_per_second,omitempty"`
	APY                 decimal.Decimal `json:"apy"`
	TokenAddress        *common.Address `json:"token_address,omitempty"`
	IsValidContract     bool            `json:"is_valid_contract"`
	Position            StakePosition   `json:"position"`
}

// PendingTx is the handle returned by a submitted write. Confirmation is the
// caller's concern.
type PendingTx struct {
	Hash    common.Hash    `json:"hash"`
	ChainID chains.ID      `json:"chain_id"`
	To      common.Address `json:"to"`
	Method  string         `json:"method"`
}

// DashboardView combines real reads with clearly labelled placeholder data.
type DashboardView struct {
	ChainID     chains.ID       `json:"chain_id"`
	ChainName   string          `json:"chain_name"`
	Account     *common.Address `json:"account,omitempty"`
	ExplorerURL string          `json:"explorer_url,omitempty"`
	Connected   bool            `json:"connected"`
	NotDeployed bool            `json:"not_deployed"`
	Balance     BalanceView     `json:"balance"`
	Staking     StakingView     `json:"staking"`
	Demo        *DemoData       `json:"demo,omitempty"`
	// Errors lists reads that failed; the matching section holds zero values.
	Errors []string `json:"errors,omitempty"`
}

// DemoData holds placeholder values that do not come from any contract.
type DemoData struct {
	Placeholder bool                `json:"placeholder"`
	Notice      string              `json:"notice"`
	Staking     DemoStaking         `json:"staking"`
	Activity    []DemoActivity      `json:"activity"`
	USDRate     decimal.Decimal     `json:"usd_rate"`
	RateSource  string              `json:"rate_source"`
	USDValue    string              `json:"usd_value"`
	Portfolio   []PortfolioFraction `json:"portfolio"`
}

// DemoStaking is a placeholder staking summary.
type DemoStaking struct {
	StakedAmount   string `json:"staked_amount"`
	PendingRewards string `json:"pending_rewards"`
	TotalEarned    string `json:"total_earned"`
}

// DemoActivity is a placeholder activity feed entry.
type DemoActivity struct {
	Type       string `json:"type"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	IsPositive bool   `json:"is_positive"`
}

// PortfolioFraction is one slice of the available/staked split.
type PortfolioFraction struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Amount  string `json:"amount"`
}
