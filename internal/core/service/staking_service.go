package service

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/regalium/regalium-core/internal/core/domain"
	"github.com/regalium/regalium-core/internal/logging"
	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/tokens"
	"github.com/regalium/regalium-core/pkg/units"
	"github.com/regalium/regalium-core/pkg/wallet"
)

const zeroDisplay = "0.00"

// StakingService assembles token and vault views for a ChainContext and
// submits staking transactions. Every call reads fresh state.
type StakingService struct {
	client   domain.ContractClient
	registry *tokens.Registry
	demo     domain.PlaceholderSource
	log      zerolog.Logger
}

// NewStakingService wires the service. demo may be nil, in which case the
// dashboard carries no placeholder section.
func NewStakingService(client domain.ContractClient, registry *tokens.Registry, demo domain.PlaceholderSource) *StakingService {
	if registry == nil {
		registry = tokens.DefaultRegistry()
	}
	return &StakingService{
		client:   client,
		registry: registry,
		demo:     demo,
		log:      logging.Component("staking-service"),
	}
}

func (s *StakingService) decimals() int32 {
	return int32(s.registry.Project.Decimals)
}

// TokenBalance reads the project token balance. Without a wallet or a
// deployed token no call is made and the zero view is returned.
func (s *StakingService) TokenBalance(ctx context.Context, cc domain.ChainContext) (domain.BalanceView, error) {
	token, ok := s.client.ResolveToken(cc.ChainID)
	view := domain.BalanceView{
		RawBalance:       units.ToDecimal(nil, s.decimals()),
		FormattedBalance: zeroDisplay,
		Symbol:           s.registry.Project.Symbol,
		Decimals:         s.registry.Project.Decimals,
		IsValidToken:     ok,
	}
	if ok {
		view.TokenAddress = &token
	}

	if !ok || !cc.Connected() {
		s.log.Debug().
			Str("chain", cc.ChainID.String()).
			Bool("valid_token", ok).
			Bool("connected", cc.Connected()).
			Msg("balance read skipped")
		return view, nil
	}

	raw, err := s.client.BalanceOf(ctx, cc.ChainID, token, *cc.Account)
	if err != nil {
		return view, fmt.Errorf("failed to read balance: %w", err)
	}

	view.Raw = raw
	view.RawBalance = units.ToDecimal(raw, s.decimals())
	view.FormattedBalance = units.FormatBalance(raw, s.decimals())
	return view, nil
}

// TokenBalanceOf reads the balance of any ERC-20 token, named by a symbol
// from the registry's token list or by contract address. Decimals come from
// the registry; an address outside it, or a registry entry without decimals,
// is asked on-chain. Native coins have no token contract and are rejected.
func (s *StakingService) TokenBalanceOf(ctx context.Context, cc domain.ChainContext, token string) (domain.BalanceView, error) {
	view := domain.BalanceView{FormattedBalance: zeroDisplay}

	var (
		addr     common.Address
		ok       bool
		decimals uint8
	)
	if common.IsHexAddress(token) {
		addr = common.HexToAddress(token)
		ok = addr != (common.Address{})
	} else {
		desc, found := s.registry.Token(token)
		if !found {
			return view, fmt.Errorf("%w: %q", domain.ErrUnknownToken, token)
		}
		if desc.Native {
			return view, fmt.Errorf("%s: %w", desc.Symbol, domain.ErrNativeToken)
		}
		view.Symbol = desc.Symbol
		decimals = desc.Decimals
		addr, ok = tokens.GetTokenAddress(desc, cc.ChainID)
		ok = ok && chains.IsSupported(cc.ChainID)
	}

	view.IsValidToken = ok
	view.Decimals = decimals
	view.RawBalance = units.ToDecimal(nil, int32(decimals))
	if ok {
		view.TokenAddress = &addr
	}
	if !ok || !cc.Connected() {
		return view, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if view.Symbol == "" {
		g.Go(func() (err error) {
			view.Symbol, err = s.client.Symbol(gctx, cc.ChainID, addr)
			return err
		})
	}
	if decimals == 0 {
		g.Go(func() (err error) {
			view.Decimals, err = s.client.Decimals(gctx, cc.ChainID, addr)
			return err
		})
	}
	var raw *big.Int
	g.Go(func() (err error) {
		raw, err = s.client.BalanceOf(gctx, cc.ChainID, addr, *cc.Account)
		return err
	})
	if err := g.Wait(); err != nil {
		return view, fmt.Errorf("failed to read %s balance: %w", token, err)
	}

	d := int32(view.Decimals)
	view.Raw = raw
	view.RawBalance = units.ToDecimal(raw, d)
	view.FormattedBalance = units.FormatBalance(raw, d)
	return view, nil
}

// StakingData reads the vault. The reward rate and staked token are read
// whenever the vault is deployed; per-account values also need a wallet.
// The reads are independent and run concurrently.
func (s *StakingService) StakingData(ctx context.Context, cc domain.ChainContext) (domain.StakingView, error) {
	vault, ok := s.client.ResolveStaking(cc.ChainID)
	view := domain.StakingView{
		StakedBalance:    zeroDisplay,
		RawStakedBalance: units.ToDecimal(nil, s.decimals()),
		EarnedRewards:    zeroDisplay,
		RawEarnedRewards: units.ToDecimal(nil, s.decimals()),
		APY:              units.APY(nil),
		IsValidContract:  ok,
	}
	if !ok {
		s.log.Debug().Str("chain", cc.ChainID.String()).Msg("staking vault not deployed")
		return view, nil
	}

	var (
		rate, staked, reward, timestamp *big.Int
		token                           common.Address
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rate, err = s.client.RewardRatePerSecond(gctx, cc.ChainID, vault)
		return err
	})
	g.Go(func() (err error) {
		token, err = s.client.StakingToken(gctx, cc.ChainID, vault)
		return err
	})
	if cc.Connected() {
		account := *cc.Account
		g.Go(func() (err error) {
			staked, err = s.client.StakedBalance(gctx, cc.ChainID, vault, account)
			return err
		})
		g.Go(func() (err error) {
			reward, err = s.client.CalculateReward(gctx, cc.ChainID, vault, account)
			return err
		})
		g.Go(func() (err error) {
			timestamp, err = s.client.StakeTimestamp(gctx, cc.ChainID, vault, account)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return view, fmt.Errorf("failed to read staking data: %w", err)
	}

	view.RewardRatePerSecond = rate
	view.APY = units.APY(rate)
	view.TokenAddress = &token

	if cc.Connected() {
		view.StakedBalance = units.FormatAmount(staked, s.decimals())
		view.RawStakedBalance = units.ToDecimal(staked, s.decimals())
		view.EarnedRewards = units.FormatAmount(reward, s.decimals())
		view.RawEarnedRewards = units.ToDecimal(reward, s.decimals())
		if timestamp != nil && timestamp.IsUint64() {
			view.StakeTimestamp = timestamp.Uint64()
		}
		view.Position = domain.StakePosition{
			Staked:         staked,
			StakeTimestamp: view.StakeTimestamp,
			PendingReward:  reward,
		}
	}
	return view, nil
}

// Allowance reads how much of the project token the vault may spend for the
// connected account. It returns nil without a call when either contract is
// missing or no wallet is connected.
func (s *StakingService) Allowance(ctx context.Context, cc domain.ChainContext) (*big.Int, error) {
	token, tokenOK := s.client.ResolveToken(cc.ChainID)
	vault, vaultOK := s.client.ResolveStaking(cc.ChainID)
	if !tokenOK || !vaultOK || !cc.Connected() {
		return nil, nil
	}

	allowance, err := s.client.Allowance(ctx, cc.ChainID, token, *cc.Account, vault)
	if err != nil {
		return nil, fmt.Errorf("failed to read allowance: %w", err)
	}
	return allowance, nil
}

// NeedsApproval reads the current allowance and applies the approval gate.
// A failed read reports true together with the error.
func (s *StakingService) NeedsApproval(ctx context.Context, cc domain.ChainContext, amount string) (bool, error) {
	allowance, err := s.Allowance(ctx, cc)
	if err != nil {
		return true, err
	}
	return NeedsApproval(amount, allowance, s.registry.Project.Decimals), nil
}

// Approve lets the vault spend amount of the project token.
func (s *StakingService) Approve(ctx context.Context, w wallet.Wallet, amount string) (*domain.PendingTx, error) {
	if w == nil {
		return nil, domain.ErrNoWallet
	}
	token, ok := s.client.ResolveToken(w.ChainID())
	if !ok {
		return nil, fmt.Errorf("token: %w", domain.ErrNotDeployed)
	}
	vault, ok := s.client.ResolveStaking(w.ChainID())
	if !ok {
		return nil, fmt.Errorf("staking: %w", domain.ErrNotDeployed)
	}
	raw, err := units.ParseUnits(amount, s.decimals())
	if err != nil {
		return nil, err
	}
	return s.client.Approve(ctx, w, token, vault, raw)
}

// Stake deposits amount into the vault. Sequencing after Approve is the
// caller's job; use NeedsApproval first.
func (s *StakingService) Stake(ctx context.Context, w wallet.Wallet, amount string) (*domain.PendingTx, error) {
	vault, raw, err := s.vaultAndAmount(w, amount)
	if err != nil {
		return nil, err
	}
	return s.client.Stake(ctx, w, vault, raw)
}

// Unstake withdraws amount from the vault.
func (s *StakingService) Unstake(ctx context.Context, w wallet.Wallet, amount string) (*domain.PendingTx, error) {
	vault, raw, err := s.vaultAndAmount(w, amount)
	if err != nil {
		return nil, err
	}
	return s.client.Unstake(ctx, w, vault, raw)
}

// ClaimReward withdraws the pending reward.
func (s *StakingService) ClaimReward(ctx context.Context, w wallet.Wallet) (*domain.PendingTx, error) {
	if w == nil {
		return nil, domain.ErrNoWallet
	}
	vault, ok := s.client.ResolveStaking(w.ChainID())
	if !ok {
		return nil, fmt.Errorf("staking: %w", domain.ErrNotDeployed)
	}
	return s.client.ClaimReward(ctx, w, vault)
}

func (s *StakingService) vaultAndAmount(w wallet.Wallet, amount string) (common.Address, *big.Int, error) {
	if w == nil {
		return common.Address{}, nil, domain.ErrNoWallet
	}
	vault, ok := s.client.ResolveStaking(w.ChainID())
	if !ok {
		return common.Address{}, nil, fmt.Errorf("staking: %w", domain.ErrNotDeployed)
	}
	raw, err := units.ParseUnits(amount, s.decimals())
	if err != nil {
		return common.Address{}, nil, err
	}
	return vault, raw, nil
}

// Dashboard combines the balance and staking views for the active chain.
// Placeholder values, if any, are kept apart under Demo. A failed read
// leaves its section at the zero view and is listed in Errors; the returned
// error is reserved for context cancellation.
func (s *StakingService) Dashboard(ctx context.Context, cc domain.ChainContext) (domain.DashboardView, error) {
	view := domain.DashboardView{
		ChainID:   cc.ChainID,
		Account:   cc.Account,
		Connected: cc.Connected(),
	}
	if c, ok := chains.Lookup(cc.ChainID); ok {
		view.ChainName = c.Name
	} else {
		view.ChainName = cc.ChainID.String()
	}
	if cc.Connected() {
		view.ExplorerURL = chains.ExplorerAddressURL(cc.ChainID, cc.Account.Hex())
	}

	// The two reads are independent: a failed vault read must not hide the
	// balance or the not-deployed state, so failures are recorded, not returned.
	var (
		g                    errgroup.Group
		balanceErr, stakeErr error
	)
	g.Go(func() error {
		view.Balance, balanceErr = s.TokenBalance(ctx, cc)
		return nil
	})
	g.Go(func() error {
		view.Staking, stakeErr = s.StakingData(ctx, cc)
		return nil
	})
	_ = g.Wait()

	if balanceErr != nil {
		s.log.Warn().Err(balanceErr).Str("chain", cc.ChainID.String()).Msg("dashboard balance read failed")
		view.Errors = append(view.Errors, balanceErr.Error())
	}
	if stakeErr != nil {
		s.log.Warn().Err(stakeErr).Str("chain", cc.ChainID.String()).Msg("dashboard staking read failed")
		view.Errors = append(view.Errors, stakeErr.Error())
	}

	view.NotDeployed = !view.Balance.IsValidToken
	if s.demo != nil && view.Connected {
		view.Demo = s.demo.Demo(ctx, cc.ChainID, view.Balance)
	}
	return view, ctx.Err()
}
