package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/regalium/regalium-core/internal/core/domain"
	"github.com/regalium/regalium-core/internal/logging"
	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/contracts"
	"github.com/regalium/regalium-core/pkg/tokens"
	"github.com/regalium/regalium-core/pkg/wallet"
)

// sharedCallTimeout bounds a deduplicated read, which no longer follows the
// cancellation of the caller that started it.
const sharedCallTimeout = 30 * time.Second

// EthereumClient implements domain.ContractClient for EVM chains. Reads go
// through one ContractCaller per chain; identical in-flight reads are
// collapsed into a single RPC call. Nothing is cached once a call returns.
type EthereumClient struct {
	registry *tokens.Registry
	backends map[chains.ID]ethereum.ContractCaller
	erc20    abi.ABI
	staking  abi.ABI
	inflight singleflight.Group
	log      zerolog.Logger
}

// NewEthereumClient builds a client over pre-connected backends.
func NewEthereumClient(registry *tokens.Registry, backends map[chains.ID]ethereum.ContractCaller) (*EthereumClient, error) {
	erc20, err := contracts.ParseERC20()
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC-20 ABI: %w", err)
	}
	staking, err := contracts.ParseStaking()
	if err != nil {
		return nil, fmt.Errorf("failed to parse staking ABI: %w", err)
	}
	if registry == nil {
		registry = tokens.DefaultRegistry()
	}

	return &EthereumClient{
		registry: registry,
		backends: backends,
		erc20:    erc20,
		staking:  staking,
		log:      logging.Component("contract-client"),
	}, nil
}

// Dial connects to every configured RPC endpoint. The returned func closes
// all connections.
func Dial(ctx context.Context, registry *tokens.Registry, rpcURLs map[chains.ID]string) (*EthereumClient, func(), error) {
	backends := make(map[chains.ID]ethereum.ContractCaller, len(rpcURLs))
	var opened []*ethclient.Client
	closeAll := func() {
		for _, c := range opened {
			c.Close()
		}
	}

	for id, url := range rpcURLs {
		if url == "" {
			continue
		}
		if !chains.IsSupported(id) {
			closeAll()
			return nil, nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedChain, id)
		}
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to connect to %s RPC: %w", id, err)
		}
		opened = append(opened, client)
		backends[id] = client
	}

	c, err := NewEthereumClient(registry, backends)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return c, closeAll, nil
}

// Registry returns the deployment table the client resolves against.
func (c *EthereumClient) Registry() *tokens.Registry {
	return c.registry
}

func (c *EthereumClient) ResolveToken(chainID chains.ID) (common.Address, bool) {
	return c.registry.TokenAddress(chainID)
}

func (c *EthereumClient) ResolveStaking(chainID chains.ID) (common.Address, bool) {
	return c.registry.StakingAddress(chainID)
}

// BalanceOf calls balanceOf(account) on token.
func (c *EthereumClient) BalanceOf(ctx context.Context, chainID chains.ID, token, account common.Address) (*big.Int, error) {
	return c.callUint(ctx, chainID, token, c.erc20, contracts.MethodBalanceOf, account)
}

// Decimals calls decimals() on token.
func (c *EthereumClient) Decimals(ctx context.Context, chainID chains.ID, token common.Address) (uint8, error) {
	out, err := c.call(ctx, chainID, token, c.erc20, contracts.MethodDecimals)
	if err != nil {
		return 0, err
	}
	d, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected %s result type %T", contracts.MethodDecimals, out[0])
	}
	return d, nil
}

// Symbol calls symbol() on token.
func (c *EthereumClient) Symbol(ctx context.Context, chainID chains.ID, token common.Address) (string, error) {
	out, err := c.call(ctx, chainID, token, c.erc20, contracts.MethodSymbol)
	if err != nil {
		return "", err
	}
	s, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected %s result type %T", contracts.MethodSymbol, out[0])
	}
	return s, nil
}

// Allowance calls allowance(owner, spender) on token.
func (c *EthereumClient) Allowance(ctx context.Context, chainID chains.ID, token, owner, spender common.Address) (*big.Int, error) {
	return c.callUint(ctx, chainID, token, c.erc20, contracts.MethodAllowance, owner, spender)
}

// StakedBalance reads stakedBalances(account) on the vault.
func (c *EthereumClient) StakedBalance(ctx context.Context, chainID chains.ID, vault, account common.Address) (*big.Int, error) {
	return c.callUint(ctx, chainID, vault, c.staking, contracts.MethodStakedBalances, account)
}

// StakeTimestamp reads stakeTimestamps(account) on the vault.
func (c *EthereumClient) StakeTimestamp(ctx context.Context, chainID chains.ID, vault, account common.Address) (*big.Int, error) {
	return c.callUint(ctx, chainID, vault, c.staking, contracts.MethodStakeTimestamps, account)
}

// CalculateReward reads the pending reward for account.
func (c *EthereumClient) CalculateReward(ctx context.Context, chainID chains.ID, vault, account common.Address) (*big.Int, error) {
	return c.callUint(ctx, chainID, vault, c.staking, contracts.MethodCalculateReward, account)
}

// RewardRatePerSecond reads the vault's per-second reward rate (18 decimals).
func (c *EthereumClient) RewardRatePerSecond(ctx context.Context, chainID chains.ID, vault common.Address) (*big.Int, error) {
	return c.callUint(ctx, chainID, vault, c.staking, contracts.MethodRewardRatePerSecond)
}

// StakingToken reads the token the vault accepts.
func (c *EthereumClient) StakingToken(ctx context.Context, chainID chains.ID, vault common.Address) (common.Address, error) {
	out, err := c.call(ctx, chainID, vault, c.staking, contracts.MethodToken)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected %s result type %T", contracts.MethodToken, out[0])
	}
	return addr, nil
}

// Approve submits approve(spender, amount) on token.
func (c *EthereumClient) Approve(ctx context.Context, w wallet.Wallet, token, spender common.Address, amount *big.Int) (*domain.PendingTx, error) {
	return c.transact(ctx, w, token, c.erc20, contracts.MethodApprove, spender, amount)
}

// Stake submits stake(amount) on the vault.
func (c *EthereumClient) Stake(ctx context.Context, w wallet.Wallet, vault common.Address, amount *big.Int) (*domain.PendingTx, error) {
	return c.transact(ctx, w, vault, c.staking, contracts.MethodStake, amount)
}

// Unstake submits unstake(amount) on the vault.
func (c *EthereumClient) Unstake(ctx context.Context, w wallet.Wallet, vault common.Address, amount *big.Int) (*domain.PendingTx, error) {
	return c.transact(ctx, w, vault, c.staking, contracts.MethodUnstake, amount)
}

// ClaimReward submits claimReward() on the vault.
func (c *EthereumClient) ClaimReward(ctx context.Context, w wallet.Wallet, vault common.Address) (*domain.PendingTx, error) {
	return c.transact(ctx, w, vault, c.staking, contracts.MethodClaimReward)
}

func (c *EthereumClient) callUint(ctx context.Context, chainID chains.ID, to common.Address, parsed abi.ABI, method string, args ...interface{}) (*big.Int, error) {
	out, err := c.call(ctx, chainID, to, parsed, method, args...)
	if err != nil {
		return nil, err
	}
	n, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected %s result type %T", method, out[0])
	}
	// results are shared between deduplicated callers
	return new(big.Int).Set(n), nil
}

func (c *EthereumClient) call(ctx context.Context, chainID chains.ID, to common.Address, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if !chains.IsSupported(chainID) {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedChain, chainID)
	}
	if to == (common.Address{}) {
		return nil, fmt.Errorf("%s: %w", method, domain.ErrNotDeployed)
	}
	backend, ok := c.backends[chainID]
	if !ok || backend == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoBackend, chainID)
	}

	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	// The shared call outlives any single caller; each caller still gives up
	// on its own ctx.
	key := fmt.Sprintf("%d:%s:%x", chainID, to.Hex(), data)
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(shared, sharedCallTimeout)
		defer cancel()
		result, err := backend.CallContract(callCtx, ethereum.CallMsg{To: &to, Data: data}, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to call %s: %w", method, err)
		}
		out, err := parsed.Unpack(method, result)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("empty %s result", method)
		}
		return out, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}

	c.log.Debug().
		Str("chain", chainID.String()).
		Str("contract", to.Hex()).
		Str("method", method).
		Bool("shared", res.Shared).
		Msg("contract read")

	return res.Val.([]interface{}), nil
}

func (c *EthereumClient) transact(ctx context.Context, w wallet.Wallet, to common.Address, parsed abi.ABI, method string, args ...interface{}) (*domain.PendingTx, error) {
	if w == nil {
		return nil, domain.ErrNoWallet
	}
	if to == (common.Address{}) {
		return nil, fmt.Errorf("%s: %w", method, domain.ErrNotDeployed)
	}

	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	hash, err := w.SendTransaction(ctx, to, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	c.log.Info().
		Str("chain", w.ChainID().String()).
		Str("contract", to.Hex()).
		Str("method", method).
		Str("tx_hash", hash.Hex()).
		Msg("transaction submitted")

	return &domain.PendingTx{
		Hash:    hash,
		ChainID: w.ChainID(),
		To:      to,
		Method:  method,
	}, nil
}
