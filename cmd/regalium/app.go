package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/regalium/regalium-core/internal/adapters/chain"
	"github.com/regalium/regalium-core/internal/adapters/demo"
	"github.com/regalium/regalium-core/internal/adapters/price"
	"github.com/regalium/regalium-core/internal/config"
	"github.com/regalium/regalium-core/internal/core/domain"
	"github.com/regalium/regalium-core/internal/core/service"
	"github.com/regalium/regalium-core/internal/logging"
	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/wallet"
)

type app struct {
	cfg    *config.Config
	client *chain.EthereumClient
	closer func()
	log    zerolog.Logger
}

func (a *app) loadConfig(c *cli.Context) error {
	var files []string
	if f := c.String("env-file"); f != "" {
		files = append(files, f)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	logging.SetLevel(cfg.LogLevel)

	a.cfg = cfg
	a.log = logging.Component("cli")
	return nil
}

// loadClient dials the configured RPC endpoints on first use, so link
// commands work without any node.
func (a *app) loadClient(ctx context.Context) error {
	if a.client != nil {
		return nil
	}
	client, closer, err := chain.Dial(ctx, a.cfg.Registry, a.cfg.RPCURLs)
	if err != nil {
		return err
	}
	a.client, a.closer = client, closer
	return nil
}

func (a *app) close(*cli.Context) error {
	if a.closer != nil {
		a.closer()
	}
	return nil
}

func (a *app) stakingService(ctx context.Context, rate price.Source) (*service.StakingService, error) {
	if err := a.loadClient(ctx); err != nil {
		return nil, err
	}
	return service.NewStakingService(a.client, a.cfg.Registry, demo.New(rate)), nil
}

func chainFrom(c *cli.Context) (chains.ID, error) {
	id := chains.ID(c.Uint64("chain"))
	if !chains.IsSupported(id) {
		return 0, fmt.Errorf("%w: %d", domain.ErrUnsupportedChain, uint64(id))
	}
	return id, nil
}

// chainContext resolves the account from --account, falling back to the
// PRIVATE_KEY address. No account means a disconnected context.
func (a *app) chainContext(c *cli.Context) (domain.ChainContext, error) {
	id, err := chainFrom(c)
	if err != nil {
		return domain.ChainContext{}, err
	}
	cc := domain.ChainContext{ChainID: id}

	account, err := a.account(c)
	if err != nil {
		return cc, err
	}
	cc.Account = account
	return cc, nil
}

func (a *app) account(c *cli.Context) (*common.Address, error) {
	if s := c.String("account"); s != "" {
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid account address %q", s)
		}
		addr := common.HexToAddress(s)
		return &addr, nil
	}
	if a.cfg.PrivateKey == "" {
		return nil, nil
	}
	key, err := crypto.HexToECDSA(trimHex(a.cfg.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("invalid PRIVATE_KEY: %w", err)
	}
	addr := crypto.PubkeyToAddress(key.PublicKey)
	return &addr, nil
}

// openWallet dials the RPC endpoint of the requested chain with PRIVATE_KEY
// and checks the node serves that chain.
func (a *app) openWallet(c *cli.Context) (*wallet.KeyedWallet, error) {
	id, err := chainFrom(c)
	if err != nil {
		return nil, err
	}
	if a.cfg.PrivateKey == "" {
		return nil, fmt.Errorf("%w: PRIVATE_KEY is not set", domain.ErrNoWallet)
	}
	rpc, ok := a.cfg.RPCURLs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoBackend, id)
	}

	w, err := wallet.Dial(c.Context, rpc, a.cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	if w.ChainID() != id {
		w.Close()
		return nil, fmt.Errorf("%w: node serves %s, requested %s", domain.ErrWrongChain, w.ChainID(), id)
	}
	return w, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func trimHex(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
