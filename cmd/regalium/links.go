package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/regalium/regalium-core/internal/adapters/browser"
	"github.com/regalium/regalium-core/internal/adapters/onramp"
	"github.com/regalium/regalium-core/internal/adapters/swap"
	"github.com/regalium/regalium-core/internal/core/domain"
	"github.com/regalium/regalium-core/pkg/version"
)

func (a *app) opener(c *cli.Context) browser.Opener {
	if c.Bool("open") {
		return browser.NewSystem()
	}
	return &browser.Recorder{}
}

// providerArg returns the single positional provider ID. Flags after it are
// not parsed by the CLI library, so any trailing argument is an error rather
// than a silently ignored option.
func providerArg(c *cli.Context, def string) (string, error) {
	if c.NArg() > 1 {
		return "", fmt.Errorf("unexpected arguments %q: options must come before the provider", c.Args().Tail())
	}
	if id := c.Args().First(); id != "" {
		return id, nil
	}
	return def, nil
}

func (a *app) swapURL(c *cli.Context) error {
	id, err := providerArg(c, "uniswap")
	if err != nil {
		return err
	}
	p, ok := swap.ByID(a.cfg.Registry, id)
	if !ok {
		return fmt.Errorf("unknown swap provider %q", id)
	}
	chainID, err := chainFrom(c)
	if err != nil {
		return err
	}

	url, err := swap.Open(p, swap.Config{
		InputToken:  swap.TokenParam(a.cfg.Registry, chainID, c.String("in")),
		OutputToken: swap.TokenParam(a.cfg.Registry, chainID, c.String("out")),
		InputAmount: c.String("amount"),
		ChainID:     chainID,
	}, a.opener(c))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, url)
	return nil
}

func (a *app) onrampURL(c *cli.Context) error {
	id, err := providerArg(c, "moonpay")
	if err != nil {
		return err
	}
	var p onramp.Provider
	switch id {
	case "moonpay":
		p = onramp.NewMoonPay(a.cfg.MoonPay)
	case "transak":
		p = onramp.NewTransak(a.cfg.Transak)
	default:
		return fmt.Errorf("unknown on-ramp provider %q", id)
	}

	account, err := a.account(c)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrMissingWalletAddress
	}
	// an explicit --account is forwarded exactly as typed
	wallet := c.String("account")
	if wallet == "" {
		wallet = account.Hex()
	}

	cfg := onramp.Config{
		WalletAddress:  wallet,
		FiatCurrency:   c.String("fiat"),
		CryptoCurrency: c.String("crypto"),
		Network:        c.String("network"),
	}
	if s := c.String("fiat-amount"); s != "" {
		cfg.FiatAmount, err = decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("invalid fiat amount %q: %w", s, err)
		}
	}

	url, err := onramp.Open(p, cfg, a.opener(c))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, url)
	return nil
}

func (a *app) providers(c *cli.Context) error {
	out := struct {
		Swap   []swap.Info   `json:"swap"`
		OnRamp []onramp.Info `json:"on_ramp"`
	}{}
	for _, p := range swap.Providers(a.cfg.Registry) {
		out.Swap = append(out.Swap, p.Info())
	}
	for _, p := range onramp.Providers(a.cfg.MoonPay, a.cfg.Transak) {
		out.OnRamp = append(out.OnRamp, p.Info())
	}
	return printJSON(out)
}

func (a *app) liquidity(c *cli.Context) error {
	chainID, err := chainFrom(c)
	if err != nil {
		return err
	}
	links, ok := swap.Liquidity(a.cfg.Registry, chainID)
	if !ok {
		return fmt.Errorf("RGLM on %s: %w", chainID, domain.ErrNotDeployed)
	}
	return printJSON(links)
}

func (a *app) version(c *cli.Context) error {
	return printJSON(version.GetBuildInfo())
}
