package main

import (
	"github.com/urfave/cli/v2"

	"github.com/regalium/regalium-core/internal/adapters/price"
	"github.com/regalium/regalium-core/internal/core/domain"
	"github.com/regalium/regalium-core/internal/core/service"
)

func (a *app) balance(c *cli.Context) error {
	cc, err := a.chainContext(c)
	if err != nil {
		return err
	}
	svc, err := a.stakingService(c.Context, nil)
	if err != nil {
		return err
	}

	var view domain.BalanceView
	if token := c.String("token"); token != "" {
		view, err = svc.TokenBalanceOf(c.Context, cc, token)
	} else {
		view, err = svc.TokenBalance(c.Context, cc)
	}
	if err != nil {
		return err
	}
	return printJSON(view)
}

func (a *app) staking(c *cli.Context) error {
	cc, err := a.chainContext(c)
	if err != nil {
		return err
	}
	svc, err := a.stakingService(c.Context, nil)
	if err != nil {
		return err
	}

	view, err := svc.StakingData(c.Context, cc)
	if err != nil {
		return err
	}
	return printJSON(view)
}

func (a *app) dashboard(c *cli.Context) error {
	cc, err := a.chainContext(c)
	if err != nil {
		return err
	}

	var rate price.Source = price.PlaceholderRate
	if c.Bool("live-price") {
		rate = price.NewDexScreenerService()
	}
	svc, err := a.stakingService(c.Context, rate)
	if err != nil {
		return err
	}

	view, err := svc.Dashboard(c.Context, cc)
	if err != nil {
		return err
	}
	if view.NotDeployed {
		a.log.Warn().Str("chain", cc.ChainID.String()).Msg("RGLM is not deployed on this chain")
	}
	return printJSON(view)
}

func (a *app) needsApproval(c *cli.Context) error {
	cc, err := a.chainContext(c)
	if err != nil {
		return err
	}
	svc, err := a.stakingService(c.Context, nil)
	if err != nil {
		return err
	}

	amount := c.String("amount")
	allowance, err := svc.Allowance(c.Context, cc)
	if err != nil {
		return err
	}

	out := struct {
		Amount        string `json:"amount"`
		Allowance     string `json:"allowance,omitempty"`
		NeedsApproval bool   `json:"needs_approval"`
	}{
		Amount:        amount,
		NeedsApproval: service.NeedsApproval(amount, allowance, a.cfg.Registry.Project.Decimals),
	}
	if allowance != nil {
		out.Allowance = allowance.String()
	}
	return printJSON(out)
}
