package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/urfave/cli/v2"

	"github.com/regalium/regalium-core/internal/core/domain"
	"github.com/regalium/regalium-core/internal/core/service"
	"github.com/regalium/regalium-core/pkg/wallet"
)

const receiptPollInterval = 2 * time.Second

type writeFunc func(ctx context.Context, svc *service.StakingService, w wallet.Wallet) (*domain.PendingTx, error)

// submit opens the wallet, runs fn and prints the pending transaction. With
// --wait it also waits for the receipt.
func (a *app) submit(c *cli.Context, fn writeFunc) error {
	w, err := a.openWallet(c)
	if err != nil {
		return err
	}
	defer w.Close()

	svc, err := a.stakingService(c.Context, nil)
	if err != nil {
		return err
	}

	tx, err := fn(c.Context, svc, w)
	if err != nil {
		return err
	}
	if !c.Bool("wait") {
		return printJSON(tx)
	}

	receipt, err := a.waitMined(c.Context, w, tx)
	if err != nil {
		return err
	}
	return printJSON(struct {
		*domain.PendingTx
		Status      uint64 `json:"status"`
		BlockNumber string `json:"block_number"`
		GasUsed     uint64 `json:"gas_used"`
	}{tx, receipt.Status, receipt.BlockNumber.String(), receipt.GasUsed})
}

func (a *app) waitMined(ctx context.Context, w *wallet.KeyedWallet, tx *domain.PendingTx) (*types.Receipt, error) {
	a.log.Info().Str("tx_hash", tx.Hash.Hex()).Str("method", tx.Method).Msg("waiting for receipt")
	receipt, err := wallet.WaitForReceipt(ctx, w, tx.Hash, receiptPollInterval)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%s transaction %s reverted", tx.Method, tx.Hash.Hex())
	}
	return receipt, nil
}

func (a *app) approve(c *cli.Context) error {
	return a.submit(c, func(ctx context.Context, svc *service.StakingService, w wallet.Wallet) (*domain.PendingTx, error) {
		return svc.Approve(ctx, w, c.String("amount"))
	})
}

func (a *app) stake(c *cli.Context) error {
	amount := c.String("amount")
	return a.submit(c, func(ctx context.Context, svc *service.StakingService, w wallet.Wallet) (*domain.PendingTx, error) {
		if c.Bool("approve") {
			if err := a.approveIfNeeded(ctx, svc, w, amount); err != nil {
				return nil, err
			}
		}
		return svc.Stake(ctx, w, amount)
	})
}

// approveIfNeeded submits an approve for amount when the allowance is short
// and waits for it to be mined before the stake is sent.
func (a *app) approveIfNeeded(ctx context.Context, svc *service.StakingService, w wallet.Wallet, amount string) error {
	account := w.Address()
	need, err := svc.NeedsApproval(ctx, domain.ChainContext{ChainID: w.ChainID(), Account: &account}, amount)
	if err != nil {
		return err
	}
	if !need {
		return nil
	}

	tx, err := svc.Approve(ctx, w, amount)
	if err != nil {
		return err
	}
	keyed, ok := w.(*wallet.KeyedWallet)
	if !ok {
		return fmt.Errorf("cannot wait for approval %s", tx.Hash.Hex())
	}
	_, err = a.waitMined(ctx, keyed, tx)
	return err
}

func (a *app) unstake(c *cli.Context) error {
	return a.submit(c, func(ctx context.Context, svc *service.StakingService, w wallet.Wallet) (*domain.PendingTx, error) {
		return svc.Unstake(ctx, w, c.String("amount"))
	})
}

func (a *app) claim(c *cli.Context) error {
	return a.submit(c, func(ctx context.Context, svc *service.StakingService, w wallet.Wallet) (*domain.PendingTx, error) {
		return svc.ClaimReward(ctx, w)
	})
}
