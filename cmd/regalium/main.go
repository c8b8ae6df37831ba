package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/regalium/regalium-core/internal/logging"
	"github.com/regalium/regalium-core/pkg/version"
)

var server app

func main() {
	cliApp := newCLI()
	if err := cliApp.Run(os.Args); err != nil {
		log := logging.Component("cli")
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	chainFlag := &cli.Uint64Flag{
		Name:    "chain",
		Aliases: []string{"c"},
		Usage:   "chain ID (137 Polygon, 1 Ethereum, 80001 Mumbai)",
		Value:   137,
		EnvVars: []string{"CHAIN_ID"},
	}
	accountFlag := &cli.StringFlag{
		Name:    "account",
		Aliases: []string{"a"},
		Usage:   "wallet address to read for; defaults to the PRIVATE_KEY account",
	}
	amountFlag := &cli.StringFlag{
		Name:     "amount",
		Usage:    "token amount in whole units, e.g. 1000 or 12.5",
		Required: true,
	}
	waitFlag := &cli.BoolFlag{
		Name:  "wait",
		Usage: "wait for the transaction receipt before returning",
	}
	openFlag := &cli.BoolFlag{
		Name:  "open",
		Usage: "open the URL in the default browser",
	}

	return &cli.App{
		Name:    "regalium",
		Usage:   "RGLM token balances, staking and provider links",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the environment",
			},
		},
		Before: server.loadConfig,
		After:  server.close,
		Commands: []*cli.Command{
			{
				Name:     "balance",
				Usage:    "Show the RGLM balance of an account, or of another token with --token",
				Category: "Read",
				Flags: []cli.Flag{chainFlag, accountFlag, &cli.StringFlag{
					Name:  "token",
					Usage: "token symbol from the swap list (USDC, USDT) or contract address",
				}},
				Action:   server.balance,
			},
			{
				Name:     "staking",
				Usage:    "Show staked balance, pending reward and APY",
				Category: "Read",
				Flags:    []cli.Flag{chainFlag, accountFlag},
				Action:   server.staking,
			},
			{
				Name:     "dashboard",
				Usage:    "Show the dashboard view",
				Category: "Read",
				Flags: []cli.Flag{chainFlag, accountFlag, &cli.BoolFlag{
					Name:  "live-price",
					Usage: "price the USD value from DexScreener instead of the placeholder rate",
				}},
				Action: server.dashboard,
			},
			{
				Name:     "needs-approval",
				Usage:    "Report whether staking an amount needs an approve transaction first",
				Category: "Read",
				Flags:    []cli.Flag{chainFlag, accountFlag, amountFlag},
				Action:   server.needsApproval,
			},
			{
				Name:     "approve",
				Usage:    "Approve the staking vault to spend RGLM",
				Category: "Write",
				Flags:    []cli.Flag{chainFlag, amountFlag, waitFlag},
				Action:   server.approve,
			},
			{
				Name:     "stake",
				Usage:    "Stake RGLM",
				Category: "Write",
				Flags: []cli.Flag{chainFlag, amountFlag, waitFlag, &cli.BoolFlag{
					Name:  "approve",
					Usage: "submit and confirm an approve transaction first when the allowance is short",
				}},
				Action: server.stake,
			},
			{
				Name:     "unstake",
				Usage:    "Withdraw staked RGLM",
				Category: "Write",
				Flags:    []cli.Flag{chainFlag, amountFlag, waitFlag},
				Action:   server.unstake,
			},
			{
				Name:     "claim",
				Usage:    "Claim pending staking rewards",
				Category: "Write",
				Flags:    []cli.Flag{chainFlag, waitFlag},
				Action:   server.claim,
			},
			{
				Name:      "swap-url",
				Usage:     "Build a DEX swap link",
				Category:  "Links",
				ArgsUsage: "[options] <uniswap|1inch>",
				Flags: []cli.Flag{
					chainFlag, openFlag,
					&cli.StringFlag{Name: "in", Usage: "input token symbol or address; listed ERC-20 symbols become addresses"},
					&cli.StringFlag{Name: "out", Usage: "output token symbol or address; listed ERC-20 symbols become addresses"},
					&cli.StringFlag{Name: "amount", Usage: "input amount"},
				},
				Action: server.swapURL,
			},
			{
				Name:      "onramp-url",
				Usage:     "Build a fiat on-ramp widget link",
				Category:  "Links",
				ArgsUsage: "[options] <moonpay|transak>",
				Flags: []cli.Flag{
					accountFlag, openFlag,
					&cli.StringFlag{Name: "fiat", Usage: "fiat currency code"},
					&cli.StringFlag{Name: "fiat-amount", Usage: "fiat amount"},
					&cli.StringFlag{Name: "crypto", Usage: "crypto currency code"},
					&cli.StringFlag{Name: "network", Usage: "network name"},
				},
				Action: server.onrampURL,
			},
			{
				Name:     "providers",
				Usage:    "List swap and on-ramp providers",
				Category: "Links",
				Action:   server.providers,
			},
			{
				Name:     "liquidity",
				Usage:    "Show pool and chart links for RGLM",
				Category: "Links",
				Flags:    []cli.Flag{chainFlag},
				Action:   server.liquidity,
			},
			{
				Name:   "version",
				Usage:  "Print build information",
				Action: server.version,
			},
		},
	}
}
