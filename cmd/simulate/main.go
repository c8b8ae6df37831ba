package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"

	"github.com/regalium/regalium-core/internal/adapters/chain"
	"github.com/regalium/regalium-core/internal/adapters/demo"
	"github.com/regalium/regalium-core/internal/adapters/swap"
	"github.com/regalium/regalium-core/internal/config"
	"github.com/regalium/regalium-core/internal/core/domain"
	"github.com/regalium/regalium-core/internal/core/service"
	"github.com/regalium/regalium-core/internal/logging"
	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/contracts"
	"github.com/regalium/regalium-core/pkg/units"
)

// simulate runs the dashboard against an in-memory chain seeded with sample
// vault state, so the full read path can be inspected without a node.
func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.SetLevel(cfg.LogLevel)

	// 1. Seed an in-memory Polygon
	token, _ := cfg.Registry.TokenAddress(chains.Polygon)
	vault, _ := cfg.Registry.StakingAddress(chains.Polygon)
	account := common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc9e7595f2b21D")

	caller := chain.NewMemoryCaller()
	caller.Set(token, contracts.MethodBalanceOf, tokens("2500"))
	caller.Set(vault, contracts.MethodStakedBalances, tokens("12500"))
	caller.Set(vault, contracts.MethodCalculateReward, tokens("312.5"))
	caller.Set(vault, contracts.MethodStakeTimestamps, big.NewInt(1_700_000_000))
	caller.Set(vault, contracts.MethodRewardRatePerSecond, big.NewInt(317097919837645))
	caller.Set(vault, contracts.MethodToken, token)

	client, err := chain.NewEthereumClient(cfg.Registry, map[chains.ID]ethereum.ContractCaller{
		chains.Polygon: caller,
	})
	if err != nil {
		log.Fatalf("Failed to build client: %v", err)
	}
	svc := service.NewStakingService(client, cfg.Registry, demo.New(nil))

	// 2. Read the dashboard
	view, err := svc.Dashboard(context.Background(), domain.ChainContext{ChainID: chains.Polygon, Account: &account})
	if err != nil {
		log.Fatalf("Dashboard failed: %v", err)
	}

	// 3. Print output
	out := struct {
		Dashboard domain.DashboardView `json:"dashboard"`
		SwapURLs  map[string]string    `json:"swap_urls"`
	}{Dashboard: view, SwapURLs: map[string]string{}}
	for _, p := range swap.Providers(cfg.Registry) {
		out.SwapURLs[p.Info().ID] = p.URL(swap.Config{ChainID: chains.Polygon})
	}

	output, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(output))
}

func tokens(amount string) *big.Int {
	n, err := units.ParseUnits(amount, 18)
	if err != nil {
		log.Fatalf("bad amount: %v", err)
	}
	return n
}
