package swap

import (
	"fmt"

	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/tokens"
)

// LiquidityLinks point at pool and chart pages for the project token.
type LiquidityLinks struct {
	UniswapPool string `json:"uniswap_pool"`
	DexScreener string `json:"dex_screener"`
	DexTools    string `json:"dex_tools"`
}

// Liquidity returns the links for chainID, false when the project token is
// not deployed there.
func Liquidity(registry *tokens.Registry, chainID chains.ID) (LiquidityLinks, bool) {
	registry = registryOrDefault(registry)
	addr, ok := registry.Project.Address(chainID)
	if !ok {
		return LiquidityLinks{}, false
	}

	path := chains.SwapPathOrDefault(chainID)
	hex := addr.Hex()
	return LiquidityLinks{
		UniswapPool: fmt.Sprintf("https://app.uniswap.org/explore/tokens/%s/%s", path, hex),
		DexScreener: fmt.Sprintf("https://dexscreener.com/%s/%s", path, hex),
		DexTools:    fmt.Sprintf("https://www.dextools.io/app/en/%s/pair-explorer/%s", path, hex),
	}, true
}
