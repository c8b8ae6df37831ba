package swap

import (
	"net/url"

	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/tokens"
)

const uniswapAppURL = "https://app.uniswap.org"

type Uniswap struct {
	registry *tokens.Registry
}

func NewUniswap(registry *tokens.Registry) *Uniswap {
	return &Uniswap{registry: registryOrDefault(registry)}
}

func (u *Uniswap) Info() Info {
	return Info{
		ID:              "uniswap",
		Name:            "Uniswap",
		Description:     "The largest decentralized exchange by volume",
		SupportedChains: []chains.ID{chains.Polygon, chains.Ethereum},
		Features:        []string{"AMM", "Liquidity Pools", "NFTs"},
	}
}

// URL builds an app.uniswap.org swap link. The input defaults to the chain's
// native currency and the output to the project token; on a chain where the
// token is not deployed outputCurrency is left out.
func (u *Uniswap) URL(cfg Config) string {
	chainID := cfg.chainID()
	params := url.Values{}

	if cfg.InputToken != "" {
		params.Set("inputCurrency", cfg.InputToken)
	} else {
		params.Set("inputCurrency", "NATIVE")
	}

	if cfg.OutputToken != "" {
		params.Set("outputCurrency", cfg.OutputToken)
	} else if addr, ok := u.registry.Project.Address(chainID); ok {
		params.Set("outputCurrency", addr.Hex())
	}

	if cfg.InputAmount != "" {
		params.Set("exactAmount", cfg.InputAmount)
		params.Set("exactField", "input")
	}

	params.Set("chain", chains.SwapPathOrDefault(chainID))

	return uniswapAppURL + "/swap?" + params.Encode()
}
