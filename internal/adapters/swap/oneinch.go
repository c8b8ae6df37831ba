package swap

import (
	"fmt"
	"net/url"

	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/tokens"
)

const oneInchAppURL = "https://app.1inch.io"

// OneInch links into the 1inch aggregator. Its routes carry the chain ID and
// both tokens as path segments.
type OneInch struct {
	registry *tokens.Registry
}

func NewOneInch(registry *tokens.Registry) *OneInch {
	return &OneInch{registry: registryOrDefault(registry)}
}

func (o *OneInch) Info() Info {
	return Info{
		ID:              "1inch",
		Name:            "1inch",
		Description:     "DEX aggregator for best swap rates across protocols",
		SupportedChains: []chains.ID{chains.Polygon, chains.Ethereum},
		Features:        []string{"Aggregation", "Limit Orders", "Fusion"},
	}
}

func (o *OneInch) URL(cfg Config) string {
	chainID := cfg.chainID()

	input := cfg.InputToken
	if input == "" {
		input = nativeSymbol(chainID)
	}

	output := cfg.OutputToken
	if output == "" {
		if addr, ok := o.registry.Project.Address(chainID); ok {
			output = addr.Hex()
		} else {
			output = "USDC"
		}
	}

	return fmt.Sprintf("%s/#/%d/simple/swap/%s/%s",
		oneInchAppURL, uint64(chainID), url.PathEscape(input), url.PathEscape(output))
}

func nativeSymbol(id chains.ID) string {
	if c, ok := chains.Lookup(id); ok && c.NativeSymbol != "" {
		return c.NativeSymbol
	}
	c, _ := chains.Lookup(chains.Default)
	return c.NativeSymbol
}
