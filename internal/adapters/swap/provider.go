// Package swap builds deep links into third-party DEX front ends. Builders are
// pure: no network calls, and identical input always yields the same URL.
package swap

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/regalium/regalium-core/internal/adapters/browser"
	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/tokens"
)

// Config is the swap form state. Empty fields take provider defaults.
type Config struct {
	// InputToken and OutputToken are a symbol or a contract address.
	InputToken  string
	OutputToken string
	InputAmount string
	// ChainID zero means chains.Default.
	ChainID chains.ID
	// Slippage in percent. Neither Uniswap nor 1inch deep links take it.
	Slippage float64
}

func (c Config) chainID() chains.ID {
	if c.ChainID == 0 {
		return chains.Default
	}
	return c.ChainID
}

// Info describes a provider for listing.
type Info struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	SupportedChains []chains.ID `json:"supported_chains"`
	Features        []string    `json:"features"`
}

// Provider is one DEX front end.
type Provider interface {
	Info() Info
	URL(cfg Config) string
}

// Providers returns the known DEX providers resolving defaults against registry.
func Providers(registry *tokens.Registry) []Provider {
	return []Provider{NewUniswap(registry), NewOneInch(registry)}
}

// ByID finds a provider by its Info().ID.
func ByID(registry *tokens.Registry, id string) (Provider, bool) {
	for _, p := range Providers(registry) {
		if p.Info().ID == id {
			return p, true
		}
	}
	return nil, false
}

// Open builds the provider URL and hands it to o.
func Open(p Provider, cfg Config, o browser.Opener) (string, error) {
	url := p.URL(cfg)
	return url, o.OpenURL(url)
}

// TokenParam maps a token picked by symbol onto what the DEX front ends
// expect: the symbol for a native coin, the contract address on chainID for
// anything else. Raw addresses, unknown symbols and tokens without a
// deployment on chainID pass through unchanged.
func TokenParam(registry *tokens.Registry, chainID chains.ID, token string) string {
	if token == "" || common.IsHexAddress(token) {
		return token
	}
	t, ok := registryOrDefault(registry).Token(token)
	if !ok {
		return token
	}
	if t.Native {
		return t.Symbol
	}
	if addr, ok := tokens.GetTokenAddress(t, chainID); ok {
		return addr.Hex()
	}
	return token
}

func registryOrDefault(r *tokens.Registry) *tokens.Registry {
	if r == nil {
		return tokens.DefaultRegistry()
	}
	return r
}
