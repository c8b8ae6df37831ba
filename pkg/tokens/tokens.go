package tokens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/regalium/regalium-core/pkg/chains"
)

// TokenDescriptor is static metadata for a token across chains.
type TokenDescriptor struct {
	Symbol    string
	Name      string
	Decimals  uint8
	Addresses map[chains.ID]common.Address
	Native    bool
	LogoURI   string
}

// Address returns the token's deployed address on chainID. A missing entry
// or the zero address both report false.
func (t TokenDescriptor) Address(chainID chains.ID) (common.Address, bool) {
	addr, ok := t.Addresses[chainID]
	if !ok || addr == (common.Address{}) {
		return common.Address{}, false
	}
	return addr, true
}

// Registry maps the project token, the swap token list and the staking vault
// onto chains. It is built once at start-up and never mutated afterwards.
type Registry struct {
	Project TokenDescriptor
	Common  []TokenDescriptor
	Staking map[chains.ID]common.Address
}

// RGLM is the project token.
var RGLM = TokenDescriptor{
	Symbol:   "RGLM",
	Name:     "Regalium",
	Decimals: 18,
	Addresses: map[chains.ID]common.Address{
		chains.Polygon:       common.HexToAddress("0x3772127acbd138f86fabcb2341860956b9190346"),
		chains.Ethereum:      {}, // not deployed yet
		chains.PolygonMumbai: common.HexToAddress("0x3772127acbd138f86fabcb2341860956b9190346"),
	},
	LogoURI: "/favicon.ico",
}

// DefaultRegistry returns the built-in deployment table.
func DefaultRegistry() *Registry {
	project := clone(RGLM)
	return &Registry{
		Project: project,
		Common: []TokenDescriptor{
			{
				Symbol:   "MATIC",
				Name:     "Polygon",
				Decimals: 18,
				Addresses: map[chains.ID]common.Address{
					chains.Polygon: common.HexToAddress("0x0000000000000000000000000000000000001010"),
				},
				Native: true,
			},
			{
				Symbol:   "ETH",
				Name:     "Ethereum",
				Decimals: 18,
				Addresses: map[chains.ID]common.Address{
					chains.Ethereum: common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"),
				},
				Native: true,
			},
			{
				Symbol:   "USDC",
				Name:     "USD Coin",
				Decimals: 6,
				Addresses: map[chains.ID]common.Address{
					chains.Polygon:  common.HexToAddress("0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"),
					chains.Ethereum: common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
				},
			},
			{
				Symbol:   "USDT",
				Name:     "Tether USD",
				Decimals: 6,
				Addresses: map[chains.ID]common.Address{
					chains.Polygon:  common.HexToAddress("0xc2132D05D31c914a87C6611C10748AEb04B58e8F"),
					chains.Ethereum: common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"),
				},
			},
			project,
		},
		Staking: map[chains.ID]common.Address{
			chains.PolygonMumbai: common.HexToAddress("0xd61994a5528197c1def33799549556501f227c97"),
			chains.Polygon:       common.HexToAddress("0xd61994a5528197c1def33799549556501f227c97"),
		},
	}
}

// TokenAddress resolves the project token on chainID.
func (r *Registry) TokenAddress(chainID chains.ID) (common.Address, bool) {
	if !chains.IsSupported(chainID) {
		return common.Address{}, false
	}
	return r.Project.Address(chainID)
}

// StakingAddress resolves the staking vault on chainID.
func (r *Registry) StakingAddress(chainID chains.ID) (common.Address, bool) {
	if !chains.IsSupported(chainID) {
		return common.Address{}, false
	}
	addr, ok := r.Staking[chainID]
	if !ok || addr == (common.Address{}) {
		return common.Address{}, false
	}
	return addr, true
}

// Token finds a token in the swap list by symbol, case-insensitively.
func (r *Registry) Token(symbol string) (TokenDescriptor, bool) {
	for _, t := range r.Common {
		if strings.EqualFold(t.Symbol, symbol) {
			return t, true
		}
	}
	return TokenDescriptor{}, false
}

// GetTokenAddress returns the token's address on chainID, if deployed there.
func GetTokenAddress(t TokenDescriptor, chainID chains.ID) (common.Address, bool) {
	return t.Address(chainID)
}

func clone(t TokenDescriptor) TokenDescriptor {
	addrs := make(map[chains.ID]common.Address, len(t.Addresses))
	for k, v := range t.Addresses {
		addrs[k] = v
	}
	t.Addresses = addrs
	return t
}
