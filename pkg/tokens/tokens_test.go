package tokens

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regalium/regalium-core/pkg/chains"
)

func TestDefaultRegistry_TokenAddress(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		name    string
		chainID chains.ID
		want    common.Address
		ok      bool
	}{
		{
			name:    "polygon deployed",
			chainID: chains.Polygon,
			want:    common.HexToAddress("0x3772127acbd138f86fabcb2341860956b9190346"),
			ok:      true,
		},
		{name: "mainnet zero address", chainID: chains.Ethereum, ok: false},
		{name: "unsupported chain", chainID: 56, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reg.TokenAddress(tt.chainID)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultRegistry_StakingAddress(t *testing.T) {
	reg := DefaultRegistry()

	_, ok := reg.StakingAddress(chains.Polygon)
	assert.True(t, ok)

	_, ok = reg.StakingAddress(chains.Ethereum)
	assert.False(t, ok, "no vault on mainnet")

	_, ok = reg.StakingAddress(10)
	assert.False(t, ok)
}

func TestRegistry_Token(t *testing.T) {
	reg := DefaultRegistry()

	usdc, ok := reg.Token("usdc")
	require.True(t, ok)
	assert.Equal(t, uint8(6), usdc.Decimals)

	addr, ok := GetTokenAddress(usdc, chains.Ethereum)
	assert.True(t, ok)
	assert.Equal(t, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), addr)

	_, ok = GetTokenAddress(usdc, chains.PolygonMumbai)
	assert.False(t, ok)

	_, ok = reg.Token("DOGE")
	assert.False(t, ok)
}

func TestDefaultRegistry_Independent(t *testing.T) {
	a := DefaultRegistry()
	a.Project.Addresses[chains.Polygon] = common.Address{}

	b := DefaultRegistry()
	_, ok := b.TokenAddress(chains.Polygon)
	assert.True(t, ok, "mutating one registry must not leak into another")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.toml")
	content := `
[project]
decimals = 18

[project.addresses]
1 = "0x1111111111111111111111111111111111111111"
137 = "0x0000000000000000000000000000000000000000"

[staking]
1 = "0x2222222222222222222222222222222222222222"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	reg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "RGLM", reg.Project.Symbol)

	addr, ok := reg.TokenAddress(chains.Ethereum)
	assert.True(t, ok)
	assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), addr)

	_, ok = reg.TokenAddress(chains.Polygon)
	assert.False(t, ok, "zero address means not deployed")

	_, ok = reg.StakingAddress(chains.Polygon)
	assert.False(t, ok, "staking table is replaced")

	rglm, ok := reg.Token("RGLM")
	require.True(t, ok)
	_, ok = rglm.Address(chains.Ethereum)
	assert.True(t, ok, "swap list follows the project override")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown field", content: "[project]\ncolour = \"gold\"\n"},
		{name: "bad chain id", content: "[staking]\npolygon = \"0x2222222222222222222222222222222222222222\"\n"},
		{name: "unsupported chain", content: "[staking]\n56 = \"0x2222222222222222222222222222222222222222\"\n"},
		{name: "bad address", content: "[staking]\n137 = \"0x12\"\n"},
		{name: "token without symbol", content: "[[tokens]]\nname = \"Nameless\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParse_TokenList(t *testing.T) {
	content := `
[[tokens]]
symbol = "DAI"
name = "Dai Stablecoin"
decimals = 18
[tokens.addresses]
1 = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
`
	reg, err := Parse([]byte(content))
	require.NoError(t, err)

	require.Len(t, reg.Common, 2)
	_, ok := reg.Token("DAI")
	assert.True(t, ok)
	_, ok = reg.Token("RGLM")
	assert.True(t, ok, "project token is always listed")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("/nonexistent/tokens.toml")
	assert.Error(t, err)
}
