package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		ok   bool
	}{
		{name: "polygon", id: Polygon, ok: true},
		{name: "ethereum", id: Ethereum, ok: true},
		{name: "mumbai", id: PolygonMumbai, ok: true},
		{name: "bsc", id: 56, ok: false},
		{name: "zero", id: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Lookup(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ok, IsSupported(tt.id))
		})
	}
}

func TestSwapPathOrDefault(t *testing.T) {
	assert.Equal(t, "ethereum", SwapPathOrDefault(Ethereum))
	assert.Equal(t, "polygon", SwapPathOrDefault(Polygon))
	assert.Equal(t, "polygon", SwapPathOrDefault(PolygonMumbai))
	assert.Equal(t, "polygon", SwapPathOrDefault(42161))
}

func TestExplorerAddressURL(t *testing.T) {
	addr := "0x742d35Cc6634C0532925a3b844Bc9e7595f2b21D"
	assert.Equal(t, "https://etherscan.io/address/"+addr, ExplorerAddressURL(Ethereum, addr))
	assert.Equal(t, "https://polygonscan.com/address/"+addr, ExplorerAddressURL(999, addr))
}

func TestAllOrdered(t *testing.T) {
	all := All()
	if assert.Len(t, all, 3) {
		assert.Equal(t, Ethereum, all[0].ID)
		assert.Equal(t, Polygon, all[1].ID)
		assert.Equal(t, PolygonMumbai, all[2].ID)
	}
}
