package chains

import (
	"fmt"
	"sort"
)

// ID is an EVM chain identifier.
type ID uint64

// Supported chain IDs
const (
	Ethereum      ID = 1
	Polygon       ID = 137
	PolygonMumbai ID = 80001
)

// Default is the chain used when a caller does not name one.
const Default = Polygon

// Chain describes a supported network
type Chain struct {
	ID           ID
	Name         string
	SwapPath     string // path segment used by swap and analytics sites
	NativeSymbol string
	ExplorerURL  string
}

var supported = map[ID]Chain{
	Polygon: {
		ID:           Polygon,
		Name:         "Polygon",
		SwapPath:     "polygon",
		NativeSymbol: "MATIC",
		ExplorerURL:  "https://polygonscan.com",
	},
	Ethereum: {
		ID:           Ethereum,
		Name:         "Ethereum",
		SwapPath:     "ethereum",
		NativeSymbol: "ETH",
		ExplorerURL:  "https://etherscan.io",
	},
	PolygonMumbai: {
		ID:           PolygonMumbai,
		Name:         "Mumbai Testnet",
		NativeSymbol: "MATIC",
		ExplorerURL:  "https://mumbai.polygonscan.com",
	},
}

// Lookup returns the chain for id. The second value is false for any chain
// outside the supported set.
func Lookup(id ID) (Chain, bool) {
	c, ok := supported[id]
	return c, ok
}

// IsSupported reports whether id is one of the enumerated chains.
func IsSupported(id ID) bool {
	_, ok := supported[id]
	return ok
}

// All returns the supported chains ordered by ID.
func All() []Chain {
	out := make([]Chain, 0, len(supported))
	for _, c := range supported {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SwapPathOrDefault returns the swap path segment for id, falling back to the
// default chain's segment for chains that have none.
func SwapPathOrDefault(id ID) string {
	if c, ok := supported[id]; ok && c.SwapPath != "" {
		return c.SwapPath
	}
	return supported[Default].SwapPath
}

// ExplorerAddressURL builds the block explorer link for an address.
// Unknown chains use the default chain's explorer.
func ExplorerAddressURL(id ID, address string) string {
	c, ok := supported[id]
	if !ok {
		c = supported[Default]
	}
	return fmt.Sprintf("%s/address/%s", c.ExplorerURL, address)
}

func (id ID) String() string {
	if c, ok := supported[id]; ok {
		return c.Name
	}
	return fmt.Sprintf("chain(%d)", uint64(id))
}
