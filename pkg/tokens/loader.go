package tokens

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pelletier/go-toml/v2"

	"github.com/regalium/regalium-core/pkg/chains"
)

// tokenFile is the on-disk shape of a registry override.
//
//	[project]
//	symbol = "RGLM"
//	name = "Regalium"
//	decimals = 18
//	[project.addresses]
//	137 = "0x..."
//
//	[staking]
//	137 = "0x..."
type tokenFile struct {
	Project tokenEntry        `toml:"project"`
	Tokens  []tokenEntry      `toml:"tokens"`
	Staking map[string]string `toml:"staking"`
}

type tokenEntry struct {
	Symbol    string            `toml:"symbol"`
	Name      string            `toml:"name"`
	Decimals  *uint8            `toml:"decimals"`
	Native    bool              `toml:"native"`
	LogoURI   string            `toml:"logo_uri"`
	Addresses map[string]string `toml:"addresses"`
}

// LoadFile reads a TOML registry override. Fields left out of the file keep
// the built-in defaults; tokens listed under [[tokens]] replace the swap list.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token registry: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML registry override on top of DefaultRegistry.
func Parse(data []byte) (*Registry, error) {
	var f tokenFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse token registry: %w", err)
	}

	reg := DefaultRegistry()

	if f.Project.Symbol != "" || len(f.Project.Addresses) > 0 {
		project, err := f.Project.merge(reg.Project)
		if err != nil {
			return nil, fmt.Errorf("project token: %w", err)
		}
		reg.Project = project
	}

	if len(f.Tokens) > 0 {
		list := make([]TokenDescriptor, 0, len(f.Tokens)+1)
		for i, e := range f.Tokens {
			if e.Symbol == "" {
				return nil, fmt.Errorf("token #%d: symbol is required", i)
			}
			t, err := e.merge(TokenDescriptor{Decimals: 18})
			if err != nil {
				return nil, fmt.Errorf("token %s: %w", e.Symbol, err)
			}
			list = append(list, t)
		}
		if _, ok := findSymbol(list, reg.Project.Symbol); !ok {
			list = append(list, reg.Project)
		}
		reg.Common = list
	} else {
		// keep the project entry in the swap list in sync with the override
		if i, ok := findSymbol(reg.Common, RGLM.Symbol); ok {
			reg.Common[i] = reg.Project
		}
	}

	if len(f.Staking) > 0 {
		staking, err := parseAddresses(f.Staking)
		if err != nil {
			return nil, fmt.Errorf("staking: %w", err)
		}
		reg.Staking = staking
	}

	return reg, nil
}

func (e tokenEntry) merge(base TokenDescriptor) (TokenDescriptor, error) {
	t := clone(base)
	if e.Symbol != "" {
		t.Symbol = e.Symbol
	}
	if e.Name != "" {
		t.Name = e.Name
	}
	if e.Decimals != nil {
		t.Decimals = *e.Decimals
	}
	if e.LogoURI != "" {
		t.LogoURI = e.LogoURI
	}
	t.Native = t.Native || e.Native
	if len(e.Addresses) > 0 {
		addrs, err := parseAddresses(e.Addresses)
		if err != nil {
			return TokenDescriptor{}, err
		}
		t.Addresses = addrs
	}
	return t, nil
}

func parseAddresses(raw map[string]string) (map[chains.ID]common.Address, error) {
	out := make(map[chains.ID]common.Address, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chain id %q: %w", k, err)
		}
		if !chains.IsSupported(chains.ID(id)) {
			return nil, fmt.Errorf("unsupported chain id %d", id)
		}
		if !common.IsHexAddress(v) {
			return nil, fmt.Errorf("invalid address %q for chain %d", v, id)
		}
		out[chains.ID(id)] = common.HexToAddress(v)
	}
	return out, nil
}

func findSymbol(list []TokenDescriptor, symbol string) (int, bool) {
	for i, t := range list {
		if t.Symbol == symbol {
			return i, true
		}
	}
	return -1, false
}
