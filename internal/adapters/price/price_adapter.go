package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ErrNoPairs is returned when DexScreener lists no trading pair for a token
// on the requested chain.
var ErrNoPairs = errors.New("no trading pairs found")

// Source returns a USD price per whole token.
type Source interface {
	USDRate(ctx context.Context, chainPath string, token common.Address) (decimal.Decimal, error)
	Name() string
}

// Fixed is a constant rate. It is the dashboard's placeholder price.
type Fixed decimal.Decimal

// PlaceholderRate is the fixed RGLM/USD rate shown until a market exists.
var PlaceholderRate = Fixed(decimal.RequireFromString("0.50"))

func (f Fixed) USDRate(context.Context, string, common.Address) (decimal.Decimal, error) {
	return decimal.Decimal(f), nil
}

func (f Fixed) Name() string { return "placeholder" }

const dexScreenerBaseURL = "https://api.dexscreener.com"

type DexScreenerService struct {
	client  *http.Client
	baseURL string
}

func NewDexScreenerService() *DexScreenerService {
	return &DexScreenerService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: dexScreenerBaseURL,
	}
}

func (s *DexScreenerService) Name() string { return "dexscreener" }

// USDRate looks up the token's pairs and returns the price of the first pair
// quoted on chainPath (DexScreener's chain slug, e.g. "polygon").
func (s *DexScreenerService) USDRate(ctx context.Context, chainPath string, token common.Address) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/latest/dex/tokens/%s", s.baseURL, token.Hex())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("dexscreener api returned status: %d", resp.StatusCode)
	}

	var result struct {
		Pairs []struct {
			PriceUsd string `json:"priceUsd"`
			ChainId  string `json:"chainId"`
		} `json:"pairs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode dexscreener response: %w", err)
	}

	for _, pair := range result.Pairs {
		if chainPath != "" && !strings.EqualFold(pair.ChainId, chainPath) {
			continue
		}
		price, err := decimal.NewFromString(pair.PriceUsd)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to parse price: %w", err)
		}
		return price, nil
	}
	return decimal.Zero, ErrNoPairs
}
