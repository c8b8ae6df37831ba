// Package onramp builds widget URLs for fiat-to-crypto providers.
package onramp

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/regalium/regalium-core/internal/adapters/browser"
	"github.com/regalium/regalium-core/internal/core/domain"
)

const (
	DefaultThemeColor = "#d4af37"
	defaultFiatAmount = 100
)

var ErrInvalidWalletAddress = errors.New("invalid wallet address")

// Config is the purchase request. WalletAddress is required.
type Config struct {
	WalletAddress  string
	FiatCurrency   string
	FiatAmount     decimal.Decimal
	CryptoCurrency string
	Network        string
}

func (c Config) validate() error {
	if c.WalletAddress == "" {
		return domain.ErrMissingWalletAddress
	}
	if !common.IsHexAddress(c.WalletAddress) {
		return fmt.Errorf("%w: %q", ErrInvalidWalletAddress, c.WalletAddress)
	}
	return nil
}

func (c Config) fiatAmount() string {
	if c.FiatAmount.IsPositive() {
		return c.FiatAmount.String()
	}
	return decimal.NewFromInt(defaultFiatAmount).String()
}

// Settings are the per-deployment provider options. API keys are publishable
// keys and safe to embed in URLs.
type Settings struct {
	APIKey     string
	Production bool
	ThemeColor string
}

func (s Settings) themeColor() string {
	if s.ThemeColor == "" {
		return DefaultThemeColor
	}
	return s.ThemeColor
}

// Info describes a provider for listing.
type Info struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	SupportedMethods []string `json:"supported_methods"`
	Fees             string   `json:"fees"`
}

// Provider is one on-ramp widget.
type Provider interface {
	Info() Info
	URL(cfg Config) (string, error)
}

// Providers returns the known on-ramps.
func Providers(moonpay, transak Settings) []Provider {
	return []Provider{NewMoonPay(moonpay), NewTransak(transak)}
}

// Open builds the widget URL and hands it to o. Nothing is opened when the
// configuration is invalid.
func Open(p Provider, cfg Config, o browser.Opener) (string, error) {
	url, err := p.URL(cfg)
	if err != nil {
		return "", err
	}
	return url, o.OpenURL(url)
}
