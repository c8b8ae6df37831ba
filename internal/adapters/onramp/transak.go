package onramp

import (
	"net/url"
	"strings"
)

const (
	transakProductionURL = "https://global.transak.com"
	transakSandboxURL    = "https://global-stg.transak.com"
	DefaultTransakKey    = "your-transak-api-key"
)

type Transak struct {
	settings Settings
}

func NewTransak(s Settings) *Transak {
	if s.APIKey == "" {
		s.APIKey = DefaultTransakKey
	}
	return &Transak{settings: s}
}

func (t *Transak) Info() Info {
	return Info{
		ID:               "transak",
		Name:             "Transak",
		Description:      "Global fiat-to-crypto gateway with 100+ currencies",
		SupportedMethods: []string{"card", "bank", "sepa", "upi"},
		Fees:             "1-5%",
	}
}

// URL builds the Transak widget link. Transak takes the theme color without
// the leading '#'.
func (t *Transak) URL(cfg Config) (string, error) {
	if err := cfg.validate(); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("apiKey", t.settings.APIKey)
	params.Set("walletAddress", cfg.WalletAddress)
	params.Set("fiatCurrency", orDefault(cfg.FiatCurrency, "USD"))
	params.Set("fiatAmount", cfg.fiatAmount())
	params.Set("cryptoCurrencyCode", orDefault(cfg.CryptoCurrency, "MATIC"))
	params.Set("network", orDefault(cfg.Network, "polygon"))
	params.Set("themeColor", strings.TrimPrefix(t.settings.themeColor(), "#"))
	params.Set("hideMenu", "true")
	params.Set("disableWalletAddressForm", "true")

	base := transakSandboxURL
	if t.settings.Production {
		base = transakProductionURL
	}
	return base + "?" + params.Encode(), nil
}
