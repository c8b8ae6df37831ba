package onramp

import (
	"net/url"
)

const (
	moonPayProductionURL = "https://buy.moonpay.com"
	moonPaySandboxURL    = "https://buy-sandbox.moonpay.com"
	// DefaultMoonPayKey is MoonPay's placeholder test key.
	DefaultMoonPayKey = "pk_test_key"
)

type MoonPay struct {
	settings Settings
}

func NewMoonPay(s Settings) *MoonPay {
	if s.APIKey == "" {
		s.APIKey = DefaultMoonPayKey
	}
	return &MoonPay{settings: s}
}

func (m *MoonPay) Info() Info {
	return Info{
		ID:               "moonpay",
		Name:             "MoonPay",
		Description:      "Buy crypto with card, bank transfer, or Apple Pay",
		SupportedMethods: []string{"card", "bank", "apple_pay", "google_pay"},
		Fees:             "1-4.5%",
	}
}

// URL builds the buy widget link. The widget is pinned to MATIC on Polygon
// via defaultCryptoCurrency; Network is not used by MoonPay.
func (m *MoonPay) URL(cfg Config) (string, error) {
	if err := cfg.validate(); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("apiKey", m.settings.APIKey)
	params.Set("walletAddress", cfg.WalletAddress)
	params.Set("currencyCode", orDefault(cfg.CryptoCurrency, "matic"))
	params.Set("baseCurrencyCode", orDefault(cfg.FiatCurrency, "usd"))
	params.Set("baseCurrencyAmount", cfg.fiatAmount())
	params.Set("defaultCryptoCurrency", "matic_polygon")
	params.Set("showWalletAddressForm", "false")
	params.Set("colorCode", m.settings.themeColor())

	base := moonPaySandboxURL
	if m.settings.Production {
		base = moonPayProductionURL
	}
	return base + "?" + params.Encode(), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
