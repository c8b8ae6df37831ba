package onramp

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regalium/regalium-core/internal/adapters/browser"
	"github.com/regalium/regalium-core/internal/core/domain"
)

const wallet = "0x742d35Cc6634C0532925a3b844Bc9e7595f2b21D"

func parse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestMoonPay_Defaults(t *testing.T) {
	got, err := NewMoonPay(Settings{}).URL(Config{WalletAddress: wallet})
	require.NoError(t, err)

	u := parse(t, got)
	assert.Equal(t, "buy-sandbox.moonpay.com", u.Host)
	q := u.Query()
	assert.Equal(t, "pk_test_key", q.Get("apiKey"))
	assert.Equal(t, wallet, q.Get("walletAddress"))
	assert.Equal(t, "matic", q.Get("currencyCode"))
	assert.Equal(t, "usd", q.Get("baseCurrencyCode"))
	assert.Equal(t, "100", q.Get("baseCurrencyAmount"))
	assert.Equal(t, "matic_polygon", q.Get("defaultCryptoCurrency"))
	assert.Equal(t, "false", q.Get("showWalletAddressForm"))
	assert.Equal(t, "#d4af37", q.Get("colorCode"))
}

func TestMoonPay_Production(t *testing.T) {
	m := NewMoonPay(Settings{APIKey: "pk_live_abc", Production: true, ThemeColor: "#000000"})
	got, err := m.URL(Config{
		WalletAddress:  wallet,
		FiatCurrency:   "eur",
		FiatAmount:     decimal.RequireFromString("250.50"),
		CryptoCurrency: "eth",
	})
	require.NoError(t, err)

	u := parse(t, got)
	assert.Equal(t, "buy.moonpay.com", u.Host)
	q := u.Query()
	assert.Equal(t, "pk_live_abc", q.Get("apiKey"))
	assert.Equal(t, "eur", q.Get("baseCurrencyCode"))
	assert.Equal(t, "250.5", q.Get("baseCurrencyAmount"))
	assert.Equal(t, "eth", q.Get("currencyCode"))
	assert.Equal(t, "#000000", q.Get("colorCode"))
}

func TestTransak_Defaults(t *testing.T) {
	got, err := NewTransak(Settings{}).URL(Config{WalletAddress: wallet})
	require.NoError(t, err)

	want := "https://global-stg.transak.com?apiKey=your-transak-api-key" +
		"&cryptoCurrencyCode=MATIC&disableWalletAddressForm=true&fiatAmount=100" +
		"&fiatCurrency=USD&hideMenu=true&network=polygon&themeColor=d4af37" +
		"&walletAddress=" + wallet
	assert.Equal(t, want, got)
}

func TestTransak_Overrides(t *testing.T) {
	tr := NewTransak(Settings{APIKey: "key", Production: true})
	got, err := tr.URL(Config{WalletAddress: wallet, Network: "ethereum", CryptoCurrency: "ETH", FiatCurrency: "GBP"})
	require.NoError(t, err)

	u := parse(t, got)
	assert.Equal(t, "global.transak.com", u.Host)
	q := u.Query()
	assert.Equal(t, "ethereum", q.Get("network"))
	assert.Equal(t, "ETH", q.Get("cryptoCurrencyCode"))
	assert.Equal(t, "GBP", q.Get("fiatCurrency"))
}

func TestWalletAddressRequired(t *testing.T) {
	for _, p := range Providers(Settings{}, Settings{}) {
		t.Run(p.Info().ID, func(t *testing.T) {
			_, err := p.URL(Config{})
			assert.ErrorIs(t, err, domain.ErrMissingWalletAddress)

			_, err = p.URL(Config{WalletAddress: "not-an-address"})
			assert.ErrorIs(t, err, ErrInvalidWalletAddress)
		})
	}
}

func TestDeterministic(t *testing.T) {
	cfg := Config{WalletAddress: wallet, FiatAmount: decimal.NewFromInt(75)}
	for _, p := range Providers(Settings{}, Settings{}) {
		first, err := p.URL(cfg)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := p.URL(cfg)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestOpen(t *testing.T) {
	var rec browser.Recorder

	_, err := Open(NewTransak(Settings{}), Config{}, &rec)
	assert.Error(t, err)
	assert.Empty(t, rec.URLs)

	got, err := Open(NewMoonPay(Settings{}), Config{WalletAddress: wallet}, &rec)
	require.NoError(t, err)
	assert.Equal(t, []string{got}, rec.URLs)
}

func TestCatalogue(t *testing.T) {
	ps := Providers(Settings{}, Settings{})
	require.Len(t, ps, 2)
	assert.Equal(t, "1-4.5%", ps[0].Info().Fees)
	assert.Equal(t, []string{"card", "bank", "sepa", "upi"}, ps[1].Info().SupportedMethods)
}
