package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regalium/regalium-core/internal/core/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"PRIVATE_KEY", "TOKEN_REGISTRY_FILE", "RPC_URL_POLYGON", "RPC_URL_ETHEREUM", "RPC_URL_MUMBAI"} {
		t.Setenv(k, "")
	}
	server = app{}

	var out bytes.Buffer
	cliApp := newCLI()
	cliApp.Writer = &out
	err := cliApp.Run(append([]string{"regalium"}, args...))
	return strings.TrimSpace(out.String()), err
}

func TestCLI_SwapURL(t *testing.T) {
	got, err := run(t, "swap-url", "--chain", "1", "--amount", "5", "uniswap")
	require.NoError(t, err)
	assert.Equal(t, "https://app.uniswap.org/swap?chain=ethereum&exactAmount=5&exactField=input&inputCurrency=NATIVE", got)

	got, err = run(t, "swap-url", "1inch")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "https://app.1inch.io/#/137/simple/swap/MATIC/0x"))

	got, err = run(t, "swap-url", "--in", "USDC", "--out", "MATIC", "uniswap")
	require.NoError(t, err)
	assert.Equal(t, "https://app.uniswap.org/swap?chain=polygon&inputCurrency=0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359&outputCurrency=MATIC", got)

	_, err = run(t, "swap-url", "uniswap", "--in", "USDC")
	assert.ErrorContains(t, err, "options must come before the provider")

	_, err = run(t, "swap-url", "sushiswap")
	assert.ErrorContains(t, err, "unknown swap provider")

	_, err = run(t, "swap-url", "--chain", "56")
	assert.ErrorIs(t, err, domain.ErrUnsupportedChain)
}

func TestCLI_OnRampURL(t *testing.T) {
	_, err := run(t, "onramp-url", "transak")
	assert.ErrorIs(t, err, domain.ErrMissingWalletAddress)

	got, err := run(t, "onramp-url", "--account", "0x742d35Cc6634C0532925a3b844Bc9e7595f2b21D", "--fiat-amount", "50", "transak")
	require.NoError(t, err)
	assert.Contains(t, got, "fiatAmount=50")
	assert.Contains(t, got, "walletAddress=0x742d35Cc6634C0532925a3b844Bc9e7595f2b21D")

	got, err = run(t, "onramp-url", "--account", "0x742d35cc6634c0532925a3b844bc9e7595f2b21d", "moonpay")
	require.NoError(t, err)
	assert.Contains(t, got, "walletAddress=0x742d35cc6634c0532925a3b844bc9e7595f2b21d")

	_, err = run(t, "onramp-url", "transak", "--fiat-amount", "50")
	assert.ErrorContains(t, err, "options must come before the provider")
}

func TestCLI_TokenBalance(t *testing.T) {
	const acct = "0x742d35Cc6634C0532925a3b844Bc9e7595f2b21D"

	_, err := run(t, "balance", "--account", acct, "--token", "DAI")
	assert.ErrorIs(t, err, domain.ErrUnknownToken)

	_, err = run(t, "balance", "--account", acct, "--token", "MATIC")
	assert.ErrorIs(t, err, domain.ErrNativeToken)

	// no RPC endpoint is configured, so the USDC read reaches the client
	_, err = run(t, "balance", "--account", acct, "--token", "USDC")
	assert.ErrorIs(t, err, domain.ErrNoBackend)
}

func TestCLI_EnvFile(t *testing.T) {
	_, err := run(t, "--env-file", filepath.Join(t.TempDir(), "missing.env"), "providers")
	assert.ErrorContains(t, err, "missing.env")
}

func TestCLI_Liquidity(t *testing.T) {
	_, err := run(t, "liquidity", "--chain", "1")
	assert.ErrorIs(t, err, domain.ErrNotDeployed)
}

func TestCLI_WriteWithoutKey(t *testing.T) {
	_, err := run(t, "claim")
	assert.ErrorIs(t, err, domain.ErrNoWallet)
}
