package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regalium/regalium-core/pkg/chains"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"RPC_URL_POLYGON", "RPC_URL_ETHEREUM", "RPC_URL_MUMBAI", "PRIVATE_KEY",
		"MOONPAY_API_KEY", "MOONPAY_PRODUCTION", "TRANSAK_API_KEY", "TRANSAK_PRODUCTION",
		"THEME_COLOR", "TOKEN_REGISTRY_FILE", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.RPCURLs)
	assert.Equal(t, "pk_test_key", cfg.MoonPay.APIKey)
	assert.False(t, cfg.MoonPay.Production)
	assert.Equal(t, "#d4af37", cfg.MoonPay.ThemeColor)
	assert.Equal(t, "your-transak-api-key", cfg.Transak.APIKey)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NotNil(t, cfg.Registry)
	_, ok := cfg.Registry.TokenAddress(chains.Polygon)
	assert.True(t, ok)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RPC_URL_POLYGON", "https://polygon-rpc.com")
	t.Setenv("RPC_URL_MUMBAI", "https://rpc-mumbai.maticvigil.com")
	t.Setenv("MOONPAY_API_KEY", "pk_live_123")
	t.Setenv("MOONPAY_PRODUCTION", "true")
	t.Setenv("TRANSAK_PRODUCTION", "1")
	t.Setenv("THEME_COLOR", "#112233")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, map[chains.ID]string{
		chains.Polygon:       "https://polygon-rpc.com",
		chains.PolygonMumbai: "https://rpc-mumbai.maticvigil.com",
	}, cfg.RPCURLs)
	assert.Equal(t, "pk_live_123", cfg.MoonPay.APIKey)
	assert.True(t, cfg.MoonPay.Production)
	assert.True(t, cfg.Transak.Production)
	assert.Equal(t, "#112233", cfg.Transak.ThemeColor)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_InvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSAK_PRODUCTION", "sometimes")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "TRANSAK_PRODUCTION")
}

func TestFromEnv_RegistryFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "tokens.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[project.addresses]
137 = "0x0000000000000000000000000000000000000000"
`), 0600))
	t.Setenv("TOKEN_REGISTRY_FILE", path)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, path, cfg.RegistryFile)
	_, ok := cfg.Registry.TokenAddress(chains.Polygon)
	assert.False(t, ok)

	t.Setenv("TOKEN_REGISTRY_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	_, err = FromEnv()
	assert.ErrorContains(t, err, "failed to load token registry")
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("RPC_URL_ETHEREUM")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RPC_URL_ETHEREUM=https://eth.example\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://eth.example", cfg.RPCURLs[chains.Ethereum])
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "missing.env")

	_, err := Load(path)
	assert.ErrorContains(t, err, "missing.env")

	t.Chdir(t.TempDir())
	cfg, err := Load()
	require.NoError(t, err, "an absent implicit .env is fine")
	assert.Equal(t, "info", cfg.LogLevel)
}
