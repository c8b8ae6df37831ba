package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/regalium/regalium-core/internal/adapters/onramp"
	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/tokens"
)

// Config is everything read from the environment at start-up.
type Config struct {
	RPCURLs    map[chains.ID]string
	PrivateKey string
	MoonPay    onramp.Settings
	Transak    onramp.Settings
	LogLevel   string
	Registry   *tokens.Registry
	// RegistryFile is the TOML override in use, empty for the built-in table.
	RegistryFile string
}

// Load reads the named dotenv files and then the environment. Without names
// it tries ./.env, which may be absent; a named file that cannot be read is
// an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() (*Config, error) {
	theme := envOr("THEME_COLOR", onramp.DefaultThemeColor)

	moonpayProd, err := envBool("MOONPAY_PRODUCTION")
	if err != nil {
		return nil, err
	}
	transakProd, err := envBool("TRANSAK_PRODUCTION")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RPCURLs:    map[chains.ID]string{},
		PrivateKey: os.Getenv("PRIVATE_KEY"),
		MoonPay: onramp.Settings{
			APIKey:     envOr("MOONPAY_API_KEY", onramp.DefaultMoonPayKey),
			Production: moonpayProd,
			ThemeColor: theme,
		},
		Transak: onramp.Settings{
			APIKey:     envOr("TRANSAK_API_KEY", onramp.DefaultTransakKey),
			Production: transakProd,
			ThemeColor: theme,
		},
		LogLevel:     envOr("LOG_LEVEL", "info"),
		RegistryFile: os.Getenv("TOKEN_REGISTRY_FILE"),
	}

	for id, key := range map[chains.ID]string{
		chains.Polygon:       "RPC_URL_POLYGON",
		chains.Ethereum:      "RPC_URL_ETHEREUM",
		chains.PolygonMumbai: "RPC_URL_MUMBAI",
	} {
		if v := os.Getenv(key); v != "" {
			cfg.RPCURLs[id] = v
		}
	}

	if cfg.RegistryFile != "" {
		cfg.Registry, err = tokens.LoadFile(cfg.RegistryFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load token registry: %w", err)
		}
	} else {
		cfg.Registry = tokens.DefaultRegistry()
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
