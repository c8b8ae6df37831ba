//go:build integration

package chain

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/tokens"
	"github.com/regalium/regalium-core/pkg/units"
)

// Run with:
//
//	TEST_RPC_URL_POLYGON=https://polygon-rpc.com go test -tags integration ./internal/adapters/chain/
var testRPCPolygon = envOrDefault("TEST_RPC_URL_POLYGON", "https://polygon-rpc.com")

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func TestIntegration_PolygonReads(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, closeAll, err := Dial(ctx, tokens.DefaultRegistry(), map[chains.ID]string{chains.Polygon: testRPCPolygon})
	require.NoError(t, err)
	defer closeAll()

	token, ok := c.ResolveToken(chains.Polygon)
	require.True(t, ok)

	decimals, err := c.Decimals(ctx, chains.Polygon, token)
	require.NoError(t, err)
	assert.Equal(t, uint8(18), decimals)

	symbol, err := c.Symbol(ctx, chains.Polygon, token)
	require.NoError(t, err)
	t.Logf("token %s symbol=%s", token.Hex(), symbol)

	vault, ok := c.ResolveStaking(chains.Polygon)
	require.True(t, ok)

	rate, err := c.RewardRatePerSecond(ctx, chains.Polygon, vault)
	require.NoError(t, err)
	t.Logf("vault %s rate=%s apy=%s%%", vault.Hex(), rate, units.APY(rate).StringFixed(2))
}
