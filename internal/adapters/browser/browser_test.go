package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	var o Opener = &r

	require.NoError(t, o.OpenURL("https://app.uniswap.org/swap?chain=polygon"))
	require.NoError(t, o.OpenURL("https://buy.moonpay.com?apiKey=pk"))

	assert.Equal(t, []string{
		"https://app.uniswap.org/swap?chain=polygon",
		"https://buy.moonpay.com?apiKey=pk",
	}, r.URLs)
}
