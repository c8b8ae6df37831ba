package price

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var token = common.HexToAddress("0x3772127acbd138f86fabcb2341860956b9190346")

func newTestService(t *testing.T, status int, body string) *DexScreenerService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/dex/tokens/"+token.Hex(), r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	s := NewDexScreenerService()
	s.baseURL = srv.URL
	return s
}

func TestFixed(t *testing.T) {
	rate, err := PlaceholderRate.USDRate(context.Background(), "polygon", token)
	require.NoError(t, err)
	assert.Equal(t, "0.5", rate.String())
	assert.Equal(t, "placeholder", PlaceholderRate.Name())
}

func TestDexScreener_PicksChainPair(t *testing.T) {
	s := newTestService(t, http.StatusOK, `{"pairs":[
		{"chainId":"ethereum","priceUsd":"9.99"},
		{"chainId":"polygon","priceUsd":"0.4213"}
	]}`)

	rate, err := s.USDRate(context.Background(), "polygon", token)
	require.NoError(t, err)
	assert.Equal(t, "0.4213", rate.String())
}

func TestDexScreener_NoPairs(t *testing.T) {
	s := newTestService(t, http.StatusOK, `{"pairs":null}`)

	_, err := s.USDRate(context.Background(), "polygon", token)
	assert.ErrorIs(t, err, ErrNoPairs)
}

func TestDexScreener_Errors(t *testing.T) {
	s := newTestService(t, http.StatusTooManyRequests, ``)
	_, err := s.USDRate(context.Background(), "polygon", token)
	assert.ErrorContains(t, err, "429")

	s = newTestService(t, http.StatusOK, `{"pairs":[{"chainId":"polygon","priceUsd":"n/a"}]}`)
	_, err = s.USDRate(context.Background(), "polygon", token)
	assert.ErrorContains(t, err, "failed to parse price")
}
