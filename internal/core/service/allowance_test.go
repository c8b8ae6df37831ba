package service

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func wei(s string) *big.Int {
	n, _ := new(big.Int).SetString(s, 10)
	return n
}

func TestNeedsApproval(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		allowance *big.Int
		decimals  uint8
		want      bool
	}{
		{name: "no allowance", amount: "1", allowance: nil, decimals: 18, want: true},
		{name: "raw 500 vs 1000 tokens", amount: "1000", allowance: big.NewInt(500), decimals: 18, want: true},
		{name: "exact allowance", amount: "1000", allowance: wei("1000000000000000000000"), decimals: 18, want: false},
		{name: "larger allowance", amount: "0.5", allowance: wei("1000000000000000000"), decimals: 18, want: false},
		{name: "one wei short", amount: "1", allowance: wei("999999999999999999"), decimals: 18, want: true},
		{name: "malformed amount", amount: "12abc", allowance: wei("1000000000000000000000"), decimals: 18, want: true},
		{name: "empty amount", amount: "", allowance: wei("1"), decimals: 18, want: true},
		{name: "zero allowance zero amount", amount: "0", allowance: big.NewInt(0), decimals: 18, want: false},
		{name: "six decimals", amount: "2.5", allowance: big.NewInt(2_500_000), decimals: 6, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsApproval(tt.amount, tt.allowance, tt.decimals))
		})
	}
}
