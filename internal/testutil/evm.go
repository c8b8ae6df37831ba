package testutil

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/contracts"
)

// SentTx records a transaction submitted through FakeWallet.
type SentTx struct {
	To     common.Address
	Data   []byte
	Method string
}

// FakeWallet records submitted transactions instead of signing them.
type FakeWallet struct {
	mu      sync.Mutex
	account common.Address
	chainID chains.ID
	sent    []SentTx
	abis    []abi.ABI
	err     error
}

// NewFakeWallet returns a wallet connected as account on chainID.
func NewFakeWallet(account common.Address, chainID chains.ID) *FakeWallet {
	return &FakeWallet{
		account: account,
		chainID: chainID,
		abis: []abi.ABI{
			contracts.MustParse(contracts.ParseERC20),
			contracts.MustParse(contracts.ParseStaking),
		},
	}
}

// Reject makes subsequent submissions fail with err, as a user rejection would.
func (w *FakeWallet) Reject(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}

func (w *FakeWallet) Address() common.Address { return w.account }

func (w *FakeWallet) ChainID() chains.ID { return w.chainID }

func (w *FakeWallet) SendTransaction(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return common.Hash{}, w.err
	}

	name := ""
	if len(data) >= 4 {
		for _, parsed := range w.abis {
			if m, err := parsed.MethodById(data[:4]); err == nil {
				name = m.Name
				break
			}
		}
	}
	w.sent = append(w.sent, SentTx{To: to, Data: append([]byte(nil), data...), Method: name})

	var hash common.Hash
	binary.BigEndian.PutUint64(hash[24:], uint64(len(w.sent)))
	return hash, nil
}

// Sent returns the submitted transactions in order.
func (w *FakeWallet) Sent() []SentTx {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]SentTx(nil), w.sent...)
}
