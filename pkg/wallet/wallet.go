package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/regalium/regalium-core/pkg/chains"
)

// Wallet is the connected wallet provider: it knows the current account and
// network and submits transactions on the caller's behalf.
type Wallet interface {
	Address() common.Address
	ChainID() chains.ID
	// SendTransaction submits a call to `to` and returns as soon as the
	// transaction is accepted by the node. It does not wait for inclusion.
	SendTransaction(ctx context.Context, to common.Address, data []byte) (common.Hash, error)
}

// Backend is the node surface a KeyedWallet needs. *ethclient.Client satisfies it.
type Backend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// ReceiptReader fetches transaction receipts.
type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// KeyedWallet signs with a local private key and submits over RPC.
type KeyedWallet struct {
	backend    Backend
	closer     func()
	chainID    *big.Int
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// Dial connects to rpcEndpoint and builds a wallet for privateKeyHex. The
// chain ID is read from the node.
func Dial(ctx context.Context, rpcEndpoint, privateKeyHex string) (*KeyedWallet, error) {
	client, err := ethclient.DialContext(ctx, rpcEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	w, err := New(client, chainID, privateKeyHex)
	if err != nil {
		client.Close()
		return nil, err
	}
	w.closer = client.Close
	return w, nil
}

// New builds a wallet over an existing backend.
func New(backend Backend, chainID *big.Int, privateKeyHex string) (*KeyedWallet, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	publicKeyECDSA, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("failed to derive public key")
	}

	return &KeyedWallet{
		backend:    backend,
		chainID:    new(big.Int).Set(chainID),
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(*publicKeyECDSA),
	}, nil
}

// Close releases the RPC connection if the wallet owns one.
func (w *KeyedWallet) Close() {
	if w.closer != nil {
		w.closer()
	}
}

// Address returns the signing account.
func (w *KeyedWallet) Address() common.Address {
	return w.address
}

// ChainID returns the network the wallet signs for.
func (w *KeyedWallet) ChainID() chains.ID {
	return chains.ID(w.chainID.Uint64())
}

// SendTransaction signs and submits a zero-value call.
func (w *KeyedWallet) SendTransaction(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	nonce, err := w.backend.PendingNonceAt(ctx, w.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := w.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get gas price: %w", err)
	}

	// Estimation also surfaces reverts before anything is signed.
	estimatedGas, err := w.backend.EstimateGas(ctx, ethereum.CallMsg{
		From: w.address,
		To:   &to,
		Data: data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("transaction would revert: %w", err)
	}
	gasLimit := estimatedGas * 120 / 100

	tx := types.NewTransaction(nonce, to, big.NewInt(0), gasLimit, gasPrice, data)

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(w.chainID), w.privateKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := w.backend.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash(), nil
}

// ErrNoReceipts is returned when the wallet's backend cannot look up receipts.
var ErrNoReceipts = errors.New("backend does not serve transaction receipts")

// TransactionReceipt looks up a receipt through the wallet's own backend, so a
// KeyedWallet can be passed to WaitForReceipt.
func (w *KeyedWallet) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	r, ok := w.backend.(ReceiptReader)
	if !ok {
		return nil, ErrNoReceipts
	}
	return r.TransactionReceipt(ctx, txHash)
}

// WaitForReceipt polls until the receipt for txHash is available or ctx ends.
// Submission never calls this; it is for callers that choose to wait.
func WaitForReceipt(ctx context.Context, r ReceiptReader, txHash common.Hash, interval time.Duration) (*types.Receipt, error) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			receipt, err := r.TransactionReceipt(ctx, txHash)
			if err == nil {
				return receipt, nil
			}
			if !errors.Is(err, ethereum.NotFound) {
				return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
			}
		}
	}
}
