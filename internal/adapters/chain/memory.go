package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/regalium/regalium-core/pkg/contracts"
)

// MemoryCaller is an in-process ethereum.ContractCaller for offline runs. It
// decodes the method selector against the token and vault ABIs and
// ABI-encodes the canned outputs, so reads go through the full pack/unpack
// path without a node. Unset methods revert.
type MemoryCaller struct {
	mu      sync.Mutex
	abis    []abi.ABI
	results map[string][]interface{}
	calls   map[string]int
	err     error
	gate    chan struct{}
}

// NewMemoryCaller returns a caller with no canned results.
func NewMemoryCaller() *MemoryCaller {
	return &MemoryCaller{
		abis: []abi.ABI{
			contracts.MustParse(contracts.ParseERC20),
			contracts.MustParse(contracts.ParseStaking),
		},
		results: make(map[string][]interface{}),
		calls:   make(map[string]int),
	}
}

// Set registers the outputs returned for method on contract.
func (f *MemoryCaller) Set(contract common.Address, method string, outputs ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[memoryKey(contract, method)] = outputs
}

// FailWith makes every subsequent call return err.
func (f *MemoryCaller) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Hold blocks calls until Release is called.
func (f *MemoryCaller) Hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
}

// Release unblocks held calls.
func (f *MemoryCaller) Release() {
	f.mu.Lock()
	gate := f.gate
	f.gate = nil
	f.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

// Calls returns how many times method was invoked on any contract.
func (f *MemoryCaller) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (f *MemoryCaller) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *MemoryCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if msg.To == nil || len(msg.Data) < 4 {
		return nil, fmt.Errorf("malformed call")
	}
	method, err := f.method(msg.Data[:4])
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.calls[method.Name]++
	gate := f.gate
	failure := f.err
	outputs, ok := f.results[memoryKey(*msg.To, method.Name)]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if failure != nil {
		return nil, failure
	}
	if !ok {
		return nil, fmt.Errorf("execution reverted: no result for %s", method.Name)
	}
	return method.Outputs.Pack(outputs...)
}

func (f *MemoryCaller) method(selector []byte) (*abi.Method, error) {
	for _, parsed := range f.abis {
		if m, err := parsed.MethodById(selector); err == nil {
			return m, nil
		}
	}
	return nil, fmt.Errorf("unknown selector %x", selector)
}

func memoryKey(contract common.Address, method string) string {
	return contract.Hex() + "/" + method
}
