package jsonfile

import (
	"context"
	"sync"
)

// TxManager serializes multi-step operations against the store. The file
// backend has no real transactions; RunInTx only guarantees that two
// multi-repo operations never interleave. A failure mid-way is not rolled
// back.
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager creates a new TxManager.
func NewTxManager() *TxManager {
	return &TxManager{}
}

// RunInTx executes fn under the operation lock.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
