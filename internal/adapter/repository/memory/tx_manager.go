package memory

import (
	"context"

	"github.com/avolkov/minibank/internal/usecase"
)

// TxManager implements usecase.TransactionManager over a Store.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin acquires the store lock until Commit or Rollback.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.store.mu.Lock()
	return &Tx{store: m.store}, nil
}

// Tx serializes access to the Store. Writes are applied immediately;
// Commit and Rollback only release the lock.
type Tx struct {
	store *Store
	done  bool
}

// Commit releases the store lock.
func (t *Tx) Commit(ctx context.Context) error {
	t.release()
	return nil
}

// Rollback releases the store lock. It is a no-op after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	t.release()
	return nil
}

func (t *Tx) release() {
	if t.done {
		return
	}

	t.done = true
	t.store.mu.Unlock()
}
