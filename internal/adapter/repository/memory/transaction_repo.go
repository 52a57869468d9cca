package memory

import (
	"context"

	"github.com/avolkov/minibank/internal/domain"
	"github.com/avolkov/minibank/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over a
// Store. The log is append-only.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create appends a transaction record. The caller holds the store lock
// through tx.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	r.store.txns = append(r.store.txns, cloneTransaction(txn))
	return nil
}

// ListByAccount returns the account's transactions, most recent first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var transactions []*domain.Transaction
	for i := len(r.store.txns) - 1; i >= 0; i-- {
		if r.store.txns[i].AccountID == accountID {
			transactions = append(transactions, cloneTransaction(r.store.txns[i]))
		}
	}

	return transactions, nil
}
