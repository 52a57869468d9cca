// Package memory provides an in-memory implementation of the repository
// interfaces. It backs the test suites; the storage engine behind the
// repository interfaces is an implementation detail, and this one trades
// durability for zero setup.
package memory

import (
	"sync"

	"github.com/avolkov/minibank/internal/domain"
)

// Store holds all records and a single mutex that serializes mutations.
// A Tx obtained from TxManager holds the mutex until Commit or Rollback,
// which gives mutating ledger operations the same serialization the
// Postgres backend gets from row locks.
type Store struct {
	mu       sync.Mutex
	accounts []*domain.Account
	byIBAN   map[string]*domain.Account
	byID     map[string]*domain.Account
	users    []*domain.User
	byEmail  map[string]*domain.User
	txns     []*domain.Transaction
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		byIBAN:  make(map[string]*domain.Account),
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]*domain.User),
	}
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func cloneTransaction(t *domain.Transaction) *domain.Transaction {
	c := *t
	return &c
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}
