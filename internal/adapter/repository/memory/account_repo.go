package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/minibank/internal/domain"
	"github.com/avolkov/minibank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository over a Store.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create inserts a new account. A duplicate IBAN fails with ErrIBANTaken.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.byIBAN[account.IBAN]; exists {
		return domain.ErrIBANTaken
	}

	stored := cloneAccount(account)
	r.store.accounts = append(r.store.accounts, stored)
	r.store.byIBAN[stored.IBAN] = stored
	r.store.byID[stored.ID] = stored

	return nil
}

// GetByIBAN retrieves an account by IBAN.
func (r *AccountRepository) GetByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.byIBAN[iban]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

// GetByIBANForUpdate retrieves an account inside a transaction. The
// caller already holds the store lock through tx.
func (r *AccountRepository) GetByIBANForUpdate(ctx context.Context, tx usecase.Transaction, iban string) (*domain.Account, error) {
	account, ok := r.store.byIBAN[iban]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

// GetByIBANsForUpdate retrieves the accounts that exist among ibans.
func (r *AccountRepository) GetByIBANsForUpdate(ctx context.Context, tx usecase.Transaction, ibans []string) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(ibans))
	for _, iban := range ibans {
		if account, ok := r.store.byIBAN[iban]; ok {
			accounts = append(accounts, cloneAccount(account))
		}
	}

	return accounts, nil
}

// UpdateBalance sets the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	account, ok := r.store.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	account.Balance = balance
	account.UpdatedAt = updatedAt

	return nil
}

// ListByUser returns the accounts owned by userID, oldest first.
func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var accounts []*domain.Account
	for _, account := range r.store.accounts {
		if account.UserID == userID {
			accounts = append(accounts, cloneAccount(account))
		}
	}

	return accounts, nil
}
