package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/minibank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByIBAN(ctx context.Context, iban string) (*domain.Account, error)
	GetByIBANForUpdate(ctx context.Context, tx Transaction, iban string) (*domain.Account, error)
	GetByIBANsForUpdate(ctx context.Context, tx Transaction, ibans []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Account, error)
}

// TransactionRepository defines data access for the append-only
// transaction log.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation when it fails with a transient conflict
// such as a deadlock or serialization failure.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CacheMetrics counts statement cache outcomes.
type CacheMetrics interface {
	StatementCacheHit()
	StatementCacheMiss()
}
