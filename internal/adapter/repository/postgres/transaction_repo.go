package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/minibank/internal/domain"
	"github.com/avolkov/minibank/internal/infrastructure/postgres/generated"
	"github.com/avolkov/minibank/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over the
// append-only transactions table.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create appends a transaction record inside the given database
// transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:            txn.ID,
		AccountID:     txn.AccountID,
		Kind:          string(txn.Kind),
		Amount:        decimalToNumeric(txn.Amount),
		BalanceAfter:  decimalToNumeric(txn.BalanceAfter),
		SenderIban:    textToPgText(txn.SenderIBAN),
		RecipientIban: textToPgText(txn.RecipientIBAN),
		CreatedAt:     timeToPgTimestamptz(txn.CreatedAt),
	})

	return err
}

// ListByAccount returns all transactions of an account, most recent first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, rowToTransaction(row))
	}

	return transactions, nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:            row.ID,
		AccountID:     row.AccountID,
		Kind:          domain.TransactionKind(row.Kind),
		Amount:        numericToDecimal(row.Amount),
		BalanceAfter:  numericToDecimal(row.BalanceAfter),
		SenderIBAN:    row.SenderIban.String,
		RecipientIBAN: row.RecipientIban.String,
		CreatedAt:     row.CreatedAt.Time,
	}
}
