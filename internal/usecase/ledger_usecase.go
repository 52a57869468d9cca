package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/minibank/internal/domain"
)

const statementCachePrefix = "statement:"

// LedgerUseCase owns account balances and the transaction log. Every
// mutation runs inside a database transaction that locks the affected
// account rows, so concurrent operations against the same account are
// serialized at the storage layer.
type LedgerUseCase struct {
	txManager    TransactionManager
	retrier      Retrier
	accountRepo  AccountRepository
	txnRepo      TransactionRepository
	idGen        IDGenerator
	cache        Cache
	cacheTTL     time.Duration
	cacheMetrics CacheMetrics
}

// LedgerOption configures optional LedgerUseCase collaborators.
type LedgerOption func(*LedgerUseCase)

// WithRetrier installs a conflict-retry policy around mutating
// transactions.
func WithRetrier(r Retrier) LedgerOption {
	return func(uc *LedgerUseCase) {
		uc.retrier = r
	}
}

// WithStatementCache caches statement reads until the next mutation of
// the account.
func WithStatementCache(c Cache, ttl time.Duration) LedgerOption {
	return func(uc *LedgerUseCase) {
		uc.cache = c
		uc.cacheTTL = ttl
	}
}

// WithCacheMetrics records a hit or miss for every statement cache
// lookup.
func WithCacheMetrics(m CacheMetrics) LedgerOption {
	return func(uc *LedgerUseCase) {
		uc.cacheMetrics = m
	}
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	opts ...LedgerOption,
) *LedgerUseCase {
	uc := &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	IBAN   string
	UserID string
}

// CreateAccount creates a new account with a zero balance. The IBAN is
// normalized, checksum-validated and must not already exist.
func (uc *LedgerUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	iban := domain.NormalizeIBAN(input.IBAN)
	if !domain.IsValidIBAN(iban) {
		return nil, domain.ErrInvalidIBAN
	}

	existing, err := uc.accountRepo.GetByIBAN(ctx, iban)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrIBANTaken
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		IBAN:      iban,
		UserID:    input.UserID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The repository maps a unique-constraint violation to ErrIBANTaken,
	// closing the race between the existence check and the insert.
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	IBAN     string
	Amount   decimal.Decimal
	CallerID string
}

// Deposit credits an account owned by the caller and appends a deposit
// transaction. Returns the new balance.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input DepositInput) (decimal.Decimal, error) {
	return uc.applyEntry(ctx, input.IBAN, input.CallerID, domain.KindDeposit, input.Amount)
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	IBAN     string
	Amount   decimal.Decimal
	CallerID string
}

// Withdraw debits an account owned by the caller and appends a withdraw
// transaction. Fails with ErrInsufficientBalance if the amount exceeds
// the balance; on failure no state is changed.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (decimal.Decimal, error) {
	return uc.applyEntry(ctx, input.IBAN, input.CallerID, domain.KindWithdraw, input.Amount)
}

func (uc *LedgerUseCase) applyEntry(ctx context.Context, rawIBAN, callerID string, kind domain.TransactionKind, amount decimal.Decimal) (decimal.Decimal, error) {
	iban := domain.NormalizeIBAN(rawIBAN)

	if err := domain.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}

	var newBalance decimal.Decimal

	err := uc.withRetry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByIBANForUpdate(ctx, tx, iban)
		if err != nil {
			return err
		}

		if !account.IsOwnedBy(callerID) {
			return domain.ErrNotAccountOwner
		}

		switch kind {
		case domain.KindDeposit:
			newBalance = account.ApplyDeposit(amount)
		case domain.KindWithdraw:
			if err := account.ValidateWithdrawal(amount); err != nil {
				return err
			}
			newBalance = account.ApplyWithdrawal(amount)
		default:
			return fmt.Errorf("unsupported transaction kind %q", kind)
		}

		now := time.Now().UTC()

		txn := &domain.Transaction{
			ID:           uc.idGen.Generate(),
			AccountID:    account.ID,
			Kind:         kind,
			Amount:       amount,
			BalanceAfter: newBalance,
			CreatedAt:    now,
		}

		if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return decimal.Zero, err
	}

	uc.invalidateStatement(ctx, iban)

	return newBalance, nil
}

// TransferInput represents input for a transfer between two accounts.
type TransferInput struct {
	FromIBAN string
	ToIBAN   string
	Amount   decimal.Decimal
	CallerID string
}

// TransferResult carries both updated balances after a transfer.
type TransferResult struct {
	SenderBalance    decimal.Decimal
	RecipientBalance decimal.Decimal
}

// Transfer moves amount from the caller's account to the recipient
// account. Both balance updates and both transaction records are applied
// in a single database transaction; the two rows are locked in sorted
// IBAN order to prevent deadlocks between concurrent transfers.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (TransferResult, error) {
	fromIBAN := domain.NormalizeIBAN(input.FromIBAN)
	toIBAN := domain.NormalizeIBAN(input.ToIBAN)

	if fromIBAN == toIBAN {
		return TransferResult{}, domain.ErrSameAccount
	}

	if !domain.IsValidIBAN(toIBAN) {
		return TransferResult{}, domain.ErrInvalidIBAN
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return TransferResult{}, err
	}

	ibans := []string{fromIBAN, toIBAN}
	sort.Strings(ibans)

	var result TransferResult

	err := uc.withRetry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		accounts, err := uc.accountRepo.GetByIBANsForUpdate(ctx, tx, ibans)
		if err != nil {
			return err
		}

		var sender, recipient *domain.Account
		for _, a := range accounts {
			switch a.IBAN {
			case fromIBAN:
				sender = a
			case toIBAN:
				recipient = a
			}
		}

		if sender == nil {
			return fmt.Errorf("sender: %w", domain.ErrAccountNotFound)
		}

		if !sender.IsOwnedBy(input.CallerID) {
			return domain.ErrNotAccountOwner
		}

		if recipient == nil {
			return fmt.Errorf("recipient: %w", domain.ErrAccountNotFound)
		}

		if err := sender.ValidateWithdrawal(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()
		senderBalance := sender.ApplyWithdrawal(input.Amount)
		recipientBalance := recipient.ApplyDeposit(input.Amount)

		// Both legs record the true sender and recipient IBANs.
		sentTxn := &domain.Transaction{
			ID:            uc.idGen.Generate(),
			AccountID:     sender.ID,
			Kind:          domain.KindTransferSent,
			Amount:        input.Amount,
			BalanceAfter:  senderBalance,
			SenderIBAN:    sender.IBAN,
			RecipientIBAN: recipient.IBAN,
			CreatedAt:     now,
		}

		receivedTxn := &domain.Transaction{
			ID:            uc.idGen.Generate(),
			AccountID:     recipient.ID,
			Kind:          domain.KindTransferReceived,
			Amount:        input.Amount,
			BalanceAfter:  recipientBalance,
			SenderIBAN:    sender.IBAN,
			RecipientIBAN: recipient.IBAN,
			CreatedAt:     now,
		}

		if err := uc.txnRepo.Create(ctx, tx, sentTxn); err != nil {
			return err
		}

		if err := uc.txnRepo.Create(ctx, tx, receivedTxn); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, sender.ID, senderBalance, now); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, recipient.ID, recipientBalance, now); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result = TransferResult{
			SenderBalance:    senderBalance,
			RecipientBalance: recipientBalance,
		}

		return nil
	})
	if err != nil {
		return TransferResult{}, err
	}

	uc.invalidateStatement(ctx, fromIBAN)
	uc.invalidateStatement(ctx, toIBAN)

	return result, nil
}

// GetStatement returns the current balance and the full transaction
// history of the account, most recent first. Only the owner may read it.
func (uc *LedgerUseCase) GetStatement(ctx context.Context, rawIBAN, callerID string) (*domain.Statement, error) {
	iban := domain.NormalizeIBAN(rawIBAN)

	account, err := uc.accountRepo.GetByIBAN(ctx, iban)
	if err != nil {
		return nil, err
	}

	if !account.IsOwnedBy(callerID) {
		return nil, domain.ErrNotAccountOwner
	}

	// The cache is consulted only after the ownership check passed.
	if cached := uc.cachedStatement(ctx, iban); cached != nil {
		return cached, nil
	}

	transactions, err := uc.txnRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	// The account row and the transaction list are read in two separate
	// queries, so a write landing between them could make the stale row
	// disagree with the list. The newest entry's balance is authoritative.
	balance := account.Balance
	if len(transactions) > 0 {
		balance = transactions[0].BalanceAfter
	}

	statement := &domain.Statement{
		IBAN:         account.IBAN,
		Balance:      balance,
		Transactions: transactions,
	}

	uc.cacheStatement(ctx, iban, statement)

	return statement, nil
}

// ListAccounts returns all accounts owned by the caller, oldest first.
func (uc *LedgerUseCase) ListAccounts(ctx context.Context, callerID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByUser(ctx, callerID)
}

func (uc *LedgerUseCase) withRetry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

func (uc *LedgerUseCase) cachedStatement(ctx context.Context, iban string) *domain.Statement {
	if uc.cache == nil {
		return nil
	}

	raw, err := uc.cache.Get(ctx, statementCachePrefix+iban)
	if err != nil || raw == nil {
		uc.recordCacheMiss()
		return nil
	}

	var statement domain.Statement
	if err := json.Unmarshal(raw, &statement); err != nil {
		uc.recordCacheMiss()
		return nil
	}

	uc.recordCacheHit()

	return &statement
}

func (uc *LedgerUseCase) recordCacheHit() {
	if uc.cacheMetrics != nil {
		uc.cacheMetrics.StatementCacheHit()
	}
}

func (uc *LedgerUseCase) recordCacheMiss() {
	if uc.cacheMetrics != nil {
		uc.cacheMetrics.StatementCacheMiss()
	}
}

func (uc *LedgerUseCase) cacheStatement(ctx context.Context, iban string, statement *domain.Statement) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(statement)
	if err != nil {
		return
	}

	_ = uc.cache.Set(ctx, statementCachePrefix+iban, raw, uc.cacheTTL)
}

func (uc *LedgerUseCase) invalidateStatement(ctx context.Context, iban string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, statementCachePrefix+iban)
}
