package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a balance change.
type TransactionKind string

const (
	KindDeposit          TransactionKind = "deposit"
	KindWithdraw         TransactionKind = "withdraw"
	KindTransferSent     TransactionKind = "transfer_sent"
	KindTransferReceived TransactionKind = "transfer_received"
)

// Transaction is an immutable record of one balance change. Records are
// append-only: never updated or deleted once written. BalanceAfter of the
// most recent transaction always equals the account's balance.
type Transaction struct {
	ID            string
	AccountID     string
	Kind          TransactionKind
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	SenderIBAN    string
	RecipientIBAN string
	CreatedAt     time.Time
}

// Statement is the ownership-checked view of an account: its current
// balance plus the full transaction history, most recent first.
type Statement struct {
	IBAN         string
	Balance      decimal.Decimal
	Transactions []*Transaction
}
