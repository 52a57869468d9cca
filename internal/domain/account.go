package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a bank account identified by an IBAN. An account
// belongs to exactly one user; ownership never changes after creation.
type Account struct {
	ID        string
	IBAN      string
	UserID    string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy reports whether the account belongs to the given user.
func (a *Account) IsOwnedBy(userID string) bool {
	return a.UserID == userID
}

// ValidateWithdrawal checks that the account holds at least amount.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDeposit returns the balance after crediting amount.
func (a *Account) ApplyDeposit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// ApplyWithdrawal returns the balance after debiting amount.
func (a *Account) ApplyWithdrawal(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}
