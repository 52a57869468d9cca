package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/minibank/internal/domain"
)

// AuthResponse carries a freshly issued session token.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	IBAN      string          `json:"iban"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		IBAN:      a.IBAN,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// CreateAccountResponse wraps a newly opened account.
type CreateAccountResponse struct {
	Success bool             `json:"success"`
	Account *AccountResponse `json:"account"`
}

// BalanceResponse reports the balance after a deposit or withdrawal.
type BalanceResponse struct {
	Success    bool            `json:"success"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// TransferResponse reports both balances after a transfer.
type TransferResponse struct {
	Success                 bool            `json:"success"`
	SenderUpdatedBalance    decimal.Decimal `json:"senderUpdatedBalance"`
	RecipientUpdatedBalance decimal.Decimal `json:"recipientUpdatedBalance"`
}

// TransactionResponse represents one ledger entry in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	SenderIBAN    string          `json:"senderIban,omitempty"`
	RecipientIBAN string          `json:"recipientIban,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Kind:          string(t.Kind),
		Amount:        t.Amount,
		BalanceAfter:  t.BalanceAfter,
		SenderIBAN:    t.SenderIBAN,
		RecipientIBAN: t.RecipientIBAN,
		CreatedAt:     t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// StatementResponse carries the balance and full history of an account.
type StatementResponse struct {
	IBAN         string                 `json:"iban"`
	Balance      decimal.Decimal        `json:"balance"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// StatementFromDomain converts a domain statement to a response.
func StatementFromDomain(s *domain.Statement) *StatementResponse {
	return &StatementResponse{
		IBAN:         s.IBAN,
		Balance:      s.Balance,
		Transactions: TransactionsFromDomain(s.Transactions),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
