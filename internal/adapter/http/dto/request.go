package dto

import (
	"github.com/shopspring/decimal"

	"github.com/avolkov/minibank/internal/usecase"
)

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	IBAN string `json:"iban"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(callerID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		IBAN:   r.IBAN,
		UserID: callerID,
	}
}

// DepositRequest represents a deposit request.
type DepositRequest struct {
	IBAN   string          `json:"iban"`
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput(callerID string) usecase.DepositInput {
	return usecase.DepositInput{
		IBAN:     r.IBAN,
		Amount:   r.Amount,
		CallerID: callerID,
	}
}

// WithdrawRequest represents a withdrawal request.
type WithdrawRequest struct {
	IBAN   string          `json:"iban"`
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput(callerID string) usecase.WithdrawInput {
	return usecase.WithdrawInput{
		IBAN:     r.IBAN,
		Amount:   r.Amount,
		CallerID: callerID,
	}
}

// TransferRequest represents a transfer request.
type TransferRequest struct {
	FromIBAN string          `json:"fromIban"`
	ToIBAN   string          `json:"toIban"`
	Amount   decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(callerID string) usecase.TransferInput {
	return usecase.TransferInput{
		FromIBAN: r.FromIBAN,
		ToIBAN:   r.ToIBAN,
		Amount:   r.Amount,
		CallerID: callerID,
	}
}
