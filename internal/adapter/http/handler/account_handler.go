package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/avolkov/minibank/internal/adapter/http/dto"
	"github.com/avolkov/minibank/internal/adapter/http/middleware"
	"github.com/avolkov/minibank/internal/domain"
	"github.com/avolkov/minibank/internal/infrastructure/metrics"
	"github.com/avolkov/minibank/internal/usecase"
)

// LedgerService defines the behavior needed by AccountHandler.
type LedgerService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	Deposit(ctx context.Context, input usecase.DepositInput) (decimal.Decimal, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (decimal.Decimal, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (usecase.TransferResult, error)
	GetStatement(ctx context.Context, iban, callerID string) (*domain.Statement, error)
	ListAccounts(ctx context.Context, callerID string) ([]*domain.Account, error)
}

var _ LedgerService = (*usecase.LedgerUseCase)(nil)

// AccountHandler handles account and ledger HTTP requests.
type AccountHandler struct {
	ledgerUC LedgerService
	metrics  *metrics.Metrics
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledgerUC LedgerService, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{
		ledgerUC: ledgerUC,
		metrics:  m,
	}
}

// Create opens a new account for the caller.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.ledgerUC.CreateAccount(r.Context(), req.ToUseCaseInput(caller.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccountsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.CreateAccountResponse{
		Success: true,
		Account: dto.AccountFromDomain(account),
	})
}

// List returns all accounts owned by the caller, oldest first.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	accounts, err := h.ledgerUC.ListAccounts(r.Context(), caller.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Deposit credits the caller's account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	newBalance, err := h.ledgerUC.Deposit(r.Context(), req.ToUseCaseInput(caller.ID))
	if err != nil {
		h.countOperationError("deposit", err)
		writeError(w, mapDomainError(err), "deposit failed", err.Error())
		return
	}

	h.countOperation("deposit")

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		Success:    true,
		NewBalance: newBalance,
	})
}

// Withdraw debits the caller's account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	newBalance, err := h.ledgerUC.Withdraw(r.Context(), req.ToUseCaseInput(caller.ID))
	if err != nil {
		h.countOperationError("withdraw", err)
		writeError(w, mapDomainError(err), "withdrawal failed", err.Error())
		return
	}

	h.countOperation("withdraw")

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		Success:    true,
		NewBalance: newBalance,
	})
}

// Transfer moves money from the caller's account to another account.
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerUC.Transfer(r.Context(), req.ToUseCaseInput(caller.ID))
	if err != nil {
		h.countOperationError("transfer", err)
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.TransfersCreated.Inc()
		amount, _ := req.Amount.Float64()
		h.metrics.TransferAmount.Observe(amount)
	}
	h.countOperation("transfer")

	writeJSON(w, http.StatusOK, dto.TransferResponse{
		Success:                 true,
		SenderUpdatedBalance:    result.SenderBalance,
		RecipientUpdatedBalance: result.RecipientBalance,
	})
}

// Statement returns the balance and full transaction history of one of
// the caller's accounts.
func (h *AccountHandler) Statement(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	iban := r.URL.Query().Get("iban")
	if iban == "" {
		writeError(w, http.StatusBadRequest, "missing iban query parameter", "")
		return
	}

	statement, err := h.ledgerUC.GetStatement(r.Context(), iban, caller.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}

func (h *AccountHandler) countOperation(operation string) {
	if h.metrics != nil {
		h.metrics.AccountOperations.WithLabelValues(operation).Inc()
	}
}

func (h *AccountHandler) countOperationError(operation string, err error) {
	if h.metrics != nil {
		h.metrics.OperationErrors.WithLabelValues(operation, errorType(err)).Inc()
	}
}

func errorType(err error) string {
	switch mapDomainError(err) {
	case http.StatusBadRequest:
		return "validation"
	case http.StatusUnauthorized, http.StatusForbidden:
		return "authorization"
	default:
		return "internal"
	}
}
