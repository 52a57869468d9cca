package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateWithdrawal(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		amount      decimal.Decimal
		expectError bool
	}{
		{
			name:        "withdraw less than balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(30),
			expectError: false,
		},
		{
			name:        "withdraw exact balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "withdraw more than balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(150),
			expectError: true,
		},
		{
			name:        "withdraw from empty account",
			balance:     decimal.Zero,
			amount:      decimal.NewFromInt(1),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance}

			err := acc.ValidateWithdrawal(tt.amount)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ApplyDeposit(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(70)}
	newBalance := acc.ApplyDeposit(decimal.NewFromInt(30))

	expected := decimal.NewFromInt(100)
	if !newBalance.Equal(expected) {
		t.Errorf("expected balance %s, got %s", expected, newBalance)
	}
}

func TestAccount_ApplyWithdrawal(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}
	newBalance := acc.ApplyWithdrawal(decimal.NewFromInt(30))

	expected := decimal.NewFromInt(70)
	if !newBalance.Equal(expected) {
		t.Errorf("expected balance %s, got %s", expected, newBalance)
	}
}

func TestAccount_IsOwnedBy(t *testing.T) {
	acc := &Account{UserID: "user-a"}

	if !acc.IsOwnedBy("user-a") {
		t.Error("expected account to be owned by user-a")
	}

	if acc.IsOwnedBy("user-b") {
		t.Error("expected account not to be owned by user-b")
	}
}
