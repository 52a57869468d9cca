package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/avolkov/minibank/internal/adapter/http/dto"
	"github.com/avolkov/minibank/tests/testutil"
)

func TestConcurrentDeposits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	token := registerUser(t, router, "alice@example.com", "password123")
	createAccount(t, router, token, ibanDE)

	const workers = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := doJSON(t, router, http.MethodPost, "/account/deposit", token, map[string]any{
				"iban":   ibanDE,
				"amount": "1",
			})
			if w.Code != http.StatusOK {
				t.Errorf("deposit returned %d: %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	w := doJSON(t, router, http.MethodGet, "/account/statement?iban="+ibanDE, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("statement returned %d: %s", w.Code, w.Body.String())
	}

	var stmt dto.StatementResponse
	if err := json.Unmarshal(w.Body.Bytes(), &stmt); err != nil {
		t.Fatalf("failed to parse statement: %v", err)
	}
	if want := decimal.NewFromInt(workers); !stmt.Balance.Equal(want) {
		t.Errorf("balance = %s, want %s (no deposit may be lost)", stmt.Balance, want)
	}
	if len(stmt.Transactions) != workers {
		t.Errorf("transactions = %d, want %d", len(stmt.Transactions), workers)
	}
}

func TestConcurrentOpposingTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	aliceToken := registerUser(t, router, "alice@example.com", "password123")
	bobToken := registerUser(t, router, "bob@example.com", "password456")
	createAccount(t, router, aliceToken, ibanDE)
	createAccount(t, router, bobToken, ibanGB)

	for _, seed := range []struct {
		token, iban string
	}{
		{aliceToken, ibanDE},
		{bobToken, ibanGB},
	} {
		w := doJSON(t, router, http.MethodPost, "/account/deposit", seed.token, map[string]any{
			"iban":   seed.iban,
			"amount": "100",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("seed deposit returned %d: %s", w.Code, w.Body.String())
		}
	}

	// Opposing transfers lock the same two rows in opposite roles. Row
	// locks are taken in sorted IBAN order, so these must not deadlock.
	const rounds = 10

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			w := doJSON(t, router, http.MethodPost, "/account/transfer", aliceToken, map[string]any{
				"fromIban": ibanDE,
				"toIban":   ibanGB,
				"amount":   "1",
			})
			if w.Code != http.StatusOK {
				t.Errorf("alice transfer returned %d: %s", w.Code, w.Body.String())
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			w := doJSON(t, router, http.MethodPost, "/account/transfer", bobToken, map[string]any{
				"fromIban": ibanGB,
				"toIban":   ibanDE,
				"amount":   "1",
			})
			if w.Code != http.StatusOK {
				t.Errorf("bob transfer returned %d: %s", w.Code, w.Body.String())
			}
		}
	}()
	wg.Wait()

	// Equal numbers of opposing transfers cancel out, and the total is
	// conserved either way.
	total := decimal.Zero
	for _, acc := range []struct {
		token, iban string
	}{
		{aliceToken, ibanDE},
		{bobToken, ibanGB},
	} {
		w := doJSON(t, router, http.MethodGet, "/account/statement?iban="+acc.iban, acc.token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("statement returned %d: %s", w.Code, w.Body.String())
		}

		var stmt dto.StatementResponse
		if err := json.Unmarshal(w.Body.Bytes(), &stmt); err != nil {
			t.Fatalf("failed to parse statement: %v", err)
		}
		if want := decimal.NewFromInt(100); !stmt.Balance.Equal(want) {
			t.Errorf("%s balance = %s, want %s", acc.iban, stmt.Balance, want)
		}
		total = total.Add(stmt.Balance)
	}
	if want := decimal.NewFromInt(200); !total.Equal(want) {
		t.Errorf("total balance = %s, want %s", total, want)
	}
}
