package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adaptershttp "github.com/avolkov/minibank/internal/adapter/http"
	"github.com/avolkov/minibank/internal/adapter/http/dto"
	"github.com/avolkov/minibank/internal/adapter/http/handler"
	"github.com/avolkov/minibank/internal/adapter/repository/postgres"
	redisrepo "github.com/avolkov/minibank/internal/adapter/repository/redis"
	"github.com/avolkov/minibank/internal/infrastructure/auth"
	infraredis "github.com/avolkov/minibank/internal/infrastructure/redis"
	"github.com/avolkov/minibank/internal/usecase"
	"github.com/avolkov/minibank/tests/testutil"
)

const testJWTSecret = "integration-secret"

// newTestRouter wires the full HTTP stack against the test database and
// a local redis instance.
func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop())
	cache := redisrepo.NewCache(redisClient)

	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, txnRepo, idGen,
		usecase.WithRetrier(retrier),
		usecase.WithStatementCache(cache, time.Minute),
	)
	authUC := usecase.NewAuthUseCase(userRepo, idGen, 4)

	jwtManager := auth.NewJWTManager(testJWTSecret, time.Hour)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(authUC, jwtManager, nil),
		AccountHandler: handler.NewAccountHandler(ledgerUC, nil),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),
		JWTManager:     jwtManager,
		Logger:         zerolog.Nop(),
	})
}

// doJSON performs a request against the router and returns the recorder.
func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reqBody)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

// registerUser registers a fresh user over the API and returns its token.
func registerUser(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}

	var resp dto.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse register response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("register returned an empty access token")
	}
	return resp.AccessToken
}

// createAccount opens an account over the API.
func createAccount(t *testing.T, router http.Handler, token, iban string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/account/create", token, map[string]string{
		"iban": iban,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create account returned %d: %s", w.Code, w.Body.String())
	}
}
