package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"moneytrack/internal/auth"
	"moneytrack/internal/finance"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestClient(t *testing.T, baseURL string, tokens auth.Tokens) (*Client, *auth.Store) {
	t.Helper()
	store, err := auth.NewStore(filepath.Join(t.TempDir(), "tokens.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if tokens != (auth.Tokens{}) {
		if err := store.Set(tokens); err != nil {
			t.Fatalf("seeding tokens: %v", err)
		}
	}
	return NewClient(baseURL, store, WithLogger(quietLogger())), store
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"financial_data": finance.FinancialData{Balance: 10},
		})
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, auth.Tokens{Access: "acc", Refresh: "ref"})
	data, err := c.FinancialData(context.Background())
	if err != nil {
		t.Fatalf("FinancialData: %v", err)
	}
	if gotAuth != "Bearer acc" {
		t.Fatalf("Authorization = %q, want Bearer acc", gotAuth)
	}
	if data.Balance != 10 {
		t.Fatalf("Balance = %.2f, want 10", data.Balance)
	}
}

func TestNoTokenIsNotAnError(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization") != ""
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, auth.Tokens{})
	if err := c.RequestPasswordReset(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if sawAuth {
		t.Fatal("request without a stored token must not carry Authorization")
	}
}

func TestRetryOnceAfterRefresh(t *testing.T) {
	var dataCalls, refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/financial_data/", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&dataCalls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		if n < 2 {
			t.Errorf("fresh token on call %d, expected a first rejected call", n)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"financial_data": finance.FinancialData{Balance: 42},
		})
	})
	mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		var req struct {
			Refresh string `json:"refresh"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Refresh != "ref" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad refresh"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, store := newTestClient(t, srv.URL, auth.Tokens{Access: "stale", Refresh: "ref"})
	data, err := c.FinancialData(context.Background())
	if err != nil {
		t.Fatalf("FinancialData: %v", err)
	}
	if data.Balance != 42 {
		t.Fatalf("Balance = %.2f, want 42", data.Balance)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Fatalf("refresh calls = %d, want 1", got)
	}
	if got := atomic.LoadInt32(&dataCalls); got != 2 {
		t.Fatalf("data calls = %d, want 2 (original + one retry)", got)
	}
	if store.Access() != "fresh" {
		t.Fatalf("stored access = %q, want fresh", store.Access())
	}
}

func TestNoInfiniteRetry(t *testing.T) {
	var dataCalls, refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/financial_data/", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&dataCalls, 1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "nope"})
	})
	mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, auth.Tokens{Access: "stale", Refresh: "ref"})
	_, err := c.FinancialData(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if got := atomic.LoadInt32(&dataCalls); got != 2 {
		t.Fatalf("data calls = %d, want exactly 2 (never a third attempt)", got)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Fatalf("refresh calls = %d, want 1", got)
	}
}

func TestConcurrent401sSingleRefresh(t *testing.T) {
	var refreshCalls int32
	var mu sync.Mutex
	validToken := "stale"

	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/financial_data/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		valid := "Bearer "+validToken == r.Header.Get("Authorization") && validToken == "fresh"
		mu.Unlock()
		if !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"financial_data": finance.FinancialData{Balance: 7},
		})
	})
	mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		time.Sleep(30 * time.Millisecond) // let the other 401s pile up
		mu.Lock()
		validToken = "fresh"
		mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, auth.Tokens{Access: "stale", Refresh: "ref"})

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.FinancialData(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Fatalf("refresh calls = %d for %d concurrent 401s, want 1", got, n)
	}
}

func TestRefreshFailurePropagatesAndClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/financial_data/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "expired"})
	})
	mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "refresh token invalid"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, store := newTestClient(t, srv.URL, auth.Tokens{Access: "stale", Refresh: "dead"})
	_, err := c.FinancialData(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	if _, ok := store.Get(); ok {
		t.Fatal("both tokens must be cleared after a failed refresh")
	}
}

func TestNonAuthFailuresAreNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, auth.Tokens{Access: "acc", Refresh: "ref"})
	err := c.CreateTransaction(context.Background(), finance.NewTransaction("x", 5, finance.TypeExpense, "Food", "2024-03-01"))

	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *ServerError", err)
	}
	if se.Status != http.StatusBadRequest || se.Message != "Missing required fields" {
		t.Fatalf("ServerError = %+v, want 400/Missing required fields", se)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("calls = %d, want 1 (no retry for non-auth failures)", got)
	}
}

func TestLoginStoresTokenPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/token/" {
			t.Errorf("path = %s, want /api/token/", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]string{"access": "a1", "refresh": "r1"})
	}))
	defer srv.Close()

	c, store := newTestClient(t, srv.URL, auth.Tokens{})
	pair, err := c.Login(context.Background(), "user@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.Access != "a1" || pair.Refresh != "r1" {
		t.Fatalf("pair = %+v, want a1/r1", pair)
	}
	got, ok := store.Get()
	if !ok || got != pair {
		t.Fatalf("stored pair = %+v ok=%v, want %+v", got, ok, pair)
	}
}

func TestLocalValidationNeverHitsTheWire(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusOK, map[string]string{})
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, auth.Tokens{Access: "acc", Refresh: "ref"})

	if err := c.CreateTransaction(context.Background(), finance.Transaction{
		Description: "bad", Amount: -5, Type: finance.TypeExpense, Category: "Food", Date: "2024-03-01",
	}); err == nil {
		t.Fatal("negative amount must fail validation")
	}
	if err := c.CreateTransaction(context.Background(), finance.Transaction{
		Description: "bad", Amount: 5, Type: "transfer", Category: "Food", Date: "2024-03-01",
	}); err == nil {
		t.Fatal("unknown type must fail validation")
	}
	if err := c.RequestPasswordReset(context.Background(), "not-an-email"); err == nil {
		t.Fatal("malformed email must fail validation")
	}

	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("server saw %d calls, want 0 — validation errors stay local", got)
	}
}
