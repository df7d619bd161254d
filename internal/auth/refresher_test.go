package auth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return s
}

func TestSingleFlightRefresh(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set(Tokens{Access: "expired", Refresh: "ref"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var calls int32
	release := make(chan struct{})
	refresh := func(_ context.Context, refreshToken string) (string, error) {
		if refreshToken != "ref" {
			t.Errorf("refresh called with token %q, want ref", refreshToken)
		}
		atomic.AddInt32(&calls, 1)
		<-release // hold the call open so every caller piles up behind it
		return "fresh", nil
	}

	r := NewRefresher(s, refresh, quietLogger())

	const n = 16
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.ForceRefresh(context.Background())
		}(i)
	}

	// Give every goroutine a chance to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("refresh endpoint called %d times for %d concurrent callers, want 1", got, n)
	}
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i] != "fresh" {
			t.Fatalf("caller %d got token %q, want fresh", i, results[i])
		}
	}
	if s.Access() != "fresh" {
		t.Fatalf("stored access = %q, want fresh", s.Access())
	}
}

func TestRefreshFailureClearsBothTokens(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set(Tokens{Access: "acc", Refresh: "ref"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	refresh := func(context.Context, string) (string, error) {
		return "", errors.New("boom")
	}
	r := NewRefresher(s, refresh, quietLogger())

	_, err := r.ForceRefresh(context.Background())
	if !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("err = %v, want ErrSessionInvalid", err)
	}

	got, ok := s.Get()
	if ok || got.Access != "" || got.Refresh != "" {
		t.Fatalf("tokens after failed refresh = %+v, want both cleared", got)
	}
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	s, _ := newTestStore(t)

	called := false
	refresh := func(context.Context, string) (string, error) {
		called = true
		return "nope", nil
	}
	r := NewRefresher(s, refresh, quietLogger())

	_, err := r.ForceRefresh(context.Background())
	if !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("err = %v, want ErrSessionInvalid", err)
	}
	if called {
		t.Fatal("refresh endpoint must not be called without a refresh token")
	}
}

func TestEnsureValidTokenSkipsRefreshForLiveToken(t *testing.T) {
	s, _ := newTestStore(t)
	live := signedToken(t, time.Now().Add(time.Hour))
	if err := s.Set(Tokens{Access: live, Refresh: "ref"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	refresh := func(context.Context, string) (string, error) {
		t.Fatal("refresh must not run for a live token")
		return "", nil
	}
	r := NewRefresher(s, refresh, quietLogger())

	got, err := r.EnsureValidToken(context.Background())
	if err != nil {
		t.Fatalf("EnsureValidToken: %v", err)
	}
	if got != live {
		t.Fatal("EnsureValidToken should return the stored live token")
	}
}

func TestEnsureValidTokenRefreshesExpired(t *testing.T) {
	s, _ := newTestStore(t)
	stale := signedToken(t, time.Now().Add(-time.Minute))
	if err := s.Set(Tokens{Access: stale, Refresh: "ref"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	refresh := func(context.Context, string) (string, error) {
		return "fresh", nil
	}
	r := NewRefresher(s, refresh, quietLogger())

	got, err := r.EnsureValidToken(context.Background())
	if err != nil {
		t.Fatalf("EnsureValidToken: %v", err)
	}
	if got != "fresh" {
		t.Fatalf("token = %q, want fresh", got)
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signedToken(t, exp)

	got, ok := TokenExpiry(tok)
	if !ok {
		t.Fatal("TokenExpiry returned !ok for a valid JWT")
	}
	if !got.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", got, exp)
	}

	if _, ok := TokenExpiry("not-a-jwt"); ok {
		t.Fatal("TokenExpiry should fail for a non-JWT token")
	}
	if Expired("not-a-jwt", time.Minute) {
		t.Fatal("unreadable tokens are assumed valid")
	}
}
