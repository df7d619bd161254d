package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ErrSessionInvalid means the session cannot be recovered: the refresh
// token is missing, rejected, or unreachable. The token pair has been
// cleared; the user must log in again.
var ErrSessionInvalid = errors.New("auth: session invalid")

// RefreshFunc exchanges a refresh token for a new access token.
type RefreshFunc func(ctx context.Context, refreshToken string) (string, error)

// expirySlack refreshes slightly early so a token that is about to expire
// is not handed to a request that would then 401.
const expirySlack = 30 * time.Second

// Refresher guarantees at most one outstanding refresh call regardless of
// how many concurrent requests hit an authorization failure. Concurrent
// callers share the one in-flight call and all receive the same new token.
type Refresher struct {
	store   *Store
	refresh RefreshFunc
	group   singleflight.Group
	log     *logrus.Logger
}

// NewRefresher builds a coordinator over the given store and refresh call.
func NewRefresher(store *Store, refresh RefreshFunc, log *logrus.Logger) *Refresher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Refresher{store: store, refresh: refresh, log: log}
}

// EnsureValidToken returns a usable access token, refreshing once if the
// stored one is expired. On an irrecoverable session it clears both tokens
// and returns ErrSessionInvalid.
func (r *Refresher) EnsureValidToken(ctx context.Context) (string, error) {
	if access := r.store.Access(); access != "" && !Expired(access, expirySlack) {
		return access, nil
	}
	return r.ForceRefresh(ctx)
}

// ForceRefresh obtains a fresh access token unconditionally, for callers
// that just saw the stored token rejected. Concurrent calls collapse into
// one network request.
func (r *Refresher) ForceRefresh(ctx context.Context) (string, error) {
	v, err, shared := r.group.Do("refresh", func() (interface{}, error) {
		return r.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	if shared {
		r.log.Debug("refresh result shared with concurrent caller")
	}
	return v.(string), nil
}

func (r *Refresher) doRefresh(ctx context.Context) (string, error) {
	refreshToken := r.store.Refresh()
	if refreshToken == "" {
		_ = r.store.Clear()
		return "", fmt.Errorf("%w: no refresh token", ErrSessionInvalid)
	}

	r.log.Debug("refreshing access token")
	access, err := r.refresh(ctx, refreshToken)
	if err != nil {
		// Any refresh failure invalidates the session: clear both
		// tokens so the pair never splits.
		_ = r.store.Clear()
		return "", fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}

	if err := r.store.SetAccess(access); err != nil {
		return "", fmt.Errorf("storing refreshed token: %w", err)
	}
	return access, nil
}
