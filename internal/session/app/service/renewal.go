package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/klwxsrx/go-auth-session/internal/session/domain"
)

// RunRenewal refreshes the session renewalLeeway before the access token expires until ctx is done.
// Tokens without a readable exp claim are renewed only after an authorization failure.
func (c *Controller) RunRenewal(ctx context.Context) error {
	changes := make(chan struct{}, 1)
	unsubscribe := c.store.Subscribe(func(domain.Session) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		timer, stop := c.renewalTimer(c.store.Get())

		select {
		case <-ctx.Done():
			stop()
			return nil
		case <-changes:
			stop()
		case <-timer:
			err := c.Refresh(ctx)
			if err != nil && !errors.Is(err, ErrSessionChanged) {
				c.logger.WithError(err).Warn(ctx, "session renewal failed")
			}
		}
	}
}

func (c *Controller) renewalTimer(session domain.Session) (<-chan time.Time, func()) {
	if !session.IsAuthenticated() {
		return nil, func() {}
	}

	expiresAt, ok := accessTokenExpiration(session.AccessToken)
	if !ok {
		return nil, func() {}
	}

	delay := time.Until(expiresAt) - c.renewalLeeway
	if delay < c.minRenewalDelay {
		delay = c.minRenewalDelay
	}

	timer := time.NewTimer(delay)
	return timer.C, func() { timer.Stop() }
}

// accessTokenExpiration reads the exp claim without signature verification,
// the token is only used to schedule the renewal.
func accessTokenExpiration(token domain.AccessToken) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(string(token), claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}
