package guard

import (
	"context"
	"errors"
	"net/http"

	"github.com/klwxsrx/go-auth-session/internal/session/app/authapi"
	"github.com/klwxsrx/go-auth-session/pkg/log"
)

// Guard checks the refresh cookie of a single incoming request, it keeps no state between requests.
type Guard struct {
	refresher authapi.CookieRefresher
	logger    log.Logger
}

func NewGuard(refresher authapi.CookieRefresher, logger log.Logger) Guard {
	return Guard{
		refresher: refresher,
		logger:    logger,
	}
}

// IsAuthenticated reports whether the refresh cookie among cookies can still be exchanged for an access token.
// Failures are never returned, they mean the request is not authenticated.
func (g Guard) IsAuthenticated(ctx context.Context, cookies []*http.Cookie) bool {
	cookie := findRefreshCookie(cookies)
	if cookie == nil {
		return false
	}

	grant, err := g.refresher.RefreshWithCookie(ctx, cookie)
	switch {
	case errors.Is(err, authapi.ErrUnauthorized):
		g.logger.WithError(err).Debug(ctx, "refresh cookie rejected")
		return false
	case err != nil:
		g.logger.WithError(err).Warn(ctx, "failed to check refresh cookie")
		return false
	}

	return grant.AccessToken != ""
}

func (g Guard) IsRequestAuthenticated(r *http.Request) bool {
	return g.IsAuthenticated(r.Context(), r.Cookies())
}

func findRefreshCookie(cookies []*http.Cookie) *http.Cookie {
	for _, cookie := range cookies {
		if cookie != nil && cookie.Name == authapi.RefreshTokenCookieName && cookie.Value != "" {
			return cookie
		}
	}

	return nil
}
