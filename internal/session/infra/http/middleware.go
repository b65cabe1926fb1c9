package http

import (
	"net/http"
	"net/url"

	pkghttp "github.com/klwxsrx/go-auth-session/pkg/http"
)

const nextPageQueryParam = "next"

type RequestGuard interface {
	IsRequestAuthenticated(*http.Request) bool
}

// RequireAuthentication redirects requests without a valid refresh cookie to loginURL.
func RequireAuthentication(guard RequestGuard, loginURL string) pkghttp.Middleware {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if guard.IsRequestAuthenticated(r) {
				handler.ServeHTTP(w, r)
				return
			}

			pkghttp.Redirect(w, r, loginRedirectURL(loginURL, r.URL), http.StatusSeeOther)
		})
	}
}

func loginRedirectURL(loginURL string, requested *url.URL) string {
	target, err := url.Parse(loginURL)
	if err != nil {
		return loginURL
	}

	query := target.Query()
	query.Set(nextPageQueryParam, requested.RequestURI())
	target.RawQuery = query.Encode()
	return target.String()
}
