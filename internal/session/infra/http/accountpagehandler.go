package http

import (
	"net/http"

	pkghttp "github.com/klwxsrx/go-auth-session/pkg/http"
)

const accountPage = `<!doctype html>
<html>
<head><title>Account</title></head>
<body><h1>Account</h1><p>You are signed in.</p></body>
</html>
`

// AccountPageHandler serves the page that only authenticated visitors may see.
type AccountPageHandler struct{}

func NewAccountPageHandler() AccountPageHandler {
	return AccountPageHandler{}
}

func (h AccountPageHandler) Method() string {
	return http.MethodGet
}

func (h AccountPageHandler) Path() string {
	return "/account"
}

func (h AccountPageHandler) Handle(w pkghttp.ResponseWriter, _ *http.Request) error {
	w.SetBody("text/html; charset=utf-8", []byte(accountPage))
	return nil
}
