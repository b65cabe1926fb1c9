package http

import (
	"net/http"

	"github.com/klwxsrx/go-auth-session/internal/pkg/apierror"
	"github.com/klwxsrx/go-auth-session/internal/verification/app/service"
	pkghttp "github.com/klwxsrx/go-auth-session/pkg/http"
)

type RequestTokenHandler struct {
	verification service.Verification
}

func NewRequestTokenHandler(verification service.Verification) RequestTokenHandler {
	return RequestTokenHandler{verification: verification}
}

func (h RequestTokenHandler) Method() string {
	return http.MethodPost
}

func (h RequestTokenHandler) Path() string {
	return "/verification-tokens"
}

func (h RequestTokenHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[requestTokenIn](), err)
	if err != nil {
		writeError(w, err)
		return err
	}

	err = h.verification.Request(r.Context(), in.Email, in.Language)
	if err != nil {
		writeError(w, err)
		return err
	}

	w.SetStatusCode(http.StatusAccepted).SetJSONBody(apierror.Success())
	return nil
}

type requestTokenIn struct {
	Email    string `json:"email"`
	Language string `json:"language"`
}
