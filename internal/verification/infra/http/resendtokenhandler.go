package http

import (
	"net/http"

	"github.com/klwxsrx/go-auth-session/internal/pkg/apierror"
	"github.com/klwxsrx/go-auth-session/internal/verification/app/service"
	pkghttp "github.com/klwxsrx/go-auth-session/pkg/http"
)

type ResendTokenHandler struct {
	verification service.Verification
}

func NewResendTokenHandler(verification service.Verification) ResendTokenHandler {
	return ResendTokenHandler{verification: verification}
}

func (h ResendTokenHandler) Method() string {
	return http.MethodPost
}

func (h ResendTokenHandler) Path() string {
	return "/verification-tokens/resend"
}

func (h ResendTokenHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[requestTokenIn](), err)
	if err != nil {
		writeError(w, err)
		return err
	}

	err = h.verification.Resend(r.Context(), in.Email, in.Language)
	if err != nil {
		writeError(w, err)
		return err
	}

	w.SetStatusCode(http.StatusAccepted).SetJSONBody(apierror.Success())
	return nil
}
