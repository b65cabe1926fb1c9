package http

import (
	"net/http"

	"github.com/klwxsrx/go-auth-session/internal/verification/app/service"
	"github.com/klwxsrx/go-auth-session/internal/verification/domain"
	pkghttp "github.com/klwxsrx/go-auth-session/pkg/http"
)

type ConsumeTokenHandler struct {
	verification service.Verification
}

func NewConsumeTokenHandler(verification service.Verification) ConsumeTokenHandler {
	return ConsumeTokenHandler{verification: verification}
}

func (h ConsumeTokenHandler) Method() string {
	return http.MethodPost
}

func (h ConsumeTokenHandler) Path() string {
	return "/verification-tokens/{token}/consumption"
}

func (h ConsumeTokenHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	value, err := pkghttp.ParseRequest(r, pkghttp.PathParameter[string]("token"), err)
	if err != nil {
		writeError(w, err)
		return err
	}

	email, err := h.verification.Verify(r.Context(), domain.TokenValue(value))
	if err != nil {
		writeError(w, err)
		return err
	}

	w.SetJSONBody(consumeTokenOut{
		Success: true,
		Email:   email,
	})
	return nil
}

type consumeTokenOut struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}
