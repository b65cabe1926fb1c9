package http

import (
	"errors"
	"net/http"

	"github.com/klwxsrx/go-auth-session/internal/pkg/apierror"
	"github.com/klwxsrx/go-auth-session/internal/verification/app/service"
	"github.com/klwxsrx/go-auth-session/internal/verification/domain"
	pkghttp "github.com/klwxsrx/go-auth-session/pkg/http"
)

func writeError(w pkghttp.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, apierror.CodeInternalError
	switch {
	case errors.Is(err, pkghttp.ErrParsingError),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidTokenValue):
		status, code = http.StatusBadRequest, apierror.CodeValidationError
	case errors.Is(err, domain.ErrTokenNotFound):
		status, code = http.StatusNotFound, apierror.CodeTokenNotFound
	case errors.Is(err, domain.ErrTokenExpired):
		status, code = http.StatusGone, apierror.CodeTokenExpired
	case errors.Is(err, domain.ErrTokenAlreadyUsed):
		status, code = http.StatusConflict, apierror.CodeTokenAlreadyUsed
	}

	message := ""
	if status != http.StatusInternalServerError {
		message = err.Error()
	}

	w.SetStatusCode(status).SetJSONBody(apierror.New(code, message))
}
