package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

type HandlerFunc func(w ResponseWriter, r *http.Request) error

type Handler interface {
	Method() string
	Path() string
	Handle(w ResponseWriter, r *http.Request) error
}

type ResponseWriter interface {
	SetHeader(key, value string) ResponseWriter
	SetStatusCode(httpCode int) ResponseWriter
	SetCookie(cookie *http.Cookie) ResponseWriter
	SetJSONBody(data any) ResponseWriter
	SetBody(contentType string, body []byte) ResponseWriter
}

// Redirect keeps handler metadata in sync for logging and metrics middlewares.
func Redirect(w http.ResponseWriter, r *http.Request, url string, code int) {
	meta := getHandlerMetadata(r.Context())
	meta.Code = code

	http.Redirect(w, r, url, code)
}

type responseWriter struct {
	impl http.ResponseWriter

	contentType   string
	bodyProvider  func() ([]byte, error)
	httpCode      int
	httpCodeIsSet bool
}

func (w *responseWriter) SetHeader(key, value string) ResponseWriter {
	w.impl.Header().Set(key, value)
	return w
}

func (w *responseWriter) SetStatusCode(httpCode int) ResponseWriter {
	w.httpCode = httpCode
	w.httpCodeIsSet = true
	return w
}

func (w *responseWriter) SetCookie(cookie *http.Cookie) ResponseWriter {
	http.SetCookie(w.impl, cookie)
	return w
}

func (w *responseWriter) SetJSONBody(data any) ResponseWriter {
	w.contentType = "application/json"
	w.bodyProvider = func() ([]byte, error) {
		bodyEncoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		return bodyEncoded, nil
	}
	return w
}

func (w *responseWriter) SetBody(contentType string, body []byte) ResponseWriter {
	w.contentType = contentType
	w.bodyProvider = func() ([]byte, error) {
		return body, nil
	}
	return w
}

func (w *responseWriter) Write(ctx context.Context, err error) {
	httpCode := w.httpCode
	errCodeIsSet := w.httpCodeIsSet && w.httpCode >= http.StatusBadRequest
	switch {
	case err == nil, errCodeIsSet:
	case errors.Is(err, ErrParsingError):
		httpCode = http.StatusBadRequest
	default:
		httpCode = http.StatusInternalServerError
	}

	var body []byte
	if w.bodyProvider != nil && (err == nil || errCodeIsSet) {
		var bodyErr error
		body, bodyErr = w.bodyProvider()
		if bodyErr != nil {
			err = errors.Join(err, bodyErr)
			httpCode = http.StatusInternalServerError
			body = nil
		}
	}

	meta := getHandlerMetadata(ctx)
	meta.Code = httpCode
	meta.Error = err

	if body != nil {
		w.impl.Header().Set("Content-Type", w.contentType)
	}
	w.impl.WriteHeader(httpCode)
	if body != nil {
		_, _ = w.impl.Write(body)
	}
}

func (w *responseWriter) WritePanic(ctx context.Context, panic Panic) {
	meta := getHandlerMetadata(ctx)
	meta.Code = http.StatusInternalServerError
	meta.Panic = &panic

	w.impl.WriteHeader(http.StatusInternalServerError)
}

func httpHandlerWrapper(handler HandlerFunc) http.HandlerFunc {
	recoverPanic := func(r *http.Request, respWriter *responseWriter) {
		msg := recover()
		if msg == nil {
			return
		}

		respWriter.WritePanic(r.Context(), Panic{
			Message:    fmt.Sprintf("%v", msg),
			Stacktrace: debug.Stack(),
		})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respWriter := &responseWriter{
			impl:     w,
			httpCode: http.StatusOK,
		}

		defer recoverPanic(r, respWriter)
		err := handler(respWriter, r)
		respWriter.Write(r.Context(), err)
	}
}
