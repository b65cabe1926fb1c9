package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/klwxsrx/go-auth-session/pkg/metric"
	"github.com/klwxsrx/go-auth-session/pkg/observability"
)

const (
	DefaultServerAddress = ":8080"

	healthPath  = "/healthz"
	metricsPath = "/metrics"

	defaultReadTimeout       = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	shutdownTimeout          = 10 * time.Second
)

type (
	HandlerOption func(*mux.Router)
	Middleware    func(http.Handler) http.Handler

	HandlerRegistry interface {
		Register(handler Handler, opts ...HandlerOption)
	}

	Server interface {
		HandlerRegistry
		http.Handler
		Listener(context.Context) error
	}

	RequestIDExtractor func(*http.Request) string
)

type server struct {
	srv    *http.Server
	router *mux.Router
}

func NewServer(address string, opts ...HandlerOption) Server {
	router := withHandlerMetadata(mux.NewRouter())
	for _, opt := range opts {
		opt(router)
	}

	srv := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadTimeout:       defaultReadTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	return server{
		srv:    srv,
		router: router,
	}
}

func (s server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s server) Listener(ctx context.Context) error {
	serverDoneChan := make(chan error, 1)
	go func() {
		err := s.srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serverDoneChan <- err
	}()

	var err error
	select {
	case err = <-serverDoneChan:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err = s.srv.Shutdown(shutdownCtx)
		if err != nil {
			err = fmt.Errorf("shutdown: %w", err)
		}
	}
	if err != nil {
		return fmt.Errorf("http listener %s: %w", s.srv.Addr, err)
	}

	return nil
}

func (s server) Register(handler Handler, opts ...HandlerOption) {
	router := s.router
	if len(opts) > 0 {
		router = s.router.NewRoute().Subrouter()
		for _, opt := range opts {
			opt(router)
		}
	}

	router.
		Name(getRouteName(handler.Method(), handler.Path())).
		Methods(handler.Method()).
		Path(handler.Path()).
		Handler(httpHandlerWrapper(handler.Handle))
}

func WithMW(mw Middleware) HandlerOption {
	return func(router *mux.Router) {
		router.Use(mux.MiddlewareFunc(mw))
	}
}

func WithHealthCheck() HandlerOption {
	handler := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(struct {
			Status string `json:"status"`
		}{
			Status: "OK",
		})
	}

	return func(router *mux.Router) {
		router.
			Name(getRouteName(http.MethodGet, healthPath)).
			Methods(http.MethodGet).
			Path(healthPath).
			HandlerFunc(handler)
	}
}

// WithMetricsEndpoint serves handler, e.g. a prometheus exporter, on /metrics.
func WithMetricsEndpoint(handler http.Handler) HandlerOption {
	return func(router *mux.Router) {
		router.
			Name(getRouteName(http.MethodGet, metricsPath)).
			Methods(http.MethodGet).
			Path(metricsPath).
			Handler(handler)
	}
}

func WithObservability(observer observability.Observer, requestIDExtractors ...RequestIDExtractor) HandlerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, extractor := range requestIDExtractors {
				if id := extractor(r); id != "" {
					r = r.WithContext(observer.WithField(r.Context(), observability.FieldRequestID, id))
					break
				}
			}

			handler.ServeHTTP(w, r)
		})
	})
}

func NewHTTPHeaderRequestIDExtractor(header string) RequestIDExtractor {
	return func(r *http.Request) string {
		return r.Header.Get(header)
	}
}

func NewRandomUUIDRequestIDExtractor() RequestIDExtractor {
	return func(_ *http.Request) string {
		return uuid.New().String()
	}
}

func WithMetrics(metrics metric.Metrics) HandlerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			handler.ServeHTTP(w, r)
			result := getHandlerMetadata(r.Context())

			routeName := "unknown"
			if route := mux.CurrentRoute(r); route != nil {
				routeName = route.GetName()
			}

			if result.Panic != nil {
				metrics.With(metric.Labels{
					"route": routeName,
				}).Increment("http_api_request_panics_total")
			}

			metrics.With(metric.Labels{
				"route": routeName,
				"code":  fmt.Sprintf("%d", result.Code),
			}).Duration("http_api_request_duration_seconds", time.Since(started))
		})
	})
}

func getRouteName(method, path string) string {
	path = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Latin, r) || unicode.IsDigit(r) {
			return r
		}

		if r == '{' || r == '}' {
			return -1
		}

		return '_'
	}, strings.Trim(path, "/"))
	return fmt.Sprintf("%s_%s", strings.ToUpper(method), path)
}
