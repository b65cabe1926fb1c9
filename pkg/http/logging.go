package http

import (
	"net/http"

	"github.com/klwxsrx/go-auth-session/pkg/log"
)

func WithLogging(logger log.Logger, infoLevel, errorLevel log.Level) HandlerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler.ServeHTTP(w, r)
			if r.URL.Path == healthPath {
				return
			}

			meta := getHandlerMetadata(r.Context())
			reqLogger := getRequestResponseFieldsLogger(r, meta.Code, logger)
			switch {
			case meta.Panic != nil:
				reqLogger.
					WithField("panic", log.Fields{
						"message": meta.Panic.Message,
						"stack":   string(meta.Panic.Stacktrace),
					}).
					Log(r.Context(), errorLevel, "request handled with panic")
			case meta.Code >= http.StatusInternalServerError:
				reqLogger.WithError(meta.Error).Log(r.Context(), errorLevel, "request handled with internal error")
			default:
				reqLogger.WithError(meta.Error).Log(r.Context(), infoLevel, "request handled")
			}
		})
	})
}

func getRequestFieldsLogger(r *http.Request, logger log.Logger) log.Logger {
	return logger.WithField("request", log.Fields{
		"method": r.Method,
		"host":   r.URL.Host,
		"path":   r.URL.Path,
	})
}

func getRequestResponseFieldsLogger(r *http.Request, code int, logger log.Logger) log.Logger {
	if r == nil {
		return logger.WithField("responseCode", code)
	}

	return getRequestFieldsLogger(r, logger).WithField("responseCode", code)
}
