package metric

import (
	"net/http"
	"time"
)

type (
	Labels map[string]string

	Metrics interface {
		With(Labels) Metrics
		Increment(key string)
		Duration(key string, duration time.Duration)
	}

	// Registry collects metrics and exposes them for scraping.
	Registry interface {
		Metrics
		Handler() http.Handler
	}
)
