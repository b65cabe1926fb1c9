package lazy

import (
	"fmt"
	"sync"
	"sync/atomic"
)

type Loader[T any] interface {
	MustLoad() T
	Load() (T, error)
	IfLoaded(func(T))
}

type loader[T any] struct {
	load   func() (T, error)
	loaded atomic.Bool
}

// New defers provider until the first Load, the result or error is cached for all later calls.
func New[T any](provider func() (T, error)) Loader[T] {
	l := &loader[T]{}
	l.load = sync.OnceValues(func() (T, error) {
		value, err := provider()
		if err != nil {
			var empty T
			return empty, fmt.Errorf("load value of %T: %w", empty, err)
		}

		l.loaded.Store(true)
		return value, nil
	})

	return l
}

func (l *loader[T]) MustLoad() T {
	value, err := l.Load()
	if err != nil {
		panic(err)
	}

	return value
}

func (l *loader[T]) Load() (T, error) {
	return l.load()
}

// IfLoaded calls f only when the value was already loaded successfully.
func (l *loader[T]) IfLoaded(f func(T)) {
	if !l.loaded.Load() {
		return
	}

	value, _ := l.load()
	f(value)
}
