package time

import (
	"context"
	"time"
)

const nowContextKey contextKey = iota

type (
	Clock interface {
		Now(context.Context) time.Time
	}

	// AdjustableClock lets a request pin its current time, e.g. to share one timestamp between records.
	AdjustableClock interface {
		Clock
		Set(context.Context, time.Time) context.Context
		Freeze(context.Context) context.Context
	}

	ClockOption func(*clock)

	clock struct {
		precision time.Duration
		location  *time.Location
	}
	contextKey int
)

// WithPrecision truncates returned times, e.g. to the microseconds kept by Postgres timestamps.
func WithPrecision(precision time.Duration) ClockOption {
	return func(c *clock) {
		c.precision = precision
	}
}

func WithLocation(location *time.Location) ClockOption {
	return func(c *clock) {
		c.location = location
	}
}

func NewAdjustableClock(opts ...ClockOption) AdjustableClock {
	c := clock{location: time.UTC}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

func (c clock) Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(nowContextKey).(time.Time); ok {
		return t
	}

	return c.normalize(time.Now())
}

func (c clock) Set(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, nowContextKey, c.normalize(t))
}

func (c clock) Freeze(ctx context.Context) context.Context {
	if _, ok := ctx.Value(nowContextKey).(time.Time); ok {
		return ctx
	}

	return c.Set(ctx, time.Now())
}

func (c clock) normalize(t time.Time) time.Time {
	if c.precision > 0 {
		t = t.Truncate(c.precision)
	}

	return t.In(c.location)
}
