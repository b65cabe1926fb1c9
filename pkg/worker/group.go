package worker

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	MaxWorkersCountNumCPU    = -1
	MaxWorkersCountUnlimited = 0
)

type (
	ErrorJob func(context.Context) error

	Group interface {
		Do(ErrorJob)
		Wait() error
	}

	GroupOption func(*groupConfig)

	groupConfig struct {
		maxWorkers int
	}
)

type group struct {
	ctx       context.Context
	ctxCancel context.CancelFunc
	impl      *errgroup.Group
}

// WithMaxWorkers limits concurrently running jobs, Do blocks while the limit is reached.
func WithMaxWorkers(maxWorkers int) GroupOption {
	return func(c *groupConfig) {
		c.maxWorkers = maxWorkers
	}
}

// NewFailFastGroup cancels the context of all jobs after the first error.
func NewFailFastGroup(ctx context.Context, opts ...GroupOption) Group {
	ctx, ctxCancel := context.WithCancel(ctx)
	impl, ctx := errgroup.WithContext(ctx)
	return newGroup(ctx, ctxCancel, impl, opts)
}

// NewFailSafeGroup runs all jobs to completion and reports the first error.
func NewFailSafeGroup(ctx context.Context, opts ...GroupOption) Group {
	ctx, ctxCancel := context.WithCancel(ctx)
	return newGroup(ctx, ctxCancel, &errgroup.Group{}, opts)
}

func newGroup(ctx context.Context, ctxCancel context.CancelFunc, impl *errgroup.Group, opts []GroupOption) *group {
	config := groupConfig{maxWorkers: MaxWorkersCountUnlimited}
	for _, opt := range opts {
		opt(&config)
	}

	switch {
	case config.maxWorkers <= MaxWorkersCountNumCPU:
		impl.SetLimit(runtime.NumCPU())
	case config.maxWorkers > MaxWorkersCountUnlimited:
		impl.SetLimit(config.maxWorkers)
	}

	return &group{
		ctx:       ctx,
		ctxCancel: ctxCancel,
		impl:      impl,
	}
}

func (g *group) Do(job ErrorJob) {
	g.impl.Go(func() error {
		return job(g.ctx)
	})
}

func (g *group) Wait() error {
	defer g.ctxCancel()
	return g.impl.Wait()
}
