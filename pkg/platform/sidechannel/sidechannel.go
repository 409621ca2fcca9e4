// Package sidechannel runs best-effort work that must not affect the caller's result.
//
// Tasks run detached from request cancellation. Failures are logged and never
// returned to the code that scheduled them. Wait blocks until every scheduled
// task has finished or its context ends, which is how shutdown and tests
// observe completion.
package sidechannel

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"fes/pkg/requestcontext"
)

// Runner schedules side effects on a shared errgroup.
type Runner struct {
	logger *slog.Logger

	mu    sync.Mutex
	group *errgroup.Group
}

func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, group: new(errgroup.Group)}
}

// Go runs fn in the background. The context passed to fn keeps ctx's values
// but is never cancelled when ctx is.
func (r *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)
	r.mu.Lock()
	group := r.group
	r.mu.Unlock()

	group.Go(func() error {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.ErrorContext(detached, "side effect panicked",
					"side_effect", name,
					"panic", rec,
					"request_id", requestcontext.RequestID(detached),
				)
			}
		}()
		if err := fn(detached); err != nil {
			r.logger.ErrorContext(detached, "side effect failed",
				"side_effect", name,
				"error", err,
				"request_id", requestcontext.RequestID(detached),
			)
		}
		// logged above; never propagated
		return nil
	})
}

// Wait blocks until all tasks scheduled so far complete or ctx is done, in
// which case it returns ctx's error and the tasks keep running. The runner can
// be reused afterwards.
func (r *Runner) Wait(ctx context.Context) error {
	r.mu.Lock()
	group := r.group
	r.group = new(errgroup.Group)
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = group.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
