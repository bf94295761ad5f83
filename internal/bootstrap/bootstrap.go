// Package bootstrap runs a command with interrupt handling and cleanup hooks.
package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// App runs one unit of work and undoes its side effects when it fails.
type App struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

func New() *App {
	return &App{}
}

// OnFailure registers fn to run when the run function returns an error,
// including the cancellation error of an interrupted run.
// Hooks run in reverse registration order. Thread-safe.
func (a *App) OnFailure(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run calls run with a context that is cancelled on SIGINT or SIGTERM and
// waits for it to return. Errors of failure hooks are joined to run's error.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err == nil {
		return nil
	}
	return errors.Join(err, a.cleanup(context.WithoutCancel(ctx)))
}

func (a *App) cleanup(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		if err := a.hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
