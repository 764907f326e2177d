// Package bootstrap runs the clock process until a signal arrives and then
// shuts its parts down in reverse start order.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const DefaultShutdownTimeout = 10 * time.Second

// Hook stops one part of the process, e.g. the control server.
type Hook struct {
	Name string
	Stop func(ctx context.Context) error
}

type App struct {
	mu              sync.Mutex
	hooks           []Hook
	signals         []os.Signal
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

type Option func(*App)

func WithShutdownTimeout(timeout time.Duration) Option {
	return func(a *App) {
		if timeout > 0 {
			a.shutdownTimeout = timeout
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithSignals replaces the signals that begin a shutdown.
func WithSignals(signals ...os.Signal) Option {
	return func(a *App) {
		a.signals = signals
	}
}

func New(opts ...Option) *App {
	a := &App{
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM},
		shutdownTimeout: DefaultShutdownTimeout,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddShutdownHook registers a hook. Hooks run last registered first and may
// be added from inside the run function.
func (a *App) AddShutdownHook(name string, stop func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, Hook{Name: name, Stop: stop})
}

// Run calls run with a context that is cancelled on a signal or when ctx is
// done. It then runs the hooks and waits for run to return, both bounded by
// the shutdown timeout. An error run returns on its own is returned as is.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, a.signals...)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		// run finished by itself, e.g. a one shot render
		return a.shutdown(context.Background())
	case <-ctx.Done():
	}

	a.logger.Info("shutting down", "timeout", a.shutdownTimeout)
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancelShutdown()

	hookErr := a.shutdown(shutdownCtx)
	select {
	case err := <-errCh:
		return errors.Join(err, hookErr)
	case <-shutdownCtx.Done():
		return errors.Join(fmt.Errorf("run did not stop within %s", a.shutdownTimeout), hookErr)
	}
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := make([]Hook, len(a.hooks))
	copy(hooks, a.hooks)
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i].Stop(ctx); err != nil {
			a.logger.Error("shutdown hook failed", "hook", hooks[i].Name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", hooks[i].Name, err))
			continue
		}
		a.logger.Debug("shutdown hook done", "hook", hooks[i].Name)
	}
	return errors.Join(errs...)
}
