package bootstrap

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Run(t *testing.T) {
	t.Run("run returns nil and hooks still run", func(t *testing.T) {
		app := New()
		closed := false
		app.AddShutdownHook("store", func(ctx context.Context) error {
			closed = true
			return nil
		})
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, closed)
	})

	t.Run("run returns error", func(t *testing.T) {
		app := New()
		want := errors.New("dataset missing")
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return want
		})
		assert.ErrorIs(t, err, want)
	})

	t.Run("hooks run in reverse order on cancel", func(t *testing.T) {
		app := New()
		var mu sync.Mutex
		var order []string
		for _, name := range []string{"state", "display", "server"} {
			app.AddShutdownHook(name, func(ctx context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, name)
				return nil
			})
		}

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"server", "display", "state"}, order)
	})

	t.Run("run is waited for after the signal", func(t *testing.T) {
		app := New()
		drained := false

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			time.Sleep(20 * time.Millisecond)
			drained = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, drained)
	})

	t.Run("hook errors are joined", func(t *testing.T) {
		app := New()
		app.AddShutdownHook("server", func(ctx context.Context) error {
			return errors.New("listener closed twice")
		})
		app.AddShutdownHook("registered inside run", func(ctx context.Context) error {
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server: listener closed twice")
	})

	t.Run("run that ignores cancellation times out", func(t *testing.T) {
		app := New(WithShutdownTimeout(20 * time.Millisecond))
		block := make(chan struct{})
		defer close(block)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := app.Run(ctx, func(ctx context.Context) error {
			<-block
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "did not stop within 20ms")
	})

	t.Run("SIGTERM starts the shutdown", func(t *testing.T) {
		app := New()
		err := app.Run(context.Background(), func(ctx context.Context) error {
			if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
				return errors.New("signal not received")
			}
		})
		assert.NoError(t, err)
	})

	t.Run("custom signals", func(t *testing.T) {
		app := New(WithSignals(syscall.SIGUSR1))
		err := app.Run(context.Background(), func(ctx context.Context) error {
			if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
				return errors.New("signal not received")
			}
		})
		assert.NoError(t, err)
	})
}
