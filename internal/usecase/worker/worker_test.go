//go:build unit

package worker_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"brow-studio-api/internal/usecase/worker"

	"github.com/stretchr/testify/assert"
)

type countingSweep struct {
	calls atomic.Int32
}

func (c *countingSweep) ExpireDue(context.Context) (int, error) {
	c.calls.Add(1)
	return 0, nil
}

type countingExpansion struct {
	calls atomic.Int32
}

func (c *countingExpansion) MaterializeTemplates(context.Context) (int64, error) {
	c.calls.Add(1)
	return 0, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweeperRun(t *testing.T) {
	t.Run("sweeps immediately and then on each tick", func(t *testing.T) {
		sweep := &countingSweep{}
		s := worker.NewSweeper(sweep, 10*time.Millisecond, discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			s.Run(ctx)
			close(done)
		}()

		assert.Eventually(t, func() bool {
			return sweep.calls.Load() >= 3
		}, time.Second, 5*time.Millisecond)

		cancel()
		<-done
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		s := worker.NewSweeper(&countingSweep{}, time.Hour, discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			s.Run(ctx)
			close(done)
		}()

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop")
		}
	})
}

func TestMaterializerRun(t *testing.T) {
	t.Run("expands immediately and then on each tick", func(t *testing.T) {
		expansion := &countingExpansion{}
		m := worker.NewMaterializer(expansion, 10*time.Millisecond, discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			m.Run(ctx)
			close(done)
		}()

		assert.Eventually(t, func() bool {
			return expansion.calls.Load() >= 3
		}, time.Second, 5*time.Millisecond)

		cancel()
		<-done
	})
}
