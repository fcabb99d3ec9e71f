package tasks

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
)

// Dispatcher runs fire-and-forget secondary effects (mission generation,
// avatar rendering, analytics, notification fan-out). Tasks run on a detached
// context so a cancelled request cannot abort them, and their failures are
// logged but never propagate to the primary operation's response.
type Dispatcher struct {
	log     *logger.Logger
	group   *errgroup.Group
	timeout time.Duration
}

func NewDispatcher(baseLog *logger.Logger, maxConcurrent int, timeout time.Duration) *Dispatcher {
	g := &errgroup.Group{}
	if maxConcurrent > 0 {
		g.SetLimit(maxConcurrent)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		log:     baseLog.With("component", "TaskDispatcher"),
		group:   g,
		timeout: timeout,
	}
}

// Go submits a task. It never blocks the caller beyond the group's
// concurrency gate and never returns the task's error.
func (d *Dispatcher) Go(name string, fn func(ctx context.Context) error) {
	if d == nil || fn == nil {
		return
	}
	d.group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("task panicked", "task", name, "panic", fmt.Sprint(r))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if terr := fn(ctx); terr != nil {
			d.log.Warn("task failed", "task", name, "error", terr)
		}
		return nil
	})
}

// Close waits for in-flight tasks to drain. Used on shutdown and by tests.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	_ = d.group.Wait()
}
