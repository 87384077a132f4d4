package pkgroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 10

// MaxRetainedErrors bounds how many task errors Wait reports. Later errors
// are only counted.
const MaxRetainedErrors = 64

// ErrPanic wraps the value recovered from a panicking task.
var ErrPanic = errors.New("goroutine panicked")

// Manager runs functions in goroutines with a configurable concurrency limit.
//
// Scheduling never blocks the caller: tasks wait for a free slot in their own
// goroutine. Errors returned by tasks are retained up to MaxRetainedErrors
// and reported by Wait.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	dropped int
	wg      sync.WaitGroup
	sema    chan struct{}
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		sema: make(chan struct{}, maxGoroutine),
	}
}

// Go schedules f and returns at once. f runs when a slot is free and is
// skipped if pCtx ends first.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) {
	g.Queue(pCtx, f, nil)
}

// Queue is Go with an abort hook: when pCtx ends before f starts, abort is
// called with the context error instead of f.
func (g *Manager) Queue(pCtx context.Context, f func(ctx context.Context) error, abort func(err error)) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		select {
		case g.sema <- struct{}{}:
		case <-pCtx.Done():
			g.skip(pCtx, abort)
			return
		}

		defer func() {
			<-g.sema

			if rvr := recover(); rvr != nil {
				slog.ErrorContext(pCtx, "panic occurred in goroutine", "because", rvr, "stack", string(debug.Stack()))
				g.collect(fmt.Errorf("%w: %v", ErrPanic, rvr))
			}
		}()

		if pCtx.Err() != nil {
			g.skip(pCtx, abort)
			return
		}

		if err := f(pCtx); err != nil {
			g.collect(err)
		}
	}()
}

func (g *Manager) skip(ctx context.Context, abort func(err error)) {
	slog.WarnContext(ctx, "goroutine canceled before start", "because", ctx.Err())
	if abort != nil {
		abort(ctx.Err())
	}
}

func (g *Manager) collect(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.errs) < MaxRetainedErrors {
		g.errs = append(g.errs, err)
		return
	}
	g.dropped++
}

// Wait blocks until all scheduled goroutines finish and returns any collected errors.
func (g *Manager) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	errs := g.errs
	if g.dropped > 0 {
		errs = append(errs[:len(errs):len(errs)], fmt.Errorf("%d more goroutine errors not retained", g.dropped))
	}

	return errors.Join(errs...)
}
