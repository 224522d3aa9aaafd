package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"icms/internal/pkg/config"
	"icms/internal/pkg/errs"
	"icms/internal/usecase/commands"

	"golang.org/x/sync/errgroup"
)

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// Pool runs post-commit side effects on a fixed set of workers. Tasks get a
// context detached from the HTTP request, bounded by the task timeout.
type Pool struct {
	tasks   chan task
	workers int
	timeout time.Duration

	baseCtx context.Context
	cancel  context.CancelFunc
	group   *errgroup.Group

	mu      sync.RWMutex
	started bool
	closed  bool
}

var _ commands.Dispatcher = (*Pool)(nil)

func NewPool(cfg config.DispatcherConfig) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	queueSize := cfg.QueueSize
	if queueSize < 0 {
		queueSize = 0
	}
	timeout := cfg.TaskTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		tasks:   make(chan task, queueSize),
		workers: workers,
		timeout: timeout,
		baseCtx: ctx,
		cancel:  cancel,
		group:   &errgroup.Group{},
	}
}

func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true

	for i := 0; i < p.workers; i++ {
		p.group.Go(func() error {
			for t := range p.tasks {
				p.run(t)
			}
			return nil
		})
	}
	slog.Info("dispatcher started", "workers", p.workers, "queue_size", cap(p.tasks))
}

// Submit enqueues fn without waiting for it. It returns false when the queue
// is full or the pool is stopping.
func (p *Pool) Submit(name string, fn func(ctx context.Context) error) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	select {
	case p.tasks <- task{name: name, fn: fn}:
		return true
	default:
		return false
	}
}

// Stop stops accepting tasks and waits for queued ones to finish. When ctx
// expires first, running tasks are cancelled.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	started := p.started
	close(p.tasks)
	p.mu.Unlock()

	if !started {
		for t := range p.tasks {
			p.run(t)
		}
		p.cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		_ = p.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		slog.Info("dispatcher drained")
		return nil
	case <-ctx.Done():
		p.cancel()
		return errs.Wrap(ctx.Err(), "dispatcher drain interrupted")
	}
}

func (p *Pool) run(t task) {
	ctx, cancel := context.WithTimeout(p.baseCtx, p.timeout)
	defer cancel()

	start := time.Now()
	err := safeCall(ctx, t.fn)
	if err != nil {
		slog.Error("background task failed",
			"task", t.name,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error())
		return
	}
	slog.Debug("background task finished",
		"task", t.name,
		"duration_ms", time.Since(start).Milliseconds())
}

func safeCall(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.New(fmt.Sprintf("panic: %v", r))
		}
	}()
	return fn(ctx)
}
