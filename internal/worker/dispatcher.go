package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"contact-form-backend/internal/domain"

	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers       = 2
	defaultQueueSize     = 64
	defaultTimeout       = 30 * time.Second
	defaultOutcomeBuffer = 64
)

var (
	// ErrQueueFull is returned by Enqueue when every queue slot is taken
	ErrQueueFull = errors.New("delivery queue is full")
	// ErrDispatcherClosed is returned by Enqueue after Shutdown
	ErrDispatcherClosed = errors.New("delivery dispatcher is closed")
	// ErrNotStarted is returned by Shutdown when Start was never called
	ErrNotStarted = errors.New("delivery dispatcher was not started")
)

// DeliverFunc performs one delivery task
type DeliverFunc func(ctx context.Context, task *domain.DeliveryTask) error

// Config tunes the dispatcher. Zero values fall back to defaults.
type Config struct {
	Workers       int
	QueueSize     int
	Timeout       time.Duration // per-task deadline
	OutcomeBuffer int
}

// Dispatcher runs delivery tasks with at most Workers in flight and publishes
// one DeliveryOutcome per task. Tasks are never retried.
type Dispatcher struct {
	deliver  DeliverFunc
	cfg      Config
	logger   *slog.Logger
	tasks    chan *domain.DeliveryTask
	outcomes chan domain.DeliveryOutcome

	mu      sync.RWMutex
	started bool
	closed  bool
	done    chan struct{} // closed once every accepted task has run
}

// NewDispatcher creates a dispatcher. Call Start to begin processing.
func NewDispatcher(deliver DeliverFunc, cfg Config, logger *slog.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.OutcomeBuffer <= 0 {
		cfg.OutcomeBuffer = defaultOutcomeBuffer
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Dispatcher{
		deliver:  deliver,
		cfg:      cfg,
		logger:   logger,
		tasks:    make(chan *domain.DeliveryTask, cfg.QueueSize),
		outcomes: make(chan domain.DeliveryOutcome, cfg.OutcomeBuffer),
	}
}

// Start launches the dispatch loop. Cancelling ctx does not abort deliveries
// in flight; use Shutdown to stop.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	d.done = make(chan struct{})

	base := context.WithoutCancel(ctx)
	group := new(errgroup.Group)
	group.SetLimit(d.cfg.Workers)

	go func() {
		defer close(d.done)
		// Go blocks while Workers tasks are running, so the queue absorbs bursts
		for task := range d.tasks {
			task := task
			group.Go(func() error {
				d.run(base, task)
				return nil
			})
		}
		_ = group.Wait()
	}()

	d.logger.Info("delivery dispatcher started", "workers", d.cfg.Workers, "queue_size", d.cfg.QueueSize)
}

// Enqueue hands task to the workers without blocking
func (d *Dispatcher) Enqueue(task *domain.DeliveryTask) error {
	if task == nil {
		return errors.New("delivery task is nil")
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Outcomes returns the channel of finished tasks. It is closed by Shutdown
// once every queued task has run. Outcomes are dropped when nobody reads and
// the buffer is full.
func (d *Dispatcher) Outcomes() <-chan domain.DeliveryOutcome {
	return d.outcomes
}

// Shutdown stops accepting tasks and waits for queued ones to finish or for
// ctx to expire, whichever comes first.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return ErrNotStarted
	}
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		<-d.done
		close(d.outcomes)
		close(finished)
	}()

	select {
	case <-finished:
		d.logger.Info("delivery dispatcher stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("delivery dispatcher shutdown: %w", ctx.Err())
	}
}

func (d *Dispatcher) run(base context.Context, task *domain.DeliveryTask) {
	ctx, cancel := context.WithTimeout(base, d.cfg.Timeout)
	defer cancel()

	outcome := domain.DeliveryOutcome{
		TaskID:    task.ID,
		Recipient: task.Recipient,
		StartedAt: time.Now(),
	}
	outcome.Err = d.safeDeliver(ctx, task)
	outcome.FinishedAt = time.Now()

	d.logger.Debug("delivery task finished",
		"task_id", task.ID.String(),
		"duration", outcome.FinishedAt.Sub(outcome.StartedAt),
		"ok", outcome.Err == nil,
	)

	select {
	case d.outcomes <- outcome:
	default:
		d.logger.Warn("delivery outcome dropped, nobody is reading", "task_id", task.ID.String())
	}
}

func (d *Dispatcher) safeDeliver(ctx context.Context, task *domain.DeliveryTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delivery panicked: %v", r)
		}
	}()
	return d.deliver(ctx, task)
}
