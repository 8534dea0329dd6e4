package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of background work. The audit pipeline enqueues one job per
// domain event, with the event itself as the payload.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a single job. A non-nil error triggers a retry.
type Handler func(context.Context, Job) error

// QueueConfig sizes the worker pool. Zero values fall back to the audit
// defaults: one worker (audit events must persist in the order they were
// recorded), a 256-job buffer and three retries.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue dispatches buffered jobs to a fixed worker pool. Stop closes the
// intake and drains whatever is already buffered, so a clean shutdown does
// not lose recorded events.
type Queue struct {
	name       string
	handler    Handler
	workers    int
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	intake chan Job
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
	stopped bool
	cancel  context.CancelFunc
}

// NewQueue builds a queue; call Start before enqueueing.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 256
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:       name,
		handler:    handler,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger.With(zap.String("queue", name)),
		intake:     make(chan Job, cfg.BufferSize),
	}
}

// Start launches the workers. Calling Start twice is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running || q.stopped {
		return
	}
	workerCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	q.wg.Add(q.workers)
	for i := 0; i < q.workers; i++ {
		go q.work(workerCtx)
	}
	q.running = true
	q.logger.Info("queue started", zap.Int("workers", q.workers))
}

// Stop closes the intake, waits for buffered jobs to finish, then releases
// the workers.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.running || q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.intake)
	q.mu.Unlock()

	q.wg.Wait()
	q.cancel()
	q.logger.Info("queue stopped")
}

// Enqueue buffers a job for the workers. It fails when the queue has not
// been started, has been stopped, or the buffer is full; the caller decides
// whether that is fatal (the audit recorder only logs it).
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.running {
		return fmt.Errorf("queue %s is not running", q.name)
	}
	if q.stopped {
		return fmt.Errorf("queue %s is shutting down", q.name)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case q.intake <- job:
		return nil
	default:
		return fmt.Errorf("queue %s buffer is full", q.name)
	}
}

func (q *Queue) work(ctx context.Context) {
	defer q.wg.Done()
	for job := range q.intake {
		q.process(ctx, job)
	}
}

// process retries in place rather than re-enqueueing, which keeps later
// events from overtaking a failed one on the single-worker audit queue.
func (q *Queue) process(ctx context.Context, job Job) {
	for {
		err := q.handler(ctx, job)
		if err == nil {
			return
		}
		job.Attempt++
		if job.Attempt > q.maxRetries {
			q.logger.Error("job dropped after retries",
				zap.String("job_id", job.ID),
				zap.String("type", job.Type),
				zap.Error(err))
			return
		}
		q.logger.Warn("job failed, retrying",
			zap.String("job_id", job.ID),
			zap.String("type", job.Type),
			zap.Int("attempt", job.Attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(q.retryDelay):
		}
	}
}
