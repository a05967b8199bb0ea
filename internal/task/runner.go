package task

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Execution runs in ten progress steps; the simulated failure, when it
// strikes, hits on the next-to-last step.
const progressSteps = 10

// RunnerConfig holds configuration for the task runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 4,
		QueueSize:   100,
	}
}

// queued pairs a task ID with the context its execution must respect.
type queued struct {
	id  uuid.UUID
	ctx context.Context
}

// Runner manages background task processing with a fixed worker pool and
// a bounded queue.
type Runner struct {
	registry   *Registry
	taskChan   chan queued
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger

	// failureFn decides the simulated random failure; injectable for tests.
	failureFn func() bool
	// stepDelay maps a task's total duration to one progress step's wait;
	// injectable for tests.
	stepDelay func(durationSeconds int) time.Duration
}

// NewRunner creates a new Runner over the given registry.
func NewRunner(registry *Registry, config RunnerConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		registry:   registry,
		taskChan:   make(chan queued, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "task_runner")),
		failureFn: func() bool {
			return rand.Intn(20) == 0
		},
		stepDelay: func(durationSeconds int) time.Duration {
			return time.Duration(durationSeconds) * time.Second / progressSteps
		},
	}
}

// Submit registers the task and queues it for execution. Returns an error
// if the queue is full.
func (r *Runner) Submit(t *Task) error {
	taskCtx, cancel := context.WithCancel(r.ctx)
	r.registry.Add(t, cancel)

	select {
	case r.taskChan <- queued{id: t.ID, ctx: taskCtx}:
		return nil
	default:
		cancel()
		r.registry.Finish(t.ID, StatusFailed, "queue full")
		return fmt.Errorf("task queue is full, try again later")
	}
}

// Start launches the worker pool.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

// Stop cancels all running tasks and waits for the workers to exit.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
}

// worker processes tasks from the queue.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case q, ok := <-r.taskChan:
			if !ok {
				return
			}
			r.processTask(q, id)
		}
	}
}

// processTask executes one task: ten progress steps with a cancellation
// check between each, and a simulated 1-in-20 failure near the end.
func (r *Runner) processTask(q queued, workerID int) {
	log := r.logger.With(
		slog.String("task_id", q.id.String()),
		slog.Int("worker_id", workerID),
	)

	// Cancelled while still queued.
	if !r.registry.StartProcessing(q.id) {
		log.Debug("skipping task, no longer pending")
		return
	}

	t, err := r.registry.Get(q.id)
	if err != nil {
		return
	}

	log.Info("processing task", slog.String("name", t.Name))

	step := r.stepDelay(t.Duration)
	timer := time.NewTimer(step)
	defer timer.Stop()

	for i := 0; i < progressSteps; i++ {
		select {
		case <-q.ctx.Done():
			// Status was already flipped to cancelled by the registry.
			log.Info("task cancelled")
			return
		case <-timer.C:
		}
		timer.Reset(step)

		r.registry.SetProgress(q.id, (i+1)*100/progressSteps)

		if i == progressSteps-2 && r.failureFn() {
			r.registry.Finish(q.id, StatusFailed, "simulated random failure")
			log.Warn("task failed", slog.String("reason", "simulated random failure"))
			return
		}
	}

	r.registry.Finish(q.id, StatusCompleted, "")
	log.Info("task completed")
}
