package task

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry errors.
var (
	// ErrTaskNotFound indicates the requested task does not exist (it may
	// have been pruned).
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotCancellable indicates the task already reached a terminal
	// status and can no longer be cancelled.
	ErrNotCancellable = errors.New("task cannot be cancelled")
)

// Registry is the in-memory task table. All mutation goes through it so
// the runner's workers and the HTTP handlers never race on task fields.
type Registry struct {
	mu      sync.RWMutex
	tasks   map[uuid.UUID]*Task
	cancels map[uuid.UUID]context.CancelFunc
}

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks:   make(map[uuid.UUID]*Task),
		cancels: make(map[uuid.UUID]context.CancelFunc),
	}
}

// Add registers a task and the cancel function that aborts its execution.
func (r *Registry) Add(t *Task, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	r.cancels[t.ID] = cancel
}

// Get returns a snapshot of a task.
func (r *Registry) Get(id uuid.UUID) (Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return *t, nil
}

// List returns snapshots of all tasks visible to the given user, newest
// first. Admins see every task.
func (r *Registry) List(userID uuid.UUID, isAdmin bool) []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if !isAdmin && t.CreatedBy != userID {
			continue
		}
		tasks = append(tasks, *t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks
}

// Cancel aborts a pending or processing task. The status flips to
// cancelled immediately; the worker observes the context and stops.
func (r *Registry) Cancel(id uuid.UUID) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	if !t.Status.Cancellable() {
		return *t, ErrNotCancellable
	}

	t.Status = StatusCancelled
	if cancel, ok := r.cancels[id]; ok {
		cancel()
	}
	return *t, nil
}

// StartProcessing moves a pending task to processing with zero progress.
// Returns false if the task was cancelled (or removed) before a worker
// picked it up.
func (r *Registry) StartProcessing(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.Status != StatusPending {
		return false
	}
	t.Status = StatusProcessing
	t.Progress = 0
	return true
}

// SetProgress records execution progress (0-100). Progress on a task that
// is no longer processing is dropped.
func (r *Registry) SetProgress(id uuid.UUID, progress int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tasks[id]; ok && t.Status == StatusProcessing {
		t.Progress = progress
	}
}

// Finish moves a pending or processing task to a terminal status.
// Completion stamps CompletedAt; failure records the error message. A task
// already cancelled keeps its cancelled status.
func (r *Registry) Finish(id uuid.UUID, status Status, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || !t.Status.Cancellable() {
		return
	}

	t.Status = status
	t.Error = errMsg
	if status == StatusCompleted {
		now := time.Now().UTC()
		t.CompletedAt = &now
	}
	delete(r.cancels, id)
}

// PruneFinished drops finished tasks whose terminal state is older than
// the retention window. Returns the number of tasks removed.
func (r *Registry) PruneFinished(retention time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().UTC().Add(-retention)
	removed := 0
	for id, t := range r.tasks {
		if !t.Status.Finished() {
			continue
		}
		finishedAt := t.CreatedAt
		if t.CompletedAt != nil {
			finishedAt = *t.CompletedAt
		}
		if finishedAt.Before(cutoff) {
			delete(r.tasks, id)
			delete(r.cancels, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked tasks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
