// Package task implements the background demo jobs: transient records
// processed by a worker pool with per-task cancellation and scheduled
// cleanup of finished work.
//
// Tasks are deliberately in-memory only. They exist to demonstrate
// asynchronous processing and do not survive a restart.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a task.
type Status string

// Possible task status values.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Cancellable reports whether a task in this status may still be cancelled.
func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}

// Finished reports whether the task has reached a terminal status.
func (s Status) Finished() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Task is one background job. Progress runs 0-100 in ten steps while the
// job executes.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Progress    int        `json:"progress"`
	Duration    int        `json:"duration"` // seconds
	Error       string     `json:"error,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatorName string     `json:"created_by_name"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// New creates a pending task for the given creator.
func New(createdBy uuid.UUID, creatorName, name, description string, durationSeconds int) *Task {
	return &Task{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Status:      StatusPending,
		Duration:    durationSeconds,
		CreatedBy:   createdBy,
		CreatorName: creatorName,
		CreatedAt:   time.Now().UTC(),
	}
}
