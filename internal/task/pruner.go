package task

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron"
)

// Pruner periodically removes finished tasks that have aged past the
// retention window, so the in-memory registry does not grow without bound.
type Pruner struct {
	registry  *Registry
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPruner creates a pruner that sweeps the registry every minute,
// dropping finished tasks older than retention.
func NewPruner(registry *Registry, retention time.Duration, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pruner{
		registry:  registry,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With(slog.String("component", "task_pruner")),
	}
}

// Start schedules the sweep.
func (p *Pruner) Start() error {
	if err := p.cron.AddFunc("@every 1m", p.sweep); err != nil {
		return fmt.Errorf("failed to schedule task pruning: %w", err)
	}
	p.cron.Start()
	return nil
}

// Stop halts the schedule. A sweep already in flight finishes.
func (p *Pruner) Stop() {
	p.cron.Stop()
}

// sweep runs one pruning pass.
func (p *Pruner) sweep() {
	if removed := p.registry.PruneFinished(p.retention); removed > 0 {
		p.logger.Info("pruned finished tasks",
			slog.Int("removed", removed),
			slog.Int("remaining", p.registry.Len()))
	}
}
