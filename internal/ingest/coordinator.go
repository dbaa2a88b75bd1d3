package ingest

import (
	"context"
	"log/slog"
	"time"
)

// Runner executes one ingestion cycle. Implemented by Cycle.
type Runner interface {
	Run(ctx context.Context) Report
}

// Coordinator drives periodic ingestion cycles for daemon mode.
type Coordinator struct {
	cycle    Runner
	interval time.Duration
}

// NewCoordinator creates a coordinator running cycle every interval.
func NewCoordinator(cycle Runner, interval time.Duration) *Coordinator {
	return &Coordinator{cycle: cycle, interval: interval}
}

// Run starts the coordinator loop. Blocks until ctx is cancelled.
//
// The first cycle runs immediately so a fresh daemon picks up pending
// breaking items without waiting a full interval. Cycles never overlap:
// the next tick fires only after the previous cycle returns.
func (c *Coordinator) Run(ctx context.Context) {
	slog.Info("ingest coordinator started",
		"component", "ingest",
		"worker", "ingest-coordinator",
		"interval", c.interval.String(),
	)

	c.cycle.Run(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ingest coordinator stopped",
				"component", "ingest",
				"worker", "ingest-coordinator",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			c.cycle.Run(ctx)
		}
	}
}
