package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/application/settings"
	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/commands"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderAdvancementJob *OrderAdvancementJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	advanceOrdersHandler commands.AdvanceOrdersCommandHandler,
	routing *settings.AdvanceRouting,
	jobMetrics *metrics.JobMetrics,
	advanceInterval time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderAdvancementJob: NewOrderAdvancementJob(
			advanceOrdersHandler, routing, jobMetrics, advanceInterval, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderAdvancementJob.Start(); err != nil {
		return fmt.Errorf("failed to start order advancement job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderAdvancementJob.Stop()
}
