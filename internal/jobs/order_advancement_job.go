package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sparrow-trajon/order-processing-system/internal/core/application/settings"
	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/commands"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/metrics"
)

// OrderAdvancementJob runs the scheduled bulk sweep that moves every order
// sitting in the configured source status to the configured target status.
// The status pair is read from runtime settings on each run, so operators can
// repoint the sweep without restarting the service.
type OrderAdvancementJob struct {
	handler commands.AdvanceOrdersCommandHandler
	routing *settings.AdvanceRouting
	metrics *metrics.JobMetrics

	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderAdvancementJob creates the advancement sweep job.
func NewOrderAdvancementJob(
	handler commands.AdvanceOrdersCommandHandler,
	routing *settings.AdvanceRouting,
	jobMetrics *metrics.JobMetrics,
	interval time.Duration,
	logger *slog.Logger,
) *OrderAdvancementJob {
	return &OrderAdvancementJob{
		handler:  handler,
		routing:  routing,
		metrics:  jobMetrics,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.With("component", "order_advancement_job"),
	}
}

// Start schedules the sweep at the configured interval.
func (j *OrderAdvancementJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order advancement job started",
		"interval", j.interval.String())
	return nil
}

// Stop stops the sweep.
func (j *OrderAdvancementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order advancement job stopped")
}

func (j *OrderAdvancementJob) run() {
	ctx := context.Background()
	start := time.Now()

	fromCode := j.routing.Source(ctx)
	toCode := j.routing.Target(ctx)

	cmd, err := commands.NewAdvanceOrdersCommand(fromCode, toCode)
	if err != nil {
		j.metrics.Runs.WithLabelValues("order_advancement", "invalid").Inc()
		j.logger.ErrorContext(ctx, "Order advancement routing is invalid",
			"from", fromCode, "to", toCode, "error", err)
		return
	}

	moved, err := j.handler.Handle(ctx, cmd)
	j.metrics.DurationMS.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		j.metrics.Runs.WithLabelValues("order_advancement", "error").Inc()
		j.logger.ErrorContext(ctx, "Order advancement sweep failed",
			"from", fromCode, "to", toCode, "error", err)
		return
	}

	j.metrics.Runs.WithLabelValues("order_advancement", "success").Inc()
	j.metrics.AdvancedOrders.Add(float64(moved))

	if moved > 0 {
		j.logger.InfoContext(ctx, "Order advancement sweep completed",
			"from", fromCode, "to", toCode, "moved", moved)
	}
}
