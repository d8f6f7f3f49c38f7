package worker

import (
	"context"
	"time"

	"barberpro/internal/events"
	"barberpro/internal/export"
	"barberpro/internal/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// LedgerWorker keeps the Excel appointment ledger fresh. It rewrites the
// ledger after every confirmed booking and on a nightly cron schedule.
// The notify channel has capacity one so bursts of bookings coalesce
// into a single rewrite.
type LedgerWorker struct {
	exporter    *export.LedgerExporter
	retryPolicy RetryPolicy
	schedule    string
	notify      chan struct{}
	logger      *zerolog.Logger
}

func NewLedgerWorker(exporter *export.LedgerExporter, retry RetryPolicy, schedule string, logger *zerolog.Logger) *LedgerWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &LedgerWorker{
		exporter:    exporter,
		retryPolicy: retry,
		schedule:    schedule,
		notify:      make(chan struct{}, 1),
		logger:      logger,
	}
}

// Trigger requests a ledger rewrite. Non-blocking: if a rewrite is
// already pending the request coalesces into it.
func (w *LedgerWorker) Trigger() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Subscribe wires the worker to the event bus so every confirmed
// appointment schedules a rewrite.
func (w *LedgerWorker) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventAppointmentCreated, func(_ *events.Event) error {
		w.Trigger()
		return nil
	})
}

// Start launches the main loop; stops when ctx is done.
func (w *LedgerWorker) Start(ctx context.Context) {
	w.logger.Info().Str("schedule", w.schedule).Msg("ledger worker started")
	defer w.logger.Info().Msg("ledger worker stopped")

	var c *cron.Cron
	if w.schedule != "" {
		c = cron.New()
		if _, err := c.AddFunc(w.schedule, w.Trigger); err != nil {
			w.logger.Warn().Err(err).Str("schedule", w.schedule).Msg("invalid export schedule, nightly rebuild disabled")
		} else {
			c.Start()
			defer c.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.notify:
			w.exportWithRetry(ctx)
		}
	}
}

func (w *LedgerWorker) exportWithRetry(ctx context.Context) {
	var lastErr error
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		path, err := w.exporter.Export(ctx)
		if err == nil {
			metrics.IncLedgerExport("ok")
			w.logger.Debug().Str("file_path", path).Int("attempt", attempt).Msg("ledger export done")
			return
		}
		lastErr = err

		delay := w.retryPolicy.NextDelay(attempt)
		w.logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("ledger export failed")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}

	metrics.IncLedgerExport("error")
	w.logger.Error().Err(lastErr).Int("attempts", w.retryPolicy.MaxRetries).Msg("ledger export gave up")
}
