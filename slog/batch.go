package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pastescout"
)

// Ensure LoggingRunner implements pastescout.BatchRunner.
var _ pastescout.BatchRunner = (*LoggingRunner)(nil)

// LoggingRunner wraps a BatchRunner with logging. Per-paste failures are
// logged at debug level.
type LoggingRunner struct {
	next   pastescout.BatchRunner
	logger *slog.Logger
}

// NewLoggingRunner creates a new LoggingRunner.
func NewLoggingRunner(next pastescout.BatchRunner, logger *slog.Logger) *LoggingRunner {
	return &LoggingRunner{next: next, logger: logger}
}

// Run delegates to the wrapped runner and logs the batch totals.
func (r *LoggingRunner) Run(ctx context.Context, pastes []pastescout.Paste, progress pastescout.ProgressFunc) (result *pastescout.BatchResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"pastes", len(pastes), "duration", time.Since(begin), "err", err}
		if result != nil {
			attrs = append(attrs,
				"id", result.ID,
				"parsed", result.Parsed,
				"failed", result.Failed,
				"duplicates", result.Duplicates,
			)
		}
		r.logger.Info("batch", attrs...)
	}(time.Now())

	wrapped := func(e pastescout.ProgressEvent) {
		switch e.Type {
		case pastescout.ProgressFailed:
			r.logger.Debug("paste failed", "name", e.Name, "err", e.Error)
		case pastescout.ProgressSkipped:
			r.logger.Debug("paste skipped", "name", e.Name, "reason", "duplicate")
		}
		if progress != nil {
			progress(e)
		}
	}
	return r.next.Run(ctx, pastes, wrapped)
}
