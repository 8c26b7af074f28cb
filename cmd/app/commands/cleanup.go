package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// cleanupResult is the JSON shape printed by the clean-* commands.
type cleanupResult struct {
	Count  int64 `json:"count"`
	Days   int   `json:"days"`
	DryRun bool  `json:"dry_run"`
}

// runCleanup validates the common flags, runs cleanup and prints its result. subject is
// the plural noun used in text output, e.g. "expired token(s)".
func runCleanup(
	ctx context.Context,
	logger *slog.Logger,
	w io.Writer,
	subject string,
	days int,
	dryRun bool,
	format string,
	cleanup func(ctx context.Context, days int, dryRun bool) (int64, error),
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("cleaning "+subject,
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := cleanup(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to cleanup %s: %w", subject, err)
	}

	if format == "json" {
		if err := writeJSON(w, cleanupResult{Count: count, Days: days, DryRun: dryRun}); err != nil {
			return err
		}
	} else if dryRun {
		_, _ = fmt.Fprintf(w, "Dry-run mode: Would delete %d %s older than %d day(s)\n", count, subject, days)
	} else {
		_, _ = fmt.Fprintf(w, "Successfully deleted %d %s older than %d day(s)\n", count, subject, days)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)
	return nil
}
