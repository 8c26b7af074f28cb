package commands

import (
	"context"
	"io"
	"log/slog"

	keysessionUseCase "github.com/allisson/notekeeper/internal/keysession/usecase"
)

// RunCleanExpiredSessions deletes key sessions that expired, or were revoked, more than
// days ago.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredSessions(
	ctx context.Context,
	useCase keysessionUseCase.KeySessionUseCase,
	logger *slog.Logger,
	w io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	return runCleanup(ctx, logger, w, "key session(s)", days, dryRun, format, useCase.CleanupExpired)
}
