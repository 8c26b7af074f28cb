package commands

import (
	"context"
	"io"
	"log/slog"

	accountUseCase "github.com/allisson/notekeeper/internal/account/usecase"
)

// RunCleanExpiredTokens deletes auth tokens that expired more than days ago.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredTokens(
	ctx context.Context,
	useCase accountUseCase.AccountUseCase,
	logger *slog.Logger,
	w io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	return runCleanup(ctx, logger, w, "expired token(s)", days, dryRun, format, useCase.CleanupExpiredTokens)
}
