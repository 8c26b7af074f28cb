package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keysessionMocks "github.com/allisson/notekeeper/internal/keysession/usecase/mocks"
)

func TestRunCleanExpiredSessions(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("text-dry-run", func(t *testing.T) {
		mockUseCase := &keysessionMocks.MockKeySessionUseCase{}
		mockUseCase.On("CleanupExpired", ctx, 7, true).Return(int64(3), nil)

		var out bytes.Buffer
		err := RunCleanExpiredSessions(ctx, mockUseCase, logger, &out, 7, true, "text")

		require.NoError(t, err)
		assert.Equal(t, "Dry-run mode: Would delete 3 key session(s) older than 7 day(s)\n", out.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		mockUseCase := &keysessionMocks.MockKeySessionUseCase{}
		mockUseCase.On("CleanupExpired", ctx, 0, false).Return(int64(12), nil)

		var out bytes.Buffer
		err := RunCleanExpiredSessions(ctx, mockUseCase, logger, &out, 0, false, "json")
		require.NoError(t, err)

		var result cleanupResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, cleanupResult{Count: 12, Days: 0, DryRun: false}, result)
	})

	t.Run("invalid-format", func(t *testing.T) {
		mockUseCase := &keysessionMocks.MockKeySessionUseCase{}

		err := RunCleanExpiredSessions(ctx, mockUseCase, logger, &bytes.Buffer{}, 1, false, "yaml")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format: yaml")
		mockUseCase.AssertNotCalled(t, "CleanupExpired")
	})
}
