package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/notekeeper/cmd/app/commands"
	"github.com/allisson/notekeeper/internal/app"
	"github.com/allisson/notekeeper/internal/config"
)

func getMaintenanceCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "clean-expired-sessions",
			Usage: "Delete key sessions that expired or were revoked more than the given days ago",
			Flags: []cli.Flag{
				daysFlag("Delete key sessions older than this many days"),
				dryRunFlag("Show how many key sessions would be deleted without deleting"),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(ctx, cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keySessionUseCase, err := container.KeySessionUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanExpiredSessions(
					ctx,
					keySessionUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "clean-expired-tokens",
			Usage: "Delete auth tokens that expired more than the given days ago",
			Flags: []cli.Flag{
				daysFlag("Delete expired tokens older than this many days"),
				dryRunFlag("Show how many tokens would be deleted without deleting"),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(ctx, cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanExpiredTokens(
					ctx,
					accountUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
