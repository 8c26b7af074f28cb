package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/notekeeper/cmd/app/commands"
	"github.com/allisson/notekeeper/internal/app"
	"github.com/allisson/notekeeper/internal/config"
)

// withSessionManager runs fn with the client Session Key Manager of a fresh container.
func withSessionManager(
	ctx context.Context,
	fn func(deps commands.SessionDeps) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(ctx, cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	manager, err := container.SessionManager()
	if err != nil {
		return err
	}

	return fn(commands.SessionDeps{
		Manager: manager,
		Logger:  container.Logger(),
		IO:      commands.DefaultIO(),
	})
}

func getSessionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "register",
			Usage: "Create an account on the Auth Backend (password read from stdin)",
			Flags: []cli.Flag{usernameFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSessionManager(ctx, func(deps commands.SessionDeps) error {
					return commands.RunRegister(ctx, deps, cmd.String("username"))
				})
			},
		},
		{
			Name:  "login",
			Usage: "Log in and store an encrypted session (password read from stdin)",
			Flags: []cli.Flag{usernameFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSessionManager(ctx, func(deps commands.SessionDeps) error {
					return commands.RunLogin(ctx, deps, cmd.String("username"), cmd.String("format"))
				})
			},
		},
		{
			Name:  "status",
			Usage: "Resume the stored session and print the authentication state",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSessionManager(ctx, func(deps commands.SessionDeps) error {
					return commands.RunStatus(ctx, deps, cmd.String("format"))
				})
			},
		},
		{
			Name:  "logout",
			Usage: "Clear the stored session",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSessionManager(ctx, func(deps commands.SessionDeps) error {
					return commands.RunLogout(ctx, deps)
				})
			},
		},
	}
}
