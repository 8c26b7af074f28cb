package main

import (
	"github.com/urfave/cli/v3"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getMaintenanceCommands()...)
	cmds = append(cmds, getSessionCommands()...)
	return cmds
}

func daysFlag(usage string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:     "days",
		Aliases:  []string{"d"},
		Required: true,
		Usage:    usage,
	}
}

func dryRunFlag(usage string) *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "dry-run",
		Aliases: []string{"n"},
		Value:   false,
		Usage:   usage,
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func usernameFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "username",
		Aliases:  []string{"u"},
		Required: true,
		Usage:    "Account username",
	}
}
