package cli

import (
	"github.com/urfave/cli/v3"
)

func NewCommand() *cli.Command {
	flags := append(DefineFlags(),
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
			Value: false,
		},
	)

	return &cli.Command{
		Name:    "deploystat",
		Usage:   "Deployment workflow metrics for a GitHub organization",
		Version: "0.1.0",
		Description: `deploystat collects GitHub Actions runs of deploy workflows across an organization
and reports success/failure rates, average durations and deployers.

The access token is read from --github-pat or GITHUB_TOKEN, which may live in a .env file.`,
		Flags:  flags,
		Action: RunMetrics,
		Commands: []*cli.Command{
			NewConfigCommand(),
		},
	}
}
