package cli

import (
	"github.com/m-mizutani/deploystat/pkg/domain"
	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/deploystat/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	Org               string
	WorkflowPattern   string
	DateFilter        string
	Detailed          bool
	IncludeManualRuns bool
	Verbose           bool
	Token             string
	EnvFile           string
	ConfigPath        string
	Format            string
	SlackWebhook      string
	BaseURL           string
}

func NewConfig() *Config {
	return &Config{
		EnvFile: ".env",
		Format:  FormatText,
	}
}

// ConfigFromCommand reads parsed flag values
func ConfigFromCommand(cmd *cli.Command) *Config {
	return &Config{
		Org:               cmd.String("org-name"),
		WorkflowPattern:   cmd.String("deploy-workflow-pattern"),
		DateFilter:        cmd.String("date-filter"),
		Detailed:          cmd.Bool("detailed"),
		IncludeManualRuns: cmd.Bool("include-manual-runs"),
		Verbose:           cmd.Bool("verbose"),
		Token:             cmd.String("github-pat"),
		EnvFile:           cmd.String("env-file"),
		ConfigPath:        cmd.String("config"),
		Format:            cmd.String("format"),
		SlackWebhook:      cmd.String("slack-webhook"),
		BaseURL:           cmd.String("base-url"),
	}
}

func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return goerr.Wrap(domain.ErrConfiguration, "unsupported output format", goerr.V("format", c.Format))
	}

	if c.Org == "" || c.WorkflowPattern == "" || c.DateFilter == "" {
		return goerr.Wrap(domain.ErrConfiguration, "org name, workflow pattern and date filter are required")
	}

	return nil
}

func (c *Config) ToMetricsConfig(fileConfig *model.Config) *model.MetricsConfig {
	return &model.MetricsConfig{
		Org:                 c.Org,
		WorkflowPattern:     c.WorkflowPattern,
		DateFilter:          c.DateFilter,
		IncludeManualRuns:   c.IncludeManualRuns,
		BranchDeployPattern: fileConfig.GetBranchDeployPattern(),
	}
}

// SlackConfig merges the webhook flag over the config file section
func (c *Config) SlackConfig(fileConfig *model.Config) model.SlackConfig {
	slack := model.SlackConfig{}
	if fileConfig != nil {
		slack = fileConfig.Slack
	}
	if c.SlackWebhook != "" {
		slack.WebhookURL = c.SlackWebhook
	}
	return slack
}

func DefineFlags() []cli.Flag {
	defaults := NewConfig()

	return []cli.Flag{
		&cli.StringFlag{
			Name:  "org-name",
			Usage: "GitHub organization name (required)",
		},
		&cli.StringFlag{
			Name:  "deploy-workflow-pattern",
			Usage: "Glob matching deploy workflow names, e.g. \"Deploy*\" (required)",
		},
		&cli.StringFlag{
			Name:  "date-filter",
			Usage: "Run creation date filter, e.g. 2024-01-01..2024-01-31 (required)",
		},
		&cli.BoolFlag{
			Name:  "detailed",
			Usage: "Show detailed output for each repo and workflow",
		},
		&cli.BoolFlag{
			Name:  "include-manual-runs",
			Usage: "Include manually dispatched runs in stats computations",
		},
		&cli.StringFlag{
			Name:    "github-pat",
			Usage:   "GitHub access token",
			Sources: cli.EnvVars(usecase.TokenEnvName),
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Optional env file providing " + usecase.TokenEnvName,
			Value: defaults.EnvFile,
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Config file path (default: ~/.config/deploystat/config.yml)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json or yaml",
			Value:   defaults.Format,
		},
		&cli.StringFlag{
			Name:  "slack-webhook",
			Usage: "Post the summary to this Slack incoming webhook",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "GitHub Enterprise Server URL",
		},
	}
}
