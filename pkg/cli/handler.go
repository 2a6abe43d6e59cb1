package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/deploystat/pkg/domain"
	"github.com/m-mizutani/deploystat/pkg/domain/interfaces"
	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/deploystat/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func RunMetrics(ctx context.Context, cmd *cli.Command) error {
	config := ConfigFromCommand(cmd)
	stdout, stderr := writers(cmd)

	logLevel := slog.LevelInfo
	if config.Verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	ctx = ctxlog.With(ctx, logger)

	if err := config.Validate(); err != nil {
		return err
	}

	fileConfig, err := loadFileConfig(config.ConfigPath)
	if err != nil {
		return err
	}

	authService := usecase.NewAuthService(config.Token, config.EnvFile)
	client, err := authService.GetAuthenticatedClient(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMissingToken) {
			logger.Error("GitHub access token is not set",
				slog.String("env", usecase.TokenEnvName),
			)
		}
		return err
	}

	if config.BaseURL != "" {
		client, err = client.WithEnterpriseURLs(config.BaseURL, config.BaseURL)
		if err != nil {
			return goerr.Wrap(domain.ErrConfiguration, "invalid GitHub base URL",
				goerr.V("url", config.BaseURL),
				goerr.V("error", err.Error()),
			)
		}
	}

	var progress interfaces.Progress
	if !config.Verbose {
		progress = NewProgress(stderr)
	}

	metrics := usecase.NewMetricsUseCase(usecase.MetricsUseCaseOptions{
		GitHub:   usecase.NewGitHubService(client),
		Progress: progress,
	})

	logger.Debug("collecting deployment metrics",
		slog.String("org", config.Org),
		slog.String("pattern", config.WorkflowPattern),
		slog.String("date_filter", config.DateFilter),
		slog.Bool("include_manual_runs", config.IncludeManualRuns),
	)

	report, err := metrics.Execute(ctx, config.ToMetricsConfig(fileConfig))
	if err != nil {
		return err
	}

	noColor := color.NoColor || stdout != io.Writer(os.Stdout)
	reporter := NewReporter(config.Format, stdout, config.Detailed, noColor)
	if err := reporter.Report(report); err != nil {
		return err
	}

	if slackConfig := config.SlackConfig(fileConfig); slackConfig.WebhookURL != "" {
		notifier := usecase.NewSlackNotifier(slackConfig)
		if err := notifier.NotifySummary(ctx, report.Summary); err != nil {
			logger.Warn("failed to notify summary",
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

func loadFileConfig(path string) (*model.Config, error) {
	service := usecase.NewConfigService()
	if path == "" {
		return service.LoadDefault()
	}
	return service.Load(path)
}

func writers(cmd *cli.Command) (stdout, stderr io.Writer) {
	stdout, stderr = os.Stdout, os.Stderr
	root := cmd.Root()
	if root.Writer != nil {
		stdout = root.Writer
	}
	if root.ErrWriter != nil {
		stderr = root.ErrWriter
	}
	return stdout, stderr
}
