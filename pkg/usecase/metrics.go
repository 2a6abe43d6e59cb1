package usecase

import (
	"context"
	"log/slog"

	"github.com/gobwas/glob"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/deploystat/pkg/domain"
	"github.com/m-mizutani/deploystat/pkg/domain/interfaces"
	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type MetricsUseCase struct {
	github   interfaces.GitHubService
	progress interfaces.Progress
}

type MetricsUseCaseOptions struct {
	GitHub   interfaces.GitHubService
	Progress interfaces.Progress
}

func NewMetricsUseCase(opts MetricsUseCaseOptions) *MetricsUseCase {
	progress := opts.Progress
	if progress == nil {
		progress = noopProgress{}
	}

	return &MetricsUseCase{
		github:   opts.GitHub,
		progress: progress,
	}
}

// CompilePattern compiles a shell-style glob where '*' also matches '/'
func CompilePattern(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, goerr.Wrap(domain.ErrConfiguration, "invalid glob pattern",
			goerr.V("pattern", pattern),
			goerr.V("error", err.Error()),
		)
	}
	return g, nil
}

// Execute walks every non-archived repository of the organization and builds
// a stat for each matching workflow that had runs in the period.
func (u *MetricsUseCase) Execute(ctx context.Context, cfg *model.MetricsConfig) (*model.Report, error) {
	logger := ctxlog.From(ctx)

	workflowGlob, err := CompilePattern(cfg.WorkflowPattern)
	if err != nil {
		return nil, err
	}

	branchPattern := cfg.BranchDeployPattern
	if branchPattern == "" {
		branchPattern = model.DefaultBranchDeployPattern
	}
	branchGlob, err := CompilePattern(branchPattern)
	if err != nil {
		return nil, err
	}

	repos, err := u.github.ListRepositories(ctx, cfg.Org)
	if err != nil {
		return nil, err
	}

	u.progress.Start()
	defer u.progress.Stop()

	var stats []*model.WorkflowStat
	for _, repo := range repos {
		logger.Debug("processing repo", slog.String("repo", repo.Name))

		if repo.Archived {
			logger.Debug("repo is archived - skipping", slog.String("repo", repo.Name))
			continue
		}
		u.progress.Update(repo.Name)

		repoStats, err := u.collectRepository(ctx, *repo, workflowGlob, cfg)
		if err != nil {
			return nil, err
		}
		stats = append(stats, repoStats...)
	}

	return &model.Report{
		Stats:   stats,
		Summary: model.Summarize(cfg.DateFilter, cfg.WorkflowPattern, stats, branchGlob),
	}, nil
}

func (u *MetricsUseCase) collectRepository(ctx context.Context, repo model.Repository, pattern glob.Glob, cfg *model.MetricsConfig) ([]*model.WorkflowStat, error) {
	logger := ctxlog.From(ctx)

	workflows, err := u.github.ListWorkflows(ctx, repo)
	if err != nil {
		return nil, err
	}

	var stats []*model.WorkflowStat
	for _, workflow := range workflows {
		logger.Debug("found workflow", slog.String("workflow", workflow.Name))

		if !pattern.Match(workflow.Name) {
			continue
		}
		logger.Debug("workflow matches pattern",
			slog.String("workflow", workflow.Name),
			slog.String("pattern", cfg.WorkflowPattern),
		)

		stat, err := u.collectWorkflow(ctx, repo, workflow, cfg)
		if err != nil {
			return nil, err
		}
		if stat != nil {
			stats = append(stats, stat)
		}
	}

	return stats, nil
}

// collectWorkflow returns nil when the workflow had no runs in the period
func (u *MetricsUseCase) collectWorkflow(ctx context.Context, repo model.Repository, workflow *model.Workflow, cfg *model.MetricsConfig) (*model.WorkflowStat, error) {
	logger := ctxlog.From(ctx)

	runs, err := u.github.ListWorkflowRuns(ctx, repo, workflow.ID, cfg.DateFilter)
	if err != nil {
		return nil, err
	}

	logger.Debug("found workflow runs",
		slog.String("workflow", workflow.Name),
		slog.Int("count", len(runs)),
	)
	if len(runs) == 0 {
		return nil, nil
	}

	agg := model.NewAggregator(model.StatKey{Repository: repo.Name, Workflow: workflow.Name}, cfg.IncludeManualRuns)
	for _, run := range runs {
		if !run.Eligible(cfg.IncludeManualRuns) {
			logger.Debug("workflow run was manually invoked - excluding from stats",
				slog.Int64("run_id", run.ID),
			)
			continue
		}

		duration, err := u.github.GetRunDuration(ctx, repo, run.ID)
		if err != nil {
			return nil, err
		}
		run.DurationMS = duration

		logger.Debug("workflow run finished",
			slog.Int64("run_id", run.ID),
			slog.Int64("duration_ms", duration),
			slog.String("conclusion", string(run.Conclusion)),
			slog.String("actor", run.ActorLogin()),
		)
		agg.Add(run)
	}

	return agg.Stat(), nil
}

type noopProgress struct{}

func (noopProgress) Start() {}
func (noopProgress) Update(string) {}
func (noopProgress) Stop() {}
