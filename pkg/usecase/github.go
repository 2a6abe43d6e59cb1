package usecase

import (
	"context"
	"log/slog"

	"github.com/google/go-github/v74/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/deploystat/pkg/domain/interfaces"
	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

const perPage = 100

type GitHubService struct {
	client *github.Client
}

func NewGitHubService(client *github.Client) interfaces.GitHubService {
	return &GitHubService{
		client: client,
	}
}

func (s *GitHubService) ListRepositories(ctx context.Context, org string) ([]*model.Repository, error) {
	opts := &github.RepositoryListByOrgOptions{
		Type: "all",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var repos []*model.Repository
	for {
		page, resp, err := s.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list repositories", goerr.V("org", org))
		}

		for _, repo := range page {
			repos = append(repos, &model.Repository{
				Owner:    org,
				Name:     repo.GetName(),
				Archived: repo.GetArchived(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	ctxlog.From(ctx).Debug("fetched repositories",
		slog.String("org", org),
		slog.Int("count", len(repos)),
	)

	return repos, nil
}

func (s *GitHubService) ListWorkflows(ctx context.Context, repo model.Repository) ([]*model.Workflow, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var workflows []*model.Workflow
	for {
		page, resp, err := s.client.Actions.ListWorkflows(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list workflows", goerr.V("repo", repo.FullName()))
		}

		for _, wf := range page.Workflows {
			workflows = append(workflows, &model.Workflow{
				ID:    wf.GetID(),
				Name:  wf.GetName(),
				Path:  wf.GetPath(),
				State: wf.GetState(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return workflows, nil
}

// ListWorkflowRuns pages through runs created within the filter until the
// number received reaches the total count reported by the API.
func (s *GitHubService) ListWorkflowRuns(ctx context.Context, repo model.Repository, workflowID int64, created string) ([]*model.WorkflowRun, error) {
	logger := ctxlog.From(ctx)

	opts := &github.ListWorkflowRunsOptions{
		Created: created,
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}

	var workflowRuns []*model.WorkflowRun
	for {
		runs, _, err := s.client.Actions.ListWorkflowRunsByID(ctx, repo.Owner, repo.Name, workflowID, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list workflow runs",
				goerr.V("repo", repo.FullName()),
				goerr.V("workflow_id", workflowID),
				goerr.V("page", opts.Page),
			)
		}

		for _, run := range runs.WorkflowRuns {
			workflowRuns = append(workflowRuns, convertRun(run))
		}

		total := runs.GetTotalCount()
		logger.Debug("fetched workflow run page",
			slog.String("repo", repo.FullName()),
			slog.Int64("workflow_id", workflowID),
			slog.Int("page", opts.Page),
			slog.Int("received", len(workflowRuns)),
			slog.Int("total", total),
		)

		if len(workflowRuns) >= total || len(runs.WorkflowRuns) == 0 {
			break
		}
		opts.Page++
	}

	return workflowRuns, nil
}

// GetRunDuration returns the run's elapsed time in milliseconds, or 0 if the
// run never started
func (s *GitHubService) GetRunDuration(ctx context.Context, repo model.Repository, runID int64) (int64, error) {
	usage, _, err := s.client.Actions.GetWorkflowRunUsageByID(ctx, repo.Owner, repo.Name, runID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get workflow run timing",
			goerr.V("repo", repo.FullName()),
			goerr.V("run_id", runID),
		)
	}

	return usage.GetRunDurationMS(), nil
}

func convertRun(run *github.WorkflowRun) *model.WorkflowRun {
	actor := run.GetTriggeringActor().GetLogin()
	if actor == "" {
		actor = run.GetActor().GetLogin()
	}

	return &model.WorkflowRun{
		ID:         run.GetID(),
		Conclusion: model.WorkflowConclusion(run.GetConclusion()),
		Actor:      actor,
		Event:      run.GetEvent(),
		URL:        run.GetHTMLURL(),
		CreatedAt:  run.GetCreatedAt().Time,
	}
}
