package interfaces

import (
	"context"

	"github.com/m-mizutani/deploystat/pkg/domain/model"
)

// GitHubService is the read-only view of the hosting API used to collect metrics
type GitHubService interface {
	ListRepositories(ctx context.Context, org string) ([]*model.Repository, error)
	ListWorkflows(ctx context.Context, repo model.Repository) ([]*model.Workflow, error)
	ListWorkflowRuns(ctx context.Context, repo model.Repository, workflowID int64, created string) ([]*model.WorkflowRun, error)
	GetRunDuration(ctx context.Context, repo model.Repository, runID int64) (int64, error)
}
