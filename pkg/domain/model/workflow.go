package model

import "time"

type WorkflowConclusion string

const (
	WorkflowConclusionSuccess        WorkflowConclusion = "success"
	WorkflowConclusionFailure        WorkflowConclusion = "failure"
	WorkflowConclusionNeutral        WorkflowConclusion = "neutral"
	WorkflowConclusionCancelled      WorkflowConclusion = "cancelled"
	WorkflowConclusionSkipped        WorkflowConclusion = "skipped"
	WorkflowConclusionTimedOut       WorkflowConclusion = "timed_out"
	WorkflowConclusionActionRequired WorkflowConclusion = "action_required"
	WorkflowConclusionStale          WorkflowConclusion = "stale"
	WorkflowConclusionStartupFailure WorkflowConclusion = "startup_failure"
)

const (
	// EventWorkflowDispatch is the trigger event of a manually started run
	EventWorkflowDispatch = "workflow_dispatch"

	// GhostActor is the login GitHub assigns to runs of deleted accounts
	GhostActor = "ghost"
)

// Outcome is the result of classifying a run conclusion
type Outcome int

const (
	OutcomeOther Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "other"
	}
}

// Classify maps a conclusion to success, failure or other. Conclusions
// outside both sets (stale, startup_failure, unknown values) are other.
func (c WorkflowConclusion) Classify() Outcome {
	switch c {
	case WorkflowConclusionSuccess,
		WorkflowConclusionNeutral,
		WorkflowConclusionCancelled,
		WorkflowConclusionSkipped,
		WorkflowConclusionActionRequired:
		return OutcomeSuccess
	case WorkflowConclusionFailure, WorkflowConclusionTimedOut:
		return OutcomeFailure
	default:
		return OutcomeOther
	}
}

type Workflow struct {
	ID    int64
	Name  string
	Path  string
	State string
}

type WorkflowRun struct {
	ID         int64
	Conclusion WorkflowConclusion
	Actor      string
	Event      string
	DurationMS int64
	URL        string
	CreatedAt  time.Time
}

func (r *WorkflowRun) IsManual() bool {
	return r.Event == EventWorkflowDispatch
}

// Eligible reports whether the run takes part in the statistics
func (r *WorkflowRun) Eligible(includeManual bool) bool {
	return includeManual || !r.IsManual()
}

// ActorLogin returns the login used for deployer attribution
func (r *WorkflowRun) ActorLogin() string {
	if r.Actor == "" {
		return GhostActor
	}
	return r.Actor
}
