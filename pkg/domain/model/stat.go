package model

import (
	"math"
	"sort"
)

// StatKey identifies a workflow within the organization
type StatKey struct {
	Repository string `json:"repository" yaml:"repository"`
	Workflow   string `json:"workflow" yaml:"workflow"`
}

// Deployers maps an actor login to the number of runs it triggered
type Deployers map[string]int

type DeployerCount struct {
	Login string `json:"login" yaml:"login"`
	Count int    `json:"count" yaml:"count"`
}

// Sorted returns the tally ordered by count, highest first, then by login
func (d Deployers) Sorted() []DeployerCount {
	list := make([]DeployerCount, 0, len(d))
	for login, count := range d {
		list = append(list, DeployerCount{Login: login, Count: count})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Login < list[j].Login
	})
	return list
}

func (d Deployers) merge(other Deployers) {
	for login, count := range other {
		d[login] += count
	}
}

// WorkflowStat is the aggregate of one workflow's eligible runs.
// Rates are percentages rounded to two decimals.
type WorkflowStat struct {
	Key           StatKey   `json:"key" yaml:"key"`
	TotalRuns     int       `json:"total_runs" yaml:"total_runs"`
	SuccessCount  int       `json:"success_count" yaml:"success_count"`
	FailureCount  int       `json:"failure_count" yaml:"failure_count"`
	OtherCount    int       `json:"other_count" yaml:"other_count"`
	SuccessRate   float64   `json:"success_rate" yaml:"success_rate"`
	FailureRate   float64   `json:"failure_rate" yaml:"failure_rate"`
	AvgDurationMS float64   `json:"avg_duration_ms" yaml:"avg_duration_ms"`
	Deployers     Deployers `json:"deployers" yaml:"deployers"`
}

// Aggregator folds the runs of a single workflow into a WorkflowStat
type Aggregator struct {
	key           StatKey
	includeManual bool

	totalRuns       int
	successCount    int
	failureCount    int
	otherCount      int
	totalDurationMS int64
	deployers       Deployers
}

func NewAggregator(key StatKey, includeManual bool) *Aggregator {
	return &Aggregator{
		key:           key,
		includeManual: includeManual,
		deployers:     make(Deployers),
	}
}

// Add accumulates a run and reports whether it was counted. Manual runs are
// skipped unless the aggregator includes them.
func (a *Aggregator) Add(run *WorkflowRun) bool {
	if !run.Eligible(a.includeManual) {
		return false
	}

	a.totalRuns++
	a.totalDurationMS += run.DurationMS
	a.deployers[run.ActorLogin()]++

	switch run.Conclusion.Classify() {
	case OutcomeSuccess:
		a.successCount++
	case OutcomeFailure:
		a.failureCount++
	default:
		a.otherCount++
	}

	return true
}

func (a *Aggregator) Stat() *WorkflowStat {
	stat := &WorkflowStat{
		Key:          a.key,
		TotalRuns:    a.totalRuns,
		SuccessCount: a.successCount,
		FailureCount: a.failureCount,
		OtherCount:   a.otherCount,
		Deployers:    make(Deployers, len(a.deployers)),
	}
	stat.Deployers.merge(a.deployers)

	if a.totalRuns == 0 {
		return stat
	}

	total := float64(a.totalRuns)
	stat.SuccessRate = roundRate(100.0 * float64(a.successCount) / total)
	stat.FailureRate = roundRate(100.0 * float64(a.failureCount) / total)
	stat.AvgDurationMS = float64(a.totalDurationMS) / total

	return stat
}

func roundRate(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary is the organization-wide rollup. Averages are unweighted means over
// workflows, so every workflow counts once regardless of its run volume.
type Summary struct {
	Period         string    `json:"period" yaml:"period"`
	Pattern        string    `json:"pattern" yaml:"pattern"`
	WorkflowCount  int       `json:"workflow_count" yaml:"workflow_count"`
	TotalRuns      int       `json:"total_runs" yaml:"total_runs"`
	AvgSuccessRate float64   `json:"avg_success_rate" yaml:"avg_success_rate"`
	AvgFailureRate float64   `json:"avg_failure_rate" yaml:"avg_failure_rate"`
	AvgDurationMS  float64   `json:"avg_duration_ms" yaml:"avg_duration_ms"`
	Deployers      Deployers `json:"deployers" yaml:"deployers"`
}

// Empty reports whether no workflow matched anywhere
func (s *Summary) Empty() bool {
	return s.WorkflowCount == 0
}

// NameMatcher decides whether a workflow name matches a pattern
type NameMatcher interface {
	Match(name string) bool
}

// Summarize rolls up workflow stats. Workflows whose name matches
// excludeDeployers keep their own tally but are left out of the
// organization deployers. A nil matcher excludes nothing.
func Summarize(period, pattern string, stats []*WorkflowStat, excludeDeployers NameMatcher) *Summary {
	summary := &Summary{
		Period:        period,
		Pattern:       pattern,
		WorkflowCount: len(stats),
		Deployers:     make(Deployers),
	}

	if len(stats) == 0 {
		return summary
	}

	var successSum, failureSum, durationSum float64
	for _, stat := range stats {
		successSum += stat.SuccessRate
		failureSum += stat.FailureRate
		durationSum += stat.AvgDurationMS
		summary.TotalRuns += stat.TotalRuns

		if excludeDeployers != nil && excludeDeployers.Match(stat.Key.Workflow) {
			continue
		}
		summary.Deployers.merge(stat.Deployers)
	}

	count := float64(len(stats))
	summary.AvgSuccessRate = successSum / count
	summary.AvgFailureRate = failureSum / count
	summary.AvgDurationMS = durationSum / count

	return summary
}

// Report is everything a reporter renders
type Report struct {
	Stats   []*WorkflowStat `json:"workflows" yaml:"workflows"`
	Summary *Summary        `json:"summary" yaml:"summary"`
}
