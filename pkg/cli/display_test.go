package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m-mizutani/deploystat/pkg/cli"
	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func sampleReport() *model.Report {
	stats := []*model.WorkflowStat{
		{
			Key:           model.StatKey{Repository: "api", Workflow: "Deploy Prod"},
			TotalRuns:     4,
			SuccessCount:  3,
			FailureCount:  1,
			SuccessRate:   75,
			FailureRate:   25,
			AvgDurationMS: 61500,
			Deployers:     model.Deployers{"alice": 3},
		},
		{
			Key:           model.StatKey{Repository: "api", Workflow: "Branch Deploy Staging"},
			TotalRuns:     2,
			SuccessCount:  2,
			SuccessRate:   100,
			AvgDurationMS: 1000,
			Deployers:     model.Deployers{"alice": 2},
		},
	}

	return &model.Report{
		Stats:   stats,
		Summary: model.Summarize("2024-01-01..2024-01-31", "*Deploy*", stats, branchMatcher{}),
	}
}

type branchMatcher struct{}

func (branchMatcher) Match(name string) bool {
	return strings.HasPrefix(name, "Branch")
}

func TestTextReporter(t *testing.T) {
	t.Run("detailed output", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := cli.NewTextReporter(&buf, true, true)
		gt.NoError(t, reporter.Report(sampleReport()))

		out := buf.String()
		gt.Equal(t, strings.Count(out, "api\n"), 1)
		gt.True(t, strings.Contains(out, "\tDeploy Prod:\n"))
		gt.True(t, strings.Contains(out, "\t\tRuns: 4\n"))
		gt.True(t, strings.Contains(out, "\t\tSuccessful: 3\n"))
		gt.True(t, strings.Contains(out, "\t\tFailed: 1\n"))
		gt.True(t, strings.Contains(out, "\t\tSuccess Rate: 75%\n"))
		gt.True(t, strings.Contains(out, "\t\tFailure Rate: 25%\n"))
		gt.True(t, strings.Contains(out, "\t\tAvg Duration: 61500 ms (1m 1s)\n"))
		gt.True(t, strings.Contains(out, "\t\t\talice: 2\n"))

		gt.True(t, strings.Contains(out, "-------- SUMMARY ---------"))
		gt.True(t, strings.Contains(out, "For the period 2024-01-01..2024-01-31 with workflows matching *Deploy*\n"))
		gt.True(t, strings.Contains(out, "Avg Success Rate: 87.50%\n"))
		gt.True(t, strings.Contains(out, "Avg Failure Rate: 12.50%\n"))
		gt.True(t, strings.Contains(out, "Avg Duration: 31250 ms (0m 31s)\n"))
		gt.True(t, strings.Contains(out, "Total Runs: 6\n"))
		gt.True(t, strings.Contains(out, "Deployers:\n\talice: 3\n"))
	})

	t.Run("summary only", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := cli.NewTextReporter(&buf, false, true)
		gt.NoError(t, reporter.Report(sampleReport()))

		out := buf.String()
		gt.False(t, strings.Contains(out, "Deploy Prod:"))
		gt.False(t, strings.Contains(out, "api\n"))
		gt.True(t, strings.Contains(out, "Avg Success Rate:"))
	})

	t.Run("no workflows found", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := cli.NewTextReporter(&buf, true, true)
		report := &model.Report{Summary: model.Summarize("2024-01", "Deploy*", nil, nil)}
		gt.NoError(t, reporter.Report(report))

		out := buf.String()
		gt.True(t, strings.Contains(out, "No workflows found matching Deploy* for the period 2024-01\n"))
		gt.False(t, strings.Contains(out, "Avg Success Rate"))
	})
}
