package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/deploystat/pkg/domain/interfaces"
	"github.com/m-mizutani/deploystat/pkg/domain/model"
)

type TextReporter struct {
	w        io.Writer
	detailed bool

	repoColor    *color.Color
	headingColor *color.Color
	goodColor    *color.Color
	badColor     *color.Color
}

func NewTextReporter(w io.Writer, detailed bool, noColor bool) interfaces.Reporter {
	r := &TextReporter{
		w:            w,
		detailed:     detailed,
		repoColor:    color.New(color.FgCyan, color.Bold),
		headingColor: color.New(color.Bold),
		goodColor:    color.New(color.FgGreen),
		badColor:     color.New(color.FgRed),
	}

	if noColor {
		for _, c := range []*color.Color{r.repoColor, r.headingColor, r.goodColor, r.badColor} {
			c.DisableColor()
		}
	}

	return r
}

func (r *TextReporter) Report(report *model.Report) error {
	if r.detailed {
		r.printDetails(report.Stats)
	}
	r.printSummary(report.Summary)
	return nil
}

func (r *TextReporter) printDetails(stats []*model.WorkflowStat) {
	lastRepo := ""
	for _, stat := range stats {
		if stat.Key.Repository != lastRepo {
			r.repoColor.Fprintln(r.w, stat.Key.Repository)
			lastRepo = stat.Key.Repository
		}

		fmt.Fprintf(r.w, "\t%s:\n", stat.Key.Workflow)
		fmt.Fprintf(r.w, "\t\tRuns: %d\n", stat.TotalRuns)
		fmt.Fprintf(r.w, "\t\tSuccessful: %d\n", stat.SuccessCount)
		fmt.Fprintf(r.w, "\t\tFailed: %d\n", stat.FailureCount)
		fmt.Fprintf(r.w, "\t\tSuccess Rate: %s\n", r.rate(stat.SuccessRate, true))
		fmt.Fprintf(r.w, "\t\tFailure Rate: %s\n", r.rate(stat.FailureRate, false))
		fmt.Fprintf(r.w, "\t\tAvg Duration: %s\n", model.FormatDuration(stat.AvgDurationMS))

		if deployers := stat.Deployers.Sorted(); len(deployers) > 0 {
			fmt.Fprintf(r.w, "\t\tDeployers:\n")
			for _, d := range deployers {
				fmt.Fprintf(r.w, "\t\t\t%s: %d\n", d.Login, d.Count)
			}
		}
	}
}

func (r *TextReporter) printSummary(summary *model.Summary) {
	fmt.Fprintf(r.w, "\n")
	r.headingColor.Fprintln(r.w, "-------- SUMMARY ---------")

	if summary.Empty() {
		fmt.Fprintf(r.w, "No workflows found matching %s for the period %s\n", summary.Pattern, summary.Period)
		return
	}

	fmt.Fprintf(r.w, "For the period %s with workflows matching %s\n", summary.Period, summary.Pattern)
	fmt.Fprintf(r.w, "Workflows: %d\n", summary.WorkflowCount)
	fmt.Fprintf(r.w, "Total Runs: %d\n", summary.TotalRuns)
	fmt.Fprintf(r.w, "Avg Success Rate: %s\n", r.rate(summary.AvgSuccessRate, true))
	fmt.Fprintf(r.w, "Avg Failure Rate: %s\n", r.rate(summary.AvgFailureRate, false))
	fmt.Fprintf(r.w, "Avg Duration: %s\n", model.FormatDuration(summary.AvgDurationMS))

	if deployers := summary.Deployers.Sorted(); len(deployers) > 0 {
		fmt.Fprintf(r.w, "Deployers:\n")
		for _, d := range deployers {
			fmt.Fprintf(r.w, "\t%s: %d\n", d.Login, d.Count)
		}
	}
}

// rate colours a percentage green when it is good news and red otherwise
func (r *TextReporter) rate(v float64, success bool) string {
	text := model.FormatNumber(v) + "%"
	switch {
	case v == 0:
		return text
	case success:
		return r.goodColor.Sprint(text)
	default:
		return r.badColor.Sprint(text)
	}
}
