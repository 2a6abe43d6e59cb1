package cli

import (
	"encoding/json"
	"io"

	"github.com/m-mizutani/deploystat/pkg/domain/interfaces"
	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

type JSONReporter struct {
	w io.Writer
}

func NewJSONReporter(w io.Writer) interfaces.Reporter {
	return &JSONReporter{w: w}
}

func (r *JSONReporter) Report(report *model.Report) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(normalize(report)); err != nil {
		return goerr.Wrap(err, "failed to encode report as JSON")
	}
	return nil
}

type YAMLReporter struct {
	w io.Writer
}

func NewYAMLReporter(w io.Writer) interfaces.Reporter {
	return &YAMLReporter{w: w}
}

func (r *YAMLReporter) Report(report *model.Report) error {
	encoder := yaml.NewEncoder(r.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(normalize(report)); err != nil {
		return goerr.Wrap(err, "failed to encode report as YAML")
	}
	if err := encoder.Close(); err != nil {
		return goerr.Wrap(err, "failed to flush YAML report")
	}
	return nil
}

// normalize keeps empty lists as [] instead of null in documents
func normalize(report *model.Report) *model.Report {
	if report.Stats != nil {
		return report
	}
	return &model.Report{
		Stats:   []*model.WorkflowStat{},
		Summary: report.Summary,
	}
}

// NewReporter picks the reporter for an output format
func NewReporter(format string, w io.Writer, detailed, noColor bool) interfaces.Reporter {
	switch format {
	case FormatJSON:
		return NewJSONReporter(w)
	case FormatYAML:
		return NewYAMLReporter(w)
	default:
		return NewTextReporter(w, detailed, noColor)
	}
}
