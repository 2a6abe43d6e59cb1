package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/m-mizutani/deploystat/pkg/cli"
	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/gt"
	"gopkg.in/yaml.v3"
)

func TestJSONReporter(t *testing.T) {
	t.Run("report document", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, cli.NewReporter(cli.FormatJSON, &buf, false, true).Report(sampleReport()))

		var decoded model.Report
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		gt.Equal(t, len(decoded.Stats), 2)
		gt.Equal(t, decoded.Stats[0].Key.Workflow, "Deploy Prod")
		gt.Equal(t, decoded.Stats[0].SuccessRate, 75.0)
		gt.Equal(t, decoded.Summary.TotalRuns, 6)
		gt.Equal(t, decoded.Summary.Deployers["alice"], 3)
	})

	t.Run("empty stats encode as list", func(t *testing.T) {
		var buf bytes.Buffer
		report := &model.Report{Summary: model.Summarize("", "Deploy*", nil, nil)}
		gt.NoError(t, cli.NewJSONReporter(&buf).Report(report))

		var raw map[string]any
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
		workflows, ok := raw["workflows"].([]any)
		gt.True(t, ok)
		gt.Equal(t, len(workflows), 0)
	})
}

func TestYAMLReporter(t *testing.T) {
	var buf bytes.Buffer
	gt.NoError(t, cli.NewReporter(cli.FormatYAML, &buf, false, true).Report(sampleReport()))

	var decoded model.Report
	gt.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	gt.Equal(t, len(decoded.Stats), 2)
	gt.Equal(t, decoded.Stats[1].Key.Workflow, "Branch Deploy Staging")
	gt.Equal(t, decoded.Summary.Pattern, "*Deploy*")
	gt.Equal(t, decoded.Summary.Deployers["alice"], 3)
}
