package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/deploystat/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func sampleSummary() *model.Summary {
	return &model.Summary{
		Period:         "2024-01-01..2024-01-31",
		Pattern:        "Deploy*",
		WorkflowCount:  2,
		TotalRuns:      12,
		AvgSuccessRate: 75,
		AvgFailureRate: 25,
		AvgDurationMS:  61500,
		Deployers:      model.Deployers{"alice": 3, "bob": 1},
	}
}

func TestSlackNotifier(t *testing.T) {
	t.Run("Send summary", func(t *testing.T) {
		var receivedPayload model.SlackPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, r.Method, http.MethodPost)
			gt.Equal(t, r.Header.Get("Content-Type"), "application/json")
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&receivedPayload))

			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		notifier := usecase.NewSlackNotifier(model.SlackConfig{
			WebhookURL: server.URL,
			Channel:    "#deploys",
		})
		gt.NoError(t, notifier.NotifySummary(context.Background(), sampleSummary()))

		gt.Equal(t, receivedPayload.Text, "Deployment metrics for workflows matching Deploy* (2024-01-01..2024-01-31)")
		gt.Equal(t, receivedPayload.Channel, "#deploys")
		gt.Equal(t, len(receivedPayload.Attachments), 1)

		attachment := receivedPayload.Attachments[0]
		gt.Equal(t, attachment.Color, "warning")
		gt.Equal(t, len(attachment.Fields), 5)
		gt.Equal(t, attachment.Fields[0].Value, "75%")
		gt.Equal(t, attachment.Fields[2].Value, "61500 ms (1m 1s)")
		gt.Equal(t, attachment.Fields[3].Value, "12")
		gt.Equal(t, attachment.Fields[4].Value, "alice: 3\nbob: 1")
	})

	t.Run("Webhook URL from environment", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		t.Setenv("TEST_SLACK_WEBHOOK", server.URL)
		notifier := usecase.NewSlackNotifier(model.SlackConfig{
			WebhookURL: "${TEST_SLACK_WEBHOOK}",
			Message:    "{{.WorkflowCount}} workflows",
		})
		gt.NoError(t, notifier.NotifySummary(context.Background(), sampleSummary()))
		gt.True(t, called)
	})

	t.Run("Empty webhook URL", func(t *testing.T) {
		notifier := usecase.NewSlackNotifier(model.SlackConfig{WebhookURL: "${UNSET_DEPLOYSTAT_WEBHOOK}"})
		gt.Error(t, notifier.NotifySummary(context.Background(), sampleSummary()))
	})

	t.Run("Error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("invalid_payload"))
		}))
		defer server.Close()

		notifier := usecase.NewSlackNotifier(model.SlackConfig{WebhookURL: server.URL})
		gt.Error(t, notifier.NotifySummary(context.Background(), sampleSummary()))
	})
}

func TestBuildSlackMessage(t *testing.T) {
	t.Run("template fields", func(t *testing.T) {
		msg, err := usecase.BuildSlackMessage("{{.Pattern}} / {{.TotalRuns}}", sampleSummary())
		gt.NoError(t, err)
		gt.Equal(t, msg, "Deploy* / 12")
	})

	t.Run("invalid template", func(t *testing.T) {
		_, err := usecase.BuildSlackMessage("{{.Pattern", sampleSummary())
		gt.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := usecase.BuildSlackMessage("{{.Nope}}", sampleSummary())
		gt.Error(t, err)
	})
}

func TestMaskWebhookURL(t *testing.T) {
	gt.Equal(t, usecase.MaskWebhookURL("https://hooks.slack.com/services/T0000/B0000/XXXXXXXX"),
		"https://hooks.slack.com/services/T0***/B0***/XX***")
	gt.Equal(t, usecase.MaskWebhookURL("short"), "***")
}
