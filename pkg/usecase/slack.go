package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/deploystat/pkg/domain/interfaces"
	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

const defaultSlackMessage = "Deployment metrics for workflows matching {{.Pattern}} ({{.Period}})"

type slackNotifier struct {
	config     model.SlackConfig
	httpClient *http.Client
}

// NewSlackNotifier creates a notifier posting summaries to an incoming webhook
func NewSlackNotifier(config model.SlackConfig) interfaces.Notifier {
	return &slackNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *slackNotifier) NotifySummary(ctx context.Context, summary *model.Summary) error {
	logger := ctxlog.From(ctx)

	webhookURL := os.ExpandEnv(s.config.WebhookURL)
	if webhookURL == "" {
		return goerr.New("webhook URL is empty after expansion")
	}

	messageTemplate := s.config.Message
	if messageTemplate == "" {
		messageTemplate = defaultSlackMessage
	}
	message, err := buildSlackMessage(messageTemplate, summary)
	if err != nil {
		return err
	}

	payload := model.SlackPayload{
		Text:      message,
		Channel:   s.config.Channel,
		UserName:  s.config.UserName,
		IconEmoji: s.config.IconEmoji,
		Attachments: []model.Attachment{
			summaryAttachment(summary),
		},
	}

	if err := s.send(ctx, webhookURL, payload); err != nil {
		return err
	}

	logger.Debug("Slack notification sent", slog.String("webhook_url", maskWebhookURL(webhookURL)))
	return nil
}

func buildSlackMessage(messageTemplate string, summary *model.Summary) (string, error) {
	tmpl, err := template.New("message").Parse(messageTemplate)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse message template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, summary); err != nil {
		return "", goerr.Wrap(err, "failed to execute message template")
	}

	return buf.String(), nil
}

func summaryAttachment(summary *model.Summary) model.Attachment {
	attachment := model.Attachment{
		Footer:    "deploystat",
		Timestamp: time.Now().Unix(),
	}

	if summary.Empty() {
		attachment.Color = "warning"
		attachment.Text = "No workflows found"
		return attachment
	}

	attachment.Color = "good"
	if summary.AvgFailureRate > 0 {
		attachment.Color = "warning"
	}

	attachment.Fields = []model.Field{
		{Title: "Avg Success Rate", Value: model.FormatNumber(summary.AvgSuccessRate) + "%", Short: true},
		{Title: "Avg Failure Rate", Value: model.FormatNumber(summary.AvgFailureRate) + "%", Short: true},
		{Title: "Avg Duration", Value: model.FormatDuration(summary.AvgDurationMS), Short: true},
		{Title: "Total Runs", Value: strconv.Itoa(summary.TotalRuns), Short: true},
	}

	if deployers := summary.Deployers.Sorted(); len(deployers) > 0 {
		lines := make([]string, 0, len(deployers))
		for _, d := range deployers {
			lines = append(lines, fmt.Sprintf("%s: %d", d.Login, d.Count))
		}
		attachment.Fields = append(attachment.Fields, model.Field{
			Title: "Deployers",
			Value: strings.Join(lines, "\n"),
		})
	}

	return attachment
}

func (s *slackNotifier) send(ctx context.Context, webhookURL string, payload model.SlackPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal slack payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var respBody bytes.Buffer
		_, _ = respBody.ReadFrom(resp.Body)
		return goerr.New("slack webhook returned error",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", respBody.String()),
		)
	}

	return nil
}

// maskWebhookURL hides the token parts of a webhook URL for logging
func maskWebhookURL(url string) string {
	if strings.Contains(url, "hooks.slack.com") {
		parts := strings.Split(url, "/")
		if len(parts) > 3 {
			for i := len(parts) - 3; i < len(parts); i++ {
				if len(parts[i]) > 4 {
					parts[i] = parts[i][:2] + "***"
				}
			}
			return strings.Join(parts, "/")
		}
	}
	if len(url) > 20 {
		return url[:20] + "***"
	}
	return "***"
}
