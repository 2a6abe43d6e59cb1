package model

// DefaultBranchDeployPattern matches workflows whose runs are left out of the
// organization deployer tally
const DefaultBranchDeployPattern = "Branch*"

// MetricsConfig is the input of a single metrics collection
type MetricsConfig struct {
	Org                 string
	WorkflowPattern     string
	DateFilter          string
	IncludeManualRuns   bool
	BranchDeployPattern string
}

// Config represents the application configuration file
type Config struct {
	BranchDeployPattern string      `yaml:"branch_deploy_pattern,omitempty"`
	Slack               SlackConfig `yaml:"slack,omitempty"`
}

// SlackConfig enables posting the summary to an incoming webhook
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url,omitempty"`
	Message    string `yaml:"message,omitempty"`
	Channel    string `yaml:"channel,omitempty"`
	UserName   string `yaml:"username,omitempty"`
	IconEmoji  string `yaml:"icon_emoji,omitempty"`
}

func (c *Config) GetBranchDeployPattern() string {
	if c == nil || c.BranchDeployPattern == "" {
		return DefaultBranchDeployPattern
	}
	return c.BranchDeployPattern
}
