package usecase

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/deploystat/pkg/domain"
	"github.com/m-mizutani/deploystat/pkg/domain/interfaces"
	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

const configTemplate = `# deploystat configuration

# Workflows matching this pattern keep their own deployer tally but are left
# out of the organization-wide deployer summary.
branch_deploy_pattern: "Branch*"

# Post the organization summary to a Slack incoming webhook.
# Environment variables are expanded in webhook_url.
# slack:
#   webhook_url: "${SLACK_WEBHOOK_URL}"
#   message: "Deployment metrics for {{.Pattern}} ({{.Period}})"
#   channel: "#deployments"
#   username: "deploystat"
#   icon_emoji: ":rocket:"
`

type configService struct {
	homeDir string
}

func NewConfigService() interfaces.ConfigService {
	homeDir, _ := os.UserHomeDir()
	return &configService{homeDir: homeDir}
}

func (c *configService) GetDefaultPath() string {
	return filepath.Join(c.homeDir, ".config", "deploystat", "config.yml")
}

func (c *configService) Load(path string) (*model.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by the user
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config model.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(domain.ErrConfiguration, "failed to parse config file",
			goerr.V("path", path),
			goerr.V("error", err.Error()),
		)
	}

	return &config, nil
}

// LoadDefault returns an empty config when the default file does not exist
func (c *configService) LoadDefault() (*model.Config, error) {
	path := c.GetDefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &model.Config{}, nil
	}
	return c.Load(path)
}

func (c *configService) GenerateTemplate() string {
	return configTemplate
}

func (c *configService) SaveTemplate(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return goerr.Wrap(domain.ErrConfiguration, "config file already exists, use --force to overwrite",
			goerr.V("path", path),
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return goerr.Wrap(err, "failed to create config directory", goerr.V("path", path))
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return goerr.Wrap(err, "failed to write config file", goerr.V("path", path))
	}

	return nil
}
