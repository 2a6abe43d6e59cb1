package usecase

// Export for testing
var (
	MaskWebhookURL    = maskWebhookURL
	BuildSlackMessage = buildSlackMessage
)

// ConfigService exports for testing
type ConfigService = configService

func NewConfigServiceWithHome(homeDir string) *ConfigService {
	return &configService{homeDir: homeDir}
}
