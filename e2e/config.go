package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_GATEWAY_URL is left empty to skip the live suite
	GatewayURL    string        `envconfig:"E2E_GATEWAY_URL"`
	GatewayAPIKey string        `envconfig:"E2E_GATEWAY_API_KEY"`
	Timeout       time.Duration `envconfig:"E2E_TIMEOUT" default:"120s"`
	Condition     string        `envconfig:"E2E_CONDITION" default:"chronic headaches with vision issues"`
	// E2E_DEBUG_PROMPTS logs every prompt sent to the gateway
	DebugPrompts bool `envconfig:"E2E_DEBUG_PROMPTS" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
