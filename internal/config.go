package internal

import (
	"consult-lab/domain"
	"consult-lab/errors"
	"consult-lab/runtime"
	"consult-lab/synthesis"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	GatewayURL               string        `env:"GATEWAY_URL,required=true"`
	GatewayAPIKey            string        `env:"GATEWAY_API_KEY,required=true"`
	ClassifierEndpoint       string        `env:"CLASSIFIER_ENDPOINT,default=determiner-bot"`
	SynthesisEndpoint        string        `env:"SYNTHESIS_ENDPOINT,default=medical-advanced"`
	Specialties              string        `env:"SPECIALTIES"`
	MaxConcurrentSpecialists int           `env:"MAX_CONCURRENT_SPECIALISTS,default=4"`
	GatewayTimeout           time.Duration `env:"GATEWAY_TIMEOUT,default=60s"`
	SpecialistMaxAttempts    int           `env:"SPECIALIST_MAX_ATTEMPTS,default=1"`
	SynthesisMaxAttempts     int           `env:"SYNTHESIS_MAX_ATTEMPTS,default=1"`
	RetryBackoff             time.Duration `env:"RETRY_BACKOFF,default=500ms"`
	MinSuccessfulOpinions    int           `env:"MIN_SUCCESSFUL_OPINIONS,default=1"`
	BadgerFilepath           string        `env:"BADGER_FILEPATH,default=./data/consultations"`
	StoreConsultations       bool          `env:"STORE_CONSULTATIONS,default=true"`
	LogLevel                 string        `env:"LOG_LEVEL,default=INFO"`
}

func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.GatewayURL) == "":
		return fmt.Errorf("%w: GATEWAY_URL is empty", errors.ErrInvalidConfig)
	case strings.TrimSpace(c.GatewayAPIKey) == "":
		return fmt.Errorf("%w: GATEWAY_API_KEY is empty", errors.ErrInvalidConfig)
	case c.MaxConcurrentSpecialists < 1:
		return fmt.Errorf("%w: MAX_CONCURRENT_SPECIALISTS must be positive, got %d",
			errors.ErrInvalidConfig, c.MaxConcurrentSpecialists)
	case c.GatewayTimeout <= 0:
		return fmt.Errorf("%w: GATEWAY_TIMEOUT must be positive, got %s", errors.ErrInvalidConfig, c.GatewayTimeout)
	case c.SpecialistMaxAttempts < 1 || c.SynthesisMaxAttempts < 1:
		return fmt.Errorf("%w: max attempts must be at least 1", errors.ErrInvalidConfig)
	case c.RetryBackoff < 0:
		return fmt.Errorf("%w: RETRY_BACKOFF must not be negative", errors.ErrInvalidConfig)
	case c.MinSuccessfulOpinions < 1:
		return fmt.Errorf("%w: MIN_SUCCESSFUL_OPINIONS must be at least 1, got %d",
			errors.ErrInvalidConfig, c.MinSuccessfulOpinions)
	case c.Catalog().Len() == 0:
		return fmt.Errorf("%w: SPECIALTIES holds no specialty", errors.ErrInvalidConfig)
	}
	return nil
}

// Catalog parses SPECIALTIES as a comma separated list, the default catalog is used when unset.
func (c Config) Catalog() domain.SpecialtyCatalog {
	if strings.TrimSpace(c.Specialties) == "" {
		return domain.DefaultCatalog()
	}
	return domain.NewSpecialtyCatalog(strings.Split(c.Specialties, ",")...)
}

func (c Config) DispatcherConfig() runtime.DispatcherConfig {
	return runtime.DispatcherConfig{
		MaxConcurrency: c.MaxConcurrentSpecialists,
		Timeout:        c.GatewayTimeout,
		MaxAttempts:    c.SpecialistMaxAttempts,
		RetryBackoff:   c.RetryBackoff,
	}
}

func (c Config) SynthesisConfig() synthesis.Config {
	return synthesis.Config{
		Endpoint:              c.SynthesisEndpoint,
		Timeout:               c.GatewayTimeout,
		MaxAttempts:           c.SynthesisMaxAttempts,
		RetryBackoff:          c.RetryBackoff,
		MinSuccessfulOpinions: c.MinSuccessfulOpinions,
	}
}

// ParseList splits a comma separated flag value, blank entries are dropped.
func ParseList(value string) []string {
	return lo.FilterMap(strings.Split(value, ","), func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}
