// Package config loads Connection settings from the environment.
package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"

	"accuweather.app/errors"
)

// APIKeyEnvVar names the environment variable that, when set, always takes
// precedence over an explicitly configured API key.
const APIKeyEnvVar = "ACCUWEATHER_APIKEY"

// Config holds the settings for an AccuWeather Connection.
type Config struct {
	// APIKey is the AccuWeather API key. Key format validation happens at
	// Connection construction, not here, because the env var override is
	// accepted unvalidated.
	APIKey string `envconfig:"ACCUWEATHER_APIKEY"`
	// Variant selects the API deployment: "api", "apidev" or "dataservice".
	// Unrecognized values fall back to "apidev".
	Variant string `envconfig:"ACCUWEATHER_API_VARIANT" default:"apidev"`
	// BaseURL, when set, overrides the variant-derived API root. Used for
	// test servers and proxied deployments.
	BaseURL string `envconfig:"ACCUWEATHER_BASE_URL"`
	// RetryCount bounds retries of transient transport failures and 5xx
	// responses. Zero disables retries.
	RetryCount int `envconfig:"ACCUWEATHER_RETRY_COUNT" default:"3"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `envconfig:"ACCUWEATHER_TIMEOUT_SECONDS" default:"10"`
}

// Load reads and validates configuration from environment variables.
func Load() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.RetryCount < 0 {
		return errors.NewConfigurationError("ACCUWEATHER_RETRY_COUNT cannot be negative", nil)
	}
	if c.RetryCount > 10 {
		return errors.NewConfigurationError("ACCUWEATHER_RETRY_COUNT cannot exceed 10", nil)
	}
	if c.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("ACCUWEATHER_TIMEOUT_SECONDS must be at least 1", nil)
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return errors.NewConfigurationError("ACCUWEATHER_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}
