package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "textunited-client/internal/errors"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the CLI and the sandbox
type Config struct {
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	LogFormat    string `mapstructure:"LOG_FORMAT"`
	OutputFormat string `mapstructure:"OUTPUT_FORMAT"`

	// Text United configuration
	CompanyID      string `mapstructure:"TEXTUNITED_COMPANY_ID"`
	APIKey         string `mapstructure:"TEXTUNITED_API_KEY"`
	Endpoint       string `mapstructure:"TEXTUNITED_ENDPOINT"`
	HTTPTimeoutSec int    `mapstructure:"HTTP_TIMEOUT_SEC"`

	// Sandbox configuration
	SandboxPort      string `mapstructure:"SANDBOX_PORT"`
	SandboxCompanyID string `mapstructure:"SANDBOX_COMPANY_ID"`
	SandboxAPIKey    string `mapstructure:"SANDBOX_API_KEY"`
}

// flagKeys maps command line flags onto configuration keys
var flagKeys = map[string]string{
	"log-level":   "LOG_LEVEL",
	"log-format":  "LOG_FORMAT",
	"output":      "OUTPUT_FORMAT",
	"company-id":  "TEXTUNITED_COMPANY_ID",
	"api-key":     "TEXTUNITED_API_KEY",
	"endpoint":    "TEXTUNITED_ENDPOINT",
	"timeout":     "HTTP_TIMEOUT_SEC",
	"port":        "SANDBOX_PORT",
	"sandbox-id":  "SANDBOX_COMPANY_ID",
	"sandbox-key": "SANDBOX_API_KEY",
}

// Load reads configuration with precedence flag > environment > config file > default.
// flags may be nil; only flags listed in flagKeys and present in the set are bound.
// configPaths overrides the directories searched for config.yaml.
func Load(flags *pflag.FlagSet, configPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{".", "./config"}
	}
	for _, path := range configPaths {
		v.AddConfigPath(path)
	}

	// Set default values
	setDefaults(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OUTPUT_FORMAT", "json")

	// Text United defaults; credentials have none
	v.SetDefault("TEXTUNITED_COMPANY_ID", "")
	v.SetDefault("TEXTUNITED_API_KEY", "")
	v.SetDefault("TEXTUNITED_ENDPOINT", "")
	v.SetDefault("HTTP_TIMEOUT_SEC", 30)

	// Sandbox defaults
	v.SetDefault("SANDBOX_PORT", "8090")
	v.SetDefault("SANDBOX_COMPANY_ID", "2001")
	v.SetDefault("SANDBOX_API_KEY", "sandbox-key")
}

func validate(config *Config) error {
	switch strings.ToLower(config.OutputFormat) {
	case "json", "yaml":
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("OUTPUT_FORMAT must be json or yaml, got %q", config.OutputFormat))
	}

	switch strings.ToLower(config.LogFormat) {
	case "json", "text":
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("LOG_FORMAT must be json or text, got %q", config.LogFormat))
	}

	if config.HTTPTimeoutSec <= 0 {
		return apperrors.NewConfigurationError("HTTP_TIMEOUT_SEC must be positive")
	}

	return nil
}

// ValidateCredentials reports ErrCredentialsMissing unless both the company id
// and the API key are set. Only commands talking to Text United need them.
func (c *Config) ValidateCredentials() error {
	if c.CompanyID == "" || c.APIKey == "" {
		return apperrors.ErrCredentialsMissing
	}
	return nil
}

// Timeout returns the per-request HTTP timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

// IsYAML returns true if results should be printed as YAML
func (c *Config) IsYAML() bool {
	return strings.EqualFold(c.OutputFormat, "yaml")
}
