package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type SearchConfig struct {
	// APIKey may be empty; requests then fail with a configuration error instead of the process.
	APIKey               string        `mapstructure:"api_key"`
	BaseURL              string        `mapstructure:"base_url"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	Timeout              time.Duration `mapstructure:"timeout"`
	CoalesceRequests     bool          `mapstructure:"coalesce_requests"`
}

func (config *SearchConfig) validate() error {
	var errs []error

	if config.BaseURL == "" {
		errs = append(errs, fmt.Errorf("missing variable: base_url"))
	}
	if config.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive"))
	}
	if config.MaxRequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_second can't be negative"))
	}

	return errors.Join(errs...)
}

func (config *SearchConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"search.api_key":                 "SERPAPI_KEY",
		"search.base_url":                "SERPAPI_BASE_URL",
		"search.max_requests_per_second": "SERPAPI_MAX_REQUESTS_PER_SECOND",
		"search.coalesce_requests":       "COALESCE_REQUESTS",
	})
}
