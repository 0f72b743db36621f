package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	MonitorSchedule string        `mapstructure:"monitor_schedule"`
	WarnEntries     int           `mapstructure:"warn_entries"`
}

func (config *CacheConfig) validate() error {
	var errs []error

	if config.TTL <= 0 {
		errs = append(errs, fmt.Errorf("ttl must be positive"))
	}
	if config.MonitorSchedule == "" {
		errs = append(errs, fmt.Errorf("missing variable: monitor_schedule"))
	}

	return errors.Join(errs...)
}

func (config *CacheConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"cache.ttl":              "CACHE_TTL",
		"cache.monitor_schedule": "CACHE_MONITOR_SCHEDULE",
	})
}
