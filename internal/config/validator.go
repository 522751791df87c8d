package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if viper.IsSet("run_timeout") {
		if s := viper.GetInt("run_timeout"); s <= 0 {
			errors = append(errors, fmt.Sprintf("run_timeout must be positive, got: %d", s))
		}
	}

	if viper.IsSet("settle_seconds") {
		if s := viper.GetInt("settle_seconds"); s < 0 {
			errors = append(errors, fmt.Sprintf("settle_seconds must not be negative, got: %d", s))
		}
	}

	if viper.IsSet("nominal_threads") {
		if n := viper.GetInt("nominal_threads"); n <= 0 {
			errors = append(errors, fmt.Sprintf("nominal_threads must be positive, got: %d", n))
		}
	}

	if viper.IsSet("metrics_port") {
		if p := viper.GetInt("metrics_port"); p < 0 || p > 65535 {
			errors = append(errors, fmt.Sprintf("metrics_port must be in range 0-65535, got: %d", p))
		}
	}

	if viper.IsSet("multithread_marker") {
		if m := viper.GetString("multithread_marker"); strings.TrimSpace(m) == "" {
			errors = append(errors, "multithread_marker must not be empty")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ValidateRuns checks the per-benchmark run count supplied on the command line.
// It is called before any build or execution step.
func ValidateRuns(runs int) error {
	if runs <= 0 {
		return fmt.Errorf("number of runs must be a positive integer, got: %d", runs)
	}
	return nil
}
