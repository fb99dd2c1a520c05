package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the revenue and transaction-count thresholds that gate
// seller compliance obligations. All monetary values are in US cents.
// Values are configurable via YAML for jurisdictions with different limits,
// with compiled-in defaults matching federal requirements.
type Thresholds struct {
	// W9RevenueCents is the annual revenue above which a W-9 is required.
	W9RevenueCents int64 `yaml:"w9RevenueCents"`

	// VerificationRevenueCents is the annual revenue above which identity
	// verification is required.
	VerificationRevenueCents int64 `yaml:"verificationRevenueCents"`

	// DisclosureRevenueCents is the annual revenue above which a public
	// business disclosure is required.
	DisclosureRevenueCents int64 `yaml:"disclosureRevenueCents"`

	// Form1099KRevenueCents and Form1099KTransactions are the 1099-K
	// eligibility thresholds. Both must be met (inclusive) for the form
	// to be required.
	Form1099KRevenueCents int64 `yaml:"form1099kRevenueCents"`
	Form1099KTransactions int   `yaml:"form1099kTransactions"`

	// VerificationDeadlineDays is the number of days a seller has to
	// complete identity verification before automatic suspension.
	VerificationDeadlineDays int `yaml:"verificationDeadlineDays"`
}

// PerformanceStandards holds the minimums a seller must meet for a
// performance period to count as meeting marketplace standards.
type PerformanceStandards struct {
	MaxAvgResponseHours float64 `yaml:"maxAvgResponseHours"`
	MinAvgRating        float64 `yaml:"minAvgRating"`
	MinOnTimeRate       float64 `yaml:"minOnTimeRate"`
}

// Config holds the compliance service configuration loaded from YAML
type Config struct {
	Thresholds  Thresholds           `yaml:"thresholds"`
	Performance PerformanceStandards `yaml:"performance"`
}

// DefaultThresholds provides the default threshold values if the config
// file is not found. These match the federal W-9 ($600), marketplace
// verification ($5,000), public disclosure ($20,000) and 1099-K
// ($20,000 / 200 transactions) requirements.
var DefaultThresholds = Thresholds{
	W9RevenueCents:           600_00,
	VerificationRevenueCents: 5_000_00,
	DisclosureRevenueCents:   20_000_00,
	Form1099KRevenueCents:    20_000_00,
	Form1099KTransactions:    200,
	VerificationDeadlineDays: 10,
}

// DefaultPerformanceStandards provides the default performance minimums.
var DefaultPerformanceStandards = PerformanceStandards{
	MaxAvgResponseHours: 24,
	MinAvgRating:        4.0,
	MinOnTimeRate:       0.95,
}

// VerificationDeadline returns the deadline window as a duration.
func (t Thresholds) VerificationDeadline() time.Duration {
	return time.Duration(t.VerificationDeadlineDays) * 24 * time.Hour
}

// Validate checks that the threshold configuration is internally consistent.
func (t Thresholds) Validate() error {
	if t.W9RevenueCents <= 0 || t.VerificationRevenueCents <= 0 || t.DisclosureRevenueCents <= 0 {
		return fmt.Errorf("revenue thresholds must be positive")
	}
	if t.Form1099KRevenueCents <= 0 || t.Form1099KTransactions <= 0 {
		return fmt.Errorf("1099-K thresholds must be positive")
	}
	if t.VerificationDeadlineDays <= 0 {
		return fmt.Errorf("verification deadline days must be positive")
	}
	return nil
}

// Load loads the service configuration from a YAML file.
// If the file is not found, returns the compiled-in defaults.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = GetEnvOrDefault("COMPLIANCE_CONFIG_PATH", "config/compliance.yaml")
	}

	cfg := &Config{
		Thresholds:  DefaultThresholds,
		Performance: DefaultPerformanceStandards,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		slog.Warn("Failed to parse config file, using defaults", "path", configPath, "error", err)
		return cfg, nil
	}

	// Use defaults for any zero-valued fields so partial overrides work
	cfg.Thresholds = mergeThresholds(fileCfg.Thresholds)
	cfg.Performance = mergePerformance(fileCfg.Performance)

	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid threshold configuration in %s: %w", configPath, err)
	}

	return cfg, nil
}

func mergeThresholds(t Thresholds) Thresholds {
	merged := DefaultThresholds
	if t.W9RevenueCents > 0 {
		merged.W9RevenueCents = t.W9RevenueCents
	}
	if t.VerificationRevenueCents > 0 {
		merged.VerificationRevenueCents = t.VerificationRevenueCents
	}
	if t.DisclosureRevenueCents > 0 {
		merged.DisclosureRevenueCents = t.DisclosureRevenueCents
	}
	if t.Form1099KRevenueCents > 0 {
		merged.Form1099KRevenueCents = t.Form1099KRevenueCents
	}
	if t.Form1099KTransactions > 0 {
		merged.Form1099KTransactions = t.Form1099KTransactions
	}
	if t.VerificationDeadlineDays > 0 {
		merged.VerificationDeadlineDays = t.VerificationDeadlineDays
	}
	return merged
}

func mergePerformance(p PerformanceStandards) PerformanceStandards {
	merged := DefaultPerformanceStandards
	if p.MaxAvgResponseHours > 0 {
		merged.MaxAvgResponseHours = p.MaxAvgResponseHours
	}
	if p.MinAvgRating > 0 {
		merged.MinAvgRating = p.MinAvgRating
	}
	if p.MinOnTimeRate > 0 {
		merged.MinOnTimeRate = p.MinOnTimeRate
	}
	return merged
}

// GetEnvOrDefault returns the environment variable value or a default
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvIntOrDefault returns the environment variable parsed as an int,
// or the default if unset or unparseable.
func GetEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		slog.Warn("Invalid integer environment variable, using default", "key", key, "value", value, "default", defaultValue)
	}
	return defaultValue
}
