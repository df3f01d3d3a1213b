package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// ClosureRule suppresses occurrence generation on dates matching an RRULE,
// e.g. public holidays or venue closures
type ClosureRule struct {
	RRule  string `yaml:"rrule" validate:"required"`
	Reason string `yaml:"reason,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL  string        `yaml:"databaseURL" validate:"required"`
	PastDays     int           `yaml:"pastDays" validate:"min=0"`
	FutureDays   int           `yaml:"futureDays" validate:"min=1"`
	ClosureRules []ClosureRule `yaml:"closureRules,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from shiftengine.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Window defaults; explicit values in the file override them
	cfg := Config{
		PastDays:   30,
		FutureDays: 7,
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each closure rule
	for i, rule := range cfg.ClosureRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in closureRules[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for shiftengine.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "shiftengine.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
