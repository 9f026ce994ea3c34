// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nlampros/sectorguard/internal/modules/compliance"
	"github.com/nlampros/sectorguard/internal/modules/correlation"
)

// Config holds application configuration
type Config struct {
	Port      int
	LogLevel  string
	DevMode   bool
	RulesFile string // Optional YAML file overriding the built-in rules
	Rules     RulesConfig
}

// RulesConfig is the immutable rule configuration handed to the evaluator:
// thresholds, sector group membership, and the correlation table.
type RulesConfig struct {
	Thresholds compliance.Thresholds
	Groups     compliance.SectorGroups
	Table      correlation.Table
}

// DefaultRulesConfig returns the built-in rule configuration.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		Thresholds: compliance.DefaultThresholds(),
		Groups:     compliance.DefaultSectorGroups(),
		Table:      correlation.DefaultTable(),
	}
}

// Validate checks threshold ordering and correlation table ranges.
func (rc RulesConfig) Validate() error {
	if err := rc.Thresholds.Validate(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}
	if err := rc.Table.Validate(); err != nil {
		return fmt.Errorf("invalid correlation table: %w", err)
	}
	if rc.Groups.REITSubstring == "" {
		return fmt.Errorf("invalid sector groups: reit_substring must not be empty")
	}
	return nil
}

// rulesFile mirrors the YAML override document. Sections are pointers so an
// omitted section keeps its built-in default.
type rulesFile struct {
	Thresholds  *compliance.Thresholds   `yaml:"thresholds"`
	Groups      *compliance.SectorGroups `yaml:"groups"`
	Correlation *correlation.Table       `yaml:"correlation"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnvAsInt("SECTORGUARD_PORT", 8080),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		DevMode:   getEnvAsBool("DEV_MODE", false),
		RulesFile: getEnv("SECTORGUARD_RULES_FILE", ""),
		Rules:     DefaultRulesConfig(),
	}

	if cfg.RulesFile != "" {
		rules, err := LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		cfg.Rules = rules
	}

	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadRulesFile reads a YAML rules file and merges it over the built-in
// defaults. Only sections present in the file are replaced.
func LoadRulesFile(path string) (RulesConfig, error) {
	rules := DefaultRulesConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return rules, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	if file.Thresholds != nil {
		rules.Thresholds = *file.Thresholds
	}
	if file.Groups != nil {
		rules.Groups = *file.Groups
	}
	if file.Correlation != nil {
		rules.Table = *file.Correlation
	}

	if err := rules.Validate(); err != nil {
		return rules, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// getEnv retrieves an environment variable value, returning a fallback if the
// variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvAsBool retrieves an environment variable as a boolean
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
