// Package config provides configuration loading and validation for the
// condense CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/condense/pkg/analyzers/analyze"
)

// Sentinel validation errors.
var (
	ErrUnknownFormat   = errors.New("unknown output format")
	ErrUnknownSeverity = errors.New("unknown rule severity")
	ErrUnknownRule     = errors.New("unknown rule")
)

// Output formats for the analyze command.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Known rule identifiers, used to validate rule configuration keys.
var knownRules = map[string]bool{
	"if-assign":  true,
	"find-first": true,
}

// Config holds all configuration for condense.
type Config struct {
	Rules         map[string]RuleConfig `mapstructure:"rules"`
	Output        OutputConfig          `mapstructure:"output"`
	Logging       LoggingConfig         `mapstructure:"logging"`
	Observability ObservabilityConfig   `mapstructure:"observability"`
}

// RuleConfig holds per-rule settings. Each rule instance receives its
// severity at construction; there is no global severity table.
type RuleConfig struct {
	Severity string `mapstructure:"severity"`
	Enabled  bool   `mapstructure:"enabled"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// ObservabilityConfig holds telemetry settings. An empty endpoint keeps
// telemetry on no-op providers.
type ObservabilityConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	Environment  string `mapstructure:"environment"`
	Insecure     bool   `mapstructure:"insecure"`
}

// Load reads configuration from defaults, an optional YAML config file,
// and CONDENSE_* environment variables, in increasing precedence.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("CONDENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rules.if-assign.enabled", true)
	v.SetDefault("rules.if-assign.severity", string(analyze.SeverityInfo))
	v.SetDefault("rules.find-first.enabled", true)
	v.SetDefault("rules.find-first.severity", string(analyze.SeverityInfo))
	v.SetDefault("output.format", FormatTable)
	v.SetDefault("output.color", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)
	v.SetDefault("observability.otlp_endpoint", "")
	v.SetDefault("observability.environment", "")
	v.SetDefault("observability.insecure", false)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Output.Format)
	}

	for name, rule := range c.Rules {
		if !knownRules[name] {
			return fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}

		if _, err := analyze.ParseSeverity(rule.Severity); err != nil {
			return fmt.Errorf("%w: rule %q: %q", ErrUnknownSeverity, name, rule.Severity)
		}
	}

	return nil
}

// RuleSeverity returns the configured severity for a rule, defaulting to
// info when the rule has no explicit configuration.
func (c *Config) RuleSeverity(ruleID string) analyze.Severity {
	if rule, ok := c.Rules[ruleID]; ok {
		if severity, err := analyze.ParseSeverity(rule.Severity); err == nil {
			return severity
		}
	}

	return analyze.SeverityInfo
}

// RuleEnabled reports whether a rule is enabled. Rules without explicit
// configuration are enabled.
func (c *Config) RuleEnabled(ruleID string) bool {
	if rule, ok := c.Rules[ruleID]; ok {
		return rule.Enabled
	}

	return true
}
