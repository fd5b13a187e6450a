// Package config loads footprint settings from footprint.yaml, FOOTPRINT_* variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory and ./config
const FileName = "footprint.yaml"

// EnvPrefix prefixes every environment override, e.g. FOOTPRINT_LOG_LEVEL
const EnvPrefix = "FOOTPRINT"

// MaxTopContributors bounds analysis.top_contributors
const MaxTopContributors = 20

// Config represents the application configuration
type Config struct {
	Project  ProjectConfig  `mapstructure:"project" yaml:"project"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Report   ReportConfig   `mapstructure:"report" yaml:"report"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// ProjectConfig identifies the project being analyzed
type ProjectConfig struct {
	Root string `mapstructure:"root" yaml:"root"`
}

// AnalysisConfig tunes the data sources
type AnalysisConfig struct {
	TopContributors int      `mapstructure:"top_contributors" yaml:"top_contributors"`
	EditorLogPath   string   `mapstructure:"editor_log_path" yaml:"editor_log_path"`
	LogWindowLines  int      `mapstructure:"log_window_lines" yaml:"log_window_lines"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

// CacheConfig controls the last-known-good breakdown cache
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// ReportConfig controls the written build report
type ReportConfig struct {
	Dir               string `mapstructure:"dir" yaml:"dir"`
	SigningKeyPath    string `mapstructure:"signing_key_path" yaml:"signing_key_path"`
	SigningPassphrase string `mapstructure:"signing_passphrase" yaml:"-"`
	// MetricsFile receives Prometheus textfile metrics when set
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// LogConfig controls diagnostic output
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// New returns a viper instance with defaults and environment binding set up
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Enable environment variable support with underscore replacer
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("project.root", ".")

	v.SetDefault("analysis.top_contributors", MaxTopContributors)
	v.SetDefault("analysis.editor_log_path", "")
	v.SetDefault("analysis.log_window_lines", 1000)
	v.SetDefault("analysis.exclude_patterns", []string{})

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", "")

	v.SetDefault("report.dir", "BuildReports")
	v.SetDefault("report.signing_key_path", "")
	v.SetDefault("report.signing_passphrase", "")
	v.SetDefault("report.metrics_file", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads configFile (or footprint.yaml when empty) into v and decodes the result.
// A missing default config file is not an error; a missing explicit one is.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = loadEnvFile()

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads environment variables from the first .env file found
func loadEnvFile() error {
	locations := []string{".env", ".env.local"}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			if err := godotenv.Load(location); err != nil {
				return fmt.Errorf("error loading .env file from %s: %w", location, err)
			}
			return nil
		}
	}

	return fmt.Errorf("no .env file found")
}

// Validate checks value ranges and formats
func (c *Config) Validate() error {
	if c.Project.Root == "" {
		return fmt.Errorf("project.root must not be empty")
	}

	if c.Analysis.TopContributors < 1 || c.Analysis.TopContributors > MaxTopContributors {
		return fmt.Errorf("analysis.top_contributors must be between 1 and %d", MaxTopContributors)
	}

	if c.Analysis.LogWindowLines < 1 {
		return fmt.Errorf("analysis.log_window_lines must be positive")
	}

	for _, p := range c.Analysis.ExcludePatterns {
		if !doublestar.ValidatePattern(strings.ToLower(p)) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}

	if c.Report.SigningPassphrase != "" && c.Report.SigningKeyPath == "" {
		return fmt.Errorf("report.signing_passphrase is set without report.signing_key_path")
	}

	return nil
}

// ProjectRoot returns the absolute project root
func (c *Config) ProjectRoot() string {
	if abs, err := filepath.Abs(c.Project.Root); err == nil {
		return abs
	}
	return c.Project.Root
}

// CachePath returns the configured cache file, or BuildReports/composition_cache.json under the project
func (c *Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(c.ProjectRoot(), "BuildReports", "composition_cache.json")
}

// ReportsDir returns the report directory, relative paths resolved against the project root
func (c *Config) ReportsDir() string {
	if filepath.IsAbs(c.Report.Dir) {
		return c.Report.Dir
	}
	return filepath.Join(c.ProjectRoot(), c.Report.Dir)
}

// WriteFile writes c as a YAML config file. Secrets are omitted.
func (c *Config) WriteFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	//nolint:gosec // G306: config file is not secret
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
