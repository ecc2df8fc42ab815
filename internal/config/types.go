package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultView        = "animated"
	DefaultStepDelayMS = 50
	DefaultBanner      = true
	DefaultWorkers     = 1
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Config holds the full configuration for mdtick.
type Config struct {
	// Rendering
	View        string `toml:"view"`
	StepDelayMS int    `toml:"step_delay_ms"`
	Banner      bool   `toml:"banner"`

	// Concurrent file reads
	Workers int `toml:"workers"`

	// HTML export assets
	TemplateFile string `toml:"template_file"`
	CSSFile      string `toml:"css_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// ConfigFile is the explicit settings file given with -config.
	ConfigFile string `toml:"-"`
}

// configFields returns the configurable field names for source tracking.
func configFields() []string {
	return []string{
		"view",
		"step_delay_ms",
		"banner",
		"workers",
		"template_file",
		"css_file",
		"log_level",
		"log_format",
		"log_timestamps",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.View = DefaultView
	cfg.StepDelayMS = DefaultStepDelayMS
	cfg.Banner = DefaultBanner
	cfg.Workers = DefaultWorkers
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
