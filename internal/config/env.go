package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from MDTICK_* environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("MDTICK_VIEW"); v != "" {
		cfg.View = v
		set("view")
	}
	if v := os.Getenv("MDTICK_TEMPLATE_FILE"); v != "" {
		cfg.TemplateFile = v
		set("template_file")
	}
	if v := os.Getenv("MDTICK_CSS_FILE"); v != "" {
		cfg.CSSFile = v
		set("css_file")
	}
	if v := os.Getenv("MDTICK_STEP_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MDTICK_STEP_DELAY_MS: %w", err)
		}
		cfg.StepDelayMS = ms
		set("step_delay_ms")
	}
	if v := os.Getenv("MDTICK_WORKERS"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MDTICK_WORKERS: %w", err)
		}
		cfg.Workers = n
		set("workers")
	}
	if v := os.Getenv("MDTICK_BANNER"); v != "" {
		cfg.Banner = boolFromString(v)
		set("banner")
	}
	if v := os.Getenv("MDTICK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("MDTICK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("MDTICK_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
