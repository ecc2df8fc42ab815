package config

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nibzard/mdtick/internal/logging"
)

// LoadWithSources loads configuration from multiple sources in priority
// order and tracks the source of each value:
// 1. Defaults
// 2. User config file (~/.mdtick/mdtick.toml or OS-specific config dir)
// 3. Project config file (mdtick.toml or .mdtick.toml), or -config
// 4. Environment variables
// 5. Global CLI flags
//
// fs receives the global flags; callers read subcommands from fs.Args().
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	if fs == nil {
		fs = flag.NewFlagSet("mdtick", flag.ContinueOnError)
	}
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// Flags are parsed first so -config can pick the project file, but
	// applied last.
	flags := bindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	var files []string

	// 2. User config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		files = append(files, userConfigFile)
	}

	// 3. Explicit or project config file (overrides user config)
	if flags.configFile != "" {
		path := expandPath(flags.configFile)
		if err := loadConfigFile(cfg, path, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		files = append(files, path)
	} else if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		files = append(files, projectConfigFile)
	}

	// 4. Override from environment
	if err := loadFromEnv(cfg, sources); err != nil {
		return nil, err
	}

	// 5. Flags override everything
	flags.apply(cfg, fs, sources)

	// 6. Compute derived values
	finalizeConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ConfigWithSources{Config: cfg, Sources: sources, Files: files}, nil
}

// loadConfigFile decodes TOML from path onto cfg and marks every key the
// file defines. Unknown keys are an error.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if sources != nil {
		for _, field := range configFields() {
			if md.IsDefined(field) {
				sources[field] = source
			}
		}
	}
	return nil
}

// finalizeConfig computes derived values.
func finalizeConfig(cfg *Config) {
	cfg.TemplateFile = expandPath(cfg.TemplateFile)
	cfg.CSSFile = expandPath(cfg.CSSFile)
	cfg.View = strings.ToLower(strings.TrimSpace(cfg.View))
}

// Validate checks the loaded settings.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.View, validation.In(DefaultView, "table").Error("must be animated or table")),
		validation.Field(&c.StepDelayMS, validation.Min(0).Error("must not be negative")),
		validation.Field(&c.Workers, validation.Min(1).Error("must be at least 1")),
		validation.Field(&c.LogLevel, validation.By(func(any) error {
			if !logging.ValidLevel(c.LogLevel) {
				return validation.NewError("config.log_level_unknown", fmt.Sprintf("unknown level %q", c.LogLevel))
			}
			return nil
		})),
		validation.Field(&c.LogFormat, validation.By(func(any) error {
			if !logging.ValidFormat(c.LogFormat) {
				return validation.NewError("config.log_format_unknown", fmt.Sprintf("unknown format %q", c.LogFormat))
			}
			return nil
		})),
	)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GetConfigFile returns the highest-priority config file that was read.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
