package config

import "flag"

// globalFlags holds the values of the global flags until they are applied.
type globalFlags struct {
	configFile    string
	logLevel      string
	logFormat     string
	logTimestamps bool
}

// bindFlags defines the global flags on fs.
func bindFlags(fs *flag.FlagSet) *globalFlags {
	g := &globalFlags{}
	fs.StringVar(&g.configFile, "config", "", "Settings file (replaces mdtick.toml lookup)")
	fs.StringVar(&g.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	fs.StringVar(&g.logFormat, "log-format", "", "Log format (text|json|logfmt)")
	fs.BoolVar(&g.logTimestamps, "log-timestamps", false, "Include timestamps in log lines")
	return g
}

// apply copies every explicitly set flag onto cfg.
func (g *globalFlags) apply(cfg *Config, fs *flag.FlagSet, sources map[string]ConfigSource) {
	fs.Visit(func(f *flag.Flag) {
		var field string
		switch f.Name {
		case "log-level":
			cfg.LogLevel = g.logLevel
			field = "log_level"
		case "log-format":
			cfg.LogFormat = g.logFormat
			field = "log_format"
		case "log-timestamps":
			cfg.LogTimestamps = g.logTimestamps
			field = "log_timestamps"
		default:
			return
		}
		if sources != nil {
			sources[field] = SourceFlag
		}
	})
}
