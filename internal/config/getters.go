package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/mdtick/internal/logging"
	"github.com/nibzard/mdtick/internal/render"
)

// StepDelay returns the animation step delay.
func (c *Config) StepDelay() time.Duration {
	return time.Duration(c.StepDelayMS) * time.Millisecond
}

// RenderOptions returns render options seeded from the config. Per-run
// outputs are left for the caller to fill.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		View:         render.View(c.View),
		TemplateFile: c.TemplateFile,
		CSSFile:      c.CSSFile,
		StepDelay:    c.StepDelay(),
		Banner:       c.Banner,
	}
}

// NewLogger builds the console logger described by the config.
func (c *Config) NewLogger(w io.Writer) *log.Logger {
	return logging.NewFromConfig(w, c.LogLevel, c.LogFormat, c.LogTimestamps)
}
