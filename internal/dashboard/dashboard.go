// Package dashboard loads a path list, parses every listed checklist and
// dispatches the results to a renderer.
package dashboard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/mdtick/internal/checklist"
	"github.com/nibzard/mdtick/internal/logging"
	"github.com/nibzard/mdtick/internal/parallel"
	"github.com/nibzard/mdtick/internal/render"
	"github.com/nibzard/mdtick/internal/report"
)

var (
	// ErrConfigNotFound is returned when the path list file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrEmptyConfig is returned when the path list has no non-blank lines.
	ErrEmptyConfig = errors.New("no markdown files found in the config file")
)

// LoadPaths reads the path list at configPath: one path per line, trimmed,
// blank lines skipped, order preserved.
func LoadPaths(configPath string) ([]string, error) {
	f, err := os.Open(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("open config file %s: %w", configPath, err)
	}
	defer f.Close()

	paths, err := ReadPaths(f)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", configPath, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyConfig, configPath)
	}
	return paths, nil
}

// ReadPaths parses path-list content from r.
func ReadPaths(r io.Reader) ([]string, error) {
	var paths []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Controller runs one dashboard invocation.
type Controller struct {
	// Out receives rendered console output.
	Out io.Writer
	// Logger receives notices and diagnostics.
	Logger *log.Logger
	// Sleep paces the animated view. Defaults to time.Sleep.
	Sleep func(time.Duration)
	// Version is shown in the banner.
	Version string
	// Now stamps JSON reports. Defaults to time.Now.
	Now func() time.Time
	// Workers bounds concurrent file reads. Values below one read sequentially.
	Workers int
}

// New returns a Controller writing to out and logging to logger.
func New(out io.Writer, logger *log.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{Out: out, Logger: logger}
}

// Collect parses every path. Entries come back in path-list order whatever
// the worker count. Missing or unreadable files produce an entry carrying the
// error; the batch never stops early.
func (c *Controller) Collect(ctx context.Context, paths []string) []checklist.Entry {
	entries := parallel.LoadAll(ctx, paths, c.Workers, checklist.Load)
	for _, e := range entries {
		switch {
		case e.OK():
		case e.Missing():
			c.logger().Debug("File not found", "path", e.Path)
		default:
			c.logger().Warn("Could not read checklist", "path", e.Path, "err", e.Err)
		}
	}
	return entries
}

// Run loads configPath, parses every listed file and renders the results
// according to opts. Only fatal conditions are returned: a missing or empty
// path list, invalid options, or unreadable HTML assets.
func (c *Controller) Run(ctx context.Context, configPath string, opts render.Options) error {
	opts, warnings := opts.Normalize()
	for _, w := range warnings {
		c.logger().Warn(w)
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	paths, err := LoadPaths(configPath)
	if err != nil {
		return err
	}
	entries := c.Collect(ctx, paths)

	if opts.HTML() {
		r := &render.HTMLRenderer{
			TemplateFile: opts.TemplateFile,
			CSSFile:      opts.CSSFile,
			Output:       opts.HTMLOutput,
		}
		if err := r.Render(entries); err != nil {
			return err
		}
		c.logger().Info("HTML dashboard created", "path", opts.HTMLOutput)
	} else if err := c.renderConsole(ctx, entries, opts); err != nil {
		return err
	}

	if opts.JSONOutput != "" {
		now := time.Now
		if c.Now != nil {
			now = c.Now
		}
		if err := report.Write(opts.JSONOutput, report.Build(entries, now())); err != nil {
			return err
		}
		c.logger().Info("JSON report written", "path", opts.JSONOutput)
	}
	return nil
}

func (c *Controller) renderConsole(ctx context.Context, entries []checklist.Entry, opts render.Options) error {
	if opts.Banner {
		render.Banner(c.Out, c.Version)
	}
	switch opts.View {
	case render.ViewTable:
		return (&render.TableRenderer{Out: c.Out}).Render(entries)
	default:
		r := &render.BarRenderer{Out: c.Out, Delay: opts.StepDelay, Sleep: c.Sleep}
		return r.Render(ctx, entries)
	}
}

func (c *Controller) logger() *log.Logger {
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
	return c.Logger
}
