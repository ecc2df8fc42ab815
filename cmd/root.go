// Package cmd implements the CLI command structure for mdtick.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nibzard/mdtick/internal/config"
	"github.com/nibzard/mdtick/internal/dashboard"
	"github.com/nibzard/mdtick/internal/render"
	"github.com/nibzard/mdtick/internal/scan"
	"github.com/nibzard/mdtick/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams. Tests swap these for buffers.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the mdtick CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mdtick", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, stderr)
		return errors.New("no command or path list given")
	}
	err = runSubcommand(ctx, cws, fs, remainingArgs[0], remainingArgs[1:])
	if errors.Is(err, flag.ErrHelp) {
		// The subcommand already printed its flags.
		return nil
	}
	return err
}

func runSubcommand(ctx context.Context, cws *config.ConfigWithSources, fs *flag.FlagSet, subcommand string, remainingArgs []string) error {
	cfg := cws.Config
	switch subcommand {
	case "dashboard":
		return dashboardCommand(ctx, cfg, remainingArgs)
	case "scan":
		return scanCommand(ctx, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, stdout)
		return nil
	default:
		// An existing file is shorthand for the dashboard command.
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			return dashboardCommand(ctx, cfg, append([]string{subcommand}, remainingArgs...))
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// dashboardCommand renders progress for every file in a path list.
func dashboardCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mdtick dashboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := cfg.RenderOptions()
	view := fs.String("view", string(opts.View), "Console view (animated|table)")
	fs.StringVar(&opts.HTMLOutput, "html-output", "", "Write an HTML dashboard to this file instead of the console")
	fs.StringVar(&opts.TemplateFile, "template-file", opts.TemplateFile, "HTML template file (required with -html-output)")
	fs.StringVar(&opts.CSSFile, "css-file", opts.CSSFile, "CSS file inlined into the HTML template (required with -html-output)")
	fs.StringVar(&opts.JSONOutput, "json-output", "", "Also write a JSON report to this file")
	fs.DurationVar(&opts.StepDelay, "step-delay", opts.StepDelay, "Pause between animation steps")
	noBanner := fs.Bool("no-banner", !opts.Banner, "Do not print the logo")
	workers := fs.Int("workers", cfg.Workers, "Files read concurrently")

	remaining, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(remaining) != 1 {
		return fmt.Errorf("dashboard expects exactly one path list, got %d", len(remaining))
	}

	opts.View = render.View(strings.ToLower(*view))
	opts.Banner = !*noBanner
	// Only an explicit -view animated is worth a warning when exporting HTML.
	if opts.HTML() && !flagSet(fs, "view") && *view == config.DefaultView {
		opts.View = ""
	}

	if *workers < 1 {
		return fmt.Errorf("-workers must be at least 1, got %d", *workers)
	}

	c := dashboard.New(stdout, cfg.NewLogger(stderr))
	c.Version = Version
	c.Workers = *workers
	return c.Run(ctx, remaining[0], opts)
}

// scanCommand writes the list of checklist files under a folder.
func scanCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mdtick scan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	remaining, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(remaining) != 2 {
		return errors.New("usage: mdtick scan <folder> <output_file>")
	}
	root, output := remaining[0], remaining[1]

	logger := cfg.NewLogger(stderr)
	paths, err := scan.New(logger).Scan(ctx, root)
	if err != nil {
		return err
	}
	if err := scan.WritePaths(output, paths); err != nil {
		return err
	}
	logger.Info("Scan complete", "matches", len(paths), "output", output)
	return nil
}

// tuiCommand launches the live dashboard.
func tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mdtick tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	refresh := fs.Duration("refresh", ui.DefaultRefresh, "Refresh interval")
	remaining, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(remaining) != 1 {
		return fmt.Errorf("tui expects exactly one path list, got %d", len(remaining))
	}
	return ui.RunTUI(ctx, remaining[0], ui.WithRefresh(*refresh))
}

// configCommand prints the effective settings and where each came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("mdtick config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example mdtick.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	cfg := cws.Config
	if file := cws.GetConfigFile(); file != "" {
		fmt.Fprintf(stdout, "Config file: %s\n\n", file)
	} else {
		fmt.Fprintln(stdout, "Config file: (none)")
		fmt.Fprintln(stdout)
	}
	values := map[string]string{
		"view":           cfg.View,
		"step_delay_ms":  fmt.Sprint(cfg.StepDelayMS),
		"banner":         fmt.Sprint(cfg.Banner),
		"workers":        fmt.Sprint(cfg.Workers),
		"template_file":  cfg.TemplateFile,
		"css_file":       cfg.CSSFile,
		"log_level":      cfg.LogLevel,
		"log_format":     cfg.LogFormat,
		"log_timestamps": fmt.Sprint(cfg.LogTimestamps),
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(stdout, "  %-15s %-20q (%s)\n", k, values[k], cws.Sources[k])
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "mdtick version %s\n", Version)
	return nil
}

// parseInterspersed parses fs allowing flags after positional arguments,
// so "dashboard paths.txt -view table" works like the reverse order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// flagSet reports whether name was given explicitly on the command line.
func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "mdtick - Markdown checklist progress tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mdtick [global options] <command> [options]")
	fmt.Fprintln(w, "  mdtick [global options] <paths-file> [dashboard options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  dashboard <paths-file>       Show progress for every file in the list")
	fmt.Fprintln(w, "  scan <folder> <output_file>  Write the list of Markdown files with task lists")
	fmt.Fprintln(w, "  tui <paths-file>             Live dashboard that refreshes in place")
	fmt.Fprintln(w, "  doctor [paths-file]          Check config, HTML assets and the path list")
	fmt.Fprintln(w, "  config                       Show effective settings and their sources")
	fmt.Fprintln(w, "  version                      Show version information")
	fmt.Fprintln(w, "  help                         Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dashboard Options:")
	fmt.Fprintln(w, "  -view string")
	fmt.Fprintln(w, "        Console view (animated|table) (default animated)")
	fmt.Fprintln(w, "  -html-output string")
	fmt.Fprintln(w, "        Write an HTML dashboard to this file instead of the console")
	fmt.Fprintln(w, "  -template-file string")
	fmt.Fprintln(w, "        HTML template file (required with -html-output)")
	fmt.Fprintln(w, "  -css-file string")
	fmt.Fprintln(w, "        CSS file inlined into the HTML template (required with -html-output)")
	fmt.Fprintln(w, "  -json-output string")
	fmt.Fprintln(w, "        Also write a JSON report to this file")
	fmt.Fprintln(w, "  -step-delay duration")
	fmt.Fprintln(w, "        Pause between animation steps (default 50ms)")
	fmt.Fprintln(w, "  -no-banner")
	fmt.Fprintln(w, "        Do not print the logo")
	fmt.Fprintln(w, "  -workers int")
	fmt.Fprintln(w, "        Files read concurrently (default 1)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tui Options:")
	fmt.Fprintln(w, "  -refresh duration")
	fmt.Fprintln(w, "        Refresh interval (default 2s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example mdtick.toml")
}
