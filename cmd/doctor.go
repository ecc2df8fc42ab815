package cmd

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/mdtick/internal/checklist"
	"github.com/nibzard/mdtick/internal/config"
	"github.com/nibzard/mdtick/internal/dashboard"
	"github.com/nibzard/mdtick/internal/render"
)

// doctorCommand checks settings, HTML assets and, when given, a path list.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mdtick doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	remaining, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}

	fmt.Fprintln(stdout, "mdtick doctor")
	fmt.Fprintln(stdout, "=============")
	fmt.Fprintln(stdout)

	allOK := true

	// Settings
	fmt.Fprintln(stdout, "Config:")
	if cfg.ConfigFile != "" {
		fmt.Fprintf(stdout, "  File: %s\n", cfg.ConfigFile)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stdout, "  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(stdout, "  ✅ View: %s, step delay: %s, workers: %d\n", cfg.View, cfg.StepDelay(), cfg.Workers)
		fmt.Fprintf(stdout, "  ✅ Logging: %s/%s\n", cfg.LogLevel, cfg.LogFormat)
	}
	fmt.Fprintln(stdout)

	// HTML assets are optional until an export is requested.
	fmt.Fprintln(stdout, "HTML assets:")
	if !checkAsset("Template", cfg.TemplateFile, render.RowsToken) {
		allOK = false
	}
	if !checkAsset("CSS", cfg.CSSFile, "") {
		allOK = false
	}
	fmt.Fprintln(stdout)

	if len(remaining) == 1 {
		if !checkPathList(remaining[0], *verbose) {
			allOK = false
		}
		fmt.Fprintln(stdout)
	}

	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed.")
	return errors.New("doctor checks failed")
}

// checkAsset reports on an optional asset file. When token is set the file
// should contain it.
func checkAsset(label, path, token string) bool {
	if path == "" {
		fmt.Fprintf(stdout, "  ⚠️  %s: not configured (needed for -html-output)\n", label)
		return true
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ %s: %v\n", label, err)
		return false
	}
	if token != "" && !bytes.Contains(data, []byte(token)) {
		fmt.Fprintf(stdout, "  ⚠️  %s: %s has no %s placeholder\n", label, path, token)
		return true
	}
	fmt.Fprintf(stdout, "  ✅ %s: %s\n", label, path)
	return true
}

// checkPathList loads a path list and reports on every entry.
func checkPathList(path string, verbose bool) bool {
	fmt.Fprintf(stdout, "Path list: %s\n", path)
	paths, err := dashboard.LoadPaths(path)
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ %v\n", err)
		return false
	}
	fmt.Fprintf(stdout, "  ✅ %d entries\n", len(paths))

	missing := 0
	for _, p := range paths {
		res, err := checklist.Load(p)
		switch {
		case errors.Is(err, checklist.ErrNotFound):
			missing++
			fmt.Fprintf(stdout, "  ⚠️  %s: not found\n", p)
		case err != nil:
			missing++
			fmt.Fprintf(stdout, "  ⚠️  %v\n", err)
		case verbose:
			fmt.Fprintf(stdout, "  ✅ %s: %s %d/%d\n", filepath.Base(p), res.Title, res.Done, res.Total)
		}
	}
	if missing > 0 {
		fmt.Fprintf(stdout, "  %d of %d entries will be skipped\n", missing, len(paths))
	}
	return true
}
