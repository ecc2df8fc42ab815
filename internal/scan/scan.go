// Package scan finds Markdown files that contain task lists.
package scan

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/mdtick/internal/checklist"
	"github.com/nibzard/mdtick/internal/logging"
)

// Scanner walks directory trees looking for checklist files.
type Scanner struct {
	Logger *log.Logger
}

// New returns a Scanner logging to logger. A nil logger discards notices.
func New(logger *log.Logger) *Scanner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scanner{Logger: logger}
}

// Scan returns every .md file under root (case-insensitive extension) that
// has at least one task-list line, in lexical walk order. Unreadable files
// and directories are skipped with a warning; only an inaccessible root is
// an error.
func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	var candidates []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			s.Logger.Warn("Skipping unreadable path", "path", path, "err", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsMarkdown(d.Name()) {
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	s.Logger.Info("Scanning markdown files", "found", len(candidates))

	var matches []string
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := fileContainsTaskList(path)
		if err != nil {
			s.Logger.Warn("Error reading file", "path", path, "err", err)
			continue
		}
		if ok {
			s.Logger.Debug("Task list found", "path", path)
			matches = append(matches, path)
		}
	}
	return matches, nil
}

// IsMarkdown reports whether name ends in .md, ignoring case.
func IsMarkdown(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".md")
}

func fileContainsTaskList(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return checklist.ContainsTaskList(f)
}

// WritePaths writes one path per line to output, in the path-list format
// read by the dashboard.
func WritePaths(output string, paths []string) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	w := bufio.NewWriter(f)
	for _, p := range paths {
		if _, err := w.WriteString(p + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", output, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	return f.Close()
}
