package checklist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
)

var (
	// ErrNotFound is returned by Load when the checklist file does not exist.
	ErrNotFound = errors.New("checklist file not found")
	// ErrRead matches any ReadError.
	ErrRead = errors.New("checklist file unreadable")
)

var (
	taskPattern  = regexp.MustCompile(`- \[( |x)\] `)
	titlePattern = regexp.MustCompile(`(?m)^# (.+)`)
	taskListLine = regexp.MustCompile(`^\s*[-*+]\s*\[[xX ]\]`)
)

// Result is the parsed summary of one checklist file.
type Result struct {
	Title string
	Done  int
	Total int
}

// Percent returns the completion percentage of the result.
func (r Result) Percent() float64 {
	return Percent(r.Done, r.Total)
}

// Pending returns the number of items not yet done.
func (r Result) Pending() int {
	return r.Total - r.Done
}

// ReadError reports a checklist file that exists but could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read checklist %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// Is reports ErrRead so callers can match without a type assertion.
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

// Percent computes 100*done/total, or 0 when total is zero.
func Percent(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

// Load reads and parses the checklist file at path.
func Load(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Result{}, &ReadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return Result{}, &ReadError{Path: path, Err: errors.New("content is not valid UTF-8")}
	}
	return Parse(string(data), path), nil
}

// Parse counts checklist items in content and extracts its title.
// name is only used for the title fallback.
func Parse(content, name string) Result {
	var meta struct {
		Title string `yaml:"title" toml:"title"`
	}
	body := content
	if rest, err := frontmatter.Parse(strings.NewReader(content), &meta); err == nil {
		body = string(rest)
	}

	// Markers never span a newline, so the whole body is matched at once
	// and line length does not matter.
	var res Result
	for _, m := range taskPattern.FindAllStringSubmatch(body, -1) {
		res.Total++
		if m[1] == "x" {
			res.Done++
		}
	}
	for _, m := range titlePattern.FindAllStringSubmatch(body, -1) {
		if title := strings.TrimSpace(m[1]); title != "" {
			res.Title = title
			break
		}
	}

	if res.Title == "" {
		res.Title = strings.TrimSpace(meta.Title)
	}
	if res.Title == "" {
		res.Title = Stem(name)
	}
	return res
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ContainsTaskList reports whether r has at least one task-list line.
// Bullets may be -, * or +, and the box may hold x, X or a space.
func ContainsTaskList(r io.Reader) (bool, error) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 && taskListLine.Match(bytes.TrimRight(line, "\r\n")) {
			return true, nil
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

// Entry pairs a configured path with its parse outcome. Err is set when the
// file was missing or unreadable, in which case Result is zero.
type Entry struct {
	Path   string
	Result Result
	Err    error
}

// OK reports whether the entry parsed successfully.
func (e Entry) OK() bool {
	return e.Err == nil
}

// Missing reports whether the entry's file did not exist.
func (e Entry) Missing() bool {
	return errors.Is(e.Err, ErrNotFound)
}
