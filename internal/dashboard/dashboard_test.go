package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/mdtick/internal/logging"
	"github.com/nibzard/mdtick/internal/render"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// fixture writes a.md (2/3 done), a path list naming a.md and a missing
// file, and returns the path list location.
func fixture(t *testing.T) (dir, list string) {
	t.Helper()
	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# Alpha\n- [x] one\n- [x] two\n- [ ] three\n")
	list = filepath.Join(dir, "paths.txt")
	writeFile(t, list, filepath.Join(dir, "a.md")+"\n\n   \n"+filepath.Join(dir, "gone.md")+"\n")
	return dir, list
}

func newTestController(out, logs *bytes.Buffer) *Controller {
	c := New(out, logging.New(logs, logging.DefaultOptions()))
	c.Sleep = func(time.Duration) {}
	c.Now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	c.Version = "test"
	return c
}

func TestReadPaths(t *testing.T) {
	got, err := ReadPaths(strings.NewReader("  a.md  \n\n\tb/c.md\r\n   \n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.md", "b/c.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLoadPathsErrors(t *testing.T) {
	dir := t.TempDir()
	blank := filepath.Join(dir, "blank.txt")
	writeFile(t, blank, "\n   \n\t\n")

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "absent.txt"), ErrConfigNotFound},
		{"blank", blank, ErrEmptyConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPaths(tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCollectKeepsOrderAndErrors(t *testing.T) {
	dir, _ := fixture(t)
	var out, logs bytes.Buffer
	c := newTestController(&out, &logs)

	paths := []string{filepath.Join(dir, "gone.md"), filepath.Join(dir, "a.md")}
	for _, workers := range []int{0, 1, 4} {
		c.Workers = workers
		entries := c.Collect(context.Background(), paths)
		if len(entries) != 2 {
			t.Fatalf("workers=%d: expected 2 entries, got %d", workers, len(entries))
		}
		if !entries[0].Missing() {
			t.Errorf("workers=%d: first entry should be missing, got %+v", workers, entries[0])
		}
		if !entries[1].OK() || entries[1].Result.Done != 2 || entries[1].Result.Total != 3 {
			t.Errorf("workers=%d: second entry: got %+v", workers, entries[1])
		}
	}
}

func TestRunTableWithMissingFile(t *testing.T) {
	_, list := fixture(t)
	var out, logs bytes.Buffer
	c := newTestController(&out, &logs)

	err := c.Run(context.Background(), list, render.Options{View: render.ViewTable})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Dashboard", "Alpha", "66.7%", "⚠ gone.md"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Alpha") > strings.Index(got, "gone.md") {
		t.Errorf("rows out of input order:\n%s", got)
	}
}

func TestRunAnimatedWarnsInline(t *testing.T) {
	_, list := fixture(t)
	var out, logs bytes.Buffer
	c := newTestController(&out, &logs)

	if err := c.Run(context.Background(), list, render.Options{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "2/3") {
		t.Errorf("expected final frame 2/3:\n%s", got)
	}
	if !strings.Contains(got, "⚠ File not found: ") {
		t.Errorf("expected inline warning:\n%s", got)
	}
}

func TestRunBanner(t *testing.T) {
	_, list := fixture(t)
	var out, logs bytes.Buffer
	c := newTestController(&out, &logs)

	if err := c.Run(context.Background(), list, render.Options{View: render.ViewTable, Banner: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "vtest") {
		t.Errorf("expected banner with version:\n%s", out.String())
	}
}

func TestRunHTML(t *testing.T) {
	dir, list := fixture(t)
	tmpl := filepath.Join(dir, "template.html")
	css := filepath.Join(dir, "style.css")
	writeFile(t, tmpl, "<style>{{ CSS }}</style><table>{{ TABLE_ROWS }}</table>")
	writeFile(t, css, "body{}")
	output := filepath.Join(dir, "out.html")

	var out, logs bytes.Buffer
	c := newTestController(&out, &logs)
	opts := render.Options{
		View:         render.ViewAnimated,
		HTMLOutput:   output,
		TemplateFile: tmpl,
		CSSFile:      css,
	}
	if err := c.Run(context.Background(), list, opts); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	page, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<style>body{}</style>", "<td>Alpha</td>", "⚠ gone.md"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("page missing %q:\n%s", want, page)
		}
	}
	if out.Len() != 0 {
		t.Errorf("HTML export should not print a console view, got:\n%s", out.String())
	}
	if !strings.Contains(logs.String(), "animated view cannot be exported") {
		t.Errorf("expected downgrade warning, logs: %q", logs.String())
	}
	if !strings.Contains(logs.String(), "HTML dashboard created") {
		t.Errorf("expected success notice, logs: %q", logs.String())
	}
}

func TestRunHTMLMissingAsset(t *testing.T) {
	dir, list := fixture(t)
	output := filepath.Join(dir, "out.html")
	var out, logs bytes.Buffer
	c := newTestController(&out, &logs)

	err := c.Run(context.Background(), list, render.Options{
		HTMLOutput:   output,
		TemplateFile: filepath.Join(dir, "nope.html"),
		CSSFile:      filepath.Join(dir, "nope.css"),
	})
	if !errors.Is(err, render.ErrHTMLAssetMissing) {
		t.Fatalf("expected ErrHTMLAssetMissing, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Errorf("output should not exist, stat err: %v", statErr)
	}
}

func TestRunJSONReport(t *testing.T) {
	dir, list := fixture(t)
	jsonOut := filepath.Join(dir, "report.json")
	var out, logs bytes.Buffer
	c := newTestController(&out, &logs)

	if err := c.Run(context.Background(), list, render.Options{View: render.ViewTable, JSONOutput: jsonOut}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	data, err := os.ReadFile(jsonOut)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		GeneratedAt string `json:"generated_at"`
		Totals      struct {
			Files   int `json:"files"`
			Skipped int `json:"skipped"`
			Done    int `json:"done"`
			Total   int `json:"total"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.GeneratedAt != "2024-05-01T12:00:00Z" {
		t.Errorf("generated_at: got %q", doc.GeneratedAt)
	}
	if doc.Totals.Files != 1 || doc.Totals.Skipped != 1 || doc.Totals.Done != 2 || doc.Totals.Total != 3 {
		t.Errorf("totals: got %+v", doc.Totals)
	}
}

func TestRunConfigErrors(t *testing.T) {
	dir := t.TempDir()
	blank := filepath.Join(dir, "blank.txt")
	writeFile(t, blank, "\n\n")

	var out, logs bytes.Buffer
	c := newTestController(&out, &logs)
	if err := c.Run(context.Background(), filepath.Join(dir, "absent.txt"), render.Options{}); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
	if err := c.Run(context.Background(), blank, render.Options{}); !errors.Is(err, ErrEmptyConfig) {
		t.Errorf("expected ErrEmptyConfig, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("no output expected on config errors, got %q", out.String())
	}
}

func TestRunInvalidOptions(t *testing.T) {
	_, list := fixture(t)
	var out, logs bytes.Buffer
	c := newTestController(&out, &logs)
	if err := c.Run(context.Background(), list, render.Options{View: "sparkline"}); err == nil {
		t.Error("expected validation error for unknown view")
	}
}
