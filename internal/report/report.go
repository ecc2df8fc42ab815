// Package report builds and writes machine-readable dashboard reports.
//
// Reports are validated against the embedded JSON Schema (draft 2020-12)
// before they are written, so a report file on disk always matches:
//
//	{
//	  "generated_at": "2024-01-01T00:00:00Z",
//	  "files": [
//	    {"path": "plan.md", "title": "Plan", "done": 2, "total": 3, "percent": 66.7}
//	  ],
//	  "totals": {"files": 1, "skipped": 0, "done": 2, "total": 3, "percent": 66.7}
//	}
package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/mdtick/internal/checklist"
)

//go:embed report.schema.json
var schemaJSON []byte

const schemaURL = "report.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// File is the report line for one configured path.
type File struct {
	Path    string  `json:"path"`
	Title   string  `json:"title"`
	Done    int     `json:"done"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
	Error   string  `json:"error,omitempty"`
}

// Totals aggregates every parsed file.
type Totals struct {
	Files   int     `json:"files"`
	Skipped int     `json:"skipped"`
	Done    int     `json:"done"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// Report is the JSON document written by Write.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Files       []File    `json:"files"`
	Totals      Totals    `json:"totals"`
}

// Build summarizes entries in input order.
func Build(entries []checklist.Entry, now time.Time) Report {
	r := Report{
		GeneratedAt: now.UTC().Truncate(time.Second),
		Files:       make([]File, 0, len(entries)),
	}
	for _, e := range entries {
		if !e.OK() {
			r.Totals.Skipped++
			r.Files = append(r.Files, File{
				Path:  e.Path,
				Title: checklist.Stem(e.Path),
				Error: e.Err.Error(),
			})
			continue
		}
		r.Totals.Files++
		r.Totals.Done += e.Result.Done
		r.Totals.Total += e.Result.Total
		r.Files = append(r.Files, File{
			Path:    e.Path,
			Title:   e.Result.Title,
			Done:    e.Result.Done,
			Total:   e.Result.Total,
			Percent: round1(e.Result.Percent()),
		})
	}
	r.Totals.Percent = round1(checklist.Percent(r.Totals.Done, r.Totals.Total))
	return r
}

// Validate checks the report against the embedded schema.
func (r Report) Validate() error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal report: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return newSchemaError(err)
	}
	return nil
}

// SchemaError lists every schema violation found in a report.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "report does not match schema: " + strings.Join(e.Problems, "; ")
}

func newSchemaError(err error) *SchemaError {
	se := &SchemaError{}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		se.Problems = append(se.Problems, err.Error())
		return se
	}
	collectSchemaErrors(se, ve)
	return se
}

// collectSchemaErrors records the leaves of the cause tree.
func collectSchemaErrors(se *SchemaError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		path := pointerPath(err.InstanceLocation)
		if path == "" {
			path = "(root)"
		}
		se.Problems = append(se.Problems, path+": "+err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(se, cause)
	}
}

// pointerPath turns a JSON Pointer such as "/files/0/done" into
// "files[0].done".
func pointerPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

// Write validates r and writes it to path with 2-space indentation and a
// trailing newline. Nothing is written when validation fails.
func Write(path string, r Report) error {
	if err := r.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load report schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile report schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
