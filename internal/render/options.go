// Package render draws checklist results as a bar view, a table or an HTML page.
package render

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// View selects the console output mode.
type View string

const (
	ViewAnimated View = "animated"
	ViewTable    View = "table"
)

// DefaultStepDelay is the pause between bar animation steps.
const DefaultStepDelay = 50 * time.Millisecond

const optionsInvalidCode = "RENDER_OPTIONS_INVALID"

// Options controls how a dashboard is rendered.
type Options struct {
	// View is the console mode. Empty means animated.
	View View
	// HTMLOutput, when set, exports an HTML page instead of console output.
	HTMLOutput string
	// TemplateFile and CSSFile are required with HTMLOutput.
	TemplateFile string
	CSSFile      string
	// JSONOutput, when set, also writes a JSON report.
	JSONOutput string
	// StepDelay paces the animated view. Zero disables pacing.
	StepDelay time.Duration
	// Banner prints the logo before console output.
	Banner bool
}

// HTML reports whether an HTML export was requested.
func (o Options) HTML() bool {
	return o.HTMLOutput != ""
}

// Normalize fills defaults and resolves conflicting requests. An explicit
// animated view combined with an HTML export is downgraded to table and a
// warning is returned for the caller to surface.
func (o Options) Normalize() (Options, []string) {
	var warnings []string
	if o.HTML() {
		if o.View == ViewAnimated {
			warnings = append(warnings, "the animated view cannot be exported to HTML; using the table view for the export")
		}
		o.View = ViewTable
	}
	if o.View == "" {
		o.View = ViewAnimated
	}
	return o, warnings
}

// Validate checks the options before any file is touched.
func (o Options) Validate() error {
	htmlRequested := o.HTML()
	err := validation.ValidateStruct(&o,
		validation.Field(&o.View,
			validation.In(ViewAnimated, ViewTable).Error("must be animated or table"),
		),
		validation.Field(&o.TemplateFile,
			validation.When(htmlRequested, validation.Required.Error("is required with an HTML output")),
		),
		validation.Field(&o.CSSFile,
			validation.When(htmlRequested, validation.Required.Error("is required with an HTML output")),
		),
		validation.Field(&o.StepDelay, validation.By(func(value any) error {
			if d, ok := value.(time.Duration); ok && d < 0 {
				return validation.NewError("render.step_delay_negative", "must not be negative")
			}
			return nil
		})),
	)
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("invalid render options: %v", err)).
		WithTextCode(optionsInvalidCode)
}
