package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/nibzard/mdtick/internal/checklist"
)

// Template placeholders. Each is replaced verbatim; there is no other
// templating logic.
const (
	CSSToken  = "{{ CSS }}"
	RowsToken = "{{ TABLE_ROWS }}"
)

// ErrHTMLAssetMissing is returned when the template or CSS file cannot be read.
var ErrHTMLAssetMissing = errors.New("html asset missing")

var titleMarkdown = goldmark.New()

// HTMLRenderer exports entries as a standalone HTML page.
type HTMLRenderer struct {
	TemplateFile string
	CSSFile      string
	Output       string
}

// Render reads both assets, then writes the page to Output. Nothing is
// written if either asset is unreadable.
func (r *HTMLRenderer) Render(entries []checklist.Entry) error {
	tmpl, err := os.ReadFile(r.TemplateFile)
	if err != nil {
		return fmt.Errorf("%w: template %s: %v", ErrHTMLAssetMissing, r.TemplateFile, err)
	}
	css, err := os.ReadFile(r.CSSFile)
	if err != nil {
		return fmt.Errorf("%w: css %s: %v", ErrHTMLAssetMissing, r.CSSFile, err)
	}

	page := BuildHTML(string(tmpl), string(css), entries)
	if err := os.WriteFile(r.Output, []byte(page), 0644); err != nil {
		return fmt.Errorf("write html %s: %w", r.Output, err)
	}
	return nil
}

// BuildHTML substitutes the CSS text and the row markup into tmpl.
func BuildHTML(tmpl, css string, entries []checklist.Entry) string {
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, RowHTML(RowCells(e)))
	}
	out := strings.ReplaceAll(tmpl, CSSToken, css)
	return strings.ReplaceAll(out, RowsToken, strings.Join(rows, "\n"))
}

// RowHTML renders one table row.
func RowHTML(c Cells) string {
	title := html.EscapeString(c.Title)
	if !c.Failed {
		title = TitleHTML(c.Title)
	}
	var b strings.Builder
	b.WriteString("            <tr>\n")
	fmt.Fprintf(&b, "              <td>%s</td>\n", title)
	fmt.Fprintf(&b, "              <td>%s</td>\n", html.EscapeString(c.Done))
	fmt.Fprintf(&b, "              <td>%s</td>\n", html.EscapeString(c.Total))
	fmt.Fprintf(&b, "              <td class=\"progress-bar\">%s</td>\n", html.EscapeString(c.Bar))
	fmt.Fprintf(&b, "              <td>%s</td>\n", html.EscapeString(c.Percent))
	b.WriteString("            </tr>")
	return b.String()
}

// rawHTMLOmitted is what goldmark emits in place of raw HTML it will not pass
// through.
const rawHTMLOmitted = "raw HTML omitted"

// TitleHTML renders a title as inline Markdown. Titles that goldmark turns
// into anything other than a single paragraph, or that carry raw HTML
// goldmark would drop, are escaped as plain text.
func TitleHTML(title string) string {
	var buf bytes.Buffer
	if err := titleMarkdown.Convert([]byte(title), &buf); err != nil {
		return html.EscapeString(title)
	}
	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "<p>") || !strings.HasSuffix(out, "</p>") || strings.Count(out, "<p>") != 1 ||
		strings.Contains(out, rawHTMLOmitted) {
		return html.EscapeString(title)
	}
	return strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
}
