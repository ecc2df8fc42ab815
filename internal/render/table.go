package render

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/mdtick/internal/checklist"
)

// TableBarWidth is the width of the progress string in table and HTML views.
const TableBarWidth = 20

// Placeholder fills the numeric columns of a missing file's row.
const Placeholder = "-"

// Columns are the table headers, in order.
var Columns = []string{"Project", "Done", "Total", "Progress", "Percent"}

// TableBar returns a TableBarWidth string with floor(percent/5) filled cells.
func TableBar(percent float64) string {
	filled := int(math.Floor(percent / 5))
	filled = min(max(filled, 0), TableBarWidth)
	return strings.Repeat("█", filled) + strings.Repeat("-", TableBarWidth-filled)
}

// FormatPercent formats a percentage with one decimal.
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

// Cells is one table or HTML row.
type Cells struct {
	Title   string
	Done    string
	Total   string
	Bar     string
	Percent string
	// Failed marks a placeholder row for a missing or unreadable file.
	Failed bool
}

// Strings returns the cells in column order.
func (c Cells) Strings() []string {
	return []string{c.Title, c.Done, c.Total, c.Bar, c.Percent}
}

// RowCells computes the table row for an entry.
func RowCells(e checklist.Entry) Cells {
	if !e.OK() {
		return Cells{
			Title:   "⚠ " + filepath.Base(e.Path),
			Done:    Placeholder,
			Total:   Placeholder,
			Bar:     Placeholder,
			Percent: Placeholder,
			Failed:  true,
		}
	}
	pct := e.Result.Percent()
	return Cells{
		Title:   e.Result.Title,
		Done:    strconv.Itoa(e.Result.Done),
		Total:   strconv.Itoa(e.Result.Total),
		Bar:     TableBar(pct),
		Percent: FormatPercent(pct),
	}
}

// TableRenderer prints a bordered table with one row per entry.
type TableRenderer struct {
	Out io.Writer
}

// Render writes the table for entries in input order.
func (r *TableRenderer) Render(entries []checklist.Entry) error {
	re := lipgloss.NewRenderer(r.Out)
	titleStyle := re.NewStyle().Bold(true)
	headerStyle := re.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := re.NewStyle().Padding(0, 1)
	projectStyle := cellStyle.Bold(true).Foreground(lipgloss.Color("14"))
	failedStyle := cellStyle.Foreground(lipgloss.Color("9"))

	rows := make([]Cells, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, RowCells(e))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(Columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 && row < len(rows) && rows[row].Failed:
				s = failedStyle
			case col == 0:
				s = projectStyle
			default:
				s = cellStyle
			}
			if col == 1 || col == 2 || col == 4 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	for _, c := range rows {
		t.Row(c.Strings()...)
	}

	if _, err := fmt.Fprintln(r.Out, titleStyle.Render("Dashboard")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.Out, t.Render())
	return err
}
