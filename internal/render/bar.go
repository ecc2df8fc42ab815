package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nibzard/mdtick/internal/checklist"
)

// BarWidth is the number of cells in an animated bar.
const BarWidth = 40

// BarFill returns how many of width cells are filled for done of total.
func BarFill(done, total, width int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	if done > total {
		done = total
	}
	return width * done / total
}

// BarRenderer draws one labelled bar per parsed file and fills it one task
// at a time, redrawing the line in place.
type BarRenderer struct {
	Out   io.Writer
	Delay time.Duration
	// Sleep pauses between steps. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Render writes every entry in order. Missing or unreadable files become
// inline warnings rather than bars.
func (r *BarRenderer) Render(ctx context.Context, entries []checklist.Entry) error {
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	re := lipgloss.NewRenderer(r.Out)
	labelStyle := re.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	warnStyle := re.NewStyle().Foreground(lipgloss.Color("11"))

	labelWidth := 0
	for _, e := range entries {
		if e.OK() {
			labelWidth = max(labelWidth, runewidth.StringWidth(e.Result.Title))
		}
	}

	for _, e := range entries {
		if !e.OK() {
			fmt.Fprintln(r.Out, warnStyle.Render(warningText(e)))
			continue
		}
		label := labelStyle.Render(runewidth.FillRight(e.Result.Title, labelWidth))
		total := e.Result.Total
		for step := 0; step <= e.Result.Done; step++ {
			if err := ctx.Err(); err != nil {
				fmt.Fprintln(r.Out)
				return err
			}
			fmt.Fprint(r.Out, "\r"+barFrame(label, step, total))
			if step < e.Result.Done && r.Delay > 0 {
				sleep(r.Delay)
			}
		}
		fmt.Fprintln(r.Out)
	}
	return nil
}

func barFrame(label string, done, total int) string {
	filled := BarFill(done, total, BarWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", BarWidth-filled)
	return fmt.Sprintf("%s %s %d/%d %5.1f%%", label, bar, done, total, checklist.Percent(done, total))
}

func warningText(e checklist.Entry) string {
	if e.Missing() {
		return fmt.Sprintf("⚠ File not found: %s", e.Path)
	}
	return fmt.Sprintf("⚠ %v", e.Err)
}
