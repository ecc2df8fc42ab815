package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
                _ _   _      _
  _ __ ___   __| | |_(_) ___| | __
 | '_ ` + "`" + ` _ \ / _` + "`" + ` | __| |/ __| |/ /
 | | | | | | (_| | |_| | (__|   <
 |_| |_| |_|\__,_|\__|_|\___|_|\_\  v%s

Markdown checklist progress tracker
`

// Banner writes the mdtick logo with version.
func Banner(w io.Writer, version string) {
	style := lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	fmt.Fprintln(w, style.Render(fmt.Sprintf(logo, version)))
}
