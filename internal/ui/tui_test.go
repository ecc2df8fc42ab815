package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// setup writes one finished, one in-progress and one missing entry.
func setup(t *testing.T) (dir, list string) {
	t.Helper()
	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, "done.md"), "# Shipped\n- [x] a\n- [x] b\n")
	writeFile(t, filepath.Join(dir, "wip.md"), "# Building\n- [x] a\n- [ ] b\n- [ ] c\n")
	list = filepath.Join(dir, "paths.txt")
	writeFile(t, list, strings.Join([]string{
		filepath.Join(dir, "done.md"),
		filepath.Join(dir, "wip.md"),
		filepath.Join(dir, "lost.md"),
	}, "\n"))
	return dir, list
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitLoadsEntries(t *testing.T) {
	_, list := setup(t)
	m := newTUIModel(list, time.Second)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should schedule a tick")
	}
	if len(m.entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(m.entries))
	}

	view := m.View()
	for _, want := range []string{"Shipped", "Building", "⚠ lost.md", "Files: 2  Skipped: 1  Tasks: 3/5  Overall: 60.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelFilters(t *testing.T) {
	_, list := setup(t)
	m := newTUIModel(list, time.Second)
	m.Init()

	tests := []struct {
		key    string
		show   []string
		hide   []string
		banner string
	}{
		{"1", []string{"Building"}, []string{"Shipped", "lost.md"}, "Filter: in progress"},
		{"2", []string{"Shipped"}, []string{"Building", "lost.md"}, "Filter: complete"},
		{"3", []string{"lost.md"}, []string{"Shipped", "Building"}, "Filter: missing or unreadable"},
		{"0", []string{"Shipped", "Building", "lost.md"}, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m.Update(key(tt.key))
			table := tableSection(m.View())
			for _, s := range tt.show {
				if !strings.Contains(table, s) {
					t.Errorf("expected %q in table:\n%s", s, table)
				}
			}
			for _, s := range tt.hide {
				if strings.Contains(table, s) {
					t.Errorf("did not expect %q in table:\n%s", s, table)
				}
			}
			if tt.banner != "" && !strings.Contains(m.View(), tt.banner) {
				t.Errorf("missing filter banner %q", tt.banner)
			}
		})
	}
}

// tableSection returns the part of the view between the overview and the
// path-list line.
func tableSection(view string) string {
	start := strings.Index(view, "Dashboard")
	end := strings.Index(view, "Path list:")
	if start < 0 || end < 0 {
		return view
	}
	return view[start:end]
}

func TestModelRefreshPicksUpChanges(t *testing.T) {
	dir, list := setup(t)
	m := newTUIModel(list, time.Second)
	m.Init()

	writeFile(t, filepath.Join(dir, "lost.md"), "# Found\n- [ ] x\n")
	m.Update(key("r"))
	if !strings.Contains(m.View(), "Found") {
		t.Errorf("refresh did not pick up new file:\n%s", m.View())
	}

	writeFile(t, filepath.Join(dir, "wip.md"), "# Building\n- [x] a\n- [x] b\n- [x] c\n")
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !strings.Contains(m.View(), "Tasks: 5/6") {
		t.Errorf("tick did not refresh totals:\n%s", m.View())
	}
}

func TestModelLoadError(t *testing.T) {
	_, list := setup(t)
	m := newTUIModel(list, time.Second)
	m.Init()

	if err := os.Remove(list); err != nil {
		t.Fatal(err)
	}
	m.Update(key("r"))
	view := m.View()
	if !strings.Contains(view, "Error loading path list") || !strings.Contains(view, "config file not found") {
		t.Errorf("expected load error in view:\n%s", view)
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	_, list := setup(t)
	m := newTUIModel(list, 3*time.Second)
	m.Init()

	m.Update(key("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not shown")
	}
	m.Update(key("h"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not toggled off")
	}
	if !strings.Contains(m.View(), "Refreshing every 3s") {
		t.Errorf("footer missing interval:\n%s", m.View())
	}

	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestWithRefresh(t *testing.T) {
	c := &tuiConfig{refresh: DefaultRefresh}
	WithRefresh(0)(c)
	if c.refresh != DefaultRefresh {
		t.Errorf("zero should keep default, got %s", c.refresh)
	}
	WithRefresh(500 * time.Millisecond)(c)
	if c.refresh != 500*time.Millisecond {
		t.Errorf("got %s", c.refresh)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTTY(f) {
		t.Error("regular file is not a TTY")
	}
}
