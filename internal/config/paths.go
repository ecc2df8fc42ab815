package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// projectConfigNames are checked in order in the working directory.
var projectConfigNames = []string{"mdtick.toml", ".mdtick.toml"}

// percentVar matches a Windows-style %VAR% reference.
var percentVar = regexp.MustCompile(`%([^%]+)%`)

// expandPath resolves environment references and a leading ~ in an asset
// path. %VAR% is honoured on Windows; unknown %VAR% references are kept.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandPercentVars(p)
	}
	return expandHome(p)
}

func expandHome(p string) string {
	rest, ok := homeRelative(p)
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

// homeRelative returns the part of p after a leading ~ and whether p had one.
func homeRelative(p string) (string, bool) {
	switch {
	case p == "~":
		return "", true
	case strings.HasPrefix(p, "~/"):
		return p[2:], true
	case runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`):
		return p[2:], true
	}
	return "", false
}

func expandPercentVars(p string) string {
	return percentVar.ReplaceAllStringFunc(p, func(m string) string {
		if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
}

// findProjectConfigFile returns the first project config name present in
// the working directory.
func findProjectConfigFile() string {
	for _, name := range projectConfigNames {
		if isFile(name) {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks in ~/.mdtick first, then in the OS config
// directory (XDG_CONFIG_HOME, ~/Library/Application Support or %AppData%).
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".mdtick", "mdtick.toml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "mdtick", "mdtick.toml"))
	}
	for _, p := range candidates {
		if isFile(p) {
			return p
		}
	}
	return ""
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
