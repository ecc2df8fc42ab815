// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.mdtick/mdtick.toml or OS-specific config directory)
// 3. Project config file (mdtick.toml or .mdtick.toml in the working
// directory), or the file named by -config
// 4. Environment variables (MDTICK_*)
// 5. Global CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.mdtick/mdtick.toml (preferred)
// - Windows: %APPDATA%\mdtick\mdtick.toml
// - macOS: ~/Library/Application Support/mdtick/mdtick.toml
// - Linux/BSD: $XDG_CONFIG_HOME/mdtick/mdtick.toml or ~/.config/mdtick/mdtick.toml
//
// Project-level config locations (overrides user config):
// - ./mdtick.toml (preferred)
// - ./.mdtick.toml
package config
