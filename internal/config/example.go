package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# mdtick configuration file
# Values can be overridden by MDTICK_* environment variables or CLI flags

# Console view: animated or table
view = "animated"

# Pause between animation steps (milliseconds, 0 disables pacing)
step_delay_ms = 50

# Print the logo before console output
banner = true

# Files read concurrently; 1 reads them one after another
# (output order always follows the path list)
workers = 1

# HTML export assets (supports ~ expansion and %VAR% on Windows)
# template_file = "~/.mdtick/template.html"
# css_file = "~/.mdtick/style.css"

# Logging: debug, info, warn or error; text, json or logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
`
}
