// Package checklist parses Markdown checklist files.
//
// A checklist item is any occurrence of the marker "- [ ] " (pending) or
// "- [x] " (done). Only a lowercase x marks an item as done:
//
//	# Release plan
//	- [x] cut branch
//	- [ ] tag release
//
// The first level-1 heading ("# Title") names the file. A heading that is
// blank after trimming ("#  ") is skipped in favour of the next one. Without
// any, the YAML front matter title is used, then the file name without
// extension.
//
// # Errors
//
// Load distinguishes a missing file (ErrNotFound) from a file that exists
// but cannot be read or decoded (ReadError, matching ErrRead). A file with
// no checklist items is not an error.
package checklist
