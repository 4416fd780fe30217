// Package utils provides small system and I/O helpers shared by commands
// and workflows: piped-stdin reading with terminal detection, username
// lookup for audit entries, and path list formatting for CLI output.
package utils
