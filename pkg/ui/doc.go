// Package ui renders templatizer's command output.
//
// Terminal output uses pterm tables and lipgloss styles, template summaries
// are rendered as markdown with glamour. Plain text drops all styling and
// JSON output is meant for scripts.
package ui
