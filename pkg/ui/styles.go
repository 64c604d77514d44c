package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/templatizer/pkg/types"
)

// Colors
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F9FAFB"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	PathColor    = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

// StatusStyle returns the style used for an action status
func StatusStyle(status types.Status) lipgloss.Style {
	switch status {
	case types.StatusDone:
		return SuccessStyle
	case types.StatusSkipped, types.StatusNotRun:
		return MutedStyle
	case types.StatusSourceMissing:
		return WarningStyle
	case types.StatusFailed:
		return ErrorStyle
	default:
		return lipgloss.NewStyle()
	}
}
