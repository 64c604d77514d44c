package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Format selects how command output is rendered
type Format int

const (
	// FormatAuto resolves to FormatTerminal or FormatText for the output
	FormatAuto Format = iota
	// FormatTerminal uses colors, tables and glamour-rendered markdown
	FormatTerminal
	// FormatText is unstyled text, for pipes and NO_COLOR
	FormatText
	// FormatJSON emits one JSON document per rendered value
	FormatJSON
)

var formatNames = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

// formatAliases are extra spellings accepted by ParseFormat
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat reads a --format value
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	if f, ok := formatAliases[s]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("unknown format %q (want auto, term, text or json)", s)
}

// DetectFormat returns FormatTerminal when output is a color-capable
// terminal and NO_COLOR is unset, FormatText otherwise
func DetectFormat(output *os.File) Format {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return FormatText
	case !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()):
		return FormatText
	case termenv.NewOutput(output).Profile == termenv.Ascii:
		return FormatText
	default:
		return FormatTerminal
	}
}

// FormatForColor applies the output.color setting
func FormatForColor(mode string, output *os.File) Format {
	switch mode {
	case "always":
		return FormatTerminal
	case "never":
		return FormatText
	default:
		return DetectFormat(output)
	}
}

// ConfigureColor turns pterm and lipgloss styling on or off process-wide
func ConfigureColor(enabled bool) {
	if !enabled {
		pterm.DisableStyling()
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	pterm.EnableStyling()
	lipgloss.SetColorProfile(termenv.ANSI256)
}
