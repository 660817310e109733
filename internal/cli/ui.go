package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// ANSI 256 palette.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorError  = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint) // docstrings, versions
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	keyStyle         = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// status writes one "<icon> message" line.
type status struct {
	w io.Writer
}

func (s status) line(icon lipgloss.Style, mark, msg string) {
	fmt.Fprintln(s.w, icon.Render(mark)+" "+msg)
}

func (s status) success(format string, args ...any) {
	s.line(lipgloss.NewStyle().Foreground(colorOK), iconSuccess, fmt.Sprintf(format, args...))
}

func (s status) warn(format string, args ...any) {
	s.line(StyleWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (s status) info(format string, args ...any) {
	s.line(lipgloss.NewStyle().Foreground(colorMuted), iconInfo, fmt.Sprintf(format, args...))
}

// detail writes an indented secondary line.
func (s status) detail(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (s status) file(path string) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}
