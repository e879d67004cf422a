package audit

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")) // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleSystem  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")) // gray
	styleParser  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // electric blue
	stylePolicy  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")) // orange
	stylePlain   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Classify returns the tag that governs how a line is highlighted. Errors and
// violations win over the stage tag.
func Classify(line string) Tag {
	switch {
	case strings.Contains(line, "["+string(TagError)+"]"), strings.Contains(line, violationMarker):
		return TagError
	case strings.Contains(line, "["+string(TagSuccess)+"]"):
		return TagSuccess
	case strings.Contains(line, "["+string(TagWarn)+"]"):
		return TagWarn
	case strings.Contains(line, "["+string(TagSystem)+"]"):
		return TagSystem
	case strings.Contains(line, "["+string(TagParser)+"]"):
		return TagParser
	case strings.Contains(line, "["+string(TagPolicy)+"]"):
		return TagPolicy
	}
	return ""
}

// Style renders a line for a terminal.
func Style(line string) string {
	switch Classify(line) {
	case TagError:
		return styleError.Render(line)
	case TagSuccess:
		return styleSuccess.Render(line)
	case TagWarn:
		return styleWarn.Render(line)
	case TagSystem:
		return styleSystem.Render(line)
	case TagParser:
		return styleParser.Render(line)
	case TagPolicy:
		return stylePolicy.Render(line)
	}
	return stylePlain.Render(line)
}
