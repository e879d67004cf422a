package views

import (
	"github.com/Cyclone1070/armorclaw/internal/config"
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("63")
	ColorSuccess = lipgloss.Color("42")
	ColorError   = lipgloss.Color("196")
	ColorWarn    = lipgloss.Color("214")
	ColorMuted   = lipgloss.Color("241")

	TitleStyle          lipgloss.Style
	InstructionStyle    lipgloss.Style
	StepPendingStyle    lipgloss.Style
	StepProcessingStyle lipgloss.Style
	StepCompletedStyle  lipgloss.Style
	StepFailedStyle     lipgloss.Style
	LogBoxStyle         lipgloss.Style
	HintStyle           lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyTheme replaces the palette with the configured colours.
func ApplyTheme(cfg config.UIConfig) {
	ColorPrimary = lipgloss.Color(cfg.ColorPrimary)
	ColorSuccess = lipgloss.Color(cfg.ColorSuccess)
	ColorError = lipgloss.Color(cfg.ColorError)
	ColorWarn = lipgloss.Color(cfg.ColorWarn)
	ColorMuted = lipgloss.Color(cfg.ColorMuted)
	buildStyles()
}

func buildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	InstructionStyle = lipgloss.NewStyle().Italic(true)
	StepPendingStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	StepProcessingStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StepCompletedStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	StepFailedStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	LogBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)
	HintStyle = lipgloss.NewStyle().Faint(true)
}
