package views

import (
	"github.com/Cyclone1070/armorclaw/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State) string {
	sections := []string{
		TitleStyle.Render("ArmorClaw"),
		InstructionStyle.Render("> " + s.Instruction),
		"",
		RenderSteps(s),
		"",
		RenderLogs(s),
	}

	switch {
	case s.Done():
		sections = append(sections, s.Report)
	case s.Cancelling:
		sections = append(sections, HintStyle.Render("Cancelling..."))
	default:
		sections = append(sections, HintStyle.Render("ctrl+c: cancel"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
