package views

import (
	"strings"

	"github.com/Cyclone1070/armorclaw/internal/audit"
	"github.com/Cyclone1070/armorclaw/internal/ui/models"
)

// RenderLogs renders the most recent audit lines that fit the window.
func RenderLogs(s models.State) string {
	if len(s.Logs) == 0 {
		return LogBoxStyle.Render(HintStyle.Render("Waiting for audit output..."))
	}

	lines := s.Logs
	if limit := s.Height - len(s.Steps) - 8; s.Height > 0 && limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	styled := make([]string, len(lines))
	for i, l := range lines {
		styled[i] = audit.Style(l)
	}
	return LogBoxStyle.Render(strings.Join(styled, "\n"))
}
