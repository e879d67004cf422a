package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/armorclaw/internal/orchestrator"
	"github.com/Cyclone1070/armorclaw/internal/ui/models"
)

// RenderSteps renders one line per pipeline stage.
func RenderSteps(s models.State) string {
	lines := make([]string, 0, len(s.Steps))
	for i, step := range s.Steps {
		var icon string
		style := StepPendingStyle
		switch step.Status {
		case orchestrator.StepProcessing:
			icon = s.Spinner.View()
			style = StepProcessingStyle
		case orchestrator.StepCompleted:
			icon = "✔"
			style = StepCompletedStyle
		case orchestrator.StepFailed:
			icon = "✘"
			style = StepFailedStyle
		default:
			icon = "○"
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %d. %s", icon, i+1, step.Label)))
	}
	return strings.Join(lines, "\n")
}
