package models

import (
	"github.com/Cyclone1070/armorclaw/internal/orchestrator"
	"github.com/charmbracelet/bubbles/spinner"
)

// State holds everything the views need to render a run.
type State struct {
	Width  int
	Height int

	Instruction string
	Spinner     spinner.Model

	// Steps mirrors the pipeline stages as they are reported.
	Steps []orchestrator.Step
	Logs  []string

	// Result is set once the run has finished.
	Result *orchestrator.ExecutionResult
	// Report is the rendered summary of Result.
	Report string

	Cancelling bool
}

// Done reports whether the run has finished.
func (s State) Done() bool {
	return s.Result != nil
}
