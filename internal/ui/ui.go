package ui

import (
	"context"

	"github.com/Cyclone1070/armorclaw/internal/config"
	"github.com/Cyclone1070/armorclaw/internal/orchestrator"
	"github.com/Cyclone1070/armorclaw/internal/ui/services"
	"github.com/Cyclone1070/armorclaw/internal/ui/views"
	"github.com/Cyclone1070/armorclaw/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

// RunFunc executes the pipeline, streaming events until it returns.
type RunFunc func(ctx context.Context, events chan<- workflow.Event) *orchestrator.ExecutionResult

// UI shows the progress of a single pipeline run using Bubble Tea.
type UI struct {
	renderer       services.MarkdownRenderer
	spinnerFactory SpinnerFactory
	opts           []tea.ProgramOption
}

// NewUI creates a new Bubble Tea UI
func NewUI(
	cfg config.UIConfig,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	opts ...tea.ProgramOption,
) *UI {
	views.ApplyTheme(cfg)
	return &UI{
		renderer:       renderer,
		spinnerFactory: spinnerFactory,
		opts:           opts,
	}
}

// Run starts run in the background and renders its progress until it
// returns. The result is returned even when the program fails to render.
func (u *UI) Run(ctx context.Context, instruction string, run RunFunc) (*orchestrator.ExecutionResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan workflow.Event)
	result := &pendingResult{done: make(chan struct{})}
	go func() {
		result.res = run(ctx, events)
		close(events)
		close(result.done)
	}()

	model := newBubbleTeaModel(instruction, events, result, cancel, u.renderer, u.spinnerFactory)
	final, err := tea.NewProgram(model, u.opts...).Run()
	if m, ok := final.(BubbleTeaModel); ok && err == nil && m.state.Result != nil {
		return m.state.Result, nil
	}

	// The program ended early; stop the pipeline and keep it from blocking
	// on sends nobody will read.
	cancel()
	go drain(events)
	return result.wait(), err
}

// pendingResult is the outcome of a run that may still be in progress.
type pendingResult struct {
	done chan struct{}
	res  *orchestrator.ExecutionResult
}

func (p *pendingResult) wait() *orchestrator.ExecutionResult {
	<-p.done
	return p.res
}

func drain(events <-chan workflow.Event) {
	for range events {
	}
}
