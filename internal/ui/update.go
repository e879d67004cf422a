package ui

import (
	"github.com/Cyclone1070/armorclaw/internal/orchestrator"
	"github.com/Cyclone1070/armorclaw/internal/ui/models"
	"github.com/Cyclone1070/armorclaw/internal/ui/services"
	"github.com/Cyclone1070/armorclaw/internal/ui/views"
	"github.com/Cyclone1070/armorclaw/internal/workflow"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	// Dependencies
	renderer services.MarkdownRenderer

	// Pipeline -> UI
	events <-chan workflow.Event
	result *pendingResult

	// UI -> Pipeline
	cancel func()
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// DefaultSpinner is the spinner used when no factory is given.
func DefaultSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = views.StepProcessingStyle
	return sp
}

func newBubbleTeaModel(
	instruction string,
	events <-chan workflow.Event,
	result *pendingResult,
	cancel func(),
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) BubbleTeaModel {
	if spinnerFactory == nil {
		spinnerFactory = DefaultSpinner
	}

	steps := make([]orchestrator.Step, len(orchestrator.Stages))
	for i, s := range orchestrator.Stages {
		steps[i] = orchestrator.Step{Label: s.String(), Status: orchestrator.StepPending}
	}

	return BubbleTeaModel{
		state: models.State{
			Instruction: instruction,
			Spinner:     spinnerFactory(),
			Steps:       steps,
		},
		renderer: renderer,
		events:   events,
		result:   result,
		cancel:   cancel,
	}
}

// Internal messages
type eventMsg struct{ event workflow.Event }
type eventsClosedMsg struct{}
type resultMsg struct{ result *orchestrator.ExecutionResult }

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	return tea.Batch(
		m.state.Spinner.Tick,
		listenForEvents(m.events),
		listenForResult(m.result),
	)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height

	case spinner.TickMsg:
		if m.state.Done() {
			return m, nil
		}
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case eventMsg:
		if !m.state.Done() {
			m.applyEvent(msg.event)
		}
		return m, listenForEvents(m.events)

	case eventsClosedMsg:
		return m, nil

	case resultMsg:
		m.applyResult(msg.result)
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state)
}

func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if m.state.Done() {
			return m, tea.Quit
		}
		// The pipeline still reports a result after cancellation; wait for it.
		if !m.state.Cancelling && m.cancel != nil {
			m.cancel()
		}
		m.state.Cancelling = true
	}
	return m, nil
}

func (m *BubbleTeaModel) applyEvent(ev workflow.Event) {
	switch ev := ev.(type) {
	case workflow.StageEvent:
		if ev.Step < 0 || ev.Step >= len(m.state.Steps) {
			return
		}
		for i := range ev.Step {
			if m.state.Steps[i].Status != orchestrator.StepFailed {
				m.state.Steps[i].Status = orchestrator.StepCompleted
			}
		}
		m.state.Steps[ev.Step].Status = orchestrator.StepProcessing
	case workflow.LogEvent:
		m.state.Logs = append(m.state.Logs, ev.Line)
	case workflow.DoneEvent:
		// Final step states arrive with the result.
	}
}

func (m *BubbleTeaModel) applyResult(res *orchestrator.ExecutionResult) {
	if res == nil {
		return
	}
	m.state.Result = res
	if len(res.Steps) > 0 {
		m.state.Steps = append([]orchestrator.Step(nil), res.Steps...)
	}
	if len(res.Logs) > 0 {
		m.state.Logs = append([]string(nil), res.Logs...)
	}
	m.state.Report = services.RenderMarkdown(services.BuildReport(res), m.state.Width, m.renderer)
}

func listenForEvents(ch <-chan workflow.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: ev}
	}
}

func listenForResult(p *pendingResult) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		return resultMsg{result: p.wait()}
	}
}
