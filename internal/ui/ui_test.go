package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Cyclone1070/armorclaw/internal/config"
	"github.com/Cyclone1070/armorclaw/internal/orchestrator"
	"github.com/Cyclone1070/armorclaw/internal/workflow"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock dependencies
type MockMarkdownRenderer struct {
	RenderFunc func(string, int) (string, error)
}

func (m *MockMarkdownRenderer) Render(content string, width int) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(content, width)
	}
	return content, nil
}

func mockSpinnerFactory() spinner.Model {
	return spinner.New()
}

func newTestUI(out *bytes.Buffer) *UI {
	return NewUI(
		config.DefaultConfig().UI,
		&MockMarkdownRenderer{},
		mockSpinnerFactory,
		tea.WithInput(nil),
		tea.WithOutput(out),
	)
}

func TestRun_ReturnsPipelineResult(t *testing.T) {
	var out bytes.Buffer
	u := newTestUI(&out)

	res, err := u.Run(context.Background(), "create src/a.ts", func(ctx context.Context, events chan<- workflow.Event) *orchestrator.ExecutionResult {
		events <- workflow.StageEvent{Step: 0, Label: "Parsing Instruction"}
		events <- workflow.LogEvent{Line: "[SYSTEM] run started"}
		events <- workflow.DoneEvent{Status: "allowed"}
		return &orchestrator.ExecutionResult{RunID: "r1", Status: orchestrator.StatusAllowed}
	})

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "r1", res.RunID)
}

func TestRun_WithRealCoordinator(t *testing.T) {
	var out bytes.Buffer
	u := newTestUI(&out)
	coord := orchestrator.New()

	res, err := u.Run(context.Background(), "delete README.md", func(ctx context.Context, events chan<- workflow.Event) *orchestrator.ExecutionResult {
		return coord.Run(ctx, orchestrator.Request{
			Archive:     []byte("not a zip"),
			Instruction: "delete README.md",
			Policy:      config.DefaultConfig().Policy.ToPolicy(),
			Events:      events,
		})
	})

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, orchestrator.StatusError, res.Status)
}

func TestRun_ParentCancellationReachesPipeline(t *testing.T) {
	var out bytes.Buffer
	u := newTestUI(&out)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	res, err := u.Run(ctx, "create src/a.ts", func(ctx context.Context, events chan<- workflow.Event) *orchestrator.ExecutionResult {
		<-ctx.Done()
		return &orchestrator.ExecutionResult{Status: orchestrator.StatusError, Reason: "execution cancelled"}
	})

	require.NoError(t, err)
	assert.Equal(t, orchestrator.StatusError, res.Status)
}
