package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Cyclone1070/armorclaw/internal/orchestrator"
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer turns markdown into terminal output.
type MarkdownRenderer interface {
	Render(markdown string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour.
type GlamourRenderer struct {
	// Style is a glamour standard style name such as "dark" or "notty".
	Style string
}

// NewGlamourRenderer creates a renderer using the given standard style.
func NewGlamourRenderer(style string) *GlamourRenderer {
	if style == "" {
		style = "dark"
	}
	return &GlamourRenderer{Style: style}
}

func (g *GlamourRenderer) Render(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(g.Style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

// RenderMarkdown renders with the given renderer, falling back to the raw
// markdown when rendering fails.
func RenderMarkdown(markdown string, width int, renderer MarkdownRenderer) string {
	if renderer == nil {
		return markdown
	}
	out, err := renderer.Render(markdown, width)
	if err != nil {
		return markdown
	}
	return out
}

// BuildReport summarises a finished run as markdown.
func BuildReport(res *orchestrator.ExecutionResult) string {
	if res == nil {
		return ""
	}
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Run %s\n\n", res.Status))
	sb.WriteString(fmt.Sprintf("- **Run ID:** `%s`\n", res.RunID))
	sb.WriteString(fmt.Sprintf("- **Duration:** %s\n", res.ExecutionTime.Round(time.Microsecond)))
	if res.Intent != nil {
		sb.WriteString(fmt.Sprintf("- **Action:** %s\n", res.Intent.Action))
		if res.Intent.TargetPath != "" {
			sb.WriteString(fmt.Sprintf("- **Target:** `%s`\n", res.Intent.TargetPath))
		}
		if res.Intent.Destination != "" {
			sb.WriteString(fmt.Sprintf("- **Destination:** `%s`\n", res.Intent.Destination))
		}
	}
	if res.Reason != "" {
		sb.WriteString(fmt.Sprintf("- **Reason:** %s\n", res.Reason))
	}
	if res.Decision != nil && !res.Decision.Allowed {
		sb.WriteString(fmt.Sprintf("- **Violated rule:** %s\n", res.Decision.Rule))
	}

	if len(res.Touched) > 0 {
		sb.WriteString("\n## Touched entries\n\n")
		for _, p := range res.Touched {
			sb.WriteString(fmt.Sprintf("- `%s`\n", p))
		}
	}
	if res.Diff != "" {
		sb.WriteString("\n## Diff\n\n```diff\n")
		sb.WriteString(res.Diff)
		if !strings.HasSuffix(res.Diff, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("```\n")
	}
	return sb.String()
}
