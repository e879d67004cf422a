// Package main provides the armorclaw command. It applies a natural-language
// instruction to a ZIP archive after checking it against a policy.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Cyclone1070/armorclaw/internal/audit"
	"github.com/Cyclone1070/armorclaw/internal/config"
	"github.com/Cyclone1070/armorclaw/internal/metrics"
	"github.com/Cyclone1070/armorclaw/internal/orchestrator"
	"github.com/Cyclone1070/armorclaw/internal/policy"
	"github.com/Cyclone1070/armorclaw/internal/ui"
	uiservices "github.com/Cyclone1070/armorclaw/internal/ui/services"
	"github.com/Cyclone1070/armorclaw/internal/workflow"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/mattn/go-isatty"
)

// Exit codes.
const (
	exitAllowed = 0
	exitError   = 1
	exitBlocked = 2
)

// options holds the parsed command line.
type options struct {
	ArchivePath string
	PolicyPath  string
	OutPath     string
	Plain       bool
	Metrics     bool
	Instruction string
}

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config      *config.Config
	Coordinator *orchestrator.Coordinator
	Metrics     *metrics.Prom
	Stdout      io.Writer
	Stderr      io.Writer
	Interactive bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitAllowed
		}
		return exitError
	}

	// Load configuration (from defaults + ~/.config/armorclaw/config.json)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	data, err := os.ReadFile(opts.ArchivePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to read archive: %v\n", err)
		return exitError
	}

	p, err := loadPolicy(opts.PolicyPath, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	deps := newDependencies(cfg, stdout, stderr, !opts.Plain && isTerminal(stdout))

	var res *orchestrator.ExecutionResult
	if deps.Interactive {
		res, err = runInteractive(ctx, deps, data, opts.Instruction, p)
		if err != nil {
			fmt.Fprintf(stderr, "Warning: terminal UI failed: %v\n", err)
		}
	} else {
		res = runPlain(ctx, deps, data, opts.Instruction, p)
	}

	if opts.Metrics {
		if err := deps.Metrics.WriteSummary(stderr); err != nil {
			fmt.Fprintf(stderr, "Warning: failed to write metrics: %v\n", err)
		}
	}

	return finish(res, opts.OutPath, stdout, stderr)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("armorclaw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ArchivePath, "archive", "", "path to the project ZIP archive (required)")
	fs.StringVar(&opts.PolicyPath, "policy", "", "path to a YAML policy file (defaults to the configured policy)")
	fs.StringVar(&opts.OutPath, "out", "modified_project.zip", "where to write the modified archive")
	fs.BoolVar(&opts.Plain, "plain", false, "print plain log output instead of the terminal UI")
	fs.BoolVar(&opts.Metrics, "metrics", false, "print run metrics to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: armorclaw -archive project.zip [flags] <instruction>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.Instruction = strings.TrimSpace(strings.Join(fs.Args(), " "))
	if opts.ArchivePath == "" {
		fmt.Fprintln(stderr, "Error: -archive is required")
		fs.Usage()
		return opts, errors.New("missing archive")
	}
	return opts, nil
}

func loadPolicy(path string, cfg *config.Config) (policy.Policy, error) {
	if path == "" {
		return cfg.Policy.ToPolicy(), nil
	}
	return policy.LoadFile(path)
}

func newDependencies(cfg *config.Config, stdout, stderr io.Writer, interactive bool) Dependencies {
	prom := metrics.NewProm("armorclaw", nil)
	coord := orchestrator.New(
		orchestrator.WithMetrics(prom),
		orchestrator.WithLimits(cfg.Engine.Limits()),
		orchestrator.WithMaxArchiveBytes(cfg.Engine.MaxArchiveBytes),
		orchestrator.WithTimeout(cfg.Engine.Timeout()),
	)
	return Dependencies{
		Config:      cfg,
		Coordinator: coord,
		Metrics:     prom,
		Stdout:      stdout,
		Stderr:      stderr,
		Interactive: interactive,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func createRealUI(cfg *config.Config) *ui.UI {
	renderer := uiservices.NewGlamourRenderer("dark")
	spinnerFactory := func() spinner.Model {
		sp := ui.DefaultSpinner()
		sp.Spinner.FPS = cfg.UI.TickInterval()
		return sp
	}
	return ui.NewUI(cfg.UI, renderer, spinnerFactory)
}

func runInteractive(ctx context.Context, deps Dependencies, data []byte, instruction string, p policy.Policy) (*orchestrator.ExecutionResult, error) {
	return createRealUI(deps.Config).Run(ctx, instruction, func(ctx context.Context, events chan<- workflow.Event) *orchestrator.ExecutionResult {
		return deps.Coordinator.Run(ctx, orchestrator.Request{
			Archive:     data,
			Instruction: instruction,
			Policy:      p,
			Events:      events,
		})
	})
}

// runPlain streams stage headers and audit lines to stdout, then prints the
// report without terminal styling.
func runPlain(ctx context.Context, deps Dependencies, data []byte, instruction string, p policy.Policy) *orchestrator.ExecutionResult {
	events := make(chan workflow.Event)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			switch ev := ev.(type) {
			case workflow.StageEvent:
				fmt.Fprintf(deps.Stdout, "==> [%d/%d] %s\n", ev.Step+1, len(orchestrator.Stages), ev.Label)
			case workflow.LogEvent:
				fmt.Fprintln(deps.Stdout, audit.Style(ev.Line))
			}
		}
	}()

	res := deps.Coordinator.Run(ctx, orchestrator.Request{
		Archive:     data,
		Instruction: instruction,
		Policy:      p,
		Events:      events,
	})
	close(events)
	<-done

	report := uiservices.BuildReport(res)
	fmt.Fprintln(deps.Stdout, uiservices.RenderMarkdown(report, 80, uiservices.NewGlamourRenderer("notty")))
	return res
}

// finish writes the modified archive for an allowed run and maps the status
// to an exit code.
func finish(res *orchestrator.ExecutionResult, outPath string, stdout, stderr io.Writer) int {
	if res == nil {
		fmt.Fprintln(stderr, "Error: no result")
		return exitError
	}
	switch res.Status {
	case orchestrator.StatusAllowed:
		if err := os.WriteFile(outPath, res.ModifiedZip, 0o644); err != nil {
			fmt.Fprintf(stderr, "Error: failed to write %s: %v\n", outPath, err)
			return exitError
		}
		fmt.Fprintf(stdout, "Modified archive written to %s\n", outPath)
		return exitAllowed
	case orchestrator.StatusBlocked:
		fmt.Fprintf(stderr, "Blocked: %s\n", res.Reason)
		return exitBlocked
	default:
		fmt.Fprintf(stderr, "Error: %s\n", res.Reason)
		return exitError
	}
}
