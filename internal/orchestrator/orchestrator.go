package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Cyclone1070/armorclaw/internal/archive"
	"github.com/Cyclone1070/armorclaw/internal/audit"
	"github.com/Cyclone1070/armorclaw/internal/intent"
	"github.com/Cyclone1070/armorclaw/internal/metrics"
	"github.com/Cyclone1070/armorclaw/internal/orchestrator/models"
	"github.com/Cyclone1070/armorclaw/internal/policy"
	"github.com/Cyclone1070/armorclaw/internal/sandbox"
	"github.com/Cyclone1070/armorclaw/internal/workflow"
	"github.com/google/uuid"
)

// Coordinator drives Parse, Validate, Enforce and Execute for one request at
// a time. It holds no per-run state and is safe for concurrent use.
type Coordinator struct {
	parser          models.IntentParser
	engine          models.PolicyEvaluator
	executor        models.SandboxExecutor
	metrics         models.MetricsRecorder
	limits          archive.Limits
	maxArchiveBytes int64
	timeout         time.Duration
}

// Option configures a Coordinator.
type Option func(*Coordinator)

func WithParser(p models.IntentParser) Option { return func(c *Coordinator) { c.parser = p } }
func WithEngine(e models.PolicyEvaluator) Option { return func(c *Coordinator) { c.engine = e } }
func WithExecutor(x models.SandboxExecutor) Option { return func(c *Coordinator) { c.executor = x } }
func WithMetrics(m models.MetricsRecorder) Option { return func(c *Coordinator) { c.metrics = m } }
func WithLimits(l archive.Limits) Option { return func(c *Coordinator) { c.limits = l } }
func WithMaxArchiveBytes(n int64) Option { return func(c *Coordinator) { c.maxArchiveBytes = n } }
func WithTimeout(d time.Duration) Option { return func(c *Coordinator) { c.timeout = d } }

// New creates a Coordinator wired to the default components.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		parser:   intent.NewParser(),
		engine:   policy.NewEngine(),
		executor: sandbox.NewExecutor(),
		metrics:  metrics.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.parser == nil || c.engine == nil || c.executor == nil {
		panic("parser, engine and executor are required")
	}
	if c.metrics == nil {
		c.metrics = metrics.Noop{}
	}
	return c
}

// Request is one invocation of the pipeline.
type Request struct {
	Archive     []byte
	Instruction string
	Policy      policy.Policy
	// OnProgress may be nil.
	OnProgress ProgressFunc
	// Events, if set, receives a StageEvent before each stage, a LogEvent per
	// audit line and a final DoneEvent. Sends block until the caller reads or
	// cancels ctx; after cancellation undelivered events are dropped.
	Events chan<- workflow.Event
}

// Execute runs the pipeline and always returns a result; faults are reported
// through its Status and Reason, never as a Go error.
func (c *Coordinator) Execute(ctx context.Context, archiveData []byte, instruction string, p policy.Policy, onProgress ProgressFunc) *ExecutionResult {
	return c.Run(ctx, Request{
		Archive:     archiveData,
		Instruction: instruction,
		Policy:      p,
		OnProgress:  onProgress,
	})
}

// run carries the state of a single invocation.
type run struct {
	*Coordinator
	ctx    context.Context
	caller context.Context
	req    Request
	log    *audit.Logger
	result *ExecutionResult

	archive *archive.Archive
	intent  intent.Intent
}

// Run is Execute with the full set of request options.
func (c *Coordinator) Run(ctx context.Context, req Request) *ExecutionResult {
	start := time.Now()
	caller := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var sink audit.Sink
	if req.Events != nil {
		sink = func(line string) { emit(caller, req.Events, workflow.LogEvent{Line: line}) }
	}

	r := &run{
		Coordinator: c,
		ctx:         ctx,
		caller:      caller,
		req:         req,
		log:         audit.NewLogger(sink),
		result: &ExecutionResult{
			RunID: uuid.NewString(),
			Steps: newSteps(),
		},
	}
	r.log.Logf(audit.TagSystem, "run %s started", r.result.RunID)

	err := r.stage(StageParsing, r.parse)
	if err == nil {
		err = r.stage(StageValidating, r.validate)
	}
	if err == nil {
		err = r.stage(StagePolicy, r.enforce)
	}
	if err == nil {
		err = r.stage(StageSandbox, r.execute)
	}
	r.finish(err)

	res := r.result
	res.ExecutionTime = time.Since(start)
	res.Logs = r.log.Lines()
	c.metrics.IncRun(string(res.Status))
	if req.Events != nil {
		emit(caller, req.Events, workflow.DoneEvent{Status: string(res.Status), Reason: res.Reason})
	}
	return res
}

// emit delivers ev unless ctx is done first.
func emit(ctx context.Context, events chan<- workflow.Event, ev workflow.Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

// stage checks for cancellation, reports the stage as started and runs fn,
// turning a panic into an error.
func (r *run) stage(s Stage, fn func() error) (err error) {
	if err := r.ctx.Err(); err != nil {
		return err
	}

	r.result.Steps[s].Status = StepProcessing
	if r.req.OnProgress != nil {
		r.req.OnProgress(int(s), s.String())
	}
	if r.req.Events != nil {
		emit(r.caller, r.req.Events, workflow.StageEvent{Step: int(s), Label: s.String()})
	}

	began := time.Now()
	defer func() {
		if p := recover(); p != nil {
			err = &StagePanicError{Stage: s, Value: p}
		}
		r.metrics.ObserveStage(s.String(), time.Since(began))
		if err != nil {
			r.result.Steps[s].Status = StepFailed
		} else {
			r.result.Steps[s].Status = StepCompleted
		}
	}()
	return fn()
}

func (r *run) parse() error {
	if r.maxArchiveBytes > 0 && int64(len(r.req.Archive)) > r.maxArchiveBytes {
		return fmt.Errorf("%w: %w: %d bytes, limit %d",
			archive.ErrCorruptArchive, ErrArchiveTooLarge, len(r.req.Archive), r.maxArchiveBytes)
	}
	a, err := archive.LoadWithLimits(r.req.Archive, r.limits)
	if err != nil {
		return err
	}
	r.archive = a
	r.log.Logf(audit.TagSystem, "archive loaded: %d entries", a.Len())

	r.intent = r.parser.Parse(r.req.Instruction, a.Listing())
	in := r.intent
	r.result.Intent = &in
	r.log.Logf(audit.TagParser, "instruction: %q", r.req.Instruction)
	r.log.Logf(audit.TagParser, "intent: action=%s target=%q", r.intent.Action, r.intent.TargetPath)
	if r.intent.Destination != "" {
		r.log.Logf(audit.TagParser, "rename destination: %q", r.intent.Destination)
	}
	r.log.Logf(audit.TagParser, "reasoning: %s", r.intent.Reasoning)
	return nil
}

// validate normalises the intent's paths so that only archive-relative,
// traversal-free paths reach the policy engine.
func (r *run) validate() error {
	if r.intent.Action == intent.ActionUnknown {
		r.log.Logf(audit.TagWarn, "no actionable intent was derived from the instruction")
		return nil
	}

	target, err := archive.Resolve(r.intent.TargetPath)
	if err != nil {
		return err
	}
	r.intent.TargetPath = target

	if r.intent.Destination != "" {
		dest, err := archive.Resolve(r.intent.Destination)
		if err != nil {
			return err
		}
		r.intent.Destination = dest
	}

	in := r.intent
	r.result.Intent = &in
	r.log.Logf(audit.TagPolicy, "intent validated: %s %s", r.intent.Action, r.intent.TargetPath)
	return nil
}

func (r *run) enforce() error {
	d := r.engine.Evaluate(r.intent, r.req.Policy, r.archive)
	r.result.Decision = &d

	for _, passed := range d.Trace {
		r.log.Logf(audit.TagPolicy, "check passed: %s", passed)
	}
	if !d.Allowed {
		r.metrics.IncViolation(string(d.Rule))
		r.log.Violation(string(d.Rule), "%s", d.Reason)
		return &blockedError{decision: d}
	}
	r.log.Logf(audit.TagPolicy, "policy approved: %d of %d permitted changes", d.Touches, r.req.Policy.MaxFileChanges)
	return nil
}

func (r *run) execute() error {
	out, err := r.executor.Apply(r.ctx, r.archive, r.intent, r.req.Policy.MaxFileChanges)
	if err != nil {
		return err
	}
	for _, w := range out.Warnings {
		r.log.Logf(audit.TagWarn, "%s", w)
	}
	for _, p := range out.Touched {
		r.log.Logf(audit.TagSystem, "touched %s", p)
	}
	r.metrics.ObserveTouched(out.Count)

	r.result.ModifiedZip = out.Blob
	r.result.Touched = out.Touched
	r.result.Diff = out.Diff
	r.log.Logf(audit.TagSuccess, "sandbox produced modified archive: %d entries touched, %d bytes",
		out.Count, len(out.Blob))
	return nil
}

// finish sets the terminal status. Raw fault detail goes to the log only.
func (r *run) finish(err error) {
	res := r.result
	var blocked *blockedError
	switch {
	case err == nil:
		res.Status = StatusAllowed
		r.log.Logf(audit.TagSuccess, "execution allowed")
	case errors.As(err, &blocked):
		res.Status = StatusBlocked
		res.Reason = blocked.decision.Reason
		r.log.Logf(audit.TagPolicy, "execution blocked")
	default:
		res.Status = StatusError
		res.Reason = sanitize(err)
		res.ModifiedZip = nil
		r.log.Logf(audit.TagError, "%v", err)
		r.log.Logf(audit.TagError, "execution failed: %s", res.Reason)
	}
}
