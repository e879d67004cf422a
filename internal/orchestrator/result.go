package orchestrator

import (
	"time"

	"github.com/Cyclone1070/armorclaw/internal/intent"
	"github.com/Cyclone1070/armorclaw/internal/policy"
)

// Status is the terminal outcome of a run.
type Status string

const (
	StatusAllowed Status = "allowed"
	StatusBlocked Status = "blocked"
	StatusError   Status = "error"
)

// Stage is one of the four pipeline stages, in execution order.
type Stage int

const (
	StageParsing Stage = iota
	StageValidating
	StagePolicy
	StageSandbox
)

var stageLabels = [...]string{
	StageParsing:    "Parsing Instruction",
	StageValidating: "Validating Intent",
	StagePolicy:     "Policy Enforcement",
	StageSandbox:    "Sandboxed Execution",
}

// Stages lists every stage in execution order.
var Stages = []Stage{StageParsing, StageValidating, StagePolicy, StageSandbox}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageLabels) {
		return "Unknown Stage"
	}
	return stageLabels[s]
}

// StepStatus tracks one stage within a run.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepProcessing StepStatus = "processing"
	StepCompleted  StepStatus = "completed"
	StepFailed     StepStatus = "failed"
)

// Step is the per-stage view of a run.
type Step struct {
	Label  string     `json:"label"`
	Status StepStatus `json:"status"`
}

// ProgressFunc is told about a stage before its work begins.
type ProgressFunc func(step int, label string)

// ExecutionResult is everything a caller learns from one run. Exactly one of
// ModifiedZip and Reason is set.
type ExecutionResult struct {
	RunID  string `json:"runId"`
	Status Status `json:"status"`
	// Reason is empty when allowed, the policy message when blocked and a
	// fixed, sanitised message on error.
	Reason string `json:"reason,omitempty"`
	// Intent is nil when the run failed before parsing finished.
	Intent *intent.Intent `json:"intent,omitempty"`
	// Decision is nil when the run stopped before policy enforcement.
	Decision      *policy.Decision `json:"decision,omitempty"`
	Logs          []string         `json:"logs"`
	ModifiedZip   []byte           `json:"-"`
	ExecutionTime time.Duration    `json:"executionTime"`
	Steps         []Step           `json:"steps"`
	Touched       []string         `json:"touched,omitempty"`
	Diff          string           `json:"diff,omitempty"`
}

func newSteps() []Step {
	steps := make([]Step, len(Stages))
	for i, s := range Stages {
		steps[i] = Step{Label: s.String(), Status: StepPending}
	}
	return steps
}
