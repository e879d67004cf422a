package models

import (
	"context"
	"time"

	"github.com/Cyclone1070/armorclaw/internal/archive"
	"github.com/Cyclone1070/armorclaw/internal/intent"
	"github.com/Cyclone1070/armorclaw/internal/policy"
	"github.com/Cyclone1070/armorclaw/internal/sandbox"
)

// IntentParser turns an instruction into an intent.
type IntentParser interface {
	Parse(instruction string, listing []string) intent.Intent
}

// PolicyEvaluator decides whether an intent may run.
type PolicyEvaluator interface {
	Evaluate(in intent.Intent, p policy.Policy, a policy.DirectoryChecker) policy.Decision
}

// SandboxExecutor applies an approved intent to a clone of the archive.
type SandboxExecutor interface {
	Apply(ctx context.Context, a *archive.Archive, in intent.Intent, maxChanges int) (*sandbox.Outcome, error)
}

// MetricsRecorder receives per-run measurements.
type MetricsRecorder interface {
	ObserveStage(stage string, d time.Duration)
	IncRun(status string)
	IncViolation(rule string)
	ObserveTouched(n int)
}
