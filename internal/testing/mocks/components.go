package mocks

import (
	"context"
	"time"

	"github.com/Cyclone1070/armorclaw/internal/archive"
	"github.com/Cyclone1070/armorclaw/internal/intent"
	"github.com/Cyclone1070/armorclaw/internal/policy"
	"github.com/Cyclone1070/armorclaw/internal/sandbox"
)

// MockPolicyEvaluator implements models.PolicyEvaluator with configurable behaviour
type MockPolicyEvaluator struct {
	EvaluateFunc func(in intent.Intent, p policy.Policy, a policy.DirectoryChecker) policy.Decision
	Calls        int
}

func (m *MockPolicyEvaluator) Evaluate(in intent.Intent, p policy.Policy, a policy.DirectoryChecker) policy.Decision {
	m.Calls++
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(in, p, a)
	}
	// Default to the real rules if no func provided
	return policy.Evaluate(in, p, a)
}

// MockSandboxExecutor implements models.SandboxExecutor with configurable behaviour
type MockSandboxExecutor struct {
	ApplyFunc func(ctx context.Context, a *archive.Archive, in intent.Intent, maxChanges int) (*sandbox.Outcome, error)
	Calls     int
}

func (m *MockSandboxExecutor) Apply(ctx context.Context, a *archive.Archive, in intent.Intent, maxChanges int) (*sandbox.Outcome, error) {
	m.Calls++
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, a, in, maxChanges)
	}
	return sandbox.NewExecutor().Apply(ctx, a, in, maxChanges)
}

// NoopRecorder implements models.MetricsRecorder and records nothing
type NoopRecorder struct{}

func (NoopRecorder) ObserveStage(string, time.Duration) {}
func (NoopRecorder) IncRun(string)                      {}
func (NoopRecorder) IncViolation(string)                {}
func (NoopRecorder) ObserveTouched(int)                 {}
