package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cyclone1070/armorclaw/internal/archive"
	"github.com/Cyclone1070/armorclaw/internal/policy"
	"github.com/Cyclone1070/armorclaw/internal/sandbox"
)

// -- Error Types --

// blockedError ends a run with a policy denial rather than a fault.
type blockedError struct {
	decision policy.Decision
}

func (e *blockedError) Error() string {
	return fmt.Sprintf("blocked by %s: %s", e.decision.Rule, e.decision.Reason)
}

// StagePanicError wraps a panic recovered inside a stage.
type StagePanicError struct {
	Stage Stage
	Value any
}

func (e *StagePanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Stage, e.Value)
}

// -- Sentinels --

var (
	ErrArchiveTooLarge = errors.New("archive exceeds size limit")
)

// User-facing reasons. Raw error detail only ever reaches the audit log.
const (
	reasonCorrupt   = "archive could not be read"
	reasonTraversal = "target path is not allowed"
	reasonSandbox   = "sandbox execution failed"
	reasonCancelled = "execution cancelled"
	reasonInternal  = "internal error"
)

// sanitize maps a fault to its fixed user-facing reason.
func sanitize(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return reasonCancelled
	case errors.Is(err, archive.ErrCorruptArchive):
		return reasonCorrupt
	case errors.Is(err, archive.ErrPathTraversal):
		return reasonTraversal
	case errors.Is(err, sandbox.ErrAlreadyExists),
		errors.Is(err, sandbox.ErrNotFound),
		errors.Is(err, sandbox.ErrMissingContent),
		errors.Is(err, sandbox.ErrQuotaExceeded):
		return reasonSandbox
	}
	return reasonInternal
}
