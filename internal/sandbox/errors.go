package sandbox

import (
	"errors"
	"fmt"
)

// -- Error Types --

// OperationError reports which mutation failed on which path.
type OperationError struct {
	Op     string
	Path   string
	Detail string
	Cause  error
}

func (e *OperationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %v (%s)", e.Op, e.Path, e.Cause, e.Detail)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *OperationError) Unwrap() error { return e.Cause }

// QuotaError is returned when the recount exceeds the change limit.
type QuotaError struct {
	Journal int
	Diff    int
	Limit   int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%v: touched %d entries (journal %d, checksum diff %d), limit %d",
		ErrQuotaExceeded, max(e.Journal, e.Diff), e.Journal, e.Diff, e.Limit)
}

func (e *QuotaError) Is(target error) bool { return target == ErrQuotaExceeded }

// -- Sentinels --

var (
	ErrAlreadyExists  = errors.New("entry already exists")
	ErrNotFound       = errors.New("entry not found")
	ErrMissingContent = errors.New("no content supplied")
	ErrQuotaExceeded  = errors.New("change quota exceeded")
)
