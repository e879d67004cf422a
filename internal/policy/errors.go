package policy

import (
	"errors"
	"fmt"
)

// -- Error Types --

// InvalidPolicyError collects every problem found in a decoded policy.
type InvalidPolicyError struct {
	Problems []string
}

func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("invalid policy: %v", e.Problems)
}

func (e *InvalidPolicyError) Is(target error) bool { return target == ErrInvalidPolicy }

// -- Sentinels --

var (
	ErrInvalidPolicy = errors.New("invalid policy")
)
