package archive

import (
	"errors"
	"fmt"
)

// -- Error Types --

// PathTraversalError is returned when a path would escape the archive root.
type PathTraversalError struct {
	Path   string
	Reason string
}

func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("path %q escapes archive root: %s", e.Path, e.Reason)
}

func (e *PathTraversalError) Is(target error) bool { return target == ErrPathTraversal }

// EntryTooLargeError is returned when an entry exceeds the configured size limit.
type EntryTooLargeError struct {
	Path  string
	Size  uint64
	Limit int64
}

func (e *EntryTooLargeError) Error() string {
	return fmt.Sprintf("entry %s too large (size %d, limit %d)", e.Path, e.Size, e.Limit)
}

func (e *EntryTooLargeError) Is(target error) bool { return target == ErrCorruptArchive }

// -- Sentinels --

var (
	ErrCorruptArchive = errors.New("corrupt archive")
	ErrPathTraversal  = errors.New("path traversal")
)
