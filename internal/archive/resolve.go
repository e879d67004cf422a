package archive

import (
	"strings"
)

// Resolve normalises an archive-relative path and validates that it stays
// inside the archive root. Backslashes are treated as separators, "." and
// empty segments are dropped, and a trailing slash is removed.
//
// Absolute paths, drive-letter prefixes and any ".." segment are rejected with
// ErrPathTraversal, even when the ".." would cancel out lexically.
func Resolve(path string) (string, error) {
	p := strings.ReplaceAll(strings.TrimSpace(path), `\`, "/")
	if p == "" {
		return "", &PathTraversalError{Path: path, Reason: "empty path"}
	}
	if strings.HasPrefix(p, "/") {
		return "", &PathTraversalError{Path: path, Reason: "absolute path"}
	}
	if len(p) >= 2 && p[1] == ':' {
		return "", &PathTraversalError{Path: path, Reason: "volume prefix"}
	}

	parts := strings.Split(p, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			return "", &PathTraversalError{Path: path, Reason: "parent directory segment"}
		}
		segments = append(segments, part)
	}

	if len(segments) == 0 {
		return "", &PathTraversalError{Path: path, Reason: "resolves to archive root"}
	}
	return strings.Join(segments, "/"), nil
}

// Segments splits a resolved path into its components.
func Segments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
