package sandbox

import (
	"path"
	"strings"

	"github.com/Cyclone1070/armorclaw/internal/archive"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ignoreMatcher applies the .gitignore files found inside an archive.
type ignoreMatcher struct {
	matcher gitignore.Matcher
}

// newIgnoreMatcher loads every .gitignore in the archive. Patterns are scoped
// to the directory holding the file, as git does. A matcher built from an
// archive without .gitignore files never ignores.
func newIgnoreMatcher(a *archive.Archive) *ignoreMatcher {
	var patterns []gitignore.Pattern
	for _, e := range a.Entries() {
		if e.Kind != archive.KindFile || path.Base(e.Path) != ".gitignore" {
			continue
		}
		var domain []string
		if dir := path.Dir(e.Path); dir != "." {
			domain = archive.Segments(dir)
		}
		for _, line := range strings.Split(string(e.Content()), "\n") {
			line = strings.TrimRight(line, "\r")
			if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, gitignore.ParsePattern(line, domain))
		}
	}
	if len(patterns) == 0 {
		return &ignoreMatcher{}
	}
	return &ignoreMatcher{matcher: gitignore.NewMatcher(patterns)}
}

// ShouldIgnore reports whether a resolved archive path is ignored.
func (m *ignoreMatcher) ShouldIgnore(p string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}
	return m.matcher.Match(archive.Segments(p), isDir)
}
