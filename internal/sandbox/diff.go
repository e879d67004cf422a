package sandbox

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/armorclaw/internal/archive"
	"github.com/pmezard/go-difflib/difflib"
)

// FileDiff is the unified diff of one touched file.
type FileDiff struct {
	Path         string
	Diff         string
	AddedLines   int
	RemovedLines int
}

// diffArchives renders unified diffs for the given paths. Directories are
// skipped; binary files produce a warning instead of a diff.
func diffArchives(before, after *archive.Archive, paths []string) ([]FileDiff, []string) {
	var diffs []FileDiff
	var warnings []string

	for _, p := range paths {
		oldEntry, hadOld := before.Get(p)
		newEntry, hasNew := after.Get(p)
		if (hadOld && oldEntry.Kind == archive.KindDir) || (hasNew && newEntry.Kind == archive.KindDir) {
			continue
		}

		var oldContent, newContent []byte
		if hadOld {
			oldContent = oldEntry.Content()
		}
		if hasNew {
			newContent = newEntry.Content()
		}
		if isBinary(oldContent) || isBinary(newContent) {
			warnings = append(warnings, fmt.Sprintf("%s is binary, diff omitted", p))
			continue
		}

		diff, added, removed := computeUnifiedDiff(p, string(oldContent), string(newContent))
		if diff == "" {
			continue
		}
		diffs = append(diffs, FileDiff{Path: p, Diff: diff, AddedLines: added, RemovedLines: removed})
	}
	return diffs, warnings
}

func computeUnifiedDiff(filename, oldContent, newContent string) (diff string, added, removed int) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  3,
	}
	diff, _ = difflib.GetUnifiedDiffString(ud)

	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			added++
		} else if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			removed++
		}
	}
	return diff, added, removed
}

// joinDiffs concatenates per-file diffs in order.
func joinDiffs(diffs []FileDiff) string {
	var b strings.Builder
	for _, d := range diffs {
		b.WriteString(d.Diff)
		if !strings.HasSuffix(d.Diff, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
