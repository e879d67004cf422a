package sandbox

import (
	"context"
	"fmt"
	"path"

	"github.com/Cyclone1070/armorclaw/internal/archive"
	"github.com/Cyclone1070/armorclaw/internal/intent"
)

// Outcome is the result of a successful sandboxed mutation.
type Outcome struct {
	// Archive is the mutated clone. The input archive is never modified.
	Archive *archive.Archive
	// Blob is Archive serialised as a ZIP container.
	Blob []byte
	// Touched lists every entry the mutation wrote or removed, in order.
	Touched []string
	// Count is the larger of the journal size and the checksum diff.
	Count    int
	Diffs    []FileDiff
	Diff     string
	Warnings []string
}

type journalEntry struct {
	op   string
	path string
}

// journal records each entry-level write or removal made on the clone.
type journal struct {
	entries []journalEntry
}

func (j *journal) record(op, p string) {
	j.entries = append(j.entries, journalEntry{op: op, path: p})
}

func (j *journal) paths() []string {
	seen := make(map[string]bool, len(j.entries))
	var out []string
	for _, e := range j.entries {
		if !seen[e.path] {
			seen[e.path] = true
			out = append(out, e.path)
		}
	}
	return out
}

// Executor applies validated intents to a private clone of an archive.
type Executor struct{}

// NewExecutor creates an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Apply performs the intent's mutation on a clone of original. On any
// failure the clone is discarded and original is untouched.
//
// After mutating, the number of touched entries is recounted from both the
// journal and a checksum diff of original against the clone; if the larger
// count exceeds maxChanges the result is ErrQuotaExceeded, whatever the
// policy engine predicted.
func (x *Executor) Apply(ctx context.Context, original *archive.Archive, in intent.Intent, maxChanges int) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := archive.Resolve(in.TargetPath)
	if err != nil {
		return nil, err
	}
	var dest string
	if in.Destination != "" {
		if dest, err = archive.Resolve(in.Destination); err != nil {
			return nil, err
		}
	}

	clone := original.Clone()
	j := &journal{}
	var warnings []string

	ignored := newIgnoreMatcher(original)
	for _, p := range []string{target, dest} {
		if p != "" && ignored.ShouldIgnore(p, original.IsDir(p)) {
			warnings = append(warnings, fmt.Sprintf("%s is ignored by the project's .gitignore", p))
		}
	}

	switch in.Action {
	case intent.ActionCreate:
		err = create(clone, j, target, contentOf(in))
	case intent.ActionModify:
		err = modify(clone, j, target, in.Content)
	case intent.ActionDelete:
		err = remove(clone, j, target)
	case intent.ActionRefactor:
		err = refactor(clone, j, target, dest, in.Content)
	default:
		err = &OperationError{Op: string(in.Action), Path: target, Cause: ErrNotFound, Detail: "no mutation for action"}
	}
	if err != nil {
		return nil, err
	}

	changed := archive.Changed(original, clone)
	count := max(len(j.entries), len(changed))
	if count > maxChanges {
		return nil, &QuotaError{Journal: len(j.entries), Diff: len(changed), Limit: maxChanges}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blob, err := clone.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize sandbox archive: %w", err)
	}

	diffs, diffWarnings := diffArchives(original, clone, changed)
	warnings = append(warnings, diffWarnings...)

	return &Outcome{
		Archive:  clone,
		Blob:     blob,
		Touched:  j.paths(),
		Count:    count,
		Diffs:    diffs,
		Diff:     joinDiffs(diffs),
		Warnings: warnings,
	}, nil
}

func contentOf(in intent.Intent) []byte {
	if in.Content == nil {
		return []byte{}
	}
	return []byte(*in.Content)
}

func create(a *archive.Archive, j *journal, target string, content []byte) error {
	if a.Exists(target) {
		return &OperationError{Op: "create", Path: target, Cause: ErrAlreadyExists}
	}
	for dir := path.Dir(target); dir != "."; dir = path.Dir(dir) {
		if e, ok := a.Get(dir); ok && e.Kind == archive.KindFile {
			return &OperationError{Op: "create", Path: target, Cause: ErrAlreadyExists,
				Detail: fmt.Sprintf("parent %s is a file", dir)}
		}
	}
	a.Put(archive.NewFile(target, content))
	j.record("create", target)
	return nil
}

// modify replaces a file's bytes. Content is required.
func modify(a *archive.Archive, j *journal, target string, content *string) error {
	e, ok := a.Get(target)
	if !ok || e.Kind != archive.KindFile {
		detail := ""
		if a.IsDir(target) {
			detail = "is a directory"
		}
		return &OperationError{Op: "modify", Path: target, Cause: ErrNotFound, Detail: detail}
	}
	if content == nil {
		return &OperationError{Op: "modify", Path: target, Cause: ErrMissingContent,
			Detail: "modify needs replacement content"}
	}

	a.Put(archive.NewFile(target, []byte(*content)))
	j.record("modify", target)
	return nil
}

// remove deletes target and, for a directory, every entry nested beneath it.
// Each removed entry is journaled separately.
func remove(a *archive.Archive, j *journal, target string) error {
	if !a.Exists(target) {
		return &OperationError{Op: "delete", Path: target, Cause: ErrNotFound}
	}
	if a.IsDir(target) {
		for _, child := range a.Children(target) {
			a.Remove(child)
			j.record("delete", child)
		}
	}
	if a.Remove(target) {
		j.record("delete", target)
	}
	return nil
}

// refactor is a delete followed by a create on the same clone. Without a
// destination the file is rewritten in place.
func refactor(a *archive.Archive, j *journal, target, dest string, content *string) error {
	e, ok := a.Get(target)
	if !ok || e.Kind != archive.KindFile {
		detail := ""
		if a.IsDir(target) {
			detail = "is a directory"
		}
		return &OperationError{Op: "refactor", Path: target, Cause: ErrNotFound, Detail: detail}
	}

	next := e.Content()
	if content != nil {
		next = []byte(*content)
	}
	if dest == "" || dest == target {
		// In place: the entry keeps its position in the archive.
		j.record("delete", target)
		a.Put(archive.NewFile(target, next))
		j.record("create", target)
		return nil
	}

	if err := remove(a, j, target); err != nil {
		return err
	}
	if err := create(a, j, dest, next); err != nil {
		return &OperationError{Op: "refactor", Path: dest, Cause: err}
	}
	return nil
}
