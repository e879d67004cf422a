package policy

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/Cyclone1070/armorclaw/internal/archive"
	"github.com/Cyclone1070/armorclaw/internal/intent"
)

// DirectoryChecker answers whether a path names a directory in the archive.
type DirectoryChecker interface {
	IsDir(path string) bool
}

// rootFolder is the top-level folder of a path that has no directory part.
const rootFolder = "."

// Engine evaluates intents against a policy. It holds no state; the zero
// value is ready to use.
type Engine struct{}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate is the method form of Evaluate.
func (e *Engine) Evaluate(in intent.Intent, p Policy, a DirectoryChecker) Decision {
	return Evaluate(in, p, a)
}

// Evaluate checks an intent against a policy. Rules run in a fixed order and
// the first violation wins:
//
//  1. unknown intent
//  2. restricted command
//  3. restricted file
//  4. file type
//  5. folder
//  6. change count
//
// Rules 3 to 5 apply to the target and then to the rename destination.
func Evaluate(in intent.Intent, p Policy, a DirectoryChecker) Decision {
	var trace []string

	if in.Action == intent.ActionUnknown {
		return deny(RuleUnknownIntent, "no safe intent determined", 0, trace)
	}

	commands := lowerSet(p.RestrictedCommands)
	for _, cmd := range []string{string(in.Action), in.Command} {
		if cmd != "" && commands[strings.ToLower(cmd)] {
			return deny(RuleCommand, fmt.Sprintf("command %q is restricted by policy", strings.ToLower(cmd)), 0, trace)
		}
	}
	trace = append(trace, fmt.Sprintf("command %q is permitted", in.Action))

	paths := in.Paths()

	restricted := set(p.RestrictedFiles)
	for _, target := range paths {
		for _, seg := range archive.Segments(target) {
			if restricted[seg] {
				return deny(RuleRestrictedFile,
					fmt.Sprintf("access to restricted file %q is denied (%s)", seg, target), 0, trace)
			}
		}
	}
	trace = append(trace, "no restricted files involved")

	types := extensionSet(p.AllowedFileTypes)
	for _, target := range paths {
		ext := strings.ToLower(path.Ext(path.Base(target)))
		if a.IsDir(target) || (ext == "" && in.Action == intent.ActionRefactor) {
			trace = append(trace, fmt.Sprintf("%s is exempt from the file type check", target))
			continue
		}
		if !types[ext] {
			shown := ext
			if shown == "" {
				shown = "(none)"
			}
			return deny(RuleFileType,
				fmt.Sprintf("file type %q of %s is not allowed (allowed: %s)", shown, target, list(types)), 0, trace)
		}
	}
	trace = append(trace, "file types are allowed")

	folders := folderSet(p.AllowedFolders)
	for _, target := range paths {
		top := topFolder(target, a)
		if !folders[top] {
			return deny(RuleFolder,
				fmt.Sprintf("folder %q of %s is not allowed (allowed: %s)", top, target, list(folders)), 0, trace)
		}
	}
	trace = append(trace, "folders are allowed")

	touches := TouchCount(in.Action)
	if touches > p.MaxFileChanges {
		return deny(RuleMaxChanges,
			fmt.Sprintf("change would touch %d entries, exceeding the limit of %d", touches, p.MaxFileChanges), touches, trace)
	}
	trace = append(trace, fmt.Sprintf("%d of %d permitted changes", touches, p.MaxFileChanges))

	return Decision{Allowed: true, Rule: RuleNone, Touches: touches, Trace: trace}
}

// TouchCount is the number of entries an action is expected to touch. A
// refactor counts as a delete plus a create.
func TouchCount(action intent.Action) int {
	switch action {
	case intent.ActionCreate, intent.ActionModify, intent.ActionDelete:
		return 1
	case intent.ActionRefactor:
		return 2
	}
	return 0
}

func deny(rule Rule, reason string, touches int, trace []string) Decision {
	return Decision{Allowed: false, Rule: rule, Reason: reason, Touches: touches, Trace: trace}
}

// topFolder is the first path segment. Files at the archive root belong to
// rootFolder; a root-level directory is its own top folder.
func topFolder(p string, a DirectoryChecker) string {
	segs := archive.Segments(p)
	if len(segs) > 1 || (len(segs) == 1 && a.IsDir(p)) {
		return segs[0]
	}
	return rootFolder
}

func set(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

func lowerSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[strings.ToLower(strings.TrimSpace(it))] = true
	}
	return m
}

// extensionSet lowercases extensions and adds a missing leading dot.
func extensionSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		ext := strings.ToLower(strings.TrimSpace(it))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		m[ext] = true
	}
	return m
}

// folderSet normalises folder names; "/" and "." both name the archive root.
func folderSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		f := strings.TrimSpace(it)
		if f == "/" || f == "." || f == "./" {
			m[rootFolder] = true
			continue
		}
		f = strings.Trim(strings.TrimPrefix(f, "./"), "/")
		if f != "" {
			m[f] = true
		}
	}
	return m
}

func list(m map[string]bool) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
