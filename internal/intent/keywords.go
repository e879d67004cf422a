package intent

import (
	"regexp"
	"strings"
)

// verbTable maps action keywords to actions. Extending the vocabulary means
// adding entries here.
var verbTable = map[string]Action{
	"delete":   ActionDelete,
	"remove":   ActionDelete,
	"create":   ActionCreate,
	"add":      ActionCreate,
	"refactor": ActionRefactor,
	"rename":   ActionRefactor,
	"modify":   ActionModify,
	"update":   ActionModify,
	"edit":     ActionModify,
}

// verbOrder lists verbTable keys in the order used for messages.
var verbOrder = []string{"delete", "remove", "create", "add", "refactor", "rename", "modify", "update", "edit"}

// contentMarker finds the first literal content marker. Longer alternatives
// come first so "with contents" is not cut short at "with content".
var contentMarker = regexp.MustCompile(`(?i)\b(with contents|with content|with text|containing)\b`)

// destinationMarkers introduce the new path of a rename.
var destinationMarkers = map[string]bool{
	"to":   true,
	"into": true,
	"as":   true,
}

// knownExtensions make a token path-like even without a separator.
var knownExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".json": true, ".md": true, ".css": true, ".scss": true, ".html": true, ".vue": true,
	".go": true, ".py": true, ".rb": true, ".rs": true, ".java": true, ".kt": true,
	".c": true, ".h": true, ".cpp": true, ".sql": true, ".sh": true, ".txt": true,
	".yaml": true, ".yml": true, ".toml": true, ".xml": true, ".ini": true, ".cfg": true,
	".conf": true, ".env": true, ".lock": true, ".svg": true, ".png": true,
}

func keywordList() string {
	return strings.Join(verbOrder, ", ")
}
