package archive

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{
			name:     "plain relative path",
			input:    "src/main.ts",
			expected: "src/main.ts",
		},
		{
			name:     "leading dot slash",
			input:    "./src/main.ts",
			expected: "src/main.ts",
		},
		{
			name:     "duplicate separators and trailing slash",
			input:    "src//utils/",
			expected: "src/utils",
		},
		{
			name:     "backslash separators",
			input:    `src\utils\helper.ts`,
			expected: "src/utils/helper.ts",
		},
		{
			name:     "dotfile",
			input:    ".env",
			expected: ".env",
		},
		{
			name:  "escape attempt via parent dots",
			input: "../../../etc/passwd",
			err:   ErrPathTraversal,
		},
		{
			name:  "parent dots that cancel out are still rejected",
			input: "src/../src/main.ts",
			err:   ErrPathTraversal,
		},
		{
			name:  "absolute path",
			input: "/etc/passwd",
			err:   ErrPathTraversal,
		},
		{
			name:  "windows volume",
			input: `C:\Windows\system32`,
			err:   ErrPathTraversal,
		},
		{
			name:  "empty",
			input: "  ",
			err:   ErrPathTraversal,
		},
		{
			name:  "archive root",
			input: "./",
			err:   ErrPathTraversal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestResolve_ErrorCarriesPath(t *testing.T) {
	_, err := Resolve("../x")
	var pte *PathTraversalError
	if !errors.As(err, &pte) {
		t.Fatalf("expected *PathTraversalError, got %T", err)
	}
	if pte.Path != "../x" {
		t.Errorf("expected path %q, got %q", "../x", pte.Path)
	}
}
