package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleListing = []string{
	".env",
	"package.json",
	"src/index.ts",
	"src/utils/format.ts",
	"docs/guide.md",
	"src",
	"src/utils",
	"docs",
}

func TestParse_VerbTable(t *testing.T) {
	tests := []struct {
		instruction string
		action      Action
		command     string
	}{
		{"Delete src/index.ts", ActionDelete, "delete"},
		{"remove src/index.ts", ActionDelete, "remove"},
		{"Create src/new.ts", ActionCreate, "create"},
		{"add src/new.ts", ActionCreate, "add"},
		{"Refactor src/index.ts", ActionRefactor, "refactor"},
		{"rename src/index.ts to src/main.ts", ActionRefactor, "rename"},
		{"Modify src/index.ts", ActionModify, "modify"},
		{"UPDATE src/index.ts", ActionModify, "update"},
		{"please edit src/index.ts", ActionModify, "edit"},
	}

	for _, tt := range tests {
		t.Run(tt.instruction, func(t *testing.T) {
			got := Parse(tt.instruction, sampleListing)
			assert.Equal(t, tt.action, got.Action)
			assert.Equal(t, tt.command, got.Command)
			assert.NotEmpty(t, got.Reasoning)
		})
	}
}

func TestParse_FirstVerbWins(t *testing.T) {
	got := Parse("Update the docs and then delete src/index.ts", sampleListing)

	assert.Equal(t, ActionModify, got.Action)
	assert.Equal(t, "update", got.Command)
	// "docs" is an existing directory and comes before the file token.
	assert.Equal(t, "docs", got.TargetPath)
}

func TestParse_DeleteEnvFile(t *testing.T) {
	got := Parse("Delete the .env file", sampleListing)

	assert.Equal(t, ActionDelete, got.Action)
	assert.Equal(t, ".env", got.TargetPath)
	assert.Nil(t, got.Content)
	assert.Contains(t, got.Reasoning, "existing archive entry")
}

func TestParse_DotfileWithoutArchiveMatch(t *testing.T) {
	got := Parse("Delete the .env file", nil)

	assert.Equal(t, ActionDelete, got.Action)
	assert.Equal(t, ".env", got.TargetPath)
	assert.Contains(t, got.Reasoning, "path-like")
}

func TestParse_CreateNewPath(t *testing.T) {
	got := Parse("Create src/utils/helper.ts", sampleListing)

	assert.Equal(t, ActionCreate, got.Action)
	assert.Equal(t, "src/utils/helper.ts", got.TargetPath)
	assert.Contains(t, got.Reasoning, "not present in the archive")
	assert.Contains(t, got.Reasoning, "no literal content")
}

func TestParse_NoVerb(t *testing.T) {
	got := Parse("banana", sampleListing)

	assert.Equal(t, ActionUnknown, got.Action)
	assert.Empty(t, got.TargetPath)
	assert.Empty(t, got.Command)
	assert.Contains(t, got.Reasoning, "no action keyword")
}

func TestParse_VerbWithoutTarget(t *testing.T) {
	got := Parse("delete everything now", sampleListing)

	assert.Equal(t, ActionUnknown, got.Action)
	assert.Equal(t, "delete", got.Command)
	assert.Contains(t, got.Reasoning, "no path-like target")
}

func TestParse_ExistingEntryPreferredOverPathLike(t *testing.T) {
	got := Parse("modify src/other.ts based on src/index.ts", sampleListing)

	assert.Equal(t, "src/index.ts", got.TargetPath)
}

func TestParse_KnownExtensionWithoutSeparator(t *testing.T) {
	got := Parse("add helper.tsx, please", nil)

	assert.Equal(t, ActionCreate, got.Action)
	assert.Equal(t, "helper.tsx", got.TargetPath)
	assert.Contains(t, got.Reasoning, "known extension .tsx")
}

func TestParse_QuotedPathWithSpaces(t *testing.T) {
	listing := []string{"docs/My Notes.md"}

	got := Parse(`Edit "docs/My Notes.md" with content "# Title"`, listing)

	assert.Equal(t, ActionModify, got.Action)
	assert.Equal(t, "docs/My Notes.md", got.TargetPath)
	require.NotNil(t, got.Content)
	assert.Equal(t, "# Title", *got.Content)
}

func TestParse_ContentMarkers(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		content     string
	}{
		{"containing", "Create src/a.ts containing export const a = 1", "export const a = 1"},
		{"with content", "Create src/a.ts with content: 'hello'", "hello"},
		{"with contents keeps full marker", "Create src/a.ts with contents x", "x"},
		{"with text", "update docs/guide.md With Text Hello World", "Hello World"},
		{"empty content", "Create src/a.ts containing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.instruction, sampleListing)
			require.NotNil(t, got.Content)
			assert.Equal(t, tt.content, *got.Content)
			assert.Contains(t, got.Reasoning, "literal content")
		})
	}
}

func TestParse_ContentIsNotSearchedForTargets(t *testing.T) {
	got := Parse("Create src/a.ts containing import x from 'src/index.ts'", sampleListing)

	assert.Equal(t, "src/a.ts", got.TargetPath)
}

func TestParse_RenameDestination(t *testing.T) {
	got := Parse("Rename src/index.ts to src/main.ts.", sampleListing)

	assert.Equal(t, ActionRefactor, got.Action)
	assert.Equal(t, "src/index.ts", got.TargetPath)
	assert.Equal(t, "src/main.ts", got.Destination)
	assert.Equal(t, []string{"src/index.ts", "src/main.ts"}, got.Paths())
}

func TestParse_DestinationOnlyForRefactor(t *testing.T) {
	got := Parse("Modify src/index.ts to src/main.ts", sampleListing)

	assert.Empty(t, got.Destination)
}

func TestParse_TraversalTokenIsKeptRaw(t *testing.T) {
	got := Parse("delete ../../etc/passwd", sampleListing)

	assert.Equal(t, ActionDelete, got.Action)
	assert.Equal(t, "../../etc/passwd", got.TargetPath)
}

func TestParse_Deterministic(t *testing.T) {
	inputs := []string{
		"Delete the .env file",
		"Create src/utils/helper.ts containing x",
		"banana",
		"rename src/index.ts as src/app.ts",
	}
	for _, in := range inputs {
		first := Parse(in, sampleListing)
		second := NewParser().Parse(in, sampleListing)
		assert.Equal(t, first, second, in)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize(`delete "a b.ts" 'c' x`)
	assert.Equal(t, []token{
		{text: "delete"},
		{text: "a b.ts", quoted: true},
		{text: "c", quoted: true},
		{text: "x"},
	}, got)

	got = tokenize(`edit "unterminated path.ts`)
	assert.Equal(t, token{text: "unterminated path.ts", quoted: true}, got[1])
}

func TestPathLike(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"src/a", true},
		{"a.ts", true},
		{".gitignore", true},
		{"README", false},
		{"file", false},
		{"..", false},
		{"v1.2", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			_, ok := pathLike(tt.word)
			assert.Equal(t, tt.want, ok)
		})
	}
}
