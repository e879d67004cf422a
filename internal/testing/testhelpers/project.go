// Package testhelpers provides shared fixtures for tests that need a project archive
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/armorclaw/internal/archive"
	"github.com/stretchr/testify/require"
)

// ProjectBuilder assembles an in-memory project archive
type ProjectBuilder struct {
	archive *archive.Archive
}

// NewProject creates an empty project
func NewProject() *ProjectBuilder {
	return &ProjectBuilder{archive: archive.New()}
}

// DefaultProject is the small TypeScript project most pipeline tests start from
func DefaultProject() *ProjectBuilder {
	return NewProject().
		WithFile(".env", "SECRET=1\n").
		WithFile("package.json", "{}\n").
		WithFile("src/index.ts", "export const a = 1\n").
		WithFile("src/utils/format.ts", "export {}\n").
		WithFile("src/utils/parse.ts", "export {}\n")
}

// WithFile adds a file entry
func (b *ProjectBuilder) WithFile(path, content string) *ProjectBuilder {
	b.archive.Put(archive.NewFile(path, []byte(content)))
	return b
}

// WithDir adds an explicit directory entry
func (b *ProjectBuilder) WithDir(path string) *ProjectBuilder {
	b.archive.Put(archive.NewDir(path))
	return b
}

// Archive returns the project
func (b *ProjectBuilder) Archive() *archive.Archive {
	return b.archive
}

// Zip serialises the project
func (b *ProjectBuilder) Zip(t *testing.T) []byte {
	t.Helper()
	data, err := b.archive.Serialize()
	require.NoError(t, err)
	return data
}

// WriteZip serialises the project into dir and returns the file path
func (b *ProjectBuilder) WriteZip(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, b.Zip(t), 0o644))
	return path
}
