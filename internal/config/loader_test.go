package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
	Env         map[string]string
}

func (m *MockFileSystem) Getenv(key string) string {
	return m.Env[key]
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const configPath = "/home/user/.config/armorclaw/config.json"

func loaderWith(configJSON string) *Loader {
	return NewLoaderWithFS(&MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{configPath: []byte(configJSON)},
	})
}

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, int64(50*1024*1024), cfg.Engine.MaxArchiveBytes)
	assert.Equal(t, 30000, cfg.Engine.TimeoutMs)
	assert.Equal(t, []string{"src"}, cfg.Policy.AllowedFolders)
	assert.Equal(t, []string{".env"}, cfg.Policy.RestrictedFiles)
	assert.Equal(t, []string{".ts", ".tsx"}, cfg.Policy.AllowedFileTypes)
	assert.Equal(t, 5, cfg.Policy.MaxFileChanges)
	assert.Equal(t, []string{"delete"}, cfg.Policy.RestrictedCommands)
}

func TestLoad_FullOverride_AllValuesReplaced(t *testing.T) {
	configJSON := `{
		"engine": {"max_archive_bytes": 1024, "max_entries": 10, "max_entry_bytes": 512, "timeout_ms": 500},
		"policy": {
			"allowed_folders": ["src", "tests"],
			"restricted_files": ["package.json"],
			"allowed_file_types": [".go"],
			"max_file_changes": 2,
			"restricted_commands": ["refactor"]
		},
		"ui": {"tick_interval_ms": 200, "color_primary": "99"}
	}`

	cfg, err := loaderWith(configJSON).Load()

	require.NoError(t, err)
	assert.Equal(t, int64(1024), cfg.Engine.MaxArchiveBytes)
	assert.Equal(t, 10, cfg.Engine.MaxEntries)
	assert.Equal(t, int64(512), cfg.Engine.MaxEntryBytes)
	assert.Equal(t, 500, cfg.Engine.TimeoutMs)
	assert.Equal(t, []string{"src", "tests"}, cfg.Policy.AllowedFolders)
	assert.Equal(t, 2, cfg.Policy.MaxFileChanges)
	assert.Equal(t, []string{"refactor"}, cfg.Policy.RestrictedCommands)
	assert.Equal(t, 200, cfg.UI.TickIntervalMs)
	assert.Equal(t, "99", cfg.UI.ColorPrimary)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	cfg, err := loaderWith(`{"engine": {"timeout_ms": 1000}}`).Load()

	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Engine.TimeoutMs)
	assert.Equal(t, 10000, cfg.Engine.MaxEntries)
	assert.Equal(t, []string{"src"}, cfg.Policy.AllowedFolders)
	assert.Equal(t, "42", cfg.UI.ColorSuccess)
}

func TestLoad_EmptyConfigFile_ReturnsDefaults(t *testing.T) {
	cfg, err := loaderWith(`{}`).Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_EmptyPolicyArray_ReplacesDefault(t *testing.T) {
	// An explicit empty list means nothing is allowed.
	cfg, err := loaderWith(`{"policy": {"allowed_folders": []}}`).Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.Policy.AllowedFolders)
	assert.Equal(t, []string{".ts", ".tsx"}, cfg.Policy.AllowedFileTypes)
}

func TestLoad_ExplicitZeroMaxChanges_Overrides(t *testing.T) {
	cfg, err := loaderWith(`{"policy": {"max_file_changes": 0}}`).Load()

	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Policy.MaxFileChanges)
}

// --- UNHAPPY PATH TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	cfg, err := loaderWith(`{invalid json`).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDirErr: errors.New("homeless"),
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, 30000, cfg.Engine.TimeoutMs)
}

func TestLoad_WrongJSONType_ReturnsError(t *testing.T) {
	cfg, err := loaderWith(`["not", "an", "object"]`).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidValues_FailValidation(t *testing.T) {
	cfg, err := loaderWith(`{"engine": {"timeout_ms": 0}, "policy": {"max_file_changes": -1}}`).Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_ms")
	assert.Contains(t, err.Error(), "maxFileChanges")
}

// --- PATH RESOLUTION TESTS ---

func TestLoad_EnvPath_OverridesDefaultLocation(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Env:     map[string]string{PathEnv: "/etc/armorclaw.json"},
		Files: map[string][]byte{
			configPath:            []byte(`{"engine": {"timeout_ms": 1}}`),
			"/etc/armorclaw.json": []byte(`{"engine": {"timeout_ms": 2}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Engine.TimeoutMs)
}

func TestLoad_EnvPath_MissingFileIsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Env:     map[string]string{PathEnv: "/etc/missing.json"},
		Files:   map[string][]byte{},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "/etc/missing.json")
}

func TestLoader_Path(t *testing.T) {
	path, explicit := NewLoaderWithFS(&MockFileSystem{HomeDir: "/home/user"}).Path()
	assert.Equal(t, configPath, path)
	assert.False(t, explicit)

	path, explicit = NewLoaderWithFS(&MockFileSystem{HomeDirErr: errors.New("homeless")}).Path()
	assert.Empty(t, path)
	assert.False(t, explicit)

	path, explicit = NewLoaderWithFS(&MockFileSystem{Env: map[string]string{PathEnv: "/tmp/c.json"}}).Path()
	assert.Equal(t, "/tmp/c.json", path)
	assert.True(t, explicit)
}

func TestLoad_ErrorsNameTheFile(t *testing.T) {
	_, err := loaderWith(`{invalid json`).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), configPath)

	_, err = loaderWith(`{"engine": {"timeout_ms": 0}}`).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), configPath)
}
