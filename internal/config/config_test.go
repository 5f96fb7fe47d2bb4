package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestGetConfigPath_ReturnsLocalConfig_When_FileExists(t *testing.T) {
	tempDir := t.TempDir()
	chdir(t, tempDir)

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ConfigFileName), []byte("jobs: build\n"), 0o600))
	assert.Equal(t, ConfigFileName, getConfigPath())
}

func TestGetConfigPath_UsesXDGPath_When_LocalMissing(t *testing.T) {
	tempDir := t.TempDir()
	chdir(t, tempDir)

	xdgRoot := filepath.Join(tempDir, "xdg")
	require.NoError(t, os.MkdirAll(filepath.Join(xdgRoot, "waitfor"), 0o755))
	configPath := filepath.Join(xdgRoot, "waitfor", ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("jobs: build\n"), 0o600))

	t.Setenv("XDG_CONFIG_HOME", xdgRoot)
	t.Setenv("HOME", filepath.Join(tempDir, "home"))

	assert.Equal(t, configPath, getConfigPath())
}

func TestGetConfigPath_ReturnsEmpty_When_NoConfigAvailable(t *testing.T) {
	tempDir := t.TempDir()
	chdir(t, tempDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tempDir, "home"))

	assert.Empty(t, getConfigPath())
}

func TestLoadFile_FlattensValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := "" +
		"jobs:\n" +
		"  - build\n" +
		"  - test (linux)\n" +
		"ttl: 10\n" +
		"prefix: true\n" +
		"outputs-from: a.json, b.json\n" +
		"artifact-dir:\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	values, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"jobs":         "build\ntest (linux)",
		"ttl":          "10",
		"prefix":       "true",
		"outputs-from": "a.json, b.json",
	}, values)
}

func TestLoadFile_ReturnsEmpty_When_PathMissing(t *testing.T) {
	t.Parallel()

	values, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, values)

	values, err = LoadFile("")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestLoadFile_ReturnsError_When_YAMLInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("jobs: [build\n"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_ReadsDotEnvAndFile(t *testing.T) {
	tempDir := t.TempDir()
	chdir(t, tempDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
	t.Setenv("WAITFOR_GH_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("INPUT_GH-TOKEN", "")
	t.Setenv("INPUT_JOBS", "")
	t.Setenv("WAITFOR_JOBS", "")

	require.NoError(t, os.WriteFile(".env", []byte("WAITFOR_TTL=9\n"), 0o600))
	require.NoError(t, os.WriteFile(ConfigFileName, []byte("jobs: build\nttl: 3\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("WAITFOR_TTL") })

	cfg, err := Load(map[string]string{KeyToken: "secret"})
	require.NoError(t, err)
	assert.Equal(t, []string{"build"}, cfg.Jobs)
	assert.Equal(t, 9, cfg.TTL, ".env beats file")
	assert.Equal(t, SourceFile, cfg.Sources[KeyJobs])
}
