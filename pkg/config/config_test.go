package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	cfg := Load()
	require.Equal(t, Default().Model, cfg.Model)
	require.Equal(t, Default().RequestTimeout, cfg.RequestTimeout)
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	require.NoError(t, os.MkdirAll(ConfigDirName, 0755))
	file := filepath.Join(ConfigDirName, ConfigFileName)
	require.NoError(t, os.WriteFile(file, []byte(`{"model":"from-file","request_timeout_seconds":10}`), 0644))

	t.Setenv("SITESMITH_MODEL", "from-env")
	t.Setenv("SITESMITH_TIMEOUT_SECONDS", "")

	cfg := Load()
	require.Equal(t, "from-env", cfg.Model, "env should win over file")
	require.Equal(t, 10, cfg.RequestTimeout, "file should win over defaults")
}

func TestLoadMalformedFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	require.NoError(t, os.MkdirAll(ConfigDirName, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(ConfigDirName, ConfigFileName), []byte("{not json"), 0644))

	cfg := Load()
	require.Equal(t, Default().Model, cfg.Model)
}
