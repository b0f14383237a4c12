package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daybook/internal/constants"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "config.yaml"), "database: /var/lib/daybook.db\ntimezone: Europe/Berlin\nexport_dir: /tmp/out\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/daybook.db", cfg.Database)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "/tmp/out", cfg.ExportDir)
	assert.False(t, cfg.Debug)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "config.yaml"), "database: /from/file.db\n")
	t.Setenv(constants.EnvPrefix+"_DATABASE", "/from/env.db")
	t.Setenv(constants.EnvPrefix+"_DEBUG", "true")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.Database)
	assert.True(t, cfg.Debug)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "daybook.env")
	writeFile(t, envFile, "DAYBOOK_LOG_LEVEL=debug\n")
	t.Setenv("DAYBOOK_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("DAYBOOK_LOG_LEVEL"))

	cfg, err := Load(dir, envFile)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DAYBOOK_TIMEZONE", "Mars/Olympus")

	_, err := Load(dir)
	assert.ErrorContains(t, err, "invalid timezone")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{in: "~", want: home},
		{in: "~/.config/daybook/daybook.db", want: filepath.Join(home, ".config/daybook/daybook.db")},
		{in: "/abs/path.db", want: "/abs/path.db"},
		{in: "~other/file", want: "~other/file"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabasePath(t *testing.T) {
	pg := Config{Database: "postgres://journal@localhost/daybook"}
	got, err := pg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, pg.Database, got)

	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("/tmp/daybook.db"))
}
