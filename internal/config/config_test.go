package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir and the working directory at empty
// temp dirs and clears NOTES_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"NOTES_CONFIG", "NOTES_THEME", "NOTES_STRICT_EDIT",
		"NOTES_NOTICE_DURATION", "NOTES_LOG_LEVEL", "NOTES_LOG_FORMAT", "NOTES_LOG_FILE"} {
		t.Setenv(k, "")
	}
	wd := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(wd))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return wd
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "classic", cfg.Theme)
	assert.False(t, cfg.StrictEdit)
	assert.Equal(t, 3*time.Second, cfg.Notice())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Log.File)
}

func TestLoad_Layering(t *testing.T) {
	wd := isolate(t)
	home := os.Getenv("XDG_CONFIG_HOME")

	writeFile(t, filepath.Join(home, "notes", "config.toml"), `
theme = "neon"
notice_duration = "5s"
[log]
level = "debug"
`)
	writeFile(t, filepath.Join(wd, "notes.toml"), `
strict_edit = true
[log]
format = "json"
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.True(t, cfg.StrictEdit)
	assert.Equal(t, 5*time.Second, cfg.Notice())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	explicit := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, explicit, `theme = "mono"`)
	t.Setenv("NOTES_LOG_LEVEL", "error")

	cfg, err = Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.True(t, cfg.StrictEdit)
}

func TestLoad_EnvConfigPath(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "env.toml")
	writeFile(t, p, `notice_duration = "250ms"`)
	t.Setenv("NOTES_CONFIG", p)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Notice())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("NOTES_THEME", "NEON")
	t.Setenv("NOTES_STRICT_EDIT", "true")
	t.Setenv("NOTES_LOG_FILE", "/tmp/notes.log")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.True(t, cfg.StrictEdit)
	assert.Equal(t, "/tmp/notes.log", cfg.Log.File)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "bad theme", file: `theme = "pink"`},
		{name: "bad duration", file: `notice_duration = "soon"`},
		{name: "negative duration", file: `notice_duration = "-1s"`},
		{name: "bad level", file: "[log]\nlevel = \"loud\""},
		{name: "bad format", file: "[log]\nformat = \"xml\""},
		{name: "unknown key", file: `colour = "red"`},
		{name: "malformed", file: `theme = `},
		{name: "bad env bool", env: map[string]string{"NOTES_STRICT_EDIT": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = filepath.Join(t.TempDir(), "c.toml")
				writeFile(t, path, tt.file)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
