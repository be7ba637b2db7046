package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	dir, err := DefaultDir()
	require.NoError(t, err)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.BoardFile)
	assert.Equal(t, "uuid", cfg.TaskIDs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
	assert.Equal(t, filepath.Join(dir, "taskboard.log"), cfg.Log.File)
	assert.Equal(t, "kanban", cfg.UI.View)
	assert.True(t, cfg.UI.ShowDetails)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `board_file: /tmp/board.yaml
task_ids: sequential
log:
  level: debug
ui:
  view: list
  show_details: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/board.yaml", cfg.BoardFile)
	assert.Equal(t, "sequential", cfg.TaskIDs)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "list", cfg.UI.View)
	assert.False(t, cfg.UI.ShowDetails)

	t.Setenv("TASKBOARD_UI_VIEW", "kanban")
	t.Setenv("TASKBOARD_LOG_LEVEL", "warn")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kanban", cfg.UI.View)
	assert.Equal(t, log.WarnLevel, cfg.LogLevel())
}

func TestLoadReadsDefaultLocation(t *testing.T) {
	isolate(t)
	appDir, err := DefaultDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte("ui:\n  view: list\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "list", cfg.UI.View)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	tests := map[string]string{
		"bad level": "log:\n  level: loud\n",
		"bad view":  "ui:\n  view: gantt\n",
		"bad ids":   "task_ids: snowflake\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
