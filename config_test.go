package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_Missing(t *testing.T) {
	config := loadConfigFrom(filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, defaultConfig(), config)
}

func TestLoadConfigFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".geartrainrc")
	rc := `# geartrain settings
save_directory = ` + filepath.Join(dir, "out") + `
Theme = Neon
frame_ms = 33
step = -3.5
max_gears = 5
log_file = ` + filepath.Join(dir, "geartrain.log") + `
confirm = false
frame_ms = nonsense
not a setting
`
	require.NoError(t, os.WriteFile(path, []byte(rc), 0644))

	config := loadConfigFrom(path)
	assert.Equal(t, filepath.Join(dir, "out"), config.SaveDirectory)
	assert.Equal(t, "neon", config.Theme)
	assert.Equal(t, 33, config.FrameMS)
	assert.Equal(t, -3.5, config.StepDegrees)
	assert.Equal(t, 5, config.MaxGears)
	assert.Equal(t, filepath.Join(dir, "geartrain.log"), config.LogFile)
	assert.False(t, config.Confirmations)
}

func TestGetSavePath(t *testing.T) {
	config := defaultConfig()
	path, err := config.GetSavePath("a.png")
	require.NoError(t, err)
	assert.Equal(t, "a.png", path)

	config.SaveDirectory = filepath.Join(t.TempDir(), "exports")
	path, err = config.GetSavePath("a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(config.SaveDirectory, "a.png"), path)
	assert.DirExists(t, config.SaveDirectory)
}

func TestGetSavePath_DirectoryBlocked(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	config := defaultConfig()
	config.SaveDirectory = filepath.Join(blocker, "exports")
	_, err := config.GetSavePath("a.png")
	assert.ErrorContains(t, err, "create save directory")
}

func TestNewModel_ConfigAndScenario(t *testing.T) {
	config := defaultConfig()
	config.Theme = "mono"
	config.MaxGears = 2
	config.FrameMS = 40
	m := newModel(nil, config, nil)
	assert.Equal(t, "mono", m.theme.Name)
	assert.Equal(t, 2, m.workspace.Options().MaxGears)
	assert.Equal(t, int64(40), m.frameInterval.Milliseconds())

	m = newTestModel(t, "theme: neon\nmax_gears: 4\ndisplay: {teeth: false}\n")
	assert.Equal(t, "neon", m.theme.Name)
	assert.Equal(t, 4, m.workspace.Options().MaxGears)
	assert.False(t, m.showTeeth)
	assert.True(t, m.showRatio)
}
