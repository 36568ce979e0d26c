package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLog(t *testing.T, dir string, cat Category) string {
	t.Helper()
	name := time.Now().Format("2006-01-02") + "_" + string(cat) + ".log"
	data, err := os.ReadFile(filepath.Join(dir, ".gce", "logs", name))
	require.NoError(t, err)
	return string(data)
}

func TestProductionModeWritesNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Settings{DebugMode: false}))
	t.Cleanup(CloseAll)

	Get(CategorySession).Info("should not appear")

	_, err := os.Stat(filepath.Join(dir, ".gce", "logs"))
	assert.True(t, os.IsNotExist(err), "logs dir must not be created in production mode")
}

func TestDebugModeWritesCategoryFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Settings{DebugMode: true, Level: "debug"}))
	t.Cleanup(CloseAll)

	Routing("navigate %s -> %s", "landing", "login")
	SessionDebug("loaded %d bytes", 42)
	CloseAll()

	assert.Contains(t, readLog(t, dir, CategoryRouting), "navigate landing -> login")
	assert.Contains(t, readLog(t, dir, CategorySession), "loaded 42 bytes")
}

func TestDisabledCategoryIsNoop(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Settings{
		DebugMode:  true,
		Categories: map[string]bool{"ui": false},
	}))
	t.Cleanup(CloseAll)

	assert.False(t, IsCategoryEnabled(CategoryUI))
	assert.True(t, IsCategoryEnabled(CategoryAuth))

	UI("hidden")
	CloseAll()
	name := time.Now().Format("2006-01-02") + "_ui.log"
	_, err := os.Stat(filepath.Join(dir, ".gce", "logs", name))
	assert.True(t, os.IsNotExist(err))
}

func TestLevelThresholdAndJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Settings{DebugMode: true, Level: "warn", JSONFormat: true}))
	t.Cleanup(CloseAll)

	Get(CategoryAuth).Info("quiet")
	Get(CategoryAuth).Warn("loud")
	CloseAll()

	out := readLog(t, dir, CategoryAuth)
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, `"msg":"loud"`)
	assert.True(t, strings.Contains(out, `"cat":"auth"`))
}

func TestTimerThreshold(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Settings{DebugMode: true, Level: "debug"}))
	t.Cleanup(CloseAll)

	StartTimer(CategoryStore, "fast open").StopWithThreshold(time.Hour)
	slow := StartTimer(CategoryStore, "slow open")
	time.Sleep(2 * time.Millisecond)
	slow.StopWithThreshold(time.Nanosecond)
	BootDebug("splash held for %s", "1.5s")
	Config("backend=%s", "sqlite")
	CloseAll()

	store := readLog(t, dir, CategoryStore)
	assert.Contains(t, store, "fast open completed in")
	assert.Contains(t, store, "slow open took")
	assert.Contains(t, readLog(t, dir, CategoryBoot), "splash held for 1.5s")
	assert.Contains(t, readLog(t, dir, CategoryConfig), "backend=sqlite")
}

func TestZeroLoggerIsSafe(t *testing.T) {
	var l Logger
	l.Info("x")
	l.With("k", "v").Error("y")
}

func TestInitializeRequiresWorkspace(t *testing.T) {
	assert.Error(t, Initialize("", Settings{}))
}
