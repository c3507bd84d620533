package artifacts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestJanitor_Sweep(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	old := now.Add(-48 * time.Hour)

	touch(t, filepath.Join(dir, "NetworkHealth_1.png"), old)
	touch(t, filepath.Join(dir, "inventory_1.csv"), old)
	touch(t, filepath.Join(dir, "inventory_2.csv"), now)
	touch(t, filepath.Join(dir, "notes.txt"), old)

	janitor := NewJanitor(dir, 24*time.Hour)
	janitor.now = func() time.Time { return now }

	removed, err := janitor.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.NoFileExists(t, filepath.Join(dir, "NetworkHealth_1.png"))
	assert.NoFileExists(t, filepath.Join(dir, "inventory_1.csv"))
	assert.FileExists(t, filepath.Join(dir, "inventory_2.csv"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestJanitor_Sweep_MissingDir(t *testing.T) {
	janitor := NewJanitor(filepath.Join(t.TempDir(), "nope"), time.Hour)

	removed, err := janitor.Sweep()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestJanitor_Start_InvalidSchedule(t *testing.T) {
	janitor := NewJanitor(t.TempDir(), time.Hour)

	err := janitor.Start("every now and then", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid artifact cleanup schedule")
}

func TestJanitor_Start_RunsWrappedTask(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "inventory_1.csv"), time.Now().Add(-time.Hour))

	janitor := NewJanitor(dir, time.Minute)
	ran := make(chan string, 1)
	wrap := func(taskName string, task func() error) func() error {
		return func() error {
			err := task()
			select {
			case ran <- taskName:
			default:
			}
			return err
		}
	}

	require.NoError(t, janitor.Start("@every 1s", wrap))
	defer janitor.Stop()

	select {
	case name := <-ran:
		assert.Equal(t, "artifact cleanup", name)
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup task did not run")
	}
	assert.NoFileExists(t, filepath.Join(dir, "inventory_1.csv"))

	require.Error(t, janitor.Start("@every 1s", nil))
}

func TestJanitor_StopWithoutStart(t *testing.T) {
	ctx := NewJanitor(t.TempDir(), time.Hour).Stop()
	select {
	case <-ctx.Done():
	default:
		t.Fatal("expected done context")
	}
}
