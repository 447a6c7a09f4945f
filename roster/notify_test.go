package roster

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
)

func TestNotify_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "JsonChallenge.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleRoster), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := Notify(ctx, path, pterm.DefaultLogger.WithWriter(io.Discard))
	require.NoError(t, err)

	// Other files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(path, []byte(`{"Title":"changed"}`), 0644))

	select {
	case _, ok := <-changes:
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-changes:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestNotify_MissingDirectory(t *testing.T) {
	_, err := Notify(context.Background(), filepath.Join(t.TempDir(), "missing", "roster.json"), nil)
	require.Error(t, err)
}
