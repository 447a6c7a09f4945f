package roster

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/meysamhadeli/teamboard/roster/contracts"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterPath = "/assets/JsonChallenge.json"

func newTestWatcher(t *testing.T) (*Watcher, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	watcher := newWatcher(rosterPath, Options{
		Fs:     fs,
		Logger: pterm.DefaultLogger.WithWriter(io.Discard),
	})
	return watcher, fs
}

func writeRoster(t *testing.T, fs afero.Fs, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, rosterPath, []byte(content), 0644))
}

func TestWatcher_ParsesOncePerContent(t *testing.T) {
	watcher, fs := newTestWatcher(t)
	writeRoster(t, fs, sampleRoster)

	first := watcher.CurrentTable()
	second := watcher.CurrentTable()

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), watcher.stats.Reparses)
	assert.Equal(t, int64(1), watcher.stats.CacheHits)
	assert.Equal(t, "Team Members", first.Title)
}

func TestWatcher_ReparsesOnChange(t *testing.T) {
	watcher, fs := newTestWatcher(t)
	writeRoster(t, fs, sampleRoster)
	watcher.CurrentTable()

	writeRoster(t, fs, `{"Title":"Crew","ColumnHeaders":["A"],"Data":[{"ID":"9","Name":"Zoe","Role":"Lead","Nickname":"z"},]}`)
	table := watcher.CurrentTable()

	assert.Equal(t, "Crew", table.Title)
	assert.Equal(t, []string{"A"}, table.ColumnHeaders)
	require.Len(t, table.Data, 1)
	assert.Equal(t, "Zoe", table.Data[0].Name)
	assert.Equal(t, int64(2), watcher.stats.Reparses)
}

func TestWatcher_MissingFileReturnsEmptyTable(t *testing.T) {
	watcher, _ := newTestWatcher(t)

	table := watcher.CurrentTable()

	require.NotNil(t, table)
	assert.Empty(t, table.Title)
	assert.Empty(t, table.Data)
	assert.Equal(t, int64(1), watcher.stats.Failures)
}

func TestWatcher_KeepsLastGoodTable(t *testing.T) {
	watcher, fs := newTestWatcher(t)
	writeRoster(t, fs, sampleRoster)
	good := watcher.CurrentTable()

	writeRoster(t, fs, `{"Title": `)
	assert.Same(t, good, watcher.CurrentTable())

	require.NoError(t, fs.Remove(rosterPath))
	assert.Same(t, good, watcher.CurrentTable())

	assert.Equal(t, int64(2), watcher.stats.Failures)
}

func TestWatcher_EmptyFileFallsBack(t *testing.T) {
	watcher, fs := newTestWatcher(t)
	writeRoster(t, fs, "")

	table := watcher.CurrentTable()
	assert.NotNil(t, table)
	assert.Equal(t, int64(0), watcher.stats.Reparses)

	// The digest is only stored after a successful parse, so the same
	// bytes are retried on the next call.
	watcher.CurrentTable()
	assert.Equal(t, int64(2), watcher.stats.Failures)
}

func TestWatcher_SkipsWhileBusy(t *testing.T) {
	watcher, fs := newTestWatcher(t)
	writeRoster(t, fs, sampleRoster)

	watcher.busy.Store(true)
	table := watcher.CurrentTable()
	watcher.busy.Store(false)

	assert.Empty(t, table.Title)
	assert.Equal(t, int64(1), watcher.stats.SkippedBusy)
	assert.Equal(t, int64(0), watcher.stats.TotalReads)

	assert.Equal(t, "Team Members", watcher.CurrentTable().Title)
}

func TestWatcher_Invalidate(t *testing.T) {
	watcher, fs := newTestWatcher(t)
	writeRoster(t, fs, sampleRoster)

	watcher.CurrentTable()
	watcher.Invalidate()
	watcher.CurrentTable()

	assert.Equal(t, int64(2), watcher.stats.Reparses)
	assert.Equal(t, int64(0), watcher.stats.CacheHits)
}

func TestWatcher_ConcurrentCalls(t *testing.T) {
	watcher, fs := newTestWatcher(t)
	writeRoster(t, fs, sampleRoster)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotNil(t, watcher.CurrentTable())
		}()
	}
	wg.Wait()

	stats := watcher.Stats()
	assert.Equal(t, int64(1), stats["reparses"])
	assert.Equal(t, int64(32), stats["total_reads"].(int64)+stats["skipped_busy"].(int64))
	assert.Equal(t, rosterPath, stats["path"])
}

func TestWatcher_ResetStats(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeRoster(t, fs, sampleRoster)

	var source contracts.ITableSource = NewWatcher(rosterPath, Options{
		Fs:     fs,
		Logger: pterm.DefaultLogger.WithWriter(io.Discard),
	})
	source.CurrentTable()
	require.Equal(t, int64(1), source.Stats()["total_reads"])

	source.ResetStats()

	assert.Equal(t, int64(0), source.Stats()["total_reads"])
	assert.Equal(t, "Team Members", source.CurrentTable().Title)
}

func TestWatcher_NullDocumentKeepsLastGoodTable(t *testing.T) {
	watcher, fs := newTestWatcher(t)
	writeRoster(t, fs, sampleRoster)
	good := watcher.CurrentTable()

	writeRoster(t, fs, "null")
	assert.Same(t, good, watcher.CurrentTable())
	assert.Equal(t, int64(1), watcher.stats.Failures)

	// The digest of the rejected document is never stored.
	writeRoster(t, fs, sampleRoster)
	assert.Same(t, good, watcher.CurrentTable())
	assert.Equal(t, int64(1), watcher.stats.CacheHits)
}

func TestWatcher_WarnsOncePerFailure(t *testing.T) {
	var logs bytes.Buffer
	fs := afero.NewMemMapFs()
	watcher := newWatcher(rosterPath, Options{
		Fs:     fs,
		Logger: pterm.DefaultLogger.WithLevel(pterm.LogLevelWarn).WithWriter(&logs),
	})
	warnings := func() int {
		return strings.Count(logs.String(), "There was a problem reading the roster file")
	}

	writeRoster(t, fs, `{"Title": `)
	watcher.CurrentTable()
	watcher.CurrentTable()
	watcher.CurrentTable()
	assert.Equal(t, 1, warnings())
	assert.Equal(t, int64(3), watcher.stats.Failures)

	writeRoster(t, fs, `{"Title": [`)
	watcher.CurrentTable()
	watcher.CurrentTable()
	assert.Equal(t, 2, warnings())

	require.NoError(t, fs.Remove(rosterPath))
	watcher.CurrentTable()
	watcher.CurrentTable()
	assert.Equal(t, 3, warnings())

	writeRoster(t, fs, sampleRoster)
	watcher.CurrentTable()
	writeRoster(t, fs, `{"Title": `)
	watcher.CurrentTable()
	assert.Equal(t, 4, warnings())
}
