package roster

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/meysamhadeli/teamboard/roster/contracts"
	"github.com/meysamhadeli/teamboard/roster/models"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
)

// Options configures a Watcher. Zero values fall back to the OS filesystem,
// xxh3 digests and the default pterm logger.
type Options struct {
	Fs       afero.Fs
	Digester Digester
	Logger   *pterm.Logger
}

// Watcher re-parses the roster file only when its content digest changes.
type Watcher struct {
	path     string
	fs       afero.Fs
	digester Digester
	logger   *pterm.Logger
	stats    *WatchStats

	// busy is the single-flight guard around the read-and-parse step.
	busy atomic.Bool

	mutex      sync.Mutex
	lastDigest Digest
	hasDigest  bool

	// lastFailure identifies the failure last reported at warn level.
	lastFailure string

	table atomic.Pointer[models.Table]
}

// NewWatcher creates a watcher for the roster file at path.
func NewWatcher(path string, options Options) contracts.ITableSource {
	return newWatcher(path, options)
}

func newWatcher(path string, options Options) *Watcher {
	fs := options.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	digester := options.Digester
	if digester == nil {
		digester = XXH3Digest
	}

	logger := options.Logger
	if logger == nil {
		logger = &pterm.DefaultLogger
	}

	watcher := &Watcher{
		path:     path,
		fs:       fs,
		digester: digester,
		logger:   logger,
		stats:    newWatchStats(),
	}
	watcher.table.Store(&models.Table{})

	return watcher
}

// CurrentTable returns the latest successfully parsed table.
// Any read or parse failure is logged and the previous table is returned.
func (w *Watcher) CurrentTable() *models.Table {
	if !w.busy.CompareAndSwap(false, true) {
		w.stats.recordSkipped()
		return w.table.Load()
	}
	defer w.busy.Store(false)

	failure, err := w.refresh()
	if err != nil {
		w.stats.recordFailure()
		w.reportFailure(failure, err)
	}

	return w.table.Load()
}

// reportFailure warns once per distinct failure. The same failure on later
// ticks is logged at debug level until a read succeeds.
func (w *Watcher) reportFailure(failure string, err error) {
	w.mutex.Lock()
	repeated := failure == w.lastFailure
	w.lastFailure = failure
	w.mutex.Unlock()

	args := w.logger.Args("path", w.path, "error", err)
	if repeated {
		w.logger.Debug("Roster file still unreadable", args)
		return
	}
	w.logger.Warn("There was a problem reading the roster file, maybe it is in use by another process", args)
}

// refresh reads and, when the digest changed, re-parses the roster file.
// On failure it also returns a key identifying the failure: the digest of
// content that did not parse, or the read error.
func (w *Watcher) refresh() (string, error) {
	content, err := afero.ReadFile(w.fs, w.path)
	if err != nil {
		err = fmt.Errorf("failed to read roster file: %w", err)
		return err.Error(), err
	}

	digest := w.digester(content)

	w.mutex.Lock()
	unchanged := w.hasDigest && digest == w.lastDigest
	if unchanged {
		w.lastFailure = ""
	}
	w.mutex.Unlock()

	if unchanged {
		w.stats.recordCacheHit()
		w.logger.Debug("Roster unchanged", w.logger.Args("path", w.path, "digest", digest.String()))
		return "", nil
	}

	w.logger.Debug("Change detected in roster file", w.logger.Args("path", w.path, "digest", digest.String()))

	table, err := ParseTable(content)
	if err != nil {
		return "digest:" + digest.String(), err
	}

	w.table.Store(table)

	w.mutex.Lock()
	w.lastDigest = digest
	w.hasDigest = true
	w.lastFailure = ""
	w.mutex.Unlock()

	w.stats.recordReparse()
	w.logger.Info("Roster reloaded", w.logger.Args("path", w.path, "rows", len(table.Data), "columns", len(table.ColumnHeaders)))

	return "", nil
}

// Invalidate forgets the stored digest so the next call re-parses the file.
func (w *Watcher) Invalidate() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.hasDigest = false
	w.lastDigest = Digest{}
	w.lastFailure = ""
}

// Stats reports read counters for the watcher.
func (w *Watcher) Stats() map[string]interface{} {
	stats := w.stats.snapshot()
	stats["path"] = w.path
	return stats
}

// ResetStats clears all read counters.
func (w *Watcher) ResetStats() {
	w.stats.reset()
}
