package roster

import (
	"sync"
	"time"
)

// WatchStats tracks how often the watcher had to re-parse the roster.
type WatchStats struct {
	TotalReads    int64
	CacheHits     int64
	Reparses      int64
	Failures      int64
	SkippedBusy   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

func newWatchStats() *WatchStats {
	return &WatchStats{LastResetTime: time.Now()}
}

func (s *WatchStats) recordCacheHit() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.TotalReads++
	s.CacheHits++
}

func (s *WatchStats) recordReparse() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.TotalReads++
	s.Reparses++
}

func (s *WatchStats) recordFailure() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.TotalReads++
	s.Failures++
}

func (s *WatchStats) recordSkipped() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.SkippedBusy++
}

// snapshot returns the counters in the same map shape the CLI prints.
func (s *WatchStats) snapshot() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	hitRate := 0.0
	if s.TotalReads > 0 {
		hitRate = float64(s.CacheHits) / float64(s.TotalReads) * 100
	}

	uptime := time.Since(s.LastResetTime)

	readsPerSec := 0.0
	if uptime.Seconds() > 0 {
		readsPerSec = float64(s.TotalReads) / uptime.Seconds()
	}

	return map[string]interface{}{
		"total_reads":      s.TotalReads,
		"cache_hits":       s.CacheHits,
		"reparses":         s.Reparses,
		"failures":         s.Failures,
		"skipped_busy":     s.SkippedBusy,
		"hit_rate_percent": hitRate,
		"uptime_seconds":   uptime.Seconds(),
		"uptime_human":     uptime.Round(time.Second).String(),
		"reads_per_second": readsPerSec,
		"last_reset":       s.LastResetTime.Format(time.RFC3339),
	}
}

func (s *WatchStats) reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.TotalReads = 0
	s.CacheHits = 0
	s.Reparses = 0
	s.Failures = 0
	s.SkippedBusy = 0
	s.LastResetTime = time.Now()
}
