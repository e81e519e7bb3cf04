package kvline

import (
	"sync/atomic"
)

// ClientStats contains statistics about client operations.
// All fields are safe for concurrent access.
//
// For Prometheus integration, see the promexporter package:
//   - Counters: Sets, Gets, Deletes, Exists, Errors
//   - Counters: GetHits, DeleteHits (derive hit rate as GetHits/Gets)
type ClientStats struct {
	Sets       uint64 // Total successful Set operations
	Gets       uint64 // Total successful Get operations
	GetHits    uint64 // Get operations that found the key
	Deletes    uint64 // Total successful Delete operations
	DeleteHits uint64 // Delete operations that removed a key
	Exists     uint64 // Total successful Exists operations
	Errors     uint64 // Total errors across all operations
	_          uint64 // Padding to align to 64 bytes
}

// clientStatsCollector provides internal methods for updating client stats.
// Not exported - client updates its own stats.
type clientStatsCollector struct {
	stats *ClientStats
}

func newClientStatsCollector() *clientStatsCollector {
	return &clientStatsCollector{
		stats: &ClientStats{},
	}
}

func (c *clientStatsCollector) recordSet() {
	atomic.AddUint64(&c.stats.Sets, 1)
}

func (c *clientStatsCollector) recordGet(found bool) {
	atomic.AddUint64(&c.stats.Gets, 1)
	if found {
		atomic.AddUint64(&c.stats.GetHits, 1)
	}
}

func (c *clientStatsCollector) recordDelete(deleted bool) {
	atomic.AddUint64(&c.stats.Deletes, 1)
	if deleted {
		atomic.AddUint64(&c.stats.DeleteHits, 1)
	}
}

func (c *clientStatsCollector) recordExists() {
	atomic.AddUint64(&c.stats.Exists, 1)
}

func (c *clientStatsCollector) recordError() {
	atomic.AddUint64(&c.stats.Errors, 1)
}

func (c *clientStatsCollector) snapshot() ClientStats {
	return ClientStats{
		Sets:       atomic.LoadUint64(&c.stats.Sets),
		Gets:       atomic.LoadUint64(&c.stats.Gets),
		GetHits:    atomic.LoadUint64(&c.stats.GetHits),
		Deletes:    atomic.LoadUint64(&c.stats.Deletes),
		DeleteHits: atomic.LoadUint64(&c.stats.DeleteHits),
		Exists:     atomic.LoadUint64(&c.stats.Exists),
		Errors:     atomic.LoadUint64(&c.stats.Errors),
	}
}
