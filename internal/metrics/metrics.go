// Package metrics tracks device wear counters for the store.
package metrics

import (
	"expvar"
	"sync"
)

// Metrics counts device traffic caused by the store. ByteWrites is the
// number that wears the part; SkippedWrites is traffic the compare-then-write
// policy avoided.
type Metrics struct {
	// Device traffic
	ByteReads     expvar.Int
	ByteWrites    expvar.Int
	SkippedWrites expvar.Int

	// Engine operations
	Appends     expvar.Int
	Compactions expvar.Int
}

// New creates an unpublished Metrics instance.
func New() *Metrics {
	return &Metrics{}
}

var (
	publishMu sync.Mutex
	published = make(map[string]bool)
)

// Publish registers the counters with expvar under the given prefix
// (e.g. "nvkv" yields "nvkv_byte_writes"). Publishing the same prefix
// twice is a no-op, so multiple stores can share one prefix safely.
func (m *Metrics) Publish(prefix string) {
	publishMu.Lock()
	defer publishMu.Unlock()
	if published[prefix] {
		return
	}
	published[prefix] = true

	expvar.Publish(prefix+"_byte_reads", &m.ByteReads)
	expvar.Publish(prefix+"_byte_writes", &m.ByteWrites)
	expvar.Publish(prefix+"_skipped_writes", &m.SkippedWrites)
	expvar.Publish(prefix+"_appends", &m.Appends)
	expvar.Publish(prefix+"_compactions", &m.Compactions)
}
