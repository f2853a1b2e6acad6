package observer

import (
	"sync"

	"github.com/VyankateshD206/aiobs/pkg/model"
)

// The process-wide collector. All package-level functions delegate to
// it; Reset is the only supported way to clear it between logical runs.
var (
	defaultMu        sync.RWMutex
	defaultCollector = New()
)

// Default returns the process-wide collector.
func Default() *Collector {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultCollector
}

// SetDefault replaces the process-wide collector and returns the
// previous one. Intended for tests that need a collector with a
// different export directory.
func SetDefault(c *Collector) *Collector {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	prev := defaultCollector
	defaultCollector = c
	return prev
}

// Observe opens a session on the process-wide collector.
func Observe(name string) model.Session {
	return Default().Observe(name)
}

// End closes the open session on the process-wide collector.
func End() (model.Session, bool) {
	return Default().End()
}

// Flush exports the process-wide collector's state and returns the
// artifact path.
func Flush() (string, error) {
	return Default().Flush()
}

// Reset clears the process-wide collector.
func Reset() {
	Default().Reset()
}
