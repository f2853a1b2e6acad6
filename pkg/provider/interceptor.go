package provider

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Interceptor is one installed wrapper around a provider's call entry
// point. Install is idempotent and Uninstall restores the original call
// path exactly; a wrapped client whose interceptor is uninstalled keeps
// working as a transparent pass-through.
type Interceptor interface {
	// Provider returns the provider adapter identifier
	Provider() string

	// Install routes captured events to rec. Installing an already
	// installed interceptor is a no-op.
	Install(rec Recorder) error

	// Uninstall detaches the interceptor from its recorder.
	Uninstall() error

	// Installed reports whether the interceptor is currently attached.
	Installed() bool
}

// Base implements the install/uninstall bookkeeping shared by all
// provider adapters. Adapters embed it and call Submit with each
// completed event.
type Base struct {
	name string

	mu        sync.RWMutex
	rec       Recorder
	installed bool
}

// NewBase creates the shared interceptor state for one provider adapter.
func NewBase(name string) *Base {
	return &Base{name: name}
}

// Provider returns the provider adapter identifier.
func (b *Base) Provider() string {
	return b.name
}

// Install attaches the interceptor to a recorder. A second Install is a
// no-op, so double installation never produces duplicate events.
func (b *Base) Install(rec Recorder) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.installed {
		return nil
	}

	b.rec = rec
	b.installed = true
	log.Debug().Str("provider", b.name).Msg("Interceptor installed")
	return nil
}

// Uninstall detaches the interceptor, restoring pass-through behavior.
func (b *Base) Uninstall() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.installed {
		return nil
	}

	b.rec = nil
	b.installed = false
	log.Debug().Str("provider", b.name).Msg("Interceptor uninstalled")
	return nil
}

// Installed reports whether the interceptor is currently attached.
func (b *Base) Installed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.installed
}

// Recorder returns the attached recorder, or nil when uninstalled.
func (b *Base) Recorder() Recorder {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rec
}
