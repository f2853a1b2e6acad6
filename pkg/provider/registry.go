package provider

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// registry holds every interceptor constructed in this process. The
// collector installs all of them when a session opens; installation is
// idempotent per interceptor.
var registry = struct {
	mu           sync.Mutex
	interceptors []Interceptor
}{}

// Register adds an interceptor to the process-wide registry. Adapters
// call this from their constructors.
func Register(i Interceptor) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for _, existing := range registry.interceptors {
		if existing == i {
			return
		}
	}
	registry.interceptors = append(registry.interceptors, i)
	log.Debug().Str("provider", i.Provider()).Msg("Interceptor registered")
}

// Unregister removes an interceptor from the registry, uninstalling it
// first. Used by test teardown.
func Unregister(i Interceptor) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for idx, existing := range registry.interceptors {
		if existing == i {
			_ = existing.Uninstall()
			registry.interceptors = append(registry.interceptors[:idx], registry.interceptors[idx+1:]...)
			return
		}
	}
}

// InstallAll attaches every registered interceptor to rec. Already
// installed interceptors are left untouched.
func InstallAll(rec Recorder) {
	for _, i := range Registered() {
		if err := i.Install(rec); err != nil {
			log.Warn().Err(err).Str("provider", i.Provider()).Msg("Failed to install interceptor")
		}
	}
}

// UninstallAll detaches every registered interceptor.
func UninstallAll() {
	for _, i := range Registered() {
		if err := i.Uninstall(); err != nil {
			log.Warn().Err(err).Str("provider", i.Provider()).Msg("Failed to uninstall interceptor")
		}
	}
}

// Registered returns a snapshot of the registered interceptors.
func Registered() []Interceptor {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	out := make([]Interceptor, len(registry.interceptors))
	copy(out, registry.interceptors)
	return out
}
