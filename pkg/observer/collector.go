package observer

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/VyankateshD206/aiobs/internal/observability"
	"github.com/VyankateshD206/aiobs/pkg/export"
	"github.com/VyankateshD206/aiobs/pkg/model"
	"github.com/VyankateshD206/aiobs/pkg/provider"
)

// DefaultSessionName is used when Observe is called without a name.
const DefaultSessionName = "session"

// Collector aggregates sessions and events submitted concurrently by
// provider interceptors. At most one session is open at a time; events
// are retained in the order Record observes them, which under
// concurrency is completion order, not invocation order.
//
// The mutex guards only the collector's own state. It is never held
// across a delegated provider call, so concurrent LLM calls proceed
// fully in parallel.
type Collector struct {
	mu       sync.Mutex
	sessions []model.Session
	events   []model.ObservedEvent
	openIdx  int

	exporter *export.Exporter

	flushMu   sync.Mutex
	autoflush *autoFlusher
}

// New creates a collector. With no options, artifacts are written to
// the current working directory.
func New(opts ...Option) *Collector {
	observability.EnsureRegistered()

	c := &Collector{openIdx: -1}
	for _, opt := range opts {
		opt(c)
	}
	if c.exporter == nil {
		c.exporter = export.New("")
	}
	return c
}

// Option configures a Collector.
type Option func(*Collector)

// WithExportDir sets the directory export artifacts are written to.
func WithExportDir(dir string) Option {
	return func(c *Collector) {
		c.exporter = export.New(dir)
	}
}

// WithExporter sets the exporter used by Flush.
func WithExporter(e *export.Exporter) Option {
	return func(c *Collector) {
		c.exporter = e
	}
}

// Observe opens a session and installs all registered provider
// interceptors. Installation is idempotent, and so is Observe itself:
// while a session is already open it returns that session unchanged,
// so nested call sites may call Observe without tracking state.
func (c *Collector) Observe(name string) model.Session {
	if name == "" {
		name = DefaultSessionName
	}

	c.mu.Lock()
	if c.openIdx >= 0 {
		open := c.sessions[c.openIdx]
		c.mu.Unlock()
		provider.InstallAll(c)
		return open
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	session := model.Session{
		ID:        uuid.NewString(),
		Name:      name,
		StartedAt: model.UnixSeconds(time.Now()),
		Meta: model.SessionMeta{
			PID: os.Getpid(),
			CWD: cwd,
		},
	}
	c.sessions = append(c.sessions, session)
	c.openIdx = len(c.sessions) - 1
	c.mu.Unlock()

	provider.InstallAll(c)
	observability.RecordSessionOpened()
	log.Info().Str("session_id", session.ID).Str("name", name).Msg("Observation session opened")

	return session
}

// End closes the open session and returns it. When no session is open
// it is a no-op returning ok=false. Interceptors stay installed; events
// submitted from now on are orphans and are dropped by Record.
func (c *Collector) End() (model.Session, bool) {
	c.mu.Lock()
	if c.openIdx < 0 {
		c.mu.Unlock()
		return model.Session{}, false
	}

	session := &c.sessions[c.openIdx]
	endedAt := model.UnixSeconds(time.Now())
	if endedAt < session.StartedAt {
		// Wall clock stepped backwards; keep the session interval valid.
		endedAt = session.StartedAt
	}
	session.EndedAt = &endedAt
	closed := *session
	c.openIdx = -1
	c.mu.Unlock()

	observability.SetActiveSessions(0)
	log.Info().Str("session_id", closed.ID).Msg("Observation session ended")

	return closed, true
}

// Record attaches an event to the open session. It is the interceptors'
// entry point, safe for concurrent use, and never fails: the event is
// stored as given. With no open session the event is dropped.
func (c *Collector) Record(event model.Event) {
	c.mu.Lock()
	if c.openIdx < 0 {
		c.mu.Unlock()
		observability.RecordOrphanDropped()
		log.Debug().Str("provider", event.Provider).Str("api", event.API).Msg("Dropped event with no open session")
		return
	}

	c.events = append(c.events, model.ObservedEvent{
		Event:     event,
		SessionID: c.sessions[c.openIdx].ID,
	})
	c.mu.Unlock()

	// Only accepted events count as recorded; orphans were counted above.
	observability.RecordEvent(
		event.Provider,
		event.API,
		time.Duration(event.DurationMS*float64(time.Millisecond)),
		!event.Failed(),
	)
}

// Flush exports every accumulated session and event, open or closed,
// and returns the artifact path. It neither ends the open session nor
// clears state; Reset does the latter explicitly.
func (c *Collector) Flush() (string, error) {
	c.mu.Lock()
	sessions := make([]model.Session, len(c.sessions))
	copy(sessions, c.sessions)
	events := make([]model.ObservedEvent, len(c.events))
	copy(events, c.events)
	c.mu.Unlock()

	path, err := c.exporter.Export(sessions, events)
	observability.RecordExport(err == nil)
	if err != nil {
		return "", err
	}

	log.Info().Str("path", path).Int("sessions", len(sessions)).Int("events", len(events)).Msg("Observability flushed")
	return path, nil
}

// Reset clears all sessions and events and returns the collector to its
// idle state. Interceptors stay installed, so a subsequent Observe works
// without re-instrumenting. Typically used between independent test runs
// or logical sessions within one process.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.sessions = nil
	c.events = nil
	c.openIdx = -1
	c.mu.Unlock()

	observability.SetActiveSessions(0)
	log.Debug().Msg("Collector reset")
}

// Snapshot returns copies of the accumulated sessions and events.
func (c *Collector) Snapshot() ([]model.Session, []model.ObservedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sessions := make([]model.Session, len(c.sessions))
	copy(sessions, c.sessions)
	events := make([]model.ObservedEvent, len(c.events))
	copy(events, c.events)
	return sessions, events
}

// Session returns the currently open session, if any.
func (c *Collector) Session() (model.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.openIdx < 0 {
		return model.Session{}, false
	}
	return c.sessions[c.openIdx], true
}
