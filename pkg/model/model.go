package model

// ExportVersion is the schema version stamped on every export artifact.
const ExportVersion = 1

// SessionMeta holds process-level metadata captured once at session creation.
type SessionMeta struct {
	PID int    `json:"pid"`
	CWD string `json:"cwd"`
}

// Session is a bounded interval over which observed calls are grouped.
type Session struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	StartedAt float64     `json:"started_at"`
	EndedAt   *float64    `json:"ended_at,omitempty"`
	Meta      SessionMeta `json:"meta"`
}

// Open reports whether the session has not been ended yet.
func (s Session) Open() bool {
	return s.EndedAt == nil
}

// Callsite is the caller-code location that triggered an observed call.
// All fields are best-effort and may be empty if resolution failed.
type Callsite struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Function string `json:"function,omitempty"`
}

// IsZero reports whether no callsite information was resolved.
func (c Callsite) IsZero() bool {
	return c.File == "" && c.Line == 0 && c.Function == ""
}

// Event is one recorded provider call with timing, payload, and outcome.
// Request and Response are opaque JSON-representable trees produced by
// Capture; they are stored as given, never validated or transformed.
type Event struct {
	Provider   string    `json:"provider"`
	API        string    `json:"api"`
	Request    any       `json:"request"`
	Response   any       `json:"response,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  float64   `json:"started_at"`
	EndedAt    float64   `json:"ended_at"`
	DurationMS float64   `json:"duration_ms"`
	Callsite   *Callsite `json:"callsite,omitempty"`
}

// Failed reports whether the underlying provider call ended in an error.
func (e Event) Failed() bool {
	return e.Error != ""
}

// ObservedEvent is an Event joined to its owning session.
type ObservedEvent struct {
	Event
	SessionID string `json:"session_id"`
}

// Export is the single artifact written per flush: all sessions and
// events accumulated by the collector, in insertion order.
type Export struct {
	Sessions    []Session       `json:"sessions"`
	Events      []ObservedEvent `json:"events"`
	GeneratedAt float64         `json:"generated_at"`
	Version     int             `json:"version"`
}
