// Package model defines the value types recorded by the observability
// collector: sessions, events, callsites, and the export artifact.
//
// Invariants:
// - A session's ended_at, when set, is never earlier than its started_at.
// - An event carries exactly one of response or error.
// - duration_ms is computed from the monotonic clock and is never negative.
//
// Timestamps serialize as float64 unix seconds so the export artifact
// stays consumable by downstream dashboards and evaluators.
package model
