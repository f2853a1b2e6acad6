package model

import "time"

// UnixSeconds converts t to float64 unix seconds, the timestamp format
// used throughout the export artifact.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// Timing is the wall-clock bracket of one observed call.
type Timing struct {
	StartedAt  float64
	EndedAt    float64
	DurationMS float64
}

// Stopwatch times a call using the monotonic clock, so the resulting
// duration is non-negative even if the wall clock steps backwards.
type Stopwatch struct {
	start time.Time
}

// StartTimer begins timing a call.
func StartTimer() Stopwatch {
	return Stopwatch{start: time.Now()}
}

// Stop returns the timing bracket for the call. EndedAt is derived from
// StartedAt plus the monotonic elapsed time, which keeps
// ended_at >= started_at and duration_ms >= 0 by construction.
func (s Stopwatch) Stop() Timing {
	elapsed := time.Since(s.start)
	if elapsed < 0 {
		elapsed = 0
	}
	started := UnixSeconds(s.start)
	return Timing{
		StartedAt:  started,
		EndedAt:    started + elapsed.Seconds(),
		DurationMS: float64(elapsed) / float64(time.Millisecond),
	}
}

// Apply copies the timing bracket onto an event.
func (t Timing) Apply(e *Event) {
	e.StartedAt = t.StartedAt
	e.EndedAt = t.EndedAt
	e.DurationMS = t.DurationMS
}
