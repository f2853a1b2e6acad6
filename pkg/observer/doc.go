// Package observer owns the session lifecycle and the in-memory event
// log. A process-wide Collector aggregates events submitted by provider
// interceptors and exports them as one consistent artifact per flush.
//
// Lifecycle:
//
//	observer.Observe("pipeline")   // open a session, install interceptors
//	// ... instrumented provider calls ...
//	observer.End()                 // close the session
//	path, err := observer.Flush()  // write the export artifact
//
// Orphan policy: events submitted while no session is open are dropped.
// They are counted in metrics and logged at debug level, never buffered.
package observer
