// Package provider defines the interception seam between third-party LLM
// clients and the observability collector.
//
// Two wrapping styles share one contract:
//
//   - Instrument decorates any Provider implementation (the
//     dependency-injected client seam).
//   - The openai and anthropic subpackages attach at the SDK's HTTP
//     middleware seam, so call sites keep using the vendor client
//     directly.
//
// In both cases the wrapped call is timed with the monotonic clock,
// its request/response are captured best-effort, exactly one Event is
// submitted per call, and the caller-visible return value and error are
// passed through unchanged.
package provider
