package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/VyankateshD206/aiobs/pkg/callsite"
	"github.com/VyankateshD206/aiobs/pkg/model"
)

// traceMarkerKey marks a request's context while it is being captured,
// so stacking the same middleware twice on one client never records a
// call twice. The marker lives in the context, not the headers: the
// request that reaches the wire is the caller's, byte for byte.
type traceMarkerKey struct{}

// CaptureRoundTrip implements the wrapped-call contract at an SDK's HTTP
// middleware seam. It times the full round trip including I/O wait,
// snapshots the JSON request/response bodies best-effort, submits exactly
// one event through b, and returns the transport's response and error
// untouched.
//
// The openai and anthropic subpackages adapt this to their SDK's
// middleware signature.
func CaptureRoundTrip(b *Base, api string, req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	if !b.Installed() || req.Context().Value(traceMarkerKey{}) != nil {
		return next(req)
	}
	req = req.WithContext(context.WithValue(req.Context(), traceMarkerKey{}, true))

	site := callsite.Resolve()
	request := snapshotRequestBody(req)
	sw := model.StartTimer()

	resp, err := next(req)

	event := model.Event{
		Provider: b.Provider(),
		API:      api,
		Request:  request,
	}
	sw.Stop().Apply(&event)
	if !site.IsZero() {
		event.Callsite = &site
	}

	switch {
	case err != nil:
		event.Error = err.Error()
	case resp != nil && resp.StatusCode >= 400:
		// The SDK turns this status into the error the caller sees;
		// record it here since the middleware never observes that error.
		event.Error = fmt.Sprintf("unexpected status %s", resp.Status)
	default:
		// An event carries exactly one of response or error, so even a
		// bodiless success records an explicit marker.
		event.Response = snapshotResponseBody(resp)
		if event.Response == nil {
			event.Response = map[string]any{"empty": true}
		}
	}
	b.Submit(event)

	return resp, err
}

// snapshotRequestBody captures the outgoing body without consuming it.
func snapshotRequestBody(req *http.Request) any {
	if req == nil || req.Body == nil {
		return nil
	}

	// GetBody replays the buffered body without disturbing the original.
	if req.GetBody != nil {
		rc, err := req.GetBody()
		if err == nil {
			data, readErr := io.ReadAll(rc)
			rc.Close()
			if readErr == nil {
				return model.CaptureRaw(data)
			}
		}
		return model.Placeholder(req.Body)
	}

	data, err := io.ReadAll(req.Body)
	req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return model.Placeholder(req.Body)
	}
	return model.CaptureRaw(data)
}

// snapshotResponseBody captures a JSON response body and rewinds it so
// the SDK decodes the exact bytes the server sent. Streaming responses
// are left untouched and recorded as a marker value.
func snapshotResponseBody(resp *http.Response) any {
	if resp == nil || resp.Body == nil {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return map[string]any{"streaming": true, "content_type": contentType}
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return model.Placeholder(resp.Body)
	}
	return model.CaptureRaw(data)
}
