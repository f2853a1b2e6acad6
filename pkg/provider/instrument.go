package provider

import (
	"context"

	"github.com/VyankateshD206/aiobs/pkg/callsite"
	"github.com/VyankateshD206/aiobs/pkg/model"
)

// interfaceAPI is the logical api name recorded for calls made through
// the Provider interface seam, which abstracts over vendor endpoints.
const interfaceAPI = "llm.call"

// instrumented decorates a Provider so every Call is timed and recorded.
// It is itself a Provider, indistinguishable to the caller from the
// wrapped one.
type instrumented struct {
	*Base
	next Provider
}

// Instrument wraps p with an interceptor and registers it for
// installation. Instrumenting an already instrumented provider returns
// it unchanged, so a call is never timed or recorded twice.
func Instrument(p Provider) Provider {
	if w, ok := p.(*instrumented); ok {
		return w
	}

	w := &instrumented{
		Base: NewBase(p.Provider()),
		next: p,
	}
	Register(w)
	return w
}

// Call delegates to the wrapped provider with arguments unmodified,
// then submits exactly one event carrying the outcome. The returned
// response and error are the originals, never copied or rewrapped.
func (w *instrumented) Call(ctx context.Context, request Request) (*Response, error) {
	site := callsite.Resolve()
	sw := model.StartTimer()

	resp, err := w.next.Call(ctx, request)

	event := model.Event{
		Provider: w.Provider(),
		API:      interfaceAPI,
		Request:  model.Capture(request),
	}
	sw.Stop().Apply(&event)
	if !site.IsZero() {
		event.Callsite = &site
	}
	if err != nil {
		event.Error = err.Error()
	} else {
		event.Response = model.Capture(resp)
	}
	w.Submit(event)

	return resp, err
}
