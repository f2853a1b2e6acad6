package provider

import (
	"github.com/VyankateshD206/aiobs/pkg/model"
)

// Submit hands one completed event to the attached recorder. When the
// interceptor is uninstalled the event is discarded: the wrapped call
// already returned to the caller, so there is nothing else to do with it.
// Metrics are the recorder's concern; only accepted events count.
func (b *Base) Submit(event model.Event) {
	rec := b.Recorder()
	if rec == nil {
		return
	}
	rec.Record(event)
}
