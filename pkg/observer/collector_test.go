package observer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VyankateshD206/aiobs/internal/observability"
	"github.com/VyankateshD206/aiobs/pkg/export"
	"github.com/VyankateshD206/aiobs/pkg/model"
	"github.com/VyankateshD206/aiobs/pkg/provider"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	return New(WithExportDir(t.TempDir()))
}

func testEvent(name string) model.Event {
	sw := model.StartTimer()
	event := model.Event{
		Provider: name,
		API:      "chat.completions.create",
		Request:  map[string]any{"model": "gpt-4o-mini"},
		Response: map[string]any{"ok": true},
	}
	sw.Stop().Apply(&event)
	return event
}

func TestCollector_ObserveOpensSession(t *testing.T) {
	c := newTestCollector(t)

	session := c.Observe("run-1")
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "run-1", session.Name)
	assert.Equal(t, os.Getpid(), session.Meta.PID)
	assert.NotEmpty(t, session.Meta.CWD)
	assert.True(t, session.Open())
}

func TestCollector_ObserveDefaultName(t *testing.T) {
	c := newTestCollector(t)

	session := c.Observe("")
	assert.Equal(t, DefaultSessionName, session.Name)
}

func TestCollector_ObserveIdempotent(t *testing.T) {
	c := newTestCollector(t)

	first := c.Observe("s1")
	second := c.Observe("other-name")

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "s1", second.Name)

	sessions, _ := c.Snapshot()
	assert.Len(t, sessions, 1)
}

func TestCollector_EndClosesSession(t *testing.T) {
	c := newTestCollector(t)

	opened := c.Observe("s1")
	closed, ok := c.End()

	require.True(t, ok)
	assert.Equal(t, opened.ID, closed.ID)
	require.NotNil(t, closed.EndedAt)
	assert.GreaterOrEqual(t, *closed.EndedAt, closed.StartedAt)

	_, open := c.Session()
	assert.False(t, open)
}

func TestCollector_EndWithoutSession(t *testing.T) {
	c := newTestCollector(t)

	_, ok := c.End()
	assert.False(t, ok)
}

func TestCollector_RecordTagsOpenSession(t *testing.T) {
	c := newTestCollector(t)

	session := c.Observe("s1")
	c.Record(testEvent("openai"))

	_, events := c.Snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, session.ID, events[0].SessionID)
	assert.Equal(t, "openai", events[0].Provider)
}

func TestCollector_RecordOrphanDropped(t *testing.T) {
	c := newTestCollector(t)

	// No session open at all.
	c.Record(testEvent("openai"))

	// Session opened and closed again.
	c.Observe("s1")
	_, ok := c.End()
	require.True(t, ok)
	c.Record(testEvent("openai"))

	_, events := c.Snapshot()
	assert.Empty(t, events)
}

func TestCollector_RecordAfterReobserve(t *testing.T) {
	c := newTestCollector(t)

	c.Observe("s1")
	c.End()
	second := c.Observe("s2")
	c.Record(testEvent("openai"))

	sessions, events := c.Snapshot()
	assert.Len(t, sessions, 2)
	require.Len(t, events, 1)
	assert.Equal(t, second.ID, events[0].SessionID)
}

func TestCollector_ConcurrentRecord(t *testing.T) {
	c := newTestCollector(t)
	session := c.Observe("concurrent")

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				c.Record(testEvent("openai"))
			}
		}()
	}
	wg.Wait()

	_, events := c.Snapshot()
	require.Len(t, events, goroutines*perGoroutine)
	for _, ev := range events {
		assert.Equal(t, session.ID, ev.SessionID)
	}
}

func TestCollector_FlushRoundTrip(t *testing.T) {
	c := newTestCollector(t)

	session := c.Observe("s1")
	c.Record(testEvent("openai"))
	c.Record(testEvent("anthropic"))
	c.End()

	path, err := c.Flush()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, export.ValidateBytes(data))

	var artifact model.Export
	require.NoError(t, json.Unmarshal(data, &artifact))
	require.Len(t, artifact.Sessions, 1)
	require.Len(t, artifact.Events, 2)
	assert.Equal(t, session.ID, artifact.Sessions[0].ID)
	assert.Equal(t, session.ID, artifact.Events[0].SessionID)
	assert.Equal(t, session.ID, artifact.Events[1].SessionID)
	assert.Equal(t, model.ExportVersion, artifact.Version)
	assert.Greater(t, artifact.GeneratedAt, 0.0)
}

func TestCollector_FlushWhileObserving(t *testing.T) {
	c := newTestCollector(t)

	c.Observe("live")
	c.Record(testEvent("openai"))

	path, err := c.Flush()
	require.NoError(t, err)

	artifact := readArtifactFile(t, path)
	assert.Len(t, artifact.Sessions, 1)
	assert.Len(t, artifact.Events, 1)
	assert.Nil(t, artifact.Sessions[0].EndedAt)

	// Flush must not end the session.
	_, open := c.Session()
	assert.True(t, open)
}

func TestCollector_FlushDoesNotClear(t *testing.T) {
	c := newTestCollector(t)

	c.Observe("s1")
	c.Record(testEvent("openai"))
	c.End()

	_, err := c.Flush()
	require.NoError(t, err)

	sessions, events := c.Snapshot()
	assert.Len(t, sessions, 1)
	assert.Len(t, events, 1)
}

func TestCollector_ResetThenFlushEmpty(t *testing.T) {
	c := newTestCollector(t)

	c.Observe("s1")
	c.Record(testEvent("openai"))
	c.End()
	c.Reset()

	path, err := c.Flush()
	require.NoError(t, err)

	artifact := readArtifactFile(t, path)
	assert.Empty(t, artifact.Sessions)
	assert.Empty(t, artifact.Events)
	assert.Equal(t, model.ExportVersion, artifact.Version)
}

func TestCollector_FlushExportError(t *testing.T) {
	dir := t.TempDir()
	blocked := dir + "/blocked"
	require.NoError(t, os.WriteFile(blocked, []byte("not a directory"), 0644))

	c := New(WithExportDir(blocked + "/nested"))
	c.Observe("s1")

	_, err := c.Flush()
	assert.Error(t, err)
}

// metricTotal scrapes the metrics handler and sums the series of one
// metric across all label sets.
func metricTotal(t *testing.T, name string) float64 {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	observability.MetricsHandler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var total float64
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if !strings.HasPrefix(line, name) {
			continue
		}
		rest := line[len(name):]
		if rest != "" && rest[0] != ' ' && rest[0] != '{' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		require.NoError(t, err)
		total += v
	}
	return total
}

func TestCollector_MetricsCountOnlyAcceptedEvents(t *testing.T) {
	c := newTestCollector(t)

	recordedBefore := metricTotal(t, "aiobs_events_recorded_total")
	orphansBefore := metricTotal(t, "aiobs_orphan_events_dropped_total")

	// Dropped orphan: counted as dropped, never as recorded.
	c.Record(testEvent("openai"))
	assert.Equal(t, recordedBefore, metricTotal(t, "aiobs_events_recorded_total"))
	assert.Equal(t, orphansBefore+1, metricTotal(t, "aiobs_orphan_events_dropped_total"))

	c.Observe("s1")
	c.Record(testEvent("openai"))
	assert.Equal(t, recordedBefore+1, metricTotal(t, "aiobs_events_recorded_total"))
	assert.Equal(t, orphansBefore+1, metricTotal(t, "aiobs_orphan_events_dropped_total"))
}

func TestCollector_ObserveInstallsInterceptors(t *testing.T) {
	c := newTestCollector(t)

	base := provider.NewBase("fake")
	provider.Register(base)
	t.Cleanup(func() { provider.Unregister(base) })

	require.False(t, base.Installed())

	c.Observe("s1")
	assert.True(t, base.Installed())

	// End leaves interceptors installed.
	c.End()
	assert.True(t, base.Installed())

	// Reset leaves interceptors installed too.
	c.Reset()
	assert.True(t, base.Installed())
}

// fakeProvider implements provider.Provider for the scenario tests.
type fakeProvider struct {
	name    string
	err     error
	delay   time.Duration
	content string
}

func (f *fakeProvider) Provider() string { return f.name }

func (f *fakeProvider) Call(ctx context.Context, request provider.Request) (*provider.Response, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Content: f.content}, nil
}

func TestCollector_ScenarioConcurrentSuccessAndFailure(t *testing.T) {
	c := newTestCollector(t)

	sentinel := errors.New("rate limited")
	good := provider.Instrument(&fakeProvider{name: "good", content: "hello", delay: 5 * time.Millisecond})
	bad := provider.Instrument(&fakeProvider{name: "bad", err: sentinel, delay: 5 * time.Millisecond})
	t.Cleanup(func() {
		provider.Unregister(good.(provider.Interceptor))
		provider.Unregister(bad.(provider.Interceptor))
	})

	session := c.Observe("s1")

	var wg sync.WaitGroup
	wg.Add(2)
	var goodErr, badErr error
	go func() {
		defer wg.Done()
		_, goodErr = good.Call(context.Background(), provider.Request{Model: "m"})
	}()
	go func() {
		defer wg.Done()
		_, badErr = bad.Call(context.Background(), provider.Request{Model: "m"})
	}()
	wg.Wait()

	require.NoError(t, goodErr)
	require.ErrorIs(t, badErr, sentinel)

	_, ok := c.End()
	require.True(t, ok)

	path, err := c.Flush()
	require.NoError(t, err)

	artifact := readArtifactFile(t, path)
	require.Len(t, artifact.Sessions, 1)
	assert.Equal(t, "s1", artifact.Sessions[0].Name)
	require.Len(t, artifact.Events, 2)

	var successes, failures int
	for _, ev := range artifact.Events {
		assert.Equal(t, session.ID, ev.SessionID)
		assert.GreaterOrEqual(t, ev.DurationMS, 0.0)
		if ev.Failed() {
			failures++
			assert.Nil(t, ev.Response)
			assert.Equal(t, sentinel.Error(), ev.Error)
		} else {
			successes++
			assert.NotNil(t, ev.Response)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
}

func readArtifactFile(t *testing.T, path string) model.Export {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var artifact model.Export
	require.NoError(t, json.Unmarshal(data, &artifact))
	return artifact
}
