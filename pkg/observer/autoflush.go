package observer

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// autoFlusher periodically flushes the collector on a cron schedule.
type autoFlusher struct {
	cron *cron.Cron
}

// StartAutoFlush schedules a periodic Flush using a standard five-field
// cron expression. Only one schedule may be active per collector. Each
// tick writes its own artifact; accumulated state is never cleared.
func (c *Collector) StartAutoFlush(spec string) error {
	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	if c.autoflush != nil {
		return fmt.Errorf("auto-flush already running")
	}

	runner := cron.New()
	if _, err := runner.AddFunc(spec, func() {
		if _, err := c.Flush(); err != nil {
			log.Warn().Err(err).Msg("Scheduled flush failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid auto-flush schedule %q: %w", spec, err)
	}

	runner.Start()
	c.autoflush = &autoFlusher{cron: runner}
	log.Info().Str("schedule", spec).Msg("Auto-flush started")
	return nil
}

// StopAutoFlush stops the periodic flush. Safe to call when none is
// running. Blocks until an in-flight scheduled flush completes.
func (c *Collector) StopAutoFlush() {
	c.flushMu.Lock()
	af := c.autoflush
	c.autoflush = nil
	c.flushMu.Unlock()

	if af == nil {
		return
	}
	<-af.cron.Stop().Done()
	log.Info().Msg("Auto-flush stopped")
}
