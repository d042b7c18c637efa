package job

import (
	"time"

	"go.uber.org/zap"

	"github.com/ytget/mediafetch/internal/registry"
)

// Sweeper evicts terminal job records from the registry after the
// retention delay, so pollers stop seeing stale jobs and the map does
// not grow without bound.
type Sweeper struct {
	reg   *registry.Registry
	delay time.Duration
	log   *zap.Logger
}

// NewSweeper creates a sweeper with the given retention delay
func NewSweeper(reg *registry.Registry, delay time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{reg: reg, delay: delay, log: log}
}

// Schedule arranges a one-shot eviction of jobID after the retention
// delay. Callers schedule exactly once, at the job's terminal
// transition. The returned timer is mainly useful to tests.
func (s *Sweeper) Schedule(jobID string) *time.Timer {
	return time.AfterFunc(s.delay, func() {
		s.Evict(jobID)
	})
}

// Evict removes the record immediately. Evicting an already-absent id
// is a no-op.
func (s *Sweeper) Evict(jobID string) {
	s.reg.Remove(jobID)
	s.log.Debug("job record evicted", zap.String("job_id", jobID))
}
