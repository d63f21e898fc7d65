package driver

import (
	"context"
	"math/rand"
	"time"
)

// Pacing bounds the randomized delay inserted between browser actions. The
// jitter exists to keep keystroke cadence away from the chat surface's
// bulk-automation heuristics, not for correctness; tests run with zero pacing.
type Pacing struct {
	Min time.Duration
	Max time.Duration
}

func (p Pacing) delay() time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + time.Duration(rand.Int63n(int64(p.Max-p.Min)+1))
}

// pause sleeps for one jittered interval, returning early if ctx ends.
func (p Pacing) pause(ctx context.Context) {
	d := p.delay()
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
