// internal/transfer/pacing.go
package transfer

import (
	"context"
	"time"
)

// DefaultPageDelay is the fixed delay between successive listing pages, tuned
// against the remote API's rate limits.
const DefaultPageDelay = 300 * time.Millisecond

// Pacer inserts a delay between successive pages of a multi-page loop. It is
// injectable so tests run without real delays and so adaptive strategies can
// be swapped in.
type Pacer interface {
	Wait(ctx context.Context)
}

// FixedPacer waits a constant interval regardless of remote response time.
type FixedPacer struct {
	Delay time.Duration
}

func (p FixedPacer) Wait(ctx context.Context) {
	delay := p.Delay
	if delay <= 0 {
		delay = DefaultPageDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// NopPacer returns immediately.
type NopPacer struct{}

func (NopPacer) Wait(context.Context) {}
