package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/radityabagas/bucketadmin/internal/transfer"
)

func TestFixedPacerWaits(t *testing.T) {
	pacer := transfer.FixedPacer{Delay: 50 * time.Millisecond}

	start := time.Now()
	pacer.Wait(context.Background())
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestFixedPacerReturnsOnCancel(t *testing.T) {
	pacer := transfer.FixedPacer{Delay: 10 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	pacer.Wait(ctx)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNopPacer(t *testing.T) {
	start := time.Now()
	transfer.NopPacer{}.Wait(context.Background())
	assert.Less(t, time.Since(start), 10*time.Millisecond)
}
