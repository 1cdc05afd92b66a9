package browser

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAbortOnDone_CancelAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	aborted := make(chan struct{})

	stop := abortOnDone(ctx, func() { close(aborted) })
	defer stop()

	cancel()
	select {
	case <-aborted:
	case <-time.After(2 * time.Second):
		t.Fatal("abort not called after cancel")
	}
}

func TestAbortOnDone_StopPreventsAbort(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	stop := abortOnDone(ctx, func() { calls.Add(1) })
	stop()
	stop() // idempotent
	cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
