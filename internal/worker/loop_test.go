package worker

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartbeat(t *testing.T) {
	logs := captureLogs(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	Heartbeat(ctx, 5*time.Millisecond, "background process running")

	assert.GreaterOrEqual(t, strings.Count(logs.String(), "background process running"), 2)
}

func TestHeartbeat_LogsBeforeFirstTick(t *testing.T) {
	logs := captureLogs(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	Heartbeat(ctx, time.Hour, "alive")

	assert.Equal(t, 1, strings.Count(logs.String(), "alive"))
}

func TestEvery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		Every(ctx, 5*time.Millisecond, func(context.Context) {
			if calls.Add(1) == 3 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Every did not stop after cancellation")
	}
	require.Equal(t, int32(3), calls.Load())
}
