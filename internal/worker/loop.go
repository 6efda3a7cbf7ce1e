package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Heartbeat logs msg every interval until ctx is cancelled.
func Heartbeat(ctx context.Context, interval time.Duration, msg string) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		log.Info().Msg(msg)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Every calls fn immediately and then every interval until ctx is cancelled.
func Every(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		fn(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
		}
	}
}
