// Package worker runs the background loops of the api process.
package worker

import (
	"context"
	"errors"
	"time"

	"coordinate-extractor/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Pipeline is the transform the poller repeats
type Pipeline interface {
	ClearOutput(ctx context.Context) (bool, error)
	Process(ctx context.Context) (service.ProcessResult, error)
}

// CycleFunc observes the outcome of one poller cycle.
type CycleFunc func(result service.ProcessResult, err error)

// Poller deletes the previous output and reruns the pipeline every Interval
type Poller struct {
	pipeline Pipeline
	interval time.Duration
	onCycle  CycleFunc
	logger   zerolog.Logger
}

// NewPoller creates a poller. onCycle may be nil.
func NewPoller(pipeline Pipeline, interval time.Duration, onCycle CycleFunc) *Poller {
	return &Poller{
		pipeline: pipeline,
		interval: interval,
		onCycle:  onCycle,
		logger:   log.With().Str("component", "poller").Logger(),
	}
}

// Run loops until ctx is cancelled. Errors of a cycle are logged and the next tick retries.
func (p *Poller) Run(ctx context.Context) {
	for {
		p.RunOnce(ctx)

		p.logger.Info().Dur("interval", p.interval).Msg("waiting for next update")
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.interval):
		}
	}
}

// RunOnce performs a single cycle.
func (p *Poller) RunOnce(ctx context.Context) {
	removed, err := p.pipeline.ClearOutput(ctx)
	switch {
	case err != nil:
		p.logger.Error().Err(err).Msg("could not delete previous output")
	case removed:
		p.logger.Info().Msg("previous output deleted")
	}

	result, err := p.pipeline.Process(ctx)
	switch {
	case errors.Is(err, service.ErrColumnNotFound):
		p.logger.Warn().Err(err).Msg("email column missing, skipping cycle")
	case err != nil:
		p.logger.Error().Err(err).Msg("failed to process coordinates")
	default:
		p.logger.Info().
			Str("path", result.OutputPath).
			Int("records", result.Records).
			Int("rows", result.Rows).
			Msg("coordinates saved")
	}

	if p.onCycle != nil {
		p.onCycle(result, err)
	}
}
