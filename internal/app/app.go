// Package app wires the heartbeat and the presence poll onto one scheduler.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/presence-matrix/internal/model"
	"github.com/thatsimonsguy/presence-matrix/internal/scheduler"
)

type LED interface {
	Toggle() (bool, error)
}

type Fetcher interface {
	FetchPresence(ctx context.Context) model.Presence
}

type Renderer interface {
	Render(p model.Presence)
}

type Intervals struct {
	HeartbeatMs uint32
	PollMs      uint32
}

type App struct {
	scheduler *scheduler.Scheduler
	led       LED
	fetcher   Fetcher
	renderer  Renderer
}

func New(intervals Intervals, clock scheduler.Clock, led LED, fetcher Fetcher, renderer Renderer) *App {
	a := &App{
		led:      led,
		fetcher:  fetcher,
		renderer: renderer,
	}

	a.scheduler = scheduler.New(clock,
		&scheduler.Task{Name: "heartbeat", Interval: intervals.HeartbeatMs, Run: a.heartbeat},
		&scheduler.Task{Name: "poll", Interval: intervals.PollMs, Run: a.poll},
	)
	return a
}

func (a *App) heartbeat(context.Context) {
	on, err := a.led.Toggle()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to toggle status LED")
		return
	}
	log.Trace().Bool("on", on).Msg("Heartbeat")
}

func (a *App) poll(ctx context.Context) {
	a.renderer.Render(a.fetcher.FetchPresence(ctx))
}

// Tick runs one scheduler pass at now.
func (a *App) Tick(ctx context.Context, now uint32) {
	a.scheduler.Tick(ctx, now)
}

// Run drives the cooperative loop until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.scheduler.Run(ctx)
}
