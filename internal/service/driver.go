package service

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/napolitain/homebound/internal/snapshot"
)

// DefaultTickRate is the reference cadence of the simulation, in ticks per second
const DefaultTickRate = 30

// Observer receives the snapshot produced by every tick
type Observer func(v snapshot.View)

// Driver ticks a session at a fixed cadence with a fixed dt of 1/rate seconds
type Driver struct {
	session   *Session
	tickRate  float64
	limiter   *rate.Limiter
	observers []Observer
	logger    *slog.Logger
}

// NewDriver creates a driver. A non-positive tickRate falls back to DefaultTickRate.
func NewDriver(session *Session, tickRate float64, logger *slog.Logger) *Driver {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{
		session:  session,
		tickRate: tickRate,
		limiter:  rate.NewLimiter(rate.Limit(tickRate), 1),
		logger:   logger,
	}
}

// Observe registers fn to be called after every tick, outside the session lock
func (d *Driver) Observe(fn Observer) {
	d.observers = append(d.observers, fn)
}

// DT returns the simulated seconds each tick advances
func (d *Driver) DT() float64 { return 1 / d.tickRate }

// Step runs a single tick without pacing
func (d *Driver) Step() snapshot.View {
	v := d.session.Tick(d.DT())
	for _, fn := range d.observers {
		fn(v)
	}
	return v
}

// Run ticks until ctx is done. It returns nil on cancellation.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("driver started", "tick_rate", d.tickRate, "colony", d.session.ID().String())
	for {
		if err := d.limiter.Wait(ctx); err != nil {
			// Wait also fails early when the deadline falls before the next tick
			<-ctx.Done()
			d.logger.Info("driver stopped", "reason", context.Cause(ctx).Error())
			return nil
		}
		d.Step()
	}
}
