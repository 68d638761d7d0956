package scenario

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/models"
)

// timeEpsilon absorbs float drift when the accumulated clock is compared to step times
const timeEpsilon = 1e-9

// Result records what happened to one step
type Result struct {
	ID      string  `json:"id"`
	At      float64 `json:"at"`
	Tick    uint64  `json:"tick"`
	Action  Action  `json:"action"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Applied bool    `json:"applied"`
}

// Report summarises a finished run
type Report struct {
	Name    string   `json:"name"`
	Ticks   uint64   `json:"ticks"`
	Elapsed float64  `json:"elapsed"`
	Results []Result `json:"results"`
}

// Applied returns how many steps took effect
func (r *Report) Applied() int {
	n := 0
	for _, res := range r.Results {
		if res.Applied {
			n++
		}
	}
	return n
}

// TickFunc is called after every tick with the colony in its post-fold state
type TickFunc func(c *colony.Colony)

// Runner plays a script against a colony with a fixed dt
type Runner struct {
	script *Script
	colony *colony.Colony
	logger *slog.Logger
	onTick TickFunc
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(s *Script, c *colony.Colony, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{script: s, colony: c, logger: logger}
}

// OnTick installs a hook called after every tick
func (r *Runner) OnTick(fn TickFunc) { r.onTick = fn }

// NewColony builds the colony a script asks for: the starting layout or a bare headquarters
func NewColony(s *Script, catalog *models.Catalog, opts ...colony.Option) (*colony.Colony, error) {
	if s.Starting {
		return colony.NewStartingColony(catalog, opts...)
	}
	return colony.New(catalog, opts...)
}

// Run applies due steps between ticks until the script duration is reached.
// It stops early with the context's error when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	queue := NewEventQueue()
	for _, step := range r.script.Steps {
		queue.Push(step)
	}

	report := &Report{Name: r.script.Name}
	var now float64

	for {
		for _, e := range queue.Due(now) {
			applied := Apply(r.colony, e.Step)
			report.Results = append(report.Results, Result{
				ID:      e.Step.ID,
				At:      e.Time,
				Tick:    r.colony.Ticks(),
				Action:  e.Step.Action,
				X:       e.Step.X,
				Y:       e.Step.Y,
				Applied: applied,
			})
			r.logger.Debug("step", "action", string(e.Step.Action), "at", e.Time, "applied", applied)
		}

		if now+timeEpsilon >= r.script.Duration {
			break
		}
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("scenario %q interrupted at %.2fs: %w", r.script.Name, now, err)
		}

		dt := min(r.script.DT, r.script.Duration-now)
		r.colony.Update(dt)
		now += dt
		report.Ticks++
		if r.onTick != nil {
			r.onTick(r.colony)
		}
	}

	report.Elapsed = now
	r.logger.Info("scenario finished", "name", r.script.Name, "ticks", report.Ticks,
		"steps", len(report.Results), "applied", report.Applied())
	return report, nil
}
