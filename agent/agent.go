// Package agent turns a game.State into one action per tick.
//
// The search agents plan a whole route to the target at once and replay it
// one action at a time, planning again only when the route runs out. Routes
// always end on the step that eats the target, so they never depend on where
// the next target appears.
package agent

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/brensch/snekplan/game"
	"github.com/brensch/snekplan/logging"
)

// ErrPlannerExhausted means no route to the target was found.
var ErrPlannerExhausted = errors.New("planner exhausted")

// Agent picks the next action for the current state. Implementations may
// cache a multi-tick plan but always return exactly one action per call.
type Agent interface {
	Name() string
	Decide(state *game.State) (game.Action, error)
}

// Recorder receives planner measurements.
type Recorder interface {
	ObservePlan(agent string, expanded, length int, elapsed time.Duration)
	ObserveExhausted(agent string)
}

// Config holds planner configuration.
type Config struct {
	// MaxExpansions caps the nodes one planning call may pop. Zero means no
	// cap.
	MaxExpansions int
	Logger        *slog.Logger
	Recorder      Recorder
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}

type nopRecorder struct{}

func (nopRecorder) ObservePlan(string, int, int, time.Duration) {}
func (nopRecorder) ObserveExhausted(string)                     {}

func (c Config) recorder() Recorder {
	if c.Recorder == nil {
		return nopRecorder{}
	}
	return c.Recorder
}

// plan is one planning call's result.
type plan struct {
	actions  []game.Action
	expanded int
	cost     float64
}

// planned replays a cached plan and asks planFn for a new one when it runs
// out.
type planned struct {
	name    string
	cfg     Config
	pending []game.Action
	planFn  func(state *game.State) (plan, error)
}

func (p *planned) Name() string { return p.name }

func (p *planned) Decide(state *game.State) (game.Action, error) {
	if len(p.pending) == 0 {
		if err := p.replan(state); err != nil {
			return game.GoStraight, err
		}
	}
	a := p.pending[0]
	p.pending = p.pending[1:]
	return a, nil
}

func (p *planned) replan(state *game.State) error {
	start := time.Now()
	result, err := p.planFn(state)
	elapsed := time.Since(start)
	log := p.cfg.logger()

	if err != nil {
		p.cfg.recorder().ObserveExhausted(p.name)
		log.LogAttrs(context.Background(), slog.LevelWarn, "planning failed",
			slog.String("agent", p.name),
			slog.Int("expanded", result.expanded),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
		return err
	}

	p.cfg.recorder().ObservePlan(p.name, result.expanded, len(result.actions), elapsed)
	log.LogAttrs(context.Background(), slog.LevelDebug, "planned route",
		slog.String("agent", p.name),
		slog.Int("expanded", result.expanded),
		slog.Int("plan_len", len(result.actions)),
		slog.Float64("cost", result.cost),
		slog.Duration("elapsed", elapsed),
		slog.Int("score", state.Score()),
	)
	p.pending = result.actions
	return nil
}
