// Package play runs one agent on one game, a tick at a time.
package play

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/brensch/snekplan/agent"
	"github.com/brensch/snekplan/game"
	"github.com/brensch/snekplan/logging"
	"github.com/google/uuid"
)

// ErrFinished is returned by Step once the game has ended.
var ErrFinished = errors.New("game finished")

// OutcomeRecorder counts finished games.
type OutcomeRecorder interface {
	ObserveOutcome(agent, outcome string)
}

// Config describes one game.
type Config struct {
	Width  int
	Height int
	// Seed drives the initial layout and target relocation. Zero picks a
	// time based seed.
	Seed int64
	// MaxMoves ends the game with outcome Continue once reached. Zero means
	// no limit.
	MaxMoves int

	Logger   *slog.Logger
	Recorder OutcomeRecorder
}

// Result summarises a finished session.
type Result struct {
	SessionID string
	Agent     string
	Outcome   game.Outcome
	Score     int
	Moves     int
	Length    int
}

// Frame is what a renderer receives after every tick.
type Frame struct {
	Snapshot game.Snapshot
	Outcome  game.Outcome
	Final    bool
}

// Session owns the real game state and feeds it to an agent.
type Session struct {
	ID    string
	Seed  int64
	cfg   Config
	state *game.State
	agent agent.Agent
	rng   *rand.Rand
	log   *slog.Logger

	outcome  game.Outcome
	finished bool
}

// NewSession builds a random game for a.
func NewSession(cfg Config, a agent.Agent) (*Session, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	state, err := game.Random(cfg.Width, cfg.Height, rng)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return newSession(cfg, a, state, rng, seed), nil
}

// NewSessionFromState plays a from an explicit starting state. The state is
// cloned.
func NewSessionFromState(cfg Config, a agent.Agent, state *game.State) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return newSession(cfg, a, state.Clone(), rand.New(rand.NewSource(seed)), seed)
}

func newSession(cfg Config, a agent.Agent, state *game.State, rng *rand.Rand, seed int64) *Session {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	id := uuid.NewString()
	return &Session{
		ID:    id,
		Seed:  seed,
		cfg:   cfg,
		state: state,
		agent: a,
		rng:   rng,
		log:   log.With(slog.String("session", id), slog.String("agent", a.Name())),
	}
}

func (s *Session) Snapshot() game.Snapshot { return s.state.Snapshot() }

func (s *Session) Finished() bool { return s.finished }

func (s *Session) Outcome() game.Outcome { return s.outcome }

// Step asks the agent for one action and applies it.
func (s *Session) Step() (game.Outcome, error) {
	if s.finished {
		return s.outcome, ErrFinished
	}

	action, err := s.agent.Decide(s.state)
	if err != nil {
		s.finish(game.Died)
		return game.Died, fmt.Errorf("agent %s: %w", s.agent.Name(), err)
	}

	out := s.state.Step(action, s.rng)
	switch {
	case out.Terminal():
		s.finish(out)
	case s.cfg.MaxMoves > 0 && s.state.Moves() >= s.cfg.MaxMoves:
		s.log.Info("move limit reached", slog.Int("moves", s.state.Moves()))
		s.finish(game.Continue)
	}
	return out, nil
}

func (s *Session) finish(out game.Outcome) {
	s.finished = true
	s.outcome = out
	s.log.Info("game over",
		slog.String("outcome", out.String()),
		slog.Int("score", s.state.Score()),
		slog.Int("moves", s.state.Moves()),
		slog.Int("length", s.state.Len()),
		slog.Int64("seed", s.Seed),
	)
	if s.cfg.Recorder != nil {
		s.cfg.Recorder.ObserveOutcome(s.agent.Name(), out.String())
	}
}

// Result reports the session so far.
func (s *Session) Result() Result {
	return Result{
		SessionID: s.ID,
		Agent:     s.agent.Name(),
		Outcome:   s.outcome,
		Score:     s.state.Score(),
		Moves:     s.state.Moves(),
		Length:    s.state.Len(),
	}
}

// Run steps until the game ends or ctx is done. onFrame, when set, sees
// every tick; the last frame has Final set.
func (s *Session) Run(ctx context.Context, onFrame func(Frame)) (Result, error) {
	for !s.finished {
		select {
		case <-ctx.Done():
			return s.Result(), ctx.Err()
		default:
		}

		out, err := s.Step()
		if onFrame != nil {
			onFrame(Frame{Snapshot: s.Snapshot(), Outcome: out, Final: s.finished})
		}
		if err != nil {
			return s.Result(), err
		}
	}
	return s.Result(), nil
}
