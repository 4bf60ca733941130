// Package rules holds read-only queries over a game.State that planners use
// to probe futures without touching the real state.
package rules

import (
	"errors"
	"fmt"

	"github.com/brensch/snekplan/game"
)

// ErrDied is returned when a speculative sequence kills the snake.
var ErrDied = errors.New("snake died")

// ApplySequence applies actions in order to a private copy of state.
// The caller's state is never mutated. Relocation after eating is
// deterministic, so the same inputs always give the same result.
func ApplySequence(state *game.State, actions []game.Action) (*game.State, error) {
	next := state.Clone()
	for i, a := range actions {
		if next.Step(a, nil) == game.Died {
			return nil, fmt.Errorf("action %d (%v): %w", i, a, ErrDied)
		}
	}
	return next, nil
}

// SafeActions returns the actions whose single step does not die.
func SafeActions(state *game.State) []game.Action {
	safe := make([]game.Action, 0, len(game.Actions))
	for _, a := range game.Actions {
		if isSafe(state, state.Heading().After(a).Move(state.Head())) {
			safe = append(safe, a)
		}
	}
	return safe
}

func isSafe(state *game.State, c game.Cell) bool {
	// 1. Check Bounds
	if !state.InBounds(c) {
		return false
	}

	// 2. Check Collisions. The tail has not moved yet when the head
	// arrives, so it counts.
	return !state.IsBody(c)
}
