package agent

import (
	"github.com/brensch/snekplan/game"
	"github.com/brensch/snekplan/rules"
)

// Greedy turns toward the target every tick without planning ahead. It only
// avoids dying on the very next step.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Decide(state *game.State) (game.Action, error) {
	safe := rules.SafeActions(state)
	if len(safe) == 0 {
		return game.GoStraight, nil
	}

	if h, ok := state.Head().HeadingToward(state.Target()); ok {
		if a, ok := state.Heading().TurnTowards(h); ok {
			for _, s := range safe {
				if s == a {
					return a, nil
				}
			}
		}
	}
	return safe[0], nil
}
