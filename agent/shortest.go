package agent

import (
	"fmt"

	"github.com/brensch/snekplan/game"
	"github.com/brensch/snekplan/search"
)

// NewShortestPath returns an agent that takes the shortest route to the
// target that never leaves the snake with less room than its own length.
func NewShortestPath(cfg Config) Agent {
	return &planned{
		name:   "shortest",
		cfg:    cfg,
		planFn: func(state *game.State) (plan, error) { return planShortest(state, cfg) },
	}
}

// shortestStrategy ranks a path by its length plus the taxicab distance left
// to the goal. The distance ignores the body, so it never overestimates.
type shortestStrategy struct {
	goal      game.Cell
	rootScore int
	seen      visited
}

func (s *shortestStrategy) Rank(p path) search.Cost {
	return search.NewCost(float64(len(p.actions) + game.TaxicabDistance(p.state.Head(), s.goal)))
}

func (s *shortestStrategy) Expand(p path) []path {
	if p.state.Score() > s.rootScore || !s.seen.firstVisit(p) {
		return nil
	}
	return extend(p)
}

func planShortest(state *game.State, cfg Config) (plan, error) {
	strategy := &shortestStrategy{
		goal:      state.Target(),
		rootScore: state.Score(),
		seen:      visited{},
	}
	s := search.New[path, search.Cost](rootPath(state), strategy)

	for {
		if cfg.MaxExpansions > 0 && s.Expanded() >= cfg.MaxExpansions {
			return plan{expanded: s.Expanded()}, fmt.Errorf("%w: %d expansions without reaching %v",
				ErrPlannerExhausted, s.Expanded(), strategy.goal)
		}
		p, rank, ok := s.Next()
		if !ok {
			return plan{expanded: s.Expanded()}, fmt.Errorf("%w: no safe route to %v",
				ErrPlannerExhausted, strategy.goal)
		}
		if p.state.Score() > strategy.rootScore {
			return plan{actions: p.actions, expanded: s.Expanded(), cost: rank.Float()}, nil
		}
	}
}
