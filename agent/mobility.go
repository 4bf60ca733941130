package agent

import (
	"fmt"
	"math"

	"github.com/brensch/snekplan/game"
	"github.com/brensch/snekplan/rules"
	"github.com/brensch/snekplan/search"
)

// NewMobility returns an agent that, among routes to the target, prefers the
// one that leaves the head closest on average to every free cell once the
// target is eaten.
//
// The true cost of a route is its length plus that exact average. Searching
// uses an admissible estimate of it, and every route found tightens the bound
// that later candidates have to beat.
func NewMobility(cfg Config) Agent {
	return &planned{
		name:   "mobility",
		cfg:    cfg,
		planFn: func(state *game.State) (plan, error) { return planMobility(state, cfg) },
	}
}

type mobilityStrategy struct {
	goal      game.Cell
	rootScore int
	// afterEating lower-bounds the mean distance to free cells once the goal
	// is eaten. It only depends on the goal and body length, so it is fixed
	// for one planning call.
	afterEating float64
	// incumbent is the lowest true cost confirmed so far.
	incumbent float64
	seen      visited
}

func (m *mobilityStrategy) bound(p path) float64 {
	return float64(len(p.actions)+game.TaxicabDistance(p.state.Head(), m.goal)) + m.afterEating
}

func (m *mobilityStrategy) Rank(p path) search.Cost {
	return search.NewCost(m.bound(p))
}

func (m *mobilityStrategy) Expand(p path) []path {
	if m.scored(p) || !m.seen.firstVisit(p) {
		return nil
	}
	children := extend(p)
	kept := children[:0]
	for _, c := range children {
		if m.bound(c) <= m.incumbent {
			kept = append(kept, c)
		}
	}
	return kept
}

func (m *mobilityStrategy) scored(p path) bool { return p.state.Score() > m.rootScore }

// trueCost is the route length plus the exact mean breadth-first distance
// from the new head to every free cell. Unreachable cells make it +Inf.
func trueCost(p path) float64 {
	return float64(len(p.actions)) + rules.AverageDistance(p.state)
}

func planMobility(state *game.State, cfg Config) (plan, error) {
	strategy := &mobilityStrategy{
		goal:        state.Target(),
		rootScore:   state.Score(),
		afterEating: rules.BestCaseAverage(state),
		incumbent:   math.Inf(1),
		seen:        visited{},
	}
	s := search.New[path, search.Cost](rootPath(state), strategy)

	var best *plan
	for {
		if cfg.MaxExpansions > 0 && s.Expanded() >= cfg.MaxExpansions {
			break
		}
		p, rank, ok := s.Next()
		if !ok || rank.Float() > strategy.incumbent {
			break
		}
		if !strategy.scored(p) {
			continue
		}

		cost := trueCost(p)
		if best == nil || cost < best.cost {
			best = &plan{actions: p.actions, cost: cost}
			strategy.incumbent = math.Min(strategy.incumbent, cost)
		}
	}

	if best == nil {
		return plan{expanded: s.Expanded()}, fmt.Errorf("%w: no safe route to %v after %d expansions",
			ErrPlannerExhausted, strategy.goal, s.Expanded())
	}
	best.expanded = s.Expanded()
	return *best, nil
}
