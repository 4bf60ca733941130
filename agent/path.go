package agent

import (
	"encoding/binary"

	"github.com/brensch/snekplan/game"
	"github.com/brensch/snekplan/rules"
)

// path is a search node: a speculative state and the actions that led to it.
// Every path owns its state and action slice.
type path struct {
	state   *game.State
	actions []game.Action
}

func rootPath(state *game.State) path {
	return path{state: state.Clone()}
}

// extend returns the surviving, non-trapping successors of p.
//
// A successor is dropped when the step kills the snake, or when fewer than
// Len()+1 cells are reachable from the new head. Filling the board wins
// outright and skips the area check.
func extend(p path) []path {
	out := make([]path, 0, len(game.Actions))
	for _, a := range game.Actions {
		next := p.state.Clone()
		switch next.Step(a, nil) {
		case game.Died:
			continue
		case game.Continue:
			need := next.Len() + 1
			if rules.Reachable(next, need) < need {
				continue
			}
		}

		actions := make([]game.Action, len(p.actions)+1)
		copy(actions, p.actions)
		actions[len(p.actions)] = a
		out = append(out, path{state: next, actions: actions})
	}
	return out
}

// visited records states that have already been expanded in one planning
// call. Ranks are consistent, so the first expansion of a state is always
// through its shortest route.
type visited map[string]struct{}

// firstVisit marks the state of p and reports whether it was new.
func (v visited) firstVisit(p path) bool {
	k := stateKey(p.state)
	if _, ok := v[k]; ok {
		return false
	}
	v[k] = struct{}{}
	return true
}

func stateKey(s *game.State) string {
	body := s.Body()
	buf := make([]byte, 0, 1+len(body)*4)
	buf = append(buf, byte(s.Heading()))
	for _, c := range body {
		buf = binary.AppendUvarint(buf, uint64(c.X))
		buf = binary.AppendUvarint(buf, uint64(c.Y))
	}
	return string(buf)
}
