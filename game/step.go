package game

import "math/rand"

// Step advances the simulation by one tick.
//
// On Died the heading and move counter have already been updated but the body
// is untouched, so the fatal position can be inspected. On Won the head sits
// on the final target cell and there is nowhere left to place a new one, so
// Target keeps reporting that cell even though it is now body. This is the
// only state in which the target and the body overlap.
//
// rng drives target relocation after the snake eats. A nil rng selects the
// relocation cell deterministically from the move counter and score.
func (s *State) Step(action Action, rng *rand.Rand) Outcome {
	s.moves++
	s.heading = s.heading.After(action)

	next := s.heading.Move(s.Head())
	if !s.InBounds(next) {
		return Died
	}

	switch s.Occupant(next) {
	case Empty:
		tail := s.body[0]
		s.occupied[s.index(tail)] = false
		// Shift in place so the backing array does not creep forward.
		copy(s.body, s.body[1:])
		s.body[len(s.body)-1] = next
		s.occupied[s.index(next)] = true
	case Body:
		return Died
	case Target:
		s.score++
		s.body = append(s.body, next)
		s.occupied[s.index(next)] = true
		target, ok := s.randomOpenCell(rng)
		if !ok {
			return Won
		}
		s.target = target
	}

	return Continue
}
