package game

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Width   int
	Height  int
	Target  Cell
	Body    []Cell
	Head    Cell
	Heading Heading
	Score   int
	Moves   int
}

// Snapshot copies the renderable parts of s.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Width:   s.width,
		Height:  s.height,
		Target:  s.target,
		Body:    s.Body(),
		Head:    s.Head(),
		Heading: s.heading,
		Score:   s.score,
		Moves:   s.moves,
	}
}

// Occupant classifies c. Body takes precedence over Target so the head of a
// won game still renders as body.
func (snap Snapshot) Occupant(c Cell) Occupant {
	for _, b := range snap.Body {
		if b == c {
			return Body
		}
	}
	if c == snap.Target {
		return Target
	}
	return Empty
}
