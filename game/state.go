// Package game defines the single-snake simulation that agents plan over.
//
// The state is designed to be efficiently clonable so planners can explore
// many divergent futures from one present state without touching it.
package game

import (
	"errors"
	"fmt"
	"iter"
	"math/rand"
)

var (
	ErrInvalidGeometry = errors.New("invalid board geometry")
	ErrInvalidState    = errors.New("invalid game state")
)

// Cell is a board coordinate. (0,0) is the top-left corner.
type Cell struct {
	X int
	Y int
}

// HeadingToward returns a heading that moves c closer to other. Horizontal
// distance is closed first. ok is false when the cells are equal.
func (c Cell) HeadingToward(other Cell) (h Heading, ok bool) {
	switch {
	case other.X > c.X:
		return East, true
	case other.X < c.X:
		return West, true
	case other.Y > c.Y:
		return South, true
	case other.Y < c.Y:
		return North, true
	}
	return North, false
}

// TaxicabDistance is |dx| + |dy|.
func TaxicabDistance(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// State is the complete simulation state.
// Body is ordered tail first, head last.
type State struct {
	width   int
	height  int
	target  Cell
	body    []Cell
	heading Heading
	score   int
	moves   int

	// occupied[y*width+x] is true for body cells.
	occupied []bool
}

// New builds a state from explicit parts and validates every invariant.
func New(width, height int, body []Cell, target Cell, heading Heading) (*State, error) {
	if err := checkGeometry(width, height); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidState)
	}
	if !heading.valid() {
		return nil, fmt.Errorf("%w: heading %d", ErrInvalidState, heading)
	}

	s := &State{
		width:    width,
		height:   height,
		heading:  heading,
		body:     make([]Cell, 0, len(body)+1),
		occupied: make([]bool, width*height),
	}
	for _, c := range body {
		if !s.InBounds(c) {
			return nil, fmt.Errorf("%w: body cell %v out of bounds", ErrInvalidState, c)
		}
		if s.occupied[s.index(c)] {
			return nil, fmt.Errorf("%w: body cell %v repeated", ErrInvalidState, c)
		}
		s.occupied[s.index(c)] = true
		s.body = append(s.body, c)
	}
	if !s.InBounds(target) {
		return nil, fmt.Errorf("%w: target %v out of bounds", ErrInvalidState, target)
	}
	if s.occupied[s.index(target)] {
		return nil, fmt.Errorf("%w: target %v is on the body", ErrInvalidState, target)
	}
	s.target = target
	return s, nil
}

// Random builds a state with a random target, a random single-cell body on an
// open cell and a random heading.
func Random(width, height int, rng *rand.Rand) (*State, error) {
	if err := checkGeometry(width, height); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random state needs a source of randomness")
	}

	s := &State{
		width:    width,
		height:   height,
		occupied: make([]bool, width*height),
	}
	s.target = Cell{X: rng.Intn(width), Y: rng.Intn(height)}

	head, ok := s.randomOpenCell(rng)
	if !ok {
		return nil, fmt.Errorf("%w: no room for the snake", ErrInvalidGeometry)
	}
	s.body = append(s.body, head)
	s.occupied[s.index(head)] = true
	s.heading = Headings[rng.Intn(len(Headings))]
	return s, nil
}

func checkGeometry(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d must be positive", ErrInvalidGeometry, width, height)
	}
	if width*height < 2 {
		return fmt.Errorf("%w: %dx%d cannot hold a body and a target", ErrInvalidGeometry, width, height)
	}
	return nil
}

// Clone performs a deep copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}

	out := *s
	out.body = make([]Cell, len(s.body), len(s.body)+1)
	copy(out.body, s.body)
	out.occupied = make([]bool, len(s.occupied))
	copy(out.occupied, s.occupied)
	return &out
}

func (s *State) Width() int       { return s.width }
func (s *State) Height() int      { return s.height }
func (s *State) Target() Cell     { return s.target }
func (s *State) Heading() Heading { return s.heading }
func (s *State) Score() int       { return s.score }
func (s *State) Moves() int       { return s.moves }

// Len is the number of body cells.
func (s *State) Len() int { return len(s.body) }

// Head is the last body cell.
func (s *State) Head() Cell { return s.body[len(s.body)-1] }

// Body returns a copy of the body, tail first.
func (s *State) Body() []Cell {
	out := make([]Cell, len(s.body))
	copy(out, s.body)
	return out
}

func (s *State) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < s.width && c.Y >= 0 && c.Y < s.height
}

func (s *State) index(c Cell) int { return c.Y*s.width + c.X }

// Occupant classifies c. Out-of-bounds cells report Empty.
func (s *State) Occupant(c Cell) Occupant {
	if c == s.target {
		return Target
	}
	if s.InBounds(c) && s.occupied[s.index(c)] {
		return Body
	}
	return Empty
}

// IsBody reports whether c holds part of the snake.
func (s *State) IsBody(c Cell) bool {
	return s.InBounds(c) && s.occupied[s.index(c)]
}

// OpenCells yields every cell that is neither target nor body, row-major.
func (s *State) OpenCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for y := 0; y < s.height; y++ {
			for x := 0; x < s.width; x++ {
				c := Cell{X: x, Y: y}
				if s.Occupant(c) != Empty {
					continue
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}

// OpenCount is the number of cells OpenCells yields.
func (s *State) OpenCount() int {
	n := s.width*s.height - len(s.body)
	if !s.IsBody(s.target) {
		n--
	}
	return n
}

// Neighbors returns the in-bounds cells one step away from c.
func (s *State) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for _, h := range Headings {
		if n := h.Move(c); s.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}
