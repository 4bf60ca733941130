package game

// Heading is the absolute direction the snake is travelling.
type Heading int

const (
	North Heading = iota
	South
	East
	West
)

// Headings lists every heading in a fixed order.
var Headings = [4]Heading{North, South, East, West}

func (h Heading) valid() bool { return h >= North && h <= West }

func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// After returns the heading that results from taking action.
// Left turns cycle North -> West -> South -> East -> North, right turns the reverse.
func (h Heading) After(action Action) Heading {
	switch action {
	case TurnLeft:
		switch h {
		case North:
			return West
		case West:
			return South
		case South:
			return East
		case East:
			return North
		}
	case TurnRight:
		switch h {
		case North:
			return East
		case East:
			return South
		case South:
			return West
		case West:
			return North
		}
	}
	return h
}

// TurnTowards returns the action that turns h into other. Equal headings give
// GoStraight; ok is false only for the opposite heading.
func (h Heading) TurnTowards(other Heading) (a Action, ok bool) {
	for _, act := range Actions {
		if h.After(act) == other {
			return act, true
		}
	}
	return GoStraight, false
}

// Move returns the cell one step from c in direction h. The result may be out
// of bounds.
func (h Heading) Move(c Cell) Cell {
	switch h {
	case North:
		c.Y--
	case South:
		c.Y++
	case East:
		c.X++
	case West:
		c.X--
	}
	return c
}

// Action is a turn instruction relative to the current heading.
type Action int

const (
	GoStraight Action = iota
	TurnLeft
	TurnRight
)

// Actions lists every action. GoStraight comes first.
var Actions = [3]Action{GoStraight, TurnLeft, TurnRight}

func (a Action) String() string {
	switch a {
	case GoStraight:
		return "straight"
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return "unknown"
	}
}

// Occupant classifies a cell.
type Occupant int

const (
	Empty Occupant = iota
	Target
	Body
)

func (o Occupant) String() string {
	switch o {
	case Empty:
		return "empty"
	case Target:
		return "target"
	case Body:
		return "body"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single step.
type Outcome int

const (
	Continue Outcome = iota
	Died
	Won
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Died:
		return "died"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run is over.
func (o Outcome) Terminal() bool { return o == Died || o == Won }
