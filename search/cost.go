package search

import (
	"fmt"
	"math"
)

// Cost is a finite float64 with a total order, usable as a queue key.
type Cost struct {
	v float64
}

// NewCost wraps f. A NaN or infinite cost means a ranking function is
// broken, so NewCost panics instead of letting the queue misorder it.
func NewCost(f float64) Cost {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("search: non-finite cost %v", f))
	}
	return Cost{v: f}
}

func (c Cost) Float() float64 { return c.v }

func (c Cost) Compare(other Cost) int {
	switch {
	case c.v < other.v:
		return -1
	case c.v > other.v:
		return 1
	default:
		return 0
	}
}

func (c Cost) String() string { return fmt.Sprintf("%g", c.v) }
