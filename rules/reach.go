package rules

import (
	"math"

	"github.com/brensch/snekplan/game"
)

// Reachable counts cells reachable from the head through non-body cells,
// the head included. It stops counting once limit is reached; limit <= 0
// counts everything.
func Reachable(state *game.State, limit int) int {
	w, h := state.Width(), state.Height()
	seen := make([]bool, w*h)
	head := state.Head()
	seen[head.Y*w+head.X] = true
	front := []game.Cell{head}
	reached := 1

	for len(front) > 0 {
		if limit > 0 && reached >= limit {
			return reached
		}
		cell := front[0]
		front = front[1:]
		for _, n := range state.Neighbors(cell) {
			i := n.Y*w + n.X
			if seen[i] || state.IsBody(n) {
				continue
			}
			seen[i] = true
			reached++
			front = append(front, n)
		}
	}
	return reached
}

// Distances returns breadth-first step counts from `from` to every cell,
// moving only through non-body cells. Unreachable cells hold -1. The slice
// is indexed y*width+x.
func Distances(state *game.State, from game.Cell) []int {
	w, h := state.Width(), state.Height()
	dist := make([]int, w*h)
	for i := range dist {
		dist[i] = -1
	}
	dist[from.Y*w+from.X] = 0
	front := []game.Cell{from}

	for len(front) > 0 {
		cell := front[0]
		front = front[1:]
		d := dist[cell.Y*w+cell.X]
		for _, n := range state.Neighbors(cell) {
			i := n.Y*w + n.X
			if dist[i] >= 0 || state.IsBody(n) {
				continue
			}
			dist[i] = d + 1
			front = append(front, n)
		}
	}
	return dist
}

// AverageDistance is the exact mean breadth-first distance from the head to
// every non-body cell. It is +Inf when any of them is unreachable and 0 when
// there are none.
func AverageDistance(state *game.State) float64 {
	w, h := state.Width(), state.Height()
	dist := Distances(state, state.Head())

	total, count := 0, 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := game.Cell{X: x, Y: y}
			if state.IsBody(c) {
				continue
			}
			d := dist[y*w+x]
			if d < 0 {
				return math.Inf(1)
			}
			total += d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// BestCaseAverage is a lower bound on AverageDistance for the state reached
// right after the snake eats the current target.
//
// After eating, the head sits on the target and exactly OpenCount cells are
// free, wherever the body ends up. Breadth-first distance is never below
// taxicab distance, so the mean of the OpenCount smallest taxicab distances
// from the target to any other cell can never exceed the real average.
func BestCaseAverage(state *game.State) float64 {
	n := state.OpenCount()
	if n == 0 {
		return 0
	}

	w, h := state.Width(), state.Height()
	target := state.Target()
	counts := make([]int, w+h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			counts[game.TaxicabDistance(target, game.Cell{X: x, Y: y})]++
		}
	}

	total, remaining := 0, n
	for d := 1; d < len(counts) && remaining > 0; d++ {
		take := min(counts[d], remaining)
		total += take * d
		remaining -= take
	}
	return float64(total) / float64(n)
}
