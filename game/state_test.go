package game

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

// dumpState is a test helper to visualize board state.
func dumpState(s *State) string {
	var sb strings.Builder
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := Cell{X: x, Y: y}
			switch {
			case c == s.Head():
				sb.WriteByte('H')
			case s.IsBody(c):
				sb.WriteByte('o')
			case c == s.Target():
				sb.WriteByte('*')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func mustNew(t testing.TB, width, height int, body []Cell, target Cell, heading Heading) *State {
	t.Helper()
	s, err := New(width, height, body, target, heading)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func checkInvariants(t *testing.T, s *State) {
	t.Helper()
	seen := make(map[Cell]bool)
	for _, c := range s.Body() {
		if !s.InBounds(c) {
			t.Fatalf("body cell %v out of bounds\n%s", c, dumpState(s))
		}
		if seen[c] {
			t.Fatalf("body cell %v repeated\n%s", c, dumpState(s))
		}
		seen[c] = true
	}
	// A won board is full: the last target stays under the head.
	won := s.Len() == s.Width()*s.Height()
	if seen[s.Target()] && !(won && s.Target() == s.Head()) {
		t.Fatalf("target %v on body\n%s", s.Target(), dumpState(s))
	}
}

func TestHeadingAfter_TurnsCancel(t *testing.T) {
	for _, h := range Headings {
		if got := h.After(GoStraight); got != h {
			t.Fatalf("%v after straight = %v", h, got)
		}
		if got := h.After(TurnLeft).After(TurnRight); got != h {
			t.Fatalf("%v left then right = %v", h, got)
		}
		if got := h.After(TurnRight).After(TurnLeft); got != h {
			t.Fatalf("%v right then left = %v", h, got)
		}
	}
}

func TestHeadingAfter_IsBijection(t *testing.T) {
	for _, a := range Actions {
		seen := make(map[Heading]bool)
		for _, h := range Headings {
			seen[h.After(a)] = true
		}
		if len(seen) != 4 {
			t.Fatalf("action %v maps onto %d headings, want 4", a, len(seen))
		}
	}
	if got := North.After(TurnLeft); got != West {
		t.Fatalf("north left = %v want west", got)
	}
	if got := North.After(TurnRight); got != East {
		t.Fatalf("north right = %v want east", got)
	}
}

func TestTurnTowards_AllPairs(t *testing.T) {
	opposite := map[Heading]Heading{North: South, South: North, East: West, West: East}
	for _, from := range Headings {
		for _, to := range Headings {
			a, ok := from.TurnTowards(to)
			switch {
			case from == to:
				if !ok || a != GoStraight {
					t.Fatalf("%v->%v = %v,%v want straight", from, to, a, ok)
				}
			case opposite[from] == to:
				if ok {
					t.Fatalf("%v->%v = %v, want no single action", from, to, a)
				}
			default:
				if !ok || from.After(a) != to {
					t.Fatalf("%v->%v = %v,%v", from, to, a, ok)
				}
				if a == GoStraight {
					t.Fatalf("%v->%v chose straight", from, to)
				}
			}
		}
	}
}

func TestNew_RejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		w, h    int
		body    []Cell
		target  Cell
		wantErr error
	}{
		{"zero width", 0, 4, []Cell{{0, 0}}, Cell{1, 0}, ErrInvalidGeometry},
		{"negative height", 4, -1, []Cell{{0, 0}}, Cell{1, 0}, ErrInvalidGeometry},
		{"single cell", 1, 1, []Cell{{0, 0}}, Cell{0, 0}, ErrInvalidGeometry},
		{"empty body", 4, 4, nil, Cell{1, 0}, ErrInvalidState},
		{"body out of bounds", 4, 4, []Cell{{4, 0}}, Cell{1, 0}, ErrInvalidState},
		{"repeated body", 4, 4, []Cell{{0, 0}, {0, 0}}, Cell{1, 0}, ErrInvalidState},
		{"target on body", 4, 4, []Cell{{0, 0}, {1, 0}}, Cell{1, 0}, ErrInvalidState},
		{"target out of bounds", 4, 4, []Cell{{0, 0}}, Cell{0, 9}, ErrInvalidState},
	}
	for _, tc := range cases {
		_, err := New(tc.w, tc.h, tc.body, tc.target, East)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: err=%v want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestRandom_RejectsInvalidGeometry(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Random(1, 1, rng); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("err=%v want ErrInvalidGeometry", err)
	}
	if _, err := Random(0, 5, rng); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("err=%v want ErrInvalidGeometry", err)
	}
}

func TestStep_NormalMove(t *testing.T) {
	s := mustNew(t, 5, 5, []Cell{{1, 2}, {2, 2}}, Cell{4, 4}, East)

	if out := s.Step(GoStraight, nil); out != Continue {
		t.Fatalf("outcome=%v want continue", out)
	}

	want := []Cell{{2, 2}, {3, 2}}
	got := s.Body()
	if len(got) != len(want) {
		t.Fatalf("body len=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body[%d]=%v want=%v\n%s", i, got[i], want[i], dumpState(s))
		}
	}
	if s.IsBody(Cell{1, 2}) {
		t.Fatalf("old tail still occupied")
	}
	if s.Moves() != 1 || s.Score() != 0 {
		t.Fatalf("moves=%d score=%d", s.Moves(), s.Score())
	}
}

func TestStep_EatTarget_GrowsAndRelocates(t *testing.T) {
	s := mustNew(t, 5, 5, []Cell{{1, 2}, {2, 2}}, Cell{3, 2}, East)

	if out := s.Step(GoStraight, rand.New(rand.NewSource(7))); out != Continue {
		t.Fatalf("outcome=%v want continue", out)
	}
	if s.Score() != 1 {
		t.Fatalf("score=%d want 1", s.Score())
	}
	want := []Cell{{1, 2}, {2, 2}, {3, 2}}
	got := s.Body()
	if len(got) != len(want) {
		t.Fatalf("body len=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body[%d]=%v want=%v", i, got[i], want[i])
		}
	}
	checkInvariants(t, s)
}

func TestStep_WallDeath_LeavesBody(t *testing.T) {
	s := mustNew(t, 3, 3, []Cell{{1, 0}}, Cell{2, 2}, East)

	if out := s.Step(TurnLeft, nil); out != Died {
		t.Fatalf("outcome=%v want died", out)
	}
	if s.Heading() != North {
		t.Fatalf("heading=%v want north", s.Heading())
	}
	if s.Head() != (Cell{1, 0}) {
		t.Fatalf("head moved to %v", s.Head())
	}
	if s.Moves() != 1 {
		t.Fatalf("moves=%d want 1", s.Moves())
	}
}

func TestStep_IntoTail_Dies(t *testing.T) {
	// Tail is still occupied when the head arrives.
	s := mustNew(t, 4, 4, []Cell{{1, 0}, {2, 0}, {2, 1}, {1, 1}}, Cell{3, 3}, West)

	if out := s.Step(TurnRight, nil); out != Died {
		t.Fatalf("outcome=%v want died\n%s", out, dumpState(s))
	}
	if s.Len() != 4 {
		t.Fatalf("len=%d want 4", s.Len())
	}
}

func TestStep_FillingBoard_Wins(t *testing.T) {
	s := mustNew(t, 3, 1, []Cell{{0, 0}}, Cell{1, 0}, East)

	if out := s.Step(GoStraight, nil); out != Continue {
		t.Fatalf("first outcome=%v want continue", out)
	}
	if s.Target() != (Cell{2, 0}) {
		t.Fatalf("target=%v want only open cell", s.Target())
	}
	if out := s.Step(GoStraight, nil); out != Won {
		t.Fatalf("second outcome=%v want won", out)
	}
	if s.Score() != 2 || s.Len() != 3 {
		t.Fatalf("score=%d len=%d", s.Score(), s.Len())
	}
	if s.Target() != s.Head() {
		t.Fatalf("target=%v want it left under the head %v", s.Target(), s.Head())
	}
	if s.OpenCount() != 0 {
		t.Fatalf("open=%d want 0", s.OpenCount())
	}
	checkInvariants(t, s)
}

func TestStep_NilRngIsReproducible(t *testing.T) {
	a := mustNew(t, 6, 6, []Cell{{0, 0}}, Cell{1, 0}, East)
	b := a.Clone()

	a.Step(GoStraight, nil)
	b.Step(GoStraight, nil)
	if a.Target() != b.Target() {
		t.Fatalf("targets differ: %v vs %v", a.Target(), b.Target())
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	s := mustNew(t, 5, 5, []Cell{{0, 0}, {1, 0}}, Cell{4, 4}, East)
	c := s.Clone()
	c.Step(GoStraight, nil)

	if s.Head() != (Cell{1, 0}) || s.Moves() != 0 {
		t.Fatalf("original mutated: head=%v moves=%d", s.Head(), s.Moves())
	}
	if !s.IsBody(Cell{0, 0}) {
		t.Fatalf("original occupancy mutated")
	}
}

func TestOpenCells_RowMajorAndRestartable(t *testing.T) {
	s := mustNew(t, 3, 2, []Cell{{0, 0}}, Cell{2, 0}, East)

	want := []Cell{{1, 0}, {0, 1}, {1, 1}, {2, 1}}
	for pass := 0; pass < 2; pass++ {
		var got []Cell
		for c := range s.OpenCells() {
			got = append(got, c)
		}
		if len(got) != len(want) {
			t.Fatalf("pass %d: got %v want %v", pass, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("pass %d: got %v want %v", pass, got, want)
			}
		}
	}
	if s.OpenCount() != len(want) {
		t.Fatalf("OpenCount=%d want %d", s.OpenCount(), len(want))
	}
}

func TestNeighbors_Corner(t *testing.T) {
	s := mustNew(t, 3, 3, []Cell{{1, 1}}, Cell{2, 2}, East)
	if n := s.Neighbors(Cell{0, 0}); len(n) != 2 {
		t.Fatalf("corner neighbors=%v", n)
	}
	if n := s.Neighbors(Cell{1, 1}); len(n) != 4 {
		t.Fatalf("center neighbors=%v", n)
	}
}

func TestTaxicabDistance(t *testing.T) {
	if d := TaxicabDistance(Cell{0, 0}, Cell{3, 4}); d != 7 {
		t.Fatalf("distance=%d want 7", d)
	}
	if d := TaxicabDistance(Cell{3, 4}, Cell{0, 0}); d != 7 {
		t.Fatalf("distance=%d want 7", d)
	}
}

func TestRandomPlay_KeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		s, err := Random(6, 5, rng)
		if err != nil {
			t.Fatalf("Random: %v", err)
		}
		checkInvariants(t, s)
		for i := 0; i < 200; i++ {
			out := s.Step(Actions[rng.Intn(len(Actions))], rng)
			if out != Continue {
				break
			}
			checkInvariants(t, s)
		}
	}
}

func TestSnapshot_CopiesBody(t *testing.T) {
	s := mustNew(t, 4, 4, []Cell{{0, 0}, {1, 0}}, Cell{3, 3}, East)
	snap := s.Snapshot()
	snap.Body[0] = Cell{3, 0}

	if !s.IsBody(Cell{0, 0}) {
		t.Fatalf("snapshot aliases state body")
	}
	if snap.Head != (Cell{1, 0}) || snap.Occupant(Cell{3, 3}) != Target {
		t.Fatalf("snapshot head=%v", snap.Head)
	}
}
