package play

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brensch/snekplan/agent"
	"github.com/brensch/snekplan/game"
)

type countingRecorder struct {
	outcomes map[string]int
}

func (c *countingRecorder) ObserveOutcome(_, outcome string) {
	if c.outcomes == nil {
		c.outcomes = map[string]int{}
	}
	c.outcomes[outcome]++
}

func TestSession_RunsToEnd(t *testing.T) {
	rec := &countingRecorder{}
	s, err := NewSession(Config{Width: 6, Height: 6, Seed: 11, MaxMoves: 3000, Recorder: rec}, agent.NewShortestPath(agent.Config{MaxExpansions: 20000}))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	finals := 0
	frames := 0
	res, err := s.Run(context.Background(), func(f Frame) {
		frames++
		if f.Final {
			finals++
		}
	})
	if err != nil && !errors.Is(err, agent.ErrPlannerExhausted) {
		t.Fatalf("Run: %v", err)
	}

	if finals != 1 {
		t.Fatalf("final frames=%d want 1", finals)
	}
	// A failed planning call still emits a frame but makes no move.
	wantFrames := res.Moves
	if err != nil {
		wantFrames++
	}
	if frames != wantFrames {
		t.Fatalf("frames=%d want %d", frames, wantFrames)
	}
	if res.Score == 0 {
		t.Fatalf("agent never ate on an open board: %+v", res)
	}
	if res.Length != res.Score+1 {
		t.Fatalf("length=%d score=%d", res.Length, res.Score)
	}
	total := 0
	for _, n := range rec.outcomes {
		total += n
	}
	if total != 1 {
		t.Fatalf("recorded outcomes=%v", rec.outcomes)
	}
	if _, err := s.Step(); !errors.Is(err, ErrFinished) {
		t.Fatalf("step after finish: %v", err)
	}
}

func TestSession_MoveLimit(t *testing.T) {
	s, err := NewSession(Config{Width: 8, Height: 8, Seed: 5, MaxMoves: 3}, agent.Greedy{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	res, err := s.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Moves > 3 {
		t.Fatalf("moves=%d beyond limit", res.Moves)
	}
	if !s.Finished() {
		t.Fatalf("session not finished")
	}
}

func TestSession_ContextCancelled(t *testing.T) {
	s, err := NewSession(Config{Width: 8, Height: 8, Seed: 5}, agent.Greedy{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
}

func TestNewSession_InvalidGeometry(t *testing.T) {
	_, err := NewSession(Config{Width: 0, Height: 4}, agent.Greedy{})
	if !errors.Is(err, game.ErrInvalidGeometry) {
		t.Fatalf("err=%v want ErrInvalidGeometry", err)
	}
}

func TestNewSessionFromState_ScoresStraightAhead(t *testing.T) {
	start, err := game.New(4, 4, []game.Cell{{X: 0, Y: 0}}, game.Cell{X: 3, Y: 0}, game.East)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	s := NewSessionFromState(Config{Seed: 1}, agent.NewShortestPath(agent.Config{}), start)
	for i := 0; i < 3; i++ {
		if _, err := s.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if got := s.Result().Score; got != 1 {
		t.Fatalf("score=%d want 1", got)
	}
	if start.Moves() != 0 {
		t.Fatalf("session mutated the caller's state")
	}
}

func TestBoard(t *testing.T) {
	st, err := game.New(3, 2, []game.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}, game.Cell{X: 2, Y: 1}, game.East)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	want := strings.Join([]string{
		"0/0",
		"#####",
		"#+> #",
		"#  *#",
		"#####",
	}, "\n")
	if got := Board(st.Snapshot()); got != want {
		t.Fatalf("board:\n%s\nwant:\n%s", got, want)
	}
	if styled := StyledBoard(st.Snapshot()); !strings.Contains(styled, "*") {
		t.Fatalf("styled board lost the target:\n%s", styled)
	}
}
