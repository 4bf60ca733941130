package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brensch/snekplan/agent"
	"github.com/brensch/snekplan/logging"
	"github.com/brensch/snekplan/observability"
	"github.com/brensch/snekplan/play"
	tea "github.com/charmbracelet/bubbletea"
)

type options struct {
	width, height int
	agentName     string
	seed          int64
	tick          time.Duration
	headless      bool
	games         int
	maxMoves      int
	maxExpansions int
	logLevel      string
	logFormat     string
	logFile       string
	metricsAddr   string
}

func newAgent(name string, cfg agent.Config) (agent.Agent, error) {
	switch name {
	case "mobility":
		return agent.NewMobility(cfg), nil
	case "shortest":
		return agent.NewShortestPath(cfg), nil
	case "greedy":
		return agent.Greedy{}, nil
	default:
		return nil, fmt.Errorf("unknown agent %q (want mobility, shortest or greedy)", name)
	}
}

func main() {
	var opts options
	flag.IntVar(&opts.width, "width", 32, "Board width")
	flag.IntVar(&opts.height, "height", 18, "Board height")
	flag.StringVar(&opts.agentName, "agent", "mobility", "Agent: mobility, shortest or greedy")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	flag.DurationVar(&opts.tick, "tick", 50*time.Millisecond, "Delay between rendered ticks")
	flag.BoolVar(&opts.headless, "headless", false, "Run without the terminal UI and print results")
	flag.IntVar(&opts.games, "games", 1, "Games to play in headless mode")
	flag.IntVar(&opts.maxMoves, "max-moves", 0, "Stop a game after this many moves (0 = no limit)")
	flag.IntVar(&opts.maxExpansions, "max-expansions", 200000,
		"Cap on search nodes per planning call (0 = no cap). The search runs over whole body layouts, "+
			"so on large boards a long snake can exhaust the cap on solvable positions and the game ends as died; "+
			"raising it costs memory roughly in proportion")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&opts.logFormat, "log-format", "text", "Log format: text, json or pretty")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file (the terminal UI discards logs unless set)")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func newLogger(opts options) (*slog.Logger, func() error, error) {
	var out io.Writer = os.Stderr
	closeFn := func() error { return nil }
	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closeFn = f, f.Close
	case !opts.headless:
		// Anything on stderr would tear through the board.
		out = io.Discard
	}

	logger, err := logging.New(logging.Config{Level: opts.logLevel, Format: opts.logFormat, Output: out})
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("set up logging: %w", err)
	}
	return logger, closeFn, nil
}

func run(opts options) error {
	logger, closeLog, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var collector *observability.PlannerCollector
	if opts.metricsAddr != "" {
		collector, err = observability.NewPlannerCollector(nil)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		srv := &http.Server{Addr: opts.metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", slog.String("error", err.Error()))
			}
		}()
		defer srv.Close()
	}

	agentCfg := agent.Config{MaxExpansions: opts.maxExpansions, Logger: logger}
	sessionCfg := play.Config{Width: opts.width, Height: opts.height, Seed: opts.seed, MaxMoves: opts.maxMoves, Logger: logger}
	if collector != nil {
		agentCfg.Recorder = collector
		sessionCfg.Recorder = collector
	}

	if !opts.headless {
		a, err := newAgent(opts.agentName, agentCfg)
		if err != nil {
			return err
		}
		session, err := play.NewSession(sessionCfg, a)
		if err != nil {
			return fmt.Errorf("start game: %w", err)
		}
		p := tea.NewProgram(initialModel(session, opts.tick), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	}

	for i := 0; i < opts.games; i++ {
		if ctx.Err() != nil {
			break
		}
		// Agents cache plans, so every game gets a fresh one.
		a, err := newAgent(opts.agentName, agentCfg)
		if err != nil {
			return err
		}
		cfg := sessionCfg
		if cfg.Seed != 0 {
			cfg.Seed += int64(i)
		}
		session, err := play.NewSession(cfg, a)
		if err != nil {
			return fmt.Errorf("start game: %w", err)
		}

		res, err := session.Run(ctx, nil)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("game ended early", slog.String("session", res.SessionID), slog.String("error", err.Error()))
		}
		fmt.Println(play.Board(session.Snapshot()))
		fmt.Printf("game %d: agent=%s outcome=%s score=%d moves=%d seed=%d\n",
			i+1, res.Agent, res.Outcome, res.Score, res.Moves, session.Seed)
	}
	return nil
}
