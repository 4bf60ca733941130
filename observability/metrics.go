// Package observability exposes planner metrics to Prometheus.
package observability

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PlannerCollector bundles Prometheus metrics for planning calls and game
// outcomes. It satisfies agent.Recorder.
type PlannerCollector struct {
	gatherer prometheus.Gatherer

	Plans      *prometheus.CounterVec
	Exhausted  *prometheus.CounterVec
	Expansions *prometheus.HistogramVec
	PlanLength *prometheus.HistogramVec
	Latency    *prometheus.HistogramVec
	Outcomes   *prometheus.CounterVec
}

// NewPlannerCollector registers planner metrics against reg, defaulting to
// the global Prometheus registry when nil.
func NewPlannerCollector(reg prometheus.Registerer) (*PlannerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	plans, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snek_plans_total",
		Help: "Planning calls that produced a route, labeled by agent.",
	}, []string{"agent"}))
	if err != nil {
		return nil, err
	}
	exhausted, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snek_plans_exhausted_total",
		Help: "Planning calls that found no route, labeled by agent.",
	}, []string{"agent"}))
	if err != nil {
		return nil, err
	}
	expansions, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snek_plan_expansions",
		Help:    "Search nodes popped per planning call.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"agent"}))
	if err != nil {
		return nil, err
	}
	length, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snek_plan_length",
		Help:    "Actions in each planned route.",
		Buckets: prometheus.LinearBuckets(1, 4, 16),
	}, []string{"agent"}))
	if err != nil {
		return nil, err
	}
	latency, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snek_plan_duration_seconds",
		Help:    "Wall time per planning call in seconds.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"agent"}))
	if err != nil {
		return nil, err
	}
	outcomes, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snek_games_total",
		Help: "Finished games, labeled by agent and outcome.",
	}, []string{"agent", "outcome"}))
	if err != nil {
		return nil, err
	}

	return &PlannerCollector{
		gatherer:   gatherer,
		Plans:      plans,
		Exhausted:  exhausted,
		Expansions: expansions,
		PlanLength: length,
		Latency:    latency,
		Outcomes:   outcomes,
	}, nil
}

func (c *PlannerCollector) ObservePlan(agent string, expanded, length int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Plans.WithLabelValues(agent).Inc()
	c.Expansions.WithLabelValues(agent).Observe(float64(expanded))
	c.PlanLength.WithLabelValues(agent).Observe(float64(length))
	c.Latency.WithLabelValues(agent).Observe(elapsed.Seconds())
}

func (c *PlannerCollector) ObserveExhausted(agent string) {
	if c == nil {
		return
	}
	c.Exhausted.WithLabelValues(agent).Inc()
}

// ObserveOutcome counts a finished game.
func (c *PlannerCollector) ObserveOutcome(agent, outcome string) {
	if c == nil {
		return
	}
	c.Outcomes.WithLabelValues(agent, outcome).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PlannerCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// register adds col to reg, reusing an already registered collector of the
// same type.
func register[C prometheus.Collector](reg prometheus.Registerer, col C) (C, error) {
	if err := reg.Register(col); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
			return col, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		return col, err
	}
	return col, nil
}
