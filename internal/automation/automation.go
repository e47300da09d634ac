// Package automation drives the simulation from scripted YAML scenarios.
package automation

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/params"
	"github.com/san-kum/pendsim/internal/sim"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted run.
//
//	name: swing-and-save
//	params: {drag: 0}
//	ticks: 700
//	realtime: false
//	events:
//	  - {tick: 0, event: toggle-run}
//	  - {tick: 600, event: plot}
//	  - {tick: 601, event: quit}
type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Params      map[string]float64 `yaml:"params"`
	Ticks       int                `yaml:"ticks"`
	Realtime    bool               `yaml:"realtime"`
	Events      []ScriptedEvent    `yaml:"events"`
}

// ScriptedEvent delivers Event at the start of tick Tick, counting from 0.
type ScriptedEvent struct {
	Tick  int    `yaml:"tick"`
	Event string `yaml:"event"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &scenario, nil
}

// Validate checks parameter names and event ticks. Event names are not
// checked; unknown names reach the controller as EventUnknown and are
// ignored there.
func (s *Scenario) Validate() error {
	for name := range s.Params {
		if _, err := params.ParseID(name); err != nil {
			return fmt.Errorf("%w: %w", dynamo.ErrInvalidConfig, err)
		}
	}
	for i, ev := range s.Events {
		if ev.Tick < 0 {
			return fmt.Errorf("%w: event %d has negative tick %d", dynamo.ErrInvalidConfig, i, ev.Tick)
		}
	}
	if s.Ticks < 0 {
		return fmt.Errorf("%w: negative tick limit %d", dynamo.ErrInvalidConfig, s.Ticks)
	}
	return nil
}

// Apply writes the scenario's parameters into store.
func (s *Scenario) Apply(store *params.Store) {
	for name, v := range s.Params {
		if id, err := params.ParseID(name); err == nil {
			store.Set(id, v)
		}
	}
}

// Limit is the number of ticks to run: Ticks when set, otherwise one past
// the last scripted event.
func (s *Scenario) Limit() int {
	if s.Ticks > 0 {
		return s.Ticks
	}
	last := -1
	for _, ev := range s.Events {
		last = max(last, ev.Tick)
	}
	return last + 1
}

// Script replays a scenario's events as a sim.InputSource. Events sharing a
// tick are delivered in file order.
type Script struct {
	byTick map[int][]dynamo.Event
	tick   int
	last   int
}

func NewScript(events []ScriptedEvent) *Script {
	sorted := make([]ScriptedEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tick < sorted[j].Tick })

	s := &Script{byTick: make(map[int][]dynamo.Event), last: -1}
	for _, ev := range sorted {
		e, _ := dynamo.ParseEvent(ev.Event)
		s.byTick[ev.Tick] = append(s.byTick[ev.Tick], e)
		s.last = max(s.last, ev.Tick)
	}
	return s
}

// Poll implements sim.InputSource.
func (s *Script) Poll() []dynamo.Event {
	events := s.byTick[s.tick]
	s.tick++
	return events
}

// Done reports whether every scripted event has been delivered.
func (s *Script) Done() bool { return s.tick > s.last }

// Run executes scenario against a fresh controller built on store.
func Run(ctx context.Context, scenario *Scenario, store *params.Store, renderer sim.Renderer, logger *zap.Logger, opts ...sim.Option) (*sim.Controller, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scenario.Apply(store)

	ctrl := sim.New(store, append(opts, sim.WithLogger(logger))...)
	script := NewScript(scenario.Events)
	loop := sim.NewLoop(ctrl, script, renderer, logger)

	logger.Info("scenario start",
		zap.String("name", scenario.Name),
		zap.Int("events", len(scenario.Events)),
		zap.Int("ticks", scenario.Limit()),
		zap.Bool("realtime", scenario.Realtime))

	limit := scenario.Limit()
	if limit == 0 {
		return ctrl, nil
	}
	var err error
	if scenario.Realtime {
		err = loop.Run(ctx, limit)
	} else {
		err = loop.RunTicks(ctx, limit)
	}

	logger.Info("scenario done",
		zap.String("name", scenario.Name),
		zap.Uint64("ticks", ctrl.Ticks()),
		zap.Int("samples", ctrl.Samples()),
		zap.Stringer("mode", ctrl.Mode()))
	return ctrl, err
}
