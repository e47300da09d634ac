package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/params"
	"github.com/san-kum/pendsim/internal/sim"
)

const scenarioYAML = `
name: swing
params:
  drag: 0
  amplitude: 0.2
events:
  - {tick: 0, event: toggle-run}
  - {tick: 10, event: plot}
  - {tick: 12, event: quit}
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "swing" || len(sc.Events) != 3 {
		t.Errorf("unexpected scenario %+v", sc)
	}
	if sc.Limit() != 13 {
		t.Errorf("expected limit 13, got %d", sc.Limit())
	}
}

func TestLoadScenarioInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown param", "params: {spring: 1}\n"},
		{"negative tick", "events: [{tick: -1, event: quit}]\n"},
		{"negative limit", "ticks: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestScriptPoll(t *testing.T) {
	s := NewScript([]ScriptedEvent{
		{Tick: 2, Event: "reset"},
		{Tick: 0, Event: "toggle-run"},
		{Tick: 2, Event: "bogus"},
		{Tick: 2, Event: "quit"},
	})

	want := [][]dynamo.Event{
		{dynamo.ToggleRun},
		nil,
		{dynamo.Reset, dynamo.EventUnknown, dynamo.Quit},
	}
	for i, w := range want {
		if s.Done() {
			t.Fatalf("done too early at tick %d", i)
		}
		got := s.Poll()
		if len(got) != len(w) {
			t.Fatalf("tick %d: expected %v, got %v", i, w, got)
		}
		for j := range w {
			if got[j] != w[j] {
				t.Errorf("tick %d event %d: expected %v, got %v", i, j, w[j], got[j])
			}
		}
	}
	if !s.Done() {
		t.Error("expected script done")
	}
	if s.Poll() != nil {
		t.Error("expected no events after the script")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	var exports []sim.Export
	sink := sim.SinkFunc(func(x sim.Export) error {
		exports = append(exports, x)
		return nil
	})

	ctrl, err := Run(context.Background(), sc, params.Default(), nil, nil, sim.WithSink(sink))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !ctrl.Terminated() {
		t.Error("expected controller terminated by the quit event")
	}
	if ctrl.Params().Get(params.Drag) != 0 {
		t.Error("expected scenario params applied")
	}
	if len(exports) != 1 {
		t.Fatalf("expected one export, got %d", len(exports))
	}
	if exports[0].Series.Len() != 10 {
		t.Errorf("expected 10 samples before plot, got %d", exports[0].Series.Len())
	}
	if exports[0].Series.Angle[0] != 0.2 {
		t.Errorf("expected first sample at the scenario amplitude, got %v", exports[0].Series.Angle[0])
	}
}

func TestRunScenarioRealtime(t *testing.T) {
	sc := &Scenario{
		Name:     "wall-clock",
		Realtime: true,
		Events: []ScriptedEvent{
			{Tick: 0, Event: "toggle-run"},
			{Tick: 4, Event: "quit"},
		},
	}
	ctrl, err := Run(context.Background(), sc, params.Default(), nil, nil, sim.WithDt(0.001))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !ctrl.Terminated() || ctrl.Samples() != 4 {
		t.Errorf("expected 4 samples then quit, got %d samples in %v", ctrl.Samples(), ctrl.Mode())
	}
}

func TestRunScenarioRealtimeRejectsTinyStep(t *testing.T) {
	sc := &Scenario{Realtime: true, Events: []ScriptedEvent{{Tick: 0, Event: "toggle-run"}}}
	_, err := Run(context.Background(), sc, params.Default(), nil, nil, sim.WithDt(1e-12))
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
