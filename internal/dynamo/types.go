package dynamo

import (
	"math"
	"strings"
)

// Window holds three consecutive angle samples in radians: the previous,
// current and next instant of a three-point integrator.
type Window struct {
	Prev float64
	Cur  float64
	Next float64
}

// NewWindow returns a window at rest at angle theta.
func NewWindow(theta float64) Window {
	return Window{Prev: theta, Cur: theta, Next: theta}
}

// Velocity is the central difference (Next-Prev)/(2dt).
func (w Window) Velocity(dt float64) float64 {
	return (w.Next - w.Prev) / (2 * dt)
}

// IsValid reports whether every slot is finite.
func (w Window) IsValid() bool {
	return finite(w.Prev) && finite(w.Cur) && finite(w.Next)
}

// Sample is one recorded simulated instant.
type Sample struct {
	Angle        float64
	Velocity     float64
	Acceleration float64
}

func (s Sample) IsValid() bool {
	return finite(s.Angle) && finite(s.Velocity) && finite(s.Acceleration)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Mode is a resting state of the simulation controller.
type Mode int

const (
	Paused Mode = iota
	Running
	Configuring
	Terminated
)

func (m Mode) String() string {
	switch m {
	case Paused:
		return "PAUSED"
	case Running:
		return "RUNNING"
	case Configuring:
		return "CONFIGURING"
	case Terminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Event is a discrete operator input. Events are delivered in batches, one
// batch per tick, and handled in arrival order.
type Event int

const (
	EventUnknown Event = iota
	ToggleRun
	Reset
	EnterConfigure
	ExitConfigure
	Quit
	SelectNext
	SelectPrev
	IncreaseStart
	IncreaseStop
	DecreaseStart
	DecreaseStop
	Plot
)

var eventNames = map[Event]string{
	ToggleRun:      "toggle-run",
	Reset:          "reset",
	EnterConfigure: "enter-configure",
	ExitConfigure:  "exit-configure",
	Quit:           "quit",
	SelectNext:     "select-next",
	SelectPrev:     "select-prev",
	IncreaseStart:  "increase-start",
	IncreaseStop:   "increase-stop",
	DecreaseStart:  "decrease-start",
	DecreaseStop:   "decrease-stop",
	Plot:           "plot",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEvent maps an event name to its Event. Names are case-insensitive and
// accept underscores in place of dashes. Unrecognised names yield EventUnknown
// and false.
func ParseEvent(name string) (Event, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for ev, n := range eventNames {
		if n == key {
			return ev, true
		}
	}
	return EventUnknown, false
}

// EventNames lists every known event name in declaration order.
func EventNames() []string {
	names := make([]string, 0, len(eventNames))
	for ev := ToggleRun; ev <= Plot; ev++ {
		names = append(names, eventNames[ev])
	}
	return names
}
