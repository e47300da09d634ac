package sim

import (
	"iter"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/history"
	"github.com/san-kum/pendsim/internal/params"
)

// Renderer draws the pendulum. It is called once per tick after every
// mutation of that tick.
type Renderer interface {
	Render(f Frame)
}

// InputSource is polled exactly once per tick and returns the events that
// arrived since the previous poll, in arrival order.
type InputSource interface {
	Poll() []dynamo.Event
}

// ExportSink persists or visualises a recorded run. Export is synchronous.
type ExportSink interface {
	Export(x Export) error
}

// SinkFunc adapts a function to ExportSink.
type SinkFunc func(x Export) error

func (f SinkFunc) Export(x Export) error { return f(x) }

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f Frame)

func (r RendererFunc) Render(f Frame) { r(f) }

// Renderers fans every frame out to rs in order. Nil entries are skipped.
func Renderers(rs ...Renderer) Renderer {
	return RendererFunc(func(f Frame) {
		for _, r := range rs {
			if r != nil {
				r.Render(f)
			}
		}
	})
}

// Export is what the controller hands to an ExportSink.
type Export struct {
	Series   history.Series
	Dt       float64
	Duration float64
	Params   params.Values
}

// Times is the time axis matching Series, one entry per sample.
func (x Export) Times() iter.Seq[float64] {
	return x.Series.Times(x.Dt)
}

// Frame is a read-only snapshot of the controller for renderers.
type Frame struct {
	Tick     uint64
	Mode     dynamo.Mode
	Window   dynamo.Window
	Time     float64
	Params   params.Values
	Selected params.ID
	Held     int
	Samples  int
	Velocity float64
	Energy   float64
}

// Angle is the angle the renderer should draw.
func (f Frame) Angle() float64 { return f.Window.Cur }
