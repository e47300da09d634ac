// Package sim owns the simulation state and the finite-state machine that
// decides, tick by tick, whether the pendulum advances, is paused, is being
// configured or has been stopped.
package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/history"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/params"
	"github.com/san-kum/pendsim/internal/physics"
	"go.uber.org/zap"
)

// DefaultFrequency is the reference tick rate in Hz.
const DefaultFrequency = 60

type Controller struct {
	params     *params.Store
	integrator *integrators.StormerVerlet
	recorder   *history.Recorder
	sink       ExportSink
	logger     *zap.Logger

	mode     dynamo.Mode
	window   dynamo.Window
	time     float64
	ticks    uint64
	selected params.ID
	increase bool
	decrease bool
}

type Option func(*Controller)

// WithDt fixes the timestep. Non-positive values are ignored.
func WithDt(dt float64) Option {
	return func(c *Controller) {
		if dt > 0 {
			c.integrator.Dt = dt
		}
	}
}

func WithSink(s ExportSink) Option {
	return func(c *Controller) { c.sink = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a paused controller with the window at rest at the amplitude
// held by store.
func New(store *params.Store, opts ...Option) *Controller {
	if store == nil {
		store = params.Default()
	}
	c := &Controller{
		params:     store,
		integrator: integrators.NewStormerVerlet(1.0 / DefaultFrequency),
		recorder:   history.NewRecorder(),
		logger:     zap.NewNop(),
		mode:       dynamo.Paused,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

// Tick handles events in order and then performs the per-tick work of the
// resulting mode. A Quit stops processing immediately. The returned error
// reports a failed export or a diverged step; the state machine has already
// settled in Paused when it is non-nil.
func (c *Controller) Tick(events ...dynamo.Event) error {
	if c.mode == dynamo.Terminated {
		return nil
	}

	var errs []error
	for _, ev := range events {
		if err := c.handle(ev); err != nil {
			errs = append(errs, err)
		}
		if c.mode == dynamo.Terminated {
			return errors.Join(errs...)
		}
	}

	switch c.mode {
	case dynamo.Running:
		if err := c.advance(); err != nil {
			errs = append(errs, err)
		}
	case dynamo.Configuring:
		c.params.Nudge(c.selected, c.Held())
	}
	c.ticks++

	return errors.Join(errs...)
}

func (c *Controller) handle(ev dynamo.Event) error {
	switch c.mode {
	case dynamo.Running, dynamo.Paused:
		switch ev {
		case dynamo.ToggleRun:
			if c.mode == dynamo.Running {
				c.setMode(dynamo.Paused, ev)
			} else {
				c.setMode(dynamo.Running, ev)
			}
		case dynamo.Reset:
			c.reset()
			c.setMode(dynamo.Paused, ev)
		case dynamo.EnterConfigure:
			c.release()
			c.selected = params.Gravity
			c.setMode(dynamo.Configuring, ev)
		case dynamo.Plot:
			err := c.export()
			c.setMode(dynamo.Paused, ev)
			return err
		case dynamo.Quit:
			c.setMode(dynamo.Terminated, ev)
		}
	case dynamo.Configuring:
		switch ev {
		case dynamo.SelectNext:
			c.selected = c.selected.Next()
		case dynamo.SelectPrev:
			c.selected = c.selected.Prev()
		case dynamo.IncreaseStart:
			c.increase = true
		case dynamo.IncreaseStop:
			c.increase = false
		case dynamo.DecreaseStart:
			c.decrease = true
		case dynamo.DecreaseStop:
			c.decrease = false
		case dynamo.ExitConfigure:
			c.release()
			c.reset()
			c.setMode(dynamo.Paused, ev)
		case dynamo.Quit:
			c.setMode(dynamo.Terminated, ev)
		}
	}
	return nil
}

func (c *Controller) setMode(m dynamo.Mode, ev dynamo.Event) {
	if m == c.mode {
		return
	}
	c.logger.Debug("mode change",
		zap.Stringer("from", c.mode),
		zap.Stringer("to", m),
		zap.Stringer("event", ev),
		zap.Float64("t", c.time),
	)
	c.mode = m
}

func (c *Controller) advance() error {
	before := c.window
	s := c.integrator.Step(&c.window, c.params.Values())
	if !s.IsValid() || !c.window.IsValid() {
		c.window = before
		c.setMode(dynamo.Paused, dynamo.EventUnknown)
		err := &dynamo.SimulationError{Tick: c.ticks, Time: c.time, Window: before, Wrapped: dynamo.ErrUnstable}
		c.logger.Error("integration diverged", zap.Error(err), zap.Int("samples", c.recorder.Len()))
		return err
	}
	c.recorder.Append(s)
	c.time += c.integrator.Dt
	return nil
}

func (c *Controller) export() error {
	if c.sink == nil {
		c.logger.Debug("export requested without a sink")
		return nil
	}
	x := Export{
		Series:   c.recorder.Series(),
		Dt:       c.integrator.Dt,
		Duration: c.time,
		Params:   c.params.Values(),
	}
	if err := c.sink.Export(x); err != nil {
		c.logger.Warn("export failed", zap.Error(err), zap.Int("samples", x.Series.Len()))
		return fmt.Errorf("%w: %w", dynamo.ErrExport, err)
	}
	c.logger.Info("exported run", zap.Int("samples", x.Series.Len()), zap.Float64("duration", x.Duration))
	return nil
}

func (c *Controller) reset() {
	c.window = dynamo.NewWindow(c.params.Get(params.Amplitude))
	c.time = 0
	c.recorder.Clear()
}

func (c *Controller) release() {
	c.increase = false
	c.decrease = false
}

// Held is the edit direction currently held: +1, -1 or 0.
func (c *Controller) Held() int {
	dir := 0
	if c.increase {
		dir++
	}
	if c.decrease {
		dir--
	}
	return dir
}

func (c *Controller) Mode() dynamo.Mode { return c.mode }
func (c *Controller) Window() dynamo.Window { return c.window }
func (c *Controller) Time() float64 { return c.time }
func (c *Controller) Dt() float64 { return c.integrator.Dt }
func (c *Controller) Ticks() uint64 { return c.ticks }
func (c *Controller) Selected() params.ID { return c.selected }
func (c *Controller) Params() params.Values { return c.params.Values() }
func (c *Controller) Series() history.Series { return c.recorder.Series() }
func (c *Controller) Samples() int { return c.recorder.Len() }
func (c *Controller) Terminated() bool { return c.mode == dynamo.Terminated }

// Frame snapshots the controller for a renderer.
func (c *Controller) Frame() Frame {
	v := c.params.Values()
	omega := c.window.Velocity(c.integrator.Dt)
	return Frame{
		Tick:     c.ticks,
		Mode:     c.mode,
		Window:   c.window,
		Time:     c.time,
		Params:   v,
		Selected: c.selected,
		Held:     c.Held(),
		Samples:  c.recorder.Len(),
		Velocity: omega,
		Energy:   physics.Energy(c.window.Cur, omega, v),
	}
}
