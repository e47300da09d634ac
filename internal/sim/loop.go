package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/pendsim/internal/dynamo"
	"go.uber.org/zap"
)

// Loop drives a Controller: one input poll, one controller tick and one
// render per tick.
type Loop struct {
	ctrl     *Controller
	input    InputSource
	renderer Renderer
	logger   *zap.Logger
}

// NewLoop wires the collaborators. input and renderer may be nil.
func NewLoop(ctrl *Controller, input InputSource, renderer Renderer, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{ctrl: ctrl, input: input, renderer: renderer, logger: logger}
}

// Run ticks in real time at the controller's timestep until Quit or until
// limit ticks have elapsed; limit <= 0 means no limit. A cancelled context is
// turned into a Quit on the next tick boundary and reported as ctx.Err().
func (l *Loop) Run(ctx context.Context, limit int) error {
	period := time.Duration(l.ctrl.Dt() * float64(time.Second))
	if period <= 0 {
		return fmt.Errorf("%w: timestep %gs is below the clock resolution", dynamo.ErrInvalidConfig, l.ctrl.Dt())
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var errs []error
	for i := 0; !l.ctrl.Terminated() && (limit <= 0 || i < limit); i++ {
		select {
		case <-ctx.Done():
			l.tick(dynamo.Quit)
			return errors.Join(append(errs, ctx.Err())...)
		case <-ticker.C:
		}
		if err := l.tick(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunTicks ticks as fast as possible until Quit or until limit ticks have
// elapsed; limit <= 0 means no limit.
func (l *Loop) RunTicks(ctx context.Context, limit int) error {
	var errs []error
	for i := 0; !l.ctrl.Terminated() && (limit <= 0 || i < limit); i++ {
		select {
		case <-ctx.Done():
			l.tick(dynamo.Quit)
			return errors.Join(append(errs, ctx.Err())...)
		default:
		}

		if err := l.tick(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Step performs one tick. Frontends that run their own frame clock call it
// once per frame.
func (l *Loop) Step() error {
	return l.tick()
}

func (l *Loop) tick(extra ...dynamo.Event) error {
	var events []dynamo.Event
	if l.input != nil {
		events = l.input.Poll()
	}
	events = append(events, extra...)

	err := l.ctrl.Tick(events...)
	if err != nil {
		l.logger.Warn("tick failed", zap.Uint64("tick", l.ctrl.Ticks()), zap.Error(err))
	}
	if l.renderer != nil {
		l.renderer.Render(l.ctrl.Frame())
	}
	return err
}
