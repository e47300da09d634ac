package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/params"
	"github.com/san-kum/pendsim/internal/sim"
)

// enter drives a fresh controller into mode m.
func enter(c *sim.Controller, m dynamo.Mode) {
	switch m {
	case dynamo.Running:
		Expect(c.Tick(dynamo.ToggleRun)).To(Succeed())
	case dynamo.Configuring:
		Expect(c.Tick(dynamo.EnterConfigure)).To(Succeed())
	case dynamo.Terminated:
		Expect(c.Tick(dynamo.Quit)).To(Succeed())
	}
	Expect(c.Mode()).To(Equal(m))
}

type queue struct {
	batches [][]dynamo.Event
	polls   int
}

func (q *queue) Poll() []dynamo.Event {
	q.polls++
	if len(q.batches) == 0 {
		return nil
	}
	b := q.batches[0]
	q.batches = q.batches[1:]
	return b
}

var _ = Describe("Controller", func() {
	var c *sim.Controller

	BeforeEach(func() {
		c = sim.New(params.Default())
	})

	DescribeTable("transition table",
		func(from dynamo.Mode, ev dynamo.Event, to dynamo.Mode) {
			enter(c, from)
			Expect(c.Tick(ev)).To(Succeed())
			Expect(c.Mode()).To(Equal(to))
		},
		Entry("running toggle-run", dynamo.Running, dynamo.ToggleRun, dynamo.Paused),
		Entry("paused toggle-run", dynamo.Paused, dynamo.ToggleRun, dynamo.Running),
		Entry("running reset", dynamo.Running, dynamo.Reset, dynamo.Paused),
		Entry("paused reset", dynamo.Paused, dynamo.Reset, dynamo.Paused),
		Entry("running enter-configure", dynamo.Running, dynamo.EnterConfigure, dynamo.Configuring),
		Entry("paused enter-configure", dynamo.Paused, dynamo.EnterConfigure, dynamo.Configuring),
		Entry("configuring exit-configure", dynamo.Configuring, dynamo.ExitConfigure, dynamo.Paused),
		Entry("running plot", dynamo.Running, dynamo.Plot, dynamo.Paused),
		Entry("paused plot", dynamo.Paused, dynamo.Plot, dynamo.Paused),
		Entry("running quit", dynamo.Running, dynamo.Quit, dynamo.Terminated),
		Entry("paused quit", dynamo.Paused, dynamo.Quit, dynamo.Terminated),
		Entry("configuring quit", dynamo.Configuring, dynamo.Quit, dynamo.Terminated),
		Entry("configuring select-next", dynamo.Configuring, dynamo.SelectNext, dynamo.Configuring),
		Entry("configuring increase-start", dynamo.Configuring, dynamo.IncreaseStart, dynamo.Configuring),
	)

	DescribeTable("ignored events",
		func(from dynamo.Mode, ev dynamo.Event) {
			enter(c, from)
			before := c.Frame()
			Expect(c.Tick(ev)).To(Succeed())
			after := c.Frame()
			Expect(after.Mode).To(Equal(before.Mode))
			Expect(after.Params).To(Equal(before.Params))
			Expect(after.Selected).To(Equal(before.Selected))
		},
		Entry("configuring toggle-run", dynamo.Configuring, dynamo.ToggleRun),
		Entry("configuring reset", dynamo.Configuring, dynamo.Reset),
		Entry("configuring plot", dynamo.Configuring, dynamo.Plot),
		Entry("configuring enter-configure", dynamo.Configuring, dynamo.EnterConfigure),
		Entry("paused exit-configure", dynamo.Paused, dynamo.ExitConfigure),
		Entry("paused select-next", dynamo.Paused, dynamo.SelectNext),
		Entry("paused increase-start", dynamo.Paused, dynamo.IncreaseStart),
		Entry("paused unknown", dynamo.Paused, dynamo.EventUnknown),
		Entry("terminated toggle-run", dynamo.Terminated, dynamo.ToggleRun),
		Entry("terminated enter-configure", dynamo.Terminated, dynamo.EnterConfigure),
	)

	Describe("parameter cursor", func() {
		It("wraps over the seven parameters", func() {
			enter(c, dynamo.Configuring)
			Expect(c.Selected()).To(Equal(params.Gravity))

			Expect(c.Tick(dynamo.SelectPrev)).To(Succeed())
			Expect(c.Selected()).To(Equal(params.Amplitude))

			for i := 0; i < params.Count; i++ {
				Expect(c.Tick(dynamo.SelectNext)).To(Succeed())
			}
			Expect(c.Selected()).To(Equal(params.Amplitude))
		})

		It("keeps a held direction until the matching stop event", func() {
			enter(c, dynamo.Configuring)
			Expect(c.Tick(dynamo.SelectNext, dynamo.SelectNext, dynamo.DecreaseStart)).To(Succeed())
			mass := c.Params()[params.Mass]

			for i := 0; i < 4; i++ {
				Expect(c.Tick()).To(Succeed())
			}
			Expect(c.Params()[params.Mass]).To(BeNumerically("~", mass-4*params.SpecOf(params.Mass).Step, 1e-12))

			Expect(c.Tick(dynamo.DecreaseStop)).To(Succeed())
			held := c.Params()[params.Mass]
			Expect(c.Tick()).To(Succeed())
			Expect(c.Params()[params.Mass]).To(Equal(held))
		})

		It("releases held keys when configuration ends", func() {
			enter(c, dynamo.Configuring)
			Expect(c.Tick(dynamo.IncreaseStart, dynamo.ExitConfigure)).To(Succeed())
			Expect(c.Held()).To(BeZero())

			Expect(c.Tick(dynamo.EnterConfigure)).To(Succeed())
			Expect(c.Held()).To(BeZero())
		})
	})

	Describe("loop", func() {
		It("polls once per tick and stops on quit", func() {
			q := &queue{batches: [][]dynamo.Event{
				{dynamo.ToggleRun},
				nil,
				nil,
				{dynamo.Quit},
			}}
			var frames []sim.Frame
			loop := sim.NewLoop(c, q, sim.RendererFunc(func(f sim.Frame) {
				frames = append(frames, f)
			}), nil)

			Expect(loop.RunTicks(context.Background(), 100)).To(Succeed())
			Expect(q.polls).To(Equal(4))
			Expect(frames).To(HaveLen(4))
			Expect(frames[2].Samples).To(Equal(3))
			Expect(frames[3].Mode).To(Equal(dynamo.Terminated))
		})

		It("honours the tick limit", func() {
			loop := sim.NewLoop(c, nil, nil, nil)
			Expect(loop.RunTicks(context.Background(), 25)).To(Succeed())
			Expect(c.Ticks()).To(BeEquivalentTo(25))
			Expect(c.Mode()).To(Equal(dynamo.Paused))
		})

		It("steps once per call for frontends with their own clock", func() {
			q := &queue{batches: [][]dynamo.Event{{dynamo.ToggleRun}}}
			var a, b int
			loop := sim.NewLoop(c, q, sim.Renderers(
				sim.RendererFunc(func(sim.Frame) { a++ }),
				nil,
				sim.RendererFunc(func(sim.Frame) { b++ }),
			), nil)

			Expect(loop.Step()).To(Succeed())
			Expect(loop.Step()).To(Succeed())
			Expect(q.polls).To(Equal(2))
			Expect(c.Samples()).To(Equal(2))
			Expect(a).To(Equal(2))
			Expect(b).To(Equal(2))
		})

		It("turns cancellation into a quit", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			loop := sim.NewLoop(c, nil, nil, nil)
			Expect(loop.Run(ctx, 0)).To(MatchError(context.Canceled))
			Expect(c.Mode()).To(Equal(dynamo.Terminated))
		})
		It("ticks on the wall clock up to the limit", func() {
			c = sim.New(params.Default(), sim.WithDt(0.001))
			q := &queue{batches: [][]dynamo.Event{{dynamo.ToggleRun}}}
			loop := sim.NewLoop(c, q, nil, nil)
			Expect(loop.Run(context.Background(), 5)).To(Succeed())
			Expect(c.Ticks()).To(BeEquivalentTo(5))
			Expect(c.Samples()).To(Equal(5))
		})
		It("refuses a timestep the clock cannot represent", func() {
			c = sim.New(params.Default(), sim.WithDt(1e-12))
			loop := sim.NewLoop(c, nil, nil, nil)
			Expect(loop.Run(context.Background(), 1)).To(MatchError(dynamo.ErrInvalidConfig))
			Expect(c.Ticks()).To(BeZero())
		})
	})
})
