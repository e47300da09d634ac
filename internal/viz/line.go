package viz

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/sim"
)

// LineRenderer prints one status line every Nth tick, for headless runs.
type LineRenderer struct {
	w     io.Writer
	every uint64
	mode  lipgloss.Style
}

func NewLineRenderer(w io.Writer, every int) *LineRenderer {
	if every < 1 {
		every = 1
	}
	r := lipgloss.NewRenderer(w)
	return &LineRenderer{
		w:     w,
		every: uint64(every),
		mode:  r.NewStyle().Bold(true).Width(12),
	}
}

// Render implements sim.Renderer. The terminating frame is always printed.
func (r *LineRenderer) Render(f sim.Frame) {
	if f.Tick%r.every != 0 && f.Mode != dynamo.Terminated {
		return
	}
	fmt.Fprintf(r.w, "%s t=%8.3fs  theta=%8.3f°  omega=%9.4f rad/s  E=%.4e J  n=%d\n",
		r.mode.Render(f.Mode.String()),
		f.Time,
		f.Angle()*180/math.Pi,
		f.Velocity,
		f.Energy,
		f.Samples,
	)
}
