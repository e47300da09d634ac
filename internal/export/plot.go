// Package export turns recorded runs into images.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/san-kum/pendsim/internal/sim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	AnglePlot        = "angle.png"
	VelocityPlot     = "velocity.png"
	AccelerationPlot = "acceleration.png"
	PhasePlot        = "phase.svg"
)

var lineColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

// PlotSink writes one PNG per recorded quantity against time plus a phase
// portrait SVG into a run directory.
type PlotSink struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

func NewPlotSink() *PlotSink {
	return &PlotSink{
		Width:  8 * vg.Inch,
		Height: 4 * vg.Inch,
		DPI:    96,
	}
}

// ExportTo plots x into dir. An empty series writes nothing.
func (p *PlotSink) ExportTo(dir string, x sim.Export) error {
	if x.Series.Len() == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}

	t := x.Series.TimeSlice(x.Dt)
	plots := []struct {
		file, title, ylabel string
		ys                  []float64
	}{
		{AnglePlot, "Angle", "theta (rad)", x.Series.Angle},
		{VelocityPlot, "Angular velocity", "omega (rad/s)", x.Series.Velocity},
		{AccelerationPlot, "Angular acceleration", "alpha (rad/s^2)", x.Series.Acceleration},
	}
	for _, pl := range plots {
		if err := p.saveLinePlot(filepath.Join(dir, pl.file), pl.title, "time (s)", pl.ylabel, t, pl.ys); err != nil {
			return fmt.Errorf("%s: %w", pl.file, err)
		}
	}

	if svg := PhaseSVG(x.Series, 600, 600, "#1f77b4"); svg != "" {
		if err := os.WriteFile(filepath.Join(dir, PhasePlot), []byte(svg), 0644); err != nil {
			return err
		}
	}
	return nil
}

func (p *PlotSink) saveLinePlot(filename, title, xlabel, ylabel string, xs, ys []float64) error {
	if len(xs) != len(ys) || len(xs) == 0 {
		return errors.New("plot data invalid")
	}

	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = xlabel
	pl.Y.Label.Text = ylabel
	pl.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = lineColor
	pl.Add(line)

	c := vgimg.NewWith(vgimg.UseWH(p.Width, p.Height), vgimg.UseDPI(p.DPI))
	pl.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Saver persists a run under Dir and returns the id of the run directory it
// created. storage.Store is the production Saver.
type Saver interface {
	Save(x sim.Export) (string, error)
	Dir() string
}

// Archive saves every export and then plots it into the run directory that
// save created. Plots is optional. A failed save writes no plots.
func Archive(s Saver, plots *PlotSink) sim.ExportSink {
	return sim.SinkFunc(func(x sim.Export) error {
		id, err := s.Save(x)
		if err != nil {
			return err
		}
		if plots == nil {
			return nil
		}
		if err := plots.ExportTo(filepath.Join(s.Dir(), id), x); err != nil {
			return fmt.Errorf("plots for %s: %w", id, err)
		}
		return nil
	})
}
