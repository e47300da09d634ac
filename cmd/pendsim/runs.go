package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/history"
	"github.com/san-kum/pendsim/internal/params"
	"github.com/san-kum/pendsim/internal/physics"
	"github.com/san-kum/pendsim/internal/storage"
	"github.com/spf13/cobra"
)

// openRun resolves the optional run id argument, defaulting to the latest run.
func openRun(cmd *cobra.Command, args []string) (*storage.Store, *storage.RunMetadata, history.Series, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, history.Series{}, err
	}
	st := storage.New(cfg.DataDir)

	runID := ""
	if len(args) > 0 {
		runID = args[0]
	} else if runID, err = st.Latest(); err != nil {
		return nil, nil, history.Series{}, err
	}

	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, history.Series{}, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, history.Series{}, err
	}
	return st, meta, series, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tSAMPLES\tAMPLITUDE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%d\t%.1f°\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Samples,
			run.Values().Get(params.Amplitude)*180/math.Pi,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, meta, series, err := openRun(cmd, args)
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", series.Len())

	degrees := make([]float64, series.Len())
	for i, a := range series.Angle {
		degrees[i] = a * 180 / math.Pi
	}

	plots := []struct {
		caption string
		data    []float64
	}{
		{"theta (deg)", degrees},
		{"omega (rad/s)", series.Velocity},
		{"alpha (rad/s^2)", series.Acceleration},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	_, meta, series, err := openRun(cmd, args)
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("phase portrait: %s (theta vs omega)\n\n", meta.ID)
	fmt.Print(analysis.PhasePortraitToASCII(analysis.NewPhasePortrait(series), phaseWidth, phaseHeight))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, meta, series, err := openRun(cmd, args)
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, series, meta.Dt)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, meta, _, err := openRun(cmd, args)
	if err != nil {
		return err
	}
	return st.WriteJSON(os.Stdout, meta.ID)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	if sweep != "" {
		return sweepPeriod(cmd)
	}

	_, meta, series, err := openRun(cmd, args)
	if err != nil {
		return err
	}
	if series.Len() < 4 {
		return fmt.Errorf("not enough data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(series.Angle)
	plotData := ps[:max(2, len(ps)/4)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (theta)"),
	)
	fmt.Println(graph)
	fmt.Println()

	v := meta.Values()
	freq := analysis.DominantFrequency(series.Angle, meta.Dt)
	fmt.Printf("dominant frequency: %.4f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period (spectrum): %.4f s\n", 1.0/freq)
	}
	if p := analysis.MeanPeriod(series.Angle, meta.Dt); p > 0 {
		fmt.Printf("period (crossings): %.4f s\n", p)
	}
	fmt.Printf("small-angle period: %.4f s\n", physics.SmallAnglePeriod(v))

	return nil
}

func sweepPeriod(cmd *cobra.Command) error {
	id, err := params.ParseID(sweep)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base := cfg.Store().Values()

	points := analysis.PeriodSweep(base, id, sweepFrom, sweepTo, sweepSteps, cfg.Dt(), sweepTime)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPERIOD\tSMALL-ANGLE\n", id)
	for _, p := range points {
		v := base
		v[id] = p.Param
		period := "-"
		if p.Period > 0 {
			period = fmt.Sprintf("%.4fs", p.Period)
		}
		fmt.Fprintf(w, "%g\t%s\t%.4fs\n", p.Param, period, physics.SmallAnglePeriod(v))
	}
	return w.Flush()
}

