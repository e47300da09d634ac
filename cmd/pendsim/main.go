package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/pendsim/internal/automation"
	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/export"
	"github.com/san-kum/pendsim/internal/logging"
	"github.com/san-kum/pendsim/internal/metrics"
	"github.com/san-kum/pendsim/internal/params"
	"github.com/san-kum/pendsim/internal/sim"
	"github.com/san-kum/pendsim/internal/storage"
	"github.com/san-kum/pendsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	preset     string
	frequency  float64
	noPlots    bool
	logLevel   string
	logFile    string
	overrides  map[string]string
	// run
	duration   float64
	scenario   string
	printEvery int
	noSave     bool
	realtime   bool
	// init-config
	force bool
	// analyze
	sweep      string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	sweepTime  float64
	// phase
	phaseWidth  int
	phaseHeight int
)

// main registers the commands; with no subcommand the interactive view starts.
func main() {
	rootCmd := &cobra.Command{
		Use:          "pendsim",
		Short:        "damped physical pendulum simulator",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&frequency, "frequency", config.DefaultFrequency, "ticks per second (dt = 1/frequency)")
	pf.BoolVar(&noPlots, "no-plots", false, "skip PNG plots on export")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	pf.StringVar(&logFile, "log-file", "", "log file (stderr when empty, off in live mode)")
	pf.StringToStringVar(&overrides, "set", nil, "parameter override, e.g. --set gravity=1.62")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal simulation",
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless simulation, optionally scripted",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "simulated seconds when no scenario is given")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "scenario file (yaml)")
	runCmd.Flags().IntVar(&printEvery, "every", 0, "print a status line every N ticks (0 = quiet)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not export the run")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "tick at wall-clock speed instead of as fast as possible")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&phaseWidth, "width", 70, "plot width")
	phaseCmd.Flags().IntVar(&phaseHeight, "height", 25, "plot height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis, or a period sweep with --sweep",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&sweep, "sweep", "", "parameter to sweep instead of analysing a run")
	analyzeCmd.Flags().Float64Var(&sweepFrom, "from", 0.05, "sweep start")
	analyzeCmd.Flags().Float64Var(&sweepTo, "to", 3.0, "sweep end")
	analyzeCmd.Flags().IntVar(&sweepSteps, "steps", 10, "sweep points")
	analyzeCmd.Flags().Float64Var(&sweepTime, "time", 20.0, "simulated seconds per sweep point")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Printf("%s\n", name)
				overlay := config.Presets[name]
				keys := make([]string, 0, len(overlay))
				for k := range overlay {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Printf("  %s: %g\n", k, overlay[k])
				}
			}
			return nil
		},
	}

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "show parameters with their bounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			v := cfg.Store().Values()
			for _, id := range params.IDs() {
				fmt.Printf("%-12s %s\n", id, params.Format(id, v))
			}
			return nil
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initConfigCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, phaseCmd, exportCSVCmd, exportJSONCmd, analyzeCmd, presetsCmd, paramsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig applies the preset, then the config file, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("frequency") {
		cfg.Frequency = frequency
	}
	if flags.Changed("no-plots") {
		cfg.Plots = !noPlots
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	for name, raw := range overrides {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", name, err)
		}
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}

	return cfg, cfg.Validate()
}

// exportSink stores runs under the data directory and, unless disabled,
// writes plots into the directory of each saved run.
func exportSink(cfg *config.Config) (*storage.Store, sim.ExportSink, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, nil, err
	}
	var plots *export.PlotSink
	if cfg.Plots {
		plots = export.NewPlotSink()
	}
	return st, export.Archive(st, plots), nil
}

// initConfig saves the configuration built from preset, file and flags, so a
// tuned session can be reloaded with --config.
func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "pendsim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.Quiet(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	_, sink, err := exportSink(cfg)
	if err != nil {
		return err
	}

	ctrl := sim.New(cfg.Store(),
		sim.WithDt(cfg.Dt()),
		sim.WithSink(sink),
		sim.WithLogger(logger),
	)
	return viz.Run(ctrl, logger)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	st, sink, err := exportSink(cfg)
	if err != nil {
		return err
	}

	sc := &automation.Scenario{Name: "run"}
	if scenario != "" {
		sc, err = automation.LoadScenario(scenario)
		if err != nil {
			return err
		}
	} else {
		sc.Events = durationScript(duration, cfg.Dt(), !noSave)
	}
	if realtime {
		sc.Realtime = true
	}

	drift := metrics.NewEnergyDrift()
	peak := metrics.NewPeakAngle()
	set := metrics.Set{drift, peak}

	var renderer sim.Renderer = set
	if printEvery > 0 {
		renderer = sim.Renderers(viz.NewLineRenderer(os.Stdout, printEvery), set)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s...\n", sc.Name)
	start := time.Now()

	ctrl, err := automation.Run(ctx, sc, cfg.Store(), renderer, logger,
		sim.WithDt(cfg.Dt()),
		sim.WithSink(sink),
	)

	fmt.Printf("completed in %v\n", time.Since(start))
	if id := st.LastID(); id != "" {
		fmt.Printf("run id: %s\n", id)
	}
	fmt.Printf("ticks: %d\n", ctrl.Ticks())
	fmt.Printf("simulated: %.3fs\n", ctrl.Time())
	fmt.Println("\nmetrics:")
	values := set.Values()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}

	if err != nil {
		logger.Warn("run finished with errors", zap.Error(err))
	}
	return err
}

// durationScript runs for the given simulated time, then exports when save
// is set, then quits.
func durationScript(seconds, dt float64, save bool) []automation.ScriptedEvent {
	n := int(math.Round(seconds / dt))
	events := []automation.ScriptedEvent{{Tick: 0, Event: "toggle-run"}}
	if save {
		events = append(events, automation.ScriptedEvent{Tick: n, Event: "plot"})
	}
	return append(events, automation.ScriptedEvent{Tick: n, Event: "quit"})
}
