package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rotsim/internal/analysis"
	"github.com/san-kum/rotsim/internal/automation"
	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/experiment"
	"github.com/san-kum/rotsim/internal/export"
	"github.com/san-kum/rotsim/internal/integrators"
	"github.com/san-kum/rotsim/internal/metrics"
	"github.com/san-kum/rotsim/internal/optim"
	"github.com/san-kum/rotsim/internal/physics"
	"github.com/san-kum/rotsim/internal/record"
	"github.com/san-kum/rotsim/internal/sim"
	"github.com/san-kum/rotsim/internal/storage"
	"github.com/san-kum/rotsim/internal/torque"
	"github.com/san-kum/rotsim/internal/viz"
)

var (
	dataDir  string
	debugLog string

	configFile string
	preset     string
	integrator string
	step       float64
	duration   float64
	mode       string
	torqueMag  float64
	rate       float64
	correction bool

	every      int
	plotSeries string
	noSave     bool

	series    string
	xAxis     int
	yAxis     int
	format    string
	bothModes bool
	svgOut    string

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepN     int

	trials       int
	perturbation float64
	seed         int64

	grid       []string
	metricName string

	logFile *os.File
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "rotsim",
		Short:             "rigid body rotation simulator",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rotsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&debugLog, "debug", "", "write debug log to this file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a batch simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().IntVar(&every, "every", 10, "record every n-th tick (0 disables recording)")
	runCmd.Flags().StringVar(&plotSeries, "plot", "", "comma separated series to plot, e.g. wx,wy,wz")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODE\tDURATION\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t%.1fs\t%s\n", name, p.Torque.Mode, p.Duration, config.Descriptions[name])
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored run series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "wx,wy,wz", "comma separated series")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "polhode: body rate projected on two axes",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "body axis for x (0-2)")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "body axis for y (0-2)")
	phaseCmd.Flags().StringVar(&svgOut, "svg", "", "also write the portrait to this svg file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&series, "series", "wx", "series to analyze")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "csv, json or svg")
	exportCmd.Flags().StringVar(&series, "series", "wx", "series drawn by the svg format")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "render the final attitude of a stored run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().IntVar(&every, "every", 10, "record every n-th tick")
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and tabulate the outcome",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "rate", "parameter to vary: "+strings.Join(config.ParamNames(), ", "))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 5, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb the initial rate direction and count flips",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addScenarioFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.05, "max change per direction component")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search parameters minimizing a metric",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addScenarioFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&metricName, "metric", "energy_drift", "metric to minimize")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the same scenario",
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)
	compareCmd.Flags().BoolVar(&bothModes, "both", false, "run each integrator with and without drift correction")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput",
		Args:  cobra.NoArgs,
		RunE:  benchScenario,
	}
	addScenarioFlags(benchCmd)

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, exportCmd, snapshotCmd,
		compareCmd, benchCmd, scenarioCmd, sweepCmd, monteCarloCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "rate integrator")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "integration step (s)")
	cmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "simulated time (s)")
	cmd.Flags().StringVar(&mode, "mode", "none", "torque mode")
	cmd.Flags().Float64Var(&torqueMag, "torque", 0, "torque magnitude")
	cmd.Flags().Float64Var(&rate, "rate", 0, "initial rate magnitude (rad/s)")
	cmd.Flags().BoolVar(&correction, "correction", true, "energy drift correction")
}

// setupLogging sends the standard logger to --debug, or nowhere.
func setupLogging(cmd *cobra.Command, args []string) error {
	if debugLog == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	logFile = f
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("rotsim %s", strings.Join(os.Args[1:], " "))
	return nil
}

// resolveConfig layers defaults, a preset, a config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	if name == "" {
		name = preset
	}
	cfg := config.DefaultConfig()
	if name != "" {
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("step") {
		cfg.Step = step
	}
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if flags.Changed("mode") {
		cfg.Torque.Mode = mode
	}
	if flags.Changed("torque") {
		cfg.Torque.Magnitude = torqueMag
	}
	if flags.Changed("rate") {
		cfg.Rate.Magnitude = rate
	}
	if flags.Changed("correction") {
		cfg.Correction = correction
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func scenarioName(cfg *config.Config) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return cfg.Torque.Mode
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	if plotSeries != "" && every == 0 {
		return fmt.Errorf("--plot needs recording, set --every above zero")
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), every); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %.2fs (step %gs, %s)...\n", scenarioName(cfg), cfg.Duration, cfg.Step, cfg.Integrator)
	start := time.Now()
	result, runErr := exp.Run(ctx)
	elapsed := time.Since(start)
	if result == nil {
		return runErr
	}
	log.Printf("run %s: %d ticks in %v", scenarioName(cfg), result.Ticks, elapsed)
	fmt.Printf("completed in %v\n", elapsed)

	if !noSave {
		runID, err := storage.New(dataDir).Save(cfg, result, exp.Samples())
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println(viz.Summary(scenarioName(cfg), result))

	if plotSeries != "" {
		chart, err := viz.Plot(exp.Samples(), splitList(plotSeries), 10, 80)
		if err != nil {
			return err
		}
		fmt.Println(chart)
	}
	return runErr
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func runLive(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" && preset == "" && configFile == "" {
		return runPicker()
	}
	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}
	engine, err := experiment.NewRegistry().Build(cfg)
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(engine, scenarioName(cfg)))
}

func runPicker() error {
	reg := experiment.NewRegistry()
	build := func(name string) (*sim.Engine, error) {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", name)
		}
		return reg.Build(cfg)
	}
	return viz.Run(viz.NewPicker(config.ListPresets(), config.Descriptions, build))
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tDURATION\tSTEP\tINTEG\tCORR\tTICKS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%gs\t%s\t%v\t%d\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Step,
			run.Integrator,
			run.Correction,
			run.Ticks,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no recorded samples", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("samples: %d\n\n", len(samples))

	for _, name := range splitList(series) {
		chart, err := viz.Plot(samples, []string{name}, 10, 80)
		if err != nil {
			return err
		}
		fmt.Println(chart)
		fmt.Println()
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	portrait := analysis.Polhode(samples, xAxis, yAxis)
	if portrait == nil {
		return fmt.Errorf("axes must be 0, 1 or 2, got %d and %d", xAxis, yAxis)
	}

	axes := "xyz"
	fmt.Printf("polhode: %s\n", meta.ID)
	fmt.Printf("ω%c vs ω%c\n\n", axes[yAxis], axes[xAxis])
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 70, 20))

	if svgOut != "" {
		svg := export.TrajectoryToSVG(portrait.Points, 600, 600, "#00ffff")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, samples, err := loadRun(runID)
	if err != nil {
		return err
	}
	if len(samples) < 4 {
		return fmt.Errorf("need at least 4 samples, got %d", len(samples))
	}
	data, err := record.Series(samples, series)
	if err != nil {
		return err
	}
	dt := samples[1].Time - samples[0].Time

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("mode: %s\n\n", meta.Mode)

	ps := analysis.PowerSpectrum(data)
	if n := len(ps) / 4; n > 1 {
		ps = ps[:n]
	}
	graph := asciigraph.Plot(ps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", series)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, dt)
	fmt.Printf("dominant frequency: %.4f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f s\n", 1.0/freq)
	}

	cfg, err := storage.New(dataDir).LoadConfig(runID)
	if err != nil {
		return err
	}
	engine, err := experiment.NewRegistry().Build(cfg)
	if err != nil {
		return err
	}
	if engine.Mode().Kind() != torque.KindNone {
		return nil
	}
	b := engine.Body()
	if b.Symmetry().Index() >= 0 {
		nu := analysis.NutationRate(b.Inertia(), b.AngularVelocity())
		fmt.Printf("predicted nutation: %.4f hz (%s)\n", analysis.Hz(nu), b.Symmetry())
		fmt.Printf("predicted precession: %.4f hz\n", analysis.Hz(analysis.PrecessionRate(b.Inertia(), b.AngularVelocity())))
	}
	lambda := analysis.LyapunovExponent(
		physics.NewRigidBody(b.InertiaMatrix()),
		integrators.NewRK4(),
		dynamo.FromVec3(b.AngularVelocity()),
		cfg.Step, cfg.Duration, 1e-8,
	)
	fmt.Printf("lyapunov exponent: %.4f 1/s\n", lambda)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	switch format {
	case "csv":
		return record.WriteCSV(os.Stdout, samples)
	case "json":
		return record.WriteJSON(os.Stdout, record.Export{
			Name:       meta.Name,
			Mode:       meta.Mode,
			Integrator: meta.Integrator,
			Step:       meta.Step,
			Duration:   meta.Duration,
			Ticks:      meta.Ticks,
			Metrics:    meta.Metrics,
			Samples:    record.Rows(samples),
		})
	case "svg":
		svg, err := export.SeriesToSVG(samples, series, 800, 300)
		if err != nil {
			return err
		}
		_, err = io.WriteString(os.Stdout, svg)
		return err
	}
	return fmt.Errorf("unknown format %q (csv, json or svg)", format)
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	cfg, err := storage.New(dataDir).LoadConfig(args[0])
	if err != nil {
		return err
	}
	body, err := experiment.BuildBody(cfg)
	if err != nil {
		return err
	}
	final := samples[len(samples)-1]
	body.Advance(final.Quat, final.Omega)

	canvas := viz.NewCanvas(40, 20)
	viz.Render3D(canvas, viz.BodyWireframe(body), viz.NewCamera())
	svg := export.CanvasToSVG(canvas, 6)

	if svgOut == "" {
		_, err = io.WriteString(os.Stdout, svg)
		return err
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

type variant struct {
	integrator string
	correction bool
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = reg.ListIntegrators()
	}

	var variants []variant
	for _, name := range names {
		variants = append(variants, variant{name, cfg.Correction})
		if bothModes {
			variants = append(variants, variant{name, !cfg.Correction})
		}
	}

	engines := make([]*sim.Engine, 0, len(variants))
	for _, v := range variants {
		c := cfg.Clone()
		c.Integrator = v.integrator
		c.Correction = v.correction
		e, err := reg.Build(c)
		if err != nil {
			return err
		}
		for _, m := range metrics.Standard() {
			e.AddMetric(m)
		}
		engines = append(engines, e)
	}

	fmt.Printf("comparing integrators for %s (step=%g, duration=%.1fs)\n\n", scenarioName(cfg), cfg.Step, cfg.Duration)
	start := time.Now()
	results, runErr := sim.RunAll(cmd.Context(), engines, cfg.Duration)
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tCORRECTION\tTICKS\tENERGY_DRIFT\tMOMENTUM_DRIFT\tNORM_ERROR\tMAX_RATE")
	for i, v := range variants {
		r := results[i]
		if r == nil {
			fmt.Fprintf(w, "%s\t%v\terror\t\t\t\t\n", v.integrator, v.correction)
			continue
		}
		fmt.Fprintf(w, "%s\t%v\t%d\t%.2e\t%.2e\t%.2e\t%.4f\n",
			v.integrator, v.correction, r.Ticks,
			r.Metrics["energy_drift"], r.Metrics["momentum_drift"], r.Metrics["norm_error"], r.Metrics["max_rate"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nwall time: %v\n", elapsed)
	return runErr
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()
	steps := []float64{0.01, 0.0025, 0.001}

	fmt.Printf("benchmarking %s\n\n", scenarioName(cfg))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tSTEP\tTICKS\tTIME\tTICKS/SEC")

	for _, name := range reg.ListIntegrators() {
		for _, h := range steps {
			c := cfg.Clone()
			c.Integrator = name
			c.Step = h
			e, err := reg.Build(c)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := e.Run(cmd.Context(), c.Duration)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%s\t%gs\t%d\t%v\t%.0f\n",
				name, h, result.Ticks, elapsed, float64(result.Ticks)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	results, runErr := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), every)

	st := storage.New(dataDir)
	for _, r := range results {
		if !noSave {
			runID, err := st.Save(r.Config, r.Result, r.Samples)
			if err != nil {
				return err
			}
			fmt.Printf("run id: %s\n", runID)
		}
		fmt.Println(viz.Summary(scenarioName(r.Config), r.Result))
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepN,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over [%g, %g] for %s\n\n", sweepParam, sweepMin, sweepMax, scenarioName(cfg))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL_W\tE_MIN\tE_MAX\tENERGY_DRIFT\tMAX_RATE\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.2e\t%.4f\n",
			r.ParamValue, r.Final.Omega.Len(), r.MinEnergy, r.MaxEnergy,
			r.Metrics["energy_drift"], r.Metrics["max_rate"])
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tDIRECTION\tFINAL_W\tFLIPPED")
	flips := 0
	for _, r := range results {
		if r.Flipped {
			flips++
		}
		d := r.Direction
		fmt.Fprintf(w, "%d\t(%.3f, %.3f, %.3f)\t%.4f\t%v\n", r.TrialID, d[0], d[1], d[2], r.Final.Len(), r.Flipped)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d of %d trials flipped\n", flips, len(results))
	return nil
}

// parseGrid reads name=v1,v2,... entries.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	var names []string
	var ranges [][]float64
	for _, entry := range entries {
		name, list, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, nil, fmt.Errorf("grid entry %q: want name=v1,v2,...", entry)
		}
		var values []float64
		for _, item := range splitList(list) {
			v, err := strconv.ParseFloat(item, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid entry %q: %w", entry, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}
	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	fmt.Printf("searching %d points minimizing %s...\n", gs.Points(), metricName)
	best, score, err := gs.Search(cmd.Context(), cfg, experiment.NewRegistry(), metricName)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Printf("%s = %g\n", name, best[name])
	}
	fmt.Printf("%s: %.4e\n", metricName, score)
	return nil
}
