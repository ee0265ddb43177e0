package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/stubmatch/internal/batch"
	"github.com/san-kum/stubmatch/internal/config"
	"github.com/san-kum/stubmatch/internal/export"
	"github.com/san-kum/stubmatch/internal/match"
	"github.com/san-kum/stubmatch/internal/optimize"
	"github.com/san-kum/stubmatch/internal/store"
	"github.com/san-kum/stubmatch/internal/sweep"
	"github.com/san-kum/stubmatch/internal/txline"
	"github.com/san-kum/stubmatch/internal/viz"
)

var (
	dataDir  string
	logLevel string
	// load and geometry
	loadR     float64
	loadX     float64
	z0        float64
	zs        float64
	d1        float64
	d2        float64
	stubKind  string
	precision float64
	maxStub   float64
	samples   int
	// scenario selection
	configFile string
	preset     string
	// sweep window
	centerHz    float64
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
	metricName  string
	// output
	withSweep bool
	saveRun   bool
	jsonOut   bool
	outPath   string
	solIndex  int
	// plotting
	plotWidth  int
	plotHeight int
	locusSteps int
	// batch
	workers  int
	sortBest bool
	// suggest
	d2Step     float64
	scoreSweep bool
	// export
	format string
)

// main registers the stubmatch commands and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	settings := config.LoadSettings()

	rootCmd := &cobra.Command{
		Use:   "stubmatch",
		Short: "double-stub impedance matching calculator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if level, err := zerolog.ParseLevel(logLevel); err == nil {
				zerolog.SetGlobalLevel(level)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", settings.DataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", settings.LogLevel, "log level (trace..error)")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve stub lengths for a load",
		RunE:  runSolve,
	}
	addScenarioFlags(solveCmd)
	addSweepFlags(solveCmd)
	solveCmd.Flags().BoolVar(&withSweep, "sweep", false, "sweep each solution and report bandwidth")
	solveCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run")
	solveCmd.Flags().BoolVar(&jsonOut, "json", false, "emit json instead of tables")

	diagnoseCmd := &cobra.Command{
		Use:   "diagnose",
		Short: "explain why a load is unmatchable",
		RunE:  runDiagnose,
	}
	addScenarioFlags(diagnoseCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "frequency response of a solved match",
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	addSweepFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&solIndex, "solution", 0, "solution index to plot")
	sweepCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run")
	sweepCmd.Flags().IntVar(&plotWidth, "width", settings.PlotWidth, "plot width (columns)")
	sweepCmd.Flags().IntVar(&plotHeight, "height", settings.PlotHeight, "plot height (rows)")

	rankCmd := &cobra.Command{
		Use:   "rank",
		Short: "order solutions by bandwidth",
		RunE:  runRank,
	}
	addScenarioFlags(rankCmd)
	addSweepFlags(rankCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [loads.csv]",
		Short: "solve many loads against one geometry",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	addScenarioFlags(batchCmd)
	batchCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel workers")
	batchCmd.Flags().BoolVar(&sortBest, "sort", false, "sort summary by best match")
	batchCmd.Flags().StringVar(&outPath, "out", "", "write summary to file instead of stdout")

	suggestCmd := &cobra.Command{
		Use:   "suggest",
		Short: "suggest stub spacings that match the load",
		RunE:  runSuggest,
	}
	addScenarioFlags(suggestCmd)
	addSweepFlags(suggestCmd)
	suggestCmd.Flags().Float64Var(&d2Step, "d2-step", 0, "candidate spacing step (wavelengths, 0 = default grid)")
	suggestCmd.Flags().BoolVar(&scoreSweep, "score-sweep", false, "sweep each candidate and rank by bandwidth")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show saved run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&solIndex, "solution", 0, "stored sweep index")
	plotCmd.Flags().IntVar(&plotWidth, "width", settings.PlotWidth, "plot width (columns)")
	plotCmd.Flags().IntVar(&plotHeight, "height", settings.PlotHeight, "plot height (rows)")

	smithCmd := &cobra.Command{
		Use:   "smith",
		Short: "draw the matching path on a smith chart",
		RunE:  runSmith,
	}
	addScenarioFlags(smithCmd)
	smithCmd.Flags().IntVar(&solIndex, "solution", -1, "solution index (-1 draws all)")
	smithCmd.Flags().IntVar(&locusSteps, "steps", 50, "locus points per network segment")
	smithCmd.Flags().IntVar(&plotWidth, "width", 48, "chart width (columns)")
	smithCmd.Flags().IntVar(&plotHeight, "height", 24, "chart height (rows)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json, csv, solutions, touchstone, svg or smith-svg")
	exportCmd.Flags().IntVar(&solIndex, "solution", 0, "solution index for per-solution formats")
	exportCmd.Flags().StringVar(&outPath, "out", "", "write to file instead of stdout")
	exportCmd.Flags().IntVar(&locusSteps, "steps", 50, "locus points per segment (smith-svg)")

	rootCmd.AddCommand(solveCmd, diagnoseCmd, sweepCmd, rankCmd, batchCmd, suggestCmd,
		presetsCmd, listCmd, showCmd, plotCmd, smithCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&loadR, "load-r", 38.9, "load resistance (ohm)")
	cmd.Flags().Float64Var(&loadX, "load-x", -26.7, "load reactance (ohm)")
	cmd.Flags().Float64Var(&z0, "z0", config.DefaultZ0, "main line impedance (ohm)")
	cmd.Flags().Float64Var(&zs, "zs", config.DefaultZs, "stub line impedance (ohm)")
	cmd.Flags().Float64Var(&d1, "d1", config.DefaultD1, "load to first stub (wavelengths)")
	cmd.Flags().Float64Var(&d2, "d2", config.DefaultD2, "stub spacing (wavelengths)")
	cmd.Flags().StringVar(&stubKind, "stub", config.DefaultStub, "stub termination: short or open")
	cmd.Flags().Float64Var(&precision, "precision", config.DefaultPrecision, "root tolerance (wavelengths)")
	cmd.Flags().Float64Var(&maxStub, "max-stub", config.DefaultMaxStub, "stub length ceiling (wavelengths)")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultGridSamples, "objective grid samples")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset scenario")
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&centerHz, "center", config.DefaultCenterHz, "design frequency (hz)")
	cmd.Flags().Float64Var(&sweepFrom, "from", config.DefaultSweepFrom, "sweep start (hz)")
	cmd.Flags().Float64Var(&sweepTo, "to", config.DefaultSweepTo, "sweep stop (hz)")
	cmd.Flags().IntVar(&sweepPoints, "points", config.DefaultSweepPoints, "sweep points")
	cmd.Flags().StringVar(&metricName, "metric", config.DefaultRankMetric, "bandwidth metric: bw3, bw10rl or vswr2")
}

// buildScenario resolves the effective scenario: defaults, then preset,
// then config file, with explicitly set flags overriding all of them.
func buildScenario(cmd *cobra.Command) (*config.Scenario, error) {
	sc := config.DefaultScenario()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		sc = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		sc = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("load-r") {
		sc.LoadR = loadR
	}
	if flags.Changed("load-x") {
		sc.LoadX = loadX
	}
	if flags.Changed("z0") {
		sc.Z0 = z0
	}
	if flags.Changed("zs") {
		sc.Zs = zs
	}
	if flags.Changed("d1") {
		sc.D1 = d1
	}
	if flags.Changed("d2") {
		sc.D2 = d2
	}
	if flags.Changed("stub") {
		sc.Stub = stubKind
	}
	if flags.Changed("precision") {
		sc.Precision = precision
	}
	if flags.Changed("max-stub") {
		sc.MaxStub = maxStub
	}
	if flags.Changed("samples") {
		sc.Samples = samples
	}
	if flags.Changed("center") {
		sc.Sweep.CenterHz = centerHz
	}
	if flags.Changed("from") {
		sc.Sweep.FromHz = sweepFrom
	}
	if flags.Changed("to") {
		sc.Sweep.ToHz = sweepTo
	}
	if flags.Changed("points") {
		sc.Sweep.Points = sweepPoints
	}
	if flags.Changed("metric") {
		sc.Sweep.Metric = metricName
	}
	return sc, nil
}

func verifyAll(sols []match.Solution, load match.Load, p match.Params) ([]match.VerificationResult, error) {
	vers := make([]match.VerificationResult, len(sols))
	for i, sol := range sols {
		v, err := match.Verify(sol, load, p)
		if err != nil {
			return nil, fmt.Errorf("verifying solution %d: %w", i, err)
		}
		vers[i] = v
	}
	return vers, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	load := sc.LoadImpedance()
	p, err := sc.Params()
	if err != nil {
		return err
	}

	start := time.Now()
	sols, rep, err := match.Solve(load, p)
	if err != nil {
		return err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Int("solutions", len(sols)).Msg("solve finished")

	vers, err := verifyAll(sols, load, p)
	if err != nil {
		return err
	}

	var sweeps []*sweep.Result
	if withSweep && len(sols) > 0 {
		sweeps = make([]*sweep.Result, len(sols))
		for i, sol := range sols {
			res, err := sweep.Run(sol, load, p, sc.Grid())
			if err != nil {
				return err
			}
			sweeps[i] = res
		}
	}

	var runID string
	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err = st.Save(sc.Name, load, p, sols, vers, sweeps)
		if err != nil {
			return err
		}
		log.Info().Str("runID", runID).Msg("run saved")
	}

	if jsonOut {
		data := export.BuildExportData(sc.Name, load, p, sols, vers, sweeps)
		return export.ExportJSONStdout(data)
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	fmt.Printf("load: %g%+gj ohm\n", sc.LoadR, sc.LoadX)
	fmt.Printf("geometry: d1=%g d2=%g (wavelengths), %s stubs, z0=%g zs=%g\n\n",
		sc.D1, sc.D2, sc.Stub, sc.Z0, sc.Zs)

	if len(sols) == 0 {
		fmt.Println("no solutions: this load is unmatchable at this geometry")
		diag, derr := match.Diagnose(load, p)
		if derr != nil {
			return derr
		}
		printDiagnostic(diag)
		return nil
	}

	printSolutions(sols, vers)

	if n := len(rep.NonPhysical); n > 0 {
		fmt.Printf("\n%d candidate pair(s) rejected at the %g wavelength stub ceiling\n", n, p.MaxStubLength)
	}
	for _, d := range rep.Dropped {
		log.Debug().Float64("lo", d.Lo).Float64("hi", d.Hi).Err(d.Err).Msg("dropped bracket")
	}

	if withSweep {
		fmt.Println("\nsweep metrics:")
		printSweepMetrics(sweeps)
	}
	if runID != "" {
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func printSolutions(sols []match.Solution, vers []match.VerificationResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tL1 (WL)\tL1 (DEG)\tL2 (WL)\tL2 (DEG)\t|GAMMA|\tVSWR\tRL (DB)\tMATCHED")
	for i, sol := range sols {
		v := vers[i]
		fmt.Fprintf(w, "%d\t%.6f\t%.2f\t%.6f\t%.2f\t%.3e\t%.4f\t%.1f\t%v\n",
			i, sol.L1, sol.L1*360, sol.L2, sol.L2*360,
			v.GammaMag, v.VSWR, v.ReturnLossDB, v.Matched)
	}
	w.Flush()
}

func printDiagnostic(d match.Diagnostic) {
	fmt.Printf("\ntarget conductance: %.6g S\n", d.Target)
	fmt.Printf("conductance at first-stub node: %.6g S\n", d.G1)
	fmt.Printf("reachable conductance: %.6g to %.6g S\n", d.GMin, d.GMax)
	fmt.Printf("analytic ceiling: %.6g S\n", d.AnalyticGMax)
	if d.Matchable {
		fmt.Println("verdict: matchable")
	} else {
		fmt.Println("verdict: forbidden region")
	}
	fmt.Println("\nremedies:")
	for _, r := range d.Remedies {
		fmt.Printf("  - %s\n", r)
	}
}

func printSweepMetrics(sweeps []*sweep.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tBW 3DB\tBW RL>10DB\tBW VSWR<2\tFRACTIONAL\tLOADED Q")
	for i, res := range sweeps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.4g\t%.4g\n", i,
			fmtBandwidth(res.Bandwidth3DB()),
			fmtBandwidth(res.Bandwidth10DBRL()),
			fmtBandwidth(res.BandwidthVSWR2()),
			res.FractionalBandwidth(),
			res.LoadedQ())
	}
	w.Flush()
}

// fmtBandwidth renders a bandwidth, mapping the no-band sentinel to a
// word instead of "0 Hz".
func fmtBandwidth(bw float64) string {
	if bw <= 0 {
		return "none"
	}
	return viz.FormatFrequency(bw)
}

// nearestIndex finds the grid sample closest to f, -1 on an empty grid.
func nearestIndex(freqs []float64, f float64) int {
	best, bestDist := -1, math.Inf(1)
	for i, fi := range freqs {
		if d := math.Abs(fi - f); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	p, err := sc.Params()
	if err != nil {
		return err
	}

	diag, err := match.Diagnose(sc.LoadImpedance(), p)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	fmt.Printf("load: %g%+gj ohm\n", sc.LoadR, sc.LoadX)
	printDiagnostic(diag)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	load := sc.LoadImpedance()
	p, err := sc.Params()
	if err != nil {
		return err
	}

	sols, _, err := match.Solve(load, p)
	if err != nil {
		return err
	}
	if len(sols) == 0 {
		fmt.Println("no solutions to sweep; run diagnose for details")
		return nil
	}
	if solIndex < 0 || solIndex >= len(sols) {
		return fmt.Errorf("solution index %d out of range (%d solutions)", solIndex, len(sols))
	}

	grid := sc.Grid()
	sweeps := make([]*sweep.Result, len(sols))
	for i, sol := range sols {
		res, err := sweep.Run(sol, load, p, grid)
		if err != nil {
			return err
		}
		sweeps[i] = res
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	fmt.Printf("window: %s to %s, %d points, design frequency %s\n\n",
		viz.FormatFrequency(grid.Start), viz.FormatFrequency(grid.Stop),
		grid.Points, viz.FormatFrequency(grid.Center))

	printSweepMetrics(sweeps)
	fmt.Println()
	fmt.Println(viz.FrequencyPanels(sweeps[solIndex], viz.PlotOptions{Width: plotWidth, Height: plotHeight}))

	gd := sweeps[solIndex].GroupDelay()
	if i := nearestIndex(sweeps[solIndex].Frequencies, grid.Center); i >= 0 && !math.IsNaN(gd[i]) && !math.IsInf(gd[i], 0) {
		fmt.Printf("group delay near %s: %.4g ns\n",
			viz.FormatFrequency(sweeps[solIndex].Frequencies[i]), gd[i]*1e9)
	}

	if saveRun {
		vers, err := verifyAll(sols, load, p)
		if err != nil {
			return err
		}
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(sc.Name, load, p, sols, vers, sweeps)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func runRank(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	metric, err := sweep.ParseMetric(sc.Sweep.Metric)
	if err != nil {
		return err
	}
	load := sc.LoadImpedance()
	p, err := sc.Params()
	if err != nil {
		return err
	}

	sols, _, err := match.Solve(load, p)
	if err != nil {
		return err
	}
	if len(sols) == 0 {
		fmt.Println("nothing to rank: no solutions")
		return nil
	}

	grid := sc.Grid()
	entries := make([]sweep.Ranked, len(sols))
	for i, sol := range sols {
		res, err := sweep.Run(sol, load, p, grid)
		if err != nil {
			return err
		}
		entries[i] = sweep.Ranked{Solution: sol, Sweep: res}
	}
	ranked := sweep.Rank(entries, metric)

	fmt.Printf("ranking %d solution(s) by %s\n\n", len(ranked), metric)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tL1 (WL)\tL2 (WL)\tBW\tFRACTIONAL\tLOADED Q")
	for i, e := range ranked {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%s\t%.4g\t%.4g\n",
			i+1, e.Solution.L1, e.Solution.L2,
			fmtBandwidth(sweep.MetricValue(e.Sweep, metric)),
			e.Sweep.FractionalBandwidth(), e.Sweep.LoadedQ())
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	p, err := sc.Params()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	jobs, err := batch.ReadJobsCSV(f)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no loads in %s", args[0])
	}

	runner := batch.NewRunner(p, workers, log.Logger)
	start := time.Now()
	outcomes := runner.Run(context.Background(), jobs)
	log.Info().Int("loads", len(jobs)).Int("workers", workers).
		Dur("elapsed", time.Since(start)).Msg("batch finished")

	if sortBest {
		outcomes = batch.SortByBestMatch(outcomes)
	}

	out := os.Stdout
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	return batch.WriteSummaryCSV(out, outcomes)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	load := sc.LoadImpedance()
	p, err := sc.Params()
	if err != nil {
		return err
	}

	search := &optimize.SpacingSearch{}
	if d2Step > 0 {
		var grid []float64
		for k := 1; float64(k)*d2Step < 0.5-1e-9; k++ {
			grid = append(grid, float64(k)*d2Step)
		}
		search.Grid = grid
	}
	if scoreSweep {
		metric, err := sweep.ParseMetric(sc.Sweep.Metric)
		if err != nil {
			return err
		}
		search.SweepGrid = sc.Grid()
		search.Metric = metric
	}

	sugs, err := search.Search(load, p)
	if err != nil {
		return err
	}
	if len(sugs) == 0 {
		fmt.Println("no candidate spacing matches this load; adjust d1 or the load")
		return nil
	}

	fmt.Printf("spacing suggestions for %g%+gj ohm (d1=%g, current d2=%g):\n\n",
		sc.LoadR, sc.LoadX, sc.D1, sc.D2)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "D2 (WL)\tSOLUTIONS\tBEST |GAMMA|\tBW")
	for _, s := range sugs {
		fmt.Fprintf(w, "%.3f\t%d\t%.3e\t%s\n", s.D2, s.Solutions, s.BestGamma, fmtBandwidth(s.Bandwidth))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLOAD (OHM)\tZ0\tD1\tD2\tSTUB")
	for _, name := range config.ListPresets() {
		sc := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g%+gj\t%g\t%g\t%g\t%s\n",
			name, sc.LoadR, sc.LoadX, sc.Z0, sc.D1, sc.D2, sc.Stub)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tLOAD (OHM)\tD1\tD2\tSTUB\tSOLUTIONS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g%+gj\t%g\t%g\t%s\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.LoadR, run.LoadX,
			run.D1, run.D2,
			run.Stub,
			len(run.Solutions),
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	res, err := st.LoadSweep(runID, solIndex)
	if err != nil {
		return fmt.Errorf("no stored sweep %d for %s (create one with `sweep --save`): %w", solIndex, runID, err)
	}
	if len(res.Frequencies) == 0 {
		return fmt.Errorf("stored sweep %d of %s is empty", solIndex, runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s, solution %d of %d\n\n", meta.Scenario, solIndex, len(meta.Solutions))
	fmt.Println(viz.FrequencyPanels(res, viz.PlotOptions{Width: plotWidth, Height: plotHeight}))
	fmt.Printf("bw(3dB): %s  bw(RL>10dB): %s  bw(VSWR<2): %s  loaded Q: %.4g\n",
		fmtBandwidth(res.Bandwidth3DB()), fmtBandwidth(res.Bandwidth10DBRL()),
		fmtBandwidth(res.BandwidthVSWR2()), res.LoadedQ())
	return nil
}

func runSmith(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	load := sc.LoadImpedance()
	p, err := sc.Params()
	if err != nil {
		return err
	}

	sols, _, err := match.Solve(load, p)
	if err != nil {
		return err
	}
	if len(sols) == 0 {
		fmt.Println("no solutions to draw; run diagnose for details")
		return nil
	}
	if solIndex >= len(sols) {
		return fmt.Errorf("solution index %d out of range (%d solutions)", solIndex, len(sols))
	}

	var loci [][]complex128
	for i, sol := range sols {
		if solIndex >= 0 && i != solIndex {
			continue
		}
		locus, err := match.GammaLocus(sol, load, p, locusSteps)
		if err != nil {
			return err
		}
		loci = append(loci, locus)
	}

	fmt.Printf("smith chart: %s (%g%+gj ohm, %d solution path(s))\n\n", sc.Name, sc.LoadR, sc.LoadX, len(loci))
	fmt.Print(viz.SmithChart(loci, plotWidth, plotHeight))
	fmt.Println("\nmarkers: load at the locus start, matched point at chart center")
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	switch format {
	case "json":
		load, p, sols, vers, err := runFromMetadata(meta)
		if err != nil {
			return err
		}
		sweeps := make([]*sweep.Result, len(sols))
		for i := range sols {
			if res, err := st.LoadSweep(runID, i); err == nil {
				sweeps[i] = res
			}
		}
		data := export.BuildExportData(meta.Scenario, load, p, sols, vers, sweeps)
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)

	case "csv":
		res, err := st.LoadSweep(runID, solIndex)
		if err != nil {
			return err
		}
		return export.SweepCSV(out, res)

	case "solutions":
		_, _, sols, vers, err := runFromMetadata(meta)
		if err != nil {
			return err
		}
		return export.SolutionsCSV(out, sols, vers)

	case "touchstone":
		res, err := st.LoadSweep(runID, solIndex)
		if err != nil {
			return err
		}
		return export.WriteTouchstone(out, res, meta.Z0)

	case "svg":
		res, err := st.LoadSweep(runID, solIndex)
		if err != nil {
			return err
		}
		svg := export.SweepSVG(res.Frequencies, res.ReturnLossDB, 640, 360, "#58a6ff")
		if svg == "" {
			return fmt.Errorf("sweep %d of %s has too few finite samples to draw", solIndex, runID)
		}
		_, err = fmt.Fprintln(out, svg)
		return err

	case "smith-svg":
		load, p, sols, _, err := runFromMetadata(meta)
		if err != nil {
			return err
		}
		if solIndex < 0 || solIndex >= len(sols) {
			return fmt.Errorf("solution index %d out of range (%d solutions)", solIndex, len(sols))
		}
		locus, err := match.GammaLocus(sols[solIndex], load, p, locusSteps)
		if err != nil {
			return err
		}
		svg := export.SmithSVG(locus, 480, "#58a6ff")
		if svg == "" {
			return fmt.Errorf("locus of solution %d is too short to draw", solIndex)
		}
		_, err = fmt.Fprintln(out, svg)
		return err

	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// runFromMetadata rebuilds solver inputs and outputs from a stored run.
// Verification values are the stored ones, not recomputed.
func runFromMetadata(meta *store.RunMetadata) (match.Load, match.Params, []match.Solution, []match.VerificationResult, error) {
	kind, err := txline.ParseStubKind(meta.Stub)
	if err != nil {
		return match.Load{}, match.Params{}, nil, nil, err
	}
	p := match.Params{Z0: meta.Z0, Zs: meta.Zs, D1: meta.D1, D2: meta.D2, Stub: kind}.Normalized()
	load := match.Load{Z: complex(meta.LoadR, meta.LoadX)}

	sols := make([]match.Solution, len(meta.Solutions))
	vers := make([]match.VerificationResult, len(meta.Solutions))
	for i, rec := range meta.Solutions {
		sols[i] = match.Solution{L1: rec.L1, L2: rec.L2}
		vers[i] = match.VerificationResult{GammaMag: rec.GammaMag, Matched: rec.Matched}
	}
	return load, p, sols, vers, nil
}
