package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/tui"
	"github.com/san-kum/algoviz/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	speed      int
	seed       int64
	size       int
	rows       int
	cols       int
	walls      float64
	theme      string
	logLevel   string
	logFormat  string
	noClear    bool
	svgStep    int
	svgOut     string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the commands. The root runs the interactive view when
// no subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "algoviz",
		Short: "step-by-step sorting and graph traversal visualizer",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(logLevel, logFormat, os.Stderr))
		},
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataDir, "data", config.DefaultData, "data directory for saved runs")
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&preset, "preset", "", "use preset configuration")
	flags.IntVar(&speed, "speed", config.DefaultSpeed, "speed 1-100; delay is 110-speed ms")
	flags.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	flags.IntVar(&size, "size", config.DefaultSize, "sequence length")
	flags.IntVar(&rows, "rows", grid.DefaultRows, "grid rows")
	flags.IntVar(&cols, "cols", grid.DefaultCols, "grid columns")
	flags.Float64Var(&walls, "walls", 0, "fraction of grid nodes turned into walls")
	flags.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	flags.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "run an algorithm with paced plain terminal output",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().BoolVar(&noClear, "no-clear", false, "append frames instead of redrawing")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list algorithms",
		RunE:  listAlgorithms,
	}

	recordCmd := &cobra.Command{
		Use:   "record [algorithm]",
		Short: "run an algorithm to completion and save the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordRun,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run with every step as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot inversions or visited nodes over a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a saved step (sorts) or the visited curve (grids) as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().IntVar(&svgStep, "step", -1, "step to render (-1 = last)")
	svgCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm...]",
		Short: "run sorts on the same input and compare step counts",
		RunE:  compareSorts,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tALGORITHM\tSPEED\tSIZE\tGRID\tWALLS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%dx%d\t%.2f\n",
					name, p.Algorithm, p.Speed, p.Sequence.Size, p.Grid.Rows, p.Grid.Cols, p.Grid.Walls)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, recordCmd, runsCmd, showCmd, exportCmd, plotCmd, svgCmd, compareCmd, presetsCmd)
	return rootCmd
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order. An algorithm argument overrides them all.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.Data == "" {
		cfg.Data = dataDir
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("size") {
		cfg.Sequence.Size = size
	}
	if flags.Changed("rows") {
		cfg.Grid.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Grid.Cols = cols
	}
	if flags.Changed("walls") {
		cfg.Grid.Walls = walls
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func newEngine(cfg *config.Config, reg *algo.Registry, r engine.Renderer) (*engine.Engine, error) {
	eng, err := engine.New(reg, r, cfg.Engine(),
		engine.WithLogger(slog.Default()),
		engine.WithRand(rand.New(rand.NewSource(cfg.Seed))),
	)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default() {
		eng.AddMetric(m)
	}
	return eng, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	viz.SetTheme(cfg.Theme)

	reg := algo.NewRegistry()
	bridge := &viz.Bridge{}
	eng, err := newEngine(cfg, reg, bridge)
	if err != nil {
		return err
	}
	return viz.Run(eng, bridge, viz.NewModel(eng, reg))
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	reg := algo.NewRegistry()
	renderer := tui.NewLiveRenderer(os.Stdout, reg)
	renderer.Clear = !noClear
	eng, err := newEngine(cfg, reg, renderer)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	renderer.Start()
	defer renderer.Stop()

	if err := eng.Start(ctx); err != nil {
		return err
	}
	if err := eng.Wait(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	fmt.Println()
	printMetrics(eng.Metrics())
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	reg := algo.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tKIND")
	for _, k := range reg.Keys() {
		info := reg.Info(k)
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Key, info.Name, info.Kind)
	}
	return w.Flush()
}

func recordRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	reg := algo.NewRegistry()
	rng := rand.New(rand.NewSource(cfg.Seed))
	input := engine.RandomSequence(rng, cfg.Sequence.Size, cfg.Sequence.Min, cfg.Sequence.Max)
	g, err := grid.New(cfg.Grid.Rows, cfg.Grid.Cols)
	if err != nil {
		return err
	}
	if cfg.Grid.Walls > 0 {
		g.Scatter(rng, cfg.Grid.Walls)
	}

	key := reg.Resolve(cfg.Algorithm)
	if reg.IsGrid(key) {
		input = nil
	}

	fmt.Printf("recording %s...\n", reg.Info(key).Name)
	start := time.Now()

	result, err := engine.Drain(context.Background(), reg, key, input, g, metrics.Default()...)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	st := storage.New(cfg.Data)
	runID, err := st.Save(result, cfg.Seed, input)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.Frames))
	fmt.Printf("status: %s\n", result.Last().Status)
	fmt.Println()
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	fmt.Println("metrics:")
	for _, name := range []string{"steps", "inversions", "visited", "path_length"} {
		if v, ok := m[name]; ok {
			fmt.Printf("  %s: %.0f\n", name, v)
		}
	}
}

// openStore resolves the data directory the same way record does, so a
// data: entry in a config file or preset is honoured.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.Data), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tKIND\tTIME\tSTEPS\tSTATUS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Algorithm,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Status,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	return printJSON(meta)
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	return st.ExportJSON(os.Stdout, args[0])
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}

	if len(steps) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("steps: %d\n\n", len(steps))

	data := make([]float64, len(steps))
	caption := "inversions per step"
	for i, s := range steps {
		if meta.Kind == "grid" {
			data[i] = float64(s.Visited)
		} else {
			data[i] = float64(metrics.Count(s.Values))
		}
	}
	if meta.Kind == "grid" {
		caption = "visited nodes per step"
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	return nil
}

func svgRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return fmt.Errorf("run %s has no steps", args[0])
	}

	var doc string
	if meta.Kind == "grid" {
		data := make([]float64, len(steps))
		for i, s := range steps {
			data[i] = float64(s.Visited)
		}
		doc = export.SeriesToSVG(data, 800, 300, "#4a9eff")
	} else {
		idx := svgStep
		if idx < 0 || idx >= len(steps) {
			idx = len(steps) - 1
		}
		doc = export.BarsToSVG(steps[idx].Values, steps[idx].Active, 800, 300)
	}
	if doc == "" {
		return fmt.Errorf("nothing to render")
	}

	if svgOut == "" {
		_, err = fmt.Println(doc)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func compareSorts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	reg := algo.NewRegistry()
	keys := args
	if len(keys) == 0 {
		keys = reg.SequenceKeys()
	}
	input := engine.RandomSequence(rand.New(rand.NewSource(cfg.Seed)), cfg.Sequence.Size, cfg.Sequence.Min, cfg.Sequence.Max)

	start := time.Now()
	results, err := engine.Compare(context.Background(), reg, keys, input, metrics.Default)
	if err != nil {
		return err
	}

	fmt.Printf("comparing %d sorts on %d values (seed %d, inversions %d) in %v\n\n",
		len(keys), len(input), cfg.Seed, metrics.Count(input), time.Since(start).Round(time.Microsecond))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSTEPS\tSIMULATED\tSORTED")
	for _, r := range results {
		last := r.Last()
		sorted := metrics.Count(last.Sort.Values) == 0
		steps := r.Metrics["steps"]
		fmt.Fprintf(w, "%s\t%.0f\t%v\t%v\n",
			reg.Info(r.Algorithm).Name,
			steps,
			time.Duration(steps)*engine.DelayFor(cfg.Speed),
			sorted,
		)
	}
	return w.Flush()
}
