package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/model"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/store"
	"github.com/san-kum/orbitsim/internal/tui"
	"github.com/san-kum/orbitsim/internal/vec"
)

var (
	dataDir    string
	configFile string
	dtFlag     float64
	years      float64
	samples    int
	relativity bool
	pnScope    string
	exportPath string
	column     string
	dtList     string
	svgSize    int
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "solar system simulator with optional 1PN relativity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, []string{"sun-earth"})
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run headless and record diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides preset")
	runCmd.Flags().Float64Var(&dtFlag, "dt", 0, "timestep in years, overrides scenario")
	runCmd.Flags().Float64Var(&years, "years", 1.0, "simulated span in years")
	runCmd.Flags().IntVar(&samples, "samples", 200, "number of diagnostics samples")
	runCmd.Flags().BoolVar(&relativity, "relativity", false, "enable 1PN correction, overrides scenario")
	runCmd.Flags().StringVar(&pnScope, "scope", "", "1PN scope: primary or all")
	runCmd.Flags().StringVar(&exportPath, "export", "", "also write full trajectory JSON to this path")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "interactive orbit view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides preset")
	liveCmd.Flags().Float64Var(&dtFlag, "dt", 0, "timestep in years, overrides scenario")

	elementsCmd := &cobra.Command{
		Use:   "elements [preset]",
		Short: "print initial osculating elements",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printElements,
	}
	elementsCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides preset")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tDT\tRELATIVITY")
			for _, name := range config.ListPresets() {
				s := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%g\t%v\n", name, len(s.Planets)+1, s.Dt, s.Relativity)
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded column against time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "energy_drift", "csv column to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset]",
		Short: "compare energy drift across timesteps",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareTimesteps,
	}
	compareCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides preset")
	compareCmd.Flags().Float64Var(&years, "years", 1.0, "simulated span in years")
	compareCmd.Flags().StringVar(&dtList, "dts", "0.002,0.001,0.0005", "comma separated timesteps")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a recorded run's orbits to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVar(&exportPath, "out", "orbits.svg", "output path")
	svgCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate orbital periods from a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	rootCmd.AddCommand(runCmd, liveCmd, elementsCmd, presetsCmd, listCmd, plotCmd, exportCmd, compareCmd, svgCmd, analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves the scenario from --config or a preset name, then
// applies the shared flag overrides.
func loadScenario(cmd *cobra.Command, args []string) (*config.Scenario, error) {
	var s *config.Scenario
	if configFile != "" {
		var err error
		s, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	} else {
		name := "sun-earth"
		if len(args) > 0 {
			name = args[0]
		}
		s = config.GetPreset(name)
		if s == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)",
				name, strings.Join(config.ListPresets(), ", "))
		}
	}

	if cmd.Flags().Changed("dt") {
		s.Dt = dtFlag
	}
	if cmd.Flags().Changed("relativity") {
		s.Relativity = relativity
	}
	if cmd.Flags().Changed("scope") {
		s.PNScope = pnScope
	}
	return s, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	scenario, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sys, pcfg, err := scenario.Build()
	if err != nil {
		return err
	}
	s := sim.New(sys, pcfg)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	steps := int(years / scenario.Dt)
	if steps < 1 {
		return fmt.Errorf("span %g yr is shorter than one %g yr step", years, scenario.Dt)
	}
	sampleEvery := steps / samples
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Str("scenario", scenario.Name).Int("bodies", len(sys.Bodies)).
		Float64("dt", scenario.Dt).Float64("years", years).Bool("relativity", pcfg.Relativity).
		Msg("starting run")
	start := time.Now()

	recorded := make([]store.Sample, 0, samples+1)
	recorded = append(recorded, store.Sample{Snapshot: s.Snapshot(), Drift: s.Conservation()})

	err = s.Run(ctx, steps, sampleEvery, func(snap model.Snapshot, drift physics.Drift) {
		recorded = append(recorded, store.Sample{Snapshot: snap, Drift: drift})
		log.Info().Float64("t", snap.Time).
			Float64("energy_drift", drift.Energy).
			Float64("l_drift", drift.AngularMomentum).
			Float64("momentum", s.Diagnostics().Momentum.Norm()).
			Msg("sample")
	})
	if err != nil {
		log.Error().Err(err).Float64("t", s.Time()).Msg("run aborted")
		return err
	}
	elapsed := time.Since(start)

	drift := s.Conservation()
	meta := store.RunMetadata{
		Scenario:             scenario.Name,
		Dt:                   scenario.Dt,
		Softening:            pcfg.Softening,
		Relativity:           pcfg.Relativity,
		PNScope:              pcfg.Scope.String(),
		Bodies:               bodyNames(s),
		Steps:                s.Steps(),
		FinalTime:            s.Time(),
		EnergyDrift:          drift.Energy,
		AngularMomentumDrift: drift.AngularMomentum,
	}
	runID, err := st.Save(meta, recorded)
	if err != nil {
		return err
	}

	log.Info().Str("run_id", runID).Dur("elapsed", elapsed).Int("steps", s.Steps()).
		Float64("energy_drift", drift.Energy).
		Float64("l_drift", drift.AngularMomentum).
		Msg("run complete")

	if exportPath != "" {
		meta.ID = runID
		if err := store.ExportFile(exportPath, meta, recorded); err != nil {
			return err
		}
		log.Info().Str("path", exportPath).Msg("trajectory exported")
	}
	return nil
}

func bodyNames(s *sim.Simulation) []string {
	snap := s.Snapshot()
	names := make([]string, len(snap.Bodies))
	for i, b := range snap.Bodies {
		names[i] = b.Name
	}
	return names
}

func runLive(cmd *cobra.Command, args []string) error {
	scenario, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sys, pcfg, err := scenario.Build()
	if err != nil {
		return err
	}
	return tui.Run(sim.New(sys, pcfg), scenario.Name)
}

func printElements(cmd *cobra.Command, args []string) error {
	scenario, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sys, pcfg, err := scenario.Build()
	if err != nil {
		return err
	}
	s := sim.New(sys, pcfg)

	deg := func(rad float64) float64 { return rad * 180 / math.Pi }

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tA (AU)\tECC\tINC (°)\tNODE (°)\tPERI (°)\tMEAN (°)\tPERIOD (YR)")
	for i, b := range sys.Bodies {
		if i == sys.Primary {
			continue
		}
		el, err := s.ElementsOf(i)
		if err != nil {
			fmt.Fprintf(w, "%s\t%v\n", b.Name, err)
			continue
		}
		mu := pcfg.G * (sys.Bodies[sys.Primary].Mass + b.Mass)
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.2f\t%.2f\t%.2f\t%.2f\t%.4f\n",
			b.Name, el.SemiMajorAxis, el.Eccentricity,
			deg(el.Inclination), deg(el.AscendingNode), deg(el.ArgPeriapsis), deg(el.MeanAnomaly),
			el.Period(mu))
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tYEARS\tDT\tBODIES\tREL\tE-DRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%g\t%d\t%v\t%.2e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.FinalTime,
			run.Dt,
			len(run.Bodies),
			run.Relativity,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	data := series.Column(column)
	if data == nil {
		return fmt.Errorf("no column %q (available: %s)", column, strings.Join(series.Header, ", "))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(data))

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(column+" vs sample"),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

var svgPalette = []string{"#ffcc33", "#b5b5b5", "#e6c87a", "#3b76f0", "#d1603d", "#d8a262", "#e0cda8", "#9ad6d6", "#4b70dd"}

func renderSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	var tracks []export.Track
	for i, name := range meta.Bodies {
		xs := series.Column(name + "_x")
		ys := series.Column(name + "_y")
		if xs == nil || ys == nil {
			return fmt.Errorf("run %s has no position columns for %q", args[0], name)
		}
		tr := export.Track{Name: name, Color: svgPalette[i%len(svgPalette)]}
		for j := range xs {
			tr.Points = append(tr.Points, vec.Vec3{X: xs[j], Y: ys[j]})
		}
		tracks = append(tracks, tr)
	}

	if err := export.WriteOrbitSVG(exportPath, tracks, svgSize); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bodies, %d samples)\n", exportPath, len(tracks), len(series.Times))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Times) < 2 {
		return fmt.Errorf("run %s has too few samples to analyze", args[0])
	}
	sampleDt := series.Times[1] - series.Times[0]

	fmt.Printf("run: %s (%.3f yr, %d samples)\n\n", meta.ID, meta.FinalTime, len(series.Times))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPERIOD (YR)")
	for _, name := range meta.Bodies {
		xs := series.Column(name + "_x")
		if xs == nil {
			continue
		}
		if p, ok := analysis.DominantPeriod(xs, sampleDt); ok {
			fmt.Fprintf(w, "%s\t%.4f\n", name, p)
		} else {
			fmt.Fprintf(w, "%s\t(no revolution in span)\n", name)
		}
	}
	return w.Flush()
}

func compareTimesteps(cmd *cobra.Command, args []string) error {
	scenario, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	var variants []sim.Variant
	for _, field := range strings.Split(dtList, ",") {
		dt, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return fmt.Errorf("bad timestep %q: %w", field, err)
		}
		sc := *scenario
		sc.Dt = dt
		variants = append(variants, sim.Variant{
			Label: fmt.Sprintf("dt=%g", dt),
			Build: func() (*sim.Simulation, error) {
				sys, pcfg, err := sc.Build()
				if err != nil {
					return nil, err
				}
				return sim.New(sys, pcfg), nil
			},
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := sim.RunEnsemble(ctx, variants, years)
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tSTEPS\tYEARS\tE-DRIFT\tL-DRIFT\tERROR")
	for _, r := range results {
		errStr := "-"
		if r.Err != nil {
			errStr = r.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3e\t%.3e\t%s\n",
			r.Label, r.Steps, r.FinalTime, r.Drift.Energy, r.Drift.AngularMomentum, errStr)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}
