package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gwave/internal/analysis"
	"github.com/san-kum/gwave/internal/automation"
	"github.com/san-kum/gwave/internal/config"
	"github.com/san-kum/gwave/internal/experiment"
	"github.com/san-kum/gwave/internal/export"
	"github.com/san-kum/gwave/internal/sim"
	"github.com/san-kum/gwave/internal/storage"
	"github.com/san-kum/gwave/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newExperiment sets up a composer for cfg with the default metrics of its
// probe kind.
func newExperiment(cfg *config.Config) (*experiment.Experiment, error) {
	registry := experiment.NewRegistry()
	exp := experiment.New(cfg)
	if err := exp.Setup(registry, registry.DefaultMetrics(cfg.Probe.Kind)); err != nil {
		return nil, err
	}
	return exp, nil
}

// referencePoint is the first highlighted point of the first probe, or
// point 0 when nothing is highlighted.
func referencePoint(frames []sim.FrameOutput) (string, int) {
	if len(frames) == 0 || len(frames[0].Probes) == 0 {
		return "", 0
	}
	p := frames[0].Probes[0]
	if len(p.Highlights) > 0 {
		return p.Name, p.Highlights[0]
	}
	return p.Name, 0
}

func printMetrics(w io.Writer, metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for k := range metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", k, metrics[k])
	}
}

func writeArtifacts(cfg *config.Config, preset string, res *experiment.Result) error {
	opts, err := export.OptionsFor(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	start := time.Now()
	if err := export.WriteGIF(ctx, cfg.Output.Path, res.Frames, opts); err != nil {
		return err
	}
	logger.Info("wrote gif",
		zap.String("path", cfg.Output.Path),
		zap.Int("frames", len(res.Frames)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	probe, point := referencePoint(res.Frames)
	runID, err := st.Save(storage.RunMetadata{
		Preset:   preset,
		Probe:    probe,
		Point:    point,
		Artifact: cfg.Output.Path,
		Metrics:  res.Metrics,
		Config:   cfg,
	}, analysis.Track(res.Frames, probe, point))
	if err != nil {
		return err
	}
	logger.Info("recorded run", zap.String("run_id", runID), zap.String("data", dataDir))
	return nil
}

func renderScene(cmd *cobra.Command, args []string) error {
	cfg, preset, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	logger.Info("composing frames", zap.String("preset", preset), zap.Int("frames", cfg.PassLength()))
	start := time.Now()
	res, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	logger.Debug("composed", zap.Duration("elapsed", time.Since(start)))

	if err := writeArtifacts(cfg, preset, res); err != nil {
		return err
	}

	if svgPath != "" && len(res.Frames) > 0 {
		opts, err := export.OptionsFor(cfg)
		if err != nil {
			return err
		}
		svg := export.FrameToSVG(res.Frames[len(res.Frames)-1], opts)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		logger.Info("wrote svg", zap.String("path", svgPath))
	}

	fmt.Printf("wrote %s (%d frames)\n", cfg.Output.Path, len(res.Frames))
	fmt.Println("metrics:")
	printMetrics(os.Stdout, res.Metrics)
	return nil
}

func previewScene(cmd *cobra.Command, args []string) error {
	cfg, preset, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}

	title := preset
	if title == "" {
		title = cfg.Probe.Kind
	}
	view := viz.Viewport{Min: cfg.Output.ViewMin, Max: cfg.Output.ViewMax}
	m := viz.NewPreview(exp.Composer(), cfg.PassLength(), cfg.Output.FPS, view).
		WithLoop(cfg.Animation.LoopContinuously).
		WithTitle(title).
		WithTheme(viz.GetTheme(cfg.Output.Theme))

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROBE\tTHETA\tFRAMES\tGRID\tORBIT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		orbit := "-"
		if p.Orbit.Radius > 0 {
			orbit = fmt.Sprintf("r=%.1f %.0f°→%.0f°", p.Orbit.Radius,
				config.Degrees(p.Orbit.StartAngle), config.Degrees(p.Orbit.EndAngle))
		}
		fmt.Fprintf(w, "%s\t%s\t%.0f°\t%d\t%t\t%s\n",
			name, p.Probe.Kind, config.Degrees(p.Wave.Theta), p.Animation.Frames, p.Grid.Enabled, orbit)
	}
	return w.Flush()
}

func inspectScene(cmd *cobra.Command, args []string) error {
	cfg, preset, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	res, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	probe, point := referencePoint(res.Frames)
	track := analysis.Track(res.Frames, probe, point)
	if len(track) == 0 {
		return fmt.Errorf("no data to inspect")
	}
	series := analysis.Signed(track)

	name := preset
	if name == "" {
		name = "custom"
	}
	fmt.Printf("scene: %s (%s)\n", name, cfg.Fingerprint())
	fmt.Printf("probe: %s, point %d\n", probe, point)
	fmt.Printf("frames: %d\n\n", len(series))

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(inspectWidth),
		asciigraph.Caption("reference displacement"),
	))
	fmt.Println()

	period := analysis.DominantPeriod(series)
	if period > 0 {
		fmt.Printf("dominant period: %.1f frames (wave period %d)\n", period, cfg.Animation.Frames)
	} else {
		fmt.Println("dominant period: none (no motion)")
	}

	portrait := analysis.NewPortrait(track)
	fmt.Printf("displacement axis: %.1f°\n\n", config.Degrees(portrait.Axis()))
	fmt.Println(analysis.PortraitToASCII(portrait, 41, 21))

	fmt.Println("metrics:")
	printMetrics(os.Stdout, res.Metrics)
	return nil
}

// dataOutput opens the --out file when it was given, otherwise stdout.
func dataOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if !cmd.Flags().Changed("out") || outPath == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runForExport(cmd *cobra.Command, args []string) (*config.Config, string, *experiment.Result, error) {
	cfg, preset, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, "", nil, err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return nil, "", nil, err
	}
	ctx, cancel := signalContext()
	defer cancel()
	res, err := exp.Run(ctx)
	if err != nil {
		return nil, "", nil, err
	}
	return cfg, preset, res, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, preset, res, err := runForExport(cmd, args)
	if err != nil {
		return err
	}
	w, closeFn, err := dataOutput(cmd)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, export.NewMetadata(cfg, preset), res.Frames); err != nil {
		_ = closeFn()
		return err
	}
	return closeFn()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, preset, res, err := runForExport(cmd, args)
	if err != nil {
		return err
	}
	w, closeFn, err := dataOutput(cmd)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(w, export.NewMetadata(cfg, preset), res.Frames, res.Metrics); err != nil {
		_ = closeFn()
		return err
	}
	return closeFn()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger.Info("loaded scenario", zap.String("name", scenario.Name), zap.Int("steps", len(scenario.Steps)))

	sink := func(step automation.ScenarioStep, cfg *config.Config, res *experiment.Result) error {
		if dir := filepath.Dir(cfg.Output.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		return writeArtifacts(cfg, step.Preset, res)
	}

	ctx, cancel := signalContext()
	defer cancel()
	results, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), logger, sink)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tOUTPUT\tMETRICS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Output, formatMetrics(r.Metrics))
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMETRICS\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%s\n", r.ParamValue, formatMetrics(r.Metrics))
	}
	return w.Flush()
}

func formatMetrics(metrics map[string]float64) string {
	names := make([]string, 0, len(metrics))
	for k := range metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%.4f", k, metrics[k])
	}
	return strings.Join(parts, " ")
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tPROBE\tFRAMES\tARTIFACT")
	for _, run := range runs {
		preset := run.Preset
		if preset == "" {
			preset = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Probe,
			run.Frames,
			run.Artifact,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	track, err := st.LoadTrack(runID)
	if err != nil {
		return err
	}
	if len(track) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	if meta.Preset != "" {
		fmt.Printf("preset: %s\n", meta.Preset)
	}
	fmt.Printf("probe: %s, point %d\n", meta.Probe, meta.Point)
	fmt.Printf("samples: %d\n\n", len(track))

	xs, ys := track.XY()
	for _, s := range []struct {
		data    []float64
		caption string
	}{
		{xs, "dx"},
		{ys, "dy"},
		{analysis.Magnitudes(track), "|d|"},
	} {
		fmt.Println(asciigraph.Plot(s.data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		))
		fmt.Println()
	}

	if plotSVG != "" {
		stroke := export.StyleClassic.Probe
		if meta.Config != nil {
			if style, err := export.GetStyle(meta.Config.Output.Theme); err == nil {
				stroke = style.Probe
			}
		}
		svg := export.TrackToSVG(track, 400, 400, stroke)
		if err := os.WriteFile(plotSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", plotSVG)
	}
	return nil
}
