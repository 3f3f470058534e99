package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/san-kum/gwave/internal/config"
	"github.com/san-kum/gwave/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logJSON    bool
	logger     = zap.NewNop()

	// scene flags
	amplitude    float64
	ellipticity  float64
	theta        float64
	frames       int
	loop         bool
	trail        bool
	trace        bool
	grid         bool
	highlight    bool
	probeKind    string
	spin         float64
	orbitRadius  float64
	outPath      string
	fps          int
	size         int
	theme        string
	svgPath      string
	noSave       bool
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	plotSVG      string
	inspectWidth int
)

// main registers the gwave commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "gwave",
		Short:         "gravitational-wave strain field animations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel, logJSON)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gwave", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as json")

	renderCmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "render a scene to an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderScene,
	}
	addSceneFlags(renderCmd)
	renderCmd.Flags().StringVar(&svgPath, "svg", "", "also write the last frame as SVG")
	renderCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run in the data directory")

	previewCmd := &cobra.Command{
		Use:   "preview [preset]",
		Short: "play a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  previewScene,
	}
	addSceneFlags(previewCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [preset]",
		Short: "plot the reference particle displacement and its period",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspectScene,
	}
	addSceneFlags(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectWidth, "width", 80, "graph width")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [preset]",
		Short: "export scene coordinates to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	addSceneFlags(exportCSVCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [preset]",
		Short: "export scene coordinates to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	addSceneFlags(exportJSONCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario]",
		Short: "render every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run a scene over a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSceneFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "amplitude", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.05, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.4, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of values")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded reference track",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "write the track as SVG")

	rootCmd.AddCommand(renderCmd, previewCmd, presetsCmd, inspectCmd, exportCSVCmd, exportJSONCmd, batchCmd, sweepCmd, listCmd, plotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.Float64Var(&amplitude, "amplitude", def.Wave.Amplitude, "strain amplitude")
	f.Float64Var(&ellipticity, "ellipticity", def.Wave.Ellipticity, "ellipticity (1 linear, 0 single axis)")
	f.Float64Var(&theta, "theta", def.Wave.Theta, "polarization axis angle (radians)")
	f.IntVar(&frames, "frames", def.Animation.Frames, "frames per wave period")
	f.BoolVar(&loop, "loop", def.Animation.LoopContinuously, "play forward then back")
	f.BoolVar(&trail, "trail", def.Animation.LeaveTrail, "keep every deformed outline")
	f.BoolVar(&trace, "trace", def.Animation.TraceCenter, "trace the probe center")
	f.BoolVar(&grid, "grid", def.Grid.Enabled, "draw the deformed background grid")
	f.BoolVar(&highlight, "highlight", def.Probe.Highlight, "mark reference particles")
	f.StringVar(&probeKind, "probe", def.Probe.Kind, "probe kind (ring, triangle)")
	f.Float64Var(&spin, "spin", def.Probe.SpinVelocity, "spin velocity (radians per frame)")
	f.Float64Var(&orbitRadius, "orbit-radius", def.Orbit.Radius, "orbit radius, 0 for none")
	f.StringVarP(&outPath, "out", "o", def.Output.Path, "output path")
	f.IntVar(&fps, "fps", def.Output.FPS, "frames per second")
	f.IntVar(&size, "size", def.Output.Width, "image width and height in pixels")
	f.StringVar(&theme, "theme", def.Output.Theme, "color theme")
}

// resolveConfig builds the scene config: preset or defaults, then the
// config file, then flags the user set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	preset := ""
	if len(args) > 0 {
		preset = args[0]
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		if cfg, err = config.LoadInto(cfg, configFile); err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("amplitude") {
		cfg.Wave.Amplitude = amplitude
	}
	if flags.Changed("ellipticity") {
		cfg.Wave.Ellipticity = ellipticity
	}
	if flags.Changed("theta") {
		cfg.Wave.Theta = theta
	}
	if flags.Changed("frames") {
		cfg.Animation.Frames = frames
	}
	if flags.Changed("loop") {
		cfg.Animation.LoopContinuously = loop
	}
	if flags.Changed("trail") {
		cfg.Animation.LeaveTrail = trail
	}
	if flags.Changed("trace") {
		cfg.Animation.TraceCenter = trace
	}
	if flags.Changed("grid") {
		cfg.Grid.Enabled = grid
	}
	if flags.Changed("highlight") {
		cfg.Probe.Highlight = highlight
	}
	if flags.Changed("probe") {
		cfg.Probe.Kind = probeKind
	}
	if flags.Changed("spin") {
		cfg.Probe.SpinVelocity = spin
	}
	if flags.Changed("orbit-radius") {
		cfg.Orbit.Radius = orbitRadius
	}
	if flags.Changed("out") {
		cfg.Output.Path = outPath
	}
	if flags.Changed("fps") {
		cfg.Output.FPS = fps
	}
	if flags.Changed("size") {
		cfg.Output.Width, cfg.Output.Height = size, size
	}
	if flags.Changed("theme") {
		cfg.Output.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	logger.Debug("resolved config",
		zap.String("preset", preset),
		zap.String("fingerprint", cfg.Fingerprint()),
		zap.String("probe", cfg.Probe.Kind),
		zap.Float64("amplitude", cfg.Wave.Amplitude),
		zap.Float64("theta_deg", config.Degrees(cfg.Wave.Theta)),
		zap.Int("frames", cfg.PassLength()),
	)
	return cfg, preset, nil
}

// signalContext is cancelled on interrupt; the composer stops between frames.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
