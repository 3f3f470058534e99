package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/gwave/internal/config"
	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/experiment"
	"github.com/san-kum/gwave/internal/sim"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario is a batch of scenes rendered one after another.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one scene: a preset or config file as the base, with
// overrides applied on top using the config file layout.
type ScenarioStep struct {
	Name      string         `yaml:"name"`
	Preset    string         `yaml:"preset"`
	Config    string         `yaml:"config"`
	Overrides map[string]any `yaml:"overrides"`
	Output    string         `yaml:"output"`
}

type StepResult struct {
	Name    string
	Output  string
	Config  *config.Config
	Metrics map[string]float64
}

// Sink receives each completed scene, typically to write it to disk.
type Sink func(step ScenarioStep, cfg *config.Config, res *experiment.Result) error

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Resolve builds the step's config: preset, then config file, then
// overrides, then the step output path.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Config != "" {
		var err error
		if cfg, err = config.LoadInto(cfg, s.Config); err != nil {
			return nil, err
		}
	}
	if len(s.Overrides) > 0 {
		data, err := yaml.Marshal(s.Overrides)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("overrides: %w", err)
		}
	}
	if s.Output != "" {
		cfg.Output.Path = s.Output
	}
	return cfg, nil
}

// RunScenario executes the steps in order and stops at the first error.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, log *zap.Logger, sink Sink) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		log.Info("running step", zap.Int("step", i+1), zap.Int("of", len(scenario.Steps)), zap.String("name", name))

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(registry, registry.DefaultMetrics(cfg.Probe.Kind)); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		res, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if sink != nil {
			if err := sink(step, cfg, res); err != nil {
				return results, fmt.Errorf("step %d output: %w", i+1, err)
			}
		}

		results = append(results, StepResult{
			Name:    name,
			Output:  cfg.Output.Path,
			Config:  cfg,
			Metrics: res.Metrics,
		})
	}

	return results, nil
}

// ParameterSweep runs one scene per value of a wave parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

var sweepParams = map[string]func(*config.Config, float64){
	"amplitude":     func(c *config.Config, v float64) { c.Wave.Amplitude = v },
	"ellipticity":   func(c *config.Config, v float64) { c.Wave.Ellipticity = v },
	"theta":         func(c *config.Config, v float64) { c.Wave.Theta = v },
	"spin_velocity": func(c *config.Config, v float64) { c.Probe.SpinVelocity = v },
	"orbit_radius":  func(c *config.Config, v float64) { c.Orbit.Radius = v },
}

// RunSweep executes a parameter sweep. Frames are discarded; only the
// metric values of each run are kept.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, log *zap.Logger) ([]SweepResult, error) {
	set, ok := sweepParams[sweep.ParamName]
	if !ok {
		return nil, dynamo.NewConfigError("sweep_param", sweep.ParamName, fmt.Errorf("not sweepable"))
	}
	if sweep.NumSteps < 1 {
		return nil, dynamo.NewConfigError("sweep_steps", sweep.NumSteps, dynamo.ErrInvalidFrames)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := sweep.Base.Clone()
		set(cfg, paramVal)

		exp := experiment.New(cfg)
		if err := exp.Setup(registry, registry.DefaultMetrics(cfg.Probe.Kind)); err != nil {
			return nil, err
		}
		err := exp.Stream(ctx, func(_ sim.FrameOutput) bool { return true })
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    exp.Composer().Metrics(),
		})
		log.Debug("sweep step", zap.Int("step", i+1), zap.String("param", sweep.ParamName), zap.Float64("value", paramVal))
	}

	return results, nil
}
