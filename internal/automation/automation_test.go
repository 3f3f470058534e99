package automation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gwave/internal/config"
	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/experiment"
	"github.com/san-kum/gwave/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `
name: classroom
description: plus and cross rings
steps:
  - name: plus
    preset: ring-plus
    output: plus.gif
  - name: cross
    preset: ring-cross-grid
    overrides:
      wave:
        amplitude: 0.1
      animation:
        frames: 40
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "classroom", s.Name)
	require.Len(t, s.Steps, 2)
	assert.Equal(t, "ring-plus", s.Steps[0].Preset)
	assert.Equal(t, "plus.gif", s.Steps[0].Output)
}

func TestResolveAppliesOverrides(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	cfg, err := s.Steps[1].Resolve()
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Wave.Amplitude)
	assert.Equal(t, 40, cfg.Animation.Frames)
	assert.Equal(t, math.Pi/4, cfg.Wave.Theta, "preset values survive overrides")
	assert.True(t, cfg.Grid.Enabled)
}

func TestResolveUnknownPreset(t *testing.T) {
	_, err := ScenarioStep{Preset: "nope"}.Resolve()
	assert.Error(t, err)
}

func TestRunScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	var frames []int
	sink := func(step ScenarioStep, cfg *config.Config, res *experiment.Result) error {
		frames = append(frames, len(res.Frames))
		return nil
	}

	results, err := RunScenario(context.Background(), s, experiment.NewRegistry(), logging.Nop(), sink)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, []int{100, 40}, frames)
	assert.Equal(t, "plus.gif", results[0].Output)
	assert.InDelta(t, 0.1, results[1].Metrics["stretch"], 1e-12)
}

func TestRunScenarioStopsOnSinkError(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	boom := errors.New("disk full")
	results, err := RunScenario(context.Background(), s, experiment.NewRegistry(), logging.Nop(),
		func(ScenarioStep, *config.Config, *experiment.Result) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, results)
}

func TestRunScenarioInvalidStep(t *testing.T) {
	s := &Scenario{Steps: []ScenarioStep{{
		Preset:    "ring-plus",
		Overrides: map[string]any{"animation": map[string]any{"frames": 0}},
	}}}

	_, err := RunScenario(context.Background(), s, experiment.NewRegistry(), logging.Nop(), nil)
	assert.ErrorIs(t, err, dynamo.ErrInvalidFrames)
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Base:      config.GetPreset("ring-plus"),
		ParamName: "amplitude",
		ParamMin:  0,
		ParamMax:  0.3,
		NumSteps:  4,
	}

	results, err := RunSweep(context.Background(), sweep, experiment.NewRegistry(), logging.Nop())
	require.NoError(t, err)
	require.Len(t, results, 4)

	for _, r := range results {
		assert.InDelta(t, r.ParamValue, r.Metrics["stretch"], 1e-12)
	}
	assert.Equal(t, 0.2, config.Presets["ring-plus"].Wave.Amplitude, "base preset untouched")
}

func TestRunSweepUnknownParam(t *testing.T) {
	_, err := RunSweep(context.Background(), &ParameterSweep{
		Base:      config.DefaultConfig(),
		ParamName: "mass",
		NumSteps:  2,
	}, experiment.NewRegistry(), logging.Nop())

	assert.True(t, dynamo.IsConfigError(err))
}
