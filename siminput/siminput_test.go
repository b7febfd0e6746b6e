package siminput_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simstack/inputschema"
	"github.com/simstack/inputschema/siminput"
)

func stanza(module, inputType string, extra map[string]any) map[string]any {
	m := map[string]any{
		"module":     module,
		"input_type": inputType,
		"delay":      0,
		"duration":   1000,
		"node_set":   "Mosaic",
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func TestEmbeddedSchemaCompiles(t *testing.T) {
	s, err := siminput.Schema()
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestModules(t *testing.T) {
	names, err := siminput.Modules()
	require.NoError(t, err)
	require.Equal(t, []string{
		"hyperpolarizing", "linear", "noise", "ornstein_uhlenbeck", "pulse",
		"relative_shot_noise", "seclamp", "shot_noise", "subthreshold",
		"synapse_replay",
	}, names)
}

func TestValidate_ShotNoise(t *testing.T) {
	ctx := context.Background()
	ok := stanza("shot_noise", "conductance", map[string]any{
		"rise_time":  0.4,
		"decay_time": 4.0,
		"rate":       2000,
		"amp_mean":   0.04,
		"amp_var":    0.0016,
	})
	rep, err := siminput.Validate(ctx, ok)
	require.NoError(t, err)
	require.True(t, rep.OK(), "unexpected issues: %v", rep.Issues())

	delete(ok, "amp_var")
	rep, err = siminput.Validate(ctx, ok)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Len(), "issues: %v", rep.Issues())
	require.Equal(t, inputschema.CodeRequired, rep.Issues()[0].Code)
	require.Equal(t, "/amp_var", rep.Issues()[0].Path)
}

func TestValidate_NoiseMeanAlternatives(t *testing.T) {
	ctx := context.Background()
	rep, err := siminput.Validate(ctx, stanza("noise", "current_clamp", map[string]any{
		"mean": 0.05, "mean_percent": 50,
	}))
	require.NoError(t, err)
	got := rep.At("/")
	require.Len(t, got, 1)
	require.Equal(t, inputschema.CodeExclusiveGroup, got[0].Code)
	require.Equal(t, "either 'mean' or 'mean_percent' is required (not both)", got[0].Message)
}

func TestValidate_SeclampRequiresVoltageClamp(t *testing.T) {
	ctx := context.Background()
	rep, err := siminput.Validate(ctx, stanza("seclamp", "current_clamp", map[string]any{
		"voltage": -70,
	}))
	require.NoError(t, err)
	require.NotEmpty(t, rep.At("/input_type"), "issues: %v", rep.Issues())

	rep, err = siminput.Validate(ctx, stanza("seclamp", "voltage_clamp", map[string]any{
		"voltage": -70,
	}))
	require.NoError(t, err)
	require.True(t, rep.OK(), "unexpected issues: %v", rep.Issues())
}

func TestValidate_SynapseReplay(t *testing.T) {
	ctx := context.Background()
	rep, err := siminput.Validate(ctx, stanza("synapse_replay", "spikes", map[string]any{
		"spike_file": "input_spikes.h5",
	}))
	require.NoError(t, err)
	require.True(t, rep.OK(), "unexpected issues: %v", rep.Issues())

	rep, err = siminput.Validate(ctx, stanza("synapse_replay", "spikes", nil))
	require.NoError(t, err)
	require.Len(t, rep.At("/spike_file"), 1)
}

func TestValidate_RandomSeedNonNegative(t *testing.T) {
	ctx := context.Background()
	rep, err := siminput.Validate(ctx, stanza("hyperpolarizing", "current_clamp", map[string]any{
		"random_seed": -3,
	}))
	require.NoError(t, err)
	got := rep.At("/random_seed")
	require.Len(t, got, 1)
	require.Equal(t, inputschema.CodeInvalidType, got[0].Code)

	rep, err = siminput.Validate(ctx, stanza("hyperpolarizing", "current_clamp", map[string]any{
		"random_seed": 42,
	}))
	require.NoError(t, err)
	require.True(t, rep.OK(), "unexpected issues: %v", rep.Issues())
}
