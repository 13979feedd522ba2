package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glyphos/internal/dynamics"
)

func TestRunSingleStep(t *testing.T) {
	dir, r := newTestRepo(t)
	id, _, err := r.Create("runner", map[string]json.RawMessage{
		"energy": json.RawMessage("16"),
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", StorePath: dir}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{id, "--decay-rate", "0.5", "--activation-threshold", "2"})

	err = cmd.Execute()
	require.NoError(t, err)

	resp := decodeResponse(t, buf.Bytes())
	assert.Equal(t, "ok", resp.Status)

	var result struct {
		Glyph glyphView           `json:"glyph"`
		Steps []dynamics.StepInfo `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	require.Len(t, result.Steps, 1)
	assert.Equal(t, 16.0, result.Steps[0].InitialEnergy)
	assert.InDelta(t, 8.0, result.Steps[0].EnergyAfterDecay, 1e-12)
	assert.True(t, result.Steps[0].Activated)
	assert.Equal(t, int64(1), result.Steps[0].ActivationCount)
	assert.Equal(t, id, result.Glyph.ID)
}

func TestRunMultipleSteps(t *testing.T) {
	dir, r := newTestRepo(t)
	id, _, err := r.Create("multi", map[string]json.RawMessage{
		"energy": json.RawMessage("16"),
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", StorePath: dir}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{id, "--steps", "3", "--decay-rate", "0.5", "--activation-threshold", "2"})

	err = cmd.Execute()
	require.NoError(t, err)

	resp := decodeResponse(t, buf.Bytes())
	var result struct {
		Glyph glyphView           `json:"glyph"`
		Steps []dynamics.StepInfo `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	require.Len(t, result.Steps, 3)

	// 16 -> 8 -> 4 -> 2; the threshold of 2 still counts the last step.
	assert.InDelta(t, 8.0, result.Steps[0].EnergyAfterDecay, 1e-12)
	assert.InDelta(t, 4.0, result.Steps[1].EnergyAfterDecay, 1e-12)
	assert.InDelta(t, 2.0, result.Steps[2].EnergyAfterDecay, 1e-12)
	assert.Equal(t, int64(3), result.Steps[2].ActivationCount)
}

func TestRunDryRunDoesNotSave(t *testing.T) {
	dir, r := newTestRepo(t)
	id, _, err := r.Create("dry", map[string]json.RawMessage{
		"energy": json.RawMessage("16"),
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", StorePath: dir}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{id, "--decay-rate", "0.5"})

	err = cmd.Execute()
	require.NoError(t, err)

	g, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 16.0, g.Energy, "without --save the stored record is untouched")
}

func TestRunSavePersists(t *testing.T) {
	dir, r := newTestRepo(t)
	id, _, err := r.Create("wet", map[string]json.RawMessage{
		"energy": json.RawMessage("16"),
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", StorePath: dir}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{id, "--decay-rate", "0.5", "--activation-threshold", "2", "--save"})

	err = cmd.Execute()
	require.NoError(t, err)

	g, err := r.Get(id)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, g.Energy, 1e-12)
	assert.Equal(t, int64(1), g.ActivationCount)
	assert.Equal(t, int64(1), g.LastUpdateTime)
}

func TestRunNegativeTimeDelta(t *testing.T) {
	dir, r := newTestRepo(t)
	id, _, err := r.Create("backwards", nil)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", StorePath: dir}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{id, "--time-delta", "-1"})

	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Error [INVALID_ARGUMENT]")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunRejectsZeroSteps(t *testing.T) {
	dir, _ := newTestRepo(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", StorePath: dir}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"abc", "--steps", "0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps must be at least 1")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunNotFound(t *testing.T) {
	dir, _ := newTestRepo(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", StorePath: dir}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"4b227777d4dd1fc61c6f884f48641d02b4d21d3472a582d0ef545f4c3e93f4c0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Error [NOT_FOUND]")
}
