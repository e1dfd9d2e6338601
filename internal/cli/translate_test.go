package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckport/deckport/internal/history"
	"github.com/deckport/deckport/internal/testutil"
)

func runTranslateCommand(t *testing.T, rootOpts *RootOptions, args ...string) (*bytes.Buffer, *bytes.Buffer, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	return out, errOut, cmd.Execute()
}

func TestTranslateWritesOutput(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", testutil.SampleDeck)
	output := filepath.Join(dir, "rules.rh")

	out, _, err := runTranslateCommand(t, &RootOptions{Format: "text"}, "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ Translated")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	generated := string(data)
	assert.Contains(t, generated, "#include <icv.rh>")
	assert.Contains(t, generated, "METAL1 = layer(10, 0);")
	assert.Contains(t, generated, "M1_WIDTH_violations = width(METAL1) < 0.5;")
	assert.Contains(t, generated, "STACK = METAL1 and METAL2;")
}

func TestTranslateStats(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", testutil.SampleDeck)
	output := filepath.Join(dir, "rules.rh")

	out, _, err := runTranslateCommand(t, &RootOptions{Format: "text"}, "-i", input, "-o", output, "--stats")
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Deck statistics:")
	assert.Contains(t, text, "Layers:           4")
	assert.Contains(t, text, "Rules:            5")
	assert.Contains(t, text, "Boolean ops:      2")
	assert.Contains(t, text, "Output:")
}

func TestTranslateJSON(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", testutil.SampleDeck)
	output := filepath.Join(dir, "rules.rh")

	out, _, err := runTranslateCommand(t, &RootOptions{Format: "json"}, "-i", input, "-o", output)
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   TranslateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, input, resp.Data.Input)
	assert.Equal(t, output, resp.Data.Output)
	assert.Equal(t, testutil.SampleDeckStats(), resp.Data.Stats)
	assert.Positive(t, resp.Data.OutputLines)
	assert.Positive(t, resp.Data.OutputBytes)
}

func TestTranslateSkippedStatementsWarn(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", "LAYER METAL1 10\nGARBAGE STATEMENT HERE\n")
	output := filepath.Join(dir, "rules.rh")

	out, errOut, err := runTranslateCommand(t, &RootOptions{Format: "text"}, "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 statement(s) skipped")
	assert.Contains(t, errOut.String(), "warning: line 2: skipped")
}

func TestTranslateFatalParseError(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", "W1 {\n    WIDTH METAL1 < 1.2.3\n}\n")
	output := filepath.Join(dir, "rules.rh")

	out, _, err := runTranslateCommand(t, &RootOptions{Format: "text"}, "-i", input, "-o", output)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), "Error [E003]")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTranslateMissingInput(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runTranslateCommand(t, &RootOptions{Format: "text"},
		"-i", filepath.Join(dir, "absent.svrf"), "-o", filepath.Join(dir, "out.rh"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out.String(), "Error [E002]")
}

func TestTranslateRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", testutil.SampleDeck)
	output := filepath.Join(dir, "rules.rh")
	db := filepath.Join(dir, "runs.db")

	_, _, err := runTranslateCommand(t, &RootOptions{Format: "text"}, "-i", input, "-o", output, "--history", db)
	require.NoError(t, err)

	store, err := history.Open(db)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, input, runs[0].InputPath)
	assert.Equal(t, output, runs[0].OutputPath)
	assert.Equal(t, testutil.SampleDeckStats(), runs[0].Stats)
	assert.Zero(t, runs[0].Diagnostics)
}

func TestTranslateHistoryFailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", testutil.SampleDeck)
	output := filepath.Join(dir, "rules.rh")
	db := filepath.Join(dir, "missing", "nested", "runs.db")

	_, errOut, err := runTranslateCommand(t, &RootOptions{Format: "text"}, "-i", input, "-o", output, "--history", db)
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "warning: recording run")

	_, statErr := os.Stat(output)
	assert.NoError(t, statErr)
}

func TestTranslateConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", testutil.SampleDeck)
	output := filepath.Join(dir, "rules.rh")
	cfgPath := testutil.WriteFile(t, dir, "deckport.toml", "[translate]\ninclude = \"custom.rh\"\nunit = \"nm\"\n")

	_, _, err := runTranslateCommand(t, &RootOptions{Format: "text", ConfigPath: cfgPath}, "-i", input, "-o", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#include <custom.rh>")
	assert.Contains(t, string(data), "Width violation: < 0.5nm")
}

func TestTranslateFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", testutil.SampleDeck)
	output := filepath.Join(dir, "rules.rh")
	cfgPath := testutil.WriteFile(t, dir, "deckport.toml", "[translate]\ninclude = \"custom.rh\"\nunit = \"nm\"\n")

	_, _, err := runTranslateCommand(t, &RootOptions{Format: "text", ConfigPath: cfgPath},
		"-i", input, "-o", output, "--unit", "um")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#include <custom.rh>")
	assert.Contains(t, string(data), "Width violation: < 0.5um")
}

func TestTranslateBadConfig(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", testutil.SampleDeck)
	output := filepath.Join(dir, "rules.rh")

	_, _, err := runTranslateCommand(t, &RootOptions{Format: "text", ConfigPath: filepath.Join(dir, "absent.toml")},
		"-i", input, "-o", output)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTranslateThroughRootCommand(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "rules.svrf", testutil.SampleDeck)
	output := filepath.Join(dir, "rules.rh")

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"translate", "-i", input, "-o", output})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "✓ Translated")
}
