package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paiban/nurseplan/internal/database"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		runInput, runSeed, runSave, runGenerations = "", 0, false, 0
		cfgPath = ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSampleInput(t *testing.T) string {
	t.Helper()
	shifts, err := database.SampleShifts(database.SampleStartDate, 3)
	require.NoError(t, err)
	data, err := json.Marshal(inputFile{Nurses: database.SampleNurseModels(), Shifts: shifts})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nurseplan v"+Version)
}

func TestRunCommand_Input(t *testing.T) {
	t.Setenv("NURSEPLAN_LOG__LEVEL", "disabled")
	t.Setenv("NURSEPLAN_METRICS__ENABLED", "false")

	out, err := execute(t, "run", "--input", writeSampleInput(t), "--seed", "7", "--generations", "10")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "SHIFT ID"))
	assert.Contains(t, out, "2025-02-21")
	assert.Contains(t, out, "fitness:")
	assert.Contains(t, out, "constraint violations:")
}

func TestRunCommand_SaveRequiresDatabase(t *testing.T) {
	_, err := execute(t, "run", "--input", "x.json", "--save")
	assert.Error(t, err)
}

func TestReadInput(t *testing.T) {
	snap, err := readInput(writeSampleInput(t))
	require.NoError(t, err)
	assert.Equal(t, 25, snap.NurseCount())
	assert.Equal(t, 9, snap.ShiftCount())

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = readInput(bad)
	assert.Error(t, err)

	_, err = readInput(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
