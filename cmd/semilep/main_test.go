package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/config"
	"github.com/verte-zerg/semilep/internal/store"
)

// isolate points the config and data homes at a temporary directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"CKM::lambda=0.2", " mass::c(MSbar) = 1.3 "})
	require.NoError(t, err)
	want := []assignment{{name: "CKM::lambda", value: 0.2}, {name: "mass::c(MSbar)", value: 1.3}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(assignment{})); diff != "" {
		t.Fatalf("assignments mismatch (-want +got):\n%s", diff)
	}

	_, err = parseAssignments([]string{"CKM::lambda"})
	assert.Error(t, err)
	_, err = parseAssignments([]string{"=1"})
	assert.Error(t, err)
	_, err = parseAssignments([]string{"CKM::lambda=x"})
	assert.Error(t, err)
}

func TestObservableList(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "observable", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "dBR/dq2")
	assert.Contains(t, out, "A_FB")
	assert.Contains(t, out, "integrated")
}

func TestObservableIntegrated(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "--no-store", "observable", "BR", "-o", "l=e")
	require.NoError(t, err)
	assert.Contains(t, out, "BR over q2 in [")
}

func TestObservableDifferentialNeedsPoint(t *testing.T) {
	isolate(t)
	_, err := runCLI(t, "--no-store", "observable", "dBR/dq2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--at")

	out, err := runCLI(t, "--no-store", "observable", "dBR/dq2", "--at", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "dBR/dq2(q2 = 0.5) = ")
}

func TestUnknownInputsFail(t *testing.T) {
	isolate(t)
	_, err := runCLI(t, "--no-store", "observable", "nope")
	assert.Error(t, err)
	_, err = runCLI(t, "--no-store", "--set", "no::such=1", "formfactors")
	assert.Error(t, err)
	_, err = runCLI(t, "--no-store", "-o", "l=nu", "formfactors")
	assert.Error(t, err)
}

func TestDiagnosticsCompare(t *testing.T) {
	if testing.Short() {
		t.Skip("evaluates every reference set")
	}
	isolate(t)
	out, err := runCLI(t, "--no-store", "diagnostics", "--compare")
	require.NoError(t, err)
	assert.Contains(t, out, "Reference set: heavy quark")
	assert.Contains(t, out, "f_D")
}

func TestFormFactorsTable(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "--no-store", "formfactors", "--points", "3", "--min", "0", "--max", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "form factors (BSZ2015)")
	assert.Contains(t, out, "0.5000")
	assert.Contains(t, out, "f_+")
	assert.NotContains(t, out, "NaN")
}

func TestCurveIsRecorded(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "curve", "dBR/dq2", "--points", "4", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "dBR/dq2")

	out, err = runCLI(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "curve")
	assert.Contains(t, out, "dBR/dq2 ")

	st, err := store.Open(config.DefaultDBPath())
	require.NoError(t, err)
	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.Len(t, runs, 1)

	out, err = runCLI(t, "history", "--run", runs[0].ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, runs[0].ID)
	assert.Equal(t, 4, strings.Count(out, "differential"))

	_, err = runCLI(t, "history", "--run", "zzzz")
	assert.Error(t, err)
}

func TestRunFileDisablesStore(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "run.toml")
	content := "[options]\nl = \"e\"\n\n[store]\nenabled = false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := runCLI(t, "--config", path, "observable", "BR")
	require.NoError(t, err)

	out, err := runCLI(t, "--config", path, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestParamsPrefix(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "--set", "CKM::lambda=0.2", "params", "CKM::")
	require.NoError(t, err)
	assert.Contains(t, out, "CKM::lambda")
	assert.Contains(t, out, "0.2")
	assert.NotContains(t, out, "mass::")

	_, err = runCLI(t, "params", "no-such-prefix")
	assert.Error(t, err)
}

func TestParamsUsed(t *testing.T) {
	isolate(t)
	all, err := runCLI(t, "params")
	require.NoError(t, err)
	used, err := runCLI(t, "params", "--used")
	require.NoError(t, err)
	assert.Less(t, strings.Count(used, "\n"), strings.Count(all, "\n"))
	assert.Contains(t, used, "life_time::D_d")
}

func TestConfigPath(t *testing.T) {
	dir := isolate(t)
	out, err := runCLI(t, "config", "--path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config", "semilep", "config.toml"), strings.TrimSpace(out))
}

func TestExitCode(t *testing.T) {
	isolate(t)
	_, err := runCLI(t, "--no-store", "-o", "Q=b", "formfactors")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	assert.Equal(t, 130, exitCode(context.Canceled))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}
