package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "semilep.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInsertAndReadRun(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	values := []Value{
		{Label: "f_D", Kind: "diagnostic", Value: 0.201},
		{Label: "dBR/dq2", Kind: "differential", Q2: 0.5, Value: 1.2e-2},
		{Label: "BR", Kind: "integrated", Value: math.NaN()},
	}
	id, err := s.InsertRun(ctx, "diagnostics", []string{"l=e", "model=SM"}, values)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.RunValues(ctx, id)
	require.NoError(t, err)
	if diff := cmp.Diff(values, got, cmpopts.EquateNaNs()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, "diagnostics", runs[0].Command)
	assert.Equal(t, []string{"l=e", "model=SM"}, runs[0].Options)
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := s.InsertRun(ctx, "curve", nil, nil)
	require.NoError(t, err)
	second, err := s.InsertRun(ctx, "observable", nil, nil)
	require.NoError(t, err)
	third, err := s.InsertRun(ctx, "curve", nil, nil)
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, third, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
	assert.Nil(t, runs[0].Options)

	latest, err := s.LatestRun(ctx, "observable")
	require.NoError(t, err)
	assert.Equal(t, second, latest.ID)

	latest, err = s.LatestRun(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, third, latest.ID)
	assert.NotEqual(t, first, latest.ID)

	_, err = s.LatestRun(ctx, "diagnostics")
	assert.ErrorIs(t, err, ErrNoRuns)
}

func TestRunValuesUnknownRun(t *testing.T) {
	s := openTemp(t)
	_, err := s.RunValues(context.Background(), "missing")
	assert.Error(t, err)
}

func TestRunValuesEmptyRun(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	id, err := s.InsertRun(ctx, "formfactors", nil, nil)
	require.NoError(t, err)
	got, err := s.RunValues(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got)
}
