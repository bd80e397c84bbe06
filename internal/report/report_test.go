package report

import (
	"bytes"
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/formfactor"
	"github.com/verte-zerg/semilep/internal/store"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "f(q2)", []Series{
		{Name: "f_+", Values: []float64{0.6, 0.7, 0.8, math.NaN(), 1.1}},
		{Name: "f_0", Values: []float64{0.6, 0.62, 0.65, 0.7, 0.75}},
	}, PlotOptions{Width: 20, Height: 4, XMin: 0, XMax: 1.8, XLabel: "q2"})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "f(q2)")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "1.1")
	assert.Contains(t, out, "0.6")
	assert.Contains(t, out, "1.8 q2")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.GreaterOrEqual(t, len(lines), 1+4+1+1)
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PlotSeries(&buf, "empty", []Series{{Name: "none"}}, PlotOptions{}))
	assert.Empty(t, buf.String())
}

func TestPlotWidthFor(t *testing.T) {
	assert.Equal(t, 80-axisLabelWidth-3, PlotWidthFor(80))
	assert.Equal(t, minPlotWidth, PlotWidthFor(0))
	assert.Equal(t, minPlotWidth, PlotWidthFor(12))
}

func TestResampleSeries(t *testing.T) {
	assert.Equal(t, []float64{1.5, 3.5}, resampleSeries([]float64{1, 2, 3, 4}, 2))
	assert.Equal(t, []float64{0, 0.5, 1}, resampleSeries([]float64{0, 1}, 3))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, " @", Sparkline([]float64{0, 1}))
	assert.Equal(t, "++", Sparkline([]float64{2, 2}))
	assert.Equal(t, " ?@", Sparkline([]float64{0, math.NaN(), 3}))
	assert.Empty(t, Sparkline(nil))
}

func TestCompare(t *testing.T) {
	refs := []formfactor.Reference{
		{Label: "f_D", Value: 0.2, Tolerance: 1e-3},
		{Label: "f_+(q2 = 0.0)", Value: 0.6, Tolerance: 1e-3},
		{Label: "f_T(q2 = 0.0)", Value: 0.5, Tolerance: 1e-3},
		{Label: "missing", Value: 1, Tolerance: 1},
	}
	got := []formfactor.Diagnostic{
		{Label: "f_D", Value: 0.2004},
		{Label: "f_+(q2 = 0.0)", Value: 0.63},
		{Label: "f_T(q2 = 0.0)", Value: math.NaN(), Err: errors.New("diverged")},
	}
	cs := Compare(refs, got)
	require.Len(t, cs, 4)
	assert.True(t, cs[0].Pass())
	assert.InDelta(t, 0.002, cs[0].Deviation(), 1e-12)
	assert.False(t, cs[1].Pass())
	assert.False(t, cs[2].Pass())
	assert.Error(t, cs[3].Err)

	worst := WorstDeviations(cs, 3)
	require.Len(t, worst, 3)
	assert.Equal(t, "f_T(q2 = 0.0)", worst[0].Label)
	assert.Equal(t, "missing", worst[1].Label)
	assert.Equal(t, "f_+(q2 = 0.0)", worst[2].Label)

	var buf bytes.Buffer
	require.NoError(t, RenderComparison(&buf, "set", cs))
	assert.Contains(t, buf.String(), "1/4 within tolerance")
	assert.Contains(t, buf.String(), "error: diverged")
}

func TestRenderDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDiagnostics(&buf, "LCSR", []formfactor.Diagnostic{
		{Label: "f_D", Value: 0.2012},
		{Label: "M_D(f_+, q2 = 10.0)", Value: math.NaN(), Err: errors.New("no convergence")},
	}))
	out := buf.String()
	assert.Contains(t, out, "0.2012")
	assert.Contains(t, out, "NaN")
	assert.Contains(t, out, "no convergence")
}

func TestRenderSamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSamples(&buf, "q2", []float64{0, 1}, []Series{
		{Name: "f_+", Values: []float64{0.6, 0.9}},
	}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "    q2 f_+", lines[0])
	assert.Equal(t, "1.0000 0.9", lines[2])
}

func TestBuildAndRenderHistory(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "semilep.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()
	_, err = st.InsertRun(ctx, "observable", []string{"l=e"}, []store.Value{
		{Label: "BR", Kind: "integrated", Value: 0.035},
	})
	require.NoError(t, err)
	_, err = st.InsertRun(ctx, "curve", nil, []store.Value{
		{Label: "dBR/dq2", Kind: "differential", Q2: 0, Value: 1},
		{Label: "dBR/dq2", Kind: "differential", Q2: 1, Value: 2},
	})
	require.NoError(t, err)

	runs, err := BuildHistory(ctx, st, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	var buf bytes.Buffer
	require.NoError(t, RenderHistory(&buf, runs))
	out := buf.String()
	assert.Contains(t, out, "BR = 0.035")
	assert.Contains(t, out, "dBR/dq2 [ @]")
	assert.Contains(t, out, "l=e")
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHistory(&buf, nil))
	assert.Equal(t, "No runs recorded.\n", buf.String())
}
