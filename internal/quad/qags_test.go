package quad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQAGSSmoothIntegrands(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		a, b float64
		want float64
	}{
		{name: "polynomial", f: func(x float64) float64 { return 3 * x * x }, a: 0, b: 2, want: 8},
		{name: "exponential", f: math.Exp, a: 0, b: 1, want: math.E - 1},
		{name: "sine", f: math.Sin, a: 0, b: math.Pi, want: 2},
		{name: "reversed bounds", f: math.Exp, a: 1, b: 0, want: 1 - math.E},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QAGS(tt.f, tt.a, tt.b, DefaultConfig().WithEpsRel(1e-10))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestQAGSEndpointSingularity(t *testing.T) {
	// Integral of x^alpha log(1/x) over (0, 1] is 1/(alpha+1)^2.
	alpha := 2.6
	f := func(x float64) float64 { return math.Pow(x, alpha) * math.Log(1/x) }
	got, err := QAGS(f, 0, 1, Config{EpsRel: 1e-10, Limit: 1000})
	require.NoError(t, err)
	assert.InDelta(t, 1/((alpha+1)*(alpha+1)), got, 1e-10)

	// Integrable 1/sqrt(x) singularity requires extrapolation.
	got, err = QAGS(func(x float64) float64 { return 1 / math.Sqrt(x) }, 0, 1, Config{EpsRel: 1e-8, Limit: 1000})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-7)
}

func TestQAGSLogSingularity(t *testing.T) {
	got, err := QAGS(func(x float64) float64 { return math.Log(x) }, 0, 1, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, -1.0, got, 1e-3)
}

func TestQAGSRejectsNonFiniteIntegrand(t *testing.T) {
	_, err := QAGS(func(x float64) float64 { return math.Log(x - 0.5) }, 0, 1, DefaultConfig())
	require.ErrorIs(t, err, ErrBadIntegrand)
}

func TestQAGSRejectsImpossibleTolerance(t *testing.T) {
	_, err := QAGS(math.Exp, 0, 1, Config{EpsAbs: 0, EpsRel: 1e-20, Limit: 10})
	require.ErrorIs(t, err, ErrInvalidTolerance)
}

func TestQAGSZeroWidthInterval(t *testing.T) {
	got, err := QAGS(math.Exp, 0.3, 0.3, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}
