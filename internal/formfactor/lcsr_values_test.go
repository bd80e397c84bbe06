package formfactor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/options"
	"github.com/verte-zerg/semilep/internal/params"
)

// relDelta is the tolerance used for values recorded to nine digits.
func relDelta(want float64) float64 {
	return 1e-6 * math.Max(1, math.Abs(want))
}

func TestReferenceSetsReproduce(t *testing.T) {
	if testing.Short() {
		t.Skip("evaluates every reference set")
	}
	for _, s := range ReferenceSets {
		t.Run(s.Name, func(t *testing.T) {
			got, err := s.Evaluate(params.Defaults())
			require.NoError(t, err)
			require.Len(t, got, len(s.Entries))
			for i, e := range s.Entries {
				require.Equal(t, e.Label, got[i].Label)
				require.NoError(t, got[i].Err, e.Label)
				assert.InDelta(t, e.Value, got[i].Value, e.Tolerance, e.Label)
			}
		})
	}
}

func TestKernelValues(t *testing.T) {
	tests := []struct {
		k    Kernel
		q2   float64
		want float64
	}{
		{FLOTw2, -1, 0.112255935},
		{FLOTw2, 0, 0.157597745},
		{FLOTw2, 0.5, 0.197912004},
		{FLOTw2, 1, 0.272261511},
		{FLOTw3, -1, 0.242890928},
		{FLOTw3, 0, 0.347718545},
		{FLOTw3, 0.5, 0.443818613},
		{FLOTw3, 1, 0.619718099},
		{FLOTw4, -1, 0.006330293},
		{FLOTw4, 0, 0.006346509},
		{FLOTw4, 0.5, 0.005147767},
		{FLOTw4, 1, -0.000595236},
		{FNLOTw2, -1, 0.703055475},
		{FNLOTw2, 0, 0.737255361},
		{FNLOTw2, 0.5, 0.621568890},
		{FNLOTw2, 1, -0.108783768},
		{FNLOTw3, -1, -0.539255479},
		{FNLOTw3, 0, -1.412367446},
		{FNLOTw3, 0.5, -2.796370994},
		{FNLOTw3, 1, -7.763885215},
		{FtilLOTw3, -1, 0.152942772},
		{FtilLOTw3, 0, 0.248158402},
		{FtilLOTw3, 0.5, 0.356046190},
		{FtilLOTw3, 1, 0.629499220},
		{FtilLOTw4, -1, -0.000754535},
		{FtilLOTw4, 0, -0.004158893},
		{FtilLOTw4, 0.5, -0.008423204},
		{FtilLOTw4, 1, -0.019512557},
		{FtilNLOTw2, -1, 0.218050633},
		{FtilNLOTw2, 0.5, 0.206751638},
		{FtilNLOTw2, 1, 0.146886994},
		{FtilNLOTw3, -1, -0.614743129},
		{FtilNLOTw3, 0.5, -3.863954123},
		{FtilNLOTw3, 1, -12.944153972},
		{FTLOTw2, -1, 0.093966075},
		{FTLOTw2, 0, 0.131920344},
		{FTLOTw2, 0.5, 0.165666200},
		{FTLOTw2, 1, 0.227901941},
		{FTLOTw3, -1, 0.058191901},
		{FTLOTw3, 0, 0.094451872},
		{FTLOTw3, 0.5, 0.133021663},
		{FTLOTw3, 1, 0.222377764},
		{FTLOTw4, -1, -0.006923565},
		{FTLOTw4, 0, -0.011851412},
		{FTLOTw4, 0.5, -0.016880807},
		{FTLOTw4, 1, -0.028438057},
		{FTNLOTw2, -1, 0.106768117},
		{FTNLOTw2, 0, -0.058653149},
		{FTNLOTw2, 0.5, -0.336075244},
		{FTNLOTw2, 1, -1.297630385},
		{FTNLOTw3, -1, 0.130875990},
		{FTNLOTw3, 0, -0.182177694},
		{FTNLOTw3, 0.5, -0.821167145},
		{FTNLOTw3, 1, -3.635217768},
	}
	l := newLCSR(t, nil)
	for _, tt := range tests {
		got, err := l.Kernel(tt.k, tt.q2, l.BorelM2(), Plain)
		require.NoError(t, err, "%s(%g)", tt.k, tt.q2)
		assert.InDelta(t, tt.want, got, relDelta(tt.want), "%s(%g)", tt.k, tt.q2)
	}
}

// The F~ NLO kernels carry 1/q2 terms and are not defined at zero.
func TestTildeNLOKernelsFailAtZero(t *testing.T) {
	l := newLCSR(t, nil)
	for _, k := range []Kernel{FtilNLOTw2, FtilNLOTw3} {
		_, err := l.Kernel(k, 0, l.BorelM2(), Plain)
		assert.ErrorIs(t, err, errs.ErrNumerical, string(k))
	}
}

func TestFormFactorValues(t *testing.T) {
	tests := []struct {
		q2, fPlus, fZero, fT, rho float64
	}{
		{q2: -1, fPlus: 0.599227848, fZero: 0.650873098, fT: 0.504587787, rho: 0.950642564},
		{q2: 0, fPlus: 0.792778821, fZero: 0.792778821, fT: 0.672969985, rho: 1},
		{q2: 0.5, fPlus: 0.921654973, fZero: 0.882922669, fT: 0.782311338, rho: 1.012015537},
		{q2: 1, fPlus: 0.970180954, fZero: 0.834637741, fT: 0.740874260, rho: 0.934075943},
	}
	l := newLCSR(t, nil)

	fD, err := l.DecayConstant()
	require.NoError(t, err)
	assert.InDelta(t, 0.190890586, fD, 1e-6)
	mD, err := l.MDSVZ()
	require.NoError(t, err)
	assert.InDelta(t, 1.803171065, mD, 1e-6)

	for _, tt := range tests {
		fp, err := l.FPlus(tt.q2)
		require.NoError(t, err, "q2=%g", tt.q2)
		assert.InDelta(t, tt.fPlus, fp, relDelta(tt.fPlus), "f+(%g)", tt.q2)

		f0, err := l.FZero(tt.q2)
		require.NoError(t, err, "q2=%g", tt.q2)
		assert.InDelta(t, tt.fZero, f0, relDelta(tt.fZero), "f0(%g)", tt.q2)

		ft, err := l.FT(tt.q2)
		require.NoError(t, err, "q2=%g", tt.q2)
		assert.InDelta(t, tt.fT, ft, relDelta(tt.fT), "fT(%g)", tt.q2)

		rho, err := l.RescaleFactorP(tt.q2)
		require.NoError(t, err, "q2=%g", tt.q2)
		assert.InDelta(t, tt.rho, rho, relDelta(tt.rho), "rho_p(%g)", tt.q2)
	}
}

// Past m_c^2 the dual threshold u0 collapses and the sum rule has no
// solution. Just below it the f+ rescale factor already changes sign.
func TestAboveCharmMassIsNumericalError(t *testing.T) {
	l := newLCSR(t, nil)

	_, err := l.RescaleFactorP(1.4)
	require.ErrorIs(t, err, errs.ErrNumerical)
	assert.ErrorIs(t, err, errs.ErrNotPositive)
	_, err = l.FPlus(1.4)
	assert.ErrorIs(t, err, errs.ErrNotPositive)

	for _, q2 := range []float64{1.6, 2.5} {
		for name, f := range map[string]func(float64) (float64, error){
			"f+": l.FPlus,
			"f0": l.FZero,
			"fT": l.FT,
		} {
			v, err := f(q2)
			assert.ErrorIs(t, err, errs.ErrNumerical, "%s(%g)", name, q2)
			assert.Zero(t, v, "%s(%g)", name, q2)
		}
	}

	fixed := newLCSR(t, options.Options{options.KeyRescaleBorel: "0"})
	_, err = fixed.FPlus(2.5)
	assert.ErrorIs(t, err, errs.ErrNumerical)
}

func TestDecayConstantRejectsNegativeSumRule(t *testing.T) {
	p := params.Defaults()
	require.NoError(t, p.Set("QCD::cond_GG", -1000))
	l, err := NewLCSR(p, nil, nil)
	require.NoError(t, err)

	_, err = l.DecayConstant()
	require.ErrorIs(t, err, errs.ErrNumerical)
	assert.ErrorIs(t, err, errs.ErrNotPositive)

	_, err = l.FPlus(0)
	assert.ErrorIs(t, err, errs.ErrNotPositive)
}

func TestMassEstimateClampsNegativeRatio(t *testing.T) {
	v, err := massOf("M_D(f_+)", 1, -0.5)
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = massOf("M_D(f_+)", 1, math.NaN())
	assert.ErrorIs(t, err, errs.ErrNotFinite)

	v, err = massOf("M_D(f_+)", 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}
