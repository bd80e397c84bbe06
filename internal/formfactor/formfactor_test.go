package formfactor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/options"
	"github.com/verte-zerg/semilep/internal/params"
)

func newLCSR(t *testing.T, o options.Options) *LCSR {
	t.Helper()
	l, err := NewLCSR(params.Defaults(), o, nil)
	require.NoError(t, err)
	return l
}

func TestRho1(t *testing.T) {
	for _, s := range []float64{6.5, 7.0, 7.5} {
		v := Rho1(s, 1.27, 1.4)
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "rho_1(%g)", s)
		assert.NotZero(t, v)
	}
}

func TestRescaleFactorsAtZero(t *testing.T) {
	l := newLCSR(t, nil)
	for name, f := range map[string]func(float64) (float64, error){
		"p": l.RescaleFactorP,
		"0": l.RescaleFactor0,
		"T": l.RescaleFactorT,
	} {
		rho, err := f(0)
		require.NoError(t, err, name)
		assert.InDelta(t, 1.0, rho, 1e-12, name)
	}
}

func TestRescaleBorelDisabled(t *testing.T) {
	l := newLCSR(t, options.Options{options.KeyRescaleBorel: "0"})
	for _, f := range []func(float64) (float64, error){l.RescaleFactorP, l.RescaleFactor0, l.RescaleFactorT} {
		rho, err := f(0.8)
		require.NoError(t, err)
		assert.Equal(t, 1.0, rho)
	}
}

func TestRescaleBorelInvalid(t *testing.T) {
	_, err := NewLCSR(params.Defaults(), options.Options{options.KeyRescaleBorel: "sometimes"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestFZeroMatchesFPlusAtZero(t *testing.T) {
	l := newLCSR(t, nil)
	fp, errP := l.FPlus(1e-8)
	f0, errZ := l.FZero(1e-8)
	assert.Equal(t, errP == nil, errZ == nil)
	assert.Equal(t, fp, f0)
}

func TestLeadingOrderTwist2Positive(t *testing.T) {
	l := newLCSR(t, nil)
	for _, q2 := range []float64{-1, 0, 0.5} {
		v, err := l.Kernel(FLOTw2, q2, l.BorelM2(), Plain)
		require.NoError(t, err)
		assert.Greater(t, v, 0.0, "q2=%g", q2)
	}
}

func TestKernelFailureIsTagged(t *testing.T) {
	l := newLCSR(t, nil)
	_, err := l.Kernel(FLOTw2, 0.5, math.NaN(), Plain)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNumerical)

	var nerr *errs.NumericalError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, string(FLOTw2), nerr.Kernel)
	assert.Equal(t, 0.5, nerr.Point)
	assert.Equal(t, 1.0, nerr.Bound)
}

func TestKernelUnknown(t *testing.T) {
	l := newLCSR(t, nil)
	_, err := l.Kernel("F_nnlo_tw5", 0, l.BorelM2(), Plain)
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestDiagnosticsOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("evaluates every sum rule")
	}
	diags := newLCSR(t, nil).Diagnostics()
	require.Len(t, diags, 16)
	assert.Equal(t, "f_D", diags[3].Label)
	assert.Equal(t, "M_D(f_T, q2 = 10.0)", diags[15].Label)
	for _, d := range diags {
		if d.Err != nil {
			assert.True(t, math.IsNaN(d.Value), d.Label)
		}
	}
	for _, d := range diags[:3] {
		assert.NoError(t, d.Err, d.Label)
	}
}

func TestBSZ2015(t *testing.T) {
	for _, process := range []string{"D->pi", "D->K", "D_s->K"} {
		t.Run(process, func(t *testing.T) {
			p := params.Defaults()
			f, err := NewBSZ2015(process, p, nil)
			require.NoError(t, err)

			fp, err := f.FPlus(0)
			require.NoError(t, err)
			f0, err := f.FZero(0)
			require.NoError(t, err)
			assert.Equal(t, fp, f0)

			a0, err := p.Get(process + "::alpha^f+_0@BSZ2015")
			require.NoError(t, err)
			assert.InDelta(t, a0, fp, 1e-15)

			// The pole makes f+ grow toward the end of phase space.
			fpMax, err := f.FPlus(1.5)
			require.NoError(t, err)
			assert.Greater(t, fpMax, fp)
		})
	}
}

func TestBSZ2015ObservesParameterUpdates(t *testing.T) {
	p := params.Defaults()
	f, err := NewBSZ2015("D->pi", p, nil)
	require.NoError(t, err)
	require.NoError(t, p.Set("D->pi::alpha^fT_0@BSZ2015", 0.42))
	ft, err := f.FT(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.42, ft, 1e-15)
}

func TestBSZ2015FPlusT(t *testing.T) {
	f, err := NewBSZ2015("D->K", params.Defaults(), nil)
	require.NoError(t, err)

	v, err := f.FPlusT(0)
	require.NoError(t, err)
	assert.Zero(t, v)

	for _, q2 := range []float64{-0.5, 0.4, 1.2} {
		ft, err := f.FT(q2)
		require.NoError(t, err)
		got, err := f.FPlusT(q2)
		require.NoError(t, err)
		assert.InDelta(t, ft*q2/1.86723/(1.86723+0.49368), got, 1e-15, "q2=%g", q2)
	}

	_, err = f.FPlusT(pow2(2.1122))
	assert.ErrorIs(t, err, errs.ErrNotFinite)
}

func TestMake(t *testing.T) {
	tests := []struct {
		name    string
		process string
		variant string
		wantErr bool
	}{
		{name: "lcsr", process: "D->pi", variant: "KKMO2009"},
		{name: "bsz", process: "D->K", variant: "BSZ2015"},
		{name: "lcsr only for pions", process: "D->K", variant: "KKMO2009", wantErr: true},
		{name: "unknown variant", process: "D->pi", variant: "BCL2008", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := params.NewUser()
			ff, err := Make(tt.process, tt.variant, params.Defaults(), nil, u)
			if tt.wantErr {
				require.Error(t, err)
				var cerr *errs.ConfigurationError
				assert.ErrorAs(t, err, &cerr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, ff)
			assert.NotEmpty(t, u.Used())
		})
	}
}

func TestReferenceSetRejectsUnknownParameter(t *testing.T) {
	s := ReferenceSet{Name: "broken", Overrides: map[string]float64{"nope::x": 1}}
	_, err := s.Evaluate(params.Defaults())
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestReferenceSetsAreWellFormed(t *testing.T) {
	p := params.Defaults()
	for _, s := range ReferenceSets {
		for name := range s.Overrides {
			_, err := p.Get(name)
			assert.NoError(t, err, "%s: %s", s.Name, name)
		}
		for _, e := range s.Entries {
			assert.Positive(t, e.Tolerance, e.Label)
		}
	}
}

type failingFT struct{ FormFactors }

func (failingFT) FT(float64) (float64, error) { return 0, errs.ErrNumerical }

func TestTabulate(t *testing.T) {
	p := params.Defaults()
	ff, err := Make("D->K", "BSZ2015", p, nil, nil)
	require.NoError(t, err)

	pts := Tabulate(ff, []float64{0, 0.5})
	require.Len(t, pts, 2)
	for _, pt := range pts {
		require.NoError(t, pt.Err)
		fp, _ := ff.FPlus(pt.Q2)
		assert.Equal(t, fp, pt.FPlus)
	}

	bad := Tabulate(failingFT{ff}, []float64{0.5})
	assert.ErrorIs(t, bad[0].Err, errs.ErrNumerical)
	assert.True(t, math.IsNaN(bad[0].FT))
	assert.False(t, math.IsNaN(bad[0].FPlus))
}
