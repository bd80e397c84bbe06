package model

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/params"
	"github.com/verte-zerg/semilep/internal/process"
)

func newSM(t *testing.T) (*SM, *params.Parameters) {
	t.Helper()
	p := params.Defaults()
	m, err := NewSM(p, params.NewUser())
	require.NoError(t, err)
	return m, p
}

func TestAlphaSRunning(t *testing.T) {
	m, p := newSM(t)
	aMZ, err := p.Get("QCD::alpha_s(MZ)")
	require.NoError(t, err)

	assert.InDelta(t, aMZ, m.AlphaS(91.1876), 1e-12)
	assert.InDelta(t, 0.225, m.AlphaS(4.18), 0.01)
	assert.InDelta(t, 0.30, m.AlphaS(2.0), 0.02)

	prev := m.AlphaS(1.0)
	for _, mu := range []float64{1.27, 1.5, 2, 4.18, 10, 91.1876} {
		cur := m.AlphaS(mu)
		assert.Less(t, cur, prev, "alpha_s must decrease with the scale (mu=%g)", mu)
		prev = cur
	}
}

func TestAlphaSObservesParameterChanges(t *testing.T) {
	m, p := newSM(t)
	before := m.AlphaS(2.0)
	require.NoError(t, p.Set("QCD::alpha_s(MZ)", 0.1230))
	assert.Greater(t, m.AlphaS(2.0), before)
}

func TestRunningMasses(t *testing.T) {
	m, _ := newSM(t)
	assert.InDelta(t, 1.27, m.MassMSbar(FlavorC, 1.27), 1e-12)
	assert.InDelta(t, 0.0934, m.MassMSbar(FlavorS, 2.0), 1e-12)

	mc2 := m.MassMSbar(FlavorC, 2.0)
	assert.Less(t, mc2, 1.27)
	assert.InDelta(t, 1.10, mc2, 0.05)

	// Mass ratios are scale independent at this order.
	r1 := m.MassMSbar(FlavorS, 1.5) / m.MassMSbar(FlavorD, 1.5)
	r2 := m.MassMSbar(FlavorS, 3.0) / m.MassMSbar(FlavorD, 3.0)
	assert.InDelta(t, r1, r2, 1e-9)
	assert.True(t, math.IsNaN(m.MassMSbar(Flavor(42), 2.0)))
}

func TestCKMUnitarityRow(t *testing.T) {
	m, _ := newSM(t)
	vcd, vcs := m.CKM(process.QuarkD), m.CKM(process.QuarkS)
	assert.InDelta(t, 0.2249, cmplx.Abs(vcd), 1e-3)
	assert.InDelta(t, 0.9735, cmplx.Abs(vcs), 1e-3)
	// |V_cb|^2 = (A lambda^2)^2 c13^2 to the quoted precision.
	vcb2 := math.Pow(0.826*0.225*0.225, 2)
	sum := math.Pow(cmplx.Abs(vcd), 2) + math.Pow(cmplx.Abs(vcs), 2) + vcb2
	assert.InDelta(t, 1.0, sum, 1e-5)
}

func TestMake(t *testing.T) {
	p := params.Defaults()
	u := params.NewUser()
	sm, err := Make("SM", p, u)
	require.NoError(t, err)
	assert.Equal(t, Couplings{CVL: 1}, sm.WilsonCoefficients(process.QuarkD, Muon, false))
	assert.Contains(t, u.Used(), "QCD::alpha_s(MZ)")

	_, err = Make("2HDM", p, u)
	require.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestWETReadsCouplings(t *testing.T) {
	p := params.Defaults()
	require.NoError(t, p.Set("dcmunumu::Re{cSL}", 0.1))
	require.NoError(t, p.Set("dcmunumu::Im{cSL}", 0.2))
	w, err := Make("WET", p, nil)
	require.NoError(t, err)

	c := w.WilsonCoefficients(process.QuarkD, Muon, false)
	assert.Equal(t, complex(1, 0), c.CVL)
	assert.Equal(t, complex(0.1, 0.2), c.CSL)
	assert.Equal(t, complex(0.1, -0.2), w.WilsonCoefficients(process.QuarkD, Muon, true).CSL)
	assert.Equal(t, complex(0, 0), w.WilsonCoefficients(process.QuarkS, Muon, false).CSL)
}

func TestBundleFor(t *testing.T) {
	m, _ := newSM(t)
	b, err := BundleFor(m, process.QuarkS)
	require.NoError(t, err)
	assert.Equal(t, FlavorS, b.Light)
	assert.Equal(t, m.CKM(process.QuarkS), b.CKM())
	assert.Equal(t, m.MassMSbar(FlavorS, 2.0), b.LightMass(2.0))

	_, err = BundleFor(m, process.HeavyQuark(7))
	require.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestParseLepton(t *testing.T) {
	l, err := ParseLepton("tau")
	require.NoError(t, err)
	assert.Equal(t, Tau, l)
	assert.Equal(t, "dctaunutau", SectorPrefix(process.QuarkD, l))
	_, err = ParseLepton("nu")
	require.ErrorIs(t, err, errs.ErrConfiguration)
}
