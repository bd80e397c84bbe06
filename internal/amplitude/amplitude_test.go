package amplitude

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/model"
	"github.com/verte-zerg/semilep/internal/params"
	"github.com/verte-zerg/semilep/internal/process"
)

type constantFF struct {
	fp, f0, fT float64
	err        error
}

func (c constantFF) FPlus(float64) (float64, error) { return c.fp, c.err }
func (c constantFF) FZero(float64) (float64, error) { return c.f0, c.err }
func (c constantFF) FT(float64) (float64, error)    { return c.fT, c.err }

func newEngine(t *testing.T, p *params.Parameters, modelName string, ff constantFF) *Engine {
	t.Helper()
	d, err := process.Resolve(process.Key{Heavy: process.QuarkD, Spectator: process.SpectatorD, Isospin: process.IsospinOne})
	require.NoError(t, err)
	m, err := model.Make(modelName, p, nil)
	require.NoError(t, err)
	e, err := New(Config{Descriptor: d, Lepton: model.Muon}, m, ff, p, nil)
	require.NoError(t, err)
	return e
}

func TestOutsidePhaseSpace(t *testing.T) {
	e := newEngine(t, params.Defaults(), "SM", constantFF{fp: 0.6, f0: 0.6, fT: 0.5})
	ps := e.PhaseSpace()
	for _, s := range []float64{0, ps.Min / 2, ps.Max + 1e-6, 10} {
		a, err := e.At(s)
		require.NoError(t, err)
		assert.Equal(t, Amplitudes{V: 0.99}, a, "s=%g", s)
		assert.False(t, math.IsNaN(math.Sqrt(1-a.V)))
	}
}

func TestStandardModelAmplitudes(t *testing.T) {
	p := params.Defaults()
	ff := constantFF{fp: 0.6, f0: 0.55, fT: 0.5}
	e := newEngine(t, p, "SM", ff)

	const s = 1.0
	a, err := e.At(s)
	require.NoError(t, err)

	mD, mP := e.Masses()
	mMu, err := p.Get("mass::mu")
	require.NoError(t, err)
	lam := mD*mD*mD*mD + mP*mP*mP*mP + s*s - 2*(mD*mD*mP*mP+mP*mP*s+s*mD*mD)
	mom := math.Sqrt(lam) / (2 * mD)
	v := 1 - mMu*mMu/s

	assert.InDelta(t, mom, a.P, 1e-14)
	assert.InDelta(t, v, a.V, 1e-14)
	assert.InDelta(t, 2*mD*mom*0.6, real(a.H0), 1e-12)
	assert.InDelta(t, (mD*mD-mP*mP)*0.55, real(a.Ht), 1e-12)
	assert.Zero(t, a.HS)
	assert.Zero(t, a.HT)
	assert.Equal(t, a.Ht, a.HtS)

	gf, err := p.Get("WET::G_Fermi")
	require.NoError(t, err)
	assert.InDelta(t, v*v*s*gf*gf/(256*math.Pi*math.Pi*math.Pi*mD*mD), a.NF, 1e-25)
}

func TestScalarCouplingShiftsTimelike(t *testing.T) {
	p := params.Defaults()
	require.NoError(t, p.Set("dcmunumu::Re{cSL}", 0.1))
	e := newEngine(t, p, "WET", constantFF{fp: 0.6, f0: 0.55, fT: 0.5})

	a, err := e.At(1.0)
	require.NoError(t, err)
	assert.Less(t, real(a.HS), 0.0)
	assert.NotEqual(t, a.Ht, a.HtS)
	assert.InDelta(t, real(a.Ht-a.HS/complex(math.Sqrt(1-a.V), 0)), real(a.HtS), 1e-12)
}

func TestNonFiniteAmplitude(t *testing.T) {
	e := newEngine(t, params.Defaults(), "SM", constantFF{fp: math.NaN(), f0: 0.5, fT: 0.5})
	_, err := e.At(1.0)
	require.Error(t, err)
	var nerr *errs.NumericalError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "amplitudes", nerr.Kernel)
	assert.Equal(t, 1.0, nerr.Point)
}

func TestFormFactorErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	e := newEngine(t, params.Defaults(), "SM", constantFF{err: boom})
	_, err := e.At(1.0)
	assert.ErrorIs(t, err, boom)
}
