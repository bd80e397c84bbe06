package lcda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/model"
	"github.com/verte-zerg/semilep/internal/params"
	"github.com/verte-zerg/semilep/internal/quad"
)

func newPion(t *testing.T) *Pion {
	t.Helper()
	p := params.Defaults()
	sm, err := model.NewSM(p, nil)
	require.NoError(t, err)
	pi, err := NewPion(sm, p, nil)
	require.NoError(t, err)
	return pi
}

func TestLCDANormalization(t *testing.T) {
	m := newPion(t).At(1.5)
	for name, f := range map[string]quad.Func{
		"phi":   m.Phi,
		"phi3p": m.Phi3p,
		"phi3s": m.Phi3s,
	} {
		got, err := quad.QAGS(f, 0, 1, quad.DefaultConfig().WithEpsRel(1e-10))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-9, name)
	}
	// psi4 integrates to zero, so the relative tolerance alone never converges.
	got, err := quad.QAGS(m.Psi4, 0, 1, quad.Config{EpsAbs: 1e-12, EpsRel: 1e-10, Limit: 1000})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-10)
}

func TestDerivativesMatchFiniteDifferences(t *testing.T) {
	m := newPion(t).At(2.0)
	const h = 1e-5
	for _, u := range []float64{0.05, 0.2, 0.5, 0.73, 0.95} {
		fd := func(f func(float64) float64) float64 { return (f(u+h) - f(u-h)) / (2 * h) }
		assert.InDelta(t, fd(m.Phi3s), m.Phi3sD1(u), 1e-6, "phi3s' at u=%g", u)
		assert.InDelta(t, fd(m.Phi4), m.Phi4D1(u), 1e-6, "phi4' at u=%g", u)
		assert.InDelta(t, fd(m.Phi4D1), m.Phi4D2(u), 1e-5, "phi4'' at u=%g", u)
		assert.InDelta(t, fd(m.Psi4I), m.Psi4(u), 1e-8, "psi4 at u=%g", u)
	}
}

func TestMomentsAtReferenceScale(t *testing.T) {
	pi := newPion(t)
	m := pi.At(1.0)
	assert.InDelta(t, 0.17, m.A2, 1e-12)
	assert.InDelta(t, 0.18, m.Delta2, 1e-12)
	assert.InDelta(t, 0.0045, pi.F3Pi(1.0), 1e-12)

	// Gegenbauer moments decrease toward higher scales.
	assert.Less(t, pi.A2Pi(2.0), pi.A2Pi(1.0))
	assert.Less(t, pi.A4Pi(2.0)/pi.A4Pi(1.0), pi.A2Pi(2.0)/pi.A2Pi(1.0))
	assert.Greater(t, pi.MuPi(2.0), 1.0)
	assert.Less(t, pi.Omega4Pi(2.0), pi.Omega4Pi(1.0))
	assert.Less(t, pi.DeltaPiPi(2.0), pi.DeltaPiPi(1.0))
	assert.Greater(t, pi.Omega3Pi(2.0), pi.Omega3Pi(1.0))
}

func TestSymmetry(t *testing.T) {
	m := newPion(t).At(1.5)
	for _, u := range []float64{0.1, 0.3, 0.45} {
		assert.InDelta(t, m.Phi(u), m.Phi(1-u), 1e-12)
		assert.InDelta(t, m.Phi4(u), m.Phi4(1-u), 1e-12)
		assert.InDelta(t, -m.Psi4I(u), m.Psi4I(1-u), 1e-12)
	}
}
