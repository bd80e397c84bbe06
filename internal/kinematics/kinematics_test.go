package kinematics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLambda(t *testing.T) {
	assert.Equal(t, 0.0, Lambda(4, 1, 1))
	assert.Equal(t, 1.0, Lambda(1, 0, 0))
	assert.Equal(t, Lambda(2, 3, 5), Lambda(5, 2, 3))
}

func TestMomentum(t *testing.T) {
	const mD, mPi = 1.86965, 0.13957
	// Zero recoil: the daughter is at rest.
	assert.InDelta(t, 0.0, Momentum(mD, mPi, (mD-mPi)*(mD-mPi)), 1e-7)
	// Maximum recoil at q2 = 0.
	want := (mD*mD - mPi*mPi) / (2 * mD)
	assert.InDelta(t, want, Momentum(mD, mPi, 0), 1e-12)
	// Above the endpoint the radicand is clamped.
	assert.Equal(t, 0.0, Momentum(mD, mPi, 4.0))
}

func TestRecoilRoundTrip(t *testing.T) {
	const mD, mK = 1.86483, 0.493677
	for _, q2 := range []float64{0, 0.3, 1.0, 1.88} {
		w := RecoilFromQ2(mD, mK, q2)
		assert.InDelta(t, q2, Q2FromRecoil(mD, mK, w), 1e-12)
	}
	ps := NewPhaseSpace(mD, mK, 0.1056584)
	wMin, wMax := ps.RecoilRange(mD, mK)
	assert.InDelta(t, 1.0, wMin, 1e-12)
	assert.Greater(t, wMax, wMin)
}

func TestPhaseSpace(t *testing.T) {
	ps := NewPhaseSpace(1.86965, 0.13957, 0.000510999)
	assert.True(t, ps.Contains(ps.Min))
	assert.True(t, ps.Contains(ps.Max))
	assert.True(t, ps.Contains(1.0))
	assert.False(t, ps.Contains(0))
	assert.False(t, ps.Contains(ps.Max+1e-9))
	assert.InDelta(t, 1.0, LeptonVelocity(0, 1.0), 0)
	assert.InDelta(t, 0.75, LeptonVelocity(0.5, 1.0), 1e-15)
}
