package special

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReLi2KnownValues(t *testing.T) {
	ln2 := math.Ln2
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "zero", x: 0, want: 0},
		{name: "one", x: 1, want: pi2 / 6},
		{name: "minus one", x: -1, want: -pi2 / 12},
		{name: "half", x: 0.5, want: pi2/12 - 0.5*ln2*ln2},
		{name: "two", x: 2, want: pi2 / 4},
		{name: "small", x: 1e-3, want: 1e-3 + 1e-6/4 + 1e-9/9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ReLi2(tt.x), 1e-13)
		})
	}
}

func TestReLi2Identities(t *testing.T) {
	// Euler reflection and the inversion formula hold across branch boundaries.
	for _, x := range []float64{0.05, 0.3, 0.49, 0.51, 0.7, 0.95} {
		lhs := ReLi2(x) + ReLi2(1-x)
		rhs := pi2/6 - math.Log(x)*math.Log(1-x)
		assert.InDelta(t, rhs, lhs, 1e-13, "reflection at x=%g", x)
	}
	for _, x := range []float64{-0.2, -0.6, -0.99, -1.5, -7.0, -40.0} {
		l := math.Log(-x)
		lhs := ReLi2(x) + ReLi2(1/x)
		assert.InDelta(t, -pi2/6-0.5*l*l, lhs, 1e-12, "inversion at x=%g", x)
	}
	for _, x := range []float64{-0.9, -0.4, 0.2, 0.45} {
		// Duplication: Li2(x) + Li2(-x) = Li2(x^2)/2.
		assert.InDelta(t, 0.5*ReLi2(x*x), ReLi2(x)+ReLi2(-x), 1e-13, "duplication at x=%g", x)
	}
}

func TestE1(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{x: 0.1, want: 1.8229239584193906},
		{x: 0.5, want: 0.5597735947761608},
		{x: 1, want: 0.21938393439552029},
		{x: 2, want: 0.048900510708061},
		{x: 5, want: 0.0011482955912753257},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, E1(tt.x), 1e-12*math.Max(1, tt.want), "E1(%g)", tt.x)
	}
	assert.True(t, math.IsNaN(E1(0)))
	assert.True(t, math.IsNaN(E1(-1)))
}
