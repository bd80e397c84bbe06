package formfactor

import (
	"math"

	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/params"
)

// poles holds the hadron masses that fix the z map and the resonance poles of
// one BSZ2015 channel.
type poles struct {
	mParent   float64
	mDaughter float64
	// m1m and m0p are the lowest 1^- and 0^+ resonances in the c -> Q channel.
	m1m float64
	m0p float64
}

var bszPoles = map[string]poles{
	"D->pi":  {mParent: 1.86723, mDaughter: 0.13957, m1m: 2.01026, m0p: 2.343},
	"D->K":   {mParent: 1.86723, mDaughter: 0.49368, m1m: 2.1122, m0p: 2.317},
	"D_s->K": {mParent: 1.96834, mDaughter: 0.49368, m1m: 2.01026, m0p: 2.343},
}

// BSZ2015 is the simplified series expansion in z with a single pole per form
// factor. f0 reuses the zeroth f+ coefficient, so f0(0) = f+(0) holds for any
// parameter values.
type BSZ2015 struct {
	process string
	aPlus   [3]params.Parameter
	aZero   [2]params.Parameter
	aT      [3]params.Parameter

	poles poles
	tauP  float64
	tau0  float64
	z0    float64
}

// NewBSZ2015 binds the expansion coefficients of process.
func NewBSZ2015(process string, p *params.Parameters, u *params.User) (*BSZ2015, error) {
	pl, ok := bszPoles[process]
	if !ok {
		return nil, errs.Configf("form-factors", process+"::BSZ2015", "no BSZ2015 parametrization for %s", process)
	}

	b := params.NewBinder(p, u)
	name := func(ff string) string {
		return process + "::alpha^" + ff + "@BSZ2015"
	}
	f := &BSZ2015{
		process: process,
		aPlus:   [3]params.Parameter{b.Bind(name("f+_0")), b.Bind(name("f+_1")), b.Bind(name("f+_2"))},
		aZero:   [2]params.Parameter{b.Bind(name("f0_1")), b.Bind(name("f0_2"))},
		aT:      [3]params.Parameter{b.Bind(name("fT_0")), b.Bind(name("fT_1")), b.Bind(name("fT_2"))},
		poles:   pl,
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	f.tauP = pow2(pl.mParent + pl.mDaughter)
	tauM := pow2(pl.mParent - pl.mDaughter)
	f.tau0 = f.tauP * (1 - math.Sqrt(1-tauM/f.tauP))
	f.z0 = f.z(0)
	return f, nil
}

// z maps q2 onto the unit disk. Above the pair threshold the real part of the
// analytic continuation is used.
func (f *BSZ2015) z(q2 float64) float64 {
	a := f.tauP - q2
	b := math.Sqrt(f.tauP - f.tau0)
	if a >= 0 {
		sa := math.Sqrt(a)
		return (sa - b) / (sa + b)
	}
	// sqrt(a) = i*y with y > 0; (iy - b)/(iy + b) has real part (b^2 - y^2)/(b^2 + y^2).
	y2 := -a
	return (b*b - y2) / (b*b + y2)
}

func (f *BSZ2015) series(q2, m2R, a0, a1, a2 float64) float64 {
	dz := f.z(q2) - f.z0
	return (a0 + a1*dz + a2*dz*dz) / (1 - q2/m2R)
}

// FPlus returns f+(q2).
func (f *BSZ2015) FPlus(q2 float64) (float64, error) {
	return f.finite("f_+", q2, f.series(q2, pow2(f.poles.m1m), f.aPlus[0].Value(), f.aPlus[1].Value(), f.aPlus[2].Value()))
}

// FZero returns f0(q2).
func (f *BSZ2015) FZero(q2 float64) (float64, error) {
	return f.finite("f_0", q2, f.series(q2, pow2(f.poles.m0p), f.aPlus[0].Value(), f.aZero[0].Value(), f.aZero[1].Value()))
}

// FT returns fT(q2).
func (f *BSZ2015) FT(q2 float64) (float64, error) {
	return f.finite("f_T", q2, f.series(q2, pow2(f.poles.m1m), f.aT[0].Value(), f.aT[1].Value(), f.aT[2].Value()))
}

// FPlusT returns f+^T(q2) = fT(q2) q2 / (m_parent (m_parent + m_daughter)),
// which vanishes at q2 = 0.
func (f *BSZ2015) FPlusT(q2 float64) (float64, error) {
	mP, mD := f.poles.mParent, f.poles.mDaughter
	ft := f.series(q2, pow2(f.poles.m1m), f.aT[0].Value(), f.aT[1].Value(), f.aT[2].Value())
	return f.finite("f_+^T", q2, ft*q2/mP/(mP+mD))
}

func (f *BSZ2015) finite(kernel string, q2, v float64) (float64, error) {
	return errs.Finite(f.process+"::"+kernel, q2, v)
}
