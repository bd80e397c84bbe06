package formfactor

import (
	"math"

	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/lcda"
	"github.com/verte-zerg/semilep/internal/model"
	"github.com/verte-zerg/semilep/internal/options"
	"github.com/verte-zerg/semilep/internal/params"
	"github.com/verte-zerg/semilep/internal/quad"
	"github.com/verte-zerg/semilep/internal/special"
)

const (
	pi  = math.Pi
	pi2 = math.Pi * math.Pi
)

// Weight selects what a sum-rule kernel integrates.
type Weight float64

const (
	// Plain is the regular integral.
	Plain Weight = 0
	// Derivative is the integral of the derivative with respect to -1/M^2,
	// used by the daughter-mass estimates.
	Derivative Weight = 1
)

// threshold picks one of the three duality thresholds.
type threshold int

const (
	thresholdPlus threshold = iota
	thresholdZero
	thresholdTensor
)

// LCSR computes the D->pi form factors from light-cone sum rules at
// next-to-leading order in alpha_s, including twist-2, twist-3 and
// leading-order twist-4 contributions.
type LCSR struct {
	model model.Model
	pion  *lcda.Pion

	mD  params.Parameter
	mPi params.Parameter
	fPi params.Parameter

	m2       params.Parameter
	mPrime2  params.Parameter
	s0Plus   [3]params.Parameter
	s0Zero   [3]params.Parameter
	s0Tensor [3]params.Parameter
	sPrime0B params.Parameter
	mu       params.Parameter
	zeta     params.Parameter

	m02    params.Parameter
	condGG params.Parameter
	rVac   params.Parameter

	rescale bool
	cfg     quad.Config
}

// NewLCSR binds the sum-rule parameters and reads the rescale-borel option.
func NewLCSR(p *params.Parameters, o options.Options, u *params.User) (*LCSR, error) {
	rescale, err := o.Bool(options.KeyRescaleBorel, true)
	if err != nil {
		return nil, err
	}

	// The sum rule always runs in the Standard Model.
	m, err := model.NewSM(p, u)
	if err != nil {
		return nil, err
	}
	pion, err := lcda.NewPion(m, p, u)
	if err != nil {
		return nil, err
	}

	b := params.NewBinder(p, u)
	triple := func(prefix string) [3]params.Parameter {
		return [3]params.Parameter{
			b.Bind("D->pi::" + prefix + "(0)@KKMO2009"),
			b.Bind("D->pi::" + prefix + "'(0)@KKMO2009"),
			b.Bind("D->pi::" + prefix + "''(0)@KKMO2009"),
		}
	}
	l := &LCSR{
		model:    m,
		pion:     pion,
		mD:       b.Bind("mass::D_d"),
		mPi:      b.Bind("mass::pi^+"),
		fPi:      b.Bind("decay-constant::pi"),
		m2:       b.Bind("D->pi::M^2@KKMO2009"),
		mPrime2:  b.Bind("D->pi::Mp^2@KKMO2009"),
		s0Plus:   triple("s_0^+"),
		s0Zero:   triple("s_0^0"),
		s0Tensor: triple("s_0^T"),
		sPrime0B: b.Bind("D->pi::sp_0^B@KKMO2009"),
		mu:       b.Bind("D->pi::mu@KKMO2009"),
		zeta:     b.Bind("D->pi::zeta(NNLO)@KKMO2009"),
		m02:      b.Bind("QCD::m_0^2"),
		condGG:   b.Bind("QCD::cond_GG"),
		rVac:     b.Bind("QCD::r_vac"),
		rescale:  rescale,
		cfg:      quad.DefaultConfig().WithEpsRel(1e-3),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

func quadratic(c [3]params.Parameter, q2 float64) float64 {
	return c[0].Value() + c[1].Value()*q2 + c[2].Value()*0.5*q2*q2
}

// S0Plus is the threshold of the f+ sum rule at q2.
func (l *LCSR) S0Plus(q2 float64) float64 { return quadratic(l.s0Plus, q2) }

// S0Zero is the threshold of the f0 sum rule at q2.
func (l *LCSR) S0Zero(q2 float64) float64 { return quadratic(l.s0Zero, q2) }

// S0Tensor is the threshold of the fT sum rule at q2.
func (l *LCSR) S0Tensor(q2 float64) float64 { return quadratic(l.s0Tensor, q2) }

func (l *LCSR) threshold(t threshold, q2 float64) float64 {
	switch t {
	case thresholdZero:
		return l.S0Zero(q2)
	case thresholdTensor:
		return l.S0Tensor(q2)
	default:
		return l.S0Plus(q2)
	}
}

// point holds everything a kernel needs that does not depend on the
// integration variable.
type point struct {
	mu   float64
	mc   float64
	mc2  float64
	mpi  float64
	mpi2 float64
	fpi  float64
	lcda lcda.Moments
}

func (l *LCSR) point() point {
	mu := l.mu.Value()
	mc := l.model.MassMSbar(model.FlavorC, mu)
	mpi := l.mPi.Value()
	return point{
		mu:   mu,
		mc:   mc,
		mc2:  mc * mc,
		mpi:  mpi,
		mpi2: mpi * mpi,
		fpi:  l.fPi.Value(),
		lcda: l.pion.At(mu),
	}
}

// dual is u times the invariant mass squared of the interpolating current
// at light-cone momentum fraction u.
func (p *point) dual(u, q2 float64) float64 {
	return p.mc2 - q2*(1-u) + p.mpi2*u*(1-u)
}

func (p *point) borel(u, q2, m2 float64) float64 {
	return math.Exp(-p.dual(u, q2) / (u * m2))
}

func (p *point) weight(u, q2 float64, w Weight) float64 {
	x := float64(w)
	return (1 - x) + x*p.dual(u, q2)/u
}

// u0 is the lower bound of the light-cone integrals for threshold s0.
func (p *point) u0(q2, s0 float64) float64 {
	return math.Max(1e-10, (p.mc2-q2)/(s0-q2))
}

func (l *LCSR) integrate(kernel string, q2 float64, f quad.Func, a, b float64) (float64, error) {
	v, err := quad.QAGS(f, a, b, l.cfg)
	if err != nil {
		return 0, &errs.NumericalError{Kernel: kernel, Point: q2, Bound: b, Err: err}
	}
	return v, nil
}

func pow2(x float64) float64 { return x * x }

func pow3(x float64) float64 { return x * x * x }

func pow4(x float64) float64 { return pow2(x * x) }

func powi(x float64, n int) float64 {
	r := 1.0
	for ; n > 0; n-- {
		r *= x
	}
	return r
}

// Rho1 is the O(alpha_s) spectral density of the two-point correlator of
// pseudoscalar charm currents.
func Rho1(s, mc, mu float64) float64 {
	mc2 := mc * mc
	x := mc2 / s
	lnx := math.Log(x)
	ln1mx := math.Log(1 - x)
	li2 := special.ReLi2(x)
	lnmumc := math.Log(mu / mc)

	return s / 2 * (1 - x) * ((1-x)*(4*li2+2*lnx*ln1mx-(5-2*x)*ln1mx) +
		(1-2*x)*(3-x)*lnx + 3*(1-3*x)*2*lnmumc +
		(17-33*x)/2)
}

// delta1 is the O(alpha_s) correction to the quark-condensate term.
func delta1(mc, mu, mPrime2 float64) float64 {
	mc2 := mc * mc
	mu2 := mu * mu
	gamma := special.E1(mc2 / mPrime2)
	return -3.0 / 2 * (gamma*math.Exp(mc2/mPrime2) - 1 - (1-mc2/mPrime2)*(math.Log(mu2/mc2)+4.0/3))
}

// condensates is the nonperturbative part of the two-point sum rule.
type condensates struct {
	qqMu, qq1       float64
	alphaMu, alpha1 float64
}

func (l *LCSR) condensates(p point) condensates {
	fpi2 := p.fpi * p.fpi
	return condensates{
		qqMu:    -fpi2 * p.lcda.MuPi / 2,
		qq1:     -fpi2 * l.pion.MuPi(1.0) / 2,
		alphaMu: l.model.AlphaS(p.mu),
		alpha1:  l.model.AlphaS(1.0),
	}
}

// twoPoint integrates the perturbative spectral density up to sp_0^B.
// With withS the integrand carries an extra factor s.
func (l *LCSR) twoPoint(kernel string, p point, c condensates, withS bool) (float64, error) {
	const eps = 1e-10
	mp2 := l.mPrime2.Value()
	f := func(s float64) float64 {
		lo := (s - p.mc2) * (s - p.mc2) / s
		if withS {
			lo *= s
			return math.Exp(-s/mp2) * (lo + 4*s*c.alphaMu/(3*pi)*Rho1(s, p.mc, p.mu))
		}
		return math.Exp(-s/mp2) * (lo + 4*c.alphaMu/(3*pi)*Rho1(s, p.mc, p.mu))
	}
	return l.integrate(kernel, 0, f, p.mc2+eps, l.sPrime0B.Value())
}

// condensateTerm is the bracket multiplying exp(-mc^2/M'^2) in the
// two-point sum rule.
func (l *LCSR) condensateTerm(p point, c condensates, rVac float64) float64 {
	mp2 := l.mPrime2.Value()
	mp4 := mp2 * mp2
	mc, mc2 := p.mc, p.mc2
	mc4 := mc2 * mc2
	return -mc*c.qqMu*(1+4*c.alphaMu/(3*pi)*delta1(mc, p.mu, mp2)) -
		mc*c.qq1*l.m02.Value()/(2*mp2)*(1-mc2/(2*mp2)) +
		l.condGG.Value()/12 -
		16*pi*c.alpha1*c.qq1*c.qq1*rVac/(27*mp2)*(1-mc2/(4*mp2)-mc4/(12*mp4))
}

// DecayConstant is f_D from the two-point sum rule at O(alpha_s).
func (l *LCSR) DecayConstant() (float64, error) {
	p := l.point()
	c := l.condensates(p)
	mD2 := pow2(l.mD.Value())
	mp2 := l.mPrime2.Value()

	integral, err := l.twoPoint("decay constant", p, c, false)
	if err != nil {
		return 0, err
	}
	result := math.Exp(mD2/mp2) / (mD2 * mD2) * (3*p.mc2/(8*pi2)*integral +
		p.mc2*math.Exp(-p.mc2/mp2)*l.condensateTerm(p, c, l.rVac.Value()))
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, errs.Numerical("f_D", 0, errs.ErrNotFinite)
	}
	if result <= 0 {
		return 0, errs.Numerical("f_D", 0, errs.ErrNotPositive)
	}
	return math.Sqrt(result), nil
}

// MDSVZ is the D mass predicted by the two-point sum rule.
func (l *LCSR) MDSVZ() (float64, error) {
	p := l.point()
	c := l.condensates(p)
	mp2 := l.mPrime2.Value()
	mp4 := mp2 * mp2
	mc, mc2 := p.mc, p.mc2
	mc4 := mc2 * mc2

	num, err := l.twoPoint("M_D (SVZ)", p, c, true)
	if err != nil {
		return 0, err
	}
	den, err := l.twoPoint("M_D (SVZ)", p, c, false)
	if err != nil {
		return 0, err
	}

	e := math.Exp(-mc2 / mp2)
	bracket := l.condensateTerm(p, c, 1)
	numerator := 3*mc2/(8*pi2)*num +
		mc4*e*bracket +
		mc2*e*(-mc*c.qqMu*4*c.alphaMu/(3*pi)*delta1(mc, p.mu, mp2)-
			mc*c.qq1*l.m02.Value()/(2*mp2)*(mc2-mp2)+
			16*pi*c.alpha1*c.qq1*c.qq1/(27*4*mp4)*(4*mp4-2*mp2*mc2-mc4))
	denominator := 3*mc2/(8*pi2)*den + mc2*e*bracket
	if denominator == 0 {
		return 0, errs.Numerical("M_D (SVZ)", 0, errs.ErrZeroDenominator)
	}
	m2 := numerator / denominator
	if m2 < 0 {
		return 0, errs.Numerical("M_D (SVZ)", 0, errs.ErrNotPositive)
	}
	return errs.Finite("M_D (SVZ)", 0, math.Sqrt(m2))
}
