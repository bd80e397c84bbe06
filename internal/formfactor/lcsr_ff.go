package formfactor

import (
	"math"

	"github.com/verte-zerg/semilep/internal/errs"
)

// Kernel names one correlation-function contribution of the sum rule.
type Kernel string

const (
	FLOTw2     Kernel = "F_lo_tw2"
	FLOTw3     Kernel = "F_lo_tw3"
	FLOTw4     Kernel = "F_lo_tw4"
	FNLOTw2    Kernel = "F_nlo_tw2"
	FNLOTw3    Kernel = "F_nlo_tw3"
	FtilLOTw3  Kernel = "Ftil_lo_tw3"
	FtilLOTw4  Kernel = "Ftil_lo_tw4"
	FtilNLOTw2 Kernel = "Ftil_nlo_tw2"
	FtilNLOTw3 Kernel = "Ftil_nlo_tw3"
	FTLOTw2    Kernel = "FT_lo_tw2"
	FTLOTw3    Kernel = "FT_lo_tw3"
	FTLOTw4    Kernel = "FT_lo_tw4"
	FTNLOTw2   Kernel = "FT_nlo_tw2"
	FTNLOTw3   Kernel = "FT_nlo_tw3"
)

// Kernels lists every kernel in evaluation order.
var Kernels = []Kernel{
	FLOTw2, FLOTw3, FLOTw4, FNLOTw2, FNLOTw3,
	FtilLOTw3, FtilLOTw4, FtilNLOTw2, FtilNLOTw3,
	FTLOTw2, FTLOTw3, FTLOTw4, FTNLOTw2, FTNLOTw3,
}

// Kernel evaluates one kernel at q2 with Borel parameter m2. The F kernels
// use the f+ threshold.
func (l *LCSR) Kernel(k Kernel, q2, m2 float64, w Weight) (float64, error) {
	p := l.point()
	switch k {
	case FLOTw2:
		return l.fLOTw2(p, q2, m2, w, thresholdPlus)
	case FLOTw3:
		return l.fLOTw3(p, q2, m2, w, thresholdPlus)
	case FLOTw4:
		return l.fLOTw4(p, q2, m2, w, thresholdPlus)
	case FNLOTw2:
		return l.fNLOTw2(p, q2, m2, w)
	case FNLOTw3:
		return l.fNLOTw3(p, q2, m2, w)
	case FtilLOTw3:
		return l.ftilLOTw3(p, q2, m2, w)
	case FtilLOTw4:
		return l.ftilLOTw4(p, q2, m2, w)
	case FtilNLOTw2:
		return l.ftilNLOTw2(p, q2, m2, w)
	case FtilNLOTw3:
		return l.ftilNLOTw3(p, q2, m2, w)
	case FTLOTw2:
		return l.fTLOTw2(p, q2, m2, w)
	case FTLOTw3:
		return l.fTLOTw3(p, q2, m2, w)
	case FTLOTw4:
		return l.fTLOTw4(p, q2, m2, w)
	case FTNLOTw2:
		return l.fTNLOTw2(p, q2, m2, w)
	case FTNLOTw3:
		return l.fTNLOTw3(p, q2, m2, w)
	}
	return 0, errs.Configf("kernel", string(k), "unknown kernel")
}

// BorelM2 returns the unrescaled Borel parameter M^2.
func (l *LCSR) BorelM2() float64 {
	return l.m2.Value()
}

// sum adds kernel results, stopping at the first error.
func sum(fs ...func() (float64, error)) (float64, error) {
	var total float64
	for _, f := range fs {
		v, err := f()
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

// family evaluates the LO and NLO parts of one correlation function.
type family struct {
	lo, nlo float64
}

func (f family) at(a float64) float64 {
	return f.lo + a/(3*pi)*f.nlo
}

func (l *LCSR) fFamily(p point, q2, m2 float64, w Weight, t threshold) (family, error) {
	lo, err := sum(
		func() (float64, error) { return l.fLOTw2(p, q2, m2, w, t) },
		func() (float64, error) { return l.fLOTw3(p, q2, m2, w, t) },
		func() (float64, error) { return l.fLOTw4(p, q2, m2, w, t) },
	)
	if err != nil {
		return family{}, err
	}
	nlo, err := sum(
		func() (float64, error) { return l.fNLOTw2(p, q2, m2, w) },
		func() (float64, error) { return l.fNLOTw3(p, q2, m2, w) },
	)
	if err != nil {
		return family{}, err
	}
	return family{lo: lo, nlo: nlo}, nil
}

func (l *LCSR) ftilFamily(p point, q2, m2 float64, w Weight) (family, error) {
	lo, err := sum(
		func() (float64, error) { return l.ftilLOTw3(p, q2, m2, w) },
		func() (float64, error) { return l.ftilLOTw4(p, q2, m2, w) },
	)
	if err != nil {
		return family{}, err
	}
	nlo, err := sum(
		func() (float64, error) { return l.ftilNLOTw2(p, q2, m2, w) },
		func() (float64, error) { return l.ftilNLOTw3(p, q2, m2, w) },
	)
	if err != nil {
		return family{}, err
	}
	return family{lo: lo, nlo: nlo}, nil
}

func (l *LCSR) fTFamily(p point, q2, m2 float64, w Weight) (family, error) {
	lo, err := sum(
		func() (float64, error) { return l.fTLOTw2(p, q2, m2, w) },
		func() (float64, error) { return l.fTLOTw3(p, q2, m2, w) },
		func() (float64, error) { return l.fTLOTw4(p, q2, m2, w) },
	)
	if err != nil {
		return family{}, err
	}
	nlo, err := sum(
		func() (float64, error) { return l.fTNLOTw2(p, q2, m2, w) },
		func() (float64, error) { return l.fTNLOTw3(p, q2, m2, w) },
	)
	if err != nil {
		return family{}, err
	}
	return family{lo: lo, nlo: nlo}, nil
}

// ratio returns the rescale factor N(0)/N(q2) * D(q2)/D(0), where N and D
// are the first and zeroth u-moments of the leading-order integrands.
func (l *LCSR) ratio(kernel string, q2, s0 float64, atQ2, atZero func(u float64) float64) (float64, error) {
	p := l.point()
	u0q2 := p.u0(q2, s0)
	u0zero := math.Max(1e-10, p.mc2/s0)

	moment := func(f func(float64) float64) func(float64) float64 {
		return func(u float64) float64 { return u * f(u) }
	}
	nZero, err := l.integrate(kernel, q2, moment(atZero), u0zero, 1)
	if err != nil {
		return 0, err
	}
	nQ2, err := l.integrate(kernel, q2, moment(atQ2), u0q2, 1)
	if err != nil {
		return 0, err
	}
	dZero, err := l.integrate(kernel, q2, atZero, u0zero, 1)
	if err != nil {
		return 0, err
	}
	dQ2, err := l.integrate(kernel, q2, atQ2, u0q2, 1)
	if err != nil {
		return 0, err
	}
	rho, err := errs.Finite(kernel, q2, nZero/nQ2/dZero*dQ2)
	if err != nil {
		return 0, err
	}
	// A sign flip means the u-moments left the region where the sum rule holds.
	if rho <= 0 {
		return 0, errs.Numerical(kernel, q2, errs.ErrNotPositive)
	}
	return rho, nil
}

// RescaleFactorP is the Borel rescale factor of the f+ sum rule.
func (l *LCSR) RescaleFactorP(q2 float64) (float64, error) {
	if !l.rescale {
		return 1, nil
	}
	p := l.point()
	m2 := l.m2.Value()
	f := func(s float64) func(float64) float64 {
		return func(u float64) float64 {
			return p.fLOTw2Integrand(u, s, m2, Plain) + p.fLOTw3Integrand(u, s, m2, Plain)
		}
	}
	return l.ratio("rescale_factor_p", q2, l.S0Plus(q2), f(q2), f(0))
}

// RescaleFactor0 is the Borel rescale factor of the f0 sum rule.
func (l *LCSR) RescaleFactor0(q2 float64) (float64, error) {
	if !l.rescale {
		return 1, nil
	}
	p := l.point()
	m2 := l.m2.Value()
	mD2 := pow2(l.mD.Value())
	f := func(s float64) func(float64) float64 {
		return func(u float64) float64 {
			return p.fLOTw2Integrand(u, s, m2, Plain) + p.fLOTw3Integrand(u, s, m2, Plain)
		}
	}
	atQ2 := func(u float64) float64 {
		ftil := p.ftilLOTw3Integrand(u, q2, m2, Plain)
		return 2*q2/(mD2-p.mpi2)*ftil + (1-q2/(mD2-p.mpi))*f(q2)(u)
	}
	return l.ratio("rescale_factor_0", q2, l.S0Zero(q2), atQ2, f(0))
}

// RescaleFactorT is the Borel rescale factor of the fT sum rule.
func (l *LCSR) RescaleFactorT(q2 float64) (float64, error) {
	if !l.rescale {
		return 1, nil
	}
	p := l.point()
	m2 := l.m2.Value()
	f := func(s float64) func(float64) float64 {
		return func(u float64) float64 {
			return p.fTLOTw2Integrand(u, s, m2, Plain) + p.fTLOTw3Integrand(u, s, m2, Plain)
		}
	}
	return l.ratio("rescale_factor_T", q2, l.S0Tensor(q2), f(q2), f(0))
}

// massOf turns a mass-squared estimate into a mass, clamping negative
// estimates to zero.
func massOf(kernel string, q2, m2 float64) (float64, error) {
	if m2 < 0 {
		return 0, nil
	}
	return errs.Finite(kernel, q2, math.Sqrt(m2))
}

// MDpLCSR is the D mass extracted from the f+ sum rule.
func (l *LCSR) MDpLCSR(q2 float64) (float64, error) {
	rho, err := l.RescaleFactorP(q2)
	if err != nil {
		return 0, err
	}
	p := l.point()
	m2 := l.m2.Value() * rho
	a := l.model.AlphaS(p.mu)

	f, err := l.fFamily(p, q2, m2, Plain, thresholdPlus)
	if err != nil {
		return 0, err
	}
	d, err := l.fFamily(p, q2, m2, Derivative, thresholdPlus)
	if err != nil {
		return 0, err
	}
	return massOf("M_D(f_+)", q2, d.at(a)/f.at(a))
}

// MD0LCSR is the D mass extracted from the f0 sum rule. q2 is clamped away
// from zero where F~ is singular.
func (l *LCSR) MD0LCSR(q2 float64) (float64, error) {
	if math.Abs(q2) <= 1e-3 {
		q2 = 1e-3
	}
	rho, err := l.RescaleFactor0(q2)
	if err != nil {
		return 0, err
	}
	p := l.point()
	m2 := l.m2.Value() * rho
	a := l.model.AlphaS(p.mu)
	mD2 := pow2(l.mD.Value())

	// The leading-order F terms take the f0 threshold here.
	combine := func(w Weight) (float64, error) {
		lo, err := sum(
			func() (float64, error) { return l.fLOTw2(p, q2, m2, w, thresholdZero) },
			func() (float64, error) { return l.fLOTw3(p, q2, m2, w, thresholdZero) },
			func() (float64, error) { return l.fLOTw4(p, q2, m2, w, thresholdZero) },
		)
		if err != nil {
			return 0, err
		}
		nlo, err := sum(
			func() (float64, error) { return l.fNLOTw2(p, q2, m2, w) },
			func() (float64, error) { return l.fNLOTw3(p, q2, m2, w) },
		)
		if err != nil {
			return 0, err
		}
		til, err := l.ftilFamily(p, q2, m2, w)
		if err != nil {
			return 0, err
		}
		f := family{lo: lo, nlo: nlo}
		return 2*q2/(mD2-p.mpi2)*til.at(a) + (1-q2/(mD2-p.mpi))*f.at(a), nil
	}
	den, err := combine(Plain)
	if err != nil {
		return 0, err
	}
	num, err := combine(Derivative)
	if err != nil {
		return 0, err
	}
	return massOf("M_D(f_0)", q2, num/den)
}

// MDTLCSR is the D mass extracted from the fT sum rule. It uses the f+
// rescale factor.
func (l *LCSR) MDTLCSR(q2 float64) (float64, error) {
	rho, err := l.RescaleFactorP(q2)
	if err != nil {
		return 0, err
	}
	p := l.point()
	m2 := l.m2.Value() * rho
	a := l.model.AlphaS(p.mu)

	f, err := l.fTFamily(p, q2, m2, Plain)
	if err != nil {
		return 0, err
	}
	d, err := l.fTFamily(p, q2, m2, Derivative)
	if err != nil {
		return 0, err
	}
	return massOf("M_D(f_T)", q2, d.at(a)/f.at(a))
}

// FPlus is the vector form factor f+(q2), including the NNLO estimate
// F_nlo^2/F_lo * zeta.
func (l *LCSR) FPlus(q2 float64) (float64, error) {
	rho, err := l.RescaleFactorP(q2)
	if err != nil {
		return 0, err
	}
	fD, err := l.DecayConstant()
	if err != nil {
		return 0, err
	}
	p := l.point()
	m2 := l.m2.Value() * rho
	mD2 := pow2(l.mD.Value())
	a := l.model.AlphaS(p.mu)

	f, err := l.fFamily(p, q2, m2, Plain, thresholdPlus)
	if err != nil {
		return 0, err
	}
	nnlo := f.nlo * f.nlo / f.lo * l.zeta.Value()
	return errs.Finite("f_+", q2, math.Exp(mD2/m2)/(2*mD2*fD)*(f.at(a)+a*a/(9*pi2)*nnlo))
}

// FZero is the scalar form factor f0(q2). It equals f+ at q2 = 0.
func (l *LCSR) FZero(q2 float64) (float64, error) {
	if math.Abs(q2) < 1e-6 {
		return l.FPlus(q2)
	}
	rho, err := l.RescaleFactor0(q2)
	if err != nil {
		return 0, err
	}
	fD, err := l.DecayConstant()
	if err != nil {
		return 0, err
	}
	p := l.point()
	m2 := l.m2.Value() * rho
	mD2 := pow2(l.mD.Value())
	a := l.model.AlphaS(p.mu)

	f, err := l.fFamily(p, q2, m2, Plain, thresholdPlus)
	if err != nil {
		return 0, err
	}
	til, err := l.ftilFamily(p, q2, m2, Plain)
	if err != nil {
		return 0, err
	}
	return errs.Finite("f_0", q2, math.Exp(mD2/m2)/(2*mD2*fD)*
		(2*q2/(mD2-p.mpi2)*til.at(a)+(1-q2/(mD2-p.mpi))*f.at(a)))
}

// FT is the tensor form factor fT(q2).
func (l *LCSR) FT(q2 float64) (float64, error) {
	rho, err := l.RescaleFactorT(q2)
	if err != nil {
		return 0, err
	}
	fD, err := l.DecayConstant()
	if err != nil {
		return 0, err
	}
	p := l.point()
	m2 := l.m2.Value() * rho
	mD := l.mD.Value()
	mD2 := mD * mD
	a := l.model.AlphaS(p.mu)

	f, err := l.fTFamily(p, q2, m2, Plain)
	if err != nil {
		return 0, err
	}
	return errs.Finite("f_T", q2, math.Exp(mD2/m2)/(2*mD2*fD)*(mD+p.mpi)*f.at(a))
}

// Diagnostic is one labelled intermediate value. Err is set, and Value is
// NaN, when the evaluation failed.
type Diagnostic struct {
	Label string
	Value float64
	Err   error
}

// Diagnostics evaluates the intermediate quantities of the sum rule in a
// fixed order. A failing entry does not stop the remaining ones.
func (l *LCSR) Diagnostics() []Diagnostic {
	constant := func(v float64) func() (float64, error) {
		return func() (float64, error) { return v, nil }
	}
	at := func(f func(float64) (float64, error), q2 float64) func() (float64, error) {
		return func() (float64, error) { return f(q2) }
	}

	steps := []struct {
		label string
		f     func() (float64, error)
	}{
		{"rho_1(s = 6.5, m_c = 1.27, mu = 1.4)", constant(Rho1(6.5, 1.27, 1.4))},
		{"rho_1(s = 7.0, m_c = 1.27, mu = 1.4)", constant(Rho1(7.0, 1.27, 1.4))},
		{"rho_1(s = 7.5, m_c = 1.27, mu = 1.4)", constant(Rho1(7.5, 1.27, 1.4))},
		{"f_D", l.DecayConstant},
		{"rescale_factor_p(s =  0.0)", at(l.RescaleFactorP, 0)},
		{"rescale_factor_p(s = 10.0)", at(l.RescaleFactorP, 10)},
		{"rescale_factor_0(s =  0.0)", at(l.RescaleFactor0, 0)},
		{"rescale_factor_0(s = 10.0)", at(l.RescaleFactor0, 10)},
		{"rescale_factor_T(s =  0.0)", at(l.RescaleFactorT, 0)},
		{"rescale_factor_T(s = 10.0)", at(l.RescaleFactorT, 10)},
		{"M_D(f_+, q2 =  0.0)", at(l.MDpLCSR, 0)},
		{"M_D(f_+, q2 = 10.0)", at(l.MDpLCSR, 10)},
		{"M_D(f_0, q2 =  0.0)", at(l.MD0LCSR, 0)},
		{"M_D(f_0, q2 = 10.0)", at(l.MD0LCSR, 10)},
		{"M_D(f_T, q2 =  0.0)", at(l.MDTLCSR, 0)},
		{"M_D(f_T, q2 = 10.0)", at(l.MDTLCSR, 10)},
	}
	out := make([]Diagnostic, 0, len(steps))
	for _, s := range steps {
		v, err := s.f()
		if err != nil {
			v = math.NaN()
		}
		out = append(out, Diagnostic{Label: s.label, Value: v, Err: err})
	}
	return out
}
