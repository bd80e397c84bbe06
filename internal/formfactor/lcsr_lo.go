package formfactor

import "math"

// Leading-order light-cone kernels. The integrands are functions of the
// momentum fraction u; p.dual and p.borel carry the common Borel exponent.

// den is m_c^2 - q2 + u^2 m_pi^2.
func (p *point) den(u, q2 float64) float64 {
	return p.mc2 - q2 + u*u*p.mpi2
}

func (p *point) fLOTw2Integrand(u, q2, m2 float64, w Weight) float64 {
	return p.weight(u, q2, w) * p.borel(u, q2, m2) / u * p.lcda.Phi(u)
}

func (p *point) i3(u float64) float64 {
	u3 := u * u * u
	ubar2 := (1 - u) * (1 - u)
	return 5.0 / 2 * u3 * ubar2 * (12 + (7*u-4)*p.lcda.Omega3)
}

func (p *point) i3D1(u float64) float64 {
	u2 := u * u
	ubar := 1 - u
	return 15 * u2 * ubar * (6 - 10*u - (2-8*u+7*u2)*p.lcda.Omega3)
}

func (p *point) i3bar(u float64) float64 {
	u3 := u * u * u
	ubar2 := (1 - u) * (1 - u)
	w3 := p.lcda.Omega3
	return 5.0 / 2 * u3 * ubar2 * (24*u + 6*u*w3 - 3*(w3+4))
}

func (p *point) i3barD1(u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	return 15.0 / 2 * u2 * (12*u3 - 25*u2 + 16*u - 3) * (p.lcda.Omega3 + 4)
}

func (p *point) fLOTw3Integrand(u, q2, m2 float64, w Weight) float64 {
	mc, mc2, mpi2 := p.mc, p.mc2, p.mpi2
	u2 := u * u
	d := p.den(u, q2)
	lc := &p.lcda

	tw3a := lc.Phi3p(u) + (lc.Phi3s(u)/u-
		(mc2+q2-u2*mpi2)/(2*d)*lc.Phi3sD1(u)-
		(2*u*mpi2*mc2)/pow2(d)*lc.Phi3s(u))/3
	tw3b := 2 / u * (mc2 - q2 - u2*mpi2) / d * (p.i3D1(u) - (2*u*mpi2)/d*p.i3(u))
	tw3c := 3 * mpi2 / d * (p.i3barD1(u) - (2*u*mpi2)/d*p.i3bar(u))

	return p.borel(u, q2, m2) * p.weight(u, q2, w) *
		(lc.MuPi/mc*tw3a - lc.F3/(mc*p.fpi)*(tw3b+tw3c))
}

func (p *point) i4(u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	ubar := 1 - u
	lc := &p.lcda
	return -1.0 / 24 * u * ubar * (p.mpi2*(54*u3-81*u2+27*ubar+27*lc.A2*(16*u3-29*u2+13*u-1)) +
		16*u*(20*u-30)*lc.Delta2)
}

func (p *point) i4D1(u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	u4 := u2 * u2
	lc := &p.lcda
	return 1.0 / 24 * (27*p.mpi2*((10*u4-20*u3+6*u2+4*u-1)+
		lc.A2*(80*u4-180*u3+126*u2-28*u+1)) +
		160*u*(6-15*u+8*u2)*lc.Delta2)
}

func (p *point) i4bar(u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	ubar := 1 - u
	lc := &p.lcda
	return 1.0 / 48 * u * ubar * (p.mpi2*(-(54*u3-81*u2-27*u+27)+
		27*lc.A2*(32*u3-43*u2+11*u+1)) -
		20*u*((12-20*u)+(378*u2-567*u+189)*lc.Omega4)*lc.Delta2)
}

func (p *point) i4barI(u float64) float64 {
	u2 := u * u
	ubar := 1 - u
	ubar2 := ubar * ubar
	lc := &p.lcda
	return 1.0 / 96 * u2 * ubar2 * (p.mpi2*(9*(3+2*ubar*u)+
		9*lc.A2*(32*u2-26*u-3)) +
		40*u*(4+63*ubar*lc.Omega4)*lc.Delta2)
}

func (p *point) i4barD1(u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	u4 := u2 * u2
	lc := &p.lcda
	return 1.0 / 48 * (27*p.mpi2*((10*u4-20*u3+6*u2+4*u-1)-
		lc.A2*(160*u4-300*u3+162*u2-20*u-1)) +
		40*u*((-40*u2+48*u-12)+
			189*(5*u3-10*u2+6*u-1)*lc.Omega4)*lc.Delta2)
}

func (p *point) fLOTw4Integrand(u, q2, m2 float64, w Weight) float64 {
	mc2, mpi2 := p.mc2, p.mpi2
	mpi4 := mpi2 * mpi2
	u2 := u * u
	d := p.den(u, q2)
	lc := &p.lcda
	f, f1, f2 := lc.Phi4All(u)

	tw4psi := u*lc.Psi4(u) + (mc2-q2-u2*mpi2)/d*lc.Psi4I(u)
	tw4phi := (f2 - 6*u*mpi2/d*f1 + 12*u*mpi4/pow2(d)*f) * mc2 * u / (4 * d)
	tw4I4 := p.i4D1(u) - 2*u*mpi2/d*p.i4(u)
	tw4I4bar1 := (u*p.i4barD1(u) + (mc2-q2-3*u2*mpi2)/d*p.i4bar(u)) * 2 * u * mpi2 / d
	tw4I4bar2 := (p.i4bar(u) + 6*u*mpi2/d*p.i4barI(u)) * 2 * u * mpi2 * (mc2 - q2 - u2*mpi2) / d

	return p.borel(u, q2, m2) * p.weight(u, q2, w) *
		(tw4psi - tw4phi - tw4I4 - tw4I4bar1 - tw4I4bar2) / d
}

// i3til and its derivative enter the twist-3 part of the f0 sum rule.
func (p *point) i3til(u float64) float64 {
	u2 := u * u
	ubar2 := (1 - u) * (1 - u)
	w3 := p.lcda.Omega3
	return 5.0 / 2 * u2 * ubar2 * (28*u2*w3 - 2*u*(17*w3+12) + 9*(w3+4))
}

func (p *point) i3tilD1(u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	w3 := p.lcda.Omega3
	return 15 * u * (u - 1) * (28*u3*w3 - u2*(47*w3+20) + u*(23*w3+36) - 3*(w3+4))
}

func (p *point) ftilLOTw3Integrand(u, q2, m2 float64, w Weight) float64 {
	mpi2 := p.mpi2
	d := p.den(u, q2)
	lc := &p.lcda

	tw3a := lc.Phi3p(u)/u + 1/(6*u)*lc.Phi3sD1(u)
	tw3b := mpi2 / d * (p.i3tilD1(u) - (2*u*mpi2)/d*p.i3til(u))

	return p.borel(u, q2, m2) * p.weight(u, q2, w) *
		(lc.MuPi/p.mc*tw3a + lc.F3/(p.mc*p.fpi)*tw3b)
}

func (p *point) ftilLOTw4Integrand(u, q2, m2 float64, w Weight) float64 {
	mpi2 := p.mpi2
	mpi4 := mpi2 * mpi2
	u2 := u * u
	d := p.den(u, q2)
	lc := &p.lcda

	tw4psi := lc.Psi4(u) - (2*u*mpi2)/d*lc.Psi4I(u)
	tw4I4bar := (-p.i4barD1(u) + (6*u*mpi2)/d*p.i4bar(u) + (12*u2*mpi4)/pow2(d)*p.i4barI(u)) *
		2 * u * mpi2 / d

	return p.borel(u, q2, m2) * p.weight(u, q2, w) * (tw4psi + tw4I4bar) / d
}

func (p *point) fTLOTw2Integrand(u, q2, m2 float64, w Weight) float64 {
	return p.fLOTw2Integrand(u, q2, m2, w)
}

func (p *point) fTLOTw3Integrand(u, q2, m2 float64, w Weight) float64 {
	d := p.den(u, q2)
	lc := &p.lcda
	return -p.mc * lc.MuPi * p.weight(u, q2, w) * p.borel(u, q2, m2) *
		(lc.Phi3sD1(u) - 2*u*p.mpi2*lc.Phi3s(u)/d) / (3 * d)
}

func (p *point) i4T(u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	u4 := u2 * u2
	u5 := u4 * u
	ubar := 1 - u
	ubar2 := ubar * ubar
	at := math.Atanh(1 - 2*u)
	lc := &p.lcda
	return 1.0 / 40 * (p.mpi2*((90*u5-225*u4+90*u3+90*u2-45*u)+
		9*lc.A2*(70*u5-227*u4+254*u3-94*u2-3*u+16*(6*u2-15*u+10)*u3*at-8*math.Log(ubar))) +
		10*(40*u2*ubar2-
			21*(-40*u5+87*u4-54*u3+9*u2-2*u+4*(6*u2-15*u+10)*u3*at-2*math.Log(ubar))*lc.Omega4)*lc.Delta2)
}

func (p *point) i4TD1(u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	u4 := u3 * u
	ubar := 1 - u
	ubar2 := ubar * ubar
	at := math.Atanh(1 - 2*u)
	lc := &p.lcda
	return 1.0 / 8 * (p.mpi2*((90*u4-180*u3+54*u2+36*u-9)+
		9*lc.A2*(70*u4-172*u3+138*u2-36*u+1+96*ubar2*u2*at)) +
		40*u*(4*(1-3*u+2*u2)+
			21*ubar*(-1+8*u-10*u2-6*ubar*u*at)*lc.Omega4)*lc.Delta2)
}

func (p *point) fTLOTw4Integrand(u, q2, m2 float64, w Weight) float64 {
	mc2, mpi2 := p.mc2, p.mpi2
	mpi4 := mpi2 * mpi2
	d := p.den(u, q2)
	f, f1, f2 := p.lcda.Phi4All(u)

	tw4phi1 := (f1 - 2*u*mpi2*f/d) / 4
	tw4phi2 := -mc2 * u * (f2 - 6*u*mpi2*f1/d + 12*u*mpi4*f/pow2(d)) / (4 * d)
	tw4I4T := -(p.i4TD1(u) - 2*u*mpi2*p.i4T(u)/d)

	return p.weight(u, q2, w) * p.borel(u, q2, m2) * (tw4phi1 + tw4phi2 + tw4I4T) / d
}

type integrand func(p *point, u, q2, m2 float64, w Weight) float64

// lightCone integrates a leading-order integrand from u0(s0) to upper.
func (l *LCSR) lightCone(k Kernel, p point, f integrand, q2, m2 float64, w Weight, s0, upper float64) (float64, error) {
	g := func(u float64) float64 { return f(&p, u, q2, m2, w) }
	return l.integrate(string(k), q2, g, p.u0(q2, s0), upper)
}

func (l *LCSR) fLOTw2(p point, q2, m2 float64, w Weight, t threshold) (float64, error) {
	v, err := l.lightCone(FLOTw2, p, (*point).fLOTw2Integrand, q2, m2, w, l.threshold(t, q2), 1)
	return p.mc2 * p.fpi * v, err
}

func (l *LCSR) fLOTw3(p point, q2, m2 float64, w Weight, t threshold) (float64, error) {
	v, err := l.lightCone(FLOTw3, p, (*point).fLOTw3Integrand, q2, m2, w, l.threshold(t, q2), 1)
	return p.mc2 * p.fpi * v, err
}

func (l *LCSR) fLOTw4(p point, q2, m2 float64, w Weight, t threshold) (float64, error) {
	v, err := l.lightCone(FLOTw4, p, (*point).fLOTw4Integrand, q2, m2, w, l.threshold(t, q2), 1-1e-10)
	return p.mc2 * p.fpi * v, err
}

func (l *LCSR) ftilLOTw3(p point, q2, m2 float64, w Weight) (float64, error) {
	v, err := l.lightCone(FtilLOTw3, p, (*point).ftilLOTw3Integrand, q2, m2, w, l.S0Zero(q2), 1)
	return p.mc2 * p.fpi * v, err
}

func (l *LCSR) ftilLOTw4(p point, q2, m2 float64, w Weight) (float64, error) {
	v, err := l.lightCone(FtilLOTw4, p, (*point).ftilLOTw4Integrand, q2, m2, w, l.S0Zero(q2), 1-1e-10)
	return p.mc2 * p.fpi * v, err
}

func (l *LCSR) fTLOTw2(p point, q2, m2 float64, w Weight) (float64, error) {
	v, err := l.lightCone(FTLOTw2, p, (*point).fTLOTw2Integrand, q2, m2, w, l.S0Tensor(q2), 1)
	return p.mc * p.fpi * v, err
}

func (l *LCSR) fTLOTw3(p point, q2, m2 float64, w Weight) (float64, error) {
	v, err := l.lightCone(FTLOTw3, p, (*point).fTLOTw3Integrand, q2, m2, w, l.S0Tensor(q2), 1)
	return p.mc * p.fpi * v, err
}

func (l *LCSR) fTLOTw4(p point, q2, m2 float64, w Weight) (float64, error) {
	v, err := l.lightCone(FTLOTw4, p, (*point).fTLOTw4Integrand, q2, m2, w, l.S0Tensor(q2), 1-1e-10)
	return p.mc * p.fpi * v, err
}
