// Package lcda implements the pion light-cone distribution amplitudes of
// twist 2, 3 and 4 with leading-order scale dependence.
package lcda

import (
	"math"

	"github.com/verte-zerg/semilep/internal/model"
	"github.com/verte-zerg/semilep/internal/params"
)

// Reference scale of the LCDA parameters in GeV.
const mu0 = 1.0

// Number of active flavors in the one-loop evolution of the moments.
const nf = 4

// Pion evaluates the pion LCDAs.
type Pion struct {
	model  model.Model
	mPi    params.Parameter
	fPi    params.Parameter
	a2     params.Parameter
	a4     params.Parameter
	f3     params.Parameter
	omega3 params.Parameter
	omega4 params.Parameter
	delta2 params.Parameter
}

// NewPion binds the pion parameters.
func NewPion(m model.Model, p *params.Parameters, u *params.User) (*Pion, error) {
	b := params.NewBinder(p, u)
	pi := &Pion{
		model:  m,
		mPi:    b.Bind("mass::pi^+"),
		fPi:    b.Bind("decay-constant::pi"),
		a2:     b.Bind("pi::a2@1GeV"),
		a4:     b.Bind("pi::a4@1GeV"),
		f3:     b.Bind("pi::f3@1GeV"),
		omega3: b.Bind("pi::omega3@1GeV"),
		omega4: b.Bind("pi::omega4@1GeV"),
		delta2: b.Bind("pi::delta^2@1GeV"),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return pi, nil
}

// Moments are the scale-dependent LCDA parameters at one scale.
type Moments struct {
	Mu     float64
	MPi    float64
	FPi    float64
	MuPi   float64
	A2     float64
	A4     float64
	F3     float64
	Omega3 float64
	Omega4 float64
	Delta2 float64
	// RhoPi2 is (m_u + m_d)^2 / m_pi^2.
	RhoPi2 float64
}

// At evolves the parameters from 1 GeV to mu.
func (p *Pion) At(mu float64) Moments {
	c := math.Pow(p.model.AlphaS(mu)/p.model.AlphaS(mu0), 1/model.BetaZero(nf))
	mPi := p.mPi.Value()
	mq := p.model.MassMSbar(model.FlavorU, mu) + p.model.MassMSbar(model.FlavorD, mu)
	return Moments{
		Mu:     mu,
		MPi:    mPi,
		FPi:    p.fPi.Value(),
		MuPi:   mPi * mPi / mq,
		A2:     p.a2.Value() * math.Pow(c, 50.0/9),
		A4:     p.a4.Value() * math.Pow(c, 364.0/45),
		F3:     p.f3.Value() * math.Pow(c, 55.0/9),
		Omega3: p.omega3.Value() * math.Pow(c, 49.0/9),
		Omega4: p.omega4.Value() * math.Pow(c, 10),
		Delta2: p.delta2.Value() * math.Pow(c, 32.0/9),
		RhoPi2: mq * mq / (mPi * mPi),
	}
}

// MuPi returns m_pi^2 / (m_u + m_d) at mu.
func (p *Pion) MuPi(mu float64) float64 { return p.At(mu).MuPi }

// A2Pi returns the second Gegenbauer moment at mu.
func (p *Pion) A2Pi(mu float64) float64 { return p.At(mu).A2 }

// A4Pi returns the fourth Gegenbauer moment at mu.
func (p *Pion) A4Pi(mu float64) float64 { return p.At(mu).A4 }

// F3Pi returns the twist-3 normalization f_3pi at mu.
func (p *Pion) F3Pi(mu float64) float64 { return p.At(mu).F3 }

// Omega3Pi returns omega_3pi at mu.
func (p *Pion) Omega3Pi(mu float64) float64 { return p.At(mu).Omega3 }

// Omega4Pi returns omega_4pi at mu.
func (p *Pion) Omega4Pi(mu float64) float64 { return p.At(mu).Omega4 }

// DeltaPiPi returns delta_pi^2 at mu.
func (p *Pion) DeltaPiPi(mu float64) float64 { return p.At(mu).Delta2 }

// Gegenbauer polynomials C_n^{1/2} (h) and C_n^{3/2} (t).
func c2h(x float64) float64 { return 0.5 * (3*x*x - 1) }

func c4h(x float64) float64 {
	x2 := x * x
	return (35*x2*x2 - 30*x2 + 3) / 8
}

func c2t(x float64) float64 { return 1.5 * (5*x*x - 1) }

func c4t(x float64) float64 {
	x2 := x * x
	return 15.0 / 8 * (21*x2*x2 - 14*x2 + 1)
}

// Phi is the twist-2 LCDA.
func (m Moments) Phi(u float64) float64 {
	x := 2*u - 1
	return 6 * u * (1 - u) * (1 + m.A2*c2t(x) + m.A4*c4t(x))
}

func (m Moments) eta3() float64 {
	return m.F3 / (m.FPi * m.MuPi)
}

// Phi3p is the twist-3 pseudoscalar LCDA.
func (m Moments) Phi3p(u float64) float64 {
	x := 2*u - 1
	eta3 := m.eta3()
	return 1 + (30*eta3-2.5*m.RhoPi2)*c2h(x) +
		(-3*eta3*m.Omega3-27.0/20*m.RhoPi2-81.0/10*m.RhoPi2*m.A2)*c4h(x)
}

func (m Moments) phi3sCoefficient() float64 {
	eta3 := m.eta3()
	return 5*eta3 - 0.5*eta3*m.Omega3 - 7.0/20*m.RhoPi2 - 3.0/5*m.RhoPi2*m.A2
}

// Phi3s is the twist-3 pseudotensor LCDA.
func (m Moments) Phi3s(u float64) float64 {
	x := 2*u - 1
	return 6 * u * (1 - u) * (1 + m.phi3sCoefficient()*c2t(x))
}

// Phi3sD1 is the first derivative of Phi3s.
func (m Moments) Phi3sD1(u float64) float64 {
	x := 2*u - 1
	k := m.phi3sCoefficient()
	return 6*(1-2*u)*(1+k*c2t(x)) + 6*u*(1-u)*k*30*x
}

// logTerm is 2 x^3 (10 - 15 x + 6 x^2) ln x and its first two derivatives.
func logTerm(x float64) (h, h1, h2 float64) {
	if x <= 0 {
		return 0, 0, 0
	}
	x2 := x * x
	xb := 1 - x
	lx := math.Log(x)
	g := 2 * (10*x2*x - 15*x2*x2 + 6*x2*x2*x)
	g1 := 60 * x2 * xb * xb
	g2 := 120 * x * xb * (1 - 2*x)
	h = g * lx
	h1 = g1*lx + 2*(10*x2-15*x2*x+6*x2*x2)
	h2 = g2*lx + 60*x*xb*xb + 2*(20*x-45*x2+24*x2*x)
	return h, h1, h2
}

// Phi4All returns Phi4 and its first two derivatives.
func (m Moments) Phi4All(u float64) (f, d1, d2 float64) {
	ub := 1 - u
	p := u * ub
	pd := 1 - 2*u
	a := 200.0 / 3 * m.Delta2
	b := 8 * m.Delta2 * m.Omega4

	hu, hu1, hu2 := logTerm(u)
	hb, hb1, hb2 := logTerm(ub)

	f = a*p*p + b*(p*(2+13*p)+hu+hb)
	d1 = a*2*p*pd + b*(2*pd+26*p*pd+hu1-hb1)
	d2 = a*2*(1-6*u+6*u*u) + b*(-4+26*(pd*pd-2*p)+hu2+hb2)
	return f, d1, d2
}

// Phi4 is the twist-4 two-particle LCDA.
func (m Moments) Phi4(u float64) float64 {
	f, _, _ := m.Phi4All(u)
	return f
}

// Phi4D1 is the first derivative of Phi4.
func (m Moments) Phi4D1(u float64) float64 {
	_, d1, _ := m.Phi4All(u)
	return d1
}

// Phi4D2 is the second derivative of Phi4.
func (m Moments) Phi4D2(u float64) float64 {
	_, _, d2 := m.Phi4All(u)
	return d2
}

// Psi4 is the twist-4 LCDA psi_4pi.
func (m Moments) Psi4(u float64) float64 {
	return 20.0 / 3 * m.Delta2 * c2h(2*u-1)
}

// Psi4I is the integral of Psi4 from 0 to u.
func (m Moments) Psi4I(u float64) float64 {
	return 20.0 / 3 * m.Delta2 * u * (1 - u) * (1 - 2*u)
}
