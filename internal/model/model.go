package model

import (
	"math"
	"math/cmplx"

	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/params"
	"github.com/verte-zerg/semilep/internal/process"
)

// Model is the set of capabilities the decay calculation consumes.
type Model interface {
	AlphaS(mu float64) float64
	MassMSbar(f Flavor, mu float64) float64
	CKM(h process.HeavyQuark) complex128
	WilsonCoefficients(h process.HeavyQuark, l Lepton, cpConjugate bool) Couplings
}

// Names lists the available model variants.
func Names() []string {
	return []string{"SM", "WET"}
}

// Make builds the model variant name. Its parameter dependencies are recorded
// on u.
func Make(name string, p *params.Parameters, u *params.User) (Model, error) {
	switch name {
	case "SM":
		return NewSM(p, u)
	case "WET":
		return NewWET(p, u)
	}
	return nil, errs.Configf("model", name, "unknown model")
}

// SM is the Standard Model with four-loop alpha_s running, three-loop mass
// running and the exact Wolfenstein parametrization of the CKM matrix.
type SM struct {
	alphaSMZ params.Parameter
	mZ       params.Parameter
	mcMSbar  params.Parameter
	mbMSbar  params.Parameter
	mu2GeV   params.Parameter
	md2GeV   params.Parameter
	ms2GeV   params.Parameter
	lambda   params.Parameter
	a        params.Parameter
	rhobar   params.Parameter
	etabar   params.Parameter

	cache *qcdCache
}

// NewSM binds the QCD and CKM parameters.
func NewSM(p *params.Parameters, u *params.User) (*SM, error) {
	b := params.NewBinder(p, u)
	m := &SM{
		alphaSMZ: b.Bind("QCD::alpha_s(MZ)"),
		mZ:       b.Bind("mass::Z"),
		mcMSbar:  b.Bind("mass::c(MSbar)"),
		mbMSbar:  b.Bind("mass::b(MSbar)"),
		mu2GeV:   b.Bind("mass::u(2GeV)"),
		md2GeV:   b.Bind("mass::d(2GeV)"),
		ms2GeV:   b.Bind("mass::s(2GeV)"),
		lambda:   b.Bind("CKM::lambda"),
		a:        b.Bind("CKM::A"),
		rhobar:   b.Bind("CKM::rhobar"),
		etabar:   b.Bind("CKM::etabar"),
		cache:    &qcdCache{},
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *SM) running() running {
	return running{mc: m.mcMSbar.Value(), mb: m.mbMSbar.Value()}
}

// AlphaS returns the strong coupling at scale mu (GeV).
func (m *SM) AlphaS(mu float64) float64 {
	r := m.running()
	aMZ, mZ := m.alphaSMZ.Value(), m.mZ.Value()
	key := qcdKey{kind: -1, scale: mu, inputs: [4]float64{aMZ, mZ, r.mc, r.mb}}
	return m.cache.get(key, func() float64 {
		a, _ := r.evolve(aMZ/math.Pi, 0, mZ, mu)
		return a * math.Pi
	})
}

// MassMSbar returns the running MSbar mass of f at scale mu.
func (m *SM) MassMSbar(f Flavor, mu float64) float64 {
	var m0, mu0 float64
	switch f {
	case FlavorU:
		m0, mu0 = m.mu2GeV.Value(), 2.0
	case FlavorD:
		m0, mu0 = m.md2GeV.Value(), 2.0
	case FlavorS:
		m0, mu0 = m.ms2GeV.Value(), 2.0
	case FlavorC:
		m0 = m.mcMSbar.Value()
		mu0 = m0
	case FlavorB:
		m0 = m.mbMSbar.Value()
		mu0 = m0
	default:
		return math.NaN()
	}

	r := m.running()
	key := qcdKey{kind: int(f), scale: mu, inputs: [4]float64{m0, m.alphaSMZ.Value(), r.mc, r.mb}}
	return m.cache.get(key, func() float64 {
		a0 := m.AlphaS(mu0) / math.Pi
		_, lnm := r.evolve(a0, math.Log(m0), mu0, mu)
		return math.Exp(lnm)
	})
}

// CKM returns V_cd or V_cs.
func (m *SM) CKM(h process.HeavyQuark) complex128 {
	lambda, a := m.lambda.Value(), m.a.Value()
	rhoeta := complex(m.rhobar.Value(), m.etabar.Value())

	s12 := lambda
	s23 := a * lambda * lambda
	a2l4 := complex(a*a*lambda*lambda*lambda*lambda, 0)
	s13e := complex(a*lambda*lambda*lambda, 0) * rhoeta * cmplx.Sqrt(1-a2l4) /
		(complex(math.Sqrt(1-lambda*lambda), 0) * (1 - a2l4*rhoeta))

	c12 := math.Sqrt(1 - s12*s12)
	c23 := math.Sqrt(1 - s23*s23)

	switch h {
	case process.QuarkD:
		return complex(-s12*c23, 0) - complex(c12*s23, 0)*s13e
	case process.QuarkS:
		return complex(c12*c23, 0) - complex(s12*s23, 0)*s13e
	default:
		return cmplx.NaN()
	}
}

// WilsonCoefficients returns CVL = 1 and zero elsewhere.
func (m *SM) WilsonCoefficients(_ process.HeavyQuark, _ Lepton, _ bool) Couplings {
	return Couplings{CVL: 1}
}

// WET extends the SM with Wilson coefficients read from the parameters
// <Q>c<l>nu<l>::Re{cX} and Im{cX}.
type WET struct {
	*SM
	coefficients map[wetKey][10]params.Parameter
}

type wetKey struct {
	heavy  process.HeavyQuark
	lepton Lepton
}

var wetNames = [5]string{"cVL", "cVR", "cSL", "cSR", "cT"}

// NewWET binds the SM parameters plus all Wilson coefficients.
func NewWET(p *params.Parameters, u *params.User) (*WET, error) {
	sm, err := NewSM(p, u)
	if err != nil {
		return nil, err
	}
	w := &WET{SM: sm, coefficients: map[wetKey][10]params.Parameter{}}
	b := params.NewBinder(p, u)
	for _, h := range []process.HeavyQuark{process.QuarkD, process.QuarkS} {
		for _, l := range []Lepton{Electron, Muon, Tau} {
			prefix := SectorPrefix(h, l)
			var set [10]params.Parameter
			for i, name := range wetNames {
				set[2*i] = b.Bind(prefix + "::Re{" + name + "}")
				set[2*i+1] = b.Bind(prefix + "::Im{" + name + "}")
			}
			w.coefficients[wetKey{h, l}] = set
		}
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return w, nil
}

// WilsonCoefficients reads the couplings of the (h, l) sector.
func (w *WET) WilsonCoefficients(h process.HeavyQuark, l Lepton, cpConjugate bool) Couplings {
	set := w.coefficients[wetKey{h, l}]
	c := func(i int) complex128 {
		return complex(set[2*i].Value(), set[2*i+1].Value())
	}
	res := Couplings{CVL: c(0), CVR: c(1), CSL: c(2), CSR: c(3), CT: c(4)}
	if cpConjugate {
		return res.Conj()
	}
	return res
}

// SectorPrefix names the c -> q l nu sector, e.g. "dcmunumu".
func SectorPrefix(h process.HeavyQuark, l Lepton) string {
	return h.String() + "c" + l.Label() + "nu" + l.Label()
}

// Bundle is the set of flavor-dependent accessors of one transition.
type Bundle struct {
	Light Flavor
	// LightMass is the MSbar mass of the quark the charm decays into.
	LightMass func(mu float64) float64
	CKM       func() complex128
	Couplings func(l Lepton, cpConjugate bool) Couplings
}

// BundleFor selects the accessors of transition h.
func BundleFor(m Model, h process.HeavyQuark) (Bundle, error) {
	var light Flavor
	switch h {
	case process.QuarkD:
		light = FlavorD
	case process.QuarkS:
		light = FlavorS
	default:
		return Bundle{}, errs.Configf("Q", h.String(), "no capability bundle")
	}
	return Bundle{
		Light:     light,
		LightMass: func(mu float64) float64 { return m.MassMSbar(light, mu) },
		CKM:       func() complex128 { return m.CKM(h) },
		Couplings: func(l Lepton, cp bool) Couplings { return m.WilsonCoefficients(h, l, cp) },
	}, nil
}
