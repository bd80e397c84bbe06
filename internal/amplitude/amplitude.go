// Package amplitude computes the helicity amplitudes of P -> P' l nu.
package amplitude

import (
	"math"
	"math/cmplx"

	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/formfactor"
	"github.com/verte-zerg/semilep/internal/kinematics"
	"github.com/verte-zerg/semilep/internal/model"
	"github.com/verte-zerg/semilep/internal/params"
	"github.com/verte-zerg/semilep/internal/process"
)

// outsideVelocity replaces v outside the phase space so that sqrt(1 - v)
// stays finite.
const outsideVelocity = 0.99

// Amplitudes is the helicity decomposition at one q2.
type Amplitudes struct {
	H0  complex128
	Ht  complex128
	HS  complex128
	HT  complex128
	HtS complex128
	// V is the lepton velocity 1 - m_l^2/q2, P the daughter momentum and NF
	// the overall normalization of the rates.
	V  float64
	P  float64
	NF float64
}

// Engine evaluates amplitudes for one decay channel.
type Engine struct {
	ff     formfactor.FormFactors
	model  model.Model
	bundle model.Bundle

	lepton      model.Lepton
	cpConjugate bool
	isospin     float64

	mParent   params.Parameter
	mDaughter params.Parameter
	mLepton   params.Parameter
	gFermi    params.Parameter
	mu        params.Parameter
}

// Config selects the channel an Engine is built for.
type Config struct {
	Descriptor  process.Descriptor
	Lepton      model.Lepton
	CPConjugate bool
}

// New binds the masses and couplings of cfg.
func New(cfg Config, m model.Model, ff formfactor.FormFactors, p *params.Parameters, u *params.User) (*Engine, error) {
	bundle, err := model.BundleFor(m, cfg.Descriptor.Heavy)
	if err != nil {
		return nil, err
	}
	b := params.NewBinder(p, u)
	e := &Engine{
		ff:          ff,
		model:       m,
		bundle:      bundle,
		lepton:      cfg.Lepton,
		cpConjugate: cfg.CPConjugate,
		isospin:     cfg.Descriptor.IsospinFactor,
		mParent:     b.Bind("mass::" + cfg.Descriptor.Parent),
		mDaughter:   b.Bind("mass::" + cfg.Descriptor.Daughter),
		mLepton:     b.Bind("mass::" + cfg.Lepton.Label()),
		gFermi:      b.Bind("WET::G_Fermi"),
		mu:          b.Bind(model.SectorPrefix(cfg.Descriptor.Heavy, cfg.Lepton) + "::mu"),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

// PhaseSpace returns the physical q2 window of the channel.
func (e *Engine) PhaseSpace() kinematics.PhaseSpace {
	return kinematics.NewPhaseSpace(e.mParent.Value(), e.mDaughter.Value(), e.mLepton.Value())
}

// Masses returns the parent and daughter meson masses.
func (e *Engine) Masses() (parent, daughter float64) {
	return e.mParent.Value(), e.mDaughter.Value()
}

// At evaluates the amplitudes at q2 = s. Outside the phase space all
// amplitudes are zero.
func (e *Engine) At(s float64) (Amplitudes, error) {
	mD, mP := e.mParent.Value(), e.mDaughter.Value()
	mD2, mP2 := mD*mD, mP*mP
	mL := e.mLepton.Value()

	if !kinematics.NewPhaseSpace(mD, mP, mL).Contains(s) {
		return Amplitudes{V: outsideVelocity}, nil
	}

	c := e.bundle.Couplings(e.lepton, e.cpConjugate)
	gV := c.CVR + (c.CVL - 1)
	gS := c.CSR + c.CSL
	gT := c.CT

	fp, err := e.ff.FPlus(s)
	if err != nil {
		return Amplitudes{}, err
	}
	f0, err := e.ff.FZero(s)
	if err != nil {
		return Amplitudes{}, err
	}
	fT, err := e.ff.FT(s)
	if err != nil {
		return Amplitudes{}, err
	}

	mu := e.mu.Value()
	mc := e.model.MassMSbar(model.FlavorC, mu)
	mq := e.bundle.LightMass(mu)

	p := kinematics.Momentum(mD, mP, s)
	v := kinematics.LeptonVelocity(mL, s)
	gf := e.gFermi.Value()
	nf := v * v * s * gf * gf / (256 * math.Pi * math.Pi * math.Pi * mD2)

	iso := complex(e.isospin, 0)
	sqrtS := complex(math.Sqrt(s), 0)
	one := complex(1, 0)

	a := Amplitudes{V: v, P: p, NF: nf}
	a.H0 = iso * complex(2*mD*p*fp, 0) * (one + gV) / sqrtS
	a.Ht = iso * (one + gV) * complex((mD2-mP2)*f0, 0) / sqrtS
	a.HS = -iso * gS * complex((mD2-mP2)*f0/(mc-mq), 0)
	a.HT = -iso * complex(2*mD*p*fT/(mD+mP), 0) * gT
	a.HtS = a.Ht - a.HS/complex(math.Sqrt(1-v), 0)

	for _, h := range []complex128{a.H0, a.Ht, a.HS, a.HT, a.HtS} {
		if cmplx.IsNaN(h) || cmplx.IsInf(h) {
			return Amplitudes{}, &errs.NumericalError{Kernel: "amplitudes", Point: s, Bound: math.NaN()}
		}
	}
	return a, nil
}
