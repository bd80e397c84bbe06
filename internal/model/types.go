// Package model provides the Standard Model and weak effective theory inputs:
// the strong coupling, running quark masses, CKM elements and the Wilson
// coefficients of c -> q l nu transitions.
package model

import (
	"github.com/verte-zerg/semilep/internal/errs"
)

// Flavor identifies a quark whose MSbar mass can be queried.
type Flavor int

const (
	FlavorU Flavor = iota
	FlavorD
	FlavorS
	FlavorC
	FlavorB
)

func (f Flavor) String() string {
	switch f {
	case FlavorU:
		return "u"
	case FlavorD:
		return "d"
	case FlavorS:
		return "s"
	case FlavorC:
		return "c"
	case FlavorB:
		return "b"
	default:
		return "?"
	}
}

// Lepton is the charged lepton flavor of the decay.
type Lepton int

const (
	Electron Lepton = iota
	Muon
	Tau
)

// Label is the lepton name used in parameter keys (mass::<label>).
func (l Lepton) Label() string {
	switch l {
	case Electron:
		return "e"
	case Muon:
		return "mu"
	case Tau:
		return "tau"
	default:
		return "?"
	}
}

func (l Lepton) String() string {
	return l.Label()
}

// ParseLepton parses the l option.
func ParseLepton(v string) (Lepton, error) {
	switch v {
	case "e":
		return Electron, nil
	case "mu":
		return Muon, nil
	case "tau":
		return Tau, nil
	}
	return 0, errs.Configf("l", v, "allowed values are e, mu, tau")
}

// Couplings are the Wilson coefficients of the vector, scalar and tensor
// operators. The Standard Model has CVL = 1 and all others zero.
type Couplings struct {
	CVL complex128
	CVR complex128
	CSL complex128
	CSR complex128
	CT  complex128
}

// Conj returns the CP-conjugated couplings.
func (c Couplings) Conj() Couplings {
	return Couplings{
		CVL: conj(c.CVL),
		CVR: conj(c.CVR),
		CSL: conj(c.CSL),
		CSR: conj(c.CSR),
		CT:  conj(c.CT),
	}
}

func conj(z complex128) complex128 {
	return complex(real(z), -imag(z))
}
