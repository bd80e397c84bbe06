package observable

import (
	"sort"

	"github.com/verte-zerg/semilep/internal/errs"
)

// Kind tells how many kinematic arguments an observable takes.
type Kind int

const (
	// Differential observables take one point (q2 or w).
	Differential Kind = iota
	// Integrated observables take a range.
	Integrated
)

func (k Kind) String() string {
	if k == Integrated {
		return "integrated"
	}
	return "differential"
}

// Observable is one named output of DToPLNu.
type Observable struct {
	Name        string
	Description string
	Kind        Kind
	// Variable is "q2" or "w".
	Variable string

	// ratio marks differential observables that are 0/0 at the endpoints.
	ratio bool

	at   func(d *DToPLNu, x float64) (float64, error)
	over func(d *DToPLNu, lo, hi float64) (float64, error)
}

// At evaluates a differential observable.
func (o Observable) At(d *DToPLNu, x float64) (float64, error) {
	if o.at == nil {
		return 0, errs.Configf("observable", o.Name, "not a differential observable")
	}
	return o.at(d, x)
}

// Over evaluates an integrated observable on [lo, hi].
func (o Observable) Over(d *DToPLNu, lo, hi float64) (float64, error) {
	if o.over == nil {
		return 0, errs.Configf("observable", o.Name, "not an integrated observable")
	}
	return o.over(d, lo, hi)
}

// Domain returns the physical range of the observable's variable. Ratios of
// rates stop a relative 1e-9 inside the phase space, where the width that
// divides them is non-zero.
func (o Observable) Domain(d *DToPLNu) (lo, hi float64) {
	if o.Variable == "w" {
		lo, hi = d.RecoilRange()
	} else {
		ps := d.PhaseSpace()
		lo, hi = ps.Min, ps.Max
	}
	if o.ratio && lo < hi {
		eps := 1e-9 * (hi - lo)
		lo, hi = lo+eps, hi-eps
	}
	return lo, hi
}

func differential(name, variable, desc string, f func(d *DToPLNu) func(float64) (float64, error)) Observable {
	return Observable{Name: name, Description: desc, Kind: Differential, Variable: variable,
		at: func(d *DToPLNu, x float64) (float64, error) { return f(d)(x) }}
}

func ratioOf(o Observable) Observable {
	o.ratio = true
	return o
}

func integrated(name, variable, desc string, f func(d *DToPLNu) func(float64, float64) (float64, error)) Observable {
	return Observable{Name: name, Description: desc, Kind: Integrated, Variable: variable,
		over: func(d *DToPLNu, lo, hi float64) (float64, error) { return f(d)(lo, hi) }}
}

var registry = map[string]Observable{}

func register(o Observable) {
	registry[o.Name] = o
}

func init() {
	register(differential("dBR/dq2", "q2", "differential branching ratio",
		func(d *DToPLNu) func(float64) (float64, error) { return d.DifferentialBranchingRatio }))
	register(differential("dBR/dq2|V=1", "q2", "differential branching ratio at |V_cQ| = 1",
		func(d *DToPLNu) func(float64) (float64, error) { return d.NormalizedDifferentialBranchingRatio }))
	register(differential("dGamma/dq2|V=1", "q2", "differential decay width at |V_cQ| = 1",
		func(d *DToPLNu) func(float64) (float64, error) { return d.NormalizedDifferentialDecayWidth }))
	register(ratioOf(differential("A_FB(q2)", "q2", "leptonic forward-backward asymmetry",
		func(d *DToPLNu) func(float64) (float64, error) { return d.DifferentialAFBLeptonic })))
	register(ratioOf(differential("F_H(q2)", "q2", "flat term",
		func(d *DToPLNu) func(float64) (float64, error) { return d.DifferentialFlatTerm })))
	register(ratioOf(differential("A_l(q2)", "q2", "lepton polarization",
		func(d *DToPLNu) func(float64) (float64, error) { return d.DifferentialLeptonPolarization })))
	register(differential("P(q2)", "q2", "probability density in q2",
		func(d *DToPLNu) func(float64) (float64, error) { return d.DifferentialPDFQ2 }))
	register(differential("P(w)", "w", "probability density in the recoil w",
		func(d *DToPLNu) func(float64) (float64, error) { return d.DifferentialPDFW }))

	register(integrated("BR", "q2", "branching ratio",
		func(d *DToPLNu) func(float64, float64) (float64, error) { return d.IntegratedBranchingRatio }))
	register(integrated("BR|V=1", "q2", "branching ratio at |V_cQ| = 1",
		func(d *DToPLNu) func(float64, float64) (float64, error) { return d.NormalizedIntegratedBranchingRatio }))
	register(integrated("Gamma|V=1", "q2", "decay width at |V_cQ| = 1",
		func(d *DToPLNu) func(float64, float64) (float64, error) { return d.NormalizedIntegratedDecayWidth }))
	register(integrated("Gamma_+|V=1", "q2", "f+ part of the decay width at |V_cQ| = 1",
		func(d *DToPLNu) func(float64, float64) (float64, error) { return d.NormalizedIntegratedDecayWidthP }))
	register(integrated("Gamma_0|V=1", "q2", "f0 part of the decay width at |V_cQ| = 1",
		func(d *DToPLNu) func(float64, float64) (float64, error) { return d.NormalizedIntegratedDecayWidth0 }))
	register(integrated("A_FB", "q2", "integrated forward-backward asymmetry",
		func(d *DToPLNu) func(float64, float64) (float64, error) { return d.IntegratedAFBLeptonic }))
	register(integrated("F_H", "q2", "integrated flat term",
		func(d *DToPLNu) func(float64, float64) (float64, error) { return d.IntegratedFlatTerm }))
	register(integrated("A_l", "q2", "integrated lepton polarization",
		func(d *DToPLNu) func(float64, float64) (float64, error) { return d.IntegratedLeptonPolarization }))
	register(integrated("P[q2]", "q2", "mean probability density in a q2 bin",
		func(d *DToPLNu) func(float64, float64) (float64, error) { return d.IntegratedPDFQ2 }))
	register(integrated("P[w]", "w", "mean probability density in a w bin",
		func(d *DToPLNu) func(float64, float64) (float64, error) { return d.IntegratedPDFW }))
}

// Lookup returns the observable called name.
func Lookup(name string) (Observable, error) {
	o, ok := registry[name]
	if !ok {
		return Observable{}, errs.Configf("observable", name, "unknown observable")
	}
	return o, nil
}

// All returns the registered observables sorted by kind and name.
func All() []Observable {
	out := make([]Observable, 0, len(registry))
	for _, o := range registry {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}
