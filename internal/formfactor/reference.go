package formfactor

import (
	"fmt"
	"math"

	"github.com/verte-zerg/semilep/internal/options"
	"github.com/verte-zerg/semilep/internal/params"
)

// Reference is a recorded value of one sum-rule quantity.
type Reference struct {
	Label     string
	Value     float64
	Tolerance float64

	// diagnostic entries read the Diagnostics list instead of evaluating.
	diagnostic bool
	eval       func(l *LCSR, diag map[string]Diagnostic) (float64, error)
}

// ReferenceSet is a parameter point together with the values recorded for
// it. Overrides are applied on top of the caller's parameters.
type ReferenceSet struct {
	Name      string
	Overrides map[string]float64
	Options   options.Options
	Entries   []Reference
}

func diagnosticRef(label string, value, tol float64) Reference {
	return Reference{Label: label, Value: value, Tolerance: tol, diagnostic: true,
		eval: func(_ *LCSR, diag map[string]Diagnostic) (float64, error) {
			d, ok := diag[label]
			if !ok {
				return math.NaN(), fmt.Errorf("no diagnostic %q", label)
			}
			return d.Value, d.Err
		}}
}

func kernelRef(k Kernel, q2, value, tol float64) Reference {
	return Reference{Label: fmt.Sprintf("%s(q2 = %.1f)", k, q2), Value: value, Tolerance: tol,
		eval: func(l *LCSR, _ map[string]Diagnostic) (float64, error) {
			return l.Kernel(k, q2, l.BorelM2(), Plain)
		}}
}

func formFactorRef(name string, q2, value, tol float64, f func(l *LCSR) func(float64) (float64, error)) Reference {
	return Reference{Label: fmt.Sprintf("%s(q2 = %.1f)", name, q2), Value: value, Tolerance: tol,
		eval: func(l *LCSR, _ map[string]Diagnostic) (float64, error) {
			return f(l)(q2)
		}}
}

func fPlusOf(l *LCSR) func(float64) (float64, error) { return l.FPlus }
func fZeroOf(l *LCSR) func(float64) (float64, error) { return l.FZero }
func fTOf(l *LCSR) func(float64) (float64, error)    { return l.FT }

func svzMassRef(value, tol float64) Reference {
	return Reference{Label: "M_D (SVZ)", Value: value, Tolerance: tol,
		eval: func(l *LCSR, _ map[string]Diagnostic) (float64, error) {
			return l.MDSVZ()
		}}
}

// charmPoint is the mu = 3 GeV charm point shared by the kernel sets.
func charmPoint() map[string]float64 {
	return map[string]float64{
		"mass::pi^+":               0.13957,
		"mass::d(2GeV)":            0.0048,
		"mass::u(2GeV)":            0.0032,
		"D->pi::M^2@KKMO2009":      12.0,
		"D->pi::Mp^2@KKMO2009":     4.5,
		"D->pi::mu@KKMO2009":       3.0,
		"D->pi::s_0^+(0)@KKMO2009": 37.5,
		"D->pi::s_0^0(0)@KKMO2009": 37.5,
		"D->pi::s_0^T(0)@KKMO2009": 37.5,
		"D->pi::sp_0^B@KKMO2009":   36.5,
		"QCD::alpha_s(MZ)":         0.1184,
	}
}

// ReferenceSets pin the sum rule at fixed parameter points. The first three
// sets record values of this implementation at charm kinematics, where no
// published D -> pi table exists; the last one checks the heavy-quark limit
// against the published form factors of the KKMO2009 analysis, which the
// same formulae reproduce when the charm inputs are replaced by bottom ones.
var ReferenceSets = []ReferenceSet{
	{
		Name: "decay-constant",
		Overrides: map[string]float64{
			"mass::D_d":                 1.865,
			"mass::c(MSbar)":            1.29,
			"D->pi::mu@KKMO2009":        2.43,
			"D->pi::Mp^2@KKMO2009":      5.0,
			"D->pi::sp_0^B@KKMO2009":    35.75,
			"D->pi::s_0^+(0)@KKMO2009":  37.5,
			"D->pi::s_0^+'(0)@KKMO2009": 0.0,
			"D->pi::s_0^0(0)@KKMO2009":  37.5,
			"D->pi::s_0^0'(0)@KKMO2009": 0.0,
			"D->pi::s_0^T(0)@KKMO2009":  37.5,
			"D->pi::s_0^T'(0)@KKMO2009": 0.0,
			"QCD::m_0^2":                0.8,
			"QCD::cond_GG":              0.012,
			"QCD::r_vac":                1.0,
		},
		Entries: []Reference{
			diagnosticRef("f_D", 0.413472465, 1e-5),
			svzMassRef(3.316341087, 1e-5),
			diagnosticRef("rescale_factor_p(s =  0.0)", 1.0, 1e-5),
			diagnosticRef("rescale_factor_0(s =  0.0)", 1.0, 1e-5),
			diagnosticRef("rescale_factor_T(s =  0.0)", 1.0, 1e-5),
			diagnosticRef("M_D(f_+, q2 =  0.0)", 1.824745104, 1e-5),
			diagnosticRef("M_D(f_0, q2 =  0.0)", 1.824872436, 1e-5),
			diagnosticRef("M_D(f_T, q2 =  0.0)", 1.773460859, 1e-5),
		},
	},
	{
		Name:      "mu=3.0",
		Overrides: charmPoint(),
		Entries: []Reference{
			kernelRef(FLOTw2, -5, 0.116715885, 1e-5),
			kernelRef(FLOTw2, 0, 0.254876259, 1e-5),
			kernelRef(FLOTw3, -5, 0.238721920, 1e-5),
			kernelRef(FLOTw3, 0, 0.512970048, 1e-5),
			kernelRef(FLOTw4, -5, 0.002708606, 1e-6),
			kernelRef(FLOTw4, 0, 0.004323034, 1e-6),
			kernelRef(FNLOTw2, -5, 1.395147016, 1e-5),
			kernelRef(FNLOTw2, 0, 2.161342321, 1e-5),
			kernelRef(FNLOTw3, -5, -0.672525030, 1e-5),
			kernelRef(FNLOTw3, 0, -1.787948608, 1e-5),
			formFactorRef("f_+", -5, 0.191018693, 1e-5, fPlusOf),
			formFactorRef("f_+", 0, 0.409608920, 1e-5, fPlusOf),
		},
	},
	{
		Name:      "mu=3.0, fixed Borel",
		Options:   options.Options{options.KeyRescaleBorel: "0"},
		Overrides: charmPoint(),
		Entries: []Reference{
			kernelRef(FtilLOTw3, -5, 0.228988896, 1e-5),
			kernelRef(FtilLOTw3, 0, 0.853630331, 1e-5),
			kernelRef(FtilLOTw4, -5, -0.000351375, 1e-6),
			kernelRef(FtilLOTw4, 0, -0.005808656, 1e-6),
			kernelRef(FtilNLOTw2, -5, 0.260809634, 1e-5),
			kernelRef(FtilNLOTw3, -5, 0.066730053, 1e-5),
			kernelRef(FTLOTw2, -5, 0.118238207, 1e-5),
			kernelRef(FTLOTw2, 0, 0.258200602, 1e-5),
			kernelRef(FTLOTw3, -5, 0.020141523, 1e-5),
			kernelRef(FTLOTw3, 0, 0.075858436, 1e-5),
			kernelRef(FTLOTw4, -5, -0.001239071, 1e-6),
			kernelRef(FTLOTw4, 0, -0.004840203, 1e-6),
			kernelRef(FTNLOTw2, -5, 0.306222222, 1e-5),
			kernelRef(FTNLOTw2, 0, -0.406799677, 1e-5),
			kernelRef(FTNLOTw3, -5, 0.557038119, 1e-5),
			kernelRef(FTNLOTw3, 0, 0.102293181, 1e-5),
			formFactorRef("f_+", -5, 0.197772112, 1e-5, fPlusOf),
			formFactorRef("f_0", -5, 0.134669310, 1e-5, fZeroOf),
			formFactorRef("f_0", 0, 0.409608920, 1e-5, fZeroOf),
			formFactorRef("f_T", -5, 0.168864010, 1e-5, fTOf),
			formFactorRef("f_T", 0, 0.337682305, 1e-5, fTOf),
		},
	},
	{
		// The residual differences come from the running of alpha_s and
		// m_c, which the published numbers evaluate at a different order.
		Name:    "heavy quark",
		Options: options.Options{options.KeyRescaleBorel: "0"},
		Overrides: map[string]float64{
			"decay-constant::pi":       0.1307,
			"mass::D_d":                5.279,
			"mass::pi^+":               0.13957,
			"mass::c(MSbar)":           4.164,
			"mass::d(2GeV)":            0.006,
			"mass::u(2GeV)":            0.003,
			"pi::a2@1GeV":              0.161995,
			"pi::a4@1GeV":              0.038004,
			"D->pi::M^2@KKMO2009":      18.0,
			"D->pi::Mp^2@KKMO2009":     5.0,
			"D->pi::mu@KKMO2009":       3.0,
			"D->pi::s_0^+(0)@KKMO2009": 35.75,
			"D->pi::s_0^0(0)@KKMO2009": 35.75,
			"D->pi::s_0^T(0)@KKMO2009": 35.75,
			"D->pi::sp_0^B@KKMO2009":   35.6,
			"QCD::alpha_s(MZ)":         0.1176,
		},
		Entries: []Reference{
			formFactorRef("f_+", 0, 0.2644, 2e-3, fPlusOf),
			formFactorRef("f_+", 10, 0.4964, 4e-3, fPlusOf),
			formFactorRef("f_0", 10, 0.3725, 2e-3, fZeroOf),
			formFactorRef("f_T", 0, 0.2606, 2e-3, fTOf),
			formFactorRef("f_T", 10, 0.4990, 3e-3, fTOf),
		},
	},
}

// Evaluate computes the entries of s on a copy of base. Failing entries
// carry their error.
func (s ReferenceSet) Evaluate(base *params.Parameters) ([]Diagnostic, error) {
	p := base.Clone()
	for name, v := range s.Overrides {
		if err := p.Set(name, v); err != nil {
			return nil, fmt.Errorf("failed to apply reference set %s: %w", s.Name, err)
		}
	}
	l, err := NewLCSR(p, s.Options, nil)
	if err != nil {
		return nil, err
	}

	var diag map[string]Diagnostic
	out := make([]Diagnostic, 0, len(s.Entries))
	for _, e := range s.Entries {
		if diag == nil && e.diagnostic {
			diag = map[string]Diagnostic{}
			for _, d := range l.Diagnostics() {
				diag[d.Label] = d
			}
		}
		v, err := e.eval(l, diag)
		if err != nil {
			v = math.NaN()
		}
		out = append(out, Diagnostic{Label: e.Label, Value: v, Err: err})
	}
	return out, nil
}
