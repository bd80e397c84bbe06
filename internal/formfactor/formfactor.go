// Package formfactor provides the hadronic form factors f+, f0 and fT of
// pseudoscalar to pseudoscalar transitions.
package formfactor

import (
	"sort"

	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/options"
	"github.com/verte-zerg/semilep/internal/params"
)

// FormFactors evaluates the three form factors at momentum transfer q2.
type FormFactors interface {
	FPlus(q2 float64) (float64, error)
	FZero(q2 float64) (float64, error)
	FT(q2 float64) (float64, error)
}

// Factory builds one form-factor variant.
type Factory func(p *params.Parameters, o options.Options, u *params.User) (FormFactors, error)

func bsz(process string) Factory {
	return func(p *params.Parameters, _ options.Options, u *params.User) (FormFactors, error) {
		return NewBSZ2015(process, p, u)
	}
}

// factories is keyed by "<process>::<variant>".
var factories = map[string]Factory{
	"D->pi::KKMO2009": func(p *params.Parameters, o options.Options, u *params.User) (FormFactors, error) {
		return NewLCSR(p, o, u)
	},
	"D->pi::BSZ2015":  bsz("D->pi"),
	"D->K::BSZ2015":   bsz("D->K"),
	"D_s->K::BSZ2015": bsz("D_s->K"),
}

// Make builds the variant of process.
func Make(process, variant string, p *params.Parameters, o options.Options, u *params.User) (FormFactors, error) {
	key := process + "::" + variant
	f, ok := factories[key]
	if !ok {
		return nil, errs.Configf(options.KeyFormFactors, variant, "no form factors %s", key)
	}
	return f(p, o, u)
}

// Variants lists the registered "<process>::<variant>" keys.
func Variants() []string {
	keys := make([]string, 0, len(factories))
	for k := range factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
