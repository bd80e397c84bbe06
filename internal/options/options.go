// Package options holds the discrete string selectors of an evaluation.
package options

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/semilep/internal/errs"
)

// Option keys.
const (
	KeyLepton       = "l"
	KeyHeavy        = "Q"
	KeySpectator    = "q"
	KeyIsospin      = "I"
	KeyCPConjugate  = "cp-conjugate"
	KeyRescaleBorel = "rescale-borel"
	KeyFormFactors  = "form-factors"
	KeyModel        = "model"
)

// Defaults of the option keys.
var defaults = map[string]string{
	KeyLepton:       "mu",
	KeyHeavy:        "s",
	KeySpectator:    "d",
	KeyIsospin:      "1",
	KeyCPConjugate:  "false",
	KeyRescaleBorel: "1",
	KeyFormFactors:  "BSZ2015",
	KeyModel:        "SM",
}

// Options maps option keys to values. The zero value is usable.
type Options map[string]string

// Default returns the value used for key when it is not set.
func Default(key string) string {
	return defaults[key]
}

// Keys returns the known option keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parse reads "key=value" pairs.
func Parse(pairs []string) (Options, error) {
	o := Options{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q (want key=value)", pair)
		}
		o[key] = strings.TrimSpace(value)
	}
	return o, nil
}

// Get returns the value of key, or def when unset.
func (o Options) Get(key, def string) string {
	if v, ok := o[key]; ok {
		return v
	}
	return def
}

// Value returns the value of key, falling back to the package default.
func (o Options) Value(key string) string {
	return o.Get(key, defaults[key])
}

// Choice returns the value of key and checks it against allowed.
func (o Options) Choice(key string, allowed []string, def string) (string, error) {
	v := o.Get(key, def)
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", errs.Configf(key, v, "allowed values are %s", strings.Join(allowed, ", "))
}

// Bool parses a switch option. Accepted spellings are 1/0, true/false, yes/no
// and on/off.
func (o Options) Bool(key string, def bool) (bool, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, errs.Configf(key, v, "expected a boolean")
}

// With returns a copy of o with key set to value.
func (o Options) With(key, value string) Options {
	c := make(Options, len(o)+1)
	for k, v := range o {
		c[k] = v
	}
	c[key] = value
	return c
}

// String renders the options as sorted key=value pairs.
func (o Options) String() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+o[k])
	}
	return strings.Join(parts, ",")
}
