// Package process resolves a quark-level transition into the mesons taking part
// in the decay.
package process

import (
	"fmt"
	"math"

	"github.com/verte-zerg/semilep/internal/errs"
)

// HeavyQuark is the quark the charm quark decays into.
type HeavyQuark int

const (
	QuarkD HeavyQuark = iota
	QuarkS
)

func (q HeavyQuark) String() string {
	switch q {
	case QuarkD:
		return "d"
	case QuarkS:
		return "s"
	default:
		return fmt.Sprintf("HeavyQuark(%d)", int(q))
	}
}

// Spectator is the light antiquark of the parent meson.
type Spectator int

const (
	SpectatorU Spectator = iota
	SpectatorD
	SpectatorS
)

func (q Spectator) String() string {
	switch q {
	case SpectatorU:
		return "u"
	case SpectatorD:
		return "d"
	case SpectatorS:
		return "s"
	default:
		return fmt.Sprintf("Spectator(%d)", int(q))
	}
}

// Isospin labels the isospin of the daughter state.
type Isospin int

const (
	IsospinOne Isospin = iota
	IsospinZero
	IsospinHalf
)

func (i Isospin) String() string {
	switch i {
	case IsospinOne:
		return "1"
	case IsospinZero:
		return "0"
	case IsospinHalf:
		return "1/2"
	default:
		return fmt.Sprintf("Isospin(%d)", int(i))
	}
}

// Key selects one entry of the process table.
type Key struct {
	Heavy     HeavyQuark
	Spectator Spectator
	Isospin   Isospin
}

func (k Key) String() string {
	return fmt.Sprintf("(Q=%s, q=%s, I=%s)", k.Heavy, k.Spectator, k.Isospin)
}

// Descriptor names the mesons of a decay channel. Parent and Daughter are
// parameter suffixes (mass::<Parent>), Process prefixes form-factor parameters.
type Descriptor struct {
	Process       string
	Parent        string
	Daughter      string
	IsospinFactor float64
	Heavy         HeavyQuark
	Spectator     Spectator
}

var table = map[Key]Descriptor{
	{QuarkD, SpectatorU, IsospinOne}: {Process: "D->pi", Parent: "D_u", Daughter: "pi^-", IsospinFactor: 1 / math.Sqrt2, Heavy: QuarkD, Spectator: SpectatorU},
	{QuarkD, SpectatorD, IsospinOne}: {Process: "D->pi", Parent: "D_d", Daughter: "pi^0", IsospinFactor: 1, Heavy: QuarkD, Spectator: SpectatorD},
	{QuarkD, SpectatorS, IsospinHalf}: {Process: "D_s->K", Parent: "D_s", Daughter: "K_u", IsospinFactor: 1, Heavy: QuarkD, Spectator: SpectatorS},
	{QuarkS, SpectatorU, IsospinOne}: {Process: "D->K", Parent: "D_u", Daughter: "K_u", IsospinFactor: 1, Heavy: QuarkS, Spectator: SpectatorU},
	{QuarkS, SpectatorD, IsospinOne}: {Process: "D->K", Parent: "D_d", Daughter: "K_d", IsospinFactor: 1, Heavy: QuarkS, Spectator: SpectatorD},
}

// Resolve looks up the descriptor for k.
func Resolve(k Key) (Descriptor, error) {
	d, ok := table[k]
	if !ok {
		return Descriptor{}, &errs.ConfigurationError{
			Option: "Q,q,I",
			Value:  fmt.Sprintf("%s,%s,%s", k.Heavy, k.Spectator, k.Isospin),
			Reason: fmt.Sprintf("unsupported transition %s", k),
		}
	}
	return d, nil
}

// Keys returns every supported key.
func Keys() []Key {
	keys := make([]Key, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	return keys
}

// ParseHeavyQuark parses the Q option.
func ParseHeavyQuark(v string) (HeavyQuark, error) {
	switch v {
	case "d":
		return QuarkD, nil
	case "s":
		return QuarkS, nil
	}
	return 0, errs.Configf("Q", v, "allowed values are d, s")
}

// ParseSpectator parses the q option.
func ParseSpectator(v string) (Spectator, error) {
	switch v {
	case "u":
		return SpectatorU, nil
	case "d":
		return SpectatorD, nil
	case "s":
		return SpectatorS, nil
	}
	return 0, errs.Configf("q", v, "allowed values are u, d, s")
}

// ParseIsospin parses the I option.
func ParseIsospin(v string) (Isospin, error) {
	switch v {
	case "1":
		return IsospinOne, nil
	case "0":
		return IsospinZero, nil
	case "1/2":
		return IsospinHalf, nil
	}
	return 0, errs.Configf("I", v, "allowed values are 1, 0, 1/2")
}

// ParseKey parses the three option strings and resolves them.
func ParseKey(q, spectator, isospin string) (Descriptor, error) {
	h, err := ParseHeavyQuark(q)
	if err != nil {
		return Descriptor{}, err
	}
	s, err := ParseSpectator(spectator)
	if err != nil {
		return Descriptor{}, err
	}
	i, err := ParseIsospin(isospin)
	if err != nil {
		return Descriptor{}, err
	}
	return Resolve(Key{Heavy: h, Spectator: s, Isospin: i})
}
