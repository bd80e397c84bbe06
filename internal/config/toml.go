// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML run file.
type FileConfig struct {
	Options    OptionsConfig      `toml:"options"`
	Parameters map[string]float64 `toml:"parameters"`
	Curve      CurveConfig        `toml:"curve"`
	Store      StoreConfig        `toml:"store"`
}

// OptionsConfig maps the evaluation options.
type OptionsConfig struct {
	Lepton       *string `toml:"l"`
	Heavy        *string `toml:"Q"`
	Spectator    *string `toml:"q"`
	Isospin      *string `toml:"I"`
	CPConjugate  *bool   `toml:"cp-conjugate"`
	RescaleBorel *bool   `toml:"rescale-borel"`
	FormFactors  *string `toml:"form-factors"`
	Model        *string `toml:"model"`
}

// CurveConfig maps the defaults of the curve command.
type CurveConfig struct {
	Points  *int     `toml:"points"`
	Min     *float64 `toml:"min"`
	Max     *float64 `toml:"max"`
	Workers *int     `toml:"workers"`
}

// StoreConfig maps the run-history settings.
type StoreConfig struct {
	Enabled *bool   `toml:"enabled"`
	Path    *string `toml:"path"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Pairs returns the options that are set as key=value strings, sorted by key.
func (o OptionsConfig) Pairs() []string {
	var out []string
	str := func(key string, v *string) {
		if v != nil {
			out = append(out, key+"="+*v)
		}
	}
	flag := func(key string, v *bool) {
		if v != nil {
			out = append(out, fmt.Sprintf("%s=%t", key, *v))
		}
	}
	str("l", o.Lepton)
	str("Q", o.Heavy)
	str("q", o.Spectator)
	str("I", o.Isospin)
	flag("cp-conjugate", o.CPConjugate)
	flag("rescale-borel", o.RescaleBorel)
	str("form-factors", o.FormFactors)
	str("model", o.Model)
	sort.Strings(out)
	return out
}

// Template is the commented run file written by "semilep config".
const Template = `# semilep run file

[options]
# l = "mu"              # e, mu, tau
# Q = "s"               # d, s
# q = "d"               # u, d, s
# I = "1"               # 1, 0, 1/2
# cp-conjugate = false
# rescale-borel = true
# form-factors = "BSZ2015"
# model = "SM"          # SM, WET

[parameters]
# "D->pi::M^2@KKMO2009" = 4.5
# "CKM::lambda" = 0.225

[curve]
# points = 50
# min = 0.0
# max = 1.8
# workers = 4

[store]
# enabled = true
# path = "~/.local/share/semilep/semilep.db"
`
