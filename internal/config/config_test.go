package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Options.Model != nil || len(cfg.Parameters) != 0 {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[options]
l = "e"
Q = "d"
cp-conjugate = true

[parameters]
"D->pi::M^2@KKMO2009" = 5.0

[curve]
points = 20
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := []string{"Q=d", "cp-conjugate=true", "l=e"}
	if diff := cmp.Diff(want, cfg.Options.Pairs()); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Parameters["D->pi::M^2@KKMO2009"]; got != 5.0 {
		t.Fatalf("parameter = %g, want 5", got)
	}
	if cfg.Curve.Points == nil || *cfg.Curve.Points != 20 {
		t.Fatalf("curve points not decoded: %+v", cfg.Curve)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestTemplateDecodes(t *testing.T) {
	var cfg FileConfig
	if _, err := toml.Decode(Template, &cfg); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "semilep", "config.toml") {
		t.Fatalf("DefaultConfigPath = %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "semilep", "semilep.db") {
		t.Fatalf("DefaultDBPath = %q", got)
	}
}
