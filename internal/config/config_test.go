package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Beta <= 0 || cfg.Timestep <= 0 || cfg.Diffusion <= 0 {
		t.Errorf("default physical parameters must be positive: %+v", cfg)
	}
	if cfg.TPS.Equilibration >= cfg.TPS.Trials {
		t.Error("default TPS equilibration must precede the trial budget")
	}
	if len(cfg.Replica.Betas) < 2 {
		t.Error("default replica ladder needs at least two temperatures")
	}
	if len(cfg.Umbrella.Centers) == 0 {
		t.Error("default umbrella config has no windows")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := DefaultConfig()
	cfg.Beta = 3.5
	cfg.TPS.Trials = 77
	cfg.Replica.Betas = []float64{0.5, 1.0}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Beta != 3.5 {
		t.Errorf("beta = %g, want 3.5", loaded.Beta)
	}
	if loaded.TPS.Trials != 77 {
		t.Errorf("trials = %d, want 77", loaded.TPS.Trials)
	}
	if len(loaded.Replica.Betas) != 2 || loaded.Replica.Betas[1] != 1.0 {
		t.Errorf("replica betas = %v, want [0.5 1]", loaded.Replica.Betas)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")

	if err := os.WriteFile(path, []byte("beta: 1.25\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Beta != 1.25 {
		t.Errorf("beta = %g, want 1.25", cfg.Beta)
	}
	if cfg.Timestep != DefaultTimestep {
		t.Errorf("timestep = %g, want default %g", cfg.Timestep, DefaultTimestep)
	}
	if cfg.TPS.Trials == 0 {
		t.Error("unset sections must keep their defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
