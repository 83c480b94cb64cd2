package cli

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func parse(t *testing.T, args ...string) *Options {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := Register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) = %v", args, err)
	}
	return o
}

func TestOptions_ConfigDefaults(t *testing.T) {
	cfg, err := parse(t).Config()
	if err != nil {
		t.Fatalf("Config() = %v", err)
	}
	if cfg.BoidCount != 5000 || cfg.MaxSpeed != 3 || cfg.MinSpeed != 0.5 || cfg.VisibleRange != 20 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestOptions_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flock.json")
	if err := os.WriteFile(path, []byte(`{"boidCount": 100, "maxSpeed": 4, "minSpeed": 1}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := parse(t, "-config", path, "-boids", "250", "-visible-range", "30").Config()
	if err != nil {
		t.Fatalf("Config() = %v", err)
	}
	if cfg.BoidCount != 250 || cfg.VisibleRange != 30 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	// not given on the command line, the file value stays
	if cfg.MaxSpeed != 4 || cfg.MinSpeed != 1 {
		t.Errorf("file values lost: %+v", cfg)
	}
}

func TestOptions_ConfigBadFile(t *testing.T) {
	if _, err := parse(t, "-config", filepath.Join(t.TempDir(), "missing.toml")).Config(); err == nil {
		t.Fatal("Config() accepted a missing file")
	}
}

func TestOptions_Logger(t *testing.T) {
	if parse(t).Logger(os.Stderr) == nil {
		t.Error("Logger() = nil")
	}
	if parse(t, "-debug").Logger(os.Stderr) == nil {
		t.Error("Logger() = nil at debug level")
	}
}
