package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Addr != ":9090" {
		t.Errorf("default addr = %q", cfg.Addr)
	}
	if cfg.CheckDelay != 600*time.Millisecond {
		t.Errorf("default check delay = %v", cfg.CheckDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bugdrill.yaml")
	doc := `addr: ":8080"
check_delay: 250ms
exercise_dir: /srv/exercises
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.CheckDelay != 250*time.Millisecond {
		t.Errorf("check_delay = %v", cfg.CheckDelay)
	}
	if cfg.ExerciseDir != "/srv/exercises" {
		t.Errorf("exercise_dir = %q", cfg.ExerciseDir)
	}
	// Fields absent from the file keep their defaults.
	if cfg.MaxClients != Default().MaxClients {
		t.Errorf("max_clients = %d, want default", cfg.MaxClients)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bugdrill.yaml")
	if err := os.WriteFile(path, []byte("check_delay: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unparseable duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"EmptyAddr", func(c *Config) { c.Addr = "" }, "addr"},
		{"NegativeDelay", func(c *Config) { c.CheckDelay = -time.Second }, "check_delay"},
		{"ZeroClients", func(c *Config) { c.MaxClients = 0 }, "max_clients"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing explicit config path")
	}
}
