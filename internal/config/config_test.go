package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsToWorkingDirectory(t *testing.T) {
	for _, key := range []string{"XCPROJ_ROOT", "XCPROJ_LAYOUT", "XCPROJ_VERBOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wd, _ := os.Getwd()
	if cfg.Root != wd {
		t.Errorf("Root = %q, want %q", cfg.Root, wd)
	}
	if cfg.Verbose || cfg.LayoutPath != "" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XCPROJ_ROOT", root)
	t.Setenv("XCPROJ_LAYOUT", "app.yml")
	t.Setenv("XCPROJ_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != root || cfg.LayoutPath != "app.yml" || !cfg.Verbose {
		t.Errorf("config = %+v", cfg)
	}
	if got, want := cfg.ManifestPath("WordJournal"), filepath.Join(root, "WordJournal.xcodeproj", "project.pbxproj"); got != want {
		t.Errorf("ManifestPath = %q, want %q", got, want)
	}
}

func TestLoadRejectsBadBool(t *testing.T) {
	t.Setenv("XCPROJ_VERBOSE", "maybe")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid XCPROJ_VERBOSE")
	}
}

func TestLayoutFallsBackToDefault(t *testing.T) {
	cfg := &Config{}
	l, err := cfg.Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if l.Name != "WordJournal" {
		t.Errorf("Name = %q", l.Name)
	}

	cfg.LayoutPath = filepath.Join(t.TempDir(), "missing.yml")
	if _, err := cfg.Layout(); err == nil {
		t.Error("expected error for missing layout file")
	}
}

func TestSetRootMakesAbsolute(t *testing.T) {
	cfg := &Config{}
	if err := cfg.SetRoot("sub"); err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(cfg.Root) || filepath.Base(cfg.Root) != "sub" {
		t.Errorf("Root = %q", cfg.Root)
	}
}
