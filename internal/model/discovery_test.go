package model

import "testing"

func TestDiscoveryConfig_Allows(t *testing.T) {
	cfg := DefaultDiscoveryConfig("root")

	tests := []struct {
		name string
		want bool
	}{
		{name: "page.tsx", want: true},
		{name: "route.ts", want: true},
		{name: "index.js", want: true},
		{name: "App.jsx", want: true},
		{name: "EVAL.ts", want: false},
		{name: "PROMPT.md", want: false},
		{name: "styles.css", want: false},
		{name: "Makefile", want: false},
	}

	for _, tt := range tests {
		if got := cfg.Allows(tt.name); got != tt.want {
			t.Errorf("Allows(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDiscoveryConfig_IgnoresDir(t *testing.T) {
	cfg := DefaultDiscoveryConfig("root")

	for _, name := range []string{".git", ".next", "node_modules", "dist", "build", "coverage"} {
		if !cfg.IgnoresDir(name) {
			t.Errorf("expected %s to be ignored", name)
		}
	}

	if cfg.IgnoresDir("app") {
		t.Errorf("app must not be ignored")
	}
}

func TestDiscoveryConfig_DefaultsAreCopies(t *testing.T) {
	cfg := DefaultDiscoveryConfig("root")
	cfg.IgnoredDirNames[0] = "changed"

	if DefaultIgnoredDirs[0] != ".git" {
		t.Fatalf("DefaultDiscoveryConfig must not alias package defaults")
	}

	moved := cfg.WithRoot("elsewhere")
	if moved.Root != "elsewhere" || cfg.Root != "root" {
		t.Fatalf("WithRoot must return a copy, got %q and %q", moved.Root, cfg.Root)
	}
}
