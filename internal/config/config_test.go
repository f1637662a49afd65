package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/symcalc/symcalc/pkg/registry"
)

func TestLoadAndApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "constants.yaml")
	body := "constants:\n  golden: 1.6180339887\n  pi: 3.0\n" // pi should not override the standard value
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	r := registry.New()
	r.Init()
	c.Apply(r)

	if v := r.GetConstantValue("golden"); v < 1.6 || v > 1.7 {
		t.Errorf("golden = %v, want ~1.618", v)
	}
	if v := r.GetConstantValue("pi"); v < 3.14 || v > 3.15 {
		t.Errorf("pi = %v, want standard value (first-registration-wins), got overridden to %v", v, v)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/constants.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
