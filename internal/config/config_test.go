package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.WidthPx <= 0 || s.HeightPx <= 0 {
		t.Errorf("default figure size %dx%d not positive", s.WidthPx, s.HeightPx)
	}
	if s.Background == "" || s.AxisColor == "" || s.EarthAxisColor == "" {
		t.Error("default style has empty colors")
	}
}

func TestLoadStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	content := []byte("width_px: 900\nearth_axis_color: \"#224422\"\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle failed: %v", err)
	}
	if s.WidthPx != 900 {
		t.Errorf("WidthPx = %d, want 900", s.WidthPx)
	}
	if s.EarthAxisColor != "#224422" {
		t.Errorf("EarthAxisColor = %s", s.EarthAxisColor)
	}
	// Unset fields keep their defaults.
	if s.HeightPx != DefaultStyle().HeightPx {
		t.Errorf("HeightPx = %d, want default", s.HeightPx)
	}
}

func TestLoadStyleErrors(t *testing.T) {
	if _, err := LoadStyle(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("width_px: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStyle(bad); err == nil {
		t.Error("expected error for non-positive dimensions")
	}
}
