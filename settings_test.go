package nodenet

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if !s.EnableAnimations {
		t.Error("animations disabled by default")
	}
	if s.ReduceMotion {
		t.Error("reduce motion enabled by default")
	}
	if s.PsychedelicIntensity != 0.5 {
		t.Errorf("intensity = %g, want 0.5", s.PsychedelicIntensity)
	}
}

func TestOpenFileSettingsMissingFileUsesDefaults(t *testing.T) {
	fs, err := OpenFileSettings(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if fs.Current() != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", fs.Current())
	}
}

func TestFileSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	fs, err := OpenFileSettings(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	err = fs.Update(func(s *Settings) {
		s.ReduceMotion = true
		s.PsychedelicIntensity = 0.8
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	reloaded, err := OpenFileSettings(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := reloaded.Current()
	if !got.ReduceMotion {
		t.Error("reduce_motion not persisted")
	}
	if got.PsychedelicIntensity != 0.8 {
		t.Errorf("intensity = %g, want 0.8", got.PsychedelicIntensity)
	}
}

func TestIntensityClampedOnUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	fs, err := OpenFileSettings(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := fs.Update(func(s *Settings) { s.PsychedelicIntensity = 7 }); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := fs.Current().PsychedelicIntensity; got != 1 {
		t.Errorf("intensity = %g, want clamped to 1", got)
	}
}

func TestIntensityClampedOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	data := []byte("enable_animations = true\nreduce_motion = false\npsychedelic_intensity = -3.0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	fs, err := OpenFileSettings(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := fs.Current().PsychedelicIntensity; got != 0 {
		t.Errorf("intensity = %g, want clamped to 0", got)
	}
}

func TestStaticSettingsSource(t *testing.T) {
	src := StaticSettings{S: Settings{EnableAnimations: false}}
	if src.Current().EnableAnimations {
		t.Error("static source did not return held value")
	}
}
