package nodenet

import "testing"

func TestPerfWarningOnLowFrameRate(t *testing.T) {
	bus := NewBus()
	warnings := 0
	var lastFPS float64
	bus.Subscribe(func(evt Event) {
		if evt.Type == EventPerformanceWarning {
			warnings++
			lastFPS = evt.FPS
		}
	})
	m := NewPerfMonitor(bus)

	// ~10 fps: 100ms between frames across one full window.
	now := 0.0
	for i := 0; i < 25; i++ {
		m.Frame(now)
		now += 100
	}
	if warnings != 1 {
		t.Fatalf("warnings = %d, want 1 per window", warnings)
	}
	if lastFPS <= 0 || lastFPS >= perfThresholdFPS {
		t.Errorf("reported fps = %g, want below %g", lastFPS, perfThresholdFPS)
	}
}

func TestNoWarningAtFullFrameRate(t *testing.T) {
	bus := NewBus()
	warnings := 0
	bus.Subscribe(func(evt Event) {
		if evt.Type == EventPerformanceWarning {
			warnings++
		}
	})
	m := NewPerfMonitor(bus)

	now := 0.0
	for i := 0; i < 300; i++ { // ~5s at 60 fps
		m.Frame(now)
		now += 16.67
	}
	if warnings != 0 {
		t.Errorf("warnings = %d, want 0 at 60 fps", warnings)
	}
}

func TestResetDiscardsPauseGap(t *testing.T) {
	bus := NewBus()
	warnings := 0
	bus.Subscribe(func(evt Event) {
		if evt.Type == EventPerformanceWarning {
			warnings++
		}
	})
	m := NewPerfMonitor(bus)

	m.Frame(0)
	m.Frame(16)
	// Long pause, then resume with a reset: the gap must not read as
	// dropped frames.
	m.Reset()
	now := 60000.0
	for i := 0; i < 150; i++ {
		m.Frame(now)
		now += 16.67
	}
	if warnings != 0 {
		t.Errorf("warnings = %d, want 0 after reset", warnings)
	}
}
