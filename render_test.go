package nodenet

import (
	"math"
	"testing"
)

func TestConnectionSteps(t *testing.T) {
	cases := []struct {
		distance float64
		want     int
	}{
		{0, 0},
		{7.9, 0},
		{8, 1},
		{15.9, 1}, // below two steps: connection too short to render
		{16, 2},
		{100, 12},
		{150, 18},
	}
	for _, tc := range cases {
		if got := connectionSteps(tc.distance); got != tc.want {
			t.Errorf("connectionSteps(%g) = %d, want %d", tc.distance, got, tc.want)
		}
	}
}

func TestTrailShadePeaksAtMidpoint(t *testing.T) {
	mid := trailShade(0.5, 1)
	if math.Abs(mid-1) > 1e-9 {
		t.Errorf("shade at midpoint = %g, want 1", mid)
	}
	if got := trailShade(0, 1); got != 0 {
		t.Errorf("shade at start = %g, want 0", got)
	}
	if got := trailShade(1, 1); got != 0 {
		t.Errorf("shade at end = %g, want 0", got)
	}
	// Symmetric around the midpoint, increasing toward it.
	if trailShade(0.2, 1) >= mid {
		t.Error("shade does not peak at midpoint")
	}
	if math.Abs(trailShade(0.2, 1)-trailShade(0.8, 1)) > 1e-9 {
		t.Error("shade profile not symmetric")
	}
}

func TestTrailShadeScalesWithStrength(t *testing.T) {
	strong := trailShade(0.5, 1)
	weak := trailShade(0.5, 0.25)
	if math.Abs(weak-strong*0.25) > 1e-9 {
		t.Errorf("shade at strength 0.25 = %g, want %g", weak, strong*0.25)
	}
	for p := 0.0; p <= 1.0; p += 0.1 {
		if s := trailShade(p, 0.5); s < 0 || s > 1 {
			t.Errorf("shade(%g, 0.5) = %g outside [0, 1]", p, s)
		}
	}
}

func TestThemeFaceFallback(t *testing.T) {
	var theme Theme
	if theme.face() == nil {
		t.Fatal("empty theme must fall back to the built-in face")
	}
	if theme.face() != defaultFace {
		t.Error("empty theme did not return the default face")
	}
}
