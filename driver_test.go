package nodenet

import "testing"

func TestFrameSkipForVelocity(t *testing.T) {
	cases := []struct {
		velocity float64
		want     int
	}{
		{0, 1},
		{5, 1},
		{5.1, 2},
		{20, 2},
		{20.1, 4},
		{100, 4},
	}
	for _, tc := range cases {
		if got := frameSkipForVelocity(tc.velocity); got != tc.want {
			t.Errorf("frameSkipForVelocity(%g) = %d, want %d", tc.velocity, got, tc.want)
		}
	}
}

func TestReportScrollThrottled(t *testing.T) {
	d := NewAnimationDriver(nil)

	d.ReportScroll(0, 0)    // first sample establishes the baseline
	d.ReportScroll(500, 50) // within 100ms window, ignored
	if d.FrameSkipMax() != 1 {
		t.Errorf("frameSkipMax = %d, want 1 (sample inside throttle window)", d.FrameSkipMax())
	}

	d.ReportScroll(30, 150) // 30px since baseline → fast scroll
	if d.FrameSkipMax() != 4 {
		t.Errorf("frameSkipMax = %d, want 4", d.FrameSkipMax())
	}

	d.ReportScroll(40, 300) // 10px → moderate
	if d.FrameSkipMax() != 2 {
		t.Errorf("frameSkipMax = %d, want 2", d.FrameSkipMax())
	}

	d.ReportScroll(42, 450) // 2px → every frame
	if d.FrameSkipMax() != 1 {
		t.Errorf("frameSkipMax = %d, want 1", d.FrameSkipMax())
	}
}

func TestFrameSkipCadence(t *testing.T) {
	frames := 0
	d := NewAnimationDriver(func(now float64) { frames++ })
	d.Start()

	d.ReportScroll(0, 0)
	d.ReportScroll(10, 150) // moderate → every 2nd frame

	for i := 0; i < 8; i++ {
		d.Tick(float64(i) * 16)
	}
	if frames != 4 {
		t.Errorf("frames = %d, want 4 (every 2nd of 8 ticks)", frames)
	}
}

func TestEveryFrameByDefault(t *testing.T) {
	frames := 0
	d := NewAnimationDriver(func(now float64) { frames++ })
	d.Start()
	for i := 0; i < 5; i++ {
		d.Tick(float64(i) * 16)
	}
	if frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}
}

func TestStopCancelsPendingCallback(t *testing.T) {
	frames := 0
	d := NewAnimationDriver(func(now float64) { frames++ })
	d.Start()
	if d.ScheduledCount() != 1 {
		t.Fatalf("scheduled = %d, want 1 after Start", d.ScheduledCount())
	}

	d.Stop()
	if d.ScheduledCount() != 0 {
		t.Errorf("scheduled = %d, want 0 after Stop (cancel, not flag-skip)", d.ScheduledCount())
	}
	d.Tick(16)
	if frames != 0 {
		t.Errorf("frames = %d, want 0 after Stop", frames)
	}
}

func TestStopIdempotent(t *testing.T) {
	d := NewAnimationDriver(nil)
	d.Start()
	d.Stop()
	d.Stop() // double stop must not panic or double-cancel
	if d.ScheduledCount() != 0 {
		t.Errorf("scheduled = %d, want 0", d.ScheduledCount())
	}
}

func TestResumeRearmsLoop(t *testing.T) {
	frames := 0
	d := NewAnimationDriver(func(now float64) { frames++ })
	d.Start()
	d.Tick(0)
	d.Stop()
	d.Tick(16)
	d.Start()
	d.Tick(32)
	if frames != 2 {
		t.Errorf("frames = %d, want 2 (one before pause, one after resume)", frames)
	}
}

func TestDestroyCancelsSynchronously(t *testing.T) {
	frames := 0
	d := NewAnimationDriver(func(now float64) { frames++ })
	d.Start()
	d.Destroy()
	d.Destroy() // idempotent

	if d.ScheduledCount() != 0 {
		t.Errorf("scheduled = %d, want 0 after Destroy", d.ScheduledCount())
	}
	d.Tick(16)
	if frames != 0 {
		t.Error("callback fired after Destroy")
	}

	d.Start() // destroyed drivers never restart
	if d.Running() {
		t.Error("driver running after Destroy")
	}
}

func TestFramePanicDoesNotStopLoop(t *testing.T) {
	calls := 0
	d := NewAnimationDriver(func(now float64) {
		calls++
		if calls == 1 {
			panic("bad frame")
		}
	})
	d.Start()

	d.Tick(0) // panics inside, recovered at the frame boundary
	if !d.Running() {
		t.Fatal("driver stopped after a frame panic")
	}
	d.Tick(16)
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (loop continued after panic)", calls)
	}
}
