package nodenet

import (
	"fmt"
	"os"
)

// Frame-skip thresholds derived from recent scroll velocity (pixels moved
// between throttled scroll samples). Fast scrolling trades smoothness for
// CPU headroom.
const (
	scrollFastPx     = 20.0
	scrollModeratePx = 5.0

	skipEveryFrame  = 1
	skipEverySecond = 2
	skipEveryFourth = 4

	// scrollSampleInterval throttles scroll velocity sampling, in ms.
	scrollSampleInterval = 100.0
)

// FrameFunc is invoked for each real (non-skipped) frame with the current
// monotonic timestamp in milliseconds.
type FrameFunc func(now float64)

// AnimationDriver schedules frame callbacks on top of the host's per-frame
// tick, applies the scroll-adaptive frame-skip policy, and exposes
// pause/resume. Each driver owns its own registry of scheduled callback
// handles; there is no process-global frame bookkeeping.
type AnimationDriver struct {
	frame FrameFunc

	// Scheduled-callback registry. pending holds the handle armed for the
	// next tick, 0 when nothing is scheduled.
	scheduled map[uint64]FrameFunc
	nextID    uint64
	pending   uint64

	running   bool
	destroyed bool

	// Frame-skip state.
	frameCount   int
	frameSkipMax int

	// Throttled scroll velocity tracking.
	scrollPos      float64
	lastSampleTime float64
	hasSample      bool
}

// NewAnimationDriver creates a driver that invokes frame on every real frame.
func NewAnimationDriver(frame FrameFunc) *AnimationDriver {
	return &AnimationDriver{
		frame:        frame,
		scheduled:    make(map[uint64]FrameFunc),
		frameSkipMax: skipEveryFrame,
	}
}

// request registers fn and returns its handle. The callback fires on the
// next Tick unless cancelled first.
func (d *AnimationDriver) request(fn FrameFunc) uint64 {
	d.nextID++
	d.scheduled[d.nextID] = fn
	return d.nextID
}

// cancel removes a scheduled callback so it never fires. Unknown handles are
// ignored, which makes double-cancel safe.
func (d *AnimationDriver) cancel(handle uint64) {
	delete(d.scheduled, handle)
	if d.pending == handle {
		d.pending = 0
	}
}

// Start arms the frame loop. No-op if already running or destroyed.
func (d *AnimationDriver) Start() {
	if d.running || d.destroyed {
		return
	}
	d.running = true
	d.arm()
}

// Stop cancels the pending scheduled callback outright. While stopped, Tick
// does nothing; no callback bookkeeping burns cycles in the background.
// Safe to call repeatedly.
func (d *AnimationDriver) Stop() {
	d.running = false
	if d.pending != 0 {
		d.cancel(d.pending)
	}
}

// Destroy stops the driver and cancels every scheduled callback
// synchronously. No callback fires afterward. Idempotent.
func (d *AnimationDriver) Destroy() {
	d.Stop()
	d.destroyed = true
	clear(d.scheduled)
}

// Running reports whether the loop is armed.
func (d *AnimationDriver) Running() bool {
	return d.running
}

// ScheduledCount returns the number of in-flight scheduled callbacks
// (0 or 1 during normal operation).
func (d *AnimationDriver) ScheduledCount() int {
	return len(d.scheduled)
}

// FrameSkipMax returns the current frame-skip threshold (1, 2, or 4).
func (d *AnimationDriver) FrameSkipMax() int {
	return d.frameSkipMax
}

// arm schedules the next frame callback.
func (d *AnimationDriver) arm() {
	d.pending = d.request(d.step)
}

// Tick is the host's per-frame entry point (one call per display refresh)
// with a monotonic timestamp in milliseconds. It fires the pending callback,
// if any.
func (d *AnimationDriver) Tick(now float64) {
	if d.pending == 0 {
		return
	}
	handle := d.pending
	fn, ok := d.scheduled[handle]
	if !ok {
		d.pending = 0
		return
	}
	delete(d.scheduled, handle)
	d.pending = 0
	fn(now)
}

// step runs one scheduled callback: apply the frame-skip counter, invoke the
// frame function when due, and re-arm while running. A panicking frame is
// logged and the loop continues on the next scheduled callback.
func (d *AnimationDriver) step(now float64) {
	d.frameCount++
	if d.frameCount >= d.frameSkipMax {
		d.frameCount = 0
		d.safeFrame(now)
	}
	if d.running {
		d.arm()
	}
}

// safeFrame invokes the frame function with a recover barrier so one bad
// frame never stops the loop.
func (d *AnimationDriver) safeFrame(now float64) {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[nodenet] frame panic recovered: %v\n", r)
		}
	}()
	if d.frame != nil {
		d.frame(now)
	}
}

// ReportScroll feeds the current scroll offset. Samples are throttled to one
// per scrollSampleInterval; the distance between consecutive samples selects
// the frame-skip threshold: >20px skips to every 4th frame, >5px to every
// 2nd, otherwise every frame runs.
func (d *AnimationDriver) ReportScroll(pos, now float64) {
	if d.hasSample && now-d.lastSampleTime < scrollSampleInterval {
		return
	}
	if !d.hasSample {
		d.hasSample = true
		d.scrollPos = pos
		d.lastSampleTime = now
		return
	}
	velocity := pos - d.scrollPos
	if velocity < 0 {
		velocity = -velocity
	}
	d.scrollPos = pos
	d.lastSampleTime = now
	d.frameSkipMax = frameSkipForVelocity(velocity)
}

// frameSkipForVelocity maps scroll velocity to the frame-skip threshold.
func frameSkipForVelocity(velocity float64) int {
	switch {
	case velocity > scrollFastPx:
		return skipEveryFourth
	case velocity > scrollModeratePx:
		return skipEverySecond
	default:
		return skipEveryFrame
	}
}
